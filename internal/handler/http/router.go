package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/gofooditalia/paycrew/internal/handler/http/middleware"
	"github.com/gofooditalia/paycrew/internal/pkg/jwt"
)

func NewRouter(
	logger *slog.Logger,
	jwtService jwt.Service,
	shiftHandler ShiftHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Post("/", shiftHandler.Create)
				r.Post("/bulk", shiftHandler.BulkCreate)
				r.Get("/{id}", shiftHandler.Get)
				r.Put("/{id}", shiftHandler.Update)
				r.Delete("/{id}", shiftHandler.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/generate", attendanceHandler.Generate)
				r.Get("/{id}", attendanceHandler.Get)
				r.Post("/{id}/confirm", attendanceHandler.Confirm)
				r.Post("/{id}/absent", attendanceHandler.MarkAbsent)
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/", payrollHandler.List)
				r.Post("/", payrollHandler.Create)
				r.Get("/{id}", payrollHandler.Get)
				r.Put("/{id}", payrollHandler.Update)
			})
		})
	})

	return r
}

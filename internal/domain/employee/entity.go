package employee

import "time"

type Employee struct {
	ID         string
	CompanyID  string
	FullName   string
	Email      *string
	LocationID *string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Contract carries the contractual figures the calculation engine reads.
// It is owned by employee administration; the engine never writes it.
type Contract struct {
	EmployeeID          string
	WeeklyContractHours float64
}

// DefaultDailyHours is the daily baseline used when an employee has no
// usable weekly contract figure.
const DefaultDailyHours = 8.0

// ContractWorkDays is the number of contract days a working week is spread over.
const ContractWorkDays = 5.0

// DailyBaseline derives the employee's contractual daily hours from the
// weekly figure, falling back to the 8-hour default when the weekly figure
// is unset or zero.
func (c Contract) DailyBaseline() float64 {
	if c.WeeklyContractHours <= 0 {
		return DefaultDailyHours
	}
	return c.WeeklyContractHours / ContractWorkDays
}

package employee

import "context"

// EmployeeRepository defines read access to employee records and contracts.
// All methods include companyID to prevent cross-company data access.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetContract returns the employee's contractual hours. A missing
	// contract is reported as ErrContractNotFound so batch callers can
	// record it per item instead of aborting.
	GetContract(ctx context.Context, employeeID string, companyID string) (Contract, error)
}

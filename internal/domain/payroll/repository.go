package payroll

import "context"

// PayrollRepository defines data access methods for payroll records.
// The payrolls table carries a UNIQUE constraint on (user_id,
// period_start, period_end); Create maps a violation to
// ErrPayrollAlreadyExists.
type PayrollRepository interface {
	Create(ctx context.Context, p Payroll) (Payroll, error)
	GetByID(ctx context.Context, id string, companyID string) (Payroll, error)
	List(ctx context.Context, companyID string, filter PayrollFilter) ([]Payroll, int64, error)
	Update(ctx context.Context, p Payroll) (Payroll, error)
	Delete(ctx context.Context, id string, companyID string) error
}

type PayrollService interface {
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	List(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	Update(ctx context.Context, req UpdatePayrollRequest) (PayrollResponse, error)
	Approve(ctx context.Context, id string) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error
}

package user

import "context"

// UserRepository defines data access for users. GetByID doubles as the
// eligibility lookup for staffing decisions.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ListByCompany(ctx context.Context, companyID string) ([]User, error)
	UpdateEligibility(ctx context.Context, id string, crewChief, forkOperator bool) error
}

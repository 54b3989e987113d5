package job

import "context"

type JobRepository interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id string) (Job, error)
	ListByCompany(ctx context.Context, companyID string) ([]Job, error)
}

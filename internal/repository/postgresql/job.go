package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/job"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/database"
)

type jobRepository struct {
	db *database.DB
}

// Create implements job.JobRepository.
func (r *jobRepository) Create(ctx context.Context, newJob job.Job) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	if newJob.ID == "" {
		newJob.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO jobs (id, company_id, name, description, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newJob.ID,
		newJob.CompanyID,
		newJob.Name,
		newJob.Description,
		newJob.Location,
	).Scan(&newJob.CreatedAt, &newJob.UpdatedAt)

	if err != nil {
		return job.Job{}, fmt.Errorf("failed to create job: %w", err)
	}

	return newJob, nil
}

// GetByID implements job.JobRepository.
func (r *jobRepository) GetByID(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT j.id, j.company_id, j.name, j.description, j.location,
			   j.created_at, j.updated_at,
			   c.name AS company_name
		FROM jobs j
		LEFT JOIN companies c ON c.id = j.company_id
		WHERE j.id = $1
	`

	var jb job.Job
	err := q.QueryRow(ctx, query, id).Scan(
		&jb.ID, &jb.CompanyID, &jb.Name, &jb.Description, &jb.Location,
		&jb.CreatedAt, &jb.UpdatedAt,
		&jb.CompanyName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job by ID: %w", err)
	}

	return jb, nil
}

// ListByCompany implements job.JobRepository.
func (r *jobRepository) ListByCompany(ctx context.Context, companyID string) ([]job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, description, location, created_at, updated_at
		FROM jobs
		WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by company: %w", err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		var jb job.Job
		if err := rows.Scan(
			&jb.ID, &jb.CompanyID, &jb.Name, &jb.Description, &jb.Location,
			&jb.CreatedAt, &jb.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, jb)
	}

	return jobs, rows.Err()
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepository{db: db}
}

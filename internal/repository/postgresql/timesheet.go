package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

const timesheetColumns = `
	t.id, t.shift_id, t.status,
	t.submitted_by, t.submitted_at,
	t.company_signature, t.company_notes, t.company_approved_by, t.company_approved_at,
	t.manager_approved_by, t.manager_approved_at,
	t.rejected_by, t.rejected_at, t.rejection_reason,
	t.signed_pdf_url,
	t.created_at, t.updated_at,
	j.name AS job_name, j.company_id, c.name AS company_name, s.date AS shift_date
`

const timesheetJoins = `
	FROM timesheets t
	LEFT JOIN shifts s ON s.id = t.shift_id
	LEFT JOIN jobs j ON j.id = s.job_id
	LEFT JOIN companies c ON c.id = j.company_id
`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var t timesheet.Timesheet
	err := row.Scan(
		&t.ID, &t.ShiftID, &t.Status,
		&t.SubmittedBy, &t.SubmittedAt,
		&t.CompanySignature, &t.CompanyNotes, &t.CompanyApprovedBy, &t.CompanyApprovedAt,
		&t.ManagerApprovedBy, &t.ManagerApprovedAt,
		&t.RejectedBy, &t.RejectedAt, &t.RejectionReason,
		&t.SignedPDFURL,
		&t.CreatedAt, &t.UpdatedAt,
		&t.JobName, &t.CompanyID, &t.CompanyName, &t.ShiftDate,
	)
	return t, err
}

// Create implements timesheet.TimesheetRepository. The unique index on
// shift_id guarantees at most one timesheet per shift under concurrency.
func (r *timesheetRepository) Create(ctx context.Context, newTimesheet timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	if newTimesheet.ID == "" {
		newTimesheet.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO timesheets (id, shift_id, status, submitted_by, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newTimesheet.ID,
		newTimesheet.ShiftID,
		newTimesheet.Status,
		newTimesheet.SubmittedBy,
		newTimesheet.SubmittedAt,
	).Scan(&newTimesheet.CreatedAt, &newTimesheet.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetExists
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return newTimesheet, nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + timesheetJoins + ` WHERE t.id = $1`

	t, err := scanTimesheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet by ID: %w", err)
	}

	return t, nil
}

// GetByShiftID implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByShiftID(ctx context.Context, shiftID string) (*timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + timesheetJoins + ` WHERE t.shift_id = $1`

	t, err := scanTimesheet(q.QueryRow(ctx, query, shiftID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get timesheet by shift ID: %w", err)
	}

	return &t, nil
}

// SetCompanyApproval implements timesheet.TimesheetRepository.
func (r *timesheetRepository) SetCompanyApproval(ctx context.Context, id, signature, notes, approvedBy string, approvedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET status = $2,
			company_signature = $3,
			company_notes = NULLIF($4, ''),
			company_approved_by = $5,
			company_approved_at = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, timesheet.StatusPendingManagerApproval, signature, notes, approvedBy, approvedAt)
	if err != nil {
		return fmt.Errorf("failed to set company approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}

	return nil
}

// SetManagerApproval implements timesheet.TimesheetRepository.
func (r *timesheetRepository) SetManagerApproval(ctx context.Context, id, approvedBy string, approvedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET status = $2, manager_approved_by = $3, manager_approved_at = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, timesheet.StatusCompleted, approvedBy, approvedAt)
	if err != nil {
		return fmt.Errorf("failed to set manager approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}

	return nil
}

// SetRejected implements timesheet.TimesheetRepository.
func (r *timesheetRepository) SetRejected(ctx context.Context, id, rejectedBy, reason string, rejectedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET status = $2, rejected_by = $3, rejection_reason = $4, rejected_at = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, timesheet.StatusRejected, rejectedBy, reason, rejectedAt)
	if err != nil {
		return fmt.Errorf("failed to set rejection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}

	return nil
}

// SetSignedPDFURL implements timesheet.TimesheetRepository.
func (r *timesheetRepository) SetSignedPDFURL(ctx context.Context, id, url string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE timesheets SET signed_pdf_url = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, url)
	if err != nil {
		return fmt.Errorf("failed to set signed PDF URL: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}

	return nil
}

// ListAll implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ListAll(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	return r.list(ctx, filter, "", nil)
}

// ListForCompany implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ListForCompany(ctx context.Context, companyID string, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	return r.list(ctx, filter, "j.company_id", companyID)
}

// ListForCrewChief implements timesheet.TimesheetRepository. Scoped through
// the crew chief's assignment on the timesheet's shift.
func (r *timesheetRepository) ListForCrewChief(ctx context.Context, userID string, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	scope := `t.shift_id IN (SELECT shift_id FROM shift_assignments WHERE user_id = $1 AND role_code = 'CC')`
	return r.listScoped(ctx, filter, scope, []interface{}{userID})
}

func (r *timesheetRepository) list(ctx context.Context, filter timesheet.TimesheetFilter, scopeColumn string, scopeValue interface{}) ([]timesheet.Timesheet, int64, error) {
	if scopeColumn == "" {
		return r.listScoped(ctx, filter, "", nil)
	}
	return r.listScoped(ctx, filter, scopeColumn+" = $1", []interface{}{scopeValue})
}

func (r *timesheetRepository) listScoped(ctx context.Context, filter timesheet.TimesheetFilter, scope string, args []interface{}) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	if scope != "" {
		whereClause += " AND " + scope
	}
	argIdx := len(args) + 1

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := `SELECT COUNT(*) ` + timesheetJoins + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY t.submitted_at DESC LIMIT $%d OFFSET $%d`,
		timesheetColumns, timesheetJoins, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var timesheets []timesheet.Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		timesheets = append(timesheets, t)
	}

	return timesheets, total, rows.Err()
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/assignment"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/database"
)

type assignmentRepository struct {
	db *database.DB
}

const assignmentColumns = `
	a.id, a.shift_id, a.user_id, a.role_code, a.status, a.created_at, a.updated_at,
	u.name AS worker_name,
	s.date AS shift_date, s.start_time AS shift_start, s.end_time AS shift_end,
	j.name AS job_name, c.name AS company_name
`

const assignmentJoins = `
	FROM shift_assignments a
	LEFT JOIN users u ON u.id = a.user_id
	LEFT JOIN shifts s ON s.id = a.shift_id
	LEFT JOIN jobs j ON j.id = s.job_id
	LEFT JOIN companies c ON c.id = j.company_id
`

func scanAssignment(row pgx.Row) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := row.Scan(
		&a.ID, &a.ShiftID, &a.UserID, &a.RoleCode, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		&a.WorkerName,
		&a.ShiftDate, &a.ShiftStart, &a.ShiftEnd,
		&a.JobName, &a.CompanyName,
	)
	return a, err
}

// Create implements assignment.AssignmentRepository. The unique index on
// (shift_id, user_id) backstops the service-level duplicate check.
func (r *assignmentRepository) Create(ctx context.Context, newAssignment assignment.Assignment) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	if newAssignment.ID == "" {
		newAssignment.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO shift_assignments (id, shift_id, user_id, role_code, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAssignment.ID,
		newAssignment.ShiftID,
		newAssignment.UserID,
		newAssignment.RoleCode,
		newAssignment.Status,
	).Scan(&newAssignment.CreatedAt, &newAssignment.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return assignment.Assignment{}, assignment.ErrAlreadyAssigned
		}
		return assignment.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return newAssignment, nil
}

// GetByID implements assignment.AssignmentRepository.
func (r *assignmentRepository) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assignmentColumns + assignmentJoins + ` WHERE a.id = $1`

	a, err := scanAssignment(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrAssignmentNotFound
		}
		return assignment.Assignment{}, fmt.Errorf("failed to get assignment by ID: %w", err)
	}

	if err := r.loadTimeEntries(ctx, &a); err != nil {
		return assignment.Assignment{}, err
	}

	return a, nil
}

// GetByShiftAndUser implements assignment.AssignmentRepository.
func (r *assignmentRepository) GetByShiftAndUser(ctx context.Context, shiftID, userID string) (*assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assignmentColumns + assignmentJoins + ` WHERE a.shift_id = $1 AND a.user_id = $2`

	a, err := scanAssignment(q.QueryRow(ctx, query, shiftID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assignment by shift and user: %w", err)
	}

	if err := r.loadTimeEntries(ctx, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// ListByShift implements assignment.AssignmentRepository.
func (r *assignmentRepository) ListByShift(ctx context.Context, shiftID string) ([]assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assignmentColumns + assignmentJoins + ` WHERE a.shift_id = $1 ORDER BY a.created_at`

	rows, err := q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments by shift: %w", err)
	}
	defer rows.Close()

	var assignments []assignment.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range assignments {
		if err := r.loadTimeEntries(ctx, &assignments[i]); err != nil {
			return nil, err
		}
	}

	return assignments, nil
}

// ListByUserAndDate implements assignment.AssignmentRepository.
func (r *assignmentRepository) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assignmentColumns + assignmentJoins + ` WHERE a.user_id = $1 AND s.date = $2`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments by user and date: %w", err)
	}
	defer rows.Close()

	var assignments []assignment.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// UpdateStatus implements assignment.AssignmentRepository.
func (r *assignmentRepository) UpdateStatus(ctx context.Context, id string, status assignment.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE shift_assignments SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return assignment.ErrAssignmentNotFound
	}

	return nil
}

// Delete implements assignment.AssignmentRepository.
func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return assignment.ErrAssignmentNotFound
	}

	return nil
}

// ConvertLegacyRole implements assignment.AssignmentRepository.
func (r *assignmentRepository) ConvertLegacyRole(ctx context.Context, from, to shift.RoleCode) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE shift_assignments SET role_code = $2, updated_at = NOW() WHERE role_code = $1`

	tag, err := q.Exec(ctx, query, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to convert legacy assignments: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *assignmentRepository) loadTimeEntries(ctx context.Context, a *assignment.Assignment) error {
	entries, err := r.listEntries(ctx, a.ID)
	if err != nil {
		return err
	}
	a.TimeEntries = entries
	return nil
}

func (r *assignmentRepository) listEntries(ctx context.Context, assignmentID string) ([]assignment.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, assignment_id, entry_number, clock_in, clock_out, is_active, created_at, updated_at
		FROM time_entries
		WHERE assignment_id = $1
		ORDER BY entry_number
	`

	rows, err := q.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []assignment.TimeEntry
	for rows.Next() {
		var e assignment.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.AssignmentID, &e.EntryNumber, &e.ClockIn, &e.ClockOut,
			&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func NewAssignmentRepository(db *database.DB) assignment.AssignmentRepository {
	return &assignmentRepository{db: db}
}

type timeEntryRepository struct {
	db *database.DB
}

// Create implements assignment.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, newEntry assignment.TimeEntry) (assignment.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	if newEntry.ID == "" {
		newEntry.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO time_entries (id, assignment_id, entry_number, clock_in, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEntry.ID,
		newEntry.AssignmentID,
		newEntry.EntryNumber,
		newEntry.ClockIn,
		newEntry.IsActive,
	).Scan(&newEntry.CreatedAt, &newEntry.UpdatedAt)

	if err != nil {
		return assignment.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return newEntry, nil
}

// GetActive implements assignment.TimeEntryRepository.
func (r *timeEntryRepository) GetActive(ctx context.Context, assignmentID string) (*assignment.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, assignment_id, entry_number, clock_in, clock_out, is_active, created_at, updated_at
		FROM time_entries
		WHERE assignment_id = $1 AND is_active = TRUE
		LIMIT 1
	`

	var e assignment.TimeEntry
	err := q.QueryRow(ctx, query, assignmentID).Scan(
		&e.ID, &e.AssignmentID, &e.EntryNumber, &e.ClockIn, &e.ClockOut,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active time entry: %w", err)
	}

	return &e, nil
}

// Close implements assignment.TimeEntryRepository.
func (r *timeEntryRepository) Close(ctx context.Context, id string, clockOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET clock_out = $2, is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`

	tag, err := q.Exec(ctx, query, id, clockOut)
	if err != nil {
		return fmt.Errorf("failed to close time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return assignment.ErrInvalidTransition
	}

	return nil
}

// ListByAssignment implements assignment.TimeEntryRepository.
func (r *timeEntryRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]assignment.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, assignment_id, entry_number, clock_in, clock_out, is_active, created_at, updated_at
		FROM time_entries
		WHERE assignment_id = $1
		ORDER BY entry_number
	`

	rows, err := q.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []assignment.TimeEntry
	for rows.Next() {
		var e assignment.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.AssignmentID, &e.EntryNumber, &e.ClockIn, &e.ClockOut,
			&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func NewTimeEntryRepository(db *database.DB) assignment.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

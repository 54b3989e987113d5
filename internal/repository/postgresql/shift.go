package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

const shiftColumns = `
	s.id, s.job_id, s.date, s.start_time, s.end_time, s.status,
	s.required_crew_chiefs, s.required_stagehands, s.required_fork_operators,
	s.required_reach_fork_operators, s.required_riggers, s.required_general_laborers,
	s.required_legacy_workers,
	s.created_at, s.updated_at,
	j.name AS job_name, j.company_id, c.name AS company_name
`

const shiftJoins = `
	FROM shifts s
	LEFT JOIN jobs j ON j.id = s.job_id
	LEFT JOIN companies c ON c.id = j.company_id
`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var sh shift.Shift
	err := row.Scan(
		&sh.ID, &sh.JobID, &sh.Date, &sh.StartTime, &sh.EndTime, &sh.Status,
		&sh.Requirements.CrewChiefs, &sh.Requirements.Stagehands, &sh.Requirements.ForkOperators,
		&sh.Requirements.ReachForkOperators, &sh.Requirements.Riggers, &sh.Requirements.GeneralLaborers,
		&sh.Requirements.LegacyWorkers,
		&sh.CreatedAt, &sh.UpdatedAt,
		&sh.JobName, &sh.CompanyID, &sh.CompanyName,
	)
	return sh, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	if newShift.ID == "" {
		newShift.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO shifts (
			id, job_id, date, start_time, end_time, status,
			required_crew_chiefs, required_stagehands, required_fork_operators,
			required_reach_fork_operators, required_riggers, required_general_laborers,
			required_legacy_workers
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	req := newShift.Requirements
	err := q.QueryRow(ctx, query,
		newShift.ID,
		newShift.JobID,
		newShift.Date,
		newShift.StartTime,
		newShift.EndTime,
		newShift.Status,
		req.CrewChiefs,
		req.Stagehands,
		req.ForkOperators,
		req.ReachForkOperators,
		req.Riggers,
		req.GeneralLaborers,
		req.LegacyWorkers,
	).Scan(&newShift.CreatedAt, &newShift.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return newShift, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + shiftJoins + ` WHERE s.id = $1`

	sh, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return sh, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := make([]interface{}, 0)
	argIdx := 1

	if filter.JobID != nil {
		whereClause += fmt.Sprintf(" AND s.job_id = $%d", argIdx)
		args = append(args, *filter.JobID)
		argIdx++
	}
	if filter.CompanyID != nil {
		whereClause += fmt.Sprintf(" AND j.company_id = $%d", argIdx)
		args = append(args, *filter.CompanyID)
		argIdx++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND s.status = $%d", argIdx)
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

	countQuery := `SELECT COUNT(*) ` + shiftJoins + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY s.date DESC, s.start_time DESC LIMIT $%d OFFSET $%d`,
		shiftColumns, shiftJoins, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}

	return shifts, total, rows.Err()
}

// UpdateStatus implements shift.ShiftRepository.
func (r *shiftRepository) UpdateStatus(ctx context.Context, id string, status shift.ShiftStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE shifts SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update shift status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// SetRequirements implements shift.ShiftRepository. Counters are stored as
// given; normalization happens on read.
func (r *shiftRepository) SetRequirements(ctx context.Context, shiftID string, req shift.ShiftRequirement) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET required_crew_chiefs = $2,
			required_stagehands = $3,
			required_fork_operators = $4,
			required_reach_fork_operators = $5,
			required_riggers = $6,
			required_general_laborers = $7,
			required_legacy_workers = 0,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, shiftID,
		req.CrewChiefs, req.Stagehands, req.ForkOperators,
		req.ReachForkOperators, req.Riggers, req.GeneralLaborers,
	)
	if err != nil {
		return fmt.Errorf("failed to set requirements: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// GetRequirements implements shift.ShiftRepository.
func (r *shiftRepository) GetRequirements(ctx context.Context, shiftID string) (shift.ShiftRequirement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT required_crew_chiefs, required_stagehands, required_fork_operators,
			   required_reach_fork_operators, required_riggers, required_general_laborers,
			   required_legacy_workers
		FROM shifts
		WHERE id = $1
	`

	var req shift.ShiftRequirement
	err := q.QueryRow(ctx, query, shiftID).Scan(
		&req.CrewChiefs, &req.Stagehands, &req.ForkOperators,
		&req.ReachForkOperators, &req.Riggers, &req.GeneralLaborers,
		&req.LegacyWorkers,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftRequirement{}, shift.ErrShiftNotFound
		}
		return shift.ShiftRequirement{}, fmt.Errorf("failed to get requirements: %w", err)
	}

	return req, nil
}

// ConvertLegacyRequirements implements shift.ShiftRepository. Folds legacy
// worker counts into stagehand counts; rows without legacy counts are
// untouched, so reruns affect nothing.
func (r *shiftRepository) ConvertLegacyRequirements(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET required_stagehands = required_stagehands + required_legacy_workers,
			required_legacy_workers = 0,
			updated_at = NOW()
		WHERE required_legacy_workers > 0
	`

	tag, err := q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to convert legacy requirements: %w", err)
	}

	return tag.RowsAffected(), nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

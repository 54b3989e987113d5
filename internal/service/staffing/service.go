package staffing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/assignment"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/notification"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/cache"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/database"
)

type StaffingServiceImpl struct {
	txm database.TxManager
	assignment.AssignmentRepository
	assignment.TimeEntryRepository
	shift.ShiftRepository
	user.UserRepository
	timesheet.TimesheetRepository
	cache    *cache.Cache
	notifier notification.NotificationService
}

func NewStaffingService(
	txm database.TxManager,
	assignmentRepo assignment.AssignmentRepository,
	timeEntryRepo assignment.TimeEntryRepository,
	shiftRepo shift.ShiftRepository,
	userRepo user.UserRepository,
	timesheetRepo timesheet.TimesheetRepository,
	c *cache.Cache,
	notifier notification.NotificationService,
) assignment.StaffingService {
	return &StaffingServiceImpl{
		txm:                  txm,
		AssignmentRepository: assignmentRepo,
		TimeEntryRepository:  timeEntryRepo,
		ShiftRepository:      shiftRepo,
		UserRepository:       userRepo,
		TimesheetRepository:  timesheetRepo,
		cache:                c,
		notifier:             notifier,
	}
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func shiftCacheTag(shiftID string) string {
	return "shift:" + shiftID
}

// AssignWorker implements assignment.StaffingService.
func (s *StaffingServiceImpl) AssignWorker(ctx context.Context, req assignment.AssignWorkerRequest) (assignment.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionStaffingAssign) {
		return assignment.AssignmentResponse{}, user.ErrForbidden
	}

	sh, err := s.ShiftRepository.GetByID(ctx, req.ShiftID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if sh.Status == shift.ShiftStatusCancelled {
		return assignment.AssignmentResponse{}, shift.ErrShiftCancelled
	}

	worker, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	if err := checkEligibility(&worker, req.RoleCode); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	existing, err := s.AssignmentRepository.GetByShiftAndUser(ctx, req.ShiftID, req.UserID)
	if err != nil {
		return assignment.AssignmentResponse{}, fmt.Errorf("failed to check existing assignment: %w", err)
	}
	if existing != nil {
		return assignment.AssignmentResponse{}, assignment.ErrAlreadyAssigned
	}

	if err := s.findConflict(ctx, &sh, req.UserID); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	var created assignment.Assignment
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		created, err = s.AssignmentRepository.Create(txCtx, assignment.Assignment{
			ShiftID:  req.ShiftID,
			UserID:   req.UserID,
			RoleCode: req.RoleCode,
			Status:   assignment.StatusAssigned,
		})
		return err
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	s.cache.InvalidateTag(shiftCacheTag(req.ShiftID))

	jobName := ""
	if sh.JobName != nil {
		jobName = *sh.JobName
	}
	s.notifier.Notify(ctx, worker.ID, notification.TypeWorkerAssigned,
		"You have been assigned to a shift",
		fmt.Sprintf("You are scheduled as %s on %s (%s)", req.RoleCode.DisplayName(), jobName, sh.Date.Format("2006-01-02")),
		&created.ID)

	created.WorkerName = &worker.Name
	return toAssignmentResponse(&created, false), nil
}

// checkEligibility enforces role eligibility flags. Internal staff may hold
// any role regardless of flags.
func checkEligibility(worker *user.User, role shift.RoleCode) error {
	if worker.CanBypassEligibility() {
		return nil
	}
	switch role.RequiredEligibility() {
	case shift.EligibilityCrewChief:
		if !worker.CrewChiefEligible {
			return fmt.Errorf("%w: %s requires crew chief eligibility", assignment.ErrNotEligible, role.DisplayName())
		}
	case shift.EligibilityForkOperator:
		if !worker.ForkOperatorEligible {
			return fmt.Errorf("%w: %s requires fork operator eligibility", assignment.ErrNotEligible, role.DisplayName())
		}
	}
	return nil
}

// findConflict scans the worker's other assignments on the same working day
// for an overlapping shift window. No-shows do not block.
func (s *StaffingServiceImpl) findConflict(ctx context.Context, sh *shift.Shift, userID string) error {
	others, err := s.AssignmentRepository.ListByUserAndDate(ctx, userID, sh.Date)
	if err != nil {
		return fmt.Errorf("failed to list assignments for conflict check: %w", err)
	}

	for _, other := range others {
		if other.ShiftID == sh.ID || other.Status == assignment.StatusNoShow {
			continue
		}
		if other.ShiftStart == nil || other.ShiftEnd == nil {
			continue
		}
		if shift.Overlaps(sh.StartTime, sh.EndTime, *other.ShiftStart, *other.ShiftEnd) {
			conflict := &assignment.TimeConflictError{
				StartTime: *other.ShiftStart,
				EndTime:   *other.ShiftEnd,
			}
			if other.CompanyName != nil {
				conflict.CompanyName = *other.CompanyName
			}
			if other.JobName != nil {
				conflict.JobName = *other.JobName
			}
			return conflict
		}
	}
	return nil
}

// UnassignWorker implements assignment.StaffingService.
func (s *StaffingServiceImpl) UnassignWorker(ctx context.Context, assignmentID string) error {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if !user.HasPermission(actor.Role, user.PermissionStaffingAssign) {
		return user.ErrForbidden
	}

	a, err := s.AssignmentRepository.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}

	// Clock activity locks the registry row; history must be preserved.
	if len(a.TimeEntries) > 0 || a.Status != assignment.StatusAssigned {
		return assignment.ErrAssignmentLocked
	}

	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		return s.AssignmentRepository.Delete(txCtx, assignmentID)
	})
	if err != nil {
		return err
	}

	s.cache.InvalidateTag(shiftCacheTag(a.ShiftID))
	s.notifier.Notify(ctx, a.UserID, notification.TypeWorkerUnassigned,
		"You have been removed from a shift",
		"Your assignment was removed before the shift started", &a.ShiftID)

	return nil
}

// MarkNoShow implements assignment.StaffingService.
func (s *StaffingServiceImpl) MarkNoShow(ctx context.Context, assignmentID string) (assignment.AssignmentResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionStaffingAssign) {
		return assignment.AssignmentResponse{}, user.ErrForbidden
	}

	a, err := s.AssignmentRepository.GetByID(ctx, assignmentID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	// Only a worker who never clocked in can be a no-show.
	if len(a.TimeEntries) > 0 || a.Status != assignment.StatusAssigned {
		return assignment.AssignmentResponse{}, assignment.ErrInvalidTransition
	}

	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		return s.AssignmentRepository.UpdateStatus(txCtx, assignmentID, assignment.StatusNoShow)
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	s.cache.InvalidateTag(shiftCacheTag(a.ShiftID))

	completed := s.tryFinalizeShift(ctx, a.ShiftID, actor.ID)

	a.Status = assignment.StatusNoShow
	return toAssignmentResponse(&a, completed), nil
}

// ClockIn implements assignment.StaffingService.
func (s *StaffingServiceImpl) ClockIn(ctx context.Context, assignmentID string) (assignment.AssignmentResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionStaffingClock) {
		return assignment.AssignmentResponse{}, user.ErrForbidden
	}

	a, err := s.AssignmentRepository.GetByID(ctx, assignmentID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if err := canOperateClock(actor, &a); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	if a.Status.IsTerminal() {
		return assignment.AssignmentResponse{}, assignment.ErrInvalidTransition
	}
	if a.ActiveEntry() != nil {
		return assignment.AssignmentResponse{}, assignment.ErrInvalidTransition
	}

	sh, err := s.ShiftRepository.GetByID(ctx, a.ShiftID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if sh.Status == shift.ShiftStatusCancelled {
		return assignment.AssignmentResponse{}, shift.ErrShiftCancelled
	}

	now := time.Now().UTC()
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		_, err := s.TimeEntryRepository.Create(txCtx, assignment.TimeEntry{
			AssignmentID: assignmentID,
			EntryNumber:  a.NextEntryNumber(),
			ClockIn:      &now,
			IsActive:     true,
		})
		if err != nil {
			return err
		}
		if err := s.AssignmentRepository.UpdateStatus(txCtx, assignmentID, assignment.StatusClockedIn); err != nil {
			return err
		}
		// First clock-in moves the shift out of scheduled.
		if sh.Status == shift.ShiftStatusScheduled {
			return s.ShiftRepository.UpdateStatus(txCtx, sh.ID, shift.ShiftStatusInProgress)
		}
		return nil
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	s.cache.InvalidateTag(shiftCacheTag(a.ShiftID))

	return s.reload(ctx, assignmentID, false)
}

// ClockOut implements assignment.StaffingService.
func (s *StaffingServiceImpl) ClockOut(ctx context.Context, assignmentID string) (assignment.AssignmentResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionStaffingClock) {
		return assignment.AssignmentResponse{}, user.ErrForbidden
	}

	a, err := s.AssignmentRepository.GetByID(ctx, assignmentID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if err := canOperateClock(actor, &a); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	if a.Status.IsTerminal() {
		return assignment.AssignmentResponse{}, assignment.ErrInvalidTransition
	}
	active := a.ActiveEntry()
	if active == nil {
		return assignment.AssignmentResponse{}, assignment.ErrInvalidTransition
	}

	now := time.Now().UTC()
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.TimeEntryRepository.Close(txCtx, active.ID, now); err != nil {
			return err
		}
		return s.AssignmentRepository.UpdateStatus(txCtx, assignmentID, assignment.StatusClockedOut)
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	s.cache.InvalidateTag(shiftCacheTag(a.ShiftID))

	return s.reload(ctx, assignmentID, false)
}

// EndWorkerShift implements assignment.StaffingService.
func (s *StaffingServiceImpl) EndWorkerShift(ctx context.Context, assignmentID string) (assignment.AssignmentResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionStaffingEnd) {
		return assignment.AssignmentResponse{}, user.ErrForbidden
	}

	a, err := s.AssignmentRepository.GetByID(ctx, assignmentID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	if a.Status == assignment.StatusNoShow {
		return assignment.AssignmentResponse{}, assignment.ErrInvalidTransition
	}
	if a.Status == assignment.StatusShiftEnded {
		return assignment.AssignmentResponse{}, assignment.ErrAlreadyEnded
	}

	now := time.Now().UTC()
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		if active := a.ActiveEntry(); active != nil {
			if err := s.TimeEntryRepository.Close(txCtx, active.ID, now); err != nil {
				return err
			}
		}
		return s.AssignmentRepository.UpdateStatus(txCtx, assignmentID, assignment.StatusShiftEnded)
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	s.cache.InvalidateTag(shiftCacheTag(a.ShiftID))

	// Completion runs after the worker transition has committed: a broken
	// timesheet write must never undo an ended shift.
	completed := s.tryFinalizeShift(ctx, a.ShiftID, actor.ID)

	return s.reload(ctx, assignmentID, completed)
}

// ListShiftAssignments implements assignment.StaffingService.
func (s *StaffingServiceImpl) ListShiftAssignments(ctx context.Context, shiftID string) (assignment.ListAssignmentsResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return assignment.ListAssignmentsResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionShiftView) {
		return assignment.ListAssignmentsResponse{}, user.ErrForbidden
	}

	if _, err := s.ShiftRepository.GetByID(ctx, shiftID); err != nil {
		return assignment.ListAssignmentsResponse{}, err
	}

	list, err := s.AssignmentRepository.ListByShift(ctx, shiftID)
	if err != nil {
		return assignment.ListAssignmentsResponse{}, err
	}

	resp := assignment.ListAssignmentsResponse{
		ShiftID:     shiftID,
		Assignments: make([]assignment.AssignmentResponse, 0, len(list)),
	}
	for i := range list {
		resp.Assignments = append(resp.Assignments, toAssignmentResponse(&list[i], false))
	}
	return resp, nil
}

// RecheckCompletion implements assignment.StaffingService.
func (s *StaffingServiceImpl) RecheckCompletion(ctx context.Context, shiftID string) (bool, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return false, err
	}
	if !user.HasPermission(actor.Role, user.PermissionStaffingEnd) {
		return false, user.ErrForbidden
	}

	if _, err := s.ShiftRepository.GetByID(ctx, shiftID); err != nil {
		return false, err
	}

	return s.finalizeShift(ctx, shiftID, actor.ID)
}

// tryFinalizeShift runs the completion detector and reduces its outcome to a
// flag. Finalization failure is logged; the committed worker transition stands.
func (s *StaffingServiceImpl) tryFinalizeShift(ctx context.Context, shiftID, actorID string) bool {
	completed, err := s.finalizeShift(ctx, shiftID, actorID)
	if err != nil {
		slog.Error("shift finalization failed", "shift_id", shiftID, "error", err)
		return false
	}
	return completed
}

// finalizeShift checks whether every assignment on the shift reached a
// terminal status and, if so, completes the shift and opens its timesheet in
// one transaction. Idempotent: an existing timesheet means nothing to do.
func (s *StaffingServiceImpl) finalizeShift(ctx context.Context, shiftID, actorID string) (bool, error) {
	list, err := s.AssignmentRepository.ListByShift(ctx, shiftID)
	if err != nil {
		return false, fmt.Errorf("failed to list assignments: %w", err)
	}
	if len(list) == 0 {
		return false, nil
	}
	for i := range list {
		if !list[i].Status.IsTerminal() {
			return false, nil
		}
	}

	existing, err := s.TimesheetRepository.GetByShiftID(ctx, shiftID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing timesheet: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	now := time.Now().UTC()
	var ts timesheet.Timesheet
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		ts, err = s.TimesheetRepository.Create(txCtx, timesheet.Timesheet{
			ShiftID:     shiftID,
			Status:      timesheet.StatusPendingCompanyApproval,
			SubmittedBy: actorID,
			SubmittedAt: now,
		})
		if err != nil {
			return err
		}
		return s.ShiftRepository.UpdateStatus(txCtx, shiftID, shift.ShiftStatusCompleted)
	})
	if err != nil {
		return false, err
	}

	s.cache.InvalidateTag(shiftCacheTag(shiftID))
	s.notifyCompanyApprovers(ctx, shiftID, ts.ID)

	return true, nil
}

// notifyCompanyApprovers tells the client company's users a timesheet awaits
// their signature. Best effort.
func (s *StaffingServiceImpl) notifyCompanyApprovers(ctx context.Context, shiftID, timesheetID string) {
	sh, err := s.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil || sh.CompanyID == nil {
		return
	}
	approvers, err := s.UserRepository.ListByCompany(ctx, *sh.CompanyID)
	if err != nil {
		slog.Error("failed to list company approvers", "shift_id", shiftID, "error", err)
		return
	}
	jobName := ""
	if sh.JobName != nil {
		jobName = *sh.JobName
	}
	for _, approver := range approvers {
		s.notifier.Notify(ctx, approver.ID, notification.TypeTimesheetSubmitted,
			"Timesheet ready for review",
			fmt.Sprintf("The shift on %s (%s) has ended and its timesheet awaits your approval", jobName, sh.Date.Format("2006-01-02")),
			&timesheetID)
	}
}

// canOperateClock restricts clock operations: regular workers may only run
// their own clock, crew chiefs and staff may run anyone's.
func canOperateClock(actor user.Actor, a *assignment.Assignment) error {
	if actor.IsStaff() || actor.Role == user.RoleCrewChief {
		return nil
	}
	if actor.ID != a.UserID {
		return user.ErrForbidden
	}
	return nil
}

func (s *StaffingServiceImpl) reload(ctx context.Context, assignmentID string, completed bool) (assignment.AssignmentResponse, error) {
	a, err := s.AssignmentRepository.GetByID(ctx, assignmentID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	return toAssignmentResponse(&a, completed), nil
}

func toAssignmentResponse(a *assignment.Assignment, completed bool) assignment.AssignmentResponse {
	resp := assignment.AssignmentResponse{
		ID:             a.ID,
		ShiftID:        a.ShiftID,
		UserID:         a.UserID,
		WorkerName:     a.WorkerName,
		RoleCode:       a.RoleCode,
		RoleName:       a.RoleCode.DisplayName(),
		Status:         a.Status,
		DisplayStatus:  a.DisplayStatus(),
		WorkedMinutes:  a.WorkedMinutes(),
		ShiftCompleted: completed,
	}
	for _, e := range a.TimeEntries {
		resp.TimeEntries = append(resp.TimeEntries, assignment.TimeEntryResponse{
			EntryNumber: e.EntryNumber,
			ClockIn:     timePtrToString(e.ClockIn),
			ClockOut:    timePtrToString(e.ClockOut),
			IsActive:    e.IsActive,
			Minutes:     e.Minutes(),
		})
	}
	return resp
}

package staffing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/assignment"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/notification"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	shifts      *fakeShiftRepo
	assignments *fakeAssignmentRepo
	entries     *fakeTimeEntryRepo
	users       *fakeUserRepo
	timesheets  *fakeTimesheetRepo
	notifier    *fakeNotifier
	svc         assignment.StaffingService
}

func newFixture() *fixture {
	shifts := newFakeShiftRepo()
	assignments := newFakeAssignmentRepo(shifts)
	entries := &fakeTimeEntryRepo{assignments: assignments}
	users := newFakeUserRepo()
	timesheets := newFakeTimesheetRepo()
	notifier := &fakeNotifier{}

	svc := NewStaffingService(
		fakeTxManager{}, assignments, entries, shifts, users, timesheets,
		cache.New(time.Minute), notifier,
	)

	return &fixture{
		shifts:      shifts,
		assignments: assignments,
		entries:     entries,
		users:       users,
		timesheets:  timesheets,
		notifier:    notifier,
		svc:         svc,
	}
}

func (f *fixture) addShift(t *testing.T, date string, startHour, endHour int) shift.Shift {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	jobName := "Arena Load-In"
	companyID := "company-1"
	companyName := "Starlight Events"
	created, err := f.shifts.Create(context.Background(), shift.Shift{
		JobID:       "job-1",
		Date:        day,
		StartTime:   day.Add(time.Duration(startHour) * time.Hour),
		EndTime:     day.Add(time.Duration(endHour) * time.Hour),
		Status:      shift.ShiftStatusScheduled,
		JobName:     &jobName,
		CompanyID:   &companyID,
		CompanyName: &companyName,
	})
	require.NoError(t, err)
	return created
}

func (f *fixture) addWorker(id string, role user.Role, crewChief, forkOperator bool) user.User {
	u := user.User{
		ID:                   id,
		Email:                id + "@example.com",
		Name:                 "Worker " + id,
		Role:                 role,
		CrewChiefEligible:    crewChief,
		ForkOperatorEligible: forkOperator,
	}
	f.users.add(u)
	return u
}

func staffCtx(t *testing.T) context.Context {
	return actorContext(t, "staff-1", user.RoleStaff, nil)
}

func TestAssignWorker_Success(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID:  sh.ID,
		UserID:   "worker-1",
		RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	assert.Equal(t, assignment.StatusAssigned, resp.Status)
	assert.Equal(t, assignment.StatusAssigned, resp.DisplayStatus)
	assert.Equal(t, "Stagehand", resp.RoleName)
	assert.Empty(t, resp.TimeEntries)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, notification.TypeWorkerAssigned, f.notifier.calls[0].Type)
	assert.Equal(t, "worker-1", f.notifier.calls[0].UserID)
}

func TestAssignWorker_Duplicate(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	req := assignment.AssignWorkerRequest{ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand}
	_, err := f.svc.AssignWorker(staffCtx(t), req)
	require.NoError(t, err)

	req.RoleCode = shift.RoleRigger
	_, err = f.svc.AssignWorker(staffCtx(t), req)
	assert.ErrorIs(t, err, assignment.ErrAlreadyAssigned)
}

func TestAssignWorker_EligibilityEnforced(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	for _, role := range []shift.RoleCode{shift.RoleCrewChief, shift.RoleForkOperator, shift.RoleReachForkOperator} {
		_, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
			ShiftID:  sh.ID,
			UserID:   "worker-1",
			RoleCode: role,
		})
		assert.ErrorIs(t, err, assignment.ErrNotEligible, "role %s", role)
	}
}

func TestAssignWorker_EligibleFlagsPass(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleCrewChief, true, false)

	_, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID:  sh.ID,
		UserID:   "worker-1",
		RoleCode: shift.RoleCrewChief,
	})
	assert.NoError(t, err)
}

func TestAssignWorker_StaffBypassesEligibility(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("staff-2", user.RoleStaff, false, false)

	_, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID:  sh.ID,
		UserID:   "staff-2",
		RoleCode: shift.RoleForkOperator,
	})
	assert.NoError(t, err)
}

func TestAssignWorker_TimeConflict(t *testing.T) {
	f := newFixture()
	first := f.addShift(t, "2026-03-02", 8, 16)
	second := f.addShift(t, "2026-03-02", 14, 22)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	_, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: first.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: second.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, assignment.ErrTimeConflict)

	var conflict *assignment.TimeConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Arena Load-In", conflict.JobName)
	assert.Equal(t, "Starlight Events", conflict.CompanyName)
	assert.Equal(t, first.StartTime, conflict.StartTime)
	assert.Equal(t, first.EndTime, conflict.EndTime)
}

func TestAssignWorker_AdjacentShiftsDoNotConflict(t *testing.T) {
	f := newFixture()
	first := f.addShift(t, "2026-03-02", 8, 16)
	second := f.addShift(t, "2026-03-02", 16, 23)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	_, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: first.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	// [8,16) and [16,23) share only the boundary instant.
	_, err = f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: second.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	assert.NoError(t, err)
}

func TestAssignWorker_NoShowDoesNotConflict(t *testing.T) {
	f := newFixture()
	first := f.addShift(t, "2026-03-02", 8, 16)
	second := f.addShift(t, "2026-03-02", 14, 22)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: first.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.MarkNoShow(staffCtx(t), resp.ID)
	require.NoError(t, err)

	_, err = f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: second.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	assert.NoError(t, err)
}

func TestAssignWorker_Forbidden(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	ctx := actorContext(t, "worker-1", user.RoleEmployee, nil)
	_, err := f.svc.AssignWorker(ctx, assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	assert.ErrorIs(t, err, user.ErrForbidden)
}

func TestAssignWorker_CancelledShift(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	require.NoError(t, f.shifts.UpdateStatus(context.Background(), sh.ID, shift.ShiftStatusCancelled))
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	_, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	assert.ErrorIs(t, err, shift.ErrShiftCancelled)
}

func TestUnassignWorker(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.UnassignWorker(staffCtx(t), resp.ID))

	_, err = f.assignments.GetByID(context.Background(), resp.ID)
	assert.ErrorIs(t, err, assignment.ErrAssignmentNotFound)
}

func TestUnassignWorker_LockedAfterClockIn(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.ClockIn(staffCtx(t), resp.ID)
	require.NoError(t, err)

	err = f.svc.UnassignWorker(staffCtx(t), resp.ID)
	assert.ErrorIs(t, err, assignment.ErrAssignmentLocked)
}

func TestMarkNoShow_AfterClockActivity(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.ClockIn(staffCtx(t), resp.ID)
	require.NoError(t, err)

	_, err = f.svc.MarkNoShow(staffCtx(t), resp.ID)
	assert.ErrorIs(t, err, assignment.ErrInvalidTransition)
}

func TestClockRoundTripWithBreak(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)
	id := resp.ID

	// First segment
	resp, err = f.svc.ClockIn(staffCtx(t), id)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusClockedIn, resp.Status)
	require.Len(t, resp.TimeEntries, 1)
	assert.Equal(t, 1, resp.TimeEntries[0].EntryNumber)
	assert.True(t, resp.TimeEntries[0].IsActive)

	// Shift leaves scheduled on first clock-in
	sh2, err := f.shifts.GetByID(context.Background(), sh.ID)
	require.NoError(t, err)
	assert.Equal(t, shift.ShiftStatusInProgress, sh2.Status)

	// Break: clocked_out is stored, on_break is displayed
	resp, err = f.svc.ClockOut(staffCtx(t), id)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusClockedOut, resp.Status)
	assert.Equal(t, assignment.StatusOnBreak, resp.DisplayStatus)
	assert.False(t, resp.TimeEntries[0].IsActive)

	// Second segment
	resp, err = f.svc.ClockIn(staffCtx(t), id)
	require.NoError(t, err)
	require.Len(t, resp.TimeEntries, 2)
	assert.Equal(t, 2, resp.TimeEntries[1].EntryNumber)
	assert.True(t, resp.TimeEntries[1].IsActive)
}

func TestClockIn_AlreadyActive(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.ClockIn(staffCtx(t), resp.ID)
	require.NoError(t, err)

	_, err = f.svc.ClockIn(staffCtx(t), resp.ID)
	assert.ErrorIs(t, err, assignment.ErrInvalidTransition)
}

func TestClockOut_WithoutActiveEntry(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.ClockOut(staffCtx(t), resp.ID)
	assert.ErrorIs(t, err, assignment.ErrInvalidTransition)
}

func TestClock_OwnAssignmentOnly(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)
	f.addWorker("worker-2", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	otherCtx := actorContext(t, "worker-2", user.RoleEmployee, nil)
	_, err = f.svc.ClockIn(otherCtx, resp.ID)
	assert.ErrorIs(t, err, user.ErrForbidden)

	ownCtx := actorContext(t, "worker-1", user.RoleEmployee, nil)
	_, err = f.svc.ClockIn(ownCtx, resp.ID)
	assert.NoError(t, err)
}

func TestEndWorkerShift_ClosesOpenEntry(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.ClockIn(staffCtx(t), resp.ID)
	require.NoError(t, err)

	resp, err = f.svc.EndWorkerShift(staffCtx(t), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusShiftEnded, resp.Status)
	require.Len(t, resp.TimeEntries, 1)
	assert.False(t, resp.TimeEntries[0].IsActive)
	assert.NotNil(t, resp.TimeEntries[0].ClockOut)
}

func TestEndWorkerShift_AlreadyEnded(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.EndWorkerShift(staffCtx(t), resp.ID)
	require.NoError(t, err)

	_, err = f.svc.EndWorkerShift(staffCtx(t), resp.ID)
	assert.ErrorIs(t, err, assignment.ErrAlreadyEnded)
}

func TestEndWorkerShift_NoShowBlocked(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.MarkNoShow(staffCtx(t), resp.ID)
	require.NoError(t, err)

	_, err = f.svc.EndWorkerShift(staffCtx(t), resp.ID)
	assert.ErrorIs(t, err, assignment.ErrInvalidTransition)
}

func TestCompletionDetector(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("chief-1", user.RoleCrewChief, true, false)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	chief, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "chief-1", RoleCode: shift.RoleCrewChief,
	})
	require.NoError(t, err)
	worker, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	// First worker ends; the other is still active.
	resp, err := f.svc.EndWorkerShift(staffCtx(t), worker.ID)
	require.NoError(t, err)
	assert.False(t, resp.ShiftCompleted)

	ts, err := f.timesheets.GetByShiftID(context.Background(), sh.ID)
	require.NoError(t, err)
	assert.Nil(t, ts)

	// Last worker ends; the shift winds down.
	resp, err = f.svc.EndWorkerShift(staffCtx(t), chief.ID)
	require.NoError(t, err)
	assert.True(t, resp.ShiftCompleted)

	ts, err = f.timesheets.GetByShiftID(context.Background(), sh.ID)
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.Equal(t, timesheet.StatusPendingCompanyApproval, ts.Status)
	// The submitter is whoever triggered the final transition, not the
	// shift's crew chief.
	assert.Equal(t, "staff-1", ts.SubmittedBy)

	sh2, err := f.shifts.GetByID(context.Background(), sh.ID)
	require.NoError(t, err)
	assert.Equal(t, shift.ShiftStatusCompleted, sh2.Status)
}

func TestCompletionDetector_NoShowCounts(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)
	f.addWorker("worker-2", user.RoleEmployee, false, false)

	first, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)
	second, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-2", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.EndWorkerShift(staffCtx(t), first.ID)
	require.NoError(t, err)

	// The final no-show closes out the shift too.
	resp, err := f.svc.MarkNoShow(staffCtx(t), second.ID)
	require.NoError(t, err)
	assert.True(t, resp.ShiftCompleted)

	ts, err := f.timesheets.GetByShiftID(context.Background(), sh.ID)
	require.NoError(t, err)
	require.NotNil(t, ts)
}

func TestRecheckCompletion_Idempotent(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	ended, err := f.svc.EndWorkerShift(staffCtx(t), resp.ID)
	require.NoError(t, err)
	assert.True(t, ended.ShiftCompleted)

	// Completion already ran; recheck finds nothing to do.
	completed, err := f.svc.RecheckCompletion(staffCtx(t), sh.ID)
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestCompletionDetector_EmptyShiftNeverCompletes(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)

	completed, err := f.svc.RecheckCompletion(staffCtx(t), sh.ID)
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestCompletionNotifiesCompanyApprovers(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)
	companyID := "company-1"
	f.users.add(user.User{ID: "client-1", Email: "client@example.com", Role: user.RoleCompanyUser, CompanyID: &companyID})

	resp, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleStagehand,
	})
	require.NoError(t, err)

	_, err = f.svc.EndWorkerShift(staffCtx(t), resp.ID)
	require.NoError(t, err)

	var submitted []notifyCall
	for _, c := range f.notifier.calls {
		if c.Type == notification.TypeTimesheetSubmitted {
			submitted = append(submitted, c)
		}
	}
	require.Len(t, submitted, 1)
	assert.Equal(t, "client-1", submitted[0].UserID)
}

func TestListShiftAssignments(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)
	f.addWorker("worker-2", user.RoleEmployee, false, false)

	for _, id := range []string{"worker-1", "worker-2"} {
		_, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
			ShiftID: sh.ID, UserID: id, RoleCode: shift.RoleStagehand,
		})
		require.NoError(t, err)
	}

	resp, err := f.svc.ListShiftAssignments(staffCtx(t), sh.ID)
	require.NoError(t, err)
	assert.Equal(t, sh.ID, resp.ShiftID)
	assert.Len(t, resp.Assignments, 2)
}

func TestAssignWorker_UnknownRole(t *testing.T) {
	f := newFixture()
	sh := f.addShift(t, "2026-03-02", 8, 16)
	f.addWorker("worker-1", user.RoleEmployee, false, false)

	_, err := f.svc.AssignWorker(staffCtx(t), assignment.AssignWorkerRequest{
		ShiftID: sh.ID, UserID: "worker-1", RoleCode: shift.RoleCode("WR"),
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, assignment.ErrAlreadyAssigned))
}

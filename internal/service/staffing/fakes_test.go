package staffing

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/assignment"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/notification"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/stretchr/testify/require"
)

// actorContext builds a context carrying real JWT claims, the same way the
// auth middleware does in production.
func actorContext(t *testing.T, id string, role user.Role, companyID *string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	claims := map[string]interface{}{
		"user_id": id,
		"role":    string(role),
	}
	if companyID != nil {
		claims["company_id"] = *companyID
	}
	tok, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type notifyCall struct {
	UserID string
	Type   notification.Type
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (f *fakeNotifier) Notify(ctx context.Context, userID string, t notification.Type, title, message string, referenceID *string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifyCall{UserID: userID, Type: t})
}

func (f *fakeNotifier) ListMine(ctx context.Context, limit int) ([]notification.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, id string) error { return nil }

type fakeShiftRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*shift.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{items: make(map[string]*shift.Shift)}
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	s.ID = fmt.Sprintf("shift-%d", f.seq)
	stored := s
	f.items[s.ID] = &stored
	return s, nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return *s, nil
}

func (f *fakeShiftRepo) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []shift.Shift
	for _, s := range f.items {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeShiftRepo) UpdateStatus(ctx context.Context, id string, status shift.ShiftStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[id]
	if !ok {
		return shift.ErrShiftNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeShiftRepo) SetRequirements(ctx context.Context, shiftID string, req shift.ShiftRequirement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[shiftID]
	if !ok {
		return shift.ErrShiftNotFound
	}
	s.Requirements = req
	return nil
}

func (f *fakeShiftRepo) GetRequirements(ctx context.Context, shiftID string) (shift.ShiftRequirement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[shiftID]
	if !ok {
		return shift.ShiftRequirement{}, shift.ErrShiftNotFound
	}
	return s.Requirements, nil
}

func (f *fakeShiftRepo) ConvertLegacyRequirements(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var converted int64
	for _, s := range f.items {
		if s.Requirements.LegacyWorkers > 0 {
			s.Requirements.Stagehands += s.Requirements.LegacyWorkers
			s.Requirements.LegacyWorkers = 0
			converted++
		}
	}
	return converted, nil
}

type fakeAssignmentRepo struct {
	mu     sync.Mutex
	seq    int
	items  map[string]*assignment.Assignment
	shifts *fakeShiftRepo
}

func newFakeAssignmentRepo(shifts *fakeShiftRepo) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{items: make(map[string]*assignment.Assignment), shifts: shifts}
}

func copyAssignment(a *assignment.Assignment) assignment.Assignment {
	out := *a
	out.TimeEntries = append([]assignment.TimeEntry(nil), a.TimeEntries...)
	return out
}

// enrich fills the join fields the production repository reads from the
// shifts table.
func (f *fakeAssignmentRepo) enrich(a *assignment.Assignment) {
	if f.shifts == nil {
		return
	}
	s, err := f.shifts.GetByID(context.Background(), a.ShiftID)
	if err != nil {
		return
	}
	date, start, end := s.Date, s.StartTime, s.EndTime
	a.ShiftDate, a.ShiftStart, a.ShiftEnd = &date, &start, &end
	a.JobName, a.CompanyName = s.JobName, s.CompanyName
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	a.ID = fmt.Sprintf("asg-%d", f.seq)
	stored := copyAssignment(&a)
	f.items[a.ID] = &stored
	return a, nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrAssignmentNotFound
	}
	out := copyAssignment(a)
	f.enrich(&out)
	return out, nil
}

func (f *fakeAssignmentRepo) GetByShiftAndUser(ctx context.Context, shiftID, userID string) (*assignment.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.items {
		if a.ShiftID == shiftID && a.UserID == userID {
			out := copyAssignment(a)
			f.enrich(&out)
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeAssignmentRepo) ListByShift(ctx context.Context, shiftID string) ([]assignment.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []assignment.Assignment
	for _, a := range f.items {
		if a.ShiftID == shiftID {
			item := copyAssignment(a)
			f.enrich(&item)
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]assignment.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []assignment.Assignment
	for _, a := range f.items {
		if a.UserID != userID {
			continue
		}
		item := copyAssignment(a)
		f.enrich(&item)
		if item.ShiftDate != nil && item.ShiftDate.Equal(date) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) UpdateStatus(ctx context.Context, id string, status assignment.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return assignment.ErrAssignmentNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return assignment.ErrAssignmentNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeAssignmentRepo) ConvertLegacyRole(ctx context.Context, from, to shift.RoleCode) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var converted int64
	for _, a := range f.items {
		if a.RoleCode == from {
			a.RoleCode = to
			converted++
		}
	}
	return converted, nil
}

type fakeTimeEntryRepo struct {
	assignments *fakeAssignmentRepo
	seq         int
}

func (f *fakeTimeEntryRepo) Create(ctx context.Context, e assignment.TimeEntry) (assignment.TimeEntry, error) {
	f.assignments.mu.Lock()
	defer f.assignments.mu.Unlock()
	a, ok := f.assignments.items[e.AssignmentID]
	if !ok {
		return assignment.TimeEntry{}, assignment.ErrAssignmentNotFound
	}
	f.seq++
	e.ID = fmt.Sprintf("te-%d", f.seq)
	a.TimeEntries = append(a.TimeEntries, e)
	return e, nil
}

func (f *fakeTimeEntryRepo) GetActive(ctx context.Context, assignmentID string) (*assignment.TimeEntry, error) {
	f.assignments.mu.Lock()
	defer f.assignments.mu.Unlock()
	a, ok := f.assignments.items[assignmentID]
	if !ok {
		return nil, assignment.ErrAssignmentNotFound
	}
	for i := range a.TimeEntries {
		if a.TimeEntries[i].IsActive {
			e := a.TimeEntries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeTimeEntryRepo) Close(ctx context.Context, id string, clockOut time.Time) error {
	f.assignments.mu.Lock()
	defer f.assignments.mu.Unlock()
	for _, a := range f.assignments.items {
		for i := range a.TimeEntries {
			if a.TimeEntries[i].ID == id {
				out := clockOut
				a.TimeEntries[i].ClockOut = &out
				a.TimeEntries[i].IsActive = false
				return nil
			}
		}
	}
	return assignment.ErrAssignmentNotFound
}

func (f *fakeTimeEntryRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]assignment.TimeEntry, error) {
	f.assignments.mu.Lock()
	defer f.assignments.mu.Unlock()
	a, ok := f.assignments.items[assignmentID]
	if !ok {
		return nil, assignment.ErrAssignmentNotFound
	}
	return append([]assignment.TimeEntry(nil), a.TimeEntries...), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	items map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: make(map[string]*user.User)}
}

func (f *fakeUserRepo) add(u user.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := u
	f.items[u.ID] = &stored
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.add(u)
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.items[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return *u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if u.Email == email {
			return *u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []user.User
	for _, u := range f.items {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateEligibility(ctx context.Context, id string, crewChief, forkOperator bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.items[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.CrewChiefEligible = crewChief
	u.ForkOperatorEligible = forkOperator
	return nil
}

type fakeTimesheetRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*timesheet.Timesheet
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{items: make(map[string]*timesheet.Timesheet)}
}

func (f *fakeTimesheetRepo) Create(ctx context.Context, t timesheet.Timesheet) (timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ShiftID == t.ShiftID {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetExists
		}
	}
	f.seq++
	t.ID = fmt.Sprintf("ts-%d", f.seq)
	stored := t
	f.items[t.ID] = &stored
	return t, nil
}

func (f *fakeTimesheetRepo) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return *t, nil
}

func (f *fakeTimesheetRepo) GetByShiftID(ctx context.Context, shiftID string) (*timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.items {
		if t.ShiftID == shiftID {
			out := *t
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeTimesheetRepo) SetCompanyApproval(ctx context.Context, id, signature, notes, approvedBy string, approvedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	t.Status = timesheet.StatusPendingManagerApproval
	t.CompanySignature = &signature
	if notes != "" {
		t.CompanyNotes = &notes
	}
	t.CompanyApprovedBy = &approvedBy
	at := approvedAt
	t.CompanyApprovedAt = &at
	return nil
}

func (f *fakeTimesheetRepo) SetManagerApproval(ctx context.Context, id, approvedBy string, approvedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	t.Status = timesheet.StatusCompleted
	t.ManagerApprovedBy = &approvedBy
	at := approvedAt
	t.ManagerApprovedAt = &at
	return nil
}

func (f *fakeTimesheetRepo) SetRejected(ctx context.Context, id, rejectedBy, reason string, rejectedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	t.Status = timesheet.StatusRejected
	t.RejectedBy = &rejectedBy
	t.RejectionReason = &reason
	at := rejectedAt
	t.RejectedAt = &at
	return nil
}

func (f *fakeTimesheetRepo) SetSignedPDFURL(ctx context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	u := url
	t.SignedPDFURL = &u
	return nil
}

func (f *fakeTimesheetRepo) ListAll(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timesheet.Timesheet
	for _, t := range f.items {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTimesheetRepo) ListForCompany(ctx context.Context, companyID string, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timesheet.Timesheet
	for _, t := range f.items {
		if t.CompanyID != nil && *t.CompanyID == companyID {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTimesheetRepo) ListForCrewChief(ctx context.Context, userID string, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timesheet.Timesheet
	for _, t := range f.items {
		if t.SubmittedBy == userID {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

package timesheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftcrew/staffing-backend-go/internal/config"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/assignment"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/notification"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/database"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/docgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSignature = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="

func actorContext(t *testing.T, id string, role user.Role, companyID *string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	claims := map[string]interface{}{"user_id": id, "role": string(role)}
	if companyID != nil {
		claims["company_id"] = *companyID
	}
	tok, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ database.TxManager = passthroughTx{}

type stubNotifier struct{}

func (stubNotifier) Notify(ctx context.Context, userID string, t notification.Type, title, message string, referenceID *string) {
}
func (stubNotifier) ListMine(ctx context.Context, limit int) ([]notification.Notification, error) {
	return nil, nil
}
func (stubNotifier) MarkRead(ctx context.Context, id string) error { return nil }

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{files: make(map[string][]byte)} }

func (m *memStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	return path, nil
}

func (m *memStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("not implemented")
}
func (m *memStorage) Delete(ctx context.Context, path string) error { return nil }
func (m *memStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return path, nil
}
func (m *memStorage) Exists(ctx context.Context, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

type memTimesheetRepo struct {
	mu          sync.Mutex
	seq         int
	items       map[string]*timesheet.Timesheet
	assignments *memAssignmentRepo
}

func newMemTimesheetRepo(assignments *memAssignmentRepo) *memTimesheetRepo {
	return &memTimesheetRepo{
		items:       make(map[string]*timesheet.Timesheet),
		assignments: assignments,
	}
}

func (r *memTimesheetRepo) seed(t timesheet.Timesheet) timesheet.Timesheet {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = fmt.Sprintf("ts-%d", r.seq)
	stored := t
	r.items[t.ID] = &stored
	return t
}

func (r *memTimesheetRepo) Create(ctx context.Context, t timesheet.Timesheet) (timesheet.Timesheet, error) {
	r.mu.Lock()
	for _, existing := range r.items {
		if existing.ShiftID == t.ShiftID {
			r.mu.Unlock()
			return timesheet.Timesheet{}, timesheet.ErrTimesheetExists
		}
	}
	r.mu.Unlock()
	return r.seed(t), nil
}

func (r *memTimesheetRepo) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return *t, nil
}

func (r *memTimesheetRepo) GetByShiftID(ctx context.Context, shiftID string) (*timesheet.Timesheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.items {
		if t.ShiftID == shiftID {
			out := *t
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memTimesheetRepo) SetCompanyApproval(ctx context.Context, id, signature, notes, approvedBy string, approvedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
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

func (r *memTimesheetRepo) SetManagerApproval(ctx context.Context, id, approvedBy string, approvedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	t.Status = timesheet.StatusCompleted
	t.ManagerApprovedBy = &approvedBy
	at := approvedAt
	t.ManagerApprovedAt = &at
	return nil
}

func (r *memTimesheetRepo) SetRejected(ctx context.Context, id, rejectedBy, reason string, rejectedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
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

func (r *memTimesheetRepo) SetSignedPDFURL(ctx context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	u := url
	t.SignedPDFURL = &u
	return nil
}

func (r *memTimesheetRepo) ListAll(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []timesheet.Timesheet
	for _, t := range r.items {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *memTimesheetRepo) ListForCompany(ctx context.Context, companyID string, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []timesheet.Timesheet
	for _, t := range r.items {
		if t.CompanyID != nil && *t.CompanyID == companyID {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

// ListForCrewChief mirrors the SQL scoping: only shifts where the user
// holds the CC assignment.
func (r *memTimesheetRepo) ListForCrewChief(ctx context.Context, userID string, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []timesheet.Timesheet
	for _, t := range r.items {
		for _, a := range r.assignments.byShift[t.ShiftID] {
			if a.UserID == userID && a.RoleCode == shift.RoleCrewChief {
				out = append(out, *t)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

type memShiftRepo struct {
	items map[string]shift.Shift
}

func (r *memShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	return s, nil
}
func (r *memShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	s, ok := r.items[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}
func (r *memShiftRepo) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	return nil, 0, nil
}
func (r *memShiftRepo) UpdateStatus(ctx context.Context, id string, status shift.ShiftStatus) error {
	return nil
}
func (r *memShiftRepo) SetRequirements(ctx context.Context, shiftID string, req shift.ShiftRequirement) error {
	return nil
}
func (r *memShiftRepo) GetRequirements(ctx context.Context, shiftID string) (shift.ShiftRequirement, error) {
	return shift.ShiftRequirement{}, nil
}
func (r *memShiftRepo) ConvertLegacyRequirements(ctx context.Context) (int64, error) { return 0, nil }

type memAssignmentRepo struct {
	byShift map[string][]assignment.Assignment
}

func (r *memAssignmentRepo) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	return a, nil
}
func (r *memAssignmentRepo) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	return assignment.Assignment{}, assignment.ErrAssignmentNotFound
}
func (r *memAssignmentRepo) GetByShiftAndUser(ctx context.Context, shiftID, userID string) (*assignment.Assignment, error) {
	for _, a := range r.byShift[shiftID] {
		if a.UserID == userID {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}
func (r *memAssignmentRepo) ListByShift(ctx context.Context, shiftID string) ([]assignment.Assignment, error) {
	return r.byShift[shiftID], nil
}
func (r *memAssignmentRepo) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]assignment.Assignment, error) {
	return nil, nil
}
func (r *memAssignmentRepo) UpdateStatus(ctx context.Context, id string, status assignment.Status) error {
	return nil
}
func (r *memAssignmentRepo) Delete(ctx context.Context, id string) error { return nil }
func (r *memAssignmentRepo) ConvertLegacyRole(ctx context.Context, from, to shift.RoleCode) (int64, error) {
	return 0, nil
}

type memUserRepo struct {
	items map[string]user.User
}

func (r *memUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }
func (r *memUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}
func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (r *memUserRepo) ListByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	return nil, nil
}
func (r *memUserRepo) UpdateEligibility(ctx context.Context, id string, crewChief, forkOperator bool) error {
	return nil
}

type tsFixture struct {
	timesheets  *memTimesheetRepo
	assignments *memAssignmentRepo
	storage     *memStorage
	svc         timesheet.TimesheetService
	server      *httptest.Server
}

// newTsFixture wires the service against an in-memory store and a stub
// document service answering with docgenStatus.
func newTsFixture(t *testing.T, docgenStatus int) *tsFixture {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if docgenStatus != http.StatusOK {
			w.WriteHeader(docgenStatus)
			fmt.Fprint(w, `{"error_code":"RENDER_FAILED","message":"renderer unavailable"}`)
			return
		}
		fmt.Fprint(w, `{"document_url":"https://docs.example.com/signed.pdf"}`)
	}))
	t.Cleanup(server.Close)

	companyID := "company-1"
	jobName := "Arena Load-In"
	shifts := &memShiftRepo{items: map[string]shift.Shift{
		"shift-1": {ID: "shift-1", JobID: "job-1", Status: shift.ShiftStatusCompleted, CompanyID: &companyID, JobName: &jobName},
		"shift-2": {ID: "shift-2", JobID: "job-1", Status: shift.ShiftStatusCompleted, CompanyID: &companyID, JobName: &jobName},
	}}
	assignments := &memAssignmentRepo{byShift: map[string][]assignment.Assignment{
		"shift-1": {
			{ID: "asg-1", ShiftID: "shift-1", UserID: "chief-1", RoleCode: shift.RoleCrewChief, Status: assignment.StatusShiftEnded},
			{ID: "asg-2", ShiftID: "shift-1", UserID: "chief-2", RoleCode: shift.RoleStagehand, Status: assignment.StatusShiftEnded},
		},
	}}
	users := &memUserRepo{items: map[string]user.User{
		"client-1": {ID: "client-1", Name: "Client One", Email: "client@example.com", Role: user.RoleCompanyUser, CompanyID: &companyID},
		"staff-1":  {ID: "staff-1", Name: "Staff One", Email: "staff@example.com", Role: user.RoleStaff},
	}}

	repo := newMemTimesheetRepo(assignments)
	store := newMemStorage()

	svc := NewTimesheetService(
		passthroughTx{}, repo, shifts, assignments, users,
		docgen.NewClient(config.DocGenConfig{BaseURL: server.URL, APIKey: "test", Timeout: 5 * time.Second}),
		store, stubNotifier{},
	)

	return &tsFixture{timesheets: repo, assignments: assignments, storage: store, svc: svc, server: server}
}

func (f *tsFixture) seedPending(status timesheet.Status) timesheet.Timesheet {
	return f.seedPendingOnShift("shift-1", status)
}

func (f *tsFixture) seedPendingOnShift(shiftID string, status timesheet.Status) timesheet.Timesheet {
	companyID := "company-1"
	return f.timesheets.seed(timesheet.Timesheet{
		ShiftID:     shiftID,
		Status:      status,
		SubmittedBy: "chief-1",
		SubmittedAt: time.Now().UTC(),
		CompanyID:   &companyID,
	})
}

func TestApprovalChain_HappyPath(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ts := f.seedPending(timesheet.StatusPendingCompanyApproval)

	companyID := "company-1"
	clientCtx := actorContext(t, "client-1", user.RoleCompanyUser, &companyID)

	resp, err := f.svc.ApproveAsCompany(clientCtx, timesheet.CompanyApprovalRequest{
		ID:        ts.ID,
		Signature: validSignature,
		Notes:     "All hours verified",
	})
	require.NoError(t, err)

	assert.Equal(t, timesheet.StatusPendingManagerApproval, resp.Timesheet.Status)
	assert.True(t, resp.PDFGenerated)
	assert.Nil(t, resp.PDFError)
	require.NotNil(t, resp.Timesheet.SignedPDFURL)
	assert.Equal(t, "https://docs.example.com/signed.pdf", *resp.Timesheet.SignedPDFURL)

	// The raw signature image is archived alongside the record.
	exists, err := f.storage.Exists(context.Background(), "signatures/"+ts.ID+".png")
	require.NoError(t, err)
	assert.True(t, exists)

	staffCtx := actorContext(t, "staff-1", user.RoleStaff, nil)
	final, err := f.svc.ApproveAsManager(staffCtx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusCompleted, final.Status)
	require.NotNil(t, final.ManagerApprovedBy)
	assert.Equal(t, "staff-1", *final.ManagerApprovedBy)
}

func TestApproveAsCompany_PDFFailureDoesNotRollBack(t *testing.T) {
	f := newTsFixture(t, http.StatusInternalServerError)
	ts := f.seedPending(timesheet.StatusPendingCompanyApproval)

	companyID := "company-1"
	clientCtx := actorContext(t, "client-1", user.RoleCompanyUser, &companyID)

	resp, err := f.svc.ApproveAsCompany(clientCtx, timesheet.CompanyApprovalRequest{
		ID:        ts.ID,
		Signature: validSignature,
	})
	require.NoError(t, err)

	assert.False(t, resp.PDFGenerated)
	require.NotNil(t, resp.PDFError)
	assert.Equal(t, timesheet.StatusPendingManagerApproval, resp.Timesheet.Status)

	// The approval stands in the store.
	stored, err := f.timesheets.GetByID(context.Background(), ts.ID)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusPendingManagerApproval, stored.Status)
	assert.Nil(t, stored.SignedPDFURL)
}

func TestApproveAsCompany_WrongCompany(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ts := f.seedPending(timesheet.StatusPendingCompanyApproval)

	otherCompany := "company-9"
	ctx := actorContext(t, "client-9", user.RoleCompanyUser, &otherCompany)

	_, err := f.svc.ApproveAsCompany(ctx, timesheet.CompanyApprovalRequest{
		ID:        ts.ID,
		Signature: validSignature,
	})
	assert.ErrorIs(t, err, user.ErrForbidden)
}

func TestApproveAsCompany_WrongState(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ts := f.seedPending(timesheet.StatusPendingManagerApproval)

	companyID := "company-1"
	ctx := actorContext(t, "client-1", user.RoleCompanyUser, &companyID)

	_, err := f.svc.ApproveAsCompany(ctx, timesheet.CompanyApprovalRequest{
		ID:        ts.ID,
		Signature: validSignature,
	})
	assert.ErrorIs(t, err, timesheet.ErrInvalidState)
}

func TestApproveAsCompany_InvalidSignature(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ts := f.seedPending(timesheet.StatusPendingCompanyApproval)

	companyID := "company-1"
	ctx := actorContext(t, "client-1", user.RoleCompanyUser, &companyID)

	_, err := f.svc.ApproveAsCompany(ctx, timesheet.CompanyApprovalRequest{
		ID:        ts.ID,
		Signature: "not-a-data-url",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, timesheet.ErrInvalidState)
}

func TestApproveAsManager_SkippingCompanyApproval(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ts := f.seedPending(timesheet.StatusPendingCompanyApproval)

	staffCtx := actorContext(t, "staff-1", user.RoleStaff, nil)
	_, err := f.svc.ApproveAsManager(staffCtx, ts.ID)
	assert.ErrorIs(t, err, timesheet.ErrInvalidState)
}

func TestReject_FromEitherPendingState(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)

	for _, status := range []timesheet.Status{timesheet.StatusPendingCompanyApproval, timesheet.StatusPendingManagerApproval} {
		repo := f.timesheets
		repo.items = make(map[string]*timesheet.Timesheet)
		ts := f.seedPending(status)

		staffCtx := actorContext(t, "staff-1", user.RoleStaff, nil)
		resp, err := f.svc.Reject(staffCtx, timesheet.RejectRequest{ID: ts.ID, Reason: "hours disputed"})
		require.NoError(t, err, "status %s", status)
		assert.Equal(t, timesheet.StatusRejected, resp.Status)
		require.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "hours disputed", *resp.RejectionReason)
	}
}

func TestReject_TerminalState(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ts := f.seedPending(timesheet.StatusCompleted)

	staffCtx := actorContext(t, "staff-1", user.RoleStaff, nil)
	_, err := f.svc.Reject(staffCtx, timesheet.RejectRequest{ID: ts.ID, Reason: "too late"})
	assert.ErrorIs(t, err, timesheet.ErrInvalidState)
}

func TestReject_ReasonRequired(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ts := f.seedPending(timesheet.StatusPendingCompanyApproval)

	staffCtx := actorContext(t, "staff-1", user.RoleStaff, nil)
	_, err := f.svc.Reject(staffCtx, timesheet.RejectRequest{ID: ts.ID})
	assert.Error(t, err)
}

func TestCreate_DuplicateShift(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	f.seedPending(timesheet.StatusPendingCompanyApproval)

	staffCtx := actorContext(t, "staff-1", user.RoleStaff, nil)
	_, err := f.svc.Create(staffCtx, "shift-1")
	assert.ErrorIs(t, err, timesheet.ErrTimesheetExists)
}

func TestCreate_OpensPendingCompanyApproval(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)

	staffCtx := actorContext(t, "staff-1", user.RoleStaff, nil)
	resp, err := f.svc.Create(staffCtx, "shift-2")
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusPendingCompanyApproval, resp.Status)
	assert.Equal(t, "staff-1", resp.SubmittedBy)
}

func TestRegeneratePDF_RequiresSignature(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ts := f.seedPending(timesheet.StatusPendingManagerApproval)

	staffCtx := actorContext(t, "staff-1", user.RoleStaff, nil)
	_, err := f.svc.RegeneratePDF(staffCtx, ts.ID)
	assert.ErrorIs(t, err, timesheet.ErrMissingSignature)
}

func TestGet_CrewChiefRequiresCCAssignment(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ts := f.seedPending(timesheet.StatusPendingCompanyApproval)

	// chief-1 holds the CC slot on the shift.
	ccCtx := actorContext(t, "chief-1", user.RoleCrewChief, nil)
	_, err := f.svc.Get(ccCtx, ts.ID)
	require.NoError(t, err)

	// chief-2 worked the same shift, but as a stagehand.
	shCtx := actorContext(t, "chief-2", user.RoleCrewChief, nil)
	_, err = f.svc.Get(shCtx, ts.ID)
	assert.ErrorIs(t, err, user.ErrForbidden)

	// No assignment at all is forbidden too.
	strangerCtx := actorContext(t, "chief-9", user.RoleCrewChief, nil)
	_, err = f.svc.Get(strangerCtx, ts.ID)
	assert.ErrorIs(t, err, user.ErrForbidden)
}

func TestList_CrewChiefScopedToCCShifts(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ccSheet := f.seedPendingOnShift("shift-1", timesheet.StatusPendingCompanyApproval)
	f.seedPendingOnShift("shift-2", timesheet.StatusPendingCompanyApproval)

	// chief-1 also worked shift-2, but not as CC.
	f.assignments.byShift["shift-2"] = append(f.assignments.byShift["shift-2"],
		assignment.Assignment{ID: "asg-3", ShiftID: "shift-2", UserID: "chief-1", RoleCode: shift.RoleStagehand, Status: assignment.StatusShiftEnded},
	)

	ccCtx := actorContext(t, "chief-1", user.RoleCrewChief, nil)
	resp, err := f.svc.List(ccCtx, timesheet.TimesheetFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Timesheets, 1)
	assert.Equal(t, ccSheet.ID, resp.Timesheets[0].ID)
}

func TestList_EmployeeForbidden(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	f.seedPending(timesheet.StatusPendingCompanyApproval)

	ctx := actorContext(t, "worker-1", user.RoleEmployee, nil)
	_, err := f.svc.List(ctx, timesheet.TimesheetFilter{})
	assert.ErrorIs(t, err, user.ErrForbidden)
}

func TestGet_IncludesWorkerLines(t *testing.T) {
	f := newTsFixture(t, http.StatusOK)
	ts := f.seedPending(timesheet.StatusPendingCompanyApproval)

	staffCtx := actorContext(t, "staff-1", user.RoleStaff, nil)
	resp, err := f.svc.Get(staffCtx, ts.ID)
	require.NoError(t, err)
	require.Len(t, resp.Workers, 2)
	assert.Equal(t, "chief-1", resp.Workers[0].UserID)
	assert.Equal(t, "CC", resp.Workers[0].RoleCode)
	assert.Equal(t, "chief-2", resp.Workers[1].UserID)
	assert.Equal(t, "SH", resp.Workers[1].RoleCode)
}

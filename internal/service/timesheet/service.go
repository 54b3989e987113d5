package timesheet

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/assignment"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/notification"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/database"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/docgen"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/storage"
)

type TimesheetServiceImpl struct {
	txm database.TxManager
	timesheet.TimesheetRepository
	shift.ShiftRepository
	assignment.AssignmentRepository
	user.UserRepository
	docgen   *docgen.Client
	storage  storage.FileStorage
	notifier notification.NotificationService
}

func NewTimesheetService(
	txm database.TxManager,
	timesheetRepo timesheet.TimesheetRepository,
	shiftRepo shift.ShiftRepository,
	assignmentRepo assignment.AssignmentRepository,
	userRepo user.UserRepository,
	docgenClient *docgen.Client,
	fileStorage storage.FileStorage,
	notifier notification.NotificationService,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		txm:                  txm,
		TimesheetRepository:  timesheetRepo,
		ShiftRepository:      shiftRepo,
		AssignmentRepository: assignmentRepo,
		UserRepository:       userRepo,
		docgen:               docgenClient,
		storage:              fileStorage,
		notifier:             notifier,
	}
}

// Create implements timesheet.TimesheetService. Used when a shift needs a
// timesheet outside the automatic completion path.
func (s *TimesheetServiceImpl) Create(ctx context.Context, shiftID string) (timesheet.TimesheetResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionTimesheetCreate) {
		return timesheet.TimesheetResponse{}, user.ErrForbidden
	}

	if _, err := s.ShiftRepository.GetByID(ctx, shiftID); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	existing, err := s.TimesheetRepository.GetByShiftID(ctx, shiftID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to check existing timesheet: %w", err)
	}
	if existing != nil {
		return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetExists
	}

	var created timesheet.Timesheet
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		created, err = s.TimesheetRepository.Create(txCtx, timesheet.Timesheet{
			ShiftID:     shiftID,
			Status:      timesheet.StatusPendingCompanyApproval,
			SubmittedBy: actor.ID,
			SubmittedAt: time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	return s.toTimesheetResponse(ctx, &created, false), nil
}

// Get implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Get(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionTimesheetView) {
		return timesheet.TimesheetResponse{}, user.ErrForbidden
	}

	t, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	if err := s.checkVisibility(ctx, actor, &t); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	return s.toTimesheetResponse(ctx, &t, true), nil
}

// List implements timesheet.TimesheetService. Visibility is scoped by role:
// staff see all, company users their company, crew chiefs their shifts.
func (s *TimesheetServiceImpl) List(ctx context.Context, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetsResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.ListTimesheetsResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionTimesheetView) {
		return timesheet.ListTimesheetsResponse{}, user.ErrForbidden
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	var (
		list  []timesheet.Timesheet
		total int64
	)
	switch {
	case actor.IsStaff():
		list, total, err = s.TimesheetRepository.ListAll(ctx, filter)
	case actor.Role == user.RoleCompanyUser:
		if actor.CompanyID == nil {
			return timesheet.ListTimesheetsResponse{}, user.ErrInvalidActor
		}
		list, total, err = s.TimesheetRepository.ListForCompany(ctx, *actor.CompanyID, filter)
	case actor.Role == user.RoleCrewChief:
		list, total, err = s.TimesheetRepository.ListForCrewChief(ctx, actor.ID, filter)
	default:
		return timesheet.ListTimesheetsResponse{}, user.ErrForbidden
	}
	if err != nil {
		return timesheet.ListTimesheetsResponse{}, err
	}

	resp := timesheet.ListTimesheetsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Timesheets: make([]timesheet.TimesheetResponse, 0, len(list)),
	}
	for i := range list {
		resp.Timesheets = append(resp.Timesheets, s.toTimesheetResponse(ctx, &list[i], false))
	}
	return resp, nil
}

// ApproveAsCompany implements timesheet.TimesheetService. The approval
// commits first; PDF generation happens after and reports its own outcome.
func (s *TimesheetServiceImpl) ApproveAsCompany(ctx context.Context, req timesheet.CompanyApprovalRequest) (timesheet.CompanyApprovalResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.CompanyApprovalResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.CompanyApprovalResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionTimesheetApproveCompany) {
		return timesheet.CompanyApprovalResponse{}, user.ErrForbidden
	}

	t, err := s.TimesheetRepository.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.CompanyApprovalResponse{}, err
	}
	if err := s.checkVisibility(ctx, actor, &t); err != nil {
		return timesheet.CompanyApprovalResponse{}, err
	}
	if t.Status != timesheet.StatusPendingCompanyApproval {
		return timesheet.CompanyApprovalResponse{}, timesheet.ErrInvalidState
	}

	approvedAt := time.Now().UTC()
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		return s.TimesheetRepository.SetCompanyApproval(txCtx, req.ID, req.Signature, req.Notes, actor.ID, approvedAt)
	})
	if err != nil {
		return timesheet.CompanyApprovalResponse{}, err
	}

	s.storeSignatureImage(ctx, req.ID, req.Signature)

	t.Status = timesheet.StatusPendingManagerApproval
	t.CompanySignature = &req.Signature
	t.CompanyApprovedBy = &actor.ID
	t.CompanyApprovedAt = &approvedAt
	if req.Notes != "" {
		t.CompanyNotes = &req.Notes
	}

	resp := timesheet.CompanyApprovalResponse{
		Timesheet: s.toTimesheetResponse(ctx, &t, true),
	}

	url, genErr := s.generatePDF(ctx, &t, actor.ID)
	if genErr != nil {
		slog.Error("signed document generation failed", "timesheet_id", t.ID, "error", genErr)
		msg := fmt.Sprintf("%v: %v", timesheet.ErrDocumentGeneration, genErr)
		resp.PDFError = &msg
	} else {
		resp.PDFGenerated = true
		resp.Timesheet.SignedPDFURL = &url
	}

	s.notifier.Notify(ctx, t.SubmittedBy, notification.TypeTimesheetApproved,
		"Timesheet approved by the client",
		"The client company signed off; manager approval is next", &t.ID)

	return resp, nil
}

// ApproveAsManager implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ApproveAsManager(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionTimesheetApproveManager) {
		return timesheet.TimesheetResponse{}, user.ErrForbidden
	}

	t, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if t.Status != timesheet.StatusPendingManagerApproval {
		return timesheet.TimesheetResponse{}, timesheet.ErrInvalidState
	}

	approvedAt := time.Now().UTC()
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		return s.TimesheetRepository.SetManagerApproval(txCtx, id, actor.ID, approvedAt)
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	t.Status = timesheet.StatusCompleted
	t.ManagerApprovedBy = &actor.ID
	t.ManagerApprovedAt = &approvedAt

	s.notifier.Notify(ctx, t.SubmittedBy, notification.TypeTimesheetApproved,
		"Timesheet completed",
		"Both approvals are in; the timesheet is final", &t.ID)

	return s.toTimesheetResponse(ctx, &t, true), nil
}

// Reject implements timesheet.TimesheetService. Allowed from either pending
// state; rejected is terminal.
func (s *TimesheetServiceImpl) Reject(ctx context.Context, req timesheet.RejectRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionTimesheetReject) {
		return timesheet.TimesheetResponse{}, user.ErrForbidden
	}

	t, err := s.TimesheetRepository.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if err := s.checkVisibility(ctx, actor, &t); err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if !t.Status.IsPending() {
		return timesheet.TimesheetResponse{}, timesheet.ErrInvalidState
	}

	rejectedAt := time.Now().UTC()
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		return s.TimesheetRepository.SetRejected(txCtx, req.ID, actor.ID, req.Reason, rejectedAt)
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	t.Status = timesheet.StatusRejected
	t.RejectedBy = &actor.ID
	t.RejectedAt = &rejectedAt
	t.RejectionReason = &req.Reason

	s.notifier.Notify(ctx, t.SubmittedBy, notification.TypeTimesheetRejected,
		"Timesheet rejected",
		req.Reason, &t.ID)

	return s.toTimesheetResponse(ctx, &t, true), nil
}

// RegeneratePDF implements timesheet.TimesheetService. Retries document
// generation against the signature captured at company approval.
func (s *TimesheetServiceImpl) RegeneratePDF(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionTimesheetApproveManager) {
		return timesheet.TimesheetResponse{}, user.ErrForbidden
	}

	t, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if t.CompanySignature == nil || t.CompanyApprovedBy == nil {
		return timesheet.TimesheetResponse{}, timesheet.ErrMissingSignature
	}

	url, err := s.generatePDF(ctx, &t, *t.CompanyApprovedBy)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("%w: %v", timesheet.ErrDocumentGeneration, err)
	}

	t.SignedPDFURL = &url
	return s.toTimesheetResponse(ctx, &t, true), nil
}

// generatePDF requests the signed document and persists its URL.
func (s *TimesheetServiceImpl) generatePDF(ctx context.Context, t *timesheet.Timesheet, approverID string) (string, error) {
	if t.CompanySignature == nil {
		return "", timesheet.ErrMissingSignature
	}

	signerName := approverID
	if approver, err := s.UserRepository.GetByID(ctx, approverID); err == nil {
		signerName = approver.Name
	}

	url, err := s.docgen.GenerateSignedTimesheet(ctx, t.ID, *t.CompanySignature, signerName)
	if err != nil {
		return "", err
	}

	if err := s.TimesheetRepository.SetSignedPDFURL(ctx, t.ID, url); err != nil {
		return "", fmt.Errorf("failed to store signed document URL: %w", err)
	}

	return url, nil
}

// storeSignatureImage archives the raw signature image alongside the
// timesheet. Best effort; the signature payload itself is already persisted.
func (s *TimesheetServiceImpl) storeSignatureImage(ctx context.Context, timesheetID, payload string) {
	idx := strings.Index(payload, ",")
	if idx < 0 {
		return
	}
	raw, err := base64.StdEncoding.DecodeString(payload[idx+1:])
	if err != nil {
		slog.Warn("signature payload is not valid base64", "timesheet_id", timesheetID)
		return
	}

	ext, contentType := "png", "image/png"
	if strings.HasPrefix(payload, "data:image/jpeg") {
		ext, contentType = "jpg", "image/jpeg"
	}

	path := fmt.Sprintf("signatures/%s.%s", timesheetID, ext)
	if _, err := s.storage.Upload(ctx, bytes.NewReader(raw), path, contentType); err != nil {
		slog.Error("failed to archive signature image", "timesheet_id", timesheetID, "error", err)
	}
}

// checkVisibility blocks company users from timesheets outside their company.
func (s *TimesheetServiceImpl) checkVisibility(ctx context.Context, actor user.Actor, t *timesheet.Timesheet) error {
	switch actor.Role {
	case user.RoleCompanyUser:
		if actor.CompanyID == nil || t.CompanyID == nil || *actor.CompanyID != *t.CompanyID {
			return user.ErrForbidden
		}
	case user.RoleCrewChief:
		a, err := s.AssignmentRepository.GetByShiftAndUser(ctx, t.ShiftID, actor.ID)
		if err != nil {
			return fmt.Errorf("failed to check crew chief assignment: %w", err)
		}
		// Working the shift in another role does not grant access; the
		// assignment must be the CC slot.
		if a == nil || a.RoleCode != shift.RoleCrewChief {
			return user.ErrForbidden
		}
	case user.RoleEmployee:
		return user.ErrForbidden
	}
	return nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func (s *TimesheetServiceImpl) toTimesheetResponse(ctx context.Context, t *timesheet.Timesheet, withWorkers bool) timesheet.TimesheetResponse {
	resp := timesheet.TimesheetResponse{
		ID:                t.ID,
		ShiftID:           t.ShiftID,
		JobName:           t.JobName,
		CompanyName:       t.CompanyName,
		Status:            t.Status,
		SubmittedBy:       t.SubmittedBy,
		SubmittedAt:       t.SubmittedAt.Format(time.RFC3339),
		CompanyApprovedBy: t.CompanyApprovedBy,
		CompanyApprovedAt: timePtrToString(t.CompanyApprovedAt),
		CompanyNotes:      t.CompanyNotes,
		ManagerApprovedBy: t.ManagerApprovedBy,
		ManagerApprovedAt: timePtrToString(t.ManagerApprovedAt),
		RejectedBy:        t.RejectedBy,
		RejectionReason:   t.RejectionReason,
		SignedPDFURL:      t.SignedPDFURL,
	}
	if t.ShiftDate != nil {
		formatted := t.ShiftDate.Format("2006-01-02")
		resp.ShiftDate = &formatted
	}

	if withWorkers {
		if list, err := s.AssignmentRepository.ListByShift(ctx, t.ShiftID); err == nil {
			for i := range list {
				a := &list[i]
				resp.Workers = append(resp.Workers, timesheet.WorkerLine{
					UserID:        a.UserID,
					WorkerName:    a.WorkerName,
					RoleCode:      string(a.RoleCode),
					Status:        string(a.Status),
					WorkedMinutes: a.WorkedMinutes(),
				})
			}
		}
	}

	return resp
}

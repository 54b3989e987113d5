package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/assignment"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/job"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/cache"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/database"
)

type ShiftServiceImpl struct {
	txm database.TxManager
	shift.ShiftRepository
	job.JobRepository
	assignment.AssignmentRepository
	cache *cache.Cache
}

func NewShiftService(
	txm database.TxManager,
	shiftRepo shift.ShiftRepository,
	jobRepo job.JobRepository,
	assignmentRepo assignment.AssignmentRepository,
	c *cache.Cache,
) shift.ShiftService {
	return &ShiftServiceImpl{
		txm:                  txm,
		ShiftRepository:      shiftRepo,
		JobRepository:        jobRepo,
		AssignmentRepository: assignmentRepo,
		cache:                c,
	}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionShiftManage) {
		return shift.ShiftResponse{}, user.ErrForbidden
	}

	if _, err := s.JobRepository.GetByID(ctx, req.JobID); err != nil {
		return shift.ShiftResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	start, _ := time.Parse(time.RFC3339, req.StartTime)
	end, _ := time.Parse(time.RFC3339, req.EndTime)

	var created shift.Shift
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		created, err = s.ShiftRepository.Create(txCtx, shift.Shift{
			JobID:        req.JobID,
			Date:         date,
			StartTime:    start.UTC(),
			EndTime:      end.UTC(),
			Status:       shift.ShiftStatusScheduled,
			Requirements: shift.CountsToRequirement(req.Counts),
		})
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.toShiftResponse(ctx, &created, false), nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionShiftView) {
		return shift.ShiftResponse{}, user.ErrForbidden
	}

	sh, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := scopeToCompany(actor, sh.CompanyID); err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.toShiftResponse(ctx, &sh, true), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftsResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionShiftView) {
		return shift.ListShiftsResponse{}, user.ErrForbidden
	}

	// Company users only ever see their own shifts.
	if actor.Role == user.RoleCompanyUser {
		if actor.CompanyID == nil {
			return shift.ListShiftsResponse{}, user.ErrInvalidActor
		}
		filter.CompanyID = actor.CompanyID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	shifts, total, err := s.ShiftRepository.List(ctx, filter)
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}

	resp := shift.ListShiftsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Shifts:     make([]shift.ShiftResponse, 0, len(shifts)),
	}
	for i := range shifts {
		resp.Shifts = append(resp.Shifts, s.toShiftResponse(ctx, &shifts[i], true))
	}
	return resp, nil
}

// SetRequirements implements shift.ShiftService. Counters are stored as
// given; the crew chief floor is applied when reading them back.
func (s *ShiftServiceImpl) SetRequirements(ctx context.Context, req shift.SetRequirementsRequest) (shift.RequirementResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.RequirementResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return shift.RequirementResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionShiftManage) {
		return shift.RequirementResponse{}, user.ErrForbidden
	}

	sh, err := s.ShiftRepository.GetByID(ctx, req.ShiftID)
	if err != nil {
		return shift.RequirementResponse{}, err
	}
	if sh.Status == shift.ShiftStatusCancelled {
		return shift.RequirementResponse{}, shift.ErrShiftCancelled
	}

	requirement := req.Requirement()
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		return s.ShiftRepository.SetRequirements(txCtx, req.ShiftID, requirement)
	})
	if err != nil {
		return shift.RequirementResponse{}, err
	}

	s.cache.InvalidateTag("shift:" + req.ShiftID)

	return toRequirementResponse(req.ShiftID, requirement), nil
}

// GetRequirements implements shift.ShiftService.
func (s *ShiftServiceImpl) GetRequirements(ctx context.Context, shiftID string) (shift.RequirementResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return shift.RequirementResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionShiftView) {
		return shift.RequirementResponse{}, user.ErrForbidden
	}

	req, err := s.ShiftRepository.GetRequirements(ctx, shiftID)
	if err != nil {
		return shift.RequirementResponse{}, err
	}

	return toRequirementResponse(shiftID, req), nil
}

// GetFulfillment implements shift.ShiftService.
func (s *ShiftServiceImpl) GetFulfillment(ctx context.Context, shiftID string) (shift.FulfillmentResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return shift.FulfillmentResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionShiftView) {
		return shift.FulfillmentResponse{}, user.ErrForbidden
	}

	cacheKey := "fulfillment:" + shiftID
	if cached, ok := s.cache.Get(cacheKey); ok {
		if resp, ok := cached.(shift.FulfillmentResponse); ok {
			return resp, nil
		}
	}

	req, err := s.ShiftRepository.GetRequirements(ctx, shiftID)
	if err != nil {
		return shift.FulfillmentResponse{}, err
	}

	assigned, err := s.countActiveAssignments(ctx, shiftID)
	if err != nil {
		return shift.FulfillmentResponse{}, err
	}

	required := req.Total()
	resp := shift.FulfillmentResponse{
		ShiftID:     shiftID,
		Required:    required,
		Assigned:    assigned,
		Fulfillment: shift.ClassifyFulfillment(required, assigned),
	}

	s.cache.Set(cacheKey, resp, "shift:"+shiftID)

	return resp, nil
}

// MigrateLegacyRoles implements shift.ShiftService. Folds retired WR counts
// into stagehand counts and rewrites WR assignments, in one transaction.
func (s *ShiftServiceImpl) MigrateLegacyRoles(ctx context.Context) (shift.MigrationResult, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return shift.MigrationResult{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionAdminMigrate) {
		return shift.MigrationResult{}, user.ErrAdminRequired
	}

	var result shift.MigrationResult
	err = s.txm.WithinTx(ctx, func(txCtx context.Context) error {
		reqs, err := s.ShiftRepository.ConvertLegacyRequirements(txCtx)
		if err != nil {
			return fmt.Errorf("failed to convert legacy requirements: %w", err)
		}
		asgs, err := s.AssignmentRepository.ConvertLegacyRole(txCtx, shift.RoleLegacyWorker, shift.RoleStagehand)
		if err != nil {
			return fmt.Errorf("failed to convert legacy assignments: %w", err)
		}
		result = shift.MigrationResult{
			RequirementsConverted: reqs,
			AssignmentsConverted:  asgs,
		}
		return nil
	})
	if err != nil {
		return shift.MigrationResult{}, err
	}

	return result, nil
}

func (s *ShiftServiceImpl) countActiveAssignments(ctx context.Context, shiftID string) (int, error) {
	list, err := s.AssignmentRepository.ListByShift(ctx, shiftID)
	if err != nil {
		return 0, fmt.Errorf("failed to list assignments: %w", err)
	}
	count := 0
	for i := range list {
		if list[i].Status != assignment.StatusNoShow {
			count++
		}
	}
	return count, nil
}

// scopeToCompany blocks company users from other companies' shifts.
func scopeToCompany(actor user.Actor, companyID *string) error {
	if actor.Role != user.RoleCompanyUser {
		return nil
	}
	if actor.CompanyID == nil || companyID == nil || *actor.CompanyID != *companyID {
		return user.ErrForbidden
	}
	return nil
}

func (s *ShiftServiceImpl) toShiftResponse(ctx context.Context, sh *shift.Shift, withFulfillment bool) shift.ShiftResponse {
	normalized := sh.Requirements.Normalized()
	resp := shift.ShiftResponse{
		ID:          sh.ID,
		JobID:       sh.JobID,
		JobName:     sh.JobName,
		CompanyName: sh.CompanyName,
		Date:        sh.Date.Format("2006-01-02"),
		StartTime:   sh.StartTime.Format(time.RFC3339),
		EndTime:     sh.EndTime.Format(time.RFC3339),
		Status:      sh.Status,
		Counts:      requirementCounts(normalized),
		Required:    sh.Requirements.Total(),
	}

	if withFulfillment {
		if assigned, err := s.countActiveAssignments(ctx, sh.ID); err == nil {
			fulfillment := shift.ClassifyFulfillment(resp.Required, assigned)
			resp.Assigned = &assigned
			resp.Fulfillment = &fulfillment
		}
	}

	return resp
}

func toRequirementResponse(shiftID string, req shift.ShiftRequirement) shift.RequirementResponse {
	normalized := req.Normalized()
	return shift.RequirementResponse{
		ShiftID: shiftID,
		Counts:  requirementCounts(normalized),
		Total:   req.Total(),
	}
}

func requirementCounts(req shift.ShiftRequirement) []shift.RoleCount {
	return []shift.RoleCount{
		{RoleCode: shift.RoleCrewChief, RequiredCount: req.CrewChiefs},
		{RoleCode: shift.RoleStagehand, RequiredCount: req.Stagehands},
		{RoleCode: shift.RoleForkOperator, RequiredCount: req.ForkOperators},
		{RoleCode: shift.RoleReachForkOperator, RequiredCount: req.ReachForkOperators},
		{RoleCode: shift.RoleRigger, RequiredCount: req.Riggers},
		{RoleCode: shift.RoleGeneralLaborer, RequiredCount: req.GeneralLaborers},
	}
}

// Package service
package service

import (
	"fmt"

	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
)

type ReferenceService struct {
	logger             log.LoggerInterface
	userOperation      operation.UserOperationInterface
	referenceOperation operation.ReferenceOperationInterface
	auditLogOperation  operation.AuditLogOperationInterface
}

func NewReferenceService(
	logger log.LoggerInterface,
	userOperation operation.UserOperationInterface,
	referenceOperation operation.ReferenceOperationInterface,
	auditLogOperation operation.AuditLogOperationInterface,
) *ReferenceService {
	return &ReferenceService{
		logger:             logger,
		userOperation:      userOperation,
		referenceOperation: referenceOperation,
		auditLogOperation:  auditLogOperation,
	}
}

var (
	SuccessGetReference  = ApiStatus{StatusName: "GET_REFERENCE_SUCCESS", Description: "获取基础数据成功", HttpCode: Ok}
	SuccessSaveReference = ApiStatus{StatusName: "SAVE_REFERENCE_SUCCESS", Description: "保存基础数据成功", HttpCode: Ok}
	SuccessDeleteEntity  = ApiStatus{StatusName: "DELETE_REFERENCE_SUCCESS", Description: "删除基础数据成功", HttpCode: Ok}
)

// auditReferenceChange 基础数据变更审计, 写入失败只记录日志不影响请求
func (referenceService *ReferenceService) auditReferenceChange(eventType operation.EventType, header *JwtHeader, object string) {
	auditLog := referenceService.auditLogOperation.NewAuditLog(eventType, header.Uid, object, header.Ip, header.UserAgent, nil)
	if err := referenceService.auditLogOperation.SaveAuditLog(auditLog); err != nil {
		referenceService.logger.WarnF("Fail to save reference audit log: %v", err)
	}
}

func (referenceService *ReferenceService) GetTerminals(req *RequestGetTerminals) *ApiResponse[ResponseGetTerminals] {
	terminals, err := referenceService.referenceOperation.GetTerminals()
	if err != nil {
		return NewApiResponse[ResponseGetTerminals](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetReference, Unsatisfied, &ResponseGetTerminals{Items: terminals})
}

func (referenceService *ReferenceService) GetStands(req *RequestGetStands) *ApiResponse[ResponseGetStands] {
	stands, err := referenceService.referenceOperation.GetStands()
	if err != nil {
		return NewApiResponse[ResponseGetStands](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetReference, Unsatisfied, &ResponseGetStands{Items: stands})
}

func (referenceService *ReferenceService) GetAircraftTypes(req *RequestGetAircraftTypes) *ApiResponse[ResponseGetAircraftTypes] {
	aircraftTypes, err := referenceService.referenceOperation.GetAircraftTypes()
	if err != nil {
		return NewApiResponse[ResponseGetAircraftTypes](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetReference, Unsatisfied, &ResponseGetAircraftTypes{Items: aircraftTypes})
}

func (referenceService *ReferenceService) GetSizeCategories(req *RequestGetSizeCategories) *ApiResponse[ResponseGetSizeCategories] {
	categories, err := referenceService.referenceOperation.GetSizeCategories()
	if err != nil {
		return NewApiResponse[ResponseGetSizeCategories](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetReference, Unsatisfied, &ResponseGetSizeCategories{Items: categories})
}

func (referenceService *ReferenceService) GetOperationalSettings(req *RequestGetSettings) *ApiResponse[ResponseGetSettings] {
	settings, res := CallDBFuncAndCheckError[operation.OperationalSettings, ResponseGetSettings](func() (*operation.OperationalSettings, error) {
		return referenceService.referenceOperation.GetOperationalSettings()
	})
	if res != nil {
		return res
	}
	return NewApiResponse(&SuccessGetReference, Unsatisfied, (*ResponseGetSettings)(settings))
}

func (referenceService *ReferenceService) SaveTerminal(req *RequestSaveTerminal) *ApiResponse[ResponseSaveTerminal] {
	if req.Terminal == nil || req.Terminal.Code == "" {
		return NewApiResponse[ResponseSaveTerminal](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseSaveTerminal](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	eventType := operation.ReferenceEntityUpdated
	if req.Terminal.ID == 0 {
		eventType = operation.ReferenceEntityCreated
	}
	if err := referenceService.referenceOperation.SaveTerminal(req.Terminal); err != nil {
		return NewApiResponse[ResponseSaveTerminal](&ErrDatabaseFail, Unsatisfied, nil)
	}
	referenceService.auditReferenceChange(eventType, &req.JwtHeader, fmt.Sprintf("terminal(%s)", req.Terminal.Code))
	return NewApiResponse(&SuccessSaveReference, Unsatisfied, (*ResponseSaveTerminal)(req.Terminal))
}

func (referenceService *ReferenceService) SavePier(req *RequestSavePier) *ApiResponse[ResponseSavePier] {
	if req.Pier == nil || req.Pier.Code == "" || req.Pier.TerminalID == 0 {
		return NewApiResponse[ResponseSavePier](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseSavePier](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	eventType := operation.ReferenceEntityUpdated
	if req.Pier.ID == 0 {
		eventType = operation.ReferenceEntityCreated
	}
	if err := referenceService.referenceOperation.SavePier(req.Pier); err != nil {
		return NewApiResponse[ResponseSavePier](&ErrDatabaseFail, Unsatisfied, nil)
	}
	referenceService.auditReferenceChange(eventType, &req.JwtHeader, fmt.Sprintf("pier(%s)", req.Pier.Code))
	return NewApiResponse(&SuccessSaveReference, Unsatisfied, (*ResponseSavePier)(req.Pier))
}

func (referenceService *ReferenceService) SaveStand(req *RequestSaveStand) *ApiResponse[ResponseSaveStand] {
	if req.Stand == nil || req.Stand.Code == "" || req.Stand.PierID == 0 || req.Stand.MaxSizeCategoryID == 0 {
		return NewApiResponse[ResponseSaveStand](&ErrIllegalParam, Unsatisfied, nil)
	}
	if req.Stand.MaxWingspanMeters <= 0 || req.Stand.MaxLengthMeters <= 0 {
		return NewApiResponse[ResponseSaveStand](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseSaveStand](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	eventType := operation.ReferenceEntityUpdated
	if req.Stand.ID == 0 {
		eventType = operation.ReferenceEntityCreated
	}
	if err := referenceService.referenceOperation.SaveStand(req.Stand); err != nil {
		return NewApiResponse[ResponseSaveStand](&ErrDatabaseFail, Unsatisfied, nil)
	}
	referenceService.auditReferenceChange(eventType, &req.JwtHeader, fmt.Sprintf("stand(%s)", req.Stand.Code))
	return NewApiResponse(&SuccessSaveReference, Unsatisfied, (*ResponseSaveStand)(req.Stand))
}

func (referenceService *ReferenceService) SaveAircraftType(req *RequestSaveAircraftType) *ApiResponse[ResponseSaveAircraftType] {
	if req.AircraftType == nil || req.AircraftType.IcaoCode == "" || req.AircraftType.SizeCategoryID == 0 {
		return NewApiResponse[ResponseSaveAircraftType](&ErrIllegalParam, Unsatisfied, nil)
	}
	if req.AircraftType.WingspanMeters <= 0 || req.AircraftType.LengthMeters <= 0 {
		return NewApiResponse[ResponseSaveAircraftType](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseSaveAircraftType](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	eventType := operation.ReferenceEntityUpdated
	if req.AircraftType.ID == 0 {
		eventType = operation.ReferenceEntityCreated
	}
	if err := referenceService.referenceOperation.SaveAircraftType(req.AircraftType); err != nil {
		return NewApiResponse[ResponseSaveAircraftType](&ErrDatabaseFail, Unsatisfied, nil)
	}
	referenceService.auditReferenceChange(eventType, &req.JwtHeader, fmt.Sprintf("aircraft_type(%s)", req.AircraftType.IcaoCode))
	return NewApiResponse(&SuccessSaveReference, Unsatisfied, (*ResponseSaveAircraftType)(req.AircraftType))
}

func (referenceService *ReferenceService) SaveSizeCategory(req *RequestSaveSizeCategory) *ApiResponse[ResponseSaveSizeCategory] {
	if req.Category == nil || req.Category.Code == "" || req.Category.Rank <= 0 {
		return NewApiResponse[ResponseSaveSizeCategory](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseSaveSizeCategory](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	eventType := operation.ReferenceEntityUpdated
	if req.Category.ID == 0 {
		eventType = operation.ReferenceEntityCreated
	}
	if err := referenceService.referenceOperation.SaveSizeCategory(req.Category); err != nil {
		return NewApiResponse[ResponseSaveSizeCategory](&ErrDatabaseFail, Unsatisfied, nil)
	}
	referenceService.auditReferenceChange(eventType, &req.JwtHeader, fmt.Sprintf("size_category(%s)", req.Category.Code))
	return NewApiResponse(&SuccessSaveReference, Unsatisfied, (*ResponseSaveSizeCategory)(req.Category))
}

func (referenceService *ReferenceService) SaveTurnaroundRule(req *RequestSaveTurnaroundRule) *ApiResponse[ResponseSaveTurnaroundRule] {
	if req.Rule == nil || req.Rule.AircraftTypeID == 0 || req.Rule.MinimumMinutes <= 0 {
		return NewApiResponse[ResponseSaveTurnaroundRule](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseSaveTurnaroundRule](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	eventType := operation.ReferenceEntityUpdated
	if req.Rule.ID == 0 {
		eventType = operation.ReferenceEntityCreated
	}
	if err := referenceService.referenceOperation.SaveTurnaroundRule(req.Rule); err != nil {
		return NewApiResponse[ResponseSaveTurnaroundRule](&ErrDatabaseFail, Unsatisfied, nil)
	}
	referenceService.auditReferenceChange(eventType, &req.JwtHeader, fmt.Sprintf("turnaround_rule(%d)", req.Rule.AircraftTypeID))
	return NewApiResponse(&SuccessSaveReference, Unsatisfied, (*ResponseSaveTurnaroundRule)(req.Rule))
}

func (referenceService *ReferenceService) SaveStandConstraint(req *RequestSaveStandConstraint) *ApiResponse[ResponseSaveStandConstraint] {
	if req.Constraint == nil || req.Constraint.StandID == 0 || req.Constraint.AircraftTypeID == 0 {
		return NewApiResponse[ResponseSaveStandConstraint](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseSaveStandConstraint](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	eventType := operation.ReferenceEntityUpdated
	if req.Constraint.ID == 0 {
		eventType = operation.ReferenceEntityCreated
	}
	if err := referenceService.referenceOperation.SaveStandConstraint(req.Constraint); err != nil {
		return NewApiResponse[ResponseSaveStandConstraint](&ErrDatabaseFail, Unsatisfied, nil)
	}
	referenceService.auditReferenceChange(eventType, &req.JwtHeader,
		fmt.Sprintf("stand_constraint(%d-%d)", req.Constraint.StandID, req.Constraint.AircraftTypeID))
	return NewApiResponse(&SuccessSaveReference, Unsatisfied, (*ResponseSaveStandConstraint)(req.Constraint))
}

func (referenceService *ReferenceService) SaveStandAdjacency(req *RequestSaveStandAdjacency) *ApiResponse[ResponseSaveStandAdjacency] {
	if req.Adjacency == nil || req.Adjacency.StandID == 0 || req.Adjacency.AdjacentStandID == 0 {
		return NewApiResponse[ResponseSaveStandAdjacency](&ErrIllegalParam, Unsatisfied, nil)
	}
	// 自邻接没有意义, 直接拒绝
	if req.Adjacency.StandID == req.Adjacency.AdjacentStandID {
		return NewApiResponse[ResponseSaveStandAdjacency](&ErrIllegalParam, Unsatisfied, nil)
	}
	if req.Adjacency.RestrictionKind != operation.RestrictionSizeCap && req.Adjacency.RestrictionKind != operation.RestrictionClosed {
		return NewApiResponse[ResponseSaveStandAdjacency](&ErrIllegalParam, Unsatisfied, nil)
	}
	if req.Adjacency.RestrictionKind == operation.RestrictionSizeCap && req.Adjacency.MaxAdjacentSizeCode == "" {
		return NewApiResponse[ResponseSaveStandAdjacency](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseSaveStandAdjacency](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	eventType := operation.ReferenceEntityUpdated
	if req.Adjacency.ID == 0 {
		eventType = operation.ReferenceEntityCreated
	}
	if err := referenceService.referenceOperation.SaveStandAdjacency(req.Adjacency); err != nil {
		return NewApiResponse[ResponseSaveStandAdjacency](&ErrDatabaseFail, Unsatisfied, nil)
	}
	referenceService.auditReferenceChange(eventType, &req.JwtHeader,
		fmt.Sprintf("stand_adjacency(%d-%d)", req.Adjacency.StandID, req.Adjacency.AdjacentStandID))
	return NewApiResponse(&SuccessSaveReference, Unsatisfied, (*ResponseSaveStandAdjacency)(req.Adjacency))
}

func (referenceService *ReferenceService) SaveAirlineAllocation(req *RequestSaveAirlineAllocation) *ApiResponse[ResponseSaveAirlineAllocation] {
	if req.Allocation == nil || req.Allocation.AirlineCode == "" || req.Allocation.TerminalID == 0 {
		return NewApiResponse[ResponseSaveAirlineAllocation](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseSaveAirlineAllocation](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	eventType := operation.ReferenceEntityUpdated
	if req.Allocation.ID == 0 {
		eventType = operation.ReferenceEntityCreated
	}
	if err := referenceService.referenceOperation.SaveAirlineAllocation(req.Allocation); err != nil {
		return NewApiResponse[ResponseSaveAirlineAllocation](&ErrDatabaseFail, Unsatisfied, nil)
	}
	referenceService.auditReferenceChange(eventType, &req.JwtHeader,
		fmt.Sprintf("airline_allocation(%s)", req.Allocation.AirlineCode))
	return NewApiResponse(&SuccessSaveReference, Unsatisfied, (*ResponseSaveAirlineAllocation)(req.Allocation))
}

func (referenceService *ReferenceService) SaveOperationalSettings(req *RequestSaveSettings) *ApiResponse[ResponseSaveSettings] {
	if req.Settings == nil || req.Settings.SlotDurationMinutes <= 0 || req.Settings.BlockSizeSlots <= 0 {
		return NewApiResponse[ResponseSaveSettings](&ErrIllegalParam, Unsatisfied, nil)
	}
	if req.Settings.DefaultGapMinutes < 0 || req.Settings.DayStart == "" || req.Settings.DayEnd == "" {
		return NewApiResponse[ResponseSaveSettings](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseSaveSettings](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	if err := referenceService.referenceOperation.SaveOperationalSettings(req.Settings); err != nil {
		return NewApiResponse[ResponseSaveSettings](&ErrDatabaseFail, Unsatisfied, nil)
	}
	referenceService.auditReferenceChange(operation.ReferenceEntityUpdated, &req.JwtHeader, "operational_settings")
	return NewApiResponse(&SuccessSaveReference, Unsatisfied, (*ResponseSaveSettings)(req.Settings))
}

func (referenceService *ReferenceService) DeleteStand(req *RequestDeleteStand) *ApiResponse[ResponseDeleteStand] {
	if req.StandId <= 0 {
		return NewApiResponse[ResponseDeleteStand](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseDeleteStand](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	if _, res := CallDBFuncAndCheckError[interface{}, ResponseDeleteStand](func() (*interface{}, error) {
		return nil, referenceService.referenceOperation.DeleteStand(req.StandId)
	}); res != nil {
		return res
	}
	referenceService.auditReferenceChange(operation.ReferenceEntityDeleted, &req.JwtHeader, fmt.Sprintf("stand(%d)", req.StandId))
	data := ResponseDeleteStand(true)
	return NewApiResponse(&SuccessDeleteEntity, Unsatisfied, &data)
}

func (referenceService *ReferenceService) DeleteAircraftType(req *RequestDeleteAircraftType) *ApiResponse[ResponseDeleteAircraftType] {
	if req.TypeId <= 0 {
		return NewApiResponse[ResponseDeleteAircraftType](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseDeleteAircraftType](referenceService.userOperation, req.Uid, operation.ReferenceEdit); res != nil {
		return res
	}
	if _, res := CallDBFuncAndCheckError[interface{}, ResponseDeleteAircraftType](func() (*interface{}, error) {
		return nil, referenceService.referenceOperation.DeleteAircraftType(req.TypeId)
	}); res != nil {
		return res
	}
	referenceService.auditReferenceChange(operation.ReferenceEntityDeleted, &req.JwtHeader, fmt.Sprintf("aircraft_type(%d)", req.TypeId))
	data := ResponseDeleteAircraftType(true)
	return NewApiResponse(&SuccessDeleteEntity, Unsatisfied, &data)
}

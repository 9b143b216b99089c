// Package service
package service

import (
	"fmt"
	"time"

	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
)

type MaintenanceService struct {
	logger               log.LoggerInterface
	userOperation        operation.UserOperationInterface
	referenceOperation   operation.ReferenceOperationInterface
	maintenanceOperation operation.MaintenanceOperationInterface
	auditLogOperation    operation.AuditLogOperationInterface
	emailService         EmailServiceInterface
}

func NewMaintenanceService(
	logger log.LoggerInterface,
	userOperation operation.UserOperationInterface,
	referenceOperation operation.ReferenceOperationInterface,
	maintenanceOperation operation.MaintenanceOperationInterface,
	auditLogOperation operation.AuditLogOperationInterface,
	emailService EmailServiceInterface,
) *MaintenanceService {
	return &MaintenanceService{
		logger:               logger,
		userOperation:        userOperation,
		referenceOperation:   referenceOperation,
		maintenanceOperation: maintenanceOperation,
		auditLogOperation:    auditLogOperation,
		emailService:         emailService,
	}
}

var (
	SuccessCreateMaintenance = ApiStatus{StatusName: "CREATE_MAINTENANCE_SUCCESS", Description: "创建维护申请成功", HttpCode: Ok}
	SuccessGetMaintenance    = ApiStatus{StatusName: "GET_MAINTENANCE_SUCCESS", Description: "获取维护申请成功", HttpCode: Ok}
	ErrMaintenanceTime       = ApiStatus{StatusName: "MAINTENANCE_TIME_ERROR", Description: "维护窗口不合法", HttpCode: BadRequest}
)

func (maintenanceService *MaintenanceService) CreateRequest(req *RequestCreateMaintenance) *ApiResponse[ResponseCreateMaintenance] {
	if req.StandId <= 0 || req.StartTime == "" || req.EndTime == "" {
		return NewApiResponse[ResponseCreateMaintenance](&ErrIllegalParam, Unsatisfied, nil)
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return NewApiResponse[ResponseCreateMaintenance](&ErrMaintenanceTime, Unsatisfied, nil)
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return NewApiResponse[ResponseCreateMaintenance](&ErrMaintenanceTime, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseCreateMaintenance](maintenanceService.userOperation, req.Uid, operation.MaintenanceCreate); res != nil {
		return res
	}
	if _, res := CallDBFuncAndCheckError[operation.Stand, ResponseCreateMaintenance](func() (*operation.Stand, error) {
		return maintenanceService.referenceOperation.GetStandById(req.StandId)
	}); res != nil {
		return res
	}

	request, err := maintenanceService.maintenanceOperation.NewRequest(req.StandId, start, end, req.Uid, req.Reason)
	if err != nil {
		return NewApiResponse[ResponseCreateMaintenance](&ErrMaintenanceTime, Unsatisfied, nil)
	}
	if _, res := CallDBFuncAndCheckError[interface{}, ResponseCreateMaintenance](func() (*interface{}, error) {
		return nil, maintenanceService.maintenanceOperation.AddRequest(request)
	}); res != nil {
		return res
	}

	auditLog := maintenanceService.auditLogOperation.NewAuditLog(
		operation.MaintenanceCreated,
		req.Uid,
		fmt.Sprintf("maintenance(%d)", request.ID),
		req.Ip,
		req.UserAgent,
		nil,
	)
	if err := maintenanceService.auditLogOperation.SaveAuditLog(auditLog); err != nil {
		maintenanceService.logger.WarnF("Fail to save maintenance audit log: %v", err)
	}

	return NewApiResponse(&SuccessCreateMaintenance, Unsatisfied, (*ResponseCreateMaintenance)(request))
}

func (maintenanceService *MaintenanceService) GetRequestList(req *RequestMaintenanceList) *ApiResponse[ResponseMaintenanceList] {
	if req.Page <= 0 || req.PageSize <= 0 {
		return NewApiResponse[ResponseMaintenanceList](&ErrIllegalParam, Unsatisfied, nil)
	}
	requests, total, err := maintenanceService.maintenanceOperation.GetRequests(req.Page, req.PageSize)
	if err != nil {
		return NewApiResponse[ResponseMaintenanceList](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetMaintenance, Unsatisfied, &ResponseMaintenanceList{
		Items:    requests,
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
	})
}

func (maintenanceService *MaintenanceService) GetRequestDetail(req *RequestMaintenanceDetail) *ApiResponse[ResponseMaintenanceDetail] {
	if req.RequestId <= 0 {
		return NewApiResponse[ResponseMaintenanceDetail](&ErrIllegalParam, Unsatisfied, nil)
	}
	request, res := CallDBFuncAndCheckError[operation.MaintenanceRequest, ResponseMaintenanceDetail](func() (*operation.MaintenanceRequest, error) {
		return maintenanceService.maintenanceOperation.GetRequestById(req.RequestId)
	})
	if res != nil {
		return res
	}
	return NewApiResponse(&SuccessGetMaintenance, Unsatisfied, (*ResponseMaintenanceDetail)(request))
}

var (
	SuccessTransition    = ApiStatus{StatusName: "MAINTENANCE_TRANSITION_SUCCESS", Description: "维护申请状态更新成功", HttpCode: Ok}
	ErrMaintenanceStatus = ApiStatus{StatusName: "MAINTENANCE_STATUS_ERROR", Description: "未知的维护申请状态", HttpCode: BadRequest}
)

func (maintenanceService *MaintenanceService) TransitionRequest(req *RequestMaintenanceTransition) *ApiResponse[ResponseMaintenanceTransition] {
	if req.RequestId <= 0 {
		return NewApiResponse[ResponseMaintenanceTransition](&ErrIllegalParam, Unsatisfied, nil)
	}
	nextStatus := operation.MaintenanceStatus(req.Status)
	if !nextStatus.IsValid() {
		return NewApiResponse[ResponseMaintenanceTransition](&ErrMaintenanceStatus, Unsatisfied, nil)
	}
	operator, res := GetUserAndCheckPermission[ResponseMaintenanceTransition](maintenanceService.userOperation, req.Uid, operation.MaintenanceApprove)
	if res != nil {
		return res
	}
	request, res := CallDBFuncAndCheckError[operation.MaintenanceRequest, ResponseMaintenanceTransition](func() (*operation.MaintenanceRequest, error) {
		return maintenanceService.maintenanceOperation.GetRequestById(req.RequestId)
	})
	if res != nil {
		return res
	}
	oldStatus := operation.MaintenanceStatus(request.Status)
	if _, res := CallDBFuncAndCheckError[interface{}, ResponseMaintenanceTransition](func() (*interface{}, error) {
		return nil, maintenanceService.maintenanceOperation.UpdateRequestStatus(request, nextStatus)
	}); res != nil {
		return res
	}

	auditLog := maintenanceService.auditLogOperation.NewAuditLog(
		operation.MaintenanceTransition,
		req.Uid,
		fmt.Sprintf("maintenance(%d)", request.ID),
		req.Ip,
		req.UserAgent,
		&operation.ChangeDetail{Field: "status", OldValue: oldStatus.String(), NewValue: nextStatus.String()},
	)
	if err := maintenanceService.auditLogOperation.SaveAuditLog(auditLog); err != nil {
		maintenanceService.logger.WarnF("Fail to save maintenance audit log: %v", err)
	}

	// 状态变更通知申请人, 发送失败不影响请求
	if requester, err := maintenanceService.userOperation.GetUserByUid(request.Requester); err == nil {
		if stand, err := maintenanceService.referenceOperation.GetStandById(request.StandID); err == nil {
			if err := maintenanceService.emailService.SendMaintenanceStatusEmail(request, stand, requester, operator); err != nil {
				maintenanceService.logger.WarnF("Fail to send maintenance status email: %v", err)
			}
		}
	}

	return NewApiResponse(&SuccessTransition, Unsatisfied, (*ResponseMaintenanceTransition)(request))
}

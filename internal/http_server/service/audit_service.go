// Package service
package service

import (
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
)

type AuditService struct {
	logger            log.LoggerInterface
	userOperation     operation.UserOperationInterface
	auditLogOperation operation.AuditLogOperationInterface
}

func NewAuditService(
	logger log.LoggerInterface,
	userOperation operation.UserOperationInterface,
	auditLogOperation operation.AuditLogOperationInterface,
) *AuditService {
	return &AuditService{
		logger:            logger,
		userOperation:     userOperation,
		auditLogOperation: auditLogOperation,
	}
}

var (
	SuccessGetAuditLogs = ApiStatus{StatusName: "GET_AUDIT_LOG_SUCCESS", Description: "获取审计日志成功", HttpCode: Ok}
)

func (auditService *AuditService) GetAuditLogPage(req *RequestGetAuditLog) *ApiResponse[ResponseGetAuditLog] {
	if req.Page <= 0 || req.PageSize <= 0 {
		return NewApiResponse[ResponseGetAuditLog](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseGetAuditLog](auditService.userOperation, req.Uid, operation.AuditLogShow); res != nil {
		return res
	}
	auditLogs, total, err := auditService.auditLogOperation.GetAuditLogs(req.Page, req.PageSize)
	if err != nil {
		return NewApiResponse[ResponseGetAuditLog](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetAuditLogs, Unsatisfied, &ResponseGetAuditLog{
		Items:    auditLogs,
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
	})
}

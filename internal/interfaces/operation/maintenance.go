// Package operation
package operation

import (
	"errors"
	"time"
)

var (
	// ErrMaintenanceNotFound 维护申请不存在
	ErrMaintenanceNotFound = errors.New("maintenance request does not exist")
	// ErrMaintenanceTransition 维护申请状态转换非法
	ErrMaintenanceTransition = errors.New("illegal maintenance status transition")
	// ErrMaintenanceWindow 维护窗口非法
	ErrMaintenanceWindow = errors.New("maintenance window start must be before end")
)

// MaintenanceOperationInterface 维护申请操作接口定义
type MaintenanceOperationInterface interface {
	// NewRequest 创建维护申请(只是创建, 没有写入数据库), 窗口非法时返回 ErrMaintenanceWindow
	NewRequest(standId uint, start, end time.Time, requester uint, reason string) (request *MaintenanceRequest, err error)
	// AddRequest 写入维护申请, 当err为nil时表示创建成功
	AddRequest(request *MaintenanceRequest) (err error)
	// GetRequestById 获取维护申请, 当err为nil时返回值request有效
	GetRequestById(id uint) (request *MaintenanceRequest, err error)
	// GetRequests 获取分页维护申请数据
	GetRequests(page, pageSize int) (requests []*MaintenanceRequest, total int64, err error)
	// GetActiveRequestsBetween 获取窗口与[start,end)相交且影响容量的申请(approved/in-progress)
	GetActiveRequestsBetween(start, end time.Time) (requests []*MaintenanceRequest, err error)
	// UpdateRequestStatus 更新申请状态, 转换非法时返回 ErrMaintenanceTransition
	UpdateRequestStatus(request *MaintenanceRequest, status MaintenanceStatus) (err error)
}

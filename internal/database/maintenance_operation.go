// Package database
package database

import (
	"context"
	"errors"
	"time"

	. "github.com/half-nothing/stand-planner/internal/interfaces/operation"
	"gorm.io/gorm"
)

type MaintenanceOperation struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

func NewMaintenanceOperation(db *gorm.DB, queryTimeout time.Duration) *MaintenanceOperation {
	return &MaintenanceOperation{db: db, queryTimeout: queryTimeout}
}

func (maintenanceOperation *MaintenanceOperation) NewRequest(standId uint, start, end time.Time, requester uint, reason string) (*MaintenanceRequest, error) {
	if !end.After(start) {
		return nil, ErrMaintenanceWindow
	}
	return &MaintenanceRequest{
		StandID:   standId,
		StartTime: start,
		EndTime:   end,
		Status:    int(MaintenanceRequested),
		Requester: requester,
		Reason:    reason,
	}, nil
}

func (maintenanceOperation *MaintenanceOperation) AddRequest(request *MaintenanceRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceOperation.queryTimeout)
	defer cancel()
	return maintenanceOperation.db.WithContext(ctx).Create(request).Error
}

func (maintenanceOperation *MaintenanceOperation) GetRequestById(id uint) (request *MaintenanceRequest, err error) {
	request = &MaintenanceRequest{}
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceOperation.queryTimeout)
	defer cancel()
	err = maintenanceOperation.db.WithContext(ctx).
		Where("id = ?", id).
		First(request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrMaintenanceNotFound
	}
	return
}

func (maintenanceOperation *MaintenanceOperation) GetRequests(page, pageSize int) (requests []*MaintenanceRequest, total int64, err error) {
	requests = make([]*MaintenanceRequest, 0, pageSize)
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceOperation.queryTimeout)
	defer cancel()
	maintenanceOperation.db.WithContext(ctx).Model(&MaintenanceRequest{}).Select("id").Count(&total)
	err = maintenanceOperation.db.WithContext(ctx).
		Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	return
}

func (maintenanceOperation *MaintenanceOperation) GetActiveRequestsBetween(start, end time.Time) (requests []*MaintenanceRequest, err error) {
	requests = make([]*MaintenanceRequest, 0)
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceOperation.queryTimeout)
	defer cancel()
	err = maintenanceOperation.db.WithContext(ctx).
		Where("status IN ?", []int{int(MaintenanceApproved), int(MaintenanceInProgress)}).
		Where("start_time < ? AND end_time > ?", end, start).
		Find(&requests).Error
	return
}

// UpdateRequestStatus 更新申请状态, 非法转换不落库
func (maintenanceOperation *MaintenanceOperation) UpdateRequestStatus(request *MaintenanceRequest, status MaintenanceStatus) error {
	if !status.IsValid() {
		return ErrMaintenanceTransition
	}
	if !MaintenanceStatus(request.Status).CanTransitionTo(status) {
		return ErrMaintenanceTransition
	}
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceOperation.queryTimeout)
	defer cancel()
	err := maintenanceOperation.db.WithContext(ctx).Model(request).Update("status", int(status)).Error
	if err == nil {
		request.Status = int(status)
	}
	return err
}

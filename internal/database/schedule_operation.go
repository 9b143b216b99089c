// Package database
package database

import (
	"context"
	"errors"
	"time"

	. "github.com/half-nothing/stand-planner/internal/interfaces/operation"
	"gorm.io/gorm"
)

type ScheduleOperation struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

func NewScheduleOperation(db *gorm.DB, queryTimeout time.Duration) *ScheduleOperation {
	return &ScheduleOperation{db: db, queryTimeout: queryTimeout}
}

func (scheduleOperation *ScheduleOperation) NewScenario(name, day string) *ScheduleScenario {
	return &ScheduleScenario{
		Name:   name,
		Day:    day,
		Status: int(ScenarioDraft),
	}
}

func (scheduleOperation *ScheduleOperation) AddScenario(scenario *ScheduleScenario) error {
	ctx, cancel := context.WithTimeout(context.Background(), scheduleOperation.queryTimeout)
	defer cancel()
	return scheduleOperation.db.WithContext(ctx).Create(scenario).Error
}

func (scheduleOperation *ScheduleOperation) GetScenarioById(id uint) (scenario *ScheduleScenario, err error) {
	scenario = &ScheduleScenario{}
	ctx, cancel := context.WithTimeout(context.Background(), scheduleOperation.queryTimeout)
	defer cancel()
	err = scheduleOperation.db.WithContext(ctx).
		Preload("Flights").
		Where("id = ?", id).
		First(scenario).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrScenarioNotFound
	}
	return
}

func (scheduleOperation *ScheduleOperation) GetScenarios(page, pageSize int) (scenarios []*ScheduleScenario, total int64, err error) {
	scenarios = make([]*ScheduleScenario, 0, pageSize)
	ctx, cancel := context.WithTimeout(context.Background(), scheduleOperation.queryTimeout)
	defer cancel()
	scheduleOperation.db.WithContext(ctx).Model(&ScheduleScenario{}).Select("id").Count(&total)
	err = scheduleOperation.db.WithContext(ctx).
		Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&scenarios).Error
	return
}

// UpdateScenarioStatus 更新方案状态, 非法转换不落库
func (scheduleOperation *ScheduleOperation) UpdateScenarioStatus(scenario *ScheduleScenario, status ScenarioStatus) error {
	if !ScenarioStatus(scenario.Status).CanTransitionTo(status) {
		return ErrScenarioTransition
	}
	ctx, cancel := context.WithTimeout(context.Background(), scheduleOperation.queryTimeout)
	defer cancel()
	err := scheduleOperation.db.WithContext(ctx).Model(scenario).Update("status", int(status)).Error
	if err == nil {
		scenario.Status = int(status)
	}
	return err
}

func (scheduleOperation *ScheduleOperation) AddFlights(flights []*Flight) error {
	if len(flights) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), scheduleOperation.queryTimeout)
	defer cancel()
	return scheduleOperation.db.WithContext(ctx).CreateInBatches(flights, 200).Error
}

// ReplaceAllocations 删除方案旧分配并写入新分配, 整体成功或整体回滚
func (scheduleOperation *ScheduleOperation) ReplaceAllocations(scenarioId uint, allocations []*Allocation) error {
	return scheduleOperation.db.Transaction(func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(context.Background(), scheduleOperation.queryTimeout)
		defer cancel()
		tx = tx.WithContext(ctx)

		if err := tx.Where("scenario_id = ?", scenarioId).Delete(&Allocation{}).Error; err != nil {
			return err
		}
		if len(allocations) == 0 {
			return nil
		}
		return tx.CreateInBatches(allocations, 200).Error
	})
}

func (scheduleOperation *ScheduleOperation) GetAllocations(scenarioId uint) (allocations []*Allocation, err error) {
	allocations = make([]*Allocation, 0)
	ctx, cancel := context.WithTimeout(context.Background(), scheduleOperation.queryTimeout)
	defer cancel()
	err = scheduleOperation.db.WithContext(ctx).
		Where("scenario_id = ?", scenarioId).
		Order("start_time").
		Find(&allocations).Error
	return
}

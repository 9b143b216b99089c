// Package operation
package operation

import (
	"errors"
)

var (
	// ErrScenarioNotFound 排班方案不存在
	ErrScenarioNotFound = errors.New("schedule scenario does not exist")
	// ErrScenarioTransition 排班方案状态转换非法
	ErrScenarioTransition = errors.New("illegal scenario status transition")
)

// ScheduleOperationInterface 排班方案与航班操作接口定义
type ScheduleOperationInterface interface {
	// NewScenario 创建排班方案(只是创建, 没有写入数据库)
	NewScenario(name, day string) (scenario *ScheduleScenario)
	// AddScenario 写入排班方案, 当err为nil时表示创建成功
	AddScenario(scenario *ScheduleScenario) (err error)
	// GetScenarioById 获取排班方案及其全部航班, 当err为nil时返回值scenario有效
	GetScenarioById(id uint) (scenario *ScheduleScenario, err error)
	// GetScenarios 获取分页排班方案数据
	GetScenarios(page, pageSize int) (scenarios []*ScheduleScenario, total int64, err error)
	// UpdateScenarioStatus 更新方案状态, 转换非法时返回 ErrScenarioTransition
	UpdateScenarioStatus(scenario *ScheduleScenario, status ScenarioStatus) (err error)
	// AddFlights 批量写入航班
	AddFlights(flights []*Flight) (err error)
	// ReplaceAllocations 以事务替换方案的全部分配结果
	ReplaceAllocations(scenarioId uint, allocations []*Allocation) (err error)
	// GetAllocations 获取方案的分配结果
	GetAllocations(scenarioId uint) (allocations []*Allocation, err error)
}

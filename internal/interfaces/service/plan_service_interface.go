// Package service
package service

import (
	"mime/multipart"

	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	"github.com/half-nothing/stand-planner/internal/planner"
)

// PlanServiceInterface 排班方案与规划运行接口
// 一次运行使用提交时的基础数据快照, 运行期间的修改对本次运行不可见
type PlanServiceInterface interface {
	CreateScenario(req *RequestCreateScenario) *ApiResponse[ResponseCreateScenario]
	GetScenarioList(req *RequestScenarioList) *ApiResponse[ResponseScenarioList]
	GetScenarioDetail(req *RequestScenarioDetail) *ApiResponse[ResponseScenarioDetail]
	UploadSchedule(req *RequestUploadSchedule) *ApiResponse[ResponseUploadSchedule]
	RunAllocation(req *RequestRunAllocation) *ApiResponse[ResponseRunAllocation]
	GetRunProgress(req *RequestRunProgress) *ApiResponse[ResponseRunProgress]
	CapacityReport(req *RequestCapacityReport) *ApiResponse[ResponseCapacityReport]
	MaintenanceImpact(req *RequestMaintenanceImpact) *ApiResponse[ResponseMaintenanceImpact]
}

type RequestCreateScenario struct {
	JwtHeader
	Name string `json:"name"`
	Day  string `json:"day"`
}

type ResponseCreateScenario operation.ScheduleScenario

type RequestScenarioList struct {
	JwtHeader
	Page     int `query:"page_number"`
	PageSize int `query:"page_size"`
}

type ResponseScenarioList struct {
	Items    []*operation.ScheduleScenario `json:"items"`
	Page     int                           `json:"page"`
	PageSize int                           `json:"page_size"`
	Total    int64                         `json:"total"`
}

type RequestScenarioDetail struct {
	JwtHeader
	ScenarioId uint `param:"id"`
}

type ResponseScenarioDetail struct {
	Scenario    *operation.ScheduleScenario `json:"scenario"`
	Allocations []*operation.Allocation     `json:"allocations"`
}

type RequestUploadSchedule struct {
	JwtHeader
	ScenarioId uint `param:"id"`
	File       *multipart.FileHeader
}

type ResponseUploadSchedule struct {
	Accepted   int    `json:"accepted"`
	Rejected   int    `json:"rejected"`
	AccessPath string `json:"access_path"`
}

type RequestRunAllocation struct {
	JwtHeader
	ScenarioId   uint `param:"id"`
	Displacement bool `json:"displacement"`
}

type ResponseRunAllocation struct {
	Scenario    *operation.ScheduleScenario  `json:"scenario"`
	Assignments []*planner.Assignment        `json:"assignments"`
	Unallocated []*planner.UnallocatedFlight `json:"unallocated"`
	Stands      []*planner.StandUtilisation  `json:"stands"`
	Slots       []*planner.SlotUtilisation   `json:"slots"`
	Displaced   int                          `json:"displaced"`
}

type RequestRunProgress struct {
	JwtHeader
	ScenarioId uint `param:"id"`
}

type ResponseRunProgress struct {
	Status           string `json:"status"`
	FlightsProcessed int64  `json:"flights_processed"`
	SlotsProcessed   int64  `json:"slots_processed"`
}

type RequestCapacityReport struct {
	JwtHeader
	Day  string `query:"day"`
	Mode string `query:"mode"`
}

type ResponseCapacityReport planner.CapacityResult

type RequestMaintenanceImpact struct {
	JwtHeader
	From string `query:"from"`
	To   string `query:"to"`
}

type ResponseMaintenanceImpact planner.MaintenanceImpact

// Package service
package service

import (
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

type MaintenanceServiceInterface interface {
	CreateRequest(req *RequestCreateMaintenance) *ApiResponse[ResponseCreateMaintenance]
	GetRequestList(req *RequestMaintenanceList) *ApiResponse[ResponseMaintenanceList]
	GetRequestDetail(req *RequestMaintenanceDetail) *ApiResponse[ResponseMaintenanceDetail]
	TransitionRequest(req *RequestMaintenanceTransition) *ApiResponse[ResponseMaintenanceTransition]
}

type RequestCreateMaintenance struct {
	JwtHeader
	StandId   uint   `json:"stand_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

type ResponseCreateMaintenance operation.MaintenanceRequest

type RequestMaintenanceList struct {
	JwtHeader
	Page     int `query:"page_number"`
	PageSize int `query:"page_size"`
}

type ResponseMaintenanceList struct {
	Items    []*operation.MaintenanceRequest `json:"items"`
	Page     int                             `json:"page"`
	PageSize int                             `json:"page_size"`
	Total    int64                           `json:"total"`
}

type RequestMaintenanceDetail struct {
	JwtHeader
	RequestId uint `param:"id"`
}

type ResponseMaintenanceDetail operation.MaintenanceRequest

type RequestMaintenanceTransition struct {
	JwtHeader
	RequestId uint `param:"id"`
	Status    int  `json:"status"`
}

type ResponseMaintenanceTransition operation.MaintenanceRequest

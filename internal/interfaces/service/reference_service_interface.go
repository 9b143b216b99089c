// Package service
package service

import (
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

// ReferenceServiceInterface 基础数据维护接口
// 读取开放给所有登录用户, 写入需要基础数据编辑权限
type ReferenceServiceInterface interface {
	GetTerminals(req *RequestGetTerminals) *ApiResponse[ResponseGetTerminals]
	GetStands(req *RequestGetStands) *ApiResponse[ResponseGetStands]
	GetAircraftTypes(req *RequestGetAircraftTypes) *ApiResponse[ResponseGetAircraftTypes]
	GetSizeCategories(req *RequestGetSizeCategories) *ApiResponse[ResponseGetSizeCategories]
	GetOperationalSettings(req *RequestGetSettings) *ApiResponse[ResponseGetSettings]
	SaveTerminal(req *RequestSaveTerminal) *ApiResponse[ResponseSaveTerminal]
	SavePier(req *RequestSavePier) *ApiResponse[ResponseSavePier]
	SaveStand(req *RequestSaveStand) *ApiResponse[ResponseSaveStand]
	SaveAircraftType(req *RequestSaveAircraftType) *ApiResponse[ResponseSaveAircraftType]
	SaveSizeCategory(req *RequestSaveSizeCategory) *ApiResponse[ResponseSaveSizeCategory]
	SaveTurnaroundRule(req *RequestSaveTurnaroundRule) *ApiResponse[ResponseSaveTurnaroundRule]
	SaveStandConstraint(req *RequestSaveStandConstraint) *ApiResponse[ResponseSaveStandConstraint]
	SaveStandAdjacency(req *RequestSaveStandAdjacency) *ApiResponse[ResponseSaveStandAdjacency]
	SaveAirlineAllocation(req *RequestSaveAirlineAllocation) *ApiResponse[ResponseSaveAirlineAllocation]
	SaveOperationalSettings(req *RequestSaveSettings) *ApiResponse[ResponseSaveSettings]
	DeleteStand(req *RequestDeleteStand) *ApiResponse[ResponseDeleteStand]
	DeleteAircraftType(req *RequestDeleteAircraftType) *ApiResponse[ResponseDeleteAircraftType]
}

type RequestGetTerminals struct {
	JwtHeader
}

type ResponseGetTerminals struct {
	Items []*operation.Terminal `json:"items"`
}

type RequestGetStands struct {
	JwtHeader
}

type ResponseGetStands struct {
	Items []*operation.Stand `json:"items"`
}

type RequestGetAircraftTypes struct {
	JwtHeader
}

type ResponseGetAircraftTypes struct {
	Items []*operation.AircraftType `json:"items"`
}

type RequestGetSizeCategories struct {
	JwtHeader
}

type ResponseGetSizeCategories struct {
	Items []*operation.SizeCategory `json:"items"`
}

type RequestGetSettings struct {
	JwtHeader
}

type ResponseGetSettings operation.OperationalSettings

type RequestSaveTerminal struct {
	JwtHeader
	Terminal *operation.Terminal `json:"terminal"`
}

type ResponseSaveTerminal operation.Terminal

type RequestSavePier struct {
	JwtHeader
	Pier *operation.Pier `json:"pier"`
}

type ResponseSavePier operation.Pier

type RequestSaveStand struct {
	JwtHeader
	Stand *operation.Stand `json:"stand"`
}

type ResponseSaveStand operation.Stand

type RequestSaveAircraftType struct {
	JwtHeader
	AircraftType *operation.AircraftType `json:"aircraft_type"`
}

type ResponseSaveAircraftType operation.AircraftType

type RequestSaveSizeCategory struct {
	JwtHeader
	Category *operation.SizeCategory `json:"category"`
}

type ResponseSaveSizeCategory operation.SizeCategory

type RequestSaveTurnaroundRule struct {
	JwtHeader
	Rule *operation.TurnaroundRule `json:"rule"`
}

type ResponseSaveTurnaroundRule operation.TurnaroundRule

type RequestSaveStandConstraint struct {
	JwtHeader
	Constraint *operation.StandAircraftConstraint `json:"constraint"`
}

type ResponseSaveStandConstraint operation.StandAircraftConstraint

type RequestSaveStandAdjacency struct {
	JwtHeader
	Adjacency *operation.StandAdjacency `json:"adjacency"`
}

type ResponseSaveStandAdjacency operation.StandAdjacency

type RequestSaveAirlineAllocation struct {
	JwtHeader
	Allocation *operation.AirlineTerminalAllocation `json:"allocation"`
}

type ResponseSaveAirlineAllocation operation.AirlineTerminalAllocation

type RequestSaveSettings struct {
	JwtHeader
	Settings *operation.OperationalSettings `json:"settings"`
}

type ResponseSaveSettings operation.OperationalSettings

type RequestDeleteStand struct {
	JwtHeader
	StandId uint `param:"id"`
}

type ResponseDeleteStand bool

type RequestDeleteAircraftType struct {
	JwtHeader
	TypeId uint `param:"id"`
}

type ResponseDeleteAircraftType bool

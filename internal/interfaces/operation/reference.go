// Package operation
package operation

import (
	"errors"
)

var (
	// ErrTerminalNotFound 航站楼不存在
	ErrTerminalNotFound = errors.New("terminal does not exist")
	// ErrPierNotFound 指廊不存在
	ErrPierNotFound = errors.New("pier does not exist")
	// ErrStandNotFound 机位不存在
	ErrStandNotFound = errors.New("stand does not exist")
	// ErrAircraftTypeNotFound 机型不存在
	ErrAircraftTypeNotFound = errors.New("aircraft type does not exist")
	// ErrSizeCategoryNotFound 尺寸分类不存在
	ErrSizeCategoryNotFound = errors.New("size category does not exist")
	// ErrSettingsNotFound 运行参数未配置
	ErrSettingsNotFound = errors.New("operational settings not configured")
)

// ReferenceData 一次规划运行所需的全部基础数据快照
type ReferenceData struct {
	Settings           *OperationalSettings
	Terminals          []*Terminal
	Piers              []*Pier
	Stands             []*Stand
	AircraftTypes      []*AircraftType
	SizeCategories     []*SizeCategory
	TurnaroundRules    []*TurnaroundRule
	Constraints        []*StandAircraftConstraint
	Adjacencies        []*StandAdjacency
	AirlineAllocations []*AirlineTerminalAllocation
}

// ReferenceOperationInterface 基础数据操作接口定义
type ReferenceOperationInterface interface {
	// GetReferenceData 读取全部基础数据, 供规划引擎构建快照
	GetReferenceData() (data *ReferenceData, err error)
	GetTerminals() (terminals []*Terminal, err error)
	GetTerminalByCode(code string) (terminal *Terminal, err error)
	GetPiers(terminalId uint) (piers []*Pier, err error)
	GetStands() (stands []*Stand, err error)
	GetStandById(id uint) (stand *Stand, err error)
	GetAircraftTypes() (aircraftTypes []*AircraftType, err error)
	GetAircraftTypeByCode(code string) (aircraftType *AircraftType, err error)
	GetSizeCategories() (categories []*SizeCategory, err error)
	GetOperationalSettings() (settings *OperationalSettings, err error)
	SaveTerminal(terminal *Terminal) (err error)
	SavePier(pier *Pier) (err error)
	SaveStand(stand *Stand) (err error)
	SaveAircraftType(aircraftType *AircraftType) (err error)
	SaveSizeCategory(category *SizeCategory) (err error)
	SaveTurnaroundRule(rule *TurnaroundRule) (err error)
	SaveStandConstraint(constraint *StandAircraftConstraint) (err error)
	SaveStandAdjacency(adjacency *StandAdjacency) (err error)
	SaveAirlineAllocation(allocation *AirlineTerminalAllocation) (err error)
	SaveOperationalSettings(settings *OperationalSettings) (err error)
	DeleteStand(id uint) (err error)
	DeleteAircraftType(id uint) (err error)
}

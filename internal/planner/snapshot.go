// Package planner
package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

// Snapshot 参考数据的一致性只读快照
// 一次规划运行自始至终使用同一份快照, 运行期间的参考数据变更不可见
type Snapshot struct {
	settings      *operation.OperationalSettings
	activeStands  []*operation.Stand
	standByID     map[uint]*operation.Stand
	pierByID      map[uint]*operation.Pier
	terminalByID  map[uint]*operation.Terminal
	categoryByID  map[uint]*operation.SizeCategory
	rankByCode    map[string]int
	categories    []*operation.SizeCategory
	typeByCode    map[string]*operation.AircraftType
	typeByID      map[uint]*operation.AircraftType
	turnarounds   map[uint]time.Duration
	overrides     map[uint]map[uint]bool
	outgoingAdj   map[uint][]*operation.StandAdjacency
	incomingAdj   map[uint][]*operation.StandAdjacency
	airlineToTerm map[string]uint
	standToTerm   map[uint]uint
	capability    map[uint]map[uint]bool
}

// NewSnapshot 校验参考数据并构建快照
// 悬空引用返回DataError, 运行参数缺失返回ConfigError
func NewSnapshot(data *operation.ReferenceData) (*Snapshot, *PlanError) {
	if data == nil || data.Settings == nil {
		return nil, NewConfigError("operational settings missing from reference data")
	}
	snapshot := &Snapshot{
		settings:      data.Settings,
		standByID:     make(map[uint]*operation.Stand),
		pierByID:      make(map[uint]*operation.Pier),
		terminalByID:  make(map[uint]*operation.Terminal),
		categoryByID:  make(map[uint]*operation.SizeCategory),
		rankByCode:    make(map[string]int),
		typeByCode:    make(map[string]*operation.AircraftType),
		typeByID:      make(map[uint]*operation.AircraftType),
		turnarounds:   make(map[uint]time.Duration),
		overrides:     make(map[uint]map[uint]bool),
		outgoingAdj:   make(map[uint][]*operation.StandAdjacency),
		incomingAdj:   make(map[uint][]*operation.StandAdjacency),
		airlineToTerm: make(map[string]uint),
		standToTerm:   make(map[uint]uint),
		capability:    make(map[uint]map[uint]bool),
	}

	for _, category := range data.SizeCategories {
		snapshot.categoryByID[category.ID] = category
		snapshot.rankByCode[category.Code] = category.Rank
		snapshot.categories = append(snapshot.categories, category)
	}
	sort.Slice(snapshot.categories, func(i, j int) bool {
		return snapshot.categories[i].Rank < snapshot.categories[j].Rank
	})

	for _, terminal := range data.Terminals {
		snapshot.terminalByID[terminal.ID] = terminal
	}
	for _, pier := range data.Piers {
		if _, ok := snapshot.terminalByID[pier.TerminalID]; !ok {
			return nil, NewDataError("pier %s references unknown terminal %d", pier.Code, pier.TerminalID)
		}
		snapshot.pierByID[pier.ID] = pier
	}
	for _, stand := range data.Stands {
		pier, ok := snapshot.pierByID[stand.PierID]
		if !ok {
			return nil, NewDataError("stand %s references unknown pier %d", stand.Code, stand.PierID)
		}
		if _, ok := snapshot.categoryByID[stand.MaxSizeCategoryID]; !ok {
			return nil, NewDataError("stand %s references unknown size category %d", stand.Code, stand.MaxSizeCategoryID)
		}
		snapshot.standByID[stand.ID] = stand
		snapshot.standToTerm[stand.ID] = pier.TerminalID
		if stand.Active {
			snapshot.activeStands = append(snapshot.activeStands, stand)
		}
	}
	// 机位固定顺序: 廊桥码+机位码字典序, 保证运行结果可复现
	sort.Slice(snapshot.activeStands, func(i, j int) bool {
		return snapshot.StandFullCode(snapshot.activeStands[i]) < snapshot.StandFullCode(snapshot.activeStands[j])
	})

	for _, aircraftType := range data.AircraftTypes {
		if _, ok := snapshot.categoryByID[aircraftType.SizeCategoryID]; !ok {
			return nil, NewDataError("aircraft type %s references unknown size category %d",
				aircraftType.IcaoCode, aircraftType.SizeCategoryID)
		}
		snapshot.typeByCode[aircraftType.IcaoCode] = aircraftType
		snapshot.typeByID[aircraftType.ID] = aircraftType
	}
	for _, rule := range data.TurnaroundRules {
		if _, ok := snapshot.typeByID[rule.AircraftTypeID]; !ok {
			return nil, NewDataError("turnaround rule %d references unknown aircraft type %d", rule.ID, rule.AircraftTypeID)
		}
		if rule.MinimumMinutes <= 0 {
			return nil, NewConfigError("turnaround rule %d has non-positive minimum %d", rule.ID, rule.MinimumMinutes)
		}
		snapshot.turnarounds[rule.AircraftTypeID] = time.Duration(rule.MinimumMinutes) * time.Minute
	}
	for _, constraint := range data.Constraints {
		if _, ok := snapshot.standByID[constraint.StandID]; !ok {
			return nil, NewDataError("stand constraint %d references unknown stand %d", constraint.ID, constraint.StandID)
		}
		if _, ok := snapshot.typeByID[constraint.AircraftTypeID]; !ok {
			return nil, NewDataError("stand constraint %d references unknown aircraft type %d",
				constraint.ID, constraint.AircraftTypeID)
		}
		byType, ok := snapshot.overrides[constraint.StandID]
		if !ok {
			byType = make(map[uint]bool)
			snapshot.overrides[constraint.StandID] = byType
		}
		byType[constraint.AircraftTypeID] = constraint.Allowed
	}
	for _, adjacency := range data.Adjacencies {
		if _, ok := snapshot.standByID[adjacency.StandID]; !ok {
			return nil, NewDataError("adjacency %d references unknown stand %d", adjacency.ID, adjacency.StandID)
		}
		if _, ok := snapshot.standByID[adjacency.AdjacentStandID]; !ok {
			return nil, NewDataError("adjacency %d references unknown stand %d", adjacency.ID, adjacency.AdjacentStandID)
		}
		if adjacency.StandID == adjacency.AdjacentStandID {
			return nil, NewDataError("adjacency %d is self-referential on stand %d", adjacency.ID, adjacency.StandID)
		}
		if _, ok := snapshot.rankByCode[adjacency.TriggerSizeCode]; !ok {
			return nil, NewDataError("adjacency %d references unknown size code %q", adjacency.ID, adjacency.TriggerSizeCode)
		}
		if adjacency.RestrictionKind == operation.RestrictionSizeCap {
			if _, ok := snapshot.rankByCode[adjacency.MaxAdjacentSizeCode]; !ok {
				return nil, NewDataError("adjacency %d references unknown size code %q", adjacency.ID, adjacency.MaxAdjacentSizeCode)
			}
		}
		snapshot.outgoingAdj[adjacency.StandID] = append(snapshot.outgoingAdj[adjacency.StandID], adjacency)
		snapshot.incomingAdj[adjacency.AdjacentStandID] = append(snapshot.incomingAdj[adjacency.AdjacentStandID], adjacency)
	}
	for _, allocation := range data.AirlineAllocations {
		if _, ok := snapshot.terminalByID[allocation.TerminalID]; !ok {
			return nil, NewDataError("airline allocation %s references unknown terminal %d",
				allocation.AirlineCode, allocation.TerminalID)
		}
		snapshot.airlineToTerm[allocation.AirlineCode] = allocation.TerminalID
	}

	// 能力集按逐机型完整停放判定展开: 分类中存在至少一种可停放机型才计入,
	// 机位的翼展/机身限制和逐机型黑名单都会收窄分类上限给出的能力
	for _, stand := range data.Stands {
		byCategory := make(map[uint]bool)
		for _, aircraftType := range data.AircraftTypes {
			if snapshot.CanHost(stand, aircraftType) {
				byCategory[aircraftType.SizeCategoryID] = true
			}
		}
		snapshot.capability[stand.ID] = byCategory
	}
	return snapshot, nil
}

func (snapshot *Snapshot) Settings() *operation.OperationalSettings {
	return snapshot.settings
}

// ActiveStands 返回固定顺序的活跃机位
func (snapshot *Snapshot) ActiveStands() []*operation.Stand {
	return snapshot.activeStands
}

func (snapshot *Snapshot) StandByID(id uint) (*operation.Stand, bool) {
	stand, ok := snapshot.standByID[id]
	return stand, ok
}

// StandFullCode 返回"廊桥码-机位码"形式的全局唯一机位标识
func (snapshot *Snapshot) StandFullCode(stand *operation.Stand) string {
	if pier, ok := snapshot.pierByID[stand.PierID]; ok {
		return fmt.Sprintf("%s-%s", pier.Code, stand.Code)
	}
	return stand.Code
}

func (snapshot *Snapshot) AircraftTypeByCode(code string) (*operation.AircraftType, bool) {
	aircraftType, ok := snapshot.typeByCode[code]
	return aircraftType, ok
}

// CategoryOf 返回机型所属的尺寸分类
func (snapshot *Snapshot) CategoryOf(aircraftType *operation.AircraftType) *operation.SizeCategory {
	return snapshot.categoryByID[aircraftType.SizeCategoryID]
}

// Categories 按Rank升序返回全部尺寸分类
func (snapshot *Snapshot) Categories() []*operation.SizeCategory {
	return snapshot.categories
}

// RankOf 返回尺寸码的序, 未知尺寸码返回-1
func (snapshot *Snapshot) RankOf(code string) int {
	if rank, ok := snapshot.rankByCode[code]; ok {
		return rank
	}
	return -1
}

// Turnaround 返回机型的最小过站时间
func (snapshot *Snapshot) Turnaround(aircraftType *operation.AircraftType) (time.Duration, bool) {
	duration, ok := snapshot.turnarounds[aircraftType.ID]
	return duration, ok
}

// CanHost 判断机位能否停放指定机型
// 机型白名单/黑名单优先于尺寸推断: 存在显式记录时以记录为准
func (snapshot *Snapshot) CanHost(stand *operation.Stand, aircraftType *operation.AircraftType) bool {
	if !stand.Active {
		return false
	}
	if byType, ok := snapshot.overrides[stand.ID]; ok {
		if allowed, ok := byType[aircraftType.ID]; ok {
			return allowed
		}
	}
	if aircraftType.WingspanMeters > stand.MaxWingspanMeters {
		return false
	}
	if aircraftType.LengthMeters > stand.MaxLengthMeters {
		return false
	}
	standCategory := snapshot.categoryByID[stand.MaxSizeCategoryID]
	typeCategory := snapshot.categoryByID[aircraftType.SizeCategoryID]
	return typeCategory.Rank <= standCategory.Rank
}

// CanHostCategory 判断机位能否停放某尺寸分类中的至少一种机型
// 能力集在快照构建时用CanHost逐机型展开, 这里只查表
func (snapshot *Snapshot) CanHostCategory(stand *operation.Stand, category *operation.SizeCategory) bool {
	if !stand.Active {
		return false
	}
	return snapshot.capability[stand.ID][category.ID]
}

// OutgoingAdjacencies 返回以standID为触发方的邻接限制
func (snapshot *Snapshot) OutgoingAdjacencies(standID uint) []*operation.StandAdjacency {
	return snapshot.outgoingAdj[standID]
}

// IncomingAdjacencies 返回以standID为受限方的邻接限制
func (snapshot *Snapshot) IncomingAdjacencies(standID uint) []*operation.StandAdjacency {
	return snapshot.incomingAdj[standID]
}

// TerminalOfStand 返回机位所属航站楼
func (snapshot *Snapshot) TerminalOfStand(standID uint) uint {
	return snapshot.standToTerm[standID]
}

// AirlineTerminal 返回航司绑定的航站楼, 未绑定返回false
func (snapshot *Snapshot) AirlineTerminal(airline string) (uint, bool) {
	terminalID, ok := snapshot.airlineToTerm[airline]
	return terminalID, ok
}

// Package planner
package planner

import (
	"context"
	"sort"
	"time"

	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

// UnallocatedReason 航班未获分配的原因码
type UnallocatedReason string

const (
	ReasonNoEligibleStand        UnallocatedReason = "no_eligible_stand"
	ReasonAllStandsBusy          UnallocatedReason = "all_stands_busy"
	ReasonAdjacencyConflict      UnallocatedReason = "adjacency_conflict"
	ReasonMaintenanceConflict    UnallocatedReason = "maintenance_conflict"
	ReasonOutsideOperatingWindow UnallocatedReason = "outside_operating_window"
)

// Assignment 一次机位占用, 过站航班对共享同一条记录
// FlightIDs中到达在前, 离港在后
type Assignment struct {
	FlightIDs []uint    `json:"flight_ids"`
	StandID   uint      `json:"stand_id"`
	StandCode string    `json:"stand_code"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Score     float64   `json:"score"`
	SizeCode  string    `json:"size_code"`
}

type UnallocatedFlight struct {
	FlightID uint              `json:"flight_id"`
	Number   string            `json:"number"`
	Reason   UnallocatedReason `json:"reason"`
}

type StandUtilisation struct {
	StandID         uint    `json:"stand_id"`
	StandCode       string  `json:"stand_code"`
	OccupiedMinutes int     `json:"occupied_minutes"`
	WindowMinutes   int     `json:"window_minutes"`
	Ratio           float64 `json:"ratio"`
}

type SlotUtilisation struct {
	SlotIndex int     `json:"slot_index"`
	Allocated int     `json:"allocated"`
	Capacity  int     `json:"capacity"`
	Ratio     float64 `json:"ratio"`
}

// AllocationResult 一次完整分配运行的产物
type AllocationResult struct {
	Assignments      []*Assignment        `json:"assignments"`
	Unallocated      []*UnallocatedFlight `json:"unallocated"`
	StandUtilisation []*StandUtilisation  `json:"stand_utilisation"`
	SlotUtilisation  []*SlotUtilisation   `json:"slot_utilisation"`
	Displaced        int                  `json:"displaced"`
}

type AllocatorOptions struct {
	// EnableDisplacement 启用第二轮腾挪: 允许把已分配的低优先级航班
	// 挪到其他机位, 为未分配航班让位, 腾挪绝不减少已分配总数
	EnableDisplacement bool
}

// placement 一次待安排的机位占用, 过站航班对合并为一条
type placement struct {
	arrival      *operation.Flight
	departure    *operation.Flight
	aircraftType *operation.AircraftType
	rank         int
	sizeCode     string
	start        time.Time
	end          time.Time
	id           uint
	paired       bool
	assignment   *Assignment
	reason       UnallocatedReason
}

func (p *placement) flightIDs() []uint {
	ids := make([]uint, 0, 2)
	if p.arrival != nil {
		ids = append(ids, p.arrival.ID)
	}
	if p.departure != nil {
		ids = append(ids, p.departure.ID)
	}
	return ids
}

func (p *placement) number() string {
	if p.arrival != nil {
		return p.arrival.Number
	}
	return p.departure.Number
}

// before 分配优先级: 过站对优先, 其次机型尺寸降序, 再次占用开始时间, 最后航班ID
func (p *placement) before(other *placement) bool {
	if p.paired != other.paired {
		return p.paired
	}
	if p.rank != other.rank {
		return p.rank > other.rank
	}
	if !p.start.Equal(other.start) {
		return p.start.Before(other.start)
	}
	return p.id < other.id
}

// StandAllocator 单日机位分配器, 单线程贪心两轮
type StandAllocator struct {
	logger   log.LoggerInterface
	snapshot *Snapshot
	grid     *SlotGrid
	options  AllocatorOptions
	progress *Progress
}

func NewStandAllocator(logger log.LoggerInterface, snapshot *Snapshot, grid *SlotGrid, options AllocatorOptions) *StandAllocator {
	return &StandAllocator{
		logger:   logger,
		snapshot: snapshot,
		grid:     grid,
		options:  options,
		progress: NewProgress(),
	}
}

func (allocator *StandAllocator) Progress() *Progress {
	return allocator.progress
}

// Allocate 对一个运行日的航班执行完整分配
// 输入顺序不影响结果, 运行重复执行产出相同分配
func (allocator *StandAllocator) Allocate(ctx context.Context, flights []*operation.Flight,
	maintenance []*operation.MaintenanceRequest) (*AllocationResult, error) {
	allocator.progress.reset()

	maintenanceWindows, planError := allocator.maintenanceWindows(maintenance)
	if planError != nil {
		return nil, planError
	}
	placements, planError := allocator.buildPlacements(flights)
	if planError != nil {
		return nil, planError
	}
	sort.Slice(placements, func(i, j int) bool {
		return placements[i].before(placements[j])
	})

	timelines := make(map[uint][]*Assignment)
	result := &AllocationResult{
		Assignments:      make([]*Assignment, 0, len(placements)),
		Unallocated:      make([]*UnallocatedFlight, 0),
		StandUtilisation: make([]*StandUtilisation, 0),
		SlotUtilisation:  make([]*SlotUtilisation, 0),
	}

	for _, current := range placements {
		if err := ctx.Err(); err != nil {
			return nil, NewCancelled(err)
		}
		allocator.place(current, timelines, maintenanceWindows)
		allocator.progress.addFlight()
		if current.paired {
			allocator.progress.addFlight()
		}
	}

	if allocator.options.EnableDisplacement {
		displaced, err := allocator.displacementPass(ctx, placements, timelines, maintenanceWindows)
		if err != nil {
			return nil, err
		}
		result.Displaced = displaced
	}

	for _, current := range placements {
		if current.assignment != nil {
			result.Assignments = append(result.Assignments, current.assignment)
		} else {
			for _, flightID := range current.flightIDs() {
				result.Unallocated = append(result.Unallocated, &UnallocatedFlight{
					FlightID: flightID,
					Number:   current.number(),
					Reason:   current.reason,
				})
			}
		}
	}
	sort.Slice(result.Unallocated, func(i, j int) bool {
		return result.Unallocated[i].FlightID < result.Unallocated[j].FlightID
	})

	allocator.fillUtilisation(result, timelines)
	allocator.logger.InfoF("Allocation finished: %d assignments, %d flights unallocated, %d displaced",
		len(result.Assignments), len(result.Unallocated), result.Displaced)
	return result, nil
}

// maintenanceWindows 校验维护申请并收集占用机位的维护窗口
// 只有影响容量的状态参与分配
func (allocator *StandAllocator) maintenanceWindows(requests []*operation.MaintenanceRequest) (map[uint][][2]time.Time, *PlanError) {
	windows := make(map[uint][][2]time.Time)
	for _, request := range requests {
		if _, ok := allocator.snapshot.StandByID(request.StandID); !ok {
			return nil, NewDataError("maintenance request %d references unknown stand %d", request.ID, request.StandID)
		}
		if !request.EndTime.After(request.StartTime) {
			return nil, NewDataError("maintenance request %d has empty window", request.ID)
		}
		if !operation.MaintenanceStatus(request.Status).AffectsCapacity() {
			continue
		}
		windows[request.StandID] = append(windows[request.StandID], [2]time.Time{request.StartTime, request.EndTime})
	}
	return windows, nil
}

// buildPlacements 校验航班, 配对过站并计算占用窗口
func (allocator *StandAllocator) buildPlacements(flights []*operation.Flight) ([]*placement, *PlanError) {
	arrivals := make([]*operation.Flight, 0)
	departures := make([]*operation.Flight, 0)
	types := make(map[uint]*operation.AircraftType)
	turnarounds := make(map[uint]time.Duration)

	for _, flight := range flights {
		if !operation.FlightNature(flight.Nature).IsValid() {
			return nil, NewDataError("flight %s has unknown nature %d", flight.Number, flight.Nature)
		}
		aircraftType, ok := allocator.snapshot.AircraftTypeByCode(flight.AircraftTypeCode)
		if !ok {
			return nil, NewDataError("flight %s references unknown aircraft type %q", flight.Number, flight.AircraftTypeCode)
		}
		turnaround, ok := allocator.snapshot.Turnaround(aircraftType)
		if !ok {
			return nil, NewConfigError("no turnaround rule for aircraft type %s", aircraftType.IcaoCode)
		}
		types[flight.ID] = aircraftType
		turnarounds[flight.ID] = turnaround
		if operation.FlightNature(flight.Nature) == operation.NatureArrival {
			arrivals = append(arrivals, flight)
		} else {
			departures = append(departures, flight)
		}
	}
	sortFlights(arrivals)
	sortFlights(departures)

	pairedDeparture := make(map[uint]bool)
	pairs := make(map[uint]*operation.Flight)

	// 第一轮: 同航司同注册号配对
	for _, arrival := range arrivals {
		if arrival.Registration == "" {
			continue
		}
		for _, departure := range departures {
			if pairedDeparture[departure.ID] || departure.Registration != arrival.Registration ||
				departure.Airline != arrival.Airline {
				continue
			}
			if allocator.feasiblePair(arrival, departure, turnarounds[arrival.ID]) {
				pairs[arrival.ID] = departure
				pairedDeparture[departure.ID] = true
				break
			}
		}
	}
	// 第二轮: 同航司同机型取最早可行离港
	for _, arrival := range arrivals {
		if _, ok := pairs[arrival.ID]; ok {
			continue
		}
		for _, departure := range departures {
			if pairedDeparture[departure.ID] || departure.Airline != arrival.Airline ||
				departure.AircraftTypeCode != arrival.AircraftTypeCode {
				continue
			}
			if allocator.feasiblePair(arrival, departure, turnarounds[arrival.ID]) {
				pairs[arrival.ID] = departure
				pairedDeparture[departure.ID] = true
				break
			}
		}
	}

	gap := allocator.grid.DefaultGap()
	placements := make([]*placement, 0, len(flights))
	appendPlacement := func(arrival, departure *operation.Flight, start, end time.Time) {
		flight := arrival
		if flight == nil {
			flight = departure
		}
		aircraftType := types[flight.ID]
		category := allocator.snapshot.CategoryOf(aircraftType)
		current := &placement{
			arrival:      arrival,
			departure:    departure,
			aircraftType: aircraftType,
			rank:         category.Rank,
			sizeCode:     category.Code,
			start:        start,
			end:          end,
			paired:       arrival != nil && departure != nil,
		}
		current.id = flight.ID
		if current.paired && departure.ID < current.id {
			current.id = departure.ID
		}
		placements = append(placements, current)
	}

	for _, arrival := range arrivals {
		if departure, ok := pairs[arrival.ID]; ok {
			appendPlacement(arrival, departure, arrival.ScheduledTime.Add(-gap), departure.ScheduledTime.Add(gap))
		} else {
			appendPlacement(arrival, nil, arrival.ScheduledTime.Add(-gap), arrival.ScheduledTime.Add(turnarounds[arrival.ID]))
		}
	}
	for _, departure := range departures {
		if pairedDeparture[departure.ID] {
			continue
		}
		appendPlacement(nil, departure, departure.ScheduledTime.Add(-turnarounds[departure.ID]), departure.ScheduledTime.Add(gap))
	}
	return placements, nil
}

// feasiblePair 过站可行性: 到达在前且停站时间不短于最小过站
func (allocator *StandAllocator) feasiblePair(arrival, departure *operation.Flight, turnaround time.Duration) bool {
	return departure.ScheduledTime.Sub(arrival.ScheduledTime) >= turnaround
}

// place 为单个占用尝试所有候选机位, 失败时记录最具体的原因码
func (allocator *StandAllocator) place(current *placement, timelines map[uint][]*Assignment,
	maintenanceWindows map[uint][][2]time.Time) {
	if !allocator.grid.Contains(current.start, current.end) {
		current.reason = ReasonOutsideOperatingWindow
		return
	}
	candidates := allocator.candidates(current)
	if len(candidates) == 0 {
		current.reason = ReasonNoEligibleStand
		return
	}
	allocator.sortCandidates(candidates, current, timelines)

	failedAdjacency := false
	failedMaintenance := false
	for _, stand := range candidates {
		if allocator.maintenanceOverlap(stand.ID, current.start, current.end, maintenanceWindows) {
			failedMaintenance = true
			continue
		}
		if !allocator.fits(stand.ID, current.start, current.end, timelines, nil) {
			continue
		}
		if !allocator.adjacencyAllows(stand.ID, current.rank, current.start, current.end, timelines, nil) {
			failedAdjacency = true
			continue
		}
		allocator.commit(current, stand, timelines)
		return
	}
	switch {
	case failedAdjacency:
		current.reason = ReasonAdjacencyConflict
	case failedMaintenance:
		current.reason = ReasonMaintenanceConflict
	default:
		current.reason = ReasonAllStandsBusy
	}
}

// candidates 按机位固定顺序返回可停放该机型的机位
// 航司绑定了航站楼时, 仅保留该航站楼内的机位
func (allocator *StandAllocator) candidates(current *placement) []*operation.Stand {
	airline := ""
	if current.arrival != nil {
		airline = current.arrival.Airline
	} else {
		airline = current.departure.Airline
	}
	boundTerminal, bound := allocator.snapshot.AirlineTerminal(airline)

	candidates := make([]*operation.Stand, 0)
	for _, stand := range allocator.snapshot.ActiveStands() {
		if bound && allocator.snapshot.TerminalOfStand(stand.ID) != boundTerminal {
			continue
		}
		if allocator.snapshot.CanHost(stand, current.aircraftType) {
			candidates = append(candidates, stand)
		}
	}
	return candidates
}

// sortCandidates 候选排序: 尺寸贴合度最优先, 其次负载, 最后机位码字典序
func (allocator *StandAllocator) sortCandidates(candidates []*operation.Stand, current *placement,
	timelines map[uint][]*Assignment) {
	tightness := func(stand *operation.Stand) int {
		standRank := allocator.snapshot.categoryByID[stand.MaxSizeCategoryID].Rank
		if standRank < current.rank {
			// 仅白名单放行的超限机型, 视为完全贴合
			return 0
		}
		return standRank - current.rank
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := tightness(candidates[i]), tightness(candidates[j])
		if ti != tj {
			return ti < tj
		}
		li, lj := len(timelines[candidates[i].ID]), len(timelines[candidates[j].ID])
		if li != lj {
			return li < lj
		}
		return allocator.snapshot.StandFullCode(candidates[i]) < allocator.snapshot.StandFullCode(candidates[j])
	})
}

func (allocator *StandAllocator) commit(current *placement, stand *operation.Stand, timelines map[uint][]*Assignment) {
	standRank := allocator.snapshot.categoryByID[stand.MaxSizeCategoryID].Rank
	score := float64(standRank - current.rank)
	if score < 0 {
		score = 0
	}
	current.assignment = &Assignment{
		FlightIDs: current.flightIDs(),
		StandID:   stand.ID,
		StandCode: allocator.snapshot.StandFullCode(stand),
		Start:     current.start,
		End:       current.end,
		Score:     score,
		SizeCode:  current.sizeCode,
	}
	current.reason = ""
	timelines[stand.ID] = append(timelines[stand.ID], current.assignment)
	sort.Slice(timelines[stand.ID], func(i, j int) bool {
		return timelines[stand.ID][i].Start.Before(timelines[stand.ID][j].Start)
	})
}

func (allocator *StandAllocator) uncommit(current *placement, timelines map[uint][]*Assignment) {
	timeline := timelines[current.assignment.StandID]
	for i, assignment := range timeline {
		if assignment == current.assignment {
			timelines[current.assignment.StandID] = append(timeline[:i:i], timeline[i+1:]...)
			break
		}
	}
	current.assignment = nil
}

// fits 判断窗口能否放进机位时间线, 相邻占用之间必须留足默认间隔
func (allocator *StandAllocator) fits(standID uint, start, end time.Time, timelines map[uint][]*Assignment,
	ignore *Assignment) bool {
	gap := allocator.grid.DefaultGap()
	for _, assignment := range timelines[standID] {
		if assignment == ignore {
			continue
		}
		if end.Add(gap).After(assignment.Start) && assignment.End.Add(gap).After(start) {
			return false
		}
	}
	return true
}

func (allocator *StandAllocator) maintenanceOverlap(standID uint, start, end time.Time,
	maintenanceWindows map[uint][][2]time.Time) bool {
	for _, window := range maintenanceWindows[standID] {
		if start.Before(window[1]) && window[0].Before(end) {
			return true
		}
	}
	return false
}

// adjacencyAllows 双向检查邻接限制
// 出向: 本机触发限制时, 相邻机位同时段的占用必须满足限制
// 入向: 相邻机位同时段的占用触发限制时, 本机必须满足限制
func (allocator *StandAllocator) adjacencyAllows(standID uint, rank int, start, end time.Time,
	timelines map[uint][]*Assignment, ignore *Assignment) bool {
	overlapping := func(assignment *Assignment) bool {
		return assignment != ignore && start.Before(assignment.End) && assignment.Start.Before(end)
	}
	for _, rule := range allocator.snapshot.OutgoingAdjacencies(standID) {
		if rank < allocator.snapshot.RankOf(rule.TriggerSizeCode) {
			continue
		}
		for _, assignment := range timelines[rule.AdjacentStandID] {
			if !overlapping(assignment) {
				continue
			}
			if rule.RestrictionKind == operation.RestrictionClosed {
				return false
			}
			if allocator.snapshot.RankOf(assignment.SizeCode) > allocator.snapshot.RankOf(rule.MaxAdjacentSizeCode) {
				return false
			}
		}
	}
	for _, rule := range allocator.snapshot.IncomingAdjacencies(standID) {
		triggerRank := allocator.snapshot.RankOf(rule.TriggerSizeCode)
		for _, assignment := range timelines[rule.StandID] {
			if !overlapping(assignment) || allocator.snapshot.RankOf(assignment.SizeCode) < triggerRank {
				continue
			}
			if rule.RestrictionKind == operation.RestrictionClosed {
				return false
			}
			if rank > allocator.snapshot.RankOf(rule.MaxAdjacentSizeCode) {
				return false
			}
		}
	}
	return true
}

// displacementPass 第二轮腾挪
// 仅当阻挡者能整体挪到其他机位且目标航班随即放入时才提交,
// 因此腾挪只会增加已分配数量, 绝不减少
func (allocator *StandAllocator) displacementPass(ctx context.Context, placements []*placement,
	timelines map[uint][]*Assignment, maintenanceWindows map[uint][][2]time.Time) (int, error) {
	byAssignment := make(map[*Assignment]*placement)
	for _, current := range placements {
		if current.assignment != nil {
			byAssignment[current.assignment] = current
		}
	}

	displaced := 0
	for _, current := range placements {
		if err := ctx.Err(); err != nil {
			return displaced, NewCancelled(err)
		}
		if current.assignment != nil ||
			(current.reason != ReasonAllStandsBusy && current.reason != ReasonAdjacencyConflict) {
			continue
		}
		for _, stand := range allocator.candidates(current) {
			if allocator.maintenanceOverlap(stand.ID, current.start, current.end, maintenanceWindows) {
				continue
			}
			blocker := allocator.singleBlocker(stand.ID, current, timelines)
			if blocker == nil {
				continue
			}
			victim := byAssignment[blocker]
			if victim == nil {
				continue
			}
			if !allocator.adjacencyAllows(stand.ID, current.rank, current.start, current.end, timelines, blocker) {
				continue
			}
			if target := allocator.relocationTarget(victim, stand.ID, timelines, maintenanceWindows); target != nil {
				home, _ := allocator.snapshot.StandByID(victim.assignment.StandID)
				reason := current.reason
				allocator.uncommit(victim, timelines)
				allocator.commit(victim, target, timelines)
				allocator.commit(current, stand, timelines)
				// 腾挪后的时间线上双方互为邻居, 必须各自重新满足邻接限制,
				// 任一不满足则整体回退到腾挪前的状态
				if !allocator.adjacencyAllows(stand.ID, current.rank, current.start, current.end, timelines, current.assignment) ||
					!allocator.adjacencyAllows(target.ID, victim.rank, victim.start, victim.end, timelines, victim.assignment) {
					allocator.uncommit(current, timelines)
					allocator.uncommit(victim, timelines)
					allocator.commit(victim, home, timelines)
					byAssignment[victim.assignment] = victim
					current.reason = reason
					continue
				}
				byAssignment[victim.assignment] = victim
				byAssignment[current.assignment] = current
				displaced++
				allocator.logger.DebugF("Displaced flight %s from %d to %d for flight %s",
					victim.number(), stand.ID, target.ID, current.number())
				break
			}
		}
	}
	return displaced, nil
}

// singleBlocker 返回机位上与窗口冲突的唯一占用, 多于一个返回nil
func (allocator *StandAllocator) singleBlocker(standID uint, current *placement,
	timelines map[uint][]*Assignment) *Assignment {
	gap := allocator.grid.DefaultGap()
	var blocker *Assignment
	for _, assignment := range timelines[standID] {
		if current.end.Add(gap).After(assignment.Start) && assignment.End.Add(gap).After(current.start) {
			if blocker != nil {
				return nil
			}
			blocker = assignment
		}
	}
	return blocker
}

// relocationTarget 为被腾挪占用寻找新机位, 找不到返回nil
func (allocator *StandAllocator) relocationTarget(victim *placement, exclude uint,
	timelines map[uint][]*Assignment, maintenanceWindows map[uint][][2]time.Time) *operation.Stand {
	candidates := allocator.candidates(victim)
	allocator.sortCandidates(candidates, victim, timelines)
	for _, stand := range candidates {
		if stand.ID == exclude || stand.ID == victim.assignment.StandID {
			continue
		}
		if allocator.maintenanceOverlap(stand.ID, victim.start, victim.end, maintenanceWindows) {
			continue
		}
		if !allocator.fits(stand.ID, victim.start, victim.end, timelines, victim.assignment) {
			continue
		}
		if !allocator.adjacencyAllows(stand.ID, victim.rank, victim.start, victim.end, timelines, victim.assignment) {
			continue
		}
		return stand
	}
	return nil
}

// fillUtilisation 汇总机位与时间槽两个维度的利用率
func (allocator *StandAllocator) fillUtilisation(result *AllocationResult, timelines map[uint][]*Assignment) {
	windowMinutes := int(allocator.grid.End().Sub(allocator.grid.Start()).Minutes())
	for _, stand := range allocator.snapshot.ActiveStands() {
		occupied := 0
		for _, assignment := range timelines[stand.ID] {
			occupied += int(assignment.End.Sub(assignment.Start).Minutes())
		}
		utilisation := &StandUtilisation{
			StandID:         stand.ID,
			StandCode:       allocator.snapshot.StandFullCode(stand),
			OccupiedMinutes: occupied,
			WindowMinutes:   windowMinutes,
		}
		if windowMinutes > 0 {
			utilisation.Ratio = float64(occupied) / float64(windowMinutes)
		}
		result.StandUtilisation = append(result.StandUtilisation, utilisation)
	}

	capacity := len(allocator.snapshot.ActiveStands())
	for _, slot := range allocator.grid.Slots() {
		allocated := 0
		for _, timeline := range timelines {
			for _, assignment := range timeline {
				if slot.Start.Before(assignment.End) && assignment.Start.Before(slot.End) {
					allocated++
				}
			}
		}
		utilisation := &SlotUtilisation{SlotIndex: slot.Index, Allocated: allocated, Capacity: capacity}
		if capacity > 0 {
			utilisation.Ratio = float64(allocated) / float64(capacity)
		}
		result.SlotUtilisation = append(result.SlotUtilisation, utilisation)
	}
}

func sortFlights(flights []*operation.Flight) {
	sort.Slice(flights, func(i, j int) bool {
		if !flights[i].ScheduledTime.Equal(flights[j].ScheduledTime) {
			return flights[i].ScheduledTime.Before(flights[j].ScheduledTime)
		}
		return flights[i].ID < flights[j].ID
	})
}

// Package planner
package planner

import (
	"context"
	"testing"

	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

func runAllocation(t *testing.T, data *operation.ReferenceData, options AllocatorOptions,
	flights []*operation.Flight, maintenance []*operation.MaintenanceRequest) *AllocationResult {
	t.Helper()
	snapshot := testSnapshot(t, data)
	grid := testGrid(t, snapshot)
	allocator := NewStandAllocator(&nopLogger{}, snapshot, grid, options)
	result, err := allocator.Allocate(context.Background(), flights, maintenance)
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	return result
}

func TestSingleArrivalPlacement(t *testing.T) {
	flights := []*operation.Flight{arrival(1, "CES", "MU5101", "B-1234", "A320", "10:00", t)}
	result := runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, nil)

	if len(result.Assignments) != 1 || len(result.Unallocated) != 0 {
		t.Fatalf("got %d assignments, %d unallocated; expected 1, 0", len(result.Assignments), len(result.Unallocated))
	}
	assignment := result.Assignments[0]
	// 到达占用: [计划时刻-默认间隔, 计划时刻+最小过站)
	if !assignment.Start.Equal(at(t, "09:45")) || !assignment.End.Equal(at(t, "10:45")) {
		t.Errorf("window = [%v, %v); expected [09:45, 10:45)", assignment.Start, assignment.End)
	}
	// 贴合度相同的机位按机位码取最小
	if assignment.StandCode != "A-01" {
		t.Errorf("stand = %s; expected A-01", assignment.StandCode)
	}
	for _, utilisation := range result.StandUtilisation {
		if utilisation.StandID == assignment.StandID && utilisation.OccupiedMinutes != 60 {
			t.Errorf("occupied minutes = %d; expected 60", utilisation.OccupiedMinutes)
		}
	}
}

func TestSingleDeparturePlacement(t *testing.T) {
	flights := []*operation.Flight{departure(1, "CES", "MU5102", "B-1234", "A320", "10:00", t)}
	result := runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, nil)

	if len(result.Assignments) != 1 {
		t.Fatalf("got %d assignments; expected 1", len(result.Assignments))
	}
	assignment := result.Assignments[0]
	// 离港占用: [计划时刻-最小过站, 计划时刻+默认间隔)
	if !assignment.Start.Equal(at(t, "09:15")) || !assignment.End.Equal(at(t, "10:15")) {
		t.Errorf("window = [%v, %v); expected [09:15, 10:15)", assignment.Start, assignment.End)
	}
}

func TestRotationPairing(t *testing.T) {
	flights := []*operation.Flight{
		arrival(1, "CES", "MU5101", "B-1234", "A320", "10:00", t),
		departure(2, "CES", "MU5102", "B-1234", "A320", "11:00", t),
	}
	result := runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, nil)

	if len(result.Assignments) != 1 {
		t.Fatalf("got %d assignments; expected 1 shared rotation assignment", len(result.Assignments))
	}
	assignment := result.Assignments[0]
	if len(assignment.FlightIDs) != 2 || assignment.FlightIDs[0] != 1 || assignment.FlightIDs[1] != 2 {
		t.Errorf("flight ids = %v; expected [1 2]", assignment.FlightIDs)
	}
	// 过站占用连续跨越两个航班: [到达-间隔, 离港+间隔)
	if !assignment.Start.Equal(at(t, "09:45")) || !assignment.End.Equal(at(t, "11:15")) {
		t.Errorf("window = [%v, %v); expected [09:45, 11:15)", assignment.Start, assignment.End)
	}
}

func TestRotationFallbackPairing(t *testing.T) {
	// 注册号不同, 退回同航司同机型配对
	flights := []*operation.Flight{
		arrival(1, "CES", "MU5101", "B-1111", "A320", "10:00", t),
		departure(2, "CES", "MU5102", "B-2222", "A320", "11:00", t),
	}
	result := runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, nil)
	if len(result.Assignments) != 1 || len(result.Assignments[0].FlightIDs) != 2 {
		t.Fatalf("expected one paired assignment, got %+v", result.Assignments)
	}
}

func TestRotationInfeasibleStaysSplit(t *testing.T) {
	// 停站40分钟短于最小过站45分钟, 不配对
	flights := []*operation.Flight{
		arrival(1, "CES", "MU5101", "B-1234", "A320", "10:00", t),
		departure(2, "CES", "MU5102", "B-1234", "A320", "10:40", t),
	}
	result := runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, nil)
	if len(result.Assignments) != 2 {
		t.Fatalf("got %d assignments; expected 2 separate occupations", len(result.Assignments))
	}
}

func TestGapEnforcedBetweenOccupations(t *testing.T) {
	// 第二班距第一班窗口结束恰好一个默认间隔, 可共用机位
	flights := []*operation.Flight{
		arrival(1, "CES", "MU5101", "", "A320", "10:00", t),
		arrival(2, "CSN", "CZ3301", "", "A320", "11:15", t),
	}
	result := runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, nil)
	if len(result.Assignments) != 2 {
		t.Fatalf("got %d assignments; expected 2", len(result.Assignments))
	}
	if result.Assignments[0].StandID != result.Assignments[1].StandID {
		t.Errorf("expected both flights on the same stand with exact gap spacing")
	}

	// 间隔不足时第二班被推到下一个机位
	flights[1].ScheduledTime = at(t, "11:00")
	result = runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, nil)
	if result.Assignments[0].StandID == result.Assignments[1].StandID {
		t.Errorf("expected flights on different stands when gap is violated")
	}
}

func TestPriorityLargerAircraftFirst(t *testing.T) {
	data := testReferenceData()
	data.Stands[0].Active = false
	data.Stands[1].Active = false
	flights := []*operation.Flight{
		arrival(1, "CES", "MU5101", "", "A320", "10:00", t),
		arrival(2, "CES", "MU0588", "", "B77W", "10:00", t),
	}
	result := runAllocation(t, data, AllocatorOptions{}, flights, nil)

	if len(result.Assignments) != 1 {
		t.Fatalf("got %d assignments; expected 1", len(result.Assignments))
	}
	// 唯一的E级机位判给尺寸更大的B77W
	if result.Assignments[0].FlightIDs[0] != 2 {
		t.Errorf("stand went to flight %d; expected B77W (flight 2)", result.Assignments[0].FlightIDs[0])
	}
	if len(result.Unallocated) != 1 || result.Unallocated[0].Reason != ReasonAllStandsBusy {
		t.Errorf("unallocated = %+v; expected flight 1 with all_stands_busy", result.Unallocated)
	}
}

func TestAdjacencyConflict(t *testing.T) {
	data := testReferenceData()
	data.Stands[0].Active = false
	flights := []*operation.Flight{
		arrival(1, "CES", "MU0588", "", "B77W", "10:00", t),
		arrival(2, "CSN", "CZ3301", "", "A320", "10:00", t),
	}
	result := runAllocation(t, data, AllocatorOptions{}, flights, nil)

	if len(result.Assignments) != 1 {
		t.Fatalf("got %d assignments; expected 1", len(result.Assignments))
	}
	if result.Assignments[0].StandCode != "A-03" {
		t.Errorf("B77W on stand %s; expected A-03", result.Assignments[0].StandCode)
	}
	// A-03被E级占用时A-02关闭, A320同时段无处可去
	if len(result.Unallocated) != 1 || result.Unallocated[0].Reason != ReasonAdjacencyConflict {
		t.Errorf("unallocated = %+v; expected adjacency_conflict", result.Unallocated)
	}
}

func TestMaintenanceBlocksStand(t *testing.T) {
	maintenance := []*operation.MaintenanceRequest{
		{ID: 1, StandID: 1, StartTime: at(t, "09:00"), EndTime: at(t, "12:00"), Status: int(operation.MaintenanceApproved)},
	}
	flights := []*operation.Flight{arrival(1, "CES", "MU5101", "", "A320", "10:00", t)}
	result := runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, maintenance)

	if len(result.Assignments) != 1 {
		t.Fatalf("got %d assignments; expected 1", len(result.Assignments))
	}
	if result.Assignments[0].StandCode != "A-02" {
		t.Errorf("stand = %s; expected A-02 while A-01 under maintenance", result.Assignments[0].StandCode)
	}
}

func TestMaintenanceConflictReason(t *testing.T) {
	maintenance := []*operation.MaintenanceRequest{
		{ID: 1, StandID: 1, StartTime: at(t, "09:00"), EndTime: at(t, "12:00"), Status: int(operation.MaintenanceApproved)},
		{ID: 2, StandID: 2, StartTime: at(t, "09:00"), EndTime: at(t, "12:00"), Status: int(operation.MaintenanceInProgress)},
		{ID: 3, StandID: 3, StartTime: at(t, "09:00"), EndTime: at(t, "12:00"), Status: int(operation.MaintenanceApproved)},
	}
	flights := []*operation.Flight{arrival(1, "CES", "MU5101", "", "A320", "10:00", t)}
	result := runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, maintenance)

	if len(result.Unallocated) != 1 || result.Unallocated[0].Reason != ReasonMaintenanceConflict {
		t.Errorf("unallocated = %+v; expected maintenance_conflict", result.Unallocated)
	}
}

func TestMaintenanceRequestedStatusIgnored(t *testing.T) {
	// 仅申请中的维护不占用机位
	maintenance := []*operation.MaintenanceRequest{
		{ID: 1, StandID: 1, StartTime: at(t, "09:00"), EndTime: at(t, "12:00"), Status: int(operation.MaintenanceRequested)},
	}
	flights := []*operation.Flight{arrival(1, "CES", "MU5101", "", "A320", "10:00", t)}
	result := runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, maintenance)

	if len(result.Assignments) != 1 || result.Assignments[0].StandCode != "A-01" {
		t.Fatalf("expected A-01 to stay available, got %+v", result.Assignments)
	}
}

func TestOutsideOperatingWindow(t *testing.T) {
	tests := []struct {
		name   string
		flight *operation.Flight
	}{
		{"arrival window starts before day", arrival(1, "CES", "MU5101", "", "A320", "06:00", t)},
		{"departure window ends after day", departure(2, "CES", "MU5102", "", "A320", "22:50", t)},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		result := runAllocation(t, testReferenceData(), AllocatorOptions{}, []*operation.Flight{test.flight}, nil)
		if len(result.Unallocated) != 1 || result.Unallocated[0].Reason != ReasonOutsideOperatingWindow {
			fail++
			t.Errorf("%s: unallocated = %+v; expected outside_operating_window", test.name, result.Unallocated)
			continue
		}
		pass++
	}
	t.Logf("TestOutsideOperatingWindow: %d pass, %d fail", pass, fail)
}

func TestNoEligibleStand(t *testing.T) {
	data := testReferenceData()
	data.Stands[2].Active = false
	flights := []*operation.Flight{arrival(1, "CES", "MU0588", "", "B77W", "10:00", t)}
	result := runAllocation(t, data, AllocatorOptions{}, flights, nil)

	if len(result.Unallocated) != 1 || result.Unallocated[0].Reason != ReasonNoEligibleStand {
		t.Errorf("unallocated = %+v; expected no_eligible_stand", result.Unallocated)
	}
}

func TestAirlineTerminalBinding(t *testing.T) {
	data := displacementReferenceData()
	flights := []*operation.Flight{arrival(1, "CES", "MU5101", "", "A320", "10:00", t)}
	result := runAllocation(t, data, AllocatorOptions{}, flights, nil)

	if len(result.Assignments) != 1 || result.Assignments[0].StandCode != "A-01" {
		t.Fatalf("bound airline must stay in its terminal, got %+v", result.Assignments)
	}
}

func TestInputValidation(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	grid := testGrid(t, snapshot)
	allocator := NewStandAllocator(&nopLogger{}, snapshot, grid, AllocatorOptions{})

	unknownType := arrival(1, "CES", "MU5101", "", "A388", "10:00", t)
	if _, err := allocator.Allocate(context.Background(), []*operation.Flight{unknownType}, nil); KindOf(err) != DataError {
		t.Errorf("unknown aircraft type: expected DataError, got %v", err)
	}

	badNature := arrival(2, "CES", "MU5103", "", "A320", "10:00", t)
	badNature.Nature = 9
	if _, err := allocator.Allocate(context.Background(), []*operation.Flight{badNature}, nil); KindOf(err) != DataError {
		t.Errorf("bad nature: expected DataError, got %v", err)
	}

	badMaintenance := []*operation.MaintenanceRequest{{ID: 1, StandID: 99, StartTime: at(t, "09:00"), EndTime: at(t, "10:00"), Status: 2}}
	if _, err := allocator.Allocate(context.Background(), nil, badMaintenance); KindOf(err) != DataError {
		t.Errorf("unknown maintenance stand: expected DataError, got %v", err)
	}
}

func TestMissingTurnaroundRule(t *testing.T) {
	data := testReferenceData()
	data.TurnaroundRules = data.TurnaroundRules[:1]
	snapshot := testSnapshot(t, data)
	grid := testGrid(t, snapshot)
	allocator := NewStandAllocator(&nopLogger{}, snapshot, grid, AllocatorOptions{})

	flights := []*operation.Flight{arrival(1, "CES", "MU0588", "", "B77W", "10:00", t)}
	if _, err := allocator.Allocate(context.Background(), flights, nil); KindOf(err) != ConfigError {
		t.Errorf("expected ConfigError for missing turnaround rule, got %v", err)
	}
}

func TestAllocationDeterminism(t *testing.T) {
	flights := []*operation.Flight{
		arrival(1, "CES", "MU5101", "B-1234", "A320", "10:00", t),
		departure(2, "CES", "MU5102", "B-1234", "A320", "11:00", t),
		arrival(3, "CSN", "CZ3301", "", "A320", "10:05", t),
		arrival(4, "CES", "MU0588", "", "B77W", "10:30", t),
		departure(5, "CSN", "CZ3302", "", "A320", "12:00", t),
	}
	first := runAllocation(t, testReferenceData(), AllocatorOptions{}, flights, nil)

	reversed := make([]*operation.Flight, 0, len(flights))
	for i := len(flights) - 1; i >= 0; i-- {
		reversed = append(reversed, flights[i])
	}
	second := runAllocation(t, testReferenceData(), AllocatorOptions{}, reversed, nil)

	if len(first.Assignments) != len(second.Assignments) {
		t.Fatalf("assignment count differs: %d vs %d", len(first.Assignments), len(second.Assignments))
	}
	byFlight := func(result *AllocationResult) map[uint]uint {
		placed := make(map[uint]uint)
		for _, assignment := range result.Assignments {
			for _, flightID := range assignment.FlightIDs {
				placed[flightID] = assignment.StandID
			}
		}
		return placed
	}
	firstPlaced, secondPlaced := byFlight(first), byFlight(second)
	for flightID, standID := range firstPlaced {
		if secondPlaced[flightID] != standID {
			t.Errorf("flight %d on stand %d vs %d across input orders", flightID, standID, secondPlaced[flightID])
		}
	}
}

func TestAllocationCancellation(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	grid := testGrid(t, snapshot)
	allocator := NewStandAllocator(&nopLogger{}, snapshot, grid, AllocatorOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	flights := []*operation.Flight{arrival(1, "CES", "MU5101", "", "A320", "10:00", t)}
	if _, err := allocator.Allocate(ctx, flights, nil); KindOf(err) != Cancelled {
		t.Errorf("expected Cancelled, got %v", err)
	}
}

// displacementReferenceData 两个航站楼各一个C级机位, CES绑定T1
func displacementReferenceData() *operation.ReferenceData {
	data := testReferenceData()
	data.Stands = []*operation.Stand{
		{ID: 1, PierID: 1, Code: "01", MaxWingspanMeters: 36, MaxLengthMeters: 45, MaxSizeCategoryID: 1, Active: true},
		{ID: 4, PierID: 2, Code: "01", MaxWingspanMeters: 36, MaxLengthMeters: 45, MaxSizeCategoryID: 1, Active: true},
	}
	data.Terminals = append(data.Terminals, &operation.Terminal{ID: 2, Code: "T2", Name: "Terminal 2"})
	data.Piers = append(data.Piers, &operation.Pier{ID: 2, TerminalID: 2, Code: "B", Name: "Pier B"})
	data.Adjacencies = nil
	data.AirlineAllocations = []*operation.AirlineTerminalAllocation{
		{ID: 1, AirlineCode: "CES", TerminalID: 1},
	}
	return data
}

// assertAdjacencyCompliant 校验结果中任意两条重叠占用都满足邻接限制
func assertAdjacencyCompliant(t *testing.T, snapshot *Snapshot, result *AllocationResult) {
	t.Helper()
	for _, occupier := range result.Assignments {
		for _, rule := range snapshot.OutgoingAdjacencies(occupier.StandID) {
			if snapshot.RankOf(occupier.SizeCode) < snapshot.RankOf(rule.TriggerSizeCode) {
				continue
			}
			for _, neighbour := range result.Assignments {
				if neighbour.StandID != rule.AdjacentStandID ||
					!occupier.Start.Before(neighbour.End) || !neighbour.Start.Before(occupier.End) {
					continue
				}
				if rule.RestrictionKind == operation.RestrictionClosed {
					t.Errorf("%s occupied [%v, %v) closes %s yet %s holds [%v, %v)",
						occupier.StandCode, occupier.Start, occupier.End,
						neighbour.StandCode, neighbour.StandCode, neighbour.Start, neighbour.End)
				} else if snapshot.RankOf(neighbour.SizeCode) > snapshot.RankOf(rule.MaxAdjacentSizeCode) {
					t.Errorf("%s holds size %s above cap %s while %s occupied",
						neighbour.StandCode, neighbour.SizeCode, rule.MaxAdjacentSizeCode, occupier.StandCode)
				}
			}
		}
	}
}

func TestDisplacementFreesBoundStand(t *testing.T) {
	flights := []*operation.Flight{
		arrival(1, "CSN", "CZ3301", "", "A320", "09:55", t),
		arrival(2, "CES", "MU5101", "", "A320", "10:00", t),
	}

	baseline := runAllocation(t, displacementReferenceData(), AllocatorOptions{}, flights, nil)
	if len(baseline.Assignments) != 1 || len(baseline.Unallocated) != 1 {
		t.Fatalf("baseline = %d assignments, %d unallocated; expected 1, 1",
			len(baseline.Assignments), len(baseline.Unallocated))
	}

	displaced := runAllocation(t, displacementReferenceData(), AllocatorOptions{EnableDisplacement: true}, flights, nil)
	if len(displaced.Assignments) != 2 || len(displaced.Unallocated) != 0 {
		t.Fatalf("displacement = %d assignments, %d unallocated; expected 2, 0",
			len(displaced.Assignments), len(displaced.Unallocated))
	}
	if displaced.Displaced != 1 {
		t.Errorf("Displaced = %d; expected 1", displaced.Displaced)
	}
	// 腾挪绝不减少已分配数量
	if len(displaced.Assignments) < len(baseline.Assignments) {
		t.Errorf("displacement reduced assignment count: %d < %d", len(displaced.Assignments), len(baseline.Assignments))
	}
	assertAdjacencyCompliant(t, testSnapshot(t, displacementReferenceData()), displaced)
}

func TestDisplacementRespectsAdjacency(t *testing.T) {
	data := testReferenceData()
	// 仅保留两个C级机位, A-02被C级占用时A-01关闭
	data.Stands = data.Stands[:2]
	data.Adjacencies = []*operation.StandAdjacency{
		{ID: 1, StandID: 2, AdjacentStandID: 1, RestrictionKind: operation.RestrictionClosed, TriggerSizeCode: "C"},
	}
	snapshot := testSnapshot(t, data)
	grid := testGrid(t, snapshot)
	allocator := NewStandAllocator(&nopLogger{}, snapshot, grid, AllocatorOptions{EnableDisplacement: true})

	flights := []*operation.Flight{
		arrival(1, "CES", "MU5101", "", "A320", "09:55", t),
		arrival(2, "CSN", "CZ3301", "", "A320", "10:00", t),
	}
	result, err := allocator.Allocate(context.Background(), flights, nil)
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}

	// 腾挪后的阻挡者会落到触发关闭的邻位上, 双方无法同时合规, 必须整体放弃
	if len(result.Assignments) != 1 || len(result.Unallocated) != 1 {
		t.Fatalf("got %d assignments, %d unallocated; expected 1, 1",
			len(result.Assignments), len(result.Unallocated))
	}
	if result.Displaced != 0 {
		t.Errorf("Displaced = %d; expected 0", result.Displaced)
	}
	if result.Unallocated[0].Reason != ReasonAdjacencyConflict {
		t.Errorf("reason = %s; expected adjacency_conflict", result.Unallocated[0].Reason)
	}
	assertAdjacencyCompliant(t, snapshot, result)
}

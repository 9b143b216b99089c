// Package planner
package planner

import (
	"context"
	"math"
	"testing"

	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

func TestCapacityBaseline(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	grid := testGrid(t, snapshot)
	calculator := NewCapacityCalculator(&nopLogger{}, snapshot, grid)

	result, err := calculator.Calculate(context.Background(), ModeByTimeSlot)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if len(result.BySlot) != 68 {
		t.Fatalf("BySlot = %d entries; expected 68", len(result.BySlot))
	}
	// 3个机位可停C, 只有A-03可停E
	for _, slot := range result.BySlot {
		if slot.Counts["C"] != 3 || slot.Counts["E"] != 1 {
			t.Fatalf("slot %d counts = %v; expected C:3 E:1", slot.SlotIndex, slot.Counts)
		}
	}
	if len(result.ByBlock) != 17 {
		t.Errorf("ByBlock = %d entries; expected 17", len(result.ByBlock))
	}
	if result.ByBlock[0].Counts["C"] != 12 {
		t.Errorf("block 0 C count = %d; expected 12", result.ByBlock[0].Counts["C"])
	}
	if len(result.ByHour) != 17 {
		t.Errorf("ByHour = %d entries; expected 17", len(result.ByHour))
	}
	// 17小时窗口: C级51机位时, E级17机位时
	if math.Abs(result.StandHours["C"]-51) > 1e-9 || math.Abs(result.StandHours["E"]-17) > 1e-9 {
		t.Errorf("StandHours = %v; expected C:51 E:17", result.StandHours)
	}
	if math.Abs(result.GrandTotal-68) > 1e-9 {
		t.Errorf("GrandTotal = %v; expected 68", result.GrandTotal)
	}
}

func TestCapacityTotalsInvariantAcrossModes(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	grid := testGrid(t, snapshot)
	calculator := NewCapacityCalculator(&nopLogger{}, snapshot, grid)

	modes := []CapacityMode{ModeByTimeSlot, ModeByAircraftType, ModeBySizeCategory}
	totals := make([]float64, 0, len(modes))
	for _, mode := range modes {
		result, err := calculator.Calculate(context.Background(), mode)
		if err != nil {
			t.Fatalf("Calculate(%s) returned error: %v", mode, err)
		}
		totals = append(totals, result.GrandTotal)
	}
	for i := 1; i < len(totals); i++ {
		if math.Abs(totals[i]-totals[0]) > 1e-9 {
			t.Errorf("GrandTotal differs across modes: %v", totals)
		}
	}
}

func TestCapacityByAircraftType(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	grid := testGrid(t, snapshot)
	calculator := NewCapacityCalculator(&nopLogger{}, snapshot, grid)

	result, err := calculator.Calculate(context.Background(), ModeByAircraftType)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	slot := result.BySlot[0]
	if slot.Counts["A320"] != 3 || slot.Counts["B77W"] != 1 {
		t.Errorf("slot 0 counts = %v; expected A320:3 B77W:1", slot.Counts)
	}
}

func TestCapacityFiltered(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	grid := testGrid(t, snapshot)
	calculator := NewCapacityCalculator(&nopLogger{}, snapshot, grid)

	unavailable := func(standID uint, _ Slot) bool { return standID == 1 }
	result, err := calculator.CalculateFiltered(context.Background(), ModeByTimeSlot, unavailable)
	if err != nil {
		t.Fatalf("CalculateFiltered returned error: %v", err)
	}
	for _, slot := range result.BySlot {
		if slot.Counts["C"] != 2 || slot.Counts["E"] != 1 {
			t.Fatalf("slot %d counts = %v; expected C:2 E:1", slot.SlotIndex, slot.Counts)
		}
	}
	if math.Abs(result.StandHours["C"]-34) > 1e-9 {
		t.Errorf("filtered C stand-hours = %v; expected 34", result.StandHours["C"])
	}
}

func TestCapacityHonoursStandDimensionLimits(t *testing.T) {
	data := testReferenceData()
	// A-03分类上限仍为E, 但翼展限制收紧后唯一的E级机型停不进去
	data.Stands[2].MaxWingspanMeters = 36
	snapshot := testSnapshot(t, data)
	grid := testGrid(t, snapshot)
	calculator := NewCapacityCalculator(&nopLogger{}, snapshot, grid)

	result, err := calculator.Calculate(context.Background(), ModeByTimeSlot)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	for _, slot := range result.BySlot {
		if slot.Counts["C"] != 3 || slot.Counts["E"] != 0 {
			t.Fatalf("slot %d counts = %v; expected C:3 E:0", slot.SlotIndex, slot.Counts)
		}
	}
	if result.StandHours["E"] != 0 {
		t.Errorf("E stand-hours = %v; expected 0", result.StandHours["E"])
	}

	// 分配器与容量报表口径一致: 同一机位对E级机型同样不可用
	allocator := NewStandAllocator(&nopLogger{}, snapshot, grid, AllocatorOptions{})
	flights := []*operation.Flight{arrival(1, "CES", "MU0588", "", "B77W", "10:00", t)}
	allocation, err := allocator.Allocate(context.Background(), flights, nil)
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if len(allocation.Unallocated) != 1 || allocation.Unallocated[0].Reason != ReasonNoEligibleStand {
		t.Errorf("unallocated = %+v; expected no_eligible_stand", allocation.Unallocated)
	}
}

func TestCapacityUnknownMode(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	grid := testGrid(t, snapshot)
	calculator := NewCapacityCalculator(&nopLogger{}, snapshot, grid)
	if _, err := calculator.Calculate(context.Background(), CapacityMode("by_phase_of_moon")); KindOf(err) != ConfigError {
		t.Errorf("expected ConfigError for unknown mode, got %v", err)
	}
}

func TestCapacityCancellation(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	grid := testGrid(t, snapshot)
	calculator := NewCapacityCalculator(&nopLogger{}, snapshot, grid)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := calculator.Calculate(ctx, ModeByTimeSlot); KindOf(err) != Cancelled {
		t.Errorf("expected Cancelled, got %v", err)
	}
}

// Package planner
package planner

import (
	"context"
	"math"
	"testing"

	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

func TestImpactSingleOutage(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	integrator := NewImpactIntegrator(&nopLogger{}, snapshot)

	// A-01停用两小时, 损失2个C级机位时
	requests := []*operation.MaintenanceRequest{
		{ID: 1, StandID: 1, StartTime: at(t, "10:00"), EndTime: at(t, "12:00"), Status: int(operation.MaintenanceApproved)},
	}
	impact, err := integrator.Integrate(context.Background(), testDay, testDay, requests)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}
	if len(impact.PerDay) != 1 {
		t.Fatalf("PerDay = %d entries; expected 1", len(impact.PerDay))
	}
	day := impact.PerDay[0]
	if math.Abs(day.LostHours-2) > 1e-9 {
		t.Errorf("LostHours = %v; expected 2", day.LostHours)
	}
	if math.Abs(day.DeltaHours["C"]+2) > 1e-9 {
		t.Errorf("DeltaHours[C] = %v; expected -2", day.DeltaHours["C"])
	}
	if delta, ok := day.DeltaHours["E"]; ok && delta != 0 {
		t.Errorf("DeltaHours[E] = %v; expected no E loss", delta)
	}
	// 10:00-12:00覆盖槽16..23, 其余槽无变化
	for _, slot := range day.DeltaBySlot {
		expected := 0
		if slot.SlotIndex >= 16 && slot.SlotIndex <= 23 {
			expected = -1
		}
		if slot.Counts["C"] != expected {
			t.Errorf("slot %d delta = %d; expected %d", slot.SlotIndex, slot.Counts["C"], expected)
		}
	}
	if len(impact.AffectedStands) != 1 || impact.AffectedStands[0].StandCode != "A-01" {
		t.Errorf("AffectedStands = %+v; expected single A-01 outage", impact.AffectedStands)
	}
	if math.Abs(impact.TotalLostHours-2) > 1e-9 {
		t.Errorf("TotalLostHours = %v; expected 2", impact.TotalLostHours)
	}
}

func TestImpactEmptySet(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	integrator := NewImpactIntegrator(&nopLogger{}, snapshot)

	impact, err := integrator.Integrate(context.Background(), testDay, testDay, nil)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}
	if impact.TotalLostHours != 0 || len(impact.AffectedStands) != 0 {
		t.Errorf("empty request set must not change capacity, got %+v", impact)
	}
}

func TestImpactInactiveStatusIgnored(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	integrator := NewImpactIntegrator(&nopLogger{}, snapshot)

	requests := []*operation.MaintenanceRequest{
		{ID: 1, StandID: 1, StartTime: at(t, "10:00"), EndTime: at(t, "12:00"), Status: int(operation.MaintenanceRequested)},
		{ID: 2, StandID: 2, StartTime: at(t, "10:00"), EndTime: at(t, "12:00"), Status: int(operation.MaintenanceCompleted)},
	}
	impact, err := integrator.Integrate(context.Background(), testDay, testDay, requests)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}
	if impact.TotalLostHours != 0 {
		t.Errorf("TotalLostHours = %v; only approved and in-progress requests affect capacity", impact.TotalLostHours)
	}
}

func TestImpactMultiDayRange(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	integrator := NewImpactIntegrator(&nopLogger{}, snapshot)

	// 覆盖两天各两小时
	requests := []*operation.MaintenanceRequest{
		{ID: 1, StandID: 1, StartTime: at(t, "10:00"), EndTime: at(t, "12:00"), Status: int(operation.MaintenanceApproved)},
		{ID: 2, StandID: 1, StartTime: at(t, "10:00").AddDate(0, 0, 1), EndTime: at(t, "12:00").AddDate(0, 0, 1),
			Status: int(operation.MaintenanceApproved)},
	}
	impact, err := integrator.Integrate(context.Background(), testDay, testDay.AddDate(0, 0, 1), requests)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}
	if len(impact.PerDay) != 2 {
		t.Fatalf("PerDay = %d entries; expected 2", len(impact.PerDay))
	}
	if math.Abs(impact.TotalLostHours-4) > 1e-9 {
		t.Errorf("TotalLostHours = %v; expected 4", impact.TotalLostHours)
	}
}

func TestImpactValidation(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	integrator := NewImpactIntegrator(&nopLogger{}, snapshot)

	unknown := []*operation.MaintenanceRequest{
		{ID: 1, StandID: 99, StartTime: at(t, "10:00"), EndTime: at(t, "12:00"), Status: int(operation.MaintenanceApproved)},
	}
	if _, err := integrator.Integrate(context.Background(), testDay, testDay, unknown); KindOf(err) != DataError {
		t.Errorf("unknown stand: expected DataError, got %v", err)
	}

	if _, err := integrator.Integrate(context.Background(), testDay.AddDate(0, 0, 1), testDay, nil); KindOf(err) != ConfigError {
		t.Errorf("inverted range: expected ConfigError, got %v", err)
	}
}

func TestImpactCancellation(t *testing.T) {
	snapshot := testSnapshot(t, testReferenceData())
	integrator := NewImpactIntegrator(&nopLogger{}, snapshot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := integrator.Integrate(ctx, testDay, testDay, nil); KindOf(err) != Cancelled {
		t.Errorf("expected Cancelled, got %v", err)
	}
}

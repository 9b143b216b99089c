// Package planner
package planner

import (
	"context"
	"testing"
	"time"

	"github.com/half-nothing/stand-planner/internal/interfaces/global"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

type nopLogger struct{}

func (logger *nopLogger) Init(_ bool)                       {}
func (logger *nopLogger) ShutdownCallback() global.Callable { return nopCallable{} }
func (logger *nopLogger) Debug(_ string, _ ...interface{})  {}
func (logger *nopLogger) DebugF(_ string, _ ...interface{}) {}
func (logger *nopLogger) Info(_ string, _ ...interface{})   {}
func (logger *nopLogger) InfoF(_ string, _ ...interface{})  {}
func (logger *nopLogger) Warn(_ string, _ ...interface{})   {}
func (logger *nopLogger) WarnF(_ string, _ ...interface{})  {}
func (logger *nopLogger) Error(_ string, _ ...interface{})  {}
func (logger *nopLogger) ErrorF(_ string, _ ...interface{}) {}
func (logger *nopLogger) Fatal(_ string, _ ...interface{})  {}
func (logger *nopLogger) FatalF(_ string, _ ...interface{}) {}

type nopCallable struct{}

func (nopCallable) Invoke(_ context.Context) error { return nil }

var testDay = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func testSettings() *operation.OperationalSettings {
	return &operation.OperationalSettings{
		SlotDurationMinutes: 15,
		BlockSizeSlots:      4,
		DayStart:            "06:00",
		DayEnd:              "23:00",
		DefaultGapMinutes:   15,
	}
}

// testReferenceData 标准测试基础数据
// 分类: C(rank 3), E(rank 5)
// 机位: A-01, A-02为C级, A-03为唯一E级
// 邻接: A-03被E级占用时A-02关闭
// 机型: A320(C, 过站45min), B77W(E, 过站90min)
func testReferenceData() *operation.ReferenceData {
	return &operation.ReferenceData{
		Settings: testSettings(),
		SizeCategories: []*operation.SizeCategory{
			{ID: 1, Code: "C", Rank: 3, MinWingspan: 24, MaxWingspan: 36, MinLength: 24, MaxLength: 45},
			{ID: 2, Code: "E", Rank: 5, MinWingspan: 52, MaxWingspan: 65, MinLength: 52, MaxLength: 80},
		},
		Terminals: []*operation.Terminal{
			{ID: 1, Code: "T1", Name: "Terminal 1"},
		},
		Piers: []*operation.Pier{
			{ID: 1, TerminalID: 1, Code: "A", Name: "Pier A"},
		},
		Stands: []*operation.Stand{
			{ID: 1, PierID: 1, Code: "01", MaxWingspanMeters: 36, MaxLengthMeters: 45, MaxSizeCategoryID: 1, Active: true},
			{ID: 2, PierID: 1, Code: "02", MaxWingspanMeters: 36, MaxLengthMeters: 45, MaxSizeCategoryID: 1, Active: true},
			{ID: 3, PierID: 1, Code: "03", MaxWingspanMeters: 65, MaxLengthMeters: 80, MaxSizeCategoryID: 2, Active: true},
		},
		AircraftTypes: []*operation.AircraftType{
			{ID: 1, IcaoCode: "A320", IataCode: "320", WingspanMeters: 35.8, LengthMeters: 37.6, SizeCategoryID: 1},
			{ID: 2, IcaoCode: "B77W", IataCode: "77W", WingspanMeters: 64.8, LengthMeters: 73.9, SizeCategoryID: 2},
		},
		TurnaroundRules: []*operation.TurnaroundRule{
			{ID: 1, AircraftTypeID: 1, MinimumMinutes: 45},
			{ID: 2, AircraftTypeID: 2, MinimumMinutes: 90},
		},
		Adjacencies: []*operation.StandAdjacency{
			{ID: 1, StandID: 3, AdjacentStandID: 2, RestrictionKind: operation.RestrictionClosed, TriggerSizeCode: "E"},
		},
	}
}

func testSnapshot(t *testing.T, data *operation.ReferenceData) *Snapshot {
	t.Helper()
	snapshot, planError := NewSnapshot(data)
	if planError != nil {
		t.Fatalf("NewSnapshot returned error: %v", planError)
	}
	return snapshot
}

func testGrid(t *testing.T, snapshot *Snapshot) *SlotGrid {
	t.Helper()
	grid, planError := NewSlotGrid(testDay, snapshot.Settings())
	if planError != nil {
		t.Fatalf("NewSlotGrid returned error: %v", planError)
	}
	return grid
}

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		t.Fatalf("invalid clock %q: %v", clock, err)
	}
	return time.Date(testDay.Year(), testDay.Month(), testDay.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

func arrival(id uint, airline, number, registration, typeCode, clock string, t *testing.T) *operation.Flight {
	return &operation.Flight{
		ID: id, ScenarioID: 1, Airline: airline, Number: number, Registration: registration,
		ScheduledTime: at(t, clock), Nature: int(operation.NatureArrival), AircraftTypeCode: typeCode,
	}
}

func departure(id uint, airline, number, registration, typeCode, clock string, t *testing.T) *operation.Flight {
	return &operation.Flight{
		ID: id, ScenarioID: 1, Airline: airline, Number: number, Registration: registration,
		ScheduledTime: at(t, clock), Nature: int(operation.NatureDeparture), AircraftTypeCode: typeCode,
	}
}

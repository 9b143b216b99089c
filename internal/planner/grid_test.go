// Package planner
package planner

import (
	"testing"

	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

func TestNewSlotGridValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(settings *operation.OperationalSettings)
	}{
		{"nil settings", nil},
		{"zero slot duration", func(s *operation.OperationalSettings) { s.SlotDurationMinutes = 0 }},
		{"negative slot duration", func(s *operation.OperationalSettings) { s.SlotDurationMinutes = -15 }},
		{"zero block size", func(s *operation.OperationalSettings) { s.BlockSizeSlots = 0 }},
		{"bad day start", func(s *operation.OperationalSettings) { s.DayStart = "6am" }},
		{"bad day end", func(s *operation.OperationalSettings) { s.DayEnd = "25:00" }},
		{"end before start", func(s *operation.OperationalSettings) { s.DayStart = "23:00"; s.DayEnd = "06:00" }},
		{"negative gap", func(s *operation.OperationalSettings) { s.DefaultGapMinutes = -1 }},
		{"window not divisible by slot", func(s *operation.OperationalSettings) { s.SlotDurationMinutes = 50 }},
		{"slots not divisible by block", func(s *operation.OperationalSettings) { s.BlockSizeSlots = 7 }},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		var settings *operation.OperationalSettings
		if test.mutate != nil {
			settings = testSettings()
			test.mutate(settings)
		}
		if _, planError := NewSlotGrid(testDay, settings); planError == nil {
			fail++
			t.Errorf("%s: expected ConfigError, got nil", test.name)
		} else if planError.Kind != ConfigError {
			fail++
			t.Errorf("%s: expected ConfigError, got %v", test.name, planError.Kind)
		} else {
			pass++
		}
	}
	t.Logf("TestNewSlotGridValidation: %d pass, %d fail", pass, fail)
}

func TestSlotGridLayout(t *testing.T) {
	grid, planError := NewSlotGrid(testDay, testSettings())
	if planError != nil {
		t.Fatalf("NewSlotGrid returned error: %v", planError)
	}
	if grid.SlotCount() != 68 {
		t.Errorf("SlotCount = %d; expected 68", grid.SlotCount())
	}
	if grid.BlockCount() != 17 {
		t.Errorf("BlockCount = %d; expected 17", grid.BlockCount())
	}
	if !grid.Start().Equal(at(t, "06:00")) || !grid.End().Equal(at(t, "23:00")) {
		t.Errorf("window = [%v, %v); expected [06:00, 23:00)", grid.Start(), grid.End())
	}
	first := grid.Slot(0)
	if !first.Start.Equal(at(t, "06:00")) || !first.End.Equal(at(t, "06:15")) {
		t.Errorf("slot 0 = [%v, %v); expected [06:00, 06:15)", first.Start, first.End)
	}
	last := grid.Slot(67)
	if !last.Start.Equal(at(t, "22:45")) || !last.End.Equal(at(t, "23:00")) {
		t.Errorf("slot 67 = [%v, %v); expected [22:45, 23:00)", last.Start, last.End)
	}
	if grid.BlockOfSlot(3) != 0 || grid.BlockOfSlot(4) != 1 {
		t.Errorf("BlockOfSlot boundary mismatch: slot 3 -> %d, slot 4 -> %d", grid.BlockOfSlot(3), grid.BlockOfSlot(4))
	}
}

func TestSlotIndexAt(t *testing.T) {
	grid, _ := NewSlotGrid(testDay, testSettings())
	tests := []struct {
		clock    string
		expected int
		ok       bool
	}{
		{"06:00", 0, true},
		{"06:14", 0, true},
		{"06:15", 1, true},
		{"09:45", 15, true},
		{"22:59", 67, true},
		{"23:00", 0, false},
		{"05:59", 0, false},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		index, ok := grid.SlotIndexAt(at(t, test.clock))
		if ok != test.ok || (ok && index != test.expected) {
			fail++
			t.Errorf("SlotIndexAt(%s) = (%d, %v); expected (%d, %v)", test.clock, index, ok, test.expected, test.ok)
			continue
		}
		pass++
	}
	t.Logf("TestSlotIndexAt: %d pass, %d fail", pass, fail)
}

func TestCoveringRange(t *testing.T) {
	grid, _ := NewSlotGrid(testDay, testSettings())
	tests := []struct {
		name        string
		start, end  string
		first, last int
		ok          bool
	}{
		{"aligned single slot", "06:00", "06:15", 0, 0, true},
		{"inside single slot", "06:05", "06:10", 0, 0, true},
		{"outward rounding", "09:50", "10:40", 15, 18, true},
		{"aligned window", "09:45", "10:45", 15, 18, true},
		{"full day", "06:00", "23:00", 0, 67, true},
		{"starts before window", "05:45", "06:30", 0, 0, false},
		{"ends after window", "22:30", "23:15", 0, 0, false},
		{"empty window", "10:00", "10:00", 0, 0, false},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		first, last, ok := grid.CoveringRange(at(t, test.start), at(t, test.end))
		if ok != test.ok || (ok && (first != test.first || last != test.last)) {
			fail++
			t.Errorf("%s: CoveringRange = (%d, %d, %v); expected (%d, %d, %v)",
				test.name, first, last, ok, test.first, test.last, test.ok)
			continue
		}
		pass++
	}
	t.Logf("TestCoveringRange: %d pass, %d fail", pass, fail)
}

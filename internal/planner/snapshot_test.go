// Package planner
package planner

import (
	"testing"

	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

func TestSnapshotDanglingReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(data *operation.ReferenceData)
	}{
		{"stand with unknown pier", func(d *operation.ReferenceData) { d.Stands[0].PierID = 99 }},
		{"stand with unknown category", func(d *operation.ReferenceData) { d.Stands[0].MaxSizeCategoryID = 99 }},
		{"pier with unknown terminal", func(d *operation.ReferenceData) { d.Piers[0].TerminalID = 99 }},
		{"type with unknown category", func(d *operation.ReferenceData) { d.AircraftTypes[0].SizeCategoryID = 99 }},
		{"turnaround for unknown type", func(d *operation.ReferenceData) { d.TurnaroundRules[0].AircraftTypeID = 99 }},
		{"adjacency to unknown stand", func(d *operation.ReferenceData) { d.Adjacencies[0].AdjacentStandID = 99 }},
		{"self adjacency", func(d *operation.ReferenceData) { d.Adjacencies[0].AdjacentStandID = d.Adjacencies[0].StandID }},
		{"adjacency with unknown size code", func(d *operation.ReferenceData) { d.Adjacencies[0].TriggerSizeCode = "Z" }},
		{"constraint on unknown stand", func(d *operation.ReferenceData) {
			d.Constraints = []*operation.StandAircraftConstraint{{ID: 1, StandID: 99, AircraftTypeID: 1, Allowed: true}}
		}},
		{"airline bound to unknown terminal", func(d *operation.ReferenceData) {
			d.AirlineAllocations = []*operation.AirlineTerminalAllocation{{ID: 1, AirlineCode: "CES", TerminalID: 99}}
		}},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		data := testReferenceData()
		test.mutate(data)
		if _, planError := NewSnapshot(data); planError == nil {
			fail++
			t.Errorf("%s: expected DataError, got nil", test.name)
		} else if planError.Kind != DataError {
			fail++
			t.Errorf("%s: expected DataError, got %v", test.name, planError.Kind)
		} else {
			pass++
		}
	}
	t.Logf("TestSnapshotDanglingReferences: %d pass, %d fail", pass, fail)
}

func TestSnapshotMissingSettings(t *testing.T) {
	data := testReferenceData()
	data.Settings = nil
	if _, planError := NewSnapshot(data); planError == nil || planError.Kind != ConfigError {
		t.Errorf("expected ConfigError for missing settings, got %v", planError)
	}
}

func TestCanHost(t *testing.T) {
	data := testReferenceData()
	// 白名单放行超限机型, 黑名单拒绝本可停放的机型
	data.Constraints = []*operation.StandAircraftConstraint{
		{ID: 1, StandID: 1, AircraftTypeID: 2, Allowed: true, Reason: "trial operation"},
		{ID: 2, StandID: 2, AircraftTypeID: 1, Allowed: false, Reason: "pavement damage"},
	}
	snapshot := testSnapshot(t, data)
	a320, _ := snapshot.AircraftTypeByCode("A320")
	b77w, _ := snapshot.AircraftTypeByCode("B77W")
	stand1, _ := snapshot.StandByID(1)
	stand2, _ := snapshot.StandByID(2)
	stand3, _ := snapshot.StandByID(3)

	tests := []struct {
		name     string
		stand    *operation.Stand
		typ      *operation.AircraftType
		expected bool
	}{
		{"C type on C stand", stand3, a320, true},
		{"E type on E stand", stand3, b77w, true},
		{"whitelist overrides size limits", stand1, b77w, true},
		{"blacklist overrides size fit", stand2, a320, false},
		{"E type rejected by C stand", stand2, b77w, false},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		if result := snapshot.CanHost(test.stand, test.typ); result != test.expected {
			fail++
			t.Errorf("%s: CanHost = %v; expected %v", test.name, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestCanHost: %d pass, %d fail", pass, fail)
}

func TestCanHostCategoryPerTypeDerivation(t *testing.T) {
	data := testReferenceData()
	// A-03分类上限仍为E, 但翼展限制收紧到36米, E级无机型可停;
	// A-01经白名单放行B77W获得E级能力, A-02被黑名单移除唯一的C级机型
	data.Stands[2].MaxWingspanMeters = 36
	data.Constraints = []*operation.StandAircraftConstraint{
		{ID: 1, StandID: 1, AircraftTypeID: 2, Allowed: true, Reason: "trial operation"},
		{ID: 2, StandID: 2, AircraftTypeID: 1, Allowed: false, Reason: "pavement damage"},
	}
	snapshot := testSnapshot(t, data)
	categoryC := snapshot.Categories()[0]
	categoryE := snapshot.Categories()[1]
	stand1, _ := snapshot.StandByID(1)
	stand2, _ := snapshot.StandByID(2)
	stand3, _ := snapshot.StandByID(3)

	tests := []struct {
		name     string
		stand    *operation.Stand
		category *operation.SizeCategory
		expected bool
	}{
		{"category C within tightened limits", stand3, categoryC, true},
		{"category E blocked by wingspan limit", stand3, categoryE, false},
		{"whitelisted type adds category", stand1, categoryE, true},
		{"blacklist removes only type of category", stand2, categoryC, false},
		{"category E beyond C stand", stand2, categoryE, false},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		if result := snapshot.CanHostCategory(test.stand, test.category); result != test.expected {
			fail++
			t.Errorf("%s: CanHostCategory = %v; expected %v", test.name, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestCanHostCategoryPerTypeDerivation: %d pass, %d fail", pass, fail)
}

func TestCanHostDimensionLimits(t *testing.T) {
	data := testReferenceData()
	// 翼展超限但分类相同
	data.Stands[0].MaxWingspanMeters = 30
	snapshot := testSnapshot(t, data)
	a320, _ := snapshot.AircraftTypeByCode("A320")
	stand1, _ := snapshot.StandByID(1)
	if snapshot.CanHost(stand1, a320) {
		t.Error("expected wingspan limit to reject A320")
	}
}

func TestActiveStandOrdering(t *testing.T) {
	data := testReferenceData()
	data.Stands[2].Active = false
	snapshot := testSnapshot(t, data)
	stands := snapshot.ActiveStands()
	if len(stands) != 2 {
		t.Fatalf("ActiveStands = %d stands; expected 2", len(stands))
	}
	if snapshot.StandFullCode(stands[0]) != "A-01" || snapshot.StandFullCode(stands[1]) != "A-02" {
		t.Errorf("stand order = [%s, %s]; expected [A-01, A-02]",
			snapshot.StandFullCode(stands[0]), snapshot.StandFullCode(stands[1]))
	}
	inactive, _ := snapshot.StandByID(3)
	b77w, _ := snapshot.AircraftTypeByCode("B77W")
	if snapshot.CanHost(inactive, b77w) {
		t.Error("inactive stand must not host any aircraft")
	}
}

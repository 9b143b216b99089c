// Package service
package service

import (
	"testing"
	"time"

	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

func TestParseScheduleRow(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	scenario := &operation.ScheduleScenario{ID: 7}

	tests := []struct {
		name   string
		record []string
		want   *operation.Flight
	}{
		{
			"arrival with seats",
			[]string{"ca", "1831", "b-2021", "08:15", "arrival", "a320", "t1", "168"},
			&operation.Flight{
				ScenarioID:       7,
				Airline:          "CA",
				Number:           "1831",
				Registration:     "B-2021",
				ScheduledTime:    time.Date(2026, 3, 14, 8, 15, 0, 0, time.UTC),
				Nature:           int(operation.NatureArrival),
				AircraftTypeCode: "A320",
				CounterpartCode:  "T1",
				SeatCapacity:     168,
			},
		},
		{
			"departure short nature, no seats column",
			[]string{"MU", "583", "", "22:40", "d", "B77W", ""},
			&operation.Flight{
				ScenarioID:       7,
				Airline:          "MU",
				Number:           "583",
				ScheduledTime:    time.Date(2026, 3, 14, 22, 40, 0, 0, time.UTC),
				Nature:           int(operation.NatureDeparture),
				AircraftTypeCode: "B77W",
			},
		},
		{"too few fields", []string{"CA", "1831", "", "08:15", "arrival", "A320"}, nil},
		{"missing airline", []string{"", "1831", "", "08:15", "arrival", "A320", "T1"}, nil},
		{"missing number", []string{"CA", "", "", "08:15", "arrival", "A320", "T1"}, nil},
		{"bad clock", []string{"CA", "1831", "", "25:15", "arrival", "A320", "T1"}, nil},
		{"bad nature", []string{"CA", "1831", "", "08:15", "diverted", "A320", "T1"}, nil},
		{"missing type", []string{"CA", "1831", "", "08:15", "arrival", "", "T1"}, nil},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		flight := parseScheduleRow(test.record, scenario, day)
		if (flight == nil) != (test.want == nil) {
			fail++
			t.Errorf("%s: parseScheduleRow = %v; want %v", test.name, flight, test.want)
			continue
		}
		if flight != nil && *flight != *test.want {
			fail++
			t.Errorf("%s: parseScheduleRow = %+v; want %+v", test.name, flight, test.want)
			continue
		}
		pass++
	}
	t.Logf("TestParseScheduleRow: %d pass, %d fail", pass, fail)
}

// Package utils
package utils

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"06:00", 6 * time.Hour, false},
		{"23:45", 23*time.Hour + 45*time.Minute, false},
		{"00:00", 0, false},
		{"24:00", 0, true},
		{"6am", 0, true},
		{"", 0, true},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		result, err := ParseClock(test.input)
		if (err != nil) != test.wantErr {
			fail++
			t.Errorf("ParseClock(%q) error = %v; wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if err == nil && result != test.expected {
			fail++
			t.Errorf("ParseClock(%q) = %v; expected %v", test.input, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestParseClock: %d pass, %d fail", pass, fail)
}

func TestCombineDayClock(t *testing.T) {
	day := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	result, err := CombineDayClock(day, "06:15")
	if err != nil {
		t.Fatalf("CombineDayClock returned error: %v", err)
	}
	expected := time.Date(2025, 3, 14, 6, 15, 0, 0, time.UTC)
	if !result.Equal(expected) {
		t.Errorf("CombineDayClock = %v; expected %v", result, expected)
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		expected                   bool
	}{
		{"disjoint", at(1), at(2), at(3), at(4), false},
		{"touching endpoints", at(1), at(2), at(2), at(3), false},
		{"contained", at(1), at(4), at(2), at(3), true},
		{"partial", at(1), at(3), at(2), at(4), true},
		{"identical", at(1), at(2), at(1), at(2), true},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		if result := Overlaps(test.aStart, test.aEnd, test.bStart, test.bEnd); result != test.expected {
			fail++
			t.Errorf("%s: Overlaps = %v; expected %v", test.name, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestOverlaps: %d pass, %d fail", pass, fail)
}

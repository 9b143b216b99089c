// Package service
package service

import (
	"testing"

	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
)

func TestFieldValidatorCheckString(t *testing.T) {
	errShort := &ApiStatus{StatusName: "TOO_SHORT", Description: "过短", HttpCode: BadRequest}
	errLong := &ApiStatus{StatusName: "TOO_LONG", Description: "过长", HttpCode: BadRequest}
	validator := &FieldValidator{Min: 4, Max: 8, ErrShort: errShort, ErrLong: errLong}

	tests := []struct {
		input    string
		expected *ApiStatus
	}{
		{"abcd", nil},
		{"abcdefgh", nil},
		{"abc", errShort},
		{"", errShort},
		{"abcdefghi", errLong},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		if result := validator.CheckString(test.input); result != test.expected {
			fail++
			t.Errorf("CheckString(%q) = %v; expected %v", test.input, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestFieldValidatorCheckString: %d pass, %d fail", pass, fail)
}

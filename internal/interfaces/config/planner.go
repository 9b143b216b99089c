// Package config
package config

import (
	"fmt"
	"time"

	"github.com/half-nothing/stand-planner/internal/interfaces/global"
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
)

// PlannerConfig carries the fallback operational settings used when the
// database holds no OperationalSettings row. The planning engine validates the
// effective settings again at run start.
type PlannerConfig struct {
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
	BlockSizeSlots      int    `json:"block_size_slots"`
	DayStart            string `json:"day_start"`
	DayEnd              string `json:"day_end"`
	DefaultGapMinutes   int    `json:"default_gap_minutes"`
	EnableDisplacement  bool   `json:"enable_displacement"`
}

func defaultPlannerConfig() *PlannerConfig {
	return &PlannerConfig{
		SlotDurationMinutes: 15,
		BlockSizeSlots:      4,
		DayStart:            "06:00",
		DayEnd:              "23:00",
		DefaultGapMinutes:   15,
		EnableDisplacement:  false,
	}
}

func (config *PlannerConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if config.SlotDurationMinutes <= 0 {
		return ValidFail(fmt.Errorf("invalid json field server.planner.slot_duration_minutes %d, must be positive", config.SlotDurationMinutes))
	}
	if config.BlockSizeSlots <= 0 {
		return ValidFail(fmt.Errorf("invalid json field server.planner.block_size_slots %d, must be positive", config.BlockSizeSlots))
	}
	if config.DefaultGapMinutes < 0 {
		return ValidFail(fmt.Errorf("invalid json field server.planner.default_gap_minutes %d, cannot be negative", config.DefaultGapMinutes))
	}
	start, err := time.Parse(global.ClockLayout, config.DayStart)
	if err != nil {
		return ValidFailWith(fmt.Errorf("invalid json field server.planner.day_start %q", config.DayStart), err)
	}
	end, err := time.Parse(global.ClockLayout, config.DayEnd)
	if err != nil {
		return ValidFailWith(fmt.Errorf("invalid json field server.planner.day_end %q", config.DayEnd), err)
	}
	window := end.Sub(start)
	if window <= 0 {
		return ValidFail(fmt.Errorf("invalid planner day window, day_end %s must be after day_start %s", config.DayEnd, config.DayStart))
	}
	if window%(time.Duration(config.SlotDurationMinutes)*time.Minute) != 0 {
		return ValidFail(fmt.Errorf("slot duration %dm does not evenly divide the day window %s", config.SlotDurationMinutes, window))
	}
	return ValidPass()
}

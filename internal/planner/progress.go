// Package planner
package planner

import "sync/atomic"

// Progress 运行进度计数器, 供调用方在运行期间轮询
type Progress struct {
	flightsProcessed atomic.Int64
	slotsProcessed   atomic.Int64
}

func NewProgress() *Progress {
	return &Progress{}
}

func (progress *Progress) FlightsProcessed() int64 {
	return progress.flightsProcessed.Load()
}

func (progress *Progress) SlotsProcessed() int64 {
	return progress.slotsProcessed.Load()
}

func (progress *Progress) addFlight() {
	progress.flightsProcessed.Add(1)
}

func (progress *Progress) addSlot() {
	progress.slotsProcessed.Add(1)
}

func (progress *Progress) reset() {
	progress.flightsProcessed.Store(0)
	progress.slotsProcessed.Store(0)
}

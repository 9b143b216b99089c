// Package planner
package planner

import (
	"context"
	"sort"
	"time"

	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

// StandOutage 单个机位的一段维护停用
type StandOutage struct {
	RequestID uint      `json:"request_id"`
	StandID   uint      `json:"stand_id"`
	StandCode string    `json:"stand_code"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// DayImpact 单日容量损失, Delta值非正
type DayImpact struct {
	Day         string             `json:"day"`
	DeltaBySlot []*SlotCapacity    `json:"delta_by_slot"`
	DeltaHours  map[string]float64 `json:"delta_hours"`
	LostHours   float64            `json:"lost_hours"`
}

// MaintenanceImpact 一段日期范围内维护对容量的影响
type MaintenanceImpact struct {
	RangeStart     string             `json:"range_start"`
	RangeEnd       string             `json:"range_end"`
	PerDay         []*DayImpact       `json:"per_day"`
	TotalDelta     map[string]float64 `json:"total_delta"`
	TotalLostHours float64            `json:"total_lost_hours"`
	AffectedStands []*StandOutage     `json:"affected_stands"`
}

// ImpactIntegrator 把维护窗口叠加到容量基线上, 逐日计算损失
type ImpactIntegrator struct {
	logger   log.LoggerInterface
	snapshot *Snapshot
}

func NewImpactIntegrator(logger log.LoggerInterface, snapshot *Snapshot) *ImpactIntegrator {
	return &ImpactIntegrator{logger: logger, snapshot: snapshot}
}

// Integrate 计算[from, to]闭区间内每一天的容量损失
// 只有影响容量的维护状态参与叠加, 空集时每日损失为零
func (integrator *ImpactIntegrator) Integrate(ctx context.Context, from, to time.Time,
	requests []*operation.MaintenanceRequest) (*MaintenanceImpact, error) {
	if to.Before(from) {
		return nil, NewConfigError("impact range end %s is before start %s",
			to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	active := make([]*operation.MaintenanceRequest, 0, len(requests))
	outages := make([]*StandOutage, 0)
	for _, request := range requests {
		stand, ok := integrator.snapshot.StandByID(request.StandID)
		if !ok {
			return nil, NewDataError("maintenance request %d references unknown stand %d", request.ID, request.StandID)
		}
		if !operation.MaintenanceStatus(request.Status).AffectsCapacity() {
			continue
		}
		active = append(active, request)
		outages = append(outages, &StandOutage{
			RequestID: request.ID,
			StandID:   request.StandID,
			StandCode: integrator.snapshot.StandFullCode(stand),
			Start:     request.StartTime,
			End:       request.EndTime,
		})
	}
	sort.Slice(outages, func(i, j int) bool {
		if outages[i].StandCode != outages[j].StandCode {
			return outages[i].StandCode < outages[j].StandCode
		}
		return outages[i].Start.Before(outages[j].Start)
	})

	impact := &MaintenanceImpact{
		RangeStart:     from.Format("2006-01-02"),
		RangeEnd:       to.Format("2006-01-02"),
		PerDay:         make([]*DayImpact, 0),
		TotalDelta:     make(map[string]float64),
		AffectedStands: outages,
	}

	unavailable := func(standID uint, slot Slot) bool {
		for _, request := range active {
			if request.StandID == standID && slot.Start.Before(request.EndTime) && request.StartTime.Before(slot.End) {
				return true
			}
		}
		return false
	}

	for day := startOfDay(from); !day.After(to); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, NewCancelled(err)
		}
		grid, planError := NewSlotGrid(day, integrator.snapshot.Settings())
		if planError != nil {
			return nil, planError
		}
		calculator := NewCapacityCalculator(integrator.logger, integrator.snapshot, grid)
		baseline, err := calculator.Calculate(ctx, ModeByTimeSlot)
		if err != nil {
			return nil, err
		}
		impacted, err := calculator.CalculateFiltered(ctx, ModeByTimeSlot, unavailable)
		if err != nil {
			return nil, err
		}
		impact.PerDay = append(impact.PerDay, integrator.dayDelta(baseline, impacted))
	}

	for _, dayImpact := range impact.PerDay {
		for code, delta := range dayImpact.DeltaHours {
			impact.TotalDelta[code] += delta
		}
		impact.TotalLostHours += dayImpact.LostHours
	}
	integrator.logger.InfoF("Maintenance impact %s..%s: %.2f stand-hours lost over %d days",
		impact.RangeStart, impact.RangeEnd, impact.TotalLostHours, len(impact.PerDay))
	return impact, nil
}

// dayDelta 逐槽逐分类求受影响容量与基线之差
func (integrator *ImpactIntegrator) dayDelta(baseline, impacted *CapacityResult) *DayImpact {
	dayImpact := &DayImpact{
		Day:         baseline.Day,
		DeltaBySlot: make([]*SlotCapacity, 0, len(baseline.BySlot)),
		DeltaHours:  make(map[string]float64),
	}
	for i, baselineSlot := range baseline.BySlot {
		impactedSlot := impacted.BySlot[i]
		delta := &SlotCapacity{
			SlotIndex: baselineSlot.SlotIndex,
			Start:     baselineSlot.Start,
			End:       baselineSlot.End,
			Counts:    make(map[string]int),
		}
		for code, count := range baselineSlot.Counts {
			if diff := impactedSlot.Counts[code] - count; diff != 0 {
				delta.Counts[code] = diff
			}
		}
		dayImpact.DeltaBySlot = append(dayImpact.DeltaBySlot, delta)
	}
	for code, hours := range baseline.StandHours {
		if diff := impacted.StandHours[code] - hours; diff != 0 {
			dayImpact.DeltaHours[code] = diff
		}
	}
	dayImpact.LostHours = baseline.GrandTotal - impacted.GrandTotal
	return dayImpact
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

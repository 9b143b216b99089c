// Package planner
package planner

import (
	"context"

	"github.com/half-nothing/stand-planner/internal/interfaces/log"
)

// CapacityMode 容量报表的透视维度
type CapacityMode string

const (
	ModeByTimeSlot     CapacityMode = "by_time_slot"
	ModeByAircraftType CapacityMode = "by_aircraft_type"
	ModeBySizeCategory CapacityMode = "by_size_category"
)

func (mode CapacityMode) IsValid() bool {
	return mode == ModeByTimeSlot || mode == ModeByAircraftType || mode == ModeBySizeCategory
}

// SlotCapacity 单个时间槽的容量, Counts的键由透视维度决定
type SlotCapacity struct {
	SlotIndex int            `json:"slot_index"`
	Start     string         `json:"start"`
	End       string         `json:"end"`
	Counts    map[string]int `json:"counts"`
}

type BlockCapacity struct {
	BlockIndex int            `json:"block_index"`
	Start      string         `json:"start"`
	End        string         `json:"end"`
	Counts     map[string]int `json:"counts"`
}

type HourCapacity struct {
	Hour   int            `json:"hour"`
	Counts map[string]int `json:"counts"`
}

// CapacityResult 单日容量报表
// BySlot/ByBlock/ByHour随Mode透视, StandHours与GrandTotal始终按尺寸分类汇总,
// 与透视维度无关
type CapacityResult struct {
	Day        string             `json:"day"`
	Mode       CapacityMode       `json:"mode"`
	BySlot     []*SlotCapacity    `json:"by_slot"`
	ByBlock    []*BlockCapacity   `json:"by_block"`
	ByHour     []*HourCapacity    `json:"by_hour"`
	StandHours map[string]float64 `json:"stand_hours"`
	GrandTotal float64            `json:"grand_total"`
}

// StandFilter 返回true表示机位在该槽不可用
type StandFilter func(standID uint, slot Slot) bool

// CapacityCalculator 把机位能力矩阵投影到时间槽网格上
type CapacityCalculator struct {
	logger   log.LoggerInterface
	snapshot *Snapshot
	grid     *SlotGrid
	progress *Progress
}

func NewCapacityCalculator(logger log.LoggerInterface, snapshot *Snapshot, grid *SlotGrid) *CapacityCalculator {
	return &CapacityCalculator{
		logger:   logger,
		snapshot: snapshot,
		grid:     grid,
		progress: NewProgress(),
	}
}

func (calculator *CapacityCalculator) Progress() *Progress {
	return calculator.progress
}

// Calculate 计算无维护遮罩的基线容量
func (calculator *CapacityCalculator) Calculate(ctx context.Context, mode CapacityMode) (*CapacityResult, error) {
	return calculator.CalculateFiltered(ctx, mode, nil)
}

// CalculateFiltered 计算容量, unavailable标记的机位槽从供给中剔除
// 同一机位同一槽只计入一次, 对所有支持的维度各计一次
func (calculator *CapacityCalculator) CalculateFiltered(ctx context.Context, mode CapacityMode, unavailable StandFilter) (*CapacityResult, error) {
	if !mode.IsValid() {
		return nil, NewConfigError("unknown capacity mode %q", mode)
	}
	calculator.progress.reset()

	result := &CapacityResult{
		Day:        calculator.grid.Day().Format("2006-01-02"),
		Mode:       mode,
		BySlot:     make([]*SlotCapacity, 0, calculator.grid.SlotCount()),
		ByBlock:    make([]*BlockCapacity, 0, calculator.grid.BlockCount()),
		ByHour:     make([]*HourCapacity, 0),
		StandHours: make(map[string]float64),
	}
	for _, category := range calculator.snapshot.Categories() {
		result.StandHours[category.Code] = 0
	}

	blockCounts := make(map[int]map[string]int)
	hourCounts := make(map[int]map[string]int)
	hourOrder := make([]int, 0)
	slotHours := calculator.grid.SlotDuration().Hours()

	for _, slot := range calculator.grid.Slots() {
		if err := ctx.Err(); err != nil {
			return nil, NewCancelled(err)
		}
		counts := calculator.countSlot(mode, slot, unavailable)

		result.BySlot = append(result.BySlot, &SlotCapacity{
			SlotIndex: slot.Index,
			Start:     slot.Start.Format("15:04"),
			End:       slot.End.Format("15:04"),
			Counts:    counts,
		})

		blockIndex := calculator.grid.BlockOfSlot(slot.Index)
		mergeCounts(blockCounts, blockIndex, counts)
		hour := calculator.grid.HourOfSlot(slot.Index)
		if _, ok := hourCounts[hour]; !ok {
			hourOrder = append(hourOrder, hour)
		}
		mergeCounts(hourCounts, hour, counts)

		// 总量始终按尺寸分类推进, 保证换维度透视时总量不变
		for _, category := range calculator.snapshot.Categories() {
			for _, stand := range calculator.snapshot.ActiveStands() {
				if unavailable != nil && unavailable(stand.ID, slot) {
					continue
				}
				if calculator.snapshot.CanHostCategory(stand, category) {
					result.StandHours[category.Code] += slotHours
					result.GrandTotal += slotHours
				}
			}
		}
		calculator.progress.addSlot()
	}

	for blockIndex := 0; blockIndex < calculator.grid.BlockCount(); blockIndex++ {
		firstSlot := calculator.grid.Slot(blockIndex * calculator.grid.BlockSize())
		lastSlot := calculator.grid.Slot((blockIndex+1)*calculator.grid.BlockSize() - 1)
		result.ByBlock = append(result.ByBlock, &BlockCapacity{
			BlockIndex: blockIndex,
			Start:      firstSlot.Start.Format("15:04"),
			End:        lastSlot.End.Format("15:04"),
			Counts:     blockCounts[blockIndex],
		})
	}
	for _, hour := range hourOrder {
		result.ByHour = append(result.ByHour, &HourCapacity{Hour: hour, Counts: hourCounts[hour]})
	}
	return result, nil
}

// countSlot 统计单个槽内每个维度键可用的机位数
func (calculator *CapacityCalculator) countSlot(mode CapacityMode, slot Slot, unavailable StandFilter) map[string]int {
	counts := make(map[string]int)
	for _, stand := range calculator.snapshot.ActiveStands() {
		if unavailable != nil && unavailable(stand.ID, slot) {
			continue
		}
		switch mode {
		case ModeByAircraftType:
			for code, aircraftType := range calculator.snapshot.typeByCode {
				if calculator.snapshot.CanHost(stand, aircraftType) {
					counts[code]++
				}
			}
		default:
			for _, category := range calculator.snapshot.Categories() {
				if calculator.snapshot.CanHostCategory(stand, category) {
					counts[category.Code]++
				}
			}
		}
	}
	return counts
}

func mergeCounts(into map[int]map[string]int, key int, counts map[string]int) {
	bucket, ok := into[key]
	if !ok {
		bucket = make(map[string]int)
		into[key] = bucket
	}
	for code, count := range counts {
		bucket[code] += count
	}
}

// Package planner
package planner

import (
	"time"

	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	"github.com/half-nothing/stand-planner/internal/utils"
)

// Slot 单个时间槽, 区间为左闭右开[Start, End)
type Slot struct {
	Index int
	Start time.Time
	End   time.Time
}

// SlotGrid 单个运行日的离散时间轴
// 所有区间运算遵循左闭右开语义, 槽不跨日
type SlotGrid struct {
	day          time.Time
	start        time.Time
	end          time.Time
	slotDuration time.Duration
	defaultGap   time.Duration
	blockSize    int
	slots        []Slot
}

// NewSlotGrid 根据运行参数构建day当天的时间槽网格
// 参数非法时返回ConfigError
func NewSlotGrid(day time.Time, settings *operation.OperationalSettings) (*SlotGrid, *PlanError) {
	if settings == nil {
		return nil, NewConfigError("operational settings missing")
	}
	if settings.SlotDurationMinutes <= 0 {
		return nil, NewConfigError("slot duration must be positive, got %d", settings.SlotDurationMinutes)
	}
	if settings.BlockSizeSlots <= 0 {
		return nil, NewConfigError("block size must be positive, got %d", settings.BlockSizeSlots)
	}
	dayStart, err := utils.ParseClock(settings.DayStart)
	if err != nil {
		return nil, NewConfigError("invalid day start %q: %v", settings.DayStart, err)
	}
	dayEnd, err := utils.ParseClock(settings.DayEnd)
	if err != nil {
		return nil, NewConfigError("invalid day end %q: %v", settings.DayEnd, err)
	}
	if dayEnd <= dayStart {
		return nil, NewConfigError("day end %s must be after day start %s", settings.DayEnd, settings.DayStart)
	}
	if settings.DefaultGapMinutes < 0 {
		return nil, NewConfigError("default gap must not be negative, got %d", settings.DefaultGapMinutes)
	}
	slotDuration := time.Duration(settings.SlotDurationMinutes) * time.Minute
	window := dayEnd - dayStart
	if window%slotDuration != 0 {
		return nil, NewConfigError("operating window %s-%s is not divisible by slot duration %dmin",
			settings.DayStart, settings.DayEnd, settings.SlotDurationMinutes)
	}
	slotCount := int(window / slotDuration)
	if slotCount%settings.BlockSizeSlots != 0 {
		return nil, NewConfigError("slot count %d is not divisible by block size %d", slotCount, settings.BlockSizeSlots)
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	grid := &SlotGrid{
		day:          midnight,
		start:        midnight.Add(dayStart),
		end:          midnight.Add(dayEnd),
		slotDuration: slotDuration,
		defaultGap:   time.Duration(settings.DefaultGapMinutes) * time.Minute,
		blockSize:    settings.BlockSizeSlots,
		slots:        make([]Slot, slotCount),
	}
	for i := range grid.slots {
		slotStart := grid.start.Add(time.Duration(i) * slotDuration)
		grid.slots[i] = Slot{Index: i, Start: slotStart, End: slotStart.Add(slotDuration)}
	}
	return grid, nil
}

func (grid *SlotGrid) Day() time.Time { return grid.day }

func (grid *SlotGrid) Start() time.Time { return grid.start }

func (grid *SlotGrid) End() time.Time { return grid.end }

func (grid *SlotGrid) SlotDuration() time.Duration { return grid.slotDuration }

func (grid *SlotGrid) DefaultGap() time.Duration { return grid.defaultGap }

func (grid *SlotGrid) SlotCount() int { return len(grid.slots) }

func (grid *SlotGrid) BlockSize() int { return grid.blockSize }

func (grid *SlotGrid) BlockCount() int { return len(grid.slots) / grid.blockSize }

func (grid *SlotGrid) Slots() []Slot { return grid.slots }

func (grid *SlotGrid) Slot(index int) Slot { return grid.slots[index] }

func (grid *SlotGrid) BlockOfSlot(index int) int { return index / grid.blockSize }

// HourOfSlot 返回槽起点所在的小时
func (grid *SlotGrid) HourOfSlot(index int) int { return grid.slots[index].Start.Hour() }

// SlotIndexAt 返回时刻t落入的槽下标, t不在运行窗口内时返回false
func (grid *SlotGrid) SlotIndexAt(t time.Time) (int, bool) {
	if t.Before(grid.start) || !t.Before(grid.end) {
		return 0, false
	}
	return int(t.Sub(grid.start) / grid.slotDuration), true
}

// Contains 判断[start, end)是否完整落在运行窗口内
func (grid *SlotGrid) Contains(start, end time.Time) bool {
	return !start.Before(grid.start) && !end.After(grid.end) && start.Before(end)
}

// CoveringRange 返回覆盖[start, end)的最小槽区间[first, last], 向外取整
// 窗口超出运行窗口时返回false
func (grid *SlotGrid) CoveringRange(start, end time.Time) (first, last int, ok bool) {
	if !grid.Contains(start, end) {
		return 0, 0, false
	}
	first = int(start.Sub(grid.start) / grid.slotDuration)
	offset := end.Sub(grid.start)
	last = int(offset / grid.slotDuration)
	if offset%grid.slotDuration == 0 {
		// 右端恰好落在槽边界, 前一个槽即可覆盖
		last--
	}
	return first, last, true
}

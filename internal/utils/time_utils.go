// Package utils
package utils

import (
	"fmt"
	"time"
)

// ParseClock 解析"HH:MM"形式的时刻, 返回自零点起的偏移
func ParseClock(clock string) (time.Duration, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock string %q: %w", clock, err)
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}

// CombineDayClock 把运营日和时刻合并成带时区的时间点
func CombineDayClock(day time.Time, clock string) (time.Time, error) {
	offset, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(offset), nil
}

// Overlaps 判断两个半开区间[aStart,aEnd)和[bStart,bEnd)是否相交
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

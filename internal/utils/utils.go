// Package utils содержит утилитарные функции, используемые в разных частях приложения
package utils

import (
	"fmt"
	"time"
)

// FormatClock форматирует время в формат HH:MM
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange форматирует интервал доклада. Без корректного конца
// выводится только начало
func FormatTimeRange(start, end time.Time) string {
	if end.IsZero() || !end.After(start) {
		return FormatClock(start)
	}
	return FormatClock(start) + "-" + FormatClock(end)
}

// FormatLength форматирует продолжительность доклада в часах и минутах
func FormatLength(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d мин", minutes)
	case minutes == 0:
		return fmt.Sprintf("%d ч", hours)
	default:
		return fmt.Sprintf("%d ч %d мин", hours, minutes)
	}
}

// TruncateString обрезает строку до указанного числа символов, добавляя "..." если строка длиннее
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

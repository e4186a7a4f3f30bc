package utils

import (
	"testing"
	"time"
)

func TestFormatTimeRange(t *testing.T) {
	start := time.Date(2016, 6, 1, 9, 5, 0, 0, time.UTC)
	tests := []struct {
		end      time.Time
		expected string
	}{
		{start.Add(55 * time.Minute), "09:05-10:00"},
		{time.Time{}, "09:05"},
		{start, "09:05"},
		{start.Add(-time.Hour), "09:05"},
	}

	for _, test := range tests {
		result := FormatTimeRange(start, test.end)
		if result != test.expected {
			t.Errorf("FormatTimeRange(%v) = %s; expected %s", test.end, result, test.expected)
		}
	}
}

func TestFormatLength(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "-"},
		{-time.Minute, "-"},
		{45 * time.Minute, "45 мин"},
		{time.Hour, "1 ч"},
		{90 * time.Minute, "1 ч 30 мин"},
		{29*time.Minute + 40*time.Second, "30 мин"},
	}

	for _, test := range tests {
		result := FormatLength(test.duration)
		if result != test.expected {
			t.Errorf("FormatLength(%v) = %s; expected %s", test.duration, result, test.expected)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a very long string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"abcde", 4, "a..."},
		{"доклад про Go", 9, "доклад..."},
	}

	for _, test := range tests {
		result := TruncateString(test.input, test.maxLen)
		if result != test.expected {
			t.Errorf("TruncateString(%s, %d) = %s; expected %s", test.input, test.maxLen, result, test.expected)
		}
	}
}

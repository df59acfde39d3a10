// Copyright (c) 2026 ComicHub. All rights reserved.

package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekday(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"monday", time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC), 1},
		{"tuesday", time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC), 2},
		{"saturday", time.Date(2026, time.September, 5, 12, 0, 0, 0, time.UTC), 6},
		{"sunday", time.Date(2026, time.September, 6, 12, 0, 0, 0, time.UTC), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Weekday(tt.date))
		})
	}
}

func TestWeekOfMonth(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"first day", time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), 1},
		{"seventh day", time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC), 1},
		{"eighth day", time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC), 2},
		{"mid month", time.Date(2026, time.September, 17, 0, 0, 0, 0, time.UTC), 3},
		{"last day of long month", time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekOfMonth(tt.date))
		})
	}
}

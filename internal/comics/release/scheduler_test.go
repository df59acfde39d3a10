// Copyright (c) 2026 ComicHub. All rights reserved.

package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextFireTime(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before todays slot fires today",
			now:  time.Date(2026, time.September, 1, 0, 0, 30, 0, time.UTC),
			want: time.Date(2026, time.September, 1, 0, 1, 0, 0, time.UTC),
		},
		{
			name: "exactly at the slot rolls to tomorrow",
			now:  time.Date(2026, time.September, 1, 0, 1, 0, 0, time.UTC),
			want: time.Date(2026, time.September, 2, 0, 1, 0, 0, time.UTC),
		},
		{
			name: "after todays slot fires tomorrow",
			now:  time.Date(2026, time.September, 1, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, time.September, 2, 0, 1, 0, 0, time.UTC),
		},
		{
			name: "rolls over month boundary",
			now:  time.Date(2026, time.September, 30, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, time.October, 1, 0, 1, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextFireTime(tt.now, 0, 1))
		})
	}
}

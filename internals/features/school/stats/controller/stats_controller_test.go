package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendancePercent(t *testing.T) {
	cases := []struct {
		name    string
		present int64
		total   int64
		want    float64
	}{
		{"all present", 10, 10, 100},
		{"none present", 0, 10, 0},
		{"two thirds", 2, 3, 66.6},
		{"no records", 0, 0, 0},
		{"rounds down to one decimal", 1, 7, 14.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AttendancePercent(tc.present, tc.total))
		})
	}
}

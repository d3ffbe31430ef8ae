package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTimeRange(t *testing.T) {
	assert.True(t, validTimeRange("08:00", "09:30"))
	assert.True(t, validTimeRange("00:00", "23:59"))

	assert.False(t, validTimeRange("09:30", "08:00"))
	assert.False(t, validTimeRange("08:00", "08:00"))
	assert.False(t, validTimeRange("8am", "9am"))
	assert.False(t, validTimeRange("25:00", "26:00"))
	assert.False(t, validTimeRange("", "09:00"))
}

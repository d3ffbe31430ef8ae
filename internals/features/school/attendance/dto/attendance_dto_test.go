package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/attendance/model"
)

func TestMarkAttendanceRequestParseDate(t *testing.T) {
	r := MarkAttendanceRequest{Date: "2026-03-09"}
	d, err := r.ParseDate()
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, 9, d.Day())

	for _, bad := range []string{"09-03-2026", "2026/03/09", "today", ""} {
		r := MarkAttendanceRequest{Date: bad}
		_, err := r.ParseDate()
		assert.Error(t, err, bad)
	}
}

func TestMarkAttendanceRequestToModels(t *testing.T) {
	classID := uuid.New()
	s1, s2 := uuid.New(), uuid.New()
	r := MarkAttendanceRequest{
		ClassID: classID,
		Date:    "2026-03-09",
		Records: []AttendanceEntry{
			{StudentID: s1, Status: "present"},
			{StudentID: s2, Status: "late"},
		},
	}
	date, err := r.ParseDate()
	require.NoError(t, err)

	rows := r.ToModels(date)
	require.Len(t, rows, 2)
	assert.Equal(t, classID, rows[0].AttendanceClassID)
	assert.Equal(t, s1, rows[0].AttendanceStudentID)
	assert.Equal(t, model.AttendancePresent, rows[0].AttendanceStatus)
	assert.Equal(t, model.AttendanceLate, rows[1].AttendanceStatus)
	assert.Equal(t, date, rows[1].AttendanceDate)
}

func TestFromModelFormatsDate(t *testing.T) {
	r := MarkAttendanceRequest{Date: "2026-03-09"}
	date, err := r.ParseDate()
	require.NoError(t, err)

	resp := FromModel(model.AttendanceModel{
		AttendanceDate:   date,
		AttendanceStatus: model.AttendanceAbsent,
	})
	assert.Equal(t, "2026-03-09", resp.Date)
	assert.Equal(t, model.AttendanceAbsent, resp.Status)
}

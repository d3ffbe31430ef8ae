package dto

import (
	"time"

	"github.com/google/uuid"

	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/attendance/model"
)

const DateLayout = "2006-01-02"

type AttendanceEntry struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late"`
}

// MarkAttendanceRequest replaces every record for (class, date).
type MarkAttendanceRequest struct {
	ClassID uuid.UUID         `json:"class_id" validate:"required"`
	Date    string            `json:"date" validate:"required"`
	Records []AttendanceEntry `json:"records" validate:"required,min=1,dive"`
}

func (r MarkAttendanceRequest) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

func (r MarkAttendanceRequest) ToModels(date time.Time) []model.AttendanceModel {
	out := make([]model.AttendanceModel, 0, len(r.Records))
	for _, rec := range r.Records {
		out = append(out, model.AttendanceModel{
			AttendanceClassID:   r.ClassID,
			AttendanceStudentID: rec.StudentID,
			AttendanceDate:      date,
			AttendanceStatus:    model.AttendanceStatus(rec.Status),
		})
	}
	return out
}

type ListAttendanceQuery struct {
	ClassID string `query:"class_id"`
	Date    string `query:"date"`
}

type AttendanceResponse struct {
	AttendanceID uuid.UUID              `json:"attendance_id"`
	ClassID      uuid.UUID              `json:"class_id"`
	StudentID    uuid.UUID              `json:"student_id"`
	StudentName  string                 `json:"student_name,omitempty"`
	Date         string                 `json:"date"`
	Status       model.AttendanceStatus `json:"status"`
}

func FromModel(m model.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID: m.AttendanceID,
		ClassID:      m.AttendanceClassID,
		StudentID:    m.AttendanceStudentID,
		Date:         m.AttendanceDate.Format(DateLayout),
		Status:       m.AttendanceStatus,
	}
}

func FromModels(ms []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

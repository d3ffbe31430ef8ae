package dto

// NotifyRequest carries a notification plus the email echo. `to` is
// the target user's email; the row is attached to that account.
type NotifyRequest struct {
	To          string `json:"to" validate:"required,email"`
	StudentName string `json:"studentName" validate:"omitempty,max=100"`
	Title       string `json:"title" validate:"required,max=200"`
	Message     string `json:"message" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=grade announcement assignment general"`

	// Optional client payload stored verbatim on the row.
	Data map[string]any `json:"data"`
}

type ListNotificationsQuery struct {
	Unread bool `query:"unread"`
}

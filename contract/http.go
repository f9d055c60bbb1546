package contract

// LoginResponse is returned on an admitted login.
type LoginResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// ErrorResponse carries an inline error message for the client to render
// next to the control that triggered it.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Partner is one selectable chat partner.
type Partner struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// PartnersResponse lists the partners available to the caller.
type PartnersResponse struct {
	Partners []Partner `json:"partners"`
}

// Message is one rendered chat message.
type Message struct {
	SenderUID   string `json:"sender_uid"`
	SenderName  string `json:"sender_name"`
	ContentHTML string `json:"content_html"`
	SentAt      string `json:"sent_at"`
	Mine        bool   `json:"mine"`
}

// MessagesResponse is the recent-message window of one room, oldest
// first. Error is set when the read degraded to an empty window.
type MessagesResponse struct {
	RoomID   string    `json:"room_id"`
	Messages []Message `json:"messages"`
	Error    string    `json:"error,omitempty"`
}

// SendRequest appends one message to the room shared with PartnerUID.
type SendRequest struct {
	PartnerUID string `json:"partner_uid"`
	Content    string `json:"content"`
}

// internal/domain/models/conversation.go
package models

import "time"

// SystemSenderID marks automated notifications. Clients render these
// distinctly from either party's messages.
const SystemSenderID = "system"

// MessageStatusSent is set on messages authored by the current user.
const MessageStatusSent = "sent"

// Message is one entry in a conversation thread. Messages are immutable
// once appended.
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp string    `json:"timestamp"` // display form, e.g. "14:05"
	SentAt    time.Time `json:"sent_at"`
	Status    string    `json:"status,omitempty"`
}

// IsSystem reports whether the message is an automated notification.
func (m Message) IsSystem() bool {
	return m.SenderID == SystemSenderID
}

// Conversation is a per-participant message thread. ID is always the
// participant's id.
//
// LastMessage and LastTimestamp cache the tail of Messages and are only
// ever written together with an append.
type Conversation struct {
	ID                string    `json:"id"`
	ParticipantName   string    `json:"participant_name"`
	ParticipantAvatar string    `json:"participant_avatar,omitempty"`
	ParticipantRole   Role      `json:"participant_role,omitempty"`
	Messages          []Message `json:"messages"`
	LastMessage       string    `json:"last_message"`
	LastTimestamp     string    `json:"last_timestamp"`
	UnreadCount       int       `json:"unread_count"`
	IsHired           bool      `json:"is_hired"`
}

// Clone returns a deep copy so callers can't reach back into store state.
func (c Conversation) Clone() Conversation {
	out := c
	out.Messages = append([]Message(nil), c.Messages...)
	return out
}

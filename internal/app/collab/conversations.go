// internal/app/collab/conversations.go
package collab

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/talenthub/internal/domain/models"
)

const displayTimeLayout = "15:04"

// ConversationStore keeps the ordered set of conversations for one user.
// New conversations go to the front; the order of messages inside a thread
// never changes.
type ConversationStore struct {
	userID string
	order  []*models.Conversation
	byID   map[string]*models.Conversation
	active string

	now   func() time.Time
	newID func() string
}

func newConversationStore(userID string, now func() time.Time, newID func() string) *ConversationStore {
	return &ConversationStore{
		userID: userID,
		byID:   make(map[string]*models.Conversation),
		now:    now,
		newID:  newID,
	}
}

// Connect returns the conversation for p, creating it with an opening
// message from the participant if it does not exist yet.
func (s *ConversationStore) Connect(p models.Participant) (*models.Conversation, bool) {
	if c, ok := s.byID[p.ID]; ok {
		return c, false
	}

	c := &models.Conversation{
		ID:                p.ID,
		ParticipantName:   p.Name,
		ParticipantAvatar: p.Avatar,
		ParticipantRole:   p.Role,
	}
	s.byID[p.ID] = c
	s.order = append([]*models.Conversation{c}, s.order...)

	s.appendMessage(c, p.ID, openingText(p.Name), "")
	if s.active != c.ID {
		c.UnreadCount++
	}
	return c, true
}

// Get returns the live conversation for id.
func (s *ConversationStore) Get(id string) (*models.Conversation, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Send appends a message authored by the current user, or by the system
// sentinel when system is true. Unknown ids are a no-op.
func (s *ConversationStore) Send(id, text string, system bool) (models.Message, bool) {
	c, ok := s.byID[id]
	if !ok {
		return models.Message{}, false
	}
	if system {
		return s.appendMessage(c, models.SystemSenderID, text, ""), true
	}
	return s.appendMessage(c, s.userID, text, models.MessageStatusSent), true
}

// Receive appends a message from the participant. It counts as unread
// unless the conversation is the active one.
func (s *ConversationStore) Receive(id, text string) (models.Message, bool) {
	c, ok := s.byID[id]
	if !ok {
		return models.Message{}, false
	}
	m := s.appendMessage(c, c.ID, text, "")
	if s.active != id {
		c.UnreadCount++
	}
	return m, true
}

// MarkRead clears the unread counter.
func (s *ConversationStore) MarkRead(id string) bool {
	c, ok := s.byID[id]
	if !ok {
		return false
	}
	c.UnreadCount = 0
	return true
}

// MarkHired flips IsHired. It never goes back to false.
func (s *ConversationStore) MarkHired(id string) bool {
	c, ok := s.byID[id]
	if !ok {
		return false
	}
	c.IsHired = true
	return true
}

// SetActive records which conversation is open in the UI.
func (s *ConversationStore) SetActive(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	s.active = id
	return true
}

// Active returns the id of the open conversation, or "".
func (s *ConversationStore) Active() string {
	return s.active
}

// List returns copies of all conversations in display order.
func (s *ConversationStore) List() []models.Conversation {
	out := make([]models.Conversation, 0, len(s.order))
	for _, c := range s.order {
		out = append(out, c.Clone())
	}
	return out
}

// appendMessage is the only place a thread grows, and it refreshes the
// cached tail in the same step.
func (s *ConversationStore) appendMessage(c *models.Conversation, senderID, text, status string) models.Message {
	at := s.now()
	m := models.Message{
		ID:        s.newID(),
		SenderID:  senderID,
		Text:      text,
		Timestamp: at.Format(displayTimeLayout),
		SentAt:    at,
		Status:    status,
	}
	c.Messages = append(c.Messages, m)
	c.LastMessage = m.Text
	c.LastTimestamp = m.Timestamp
	return m
}

func openingText(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Hi, thanks for connecting! Looking forward to working together."
	}
	return fmt.Sprintf("Hi, thanks for connecting! I'm %s. Looking forward to working together.", name)
}

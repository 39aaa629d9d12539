// internal/app/collab/coordinator.go
package collab

import (
	"strings"
	"sync"

	"github.com/dalemusser/talenthub/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Coordinator owns one user's conversations, pending interviews, hiring
// ledger and stats. It is the only writer of those collections.
//
// Every action checks its guards before touching anything and then applies
// all of its cascading updates under c.mu, so a reader never observes a
// hire without its stats, message or hired flag. Guard failures are
// reported as ok=false and change nothing.
type Coordinator struct {
	mu   sync.Mutex
	user models.User
	opts Options

	conversations *ConversationStore
	interviews    *InterviewScheduler
	ledger        *HiringLedger
	stats         models.HiringStats
}

// New builds an empty Coordinator acting as user.
func New(user models.User, opts Options) *Coordinator {
	opts = opts.withDefaults()
	return &Coordinator{
		user:          user,
		opts:          opts,
		conversations: newConversationStore(user.ID, opts.Now, opts.NewID),
		interviews:    newInterviewScheduler(opts.AllowDuplicateInterviews, opts.NewID),
		ledger:        newHiringLedger(opts.DuplicateGuard),
		stats:         opts.Baseline,
	}
}

// Connect opens (or reopens) the conversation with p and makes it active.
func (c *Coordinator) Connect(p models.Participant) (models.Conversation, bool) {
	if strings.TrimSpace(p.ID) == "" {
		return models.Conversation{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conv, _ := c.conversations.Connect(p)
	c.conversations.SetActive(conv.ID)
	c.conversations.MarkRead(conv.ID)
	return conv.Clone(), true
}

// SelectConversation makes id the active conversation and clears its
// unread count.
func (c *Coordinator) SelectConversation(id string) (models.Conversation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conv, ok := c.conversations.Get(id)
	if !ok {
		return models.Conversation{}, false
	}
	c.conversations.SetActive(id)
	c.conversations.MarkRead(id)
	return conv.Clone(), true
}

// SendMessage posts text from the current user.
func (c *Coordinator) SendMessage(conversationID, text string) (models.Message, bool) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conversations.Send(conversationID, text, false)
}

// ReceiveMessage posts text from the participant of conversationID.
func (c *Coordinator) ReceiveMessage(conversationID, text string) (models.Message, bool) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conversations.Receive(conversationID, text)
}

// ScheduleInterview books an interview with p and posts a confirmation into
// p's conversation, creating the conversation if needed.
func (c *Coordinator) ScheduleInterview(p models.Participant, date, tm, topic string) (models.Interview, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	iv, created := c.interviews.Schedule(p, date, tm, topic)
	if !created {
		return iv, false
	}
	c.conversations.Connect(p)
	c.conversations.Send(iv.ParticipantID, interviewScheduledText(iv), true)
	return iv, true
}

// Resolve consumes the pending interview with outcome o. A hire writes the
// ledger entry, stats, congratulation message and hired flag together; a
// rejection only notifies the participant. Unknown or already resolved
// interviews, and unknown outcomes, are a no-op.
func (c *Coordinator) Resolve(interviewID string, o models.Outcome) (models.Interview, models.HiredMember, bool) {
	if o != models.OutcomeHired && o != models.OutcomeRejected {
		return models.Interview{}, models.HiredMember{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	iv, ok := c.interviews.Resolve(interviewID)
	if !ok {
		return models.Interview{}, models.HiredMember{}, false
	}
	c.conversations.Connect(participantOf(iv))

	if o == models.OutcomeRejected {
		c.conversations.Send(iv.ParticipantID, rejectedText(iv), true)
		return iv, models.HiredMember{}, true
	}

	m := models.HiredMember{
		ID:            c.opts.NewID(),
		ParticipantID: iv.ParticipantID,
		Name:          iv.ParticipantName,
		Avatar:        iv.ParticipantAvatar,
		Role:          iv.ParticipantRole,
		StartDate:     c.opts.Now().Format(dateLayout),
		Project:       iv.Topic,
		Organization:  iv.ParticipantOrganization,
		Source:        models.HireSourceInterview,
	}
	c.recordHire(m)
	c.conversations.Send(iv.ParticipantID, hiredText(m), true)
	c.conversations.MarkHired(iv.ParticipantID)
	return iv, m, true
}

// Hire resolves the interview as hired.
func (c *Coordinator) Hire(interviewID string) (models.HiredMember, bool) {
	_, m, ok := c.Resolve(interviewID, models.OutcomeHired)
	return m, ok
}

// Reject resolves the interview as rejected.
func (c *Coordinator) Reject(interviewID string) (models.Interview, bool) {
	iv, _, ok := c.Resolve(interviewID, models.OutcomeRejected)
	return iv, ok
}

// MakeCollaboration hires p directly, skipping the interview step. A
// participant already in the ledger (per the duplicate guard) is a no-op.
func (c *Coordinator) MakeCollaboration(p models.Participant, project string) (models.HiredMember, bool) {
	if strings.TrimSpace(p.ID) == "" {
		return models.HiredMember{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ledger.Contains(p) {
		return models.HiredMember{}, false
	}

	project = strings.TrimSpace(project)
	if project == "" {
		project = defaultCollaborationProject
	}
	m := models.HiredMember{
		ID:            c.opts.NewID(),
		ParticipantID: p.ID,
		Name:          p.Name,
		Avatar:        p.Avatar,
		Role:          p.Role,
		StartDate:     c.opts.Now().Format(dateLayout),
		Project:       project,
		Organization:  p.Organization,
		Source:        models.HireSourceCollaboration,
	}
	c.recordHire(m)
	c.conversations.Connect(p)
	c.conversations.MarkHired(p.ID)
	c.conversations.Send(p.ID, collaborationText(c.user, m), true)
	return m, true
}

// recordHire writes the ledger and the incremental stats together.
func (c *Coordinator) recordHire(m models.HiredMember) {
	c.ledger.Record(m)
	applyHire(&c.stats, m.Role)
}

// Conversations returns copies of every conversation, newest first.
func (c *Coordinator) Conversations() []models.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversations.List()
}

// Conversation returns a copy of one conversation.
func (c *Coordinator) Conversation(id string) (models.Conversation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conv, ok := c.conversations.Get(id)
	if !ok {
		return models.Conversation{}, false
	}
	return conv.Clone(), true
}

// PendingInterviews returns the interviews not yet decided.
func (c *Coordinator) PendingInterviews() []models.Interview {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interviews.Pending()
}

// HiredMembers returns ledger entries passing filter, newest first.
func (c *Coordinator) HiredMembers(filter RoleFilter) []models.HiredMember {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Members(filter)
}

// StatsReport returns the incremental counters and the ledger fold taken
// under one lock, so callers can compare them.
func (c *Coordinator) StatsReport() (stats, recomputed models.HiringStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats, RecomputeStats(c.opts.Baseline, c.ledger.Members(AllRoles()))
}

// Snapshot is a consistent copy of every read model.
type Snapshot struct {
	User                 models.User           `json:"user"`
	ActiveConversationID string                `json:"active_conversation_id,omitempty"`
	Conversations        []models.Conversation `json:"conversations"`
	PendingInterviews    []models.Interview    `json:"pending_interviews"`
	HiredMembers         []models.HiredMember  `json:"hired_members"`
	Stats                models.HiringStats    `json:"stats"`
}

// Snapshot captures all read models under one lock.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		User:                 c.user,
		ActiveConversationID: c.conversations.Active(),
		Conversations:        c.conversations.List(),
		PendingInterviews:    c.interviews.Pending(),
		HiredMembers:         c.ledger.Members(AllRoles()),
		Stats:                c.stats,
	}
}

func participantOf(iv models.Interview) models.Participant {
	return models.Participant{
		ID:           iv.ParticipantID,
		Name:         iv.ParticipantName,
		Avatar:       iv.ParticipantAvatar,
		Role:         iv.ParticipantRole,
		Organization: iv.ParticipantOrganization,
	}
}

package collab_test

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/talenthub/internal/app/collab"
	collabfeature "github.com/dalemusser/talenthub/internal/app/features/collab"
	"github.com/dalemusser/talenthub/internal/app/store/audit"
	"github.com/dalemusser/talenthub/internal/app/store/directory"
	"github.com/dalemusser/talenthub/internal/app/system/auditlog"
	"github.com/dalemusser/talenthub/internal/app/system/auth"
	"github.com/dalemusser/talenthub/internal/domain/models"
	"github.com/dalemusser/talenthub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const dirYAML = `
participants:
  - {id: p-inst, name: Lakeside Polytechnic, role: institution, organization: Lakeside}
  - {id: p-free, name: Maya Chen, role: freelancer}
  - {id: p-agency, name: Northwind Creative, role: agency}
`

type memSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (m *memSink) Log(_ context.Context, e audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *memSink) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.events {
		out = append(out, e.EventType)
	}
	return out
}

type fixture struct {
	t      *testing.T
	router chi.Router
	sink   *memSink
	user   models.User
}

func newFixture(t *testing.T, mutate ...func(*collab.Options)) *fixture {
	t.Helper()
	fx := testutil.NewFixtures(t)

	opts := collab.DefaultOptions()
	opts.Now = fx.Now
	opts.NewID = fx.NewID
	opts.Baseline = models.HiringStats{ActiveInterns: 12, HiredStudents: 40, AgencyLeads: 5, LeadsTaken: 3}
	for _, m := range mutate {
		m(&opts)
	}

	dir, err := directory.Parse(strings.NewReader(dirYAML))
	require.NoError(t, err)

	sink := &memSink{}
	auditLog := auditlog.New(sink, zap.NewNop(), auditlog.Config{Auth: "db", Collab: "db"})

	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test", "", time.Hour, false, zap.NewNop())
	require.NoError(t, err)

	h := collabfeature.NewHandler(collab.NewRegistry(opts), dir, auditLog, nil, zap.NewNop())
	return &fixture{t: t, router: collabfeature.Routes(h, sm), sink: sink, user: testutil.StartupUser()}
}

func (f *fixture) do(method, path string, body any) *testutil.ResponseRecorder {
	f.t.Helper()
	rec := testutil.NewRecorder()
	f.router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(f.t, method, path, body, f.user))
	return rec
}

type action struct {
	Applied      bool                 `json:"applied"`
	Conversation *models.Conversation `json:"conversation"`
	Message      *models.Message      `json:"message"`
	Interview    *models.Interview    `json:"interview"`
	Hire         *models.HiredMember  `json:"hire"`
}

func (f *fixture) act(method, path string, body any) action {
	f.t.Helper()
	rec := f.do(method, path, body)
	rec.AssertStatus(f.t, http.StatusOK)
	var a action
	rec.DecodeJSON(f.t, &a)
	return a
}

func TestRoutes_RequireSignedIn(t *testing.T) {
	f := newFixture(t)
	rec := testutil.NewRecorder()
	f.router.ServeHTTP(rec, testutil.NewRequest("GET", "/"))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestConnect(t *testing.T) {
	f := newFixture(t)

	a := f.act("POST", "/conversations", map[string]string{"participant_id": "p-free"})
	require.True(t, a.Applied)
	require.NotNil(t, a.Conversation)
	assert.Equal(t, "p-free", a.Conversation.ID)
	assert.Equal(t, "Maya Chen", a.Conversation.ParticipantName)
	assert.Len(t, a.Conversation.Messages, 1)

	again := f.act("POST", "/conversations", map[string]string{"participant_id": "p-free"})
	assert.True(t, again.Applied)
	assert.Len(t, again.Conversation.Messages, 1, "connect is idempotent")

	assert.Equal(t, []string{audit.EventConversationConnected, audit.EventConversationConnected}, f.sink.types())
	first, second := f.sink.events[0], f.sink.events[1]
	assert.True(t, first.Success)
	assert.Equal(t, "true", first.Details["created"])
	assert.True(t, second.Success, "reconnect is a successful connect")
	assert.Empty(t, second.FailureReason)
	assert.Equal(t, "false", second.Details["created"])
}

func TestActions_RejectNonJSONBody(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewAuthenticatedRequest(t, "POST", "/conversations", `{"participant_id":"p-free"}`, f.user)
	req.Header.Set("Content-Type", "text/plain")
	rec := testutil.NewRecorder()
	f.router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusUnsupportedMediaType)
	rec.AssertContains(t, "unsupported_media_type")
	assert.Empty(t, f.sink.events)
}

func TestConnect_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body any
	}{
		{"malformed json", `{"participant_id":`},
		{"missing id", map[string]string{"name": "X"}},
		{"unknown id without details", map[string]string{"participant_id": "p-ghost"}},
		{"bad role", map[string]string{"participant_id": "p-ghost", "name": "Ghost", "role": "pirate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.do("POST", "/conversations", tt.body).AssertStatus(t, http.StatusBadRequest)
		})
	}

	a := f.act("POST", "/conversations", map[string]string{"participant_id": "p-ghost", "name": "Ghost", "role": "Agency"})
	assert.True(t, a.Applied, "participants outside the directory may be described inline")
}

func TestMessages(t *testing.T) {
	f := newFixture(t)
	f.act("POST", "/conversations", map[string]string{"participant_id": "p-free"})

	a := f.act("POST", "/conversations/p-free/messages", map[string]string{"text": "<b>Hello</b> there"})
	require.True(t, a.Applied)
	assert.Equal(t, "Hello there", a.Message.Text)
	assert.Equal(t, f.user.ID, a.Message.SenderID)

	assert.False(t, f.act("POST", "/conversations/p-free/messages", map[string]string{"text": "<script>x</script>"}).Applied)
	assert.False(t, f.act("POST", "/conversations/nope/messages", map[string]string{"text": "hi"}).Applied)

	in := f.act("POST", "/conversations/p-free/incoming", map[string]string{"text": "Hi back"})
	require.True(t, in.Applied)
	assert.Equal(t, "p-free", in.Message.SenderID)

	rec := f.do("GET", "/conversations/p-free", nil)
	rec.AssertStatus(t, http.StatusOK)
	var conv models.Conversation
	rec.DecodeJSON(t, &conv)
	assert.Equal(t, "Hi back", conv.LastMessage)
	assert.Len(t, conv.Messages, 3)

	f.do("GET", "/conversations/nope", nil).AssertStatus(t, http.StatusNotFound)
}

func TestSelect(t *testing.T) {
	f := newFixture(t)
	f.act("POST", "/conversations", map[string]string{"participant_id": "p-free"})
	f.act("POST", "/conversations", map[string]string{"participant_id": "p-agency"})
	f.act("POST", "/conversations/p-free/incoming", map[string]string{"text": "ping"})

	a := f.act("POST", "/conversations/p-free/select", nil)
	require.True(t, a.Applied)
	assert.Equal(t, 0, a.Conversation.UnreadCount)

	assert.False(t, f.act("POST", "/conversations/nope/select", nil).Applied)
}

func TestScheduleAndHire(t *testing.T) {
	f := newFixture(t)

	f.do("POST", "/interviews", map[string]string{"participant_id": "p-inst", "date": "03/04/2025", "time": "10:00"}).
		AssertStatus(t, http.StatusBadRequest)
	f.do("POST", "/interviews", map[string]string{"participant_id": "p-inst", "date": "2025-03-04", "time": "10am"}).
		AssertStatus(t, http.StatusBadRequest)
	assert.False(t, f.act("POST", "/interviews", map[string]string{"participant_id": "p-inst", "time": "10:00"}).Applied,
		"missing date is a no-op")

	a := f.act("POST", "/interviews", map[string]string{
		"participant_id": "p-inst", "date": "2025-03-04", "time": "10:00", "topic": "Summer internship",
	})
	require.True(t, a.Applied)
	require.NotNil(t, a.Interview)
	ivID := a.Interview.ID

	hire := f.act("POST", "/interviews/"+ivID+"/hire", nil)
	require.True(t, hire.Applied)
	assert.Equal(t, models.RoleInstitution, hire.Hire.Role)
	assert.Equal(t, "Summer internship", hire.Hire.Project)

	assert.False(t, f.act("POST", "/interviews/"+ivID+"/hire", nil).Applied, "an interview resolves once")
	assert.False(t, f.act("POST", "/interviews/"+ivID+"/reject", nil).Applied)

	var stats struct {
		Stats      models.HiringStats `json:"stats"`
		Recomputed models.HiringStats `json:"recomputed"`
		Consistent bool               `json:"consistent"`
	}
	rec := f.do("GET", "/stats", nil)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &stats)
	assert.True(t, stats.Consistent)
	assert.Equal(t, models.HiringStats{ActiveInterns: 13, HiredStudents: 41, AgencyLeads: 5, LeadsTaken: 3}, stats.Stats)

	var conv models.Conversation
	rec = f.do("GET", "/conversations/p-inst", nil)
	rec.DecodeJSON(t, &conv)
	assert.True(t, conv.IsHired)
	assert.Contains(t, conv.LastMessage, "HIRED")
}

func TestScheduleAndReject(t *testing.T) {
	f := newFixture(t)

	a := f.act("POST", "/interviews", map[string]string{"participant_id": "p-free", "date": "2025-03-04", "time": "09:30"})
	require.True(t, a.Applied)

	rej := f.act("POST", "/interviews/"+a.Interview.ID+"/reject", nil)
	require.True(t, rej.Applied)

	var conv models.Conversation
	f.do("GET", "/conversations/p-free", nil).DecodeJSON(t, &conv)
	assert.False(t, conv.IsHired)
	assert.Contains(t, conv.LastMessage, "moving forward with other candidates")

	var list map[string][]models.Interview
	f.do("GET", "/interviews", nil).DecodeJSON(t, &list)
	assert.Empty(t, list["interviews"])
}

func TestSchedule_DuplicatesDisallowed(t *testing.T) {
	f := newFixture(t, func(o *collab.Options) { o.AllowDuplicateInterviews = false })
	body := map[string]string{"participant_id": "p-free", "date": "2025-03-04", "time": "09:30"}

	first := f.act("POST", "/interviews", body)
	second := f.act("POST", "/interviews", body)

	require.True(t, first.Applied)
	assert.False(t, second.Applied)
	require.NotNil(t, second.Interview)
	assert.Equal(t, first.Interview.ID, second.Interview.ID)
}

func TestCollaborate(t *testing.T) {
	f := newFixture(t)

	a := f.act("POST", "/collaborations", map[string]string{"participant_id": "p-agency"})
	require.True(t, a.Applied)
	assert.Equal(t, "General Collaboration", a.Hire.Project)
	assert.Equal(t, models.HireSourceCollaboration, a.Hire.Source)

	assert.False(t, f.act("POST", "/collaborations", map[string]string{"participant_id": "p-agency", "project": "Again"}).Applied)

	var hires struct {
		Filter string               `json:"filter"`
		Hires  []models.HiredMember `json:"hires"`
	}
	rec := f.do("GET", "/hires?role=lead", nil)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &hires)
	assert.Len(t, hires.Hires, 1)

	rec = f.do("GET", "/hires?role=institution", nil)
	rec.DecodeJSON(t, &hires)
	assert.Empty(t, hires.Hires)

	f.do("GET", "/hires?role=pirate", nil).AssertStatus(t, http.StatusBadRequest)
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)
	f.act("POST", "/conversations", map[string]string{"participant_id": "p-free"})
	f.act("POST", "/interviews", map[string]string{"participant_id": "p-inst", "date": "2025-03-04", "time": "10:00"})

	var snap collab.Snapshot
	rec := f.do("GET", "/", nil)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &snap)

	assert.Equal(t, f.user.ID, snap.User.ID)
	assert.Len(t, snap.Conversations, 2)
	assert.Equal(t, "p-inst", snap.Conversations[0].ID, "newest conversation first")
	assert.Len(t, snap.PendingInterviews, 1)
	assert.Equal(t, "p-free", snap.ActiveConversationID)
}

func TestCoordinatorsArePerUser(t *testing.T) {
	f := newFixture(t)
	f.act("POST", "/conversations", map[string]string{"participant_id": "p-free"})

	f.user = testutil.InstitutionUser()
	var list map[string][]models.Conversation
	f.do("GET", "/conversations", nil).DecodeJSON(t, &list)
	assert.Empty(t, list["conversations"])
}

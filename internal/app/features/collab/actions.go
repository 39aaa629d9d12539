// internal/app/features/collab/actions.go
package collab

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/talenthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/talenthub/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func trim(s string) string { return strings.TrimSpace(s) }

// Connect handles POST /api/collab/conversations.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	c, u, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	var req participantRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.DecodeError(w, err)
		return
	}
	p, err := h.resolve(req)
	if err != nil {
		httpjson.BadRequest(w, err)
		return
	}

	_, existed := c.Conversation(p.ID)
	conv, applied := c.Connect(p)
	h.record(r, u, actionConnect, applied)
	h.Audit.ConversationConnected(r.Context(), r, u, conv, p.ID, applied, applied && !existed)

	resp := actionResponse{Applied: applied}
	if applied {
		resp.Conversation = &conv
	}
	httpjson.OK(w, resp)
}

// Select handles POST /api/collab/conversations/{id}/select.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	c, u, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	conv, applied := c.SelectConversation(chi.URLParam(r, "id"))
	h.record(r, u, actionSelect, applied)

	resp := actionResponse{Applied: applied}
	if applied {
		resp.Conversation = &conv
	}
	httpjson.OK(w, resp)
}

type messageRequest struct {
	Text string `json:"text"`
}

// Send handles POST /api/collab/conversations/{id}/messages.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	h.postMessage(w, r, false)
}

// Receive handles POST /api/collab/conversations/{id}/incoming: a message
// from the participant relayed by the messaging backend.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	h.postMessage(w, r, true)
}

func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request, incoming bool) {
	c, u, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	var req messageRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.DecodeError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	text := htmlsanitize.PlainText(req.Text)

	resp := actionResponse{}
	if incoming {
		msg, applied := c.ReceiveMessage(id, text)
		h.record(r, u, actionReceive, applied)
		resp.Applied = applied
		if applied {
			resp.Message = &msg
		}
	} else {
		msg, applied := c.SendMessage(id, text)
		h.record(r, u, actionSend, applied)
		h.Audit.MessageSent(r.Context(), r, u, id, applied)
		resp.Applied = applied
		if applied {
			resp.Message = &msg
		}
	}
	httpjson.OK(w, resp)
}

type scheduleRequest struct {
	participantRequest
	Date  string `json:"date"`
	Time  string `json:"time"`
	Topic string `json:"topic"`
}

// Schedule handles POST /api/collab/interviews. An empty date or time is a
// no-op; a malformed one is rejected.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	c, u, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	var req scheduleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.DecodeError(w, err)
		return
	}
	p, err := h.resolve(req.participantRequest)
	if err != nil {
		httpjson.BadRequest(w, err)
		return
	}
	date, tm := trim(req.Date), trim(req.Time)
	if err := checkLayout("date", date, dateLayout); err != nil {
		httpjson.BadRequest(w, err)
		return
	}
	if err := checkLayout("time", tm, timeLayout); err != nil {
		httpjson.BadRequest(w, err)
		return
	}

	iv, applied := c.ScheduleInterview(p, date, tm, htmlsanitize.PlainText(req.Topic))
	h.record(r, u, actionSchedule, applied)
	h.Audit.InterviewScheduled(r.Context(), r, u, iv, applied)

	resp := actionResponse{Applied: applied}
	if iv.ID != "" {
		resp.Interview = &iv
	}
	httpjson.OK(w, resp)
}

// Hire handles POST /api/collab/interviews/{id}/hire.
func (h *Handler) Hire(w http.ResponseWriter, r *http.Request) {
	c, u, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	m, applied := c.Hire(id)
	h.record(r, u, actionHire, applied)
	h.Audit.InterviewHired(r.Context(), r, u, id, m, applied)

	resp := actionResponse{Applied: applied}
	if applied {
		resp.Hire = &m
	}
	httpjson.OK(w, resp)
}

// Reject handles POST /api/collab/interviews/{id}/reject.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	c, u, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	iv, applied := c.Reject(id)
	h.record(r, u, actionReject, applied)
	h.Audit.InterviewRejected(r.Context(), r, u, id, iv, applied)

	resp := actionResponse{Applied: applied}
	if applied {
		resp.Interview = &iv
	}
	httpjson.OK(w, resp)
}

type collaborationRequest struct {
	participantRequest
	Project string `json:"project"`
}

// Collaborate handles POST /api/collab/collaborations.
func (h *Handler) Collaborate(w http.ResponseWriter, r *http.Request) {
	c, u, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	var req collaborationRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.DecodeError(w, err)
		return
	}
	p, err := h.resolve(req.participantRequest)
	if err != nil {
		httpjson.BadRequest(w, err)
		return
	}

	m, applied := c.MakeCollaboration(p, htmlsanitize.PlainText(req.Project))
	h.record(r, u, actionCollaborate, applied)
	h.Audit.CollaborationMade(r.Context(), r, u, p.ID, m, applied)

	resp := actionResponse{Applied: applied}
	if applied {
		resp.Hire = &m
	}
	httpjson.OK(w, resp)
}

// checkLayout accepts an empty value; anything else must parse.
func checkLayout(field, v, layout string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse(layout, v); err != nil {
		return fmt.Errorf("%s %q must look like %s", field, v, layout)
	}
	return nil
}

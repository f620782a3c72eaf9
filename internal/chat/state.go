// Package chat holds the viewer state and the transitions applied to it.
// Every transition is synchronous; callers own the State and serialize access.
package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/saravenpi/chatview/internal/models"
)

// DefaultLocalSender marks messages composed in this session.
const DefaultLocalSender = "You"

var (
	ErrNoSelection = errors.New("no conversation selected")
	ErrEmptyDraft  = errors.New("draft is empty")
)

type State struct {
	LocalSender string

	Results      []models.RoomResult
	Chats        []models.ChatSummary
	Messages     []models.Message
	Participants []models.Participant

	Selected    int64
	HasSelected bool

	Draft string

	Loaded  bool
	LoadErr error
}

func New(localSender string) *State {
	if localSender == "" {
		localSender = DefaultLocalSender
	}
	return &State{LocalSender: localSender}
}

// LoadResult is the outcome of the one load the viewer performs.
type LoadResult struct {
	Payload *models.Payload
	Err     error
}

func (r LoadResult) OK() bool {
	return r.Err == nil && r.Payload != nil
}

// Apply folds a load outcome into the state. A failed load leaves the state
// as it was before loading and only records the reason.
func (s *State) Apply(result LoadResult) {
	if !result.OK() {
		s.LoadErr = result.Err
		if s.LoadErr == nil {
			s.LoadErr = errors.New("load returned no payload")
		}
		return
	}
	s.Load(result.Payload)
}

// Load publishes a freshly fetched payload and selects the first room, if any.
func (s *State) Load(payload *models.Payload) {
	s.Results = payload.Results
	s.Chats = models.Summarize(payload.Results)
	s.Loaded = true
	s.LoadErr = nil

	if len(payload.Results) > 0 {
		first := payload.Results[0]
		s.Selected = first.Room.ID
		s.HasSelected = true
		s.Messages = first.Comments
		s.Participants = first.Room.Participants
	}
}

// Select records id as the selection. Messages and participants are replaced
// only when id matches a loaded room; otherwise they keep their old values.
func (s *State) Select(id int64) {
	s.Selected = id
	s.HasSelected = true

	if result, ok := s.result(id); ok {
		s.Messages = result.Comments
		s.Participants = result.Room.Participants
	}
}

func (s *State) result(id int64) (models.RoomResult, bool) {
	for _, r := range s.Results {
		if r.Room.ID == id {
			return r, true
		}
	}
	return models.RoomResult{}, false
}

// Current returns the summary of the selected chat, if the selection
// resolves to one.
func (s *State) Current() (models.ChatSummary, bool) {
	if !s.HasSelected {
		return models.ChatSummary{}, false
	}
	for _, c := range s.Chats {
		if c.ID == s.Selected {
			return c, true
		}
	}
	return models.ChatSummary{}, false
}

func (s *State) SetDraft(text string) {
	s.Draft = text
}

// Send appends the draft to the active messages as a local text message and
// clears it. The chat summaries are left untouched.
func (s *State) Send(now time.Time) (models.Message, error) {
	if strings.TrimSpace(s.Draft) == "" {
		return models.Message{}, ErrEmptyDraft
	}
	if !s.HasSelected {
		return models.Message{}, ErrNoSelection
	}

	msg := models.Message{
		ID:      now.UnixMilli(),
		Sender:  s.LocalSender,
		Kind:    models.KindText,
		RawKind: string(models.KindText),
		Text:    s.Draft,
	}

	messages := make([]models.Message, len(s.Messages), len(s.Messages)+1)
	copy(messages, s.Messages)
	s.Messages = append(messages, msg)
	s.Draft = ""

	return msg, nil
}

package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Kind string

const (
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindPDF     Kind = "pdf"
	KindVideo   Kind = "video"
	KindUnknown Kind = ""
)

// ParseKind maps a wire type onto a known Kind. Anything else is KindUnknown.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindText, KindImage, KindPDF, KindVideo:
		return Kind(s)
	}
	return KindUnknown
}

// Participant is kept exactly as the source sent it.
type Participant json.RawMessage

// Label returns a display string for the participant: the first of name,
// username, email or id that is set, otherwise the compact JSON.
func (p Participant) Label() string {
	var fields map[string]any
	if err := json.Unmarshal(p, &fields); err == nil {
		for _, key := range []string{"name", "username", "email", "id"} {
			if v, ok := fields[key]; ok && v != nil {
				if s := strings.TrimSpace(stringify(v)); s != "" {
					return s
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, p); err != nil {
		return string(p)
	}
	return buf.String()
}

func (p Participant) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

func (p *Participant) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

type Message struct {
	ID       int64
	Sender   string
	Kind     Kind
	RawKind  string
	Text     string
	URL      string
	Caption  string
	Filename string
}

// IsFrom reports whether the message was written by the given sender label.
func (m Message) IsFrom(sender string) bool {
	return m.Sender == sender
}

type Room struct {
	ID           int64
	Name         string
	ImageURL     string
	Participants []Participant
}

type RoomResult struct {
	Room     Room
	Comments []Message
}

type Payload struct {
	Results             []RoomResult
	Quarantined         int
	QuarantinedComments int
}

type ChatSummary struct {
	ID           int64
	Name         string
	Avatar       string
	LastMessage  *Message
	MemberCount  int
	Participants []Participant
}

// Preview is the single line shown under the chat name in the list.
func (c ChatSummary) Preview() string {
	if c.LastMessage == nil {
		return ""
	}
	if c.LastMessage.Text != "" {
		return c.LastMessage.Text
	}
	return c.LastMessage.Filename
}

// Initial is the avatar fallback: the first letter of the name.
func (c ChatSummary) Initial() string {
	return Initial(c.Name)
}

func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// Summarize derives one summary per result, in source order.
func Summarize(results []RoomResult) []ChatSummary {
	summaries := make([]ChatSummary, 0, len(results))
	for _, result := range results {
		summary := ChatSummary{
			ID:           result.Room.ID,
			Name:         result.Room.Name,
			Avatar:       result.Room.ImageURL,
			MemberCount:  len(result.Room.Participants),
			Participants: result.Room.Participants,
		}
		if n := len(result.Comments); n > 0 {
			last := result.Comments[n-1]
			summary.LastMessage = &last
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

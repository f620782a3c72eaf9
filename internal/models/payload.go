package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedPayload is returned when the document is not an object with a
// results array.
var ErrMalformedPayload = errors.New("malformed payload")

type wireDocument struct {
	Results *[]json.RawMessage `json:"results"`
}

type fields map[string]json.RawMessage

func (f fields) str(key string) string {
	var s string
	if raw, ok := f[key]; ok && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return ""
}

func (f fields) num(key string) (int64, bool) {
	raw, ok := f[key]
	if !ok {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	if id, err := n.Int64(); err == nil {
		return id, true
	}
	if v, err := n.Float64(); err == nil {
		return int64(v), true
	}
	return 0, false
}

func (f fields) array(key string) []json.RawMessage {
	var items []json.RawMessage
	if raw, ok := f[key]; ok && json.Unmarshal(raw, &items) == nil {
		return items
	}
	return nil
}

func (f fields) object(key string) (fields, bool) {
	raw, ok := f[key]
	if !ok {
		return nil, false
	}
	var obj fields
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// DecodePayload reads a chat document. Results without a room, or whose room
// has no numeric id, are dropped and counted in Quarantined. Comments that
// are not objects are dropped and counted in QuarantinedComments. Fields of
// the wrong type inside a room or comment decode as zero values.
func DecodePayload(r io.Reader) (*Payload, error) {
	var doc wireDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if doc.Results == nil {
		return nil, fmt.Errorf("%w: missing results", ErrMalformedPayload)
	}

	payload := &Payload{Results: make([]RoomResult, 0, len(*doc.Results))}
	for _, raw := range *doc.Results {
		result, skipped, ok := decodeResult(raw)
		if !ok {
			payload.Quarantined++
			continue
		}
		payload.QuarantinedComments += skipped
		payload.Results = append(payload.Results, result)
	}

	return payload, nil
}

func decodeResult(raw json.RawMessage) (RoomResult, int, bool) {
	var top fields
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return RoomResult{}, 0, false
	}
	room, ok := top.object("room")
	if !ok {
		return RoomResult{}, 0, false
	}
	id, ok := room.num("id")
	if !ok {
		return RoomResult{}, 0, false
	}

	rawParticipants := room.array("participant")
	participants := make([]Participant, 0, len(rawParticipants))
	for _, p := range rawParticipants {
		participants = append(participants, Participant(p))
	}

	rawComments := top.array("comments")
	comments := make([]Message, 0, len(rawComments))
	skipped := 0
	for _, c := range rawComments {
		msg, ok := decodeComment(c)
		if !ok {
			skipped++
			continue
		}
		comments = append(comments, msg)
	}

	return RoomResult{
		Room: Room{
			ID:           id,
			Name:         room.str("name"),
			ImageURL:     room.str("image_url"),
			Participants: participants,
		},
		Comments: comments,
	}, skipped, true
}

func decodeComment(raw json.RawMessage) (Message, bool) {
	var c fields
	if err := json.Unmarshal(raw, &c); err != nil || c == nil {
		return Message{}, false
	}

	id, _ := c.num("id")
	kind := c.str("type")
	return Message{
		ID:       id,
		Sender:   c.str("sender"),
		Kind:     ParseKind(kind),
		RawKind:  kind,
		Text:     c.str("message"),
		URL:      c.str("url"),
		Caption:  c.str("caption"),
		Filename: c.str("filename"),
	}, true
}

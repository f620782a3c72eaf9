package chat

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saravenpi/chatview/internal/models"
)

func twoRooms() *models.Payload {
	return &models.Payload{Results: []models.RoomResult{
		{
			Room: models.Room{ID: 1, Name: "Team", Participants: []models.Participant{models.Participant(`{}`), models.Participant(`{}`)}},
			Comments: []models.Message{
				{ID: 10, Sender: "Alice", Kind: models.KindText, Text: "hi"},
			},
		},
		{
			Room: models.Room{ID: 2, Name: "Design", Participants: []models.Participant{models.Participant(`{"name":"Carol"}`)}},
			Comments: []models.Message{
				{ID: 20, Sender: "Carol", Kind: models.KindImage, URL: "https://x/mock.png", Caption: "v2"},
				{ID: 21, Sender: "Carol", Kind: models.KindPDF, URL: "https://x/brief.pdf", Filename: "brief.pdf"},
			},
		},
	}}
}

func TestLoad_SelectsFirstRoom(t *testing.T) {
	s := New("")
	payload := twoRooms()
	s.Load(payload)

	require.Len(t, s.Chats, 2)
	assert.Equal(t, int64(1), s.Chats[0].ID)
	assert.Equal(t, int64(2), s.Chats[1].ID)
	assert.True(t, s.HasSelected)
	assert.Equal(t, int64(1), s.Selected)
	assert.Equal(t, payload.Results[0].Comments, s.Messages)
	assert.Equal(t, payload.Results[0].Room.Participants, s.Participants)
	assert.True(t, s.Loaded)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Team", current.Name)
}

func TestLoad_Empty(t *testing.T) {
	s := New("")
	s.Load(&models.Payload{Results: []models.RoomResult{}})

	assert.Empty(t, s.Chats)
	assert.False(t, s.HasSelected)
	assert.Empty(t, s.Messages)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestApply_FailureKeepsPreLoadState(t *testing.T) {
	s := New("")
	boom := errors.New("connection refused")
	s.Apply(LoadResult{Err: boom})

	assert.ErrorIs(t, s.LoadErr, boom)
	assert.False(t, s.Loaded)
	assert.Empty(t, s.Chats)
	assert.False(t, s.HasSelected)
}

func TestApply_Success(t *testing.T) {
	s := New("")
	s.Apply(LoadResult{Payload: twoRooms()})

	assert.NoError(t, s.LoadErr)
	assert.Len(t, s.Chats, 2)
	assert.Equal(t, int64(1), s.Selected)
}

func TestSelect_KnownRoom(t *testing.T) {
	s := New("")
	payload := twoRooms()
	s.Load(payload)

	s.Select(2)
	assert.Equal(t, int64(2), s.Selected)
	assert.Equal(t, payload.Results[1].Comments, s.Messages)
	assert.Equal(t, payload.Results[1].Room.Participants, s.Participants)

	s.Select(2)
	assert.Equal(t, payload.Results[1].Comments, s.Messages)
}

func TestSelect_UnknownRoomKeepsStaleData(t *testing.T) {
	s := New("")
	payload := twoRooms()
	s.Load(payload)

	s.Select(99)
	assert.Equal(t, int64(99), s.Selected)
	assert.True(t, s.HasSelected)
	assert.Equal(t, payload.Results[0].Comments, s.Messages)
	assert.Equal(t, payload.Results[0].Room.Participants, s.Participants)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSend_AppendsLocalMessage(t *testing.T) {
	s := New("")
	s.Load(twoRooms())
	s.SetDraft("  hello there ")

	now := time.UnixMilli(1700000000123)
	msg, err := s.Send(now)
	require.NoError(t, err)

	require.Len(t, s.Messages, 2)
	assert.Equal(t, msg, s.Messages[1])
	assert.Equal(t, int64(1700000000123), msg.ID)
	assert.Equal(t, DefaultLocalSender, msg.Sender)
	assert.Equal(t, models.KindText, msg.Kind)
	assert.Equal(t, "  hello there ", msg.Text)
	assert.Equal(t, "", s.Draft)
}

func TestSend_DoesNotTouchSourceOrSummaries(t *testing.T) {
	s := New("Me")
	s.Load(twoRooms())
	s.SetDraft("mine")

	_, err := s.Send(time.Now())
	require.NoError(t, err)

	assert.Len(t, s.Results[0].Comments, 1)
	assert.Equal(t, int64(10), s.Chats[0].LastMessage.ID)
	assert.Equal(t, "Me", s.Messages[1].Sender)

	s.Select(1)
	assert.Len(t, s.Messages, 1)
}

func TestSend_Rejected(t *testing.T) {
	for _, draft := range []string{"", "   ", "\t\n"} {
		s := New("")
		s.Load(twoRooms())
		s.SetDraft(draft)

		_, err := s.Send(time.Now())
		assert.ErrorIs(t, err, ErrEmptyDraft, "draft %q", draft)
		assert.Len(t, s.Messages, 1)
		assert.Equal(t, draft, s.Draft)
	}

	s := New("")
	s.SetDraft("hello")
	_, err := s.Send(time.Now())
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Empty(t, s.Messages)
	assert.Equal(t, "hello", s.Draft)
}

func TestExamplePayload(t *testing.T) {
	body := `{"results":[{"room":{"id":1,"name":"Team","image_url":"","participant":[{}, {}]},"comments":[{"id":10,"sender":"Alice","type":"text","message":"hi"}]}]}`
	payload, err := models.DecodePayload(strings.NewReader(body))
	require.NoError(t, err)

	s := New("")
	s.Apply(LoadResult{Payload: payload})

	require.Len(t, s.Chats, 1)
	chat := s.Chats[0]
	assert.Equal(t, int64(1), chat.ID)
	assert.Equal(t, "Team", chat.Name)
	assert.Equal(t, 2, chat.MemberCount)
	require.NotNil(t, chat.LastMessage)
	assert.Equal(t, "hi", chat.LastMessage.Text)
	assert.Equal(t, int64(1), s.Selected)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, models.Message{ID: 10, Sender: "Alice", Kind: models.KindText, RawKind: "text", Text: "hi"}, s.Messages[0])
}

func TestSend_RoomWithZeroID(t *testing.T) {
	s := New("")
	s.Load(&models.Payload{Results: []models.RoomResult{{Room: models.Room{ID: 0, Name: "Lobby"}}}})
	s.SetDraft("first")

	_, err := s.Send(time.Now())
	require.NoError(t, err)
	assert.Len(t, s.Messages, 1)
}

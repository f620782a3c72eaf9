package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	results := []RoomResult{
		{
			Room: Room{ID: 1, Name: "Team", ImageURL: "https://x/t.png", Participants: []Participant{Participant(`{}`), Participant(`{}`)}},
			Comments: []Message{
				{ID: 10, Sender: "Alice", Kind: KindText, Text: "hi"},
				{ID: 11, Sender: "Bob", Kind: KindPDF, Filename: "plan.pdf"},
			},
		},
		{Room: Room{ID: 2, Name: "Empty"}},
	}

	summaries := Summarize(results)
	require.Len(t, summaries, 2)

	assert.Equal(t, int64(1), summaries[0].ID)
	assert.Equal(t, "https://x/t.png", summaries[0].Avatar)
	assert.Equal(t, 2, summaries[0].MemberCount)
	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, int64(11), summaries[0].LastMessage.ID)
	assert.Equal(t, "plan.pdf", summaries[0].Preview())

	assert.Nil(t, summaries[1].LastMessage)
	assert.Equal(t, "", summaries[1].Preview())
	assert.Equal(t, 0, summaries[1].MemberCount)
}

func TestChatSummary_Preview(t *testing.T) {
	text := Message{Kind: KindText, Text: "hello"}
	video := Message{Kind: KindVideo, URL: "https://x/v.mp4"}

	assert.Equal(t, "hello", ChatSummary{LastMessage: &text}.Preview())
	assert.Equal(t, "", ChatSummary{LastMessage: &video}.Preview())
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "T", Initial("team"))
	assert.Equal(t, "É", Initial("  équipe"))
	assert.Equal(t, "?", Initial(""))
}

func TestParticipant_Label(t *testing.T) {
	assert.Equal(t, "Alice", Participant(`{"id":"a1","name":"Alice"}`).Label())
	assert.Equal(t, "bob@example.com", Participant(`{"email":"bob@example.com"}`).Label())
	assert.Equal(t, "42", Participant(`{"id":42}`).Label())
	assert.Equal(t, "{}", Participant(`{ }`).Label())
	assert.Equal(t, `"carol"`, Participant(`"carol"`).Label())
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindText, ParseKind("text"))
	assert.Equal(t, KindVideo, ParseKind("video"))
	assert.Equal(t, KindUnknown, ParseKind("TEXT"))
	assert.Equal(t, KindUnknown, ParseKind(""))
}

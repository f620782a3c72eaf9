package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/saravenpi/chatview/internal/models"
)

// renderHeader draws the active conversation's title row.
func renderHeader(chat models.ChatSummary, members, width int) string {
	left := fmt.Sprintf("%s %s", avatar(chat.Name), titleStyle.Render(chat.Name))
	sub := messageHeaderStyle.Render(memberCount(members))
	icons := iconStyle.Render("⌕  ✆  ▶  ⓘ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(icons)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + icons + "\n" + sub
}

func memberCount(n int) string {
	if n == 1 {
		return "1 member"
	}
	return fmt.Sprintf("%d members", n)
}

func renderMessages(messages []models.Message, localSender string, width int) string {
	if width <= 0 {
		width = 80
	}

	var content strings.Builder
	for i, message := range messages {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(renderMessage(message, localSender, width))
		content.WriteString("\n")
	}
	return content.String()
}

// renderMessage lays out one message: right-aligned for the local sender,
// left-aligned with the sender's initial and name for everyone else.
func renderMessage(message models.Message, localSender string, width int) string {
	bubbleWidth := width - 10
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}
	body := renderBody(message, bubbleWidth)

	if message.IsFrom(localSender) {
		right := lipgloss.NewStyle().Align(lipgloss.Right).Width(width)
		header := right.Render(messageHeaderStyle.Render(message.Sender))
		if body == "" {
			return header
		}
		return header + "\n" + right.Render(messageFromMeStyle.Render(body))
	}

	header := fmt.Sprintf("%s %s", avatar(message.Sender), messageHeaderStyle.Render(message.Sender))
	if body == "" {
		return header
	}
	return header + "\n" + messageFromOtherStyle.Render(body)
}

// renderBody switches on the message kind. Unknown kinds render nothing.
func renderBody(message models.Message, width int) string {
	switch message.Kind {
	case models.KindText:
		return wordwrap.String(message.Text, width)

	case models.KindImage:
		s := "🖼  " + hyperlink(message.URL, message.URL)
		if message.Caption != "" {
			s += "\n" + captionStyle.Render(wordwrap.String(message.Caption, width))
		}
		return s

	case models.KindPDF:
		name := message.Filename
		if name == "" {
			name = message.URL
		}
		return "📄 " + hyperlink(message.URL, name)

	case models.KindVideo:
		return "▶  " + hyperlink(message.URL, message.URL)
	}

	return ""
}

func hyperlink(url, text string) string {
	if url == "" {
		return text
	}
	return termenv.Hyperlink(url, linkStyle.Render(text))
}

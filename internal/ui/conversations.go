package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/saravenpi/chatview/internal/models"
)

const previewWidth = 50

type chatItem struct {
	chat     models.ChatSummary
	selected bool
}

func (i chatItem) Title() string {
	marker := "  "
	if i.selected {
		marker = "● "
	}
	return fmt.Sprintf("%s%s %s", marker, avatar(i.chat.Name), i.chat.Name)
}

func (i chatItem) Description() string {
	return "  " + truncate.StringWithTail(i.chat.Preview(), previewWidth, "...")
}

func (i chatItem) FilterValue() string {
	return i.chat.Name
}

// avatar is the text stand-in for a room or sender picture.
func avatar(name string) string {
	return badgeStyle.Render(models.Initial(name))
}

func newChatList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("5")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New([]list.Item{}, delegate, 32, 20)
	l.Title = "All Messages"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return l
}

func chatItems(chats []models.ChatSummary, selected int64, hasSelected bool) []list.Item {
	items := make([]list.Item, len(chats))
	for i, chat := range chats {
		items[i] = chatItem{chat: chat, selected: hasSelected && chat.ID == selected}
	}
	return items
}

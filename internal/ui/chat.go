package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/saravenpi/chatview/internal/chat"
	"github.com/saravenpi/chatview/internal/feed"
	"github.com/saravenpi/chatview/internal/logging"
	"github.com/saravenpi/chatview/internal/models"
)

type focus int

const (
	focusList focus = iota
	focusComposer
)

type chatsLoadedMsg struct {
	result chat.LoadResult
}

type Options struct {
	Context     context.Context
	Source      feed.Source
	LocalSender string
	Logger      *log.Logger
	Now         func() time.Time
}

type ChatModel struct {
	ctx      context.Context
	source   feed.Source
	logger   *log.Logger
	now      func() time.Time
	loadOnce *sync.Once

	state    *chat.State
	loading  bool
	focus    focus
	list     list.Model
	viewport viewport.Model
	composer textinput.Model
	spinner  spinner.Model

	windowWidth  int
	windowHeight int
}

// NewChatModel creates the viewer. Nothing is fetched until Init runs.
func NewChatModel(opts Options) ChatModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	vp := viewport.New(60, 20)

	ti := textinput.New()
	ti.Placeholder = "Type a message"
	ti.Prompt = ""
	ti.CharLimit = 1000
	ti.Width = 40

	m := ChatModel{
		ctx:          opts.Context,
		source:       opts.Source,
		logger:       opts.Logger,
		now:          opts.Now,
		loadOnce:     &sync.Once{},
		state:        chat.New(opts.LocalSender),
		loading:      true,
		list:         newChatList(),
		viewport:     vp,
		composer:     ti,
		spinner:      s,
		windowWidth:  100,
		windowHeight: 30,
	}
	m.resize()
	return m
}

func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchChatsCmd())
}

// fetchChatsCmd returns the load command the first time it is called and nil
// afterwards, so a model only ever loads once.
func (m ChatModel) fetchChatsCmd() tea.Cmd {
	var cmd tea.Cmd
	m.loadOnce.Do(func() {
		ctx, source, logger := m.ctx, m.source, m.logger
		cmd = func() tea.Msg {
			if source == nil {
				return chatsLoadedMsg{result: chat.LoadResult{Err: fmt.Errorf("no chat source configured")}}
			}
			logger.Debug("loading chats", "source", source.Name())
			payload, err := source.Load(ctx)
			return chatsLoadedMsg{result: chat.LoadResult{Payload: payload, Err: err}}
		}
	})
	return cmd
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.resize()
		m.updateViewportContent()
		return m, nil

	case chatsLoadedMsg:
		m.loading = false
		if m.state.Loaded || m.state.LoadErr != nil {
			return m, nil
		}

		m.state.Apply(msg.result)
		if m.state.LoadErr != nil {
			m.logger.Error("failed to load chats", "err", m.state.LoadErr)
			return m, nil
		}

		m.logger.Info("chats loaded",
			"chats", len(m.state.Chats),
			"quarantined", msg.result.Payload.Quarantined,
			"quarantined_comments", msg.result.Payload.QuarantinedComments)
		m.refreshList()
		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ChatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+s":
		m.send()
		return m, nil

	case "tab", "shift+tab":
		if m.list.FilterState() == list.Filtering {
			break
		}
		return m, m.toggleFocus()

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.focus == focusComposer {
		switch msg.String() {
		case "enter":
			m.send()
			return m, nil
		case "esc":
			return m, m.toggleFocus()
		}

		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		m.state.SetDraft(m.composer.Value())
		return m, cmd
	}

	if m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "q", "esc":
			if m.list.FilterState() == list.FilterApplied && msg.String() == "esc" {
				break
			}
			return m, tea.Quit

		case "enter", " ":
			if item, ok := m.list.SelectedItem().(chatItem); ok {
				m.selectChat(item.chat.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *ChatModel) toggleFocus() tea.Cmd {
	if m.focus == focusComposer {
		m.focus = focusList
		m.composer.Blur()
		return nil
	}
	if _, ok := m.state.Current(); !ok {
		return nil
	}
	m.focus = focusComposer
	return m.composer.Focus()
}

func (m *ChatModel) selectChat(id int64) {
	m.state.Select(id)
	m.logger.Debug("chat selected", "id", id, "messages", len(m.state.Messages))
	m.refreshList()
	m.updateViewportContent()
	m.viewport.GotoBottom()
}

func (m *ChatModel) send() {
	m.state.SetDraft(m.composer.Value())
	sent, err := m.state.Send(m.now())
	if err != nil {
		m.logger.Debug("message not sent", "err", err)
		return
	}

	m.logger.Debug("message appended", "id", sent.ID, "chat", m.state.Selected)
	m.composer.Reset()
	m.updateViewportContent()
	m.viewport.GotoBottom()
}

func (m *ChatModel) refreshList() {
	index := m.list.Index()
	m.list.SetItems(chatItems(m.state.Chats, m.state.Selected, m.state.HasSelected))
	m.list.Title = fmt.Sprintf("All Messages - %d chats", len(m.state.Chats))
	m.list.Select(index)
}

func (m *ChatModel) listWidth() int {
	w := m.windowWidth / 3
	if w > 40 {
		w = 40
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *ChatModel) panelWidth() int {
	w := m.windowWidth - m.listWidth() - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *ChatModel) resize() {
	headerHeight := 3
	composerHeight := 2
	helpHeight := 1
	borders := 2

	m.list.SetSize(m.listWidth(), m.windowHeight-helpHeight-borders)

	m.viewport.Width = m.panelWidth()
	height := m.windowHeight - headerHeight - composerHeight - helpHeight - borders
	if height < 3 {
		height = 3
	}
	m.viewport.Height = height

	composerWidth := m.panelWidth() - lipgloss.Width(composerIcons) - lipgloss.Width(sendStyle.Render("Send")) - 3
	if composerWidth < 10 {
		composerWidth = 10
	}
	m.composer.Width = composerWidth
}

func (m *ChatModel) updateViewportContent() {
	if _, ok := m.state.Current(); !ok {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(renderMessages(m.state.Messages, m.state.LocalSender, m.viewport.Width))
}

const composerIcons = "📎 😊 🎤"

func (m ChatModel) View() string {
	left := m.listView()
	right := m.panelView()

	leftStyle, rightStyle := paneStyle, paneStyle
	if m.focus == focusList {
		leftStyle = focusedPaneStyle
	} else {
		rightStyle = focusedPaneStyle
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Width(m.listWidth()).Render(left),
		rightStyle.Width(m.panelWidth()).Render(right),
	)
	return body + "\n" + m.helpView()
}

func (m ChatModel) listView() string {
	if m.loading {
		return fmt.Sprintf("\n %s Loading conversations...\n", m.spinner.View())
	}
	if len(m.state.Chats) == 0 {
		return titleStyle.Render("All Messages") + "\n\n" + normalStyle.Render(" No conversations.")
	}
	return m.list.View()
}

func (m ChatModel) panelView() string {
	current, ok := m.state.Current()
	if !ok {
		return ""
	}

	header := renderHeader(current, len(m.state.Participants), m.panelWidth())
	composer := iconStyle.Render(composerIcons) + " " + m.composer.View() + " " + sendStyle.Render("Send")
	return header + "\n" + m.viewport.View() + "\n" + composer
}

func (m ChatModel) helpView() string {
	if m.state.LoadErr != nil {
		return errorStyle.Render("Could not load conversations") + " " + helpStyle.Render("q: quit")
	}
	if m.focus == focusComposer {
		return helpStyle.Render("enter/ctrl+s: send • pgup/pgdown: scroll • tab/esc: conversations • ctrl+c: quit")
	}
	return helpStyle.Render("↑↓/jk: navigate • enter: open • /: search • tab: compose • q: quit")
}

// State exposes the viewer state, read-only by convention.
func (m ChatModel) State() *chat.State {
	return m.state
}

// ActiveChat reports the chat shown in the panel.
func (m ChatModel) ActiveChat() (models.ChatSummary, bool) {
	return m.state.Current()
}

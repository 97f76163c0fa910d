package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luma-ui/statekit/mutation"
	"github.com/luma-ui/statekit/observe"
	"github.com/luma-ui/statekit/store"
)

type boardChangedMsg observe.Change

type profileMsg mutation.State[*Profile]

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

var cannedTitles = []string{
	"review the queue",
	"refill the coffee",
	"close stale issues",
	"write release notes",
}

// model is the bubbletea view over the board store and profile mutation.
// It holds no task state of its own; every render reads the store.
type model struct {
	ctx     context.Context
	board   *Board
	history *observe.History

	boardFeed   *observe.Feed[observe.Change]
	profileFeed *observe.Feed[mutation.State[*Profile]]

	spin      spinner.Model
	width     int
	addCursor int
	quitting  bool
}

func newModel(ctx context.Context, board *Board, history *observe.History) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return model{
		ctx:         ctx,
		board:       board,
		history:     history,
		boardFeed:   board.Watch(ctx),
		profileFeed: board.Profile.Watch(ctx, 8),
		spin:        sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForBoard(m.ctx, m.boardFeed),
		waitForProfile(m.ctx, m.profileFeed),
	)
}

func waitForBoard(ctx context.Context, feed *observe.Feed[observe.Change]) tea.Cmd {
	return func() tea.Msg {
		change, err := feed.Receive(ctx)
		if err != nil {
			return nil
		}
		return boardChangedMsg(change)
	}
}

func waitForProfile(ctx context.Context, feed *observe.Feed[mutation.State[*Profile]]) tea.Cmd {
	return func() tea.Msg {
		state, err := feed.Receive(ctx)
		if err != nil {
			return nil
		}
		return profileMsg(state)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case boardChangedMsg:
		return m, waitForBoard(m.ctx, m.boardFeed)
	case profileMsg:
		cmd := waitForProfile(m.ctx, m.profileFeed)
		if mutation.State[*Profile](msg).Status == mutation.StatusLoading {
			return m, tea.Batch(cmd, m.spin.Tick)
		}
		return m, cmd
	case spinner.TickMsg:
		if m.board.Profile.State().Status != mutation.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "a":
		title := cannedTitles[m.addCursor%len(cannedTitles)]
		m.addCursor++
		m.board.AddTask(title)
	case " ", "x":
		m.board.ToggleDone()
	case "j", "down":
		m.board.MoveCursor(1)
	case "k", "up":
		m.board.MoveCursor(-1)
	case "f":
		m.board.CycleFilter()
	case "p":
		board, ctx := m.board, m.ctx
		return m, func() tea.Msg {
			board.Profile.Call(ctx)
			return nil
		}
	case "r":
		m.board.Profile.Reset()
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	s := m.board.Store().State()
	visible := m.board.VisibleTasks()

	var b strings.Builder
	b.WriteString(titleStyle.Render("statekit demo") + "\n\n")

	b.WriteString(faintStyle.Render(fmt.Sprintf("filter: %s", s.Filter)) + "\n")
	if len(visible) == 0 {
		b.WriteString(faintStyle.Render("  (no tasks)") + "\n")
	}
	for i, t := range visible {
		marker := "  "
		if i == s.Cursor {
			marker = cursorStyle.Render("> ")
		}
		check := "[ ]"
		title := t.Title
		if t.Done {
			check = "[x]"
			title = doneStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, check, title))
	}

	if stats, err := store.Get(m.board.Store(), statsKind); err == nil {
		b.WriteString(faintStyle.Render(
			fmt.Sprintf("\n%d total, %d open, %d done", stats.Total, stats.Open, stats.Done),
		) + "\n")
	}

	b.WriteString("\n" + panelStyle.Render(m.profileView()) + "\n")

	snapshot := m.history.Metrics()
	b.WriteString(faintStyle.Render(fmt.Sprintf(
		"history %d/%d records, %d changes observed",
		m.history.Len(), m.history.Limit(), snapshot.ChangesObserved,
	)) + "\n")

	b.WriteString(faintStyle.Render("a add  space toggle  j/k move  f filter  p profile  r reset  q quit") + "\n")
	return b.String()
}

func (m model) profileView() string {
	return mutation.Fold(m.board.Profile.State(),
		func() string { return "profile: press p to load" },
		func() string { return m.spin.View() + " loading profile" },
		func(p *Profile) string {
			return fmt.Sprintf("profile: %s <%s>\njoined %s", p.Name, p.Email, p.Joined.Format("Jan 2006"))
		},
		func() string { return "profile: no profile on record" },
		func(err error) string { return errStyle.Render("profile: " + err.Error()) },
	)
}

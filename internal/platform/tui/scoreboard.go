package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/registry"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

const maxRows = 100 // rows loaded per view

// scoreboardView selects what the table lists.
type scoreboardView int

const (
	viewScores  scoreboardView = iota // best scores first
	viewHistory                       // resolve stats of recent games, newest first
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	View     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.View, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.View, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextMode: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev mode")),
		View:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "scores/history")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTab    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	frameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardModel lists high scores and per-game resolve history for each
// registered mode.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	view       scoreboardView
	store      *storage.Store
	scores     []storage.ScoreEntry
	history    []storage.ResolveRecord
	totals     *storage.ResolveTotals // nil when nothing was recorded
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a new scoreboard model. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// columns returns the table columns of the current view.
func (m *ScoreboardModel) columns() []table.Column {
	if m.view == viewHistory {
		return []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Score", Width: 8},
			{Title: "Swaps", Width: 6},
			{Title: "Chain", Width: 6},
			{Title: "Bombs", Width: 6},
			{Title: "Tiles", Width: 6},
		}
	}
	dateW := core.Clamp(m.width-30, 12, 20)
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Date", Width: dateW},
	}
}

// reload fetches the rows of the selected mode and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.scores, m.history, m.totals = nil, nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.gameCursor].ID
		if scores, err := m.store.TopScores(id, maxRows); err == nil {
			m.scores = scores
		}
		if history, err := m.store.RecentResolveStats(id, maxRows); err == nil {
			m.history = history
		}
		if totals, err := m.store.ResolveTotals(id); err == nil && totals.Games > 0 {
			m.totals = totals
		}
	}

	var rows []table.Row
	if m.view == viewHistory {
		for _, r := range m.history {
			rows = append(rows, table.Row{
				r.CreatedAt.Format("Jan 02 15:04"),
				fmt.Sprint(r.Score),
				fmt.Sprint(r.Stats.Swaps),
				fmt.Sprintf("x%d", r.Stats.MaxChain),
				fmt.Sprint(r.Stats.BombsDetonated),
				fmt.Sprint(r.Stats.TilesDestroyed),
			})
		}
	} else {
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprint(s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)
	m.table = t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.switchMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.switchMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchMode(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "HIGH SCORES"
	if m.view == viewHistory {
		heading = "RECENT GAMES"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(heading), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = activeTab.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerBlock(frameStyle.Render(m.tableContent()), m.width))
	b.WriteString("\n")

	if m.totals != nil {
		b.WriteString("\n")
		b.WriteString(centerText(summaryStyle.Render(resolveSummary(m.totals)), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m ScoreboardModel) tableContent() string {
	empty := len(m.scores) == 0
	if m.view == viewHistory {
		empty = len(m.history) == 0
	}
	if empty {
		return emptyStyle.Render("Nothing recorded yet.\nFinish a game to fill this table.")
	}
	return m.table.View()
}

// centerBlock centers every line of a multi-line block by the width of its
// widest line.
func centerBlock(block string, width int) string {
	pad := (width - lipgloss.Width(block)) / 2
	if pad <= 0 {
		return block
	}
	prefix := strings.Repeat(" ", pad)
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// resolveSummary formats lifetime resolver totals in one line.
func resolveSummary(t *storage.ResolveTotals) string {
	return fmt.Sprintf("Games %d | Best chain x%d | Bombs %d | Tiles %d | Cascades/swap %.2f",
		t.Games, t.BestChain, t.BombsDetonated, t.TilesDestroyed, t.CascadeRate())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/turn-timer/internal/engine"
	"github.com/tatianab/turn-timer/internal/models"
)

type inputMode int

const (
	modeTimer inputMode = iota
	modeAddPlayer
	modeScore
)

type model struct {
	session  *engine.Session
	now      func() time.Time
	clock    time.Time
	mode     inputMode
	input    textinput.Model
	viewport viewport.Model
	status   string
	width    int
	height   int
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	timerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	logStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F65EB0"))
)

// namedColors maps the plain color tags of the default roster to hex values.
var namedColors = map[string]string{
	"gray":   "#9E9E9E",
	"red":    "#C62730",
	"blue":   "#477B9F",
	"green":  "#3F5D2B",
	"yellow": "#F9C300",
	"white":  "#C0C6CB",
	"black":  "#3D3D3D",
	"brown":  "#BE6C16",
	"pink":   "#F65EB0",
	"orange": "#F2802C",
}

// NewModel returns the frontend for session. now supplies the timestamps
// dispatched with time-sensitive actions.
func NewModel(session *engine.Session, now func() time.Time) model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40

	return model{
		session:  session,
		now:      now,
		clock:    now(),
		input:    ti,
		viewport: viewport.New(40, 10),
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// Display only; the session is not touched.
		m.clock = time.Time(msg)
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width / 3
		m.viewport.Height = max(msg.Height-10, 3)
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode != modeTimer {
			return m.updateInput(msg)
		}
		return m.updateTimer(msg)
	}
	return m, nil
}

func (m model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.session.State()
	m.status = ""

	switch msg.Type {
	case tea.KeySpace:
		if _, ok := engine.ActiveTurn(state); ok {
			m.dispatch(engine.EndPlayerTurn{At: m.now(), Kind: engine.SuggestedEndKind(state)})
		} else {
			m.dispatch(engine.StartRound{At: m.now()})
		}
	case tea.KeyEnter:
		if _, ok := engine.ActiveTurn(state); ok {
			m.dispatch(engine.EndPlayerTurn{At: m.now(), Kind: models.TurnPass})
		}
	case tea.KeyCtrlZ:
		m.dispatch(engine.Undo{})
	case tea.KeyCtrlY:
		m.dispatch(engine.Redo{})
	case tea.KeyTab:
		if id, ok := nextFocus(state); ok {
			m.dispatch(engine.FocusPlayer{PlayerID: id})
		}
	case tea.KeyEsc:
		m.dispatch(engine.BlurPlayer{})
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit
		case "u":
			m.dispatch(engine.Undo{})
		case "r":
			m.dispatch(engine.Redo{})
		case "R":
			m.dispatch(engine.Reset{})
		case "a":
			if engine.CurrentPhase(state) != engine.PhaseNotStarted {
				m.status = "players can only join before the first round"
				break
			}
			return m.openInput(modeAddPlayer, "name [color] [faction]")
		case "s":
			if state.FocusedPlayerID == "" {
				m.status = "press tab to pick a player first"
				break
			}
			return m.openInput(modeScore, "category value")
		}
	}
	return m, nil
}

func (m model) openInput(mode inputMode, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m, m.input.Focus()
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeTimer
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = modeTimer
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		var (
			action engine.Action
			err    error
		)
		if mode == modeAddPlayer {
			action, err = parseAddPlayer(value)
		} else {
			action, err = parseScore(m.session.State().FocusedPlayerID, value)
		}
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.dispatch(action)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) dispatch(a engine.Action) {
	m.session.Dispatch(a)
	m.clock = m.now()
	m.refreshLog()
}

func (m *model) refreshLog() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

// parseAddPlayer reads "name [color] [faction]".
func parseAddPlayer(value string) (engine.Action, error) {
	fields := strings.Fields(value)
	a := engine.AddPlayer{Name: fields[0], Color: "gray"}
	if len(fields) > 1 {
		a.Color = fields[1]
	}
	if len(fields) > 2 {
		f, ok := models.FactionByID(fields[2])
		if !ok {
			return nil, fmt.Errorf("unknown faction %q", fields[2])
		}
		a.Faction = f.ID
	}
	return a, nil
}

// parseScore reads "category value".
func parseScore(playerID, value string) (engine.Action, error) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return nil, fmt.Errorf("expected: category value")
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("score must be a number, got %q", fields[1])
	}
	return engine.UpdatePlayerScore{PlayerID: playerID, Category: fields[0], Value: n}, nil
}

// nextFocus cycles the focus through the players in roster order.
func nextFocus(s *models.State) (string, bool) {
	if len(s.Players) == 0 {
		return "", false
	}
	for i, p := range s.Players {
		if p.ID == s.FocusedPlayerID {
			return s.Players[(i+1)%len(s.Players)].ID, true
		}
	}
	return s.Players[0].ID, true
}

func (m model) View() string {
	state := m.session.State()
	if engine.IsGameOver(state) {
		return m.renderGameOver(state)
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(state),
		"",
		m.renderTurn(state),
		"",
		titleStyle.Render("NEXT ROUND"),
		m.renderNextRound(state),
		"",
		m.renderScores(state),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", logStyle.Render(m.viewport.View()))

	var footer string
	if m.mode != modeTimer {
		footer = m.input.View()
	} else {
		footer = helpStyle.Render(m.help(state))
	}
	if m.status != "" {
		footer += "\n" + statusStyle.Render(m.status)
	}
	return "\n" + body + "\n\n" + footer + "\n"
}

func (m model) renderHeader(state *models.State) string {
	round, started := engine.ActiveRound(state)
	label := fmt.Sprintf("ROUND %d", engine.NextRoundIndex(state)+1)
	order := []string(nil)
	if started {
		label = fmt.Sprintf("ROUND %d", state.ActiveRoundIndex+1)
		order = round.PlayerOrder
	} else if next, ok := engine.NextRound(state); ok {
		order = next.PlayerOrder
	}

	_, open := engine.ActiveTurn(state)
	markers := make([]string, 0, len(order))
	for i, id := range order {
		p, ok := engine.PlayerByID(state, id)
		if !ok {
			continue
		}
		active := started && open && i == state.ActivePlayerIndex
		markers = append(markers, marker(p, active, started && engine.HasPlayerPassed(state, id), p.ID == state.FocusedPlayerID))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(label),
		lipgloss.JoinHorizontal(lipgloss.Top, markers...),
	)
}

func (m model) renderTurn(state *models.State) string {
	turn, ok := engine.ActiveTurn(state)
	if !ok {
		if engine.CurrentPhase(state) == engine.PhaseRoundEnded {
			return fmt.Sprintf("Round %d is over. Ready for round %d?", state.ActiveRoundIndex+1, engine.NextRoundIndex(state)+1)
		}
		return "Ready to play?"
	}
	p, _ := engine.ActivePlayer(state)
	elapsed := engine.TurnElapsed(turn, m.clock)
	return fmt.Sprintf("%s, you're up  %s", p.Name, timerStyle.Render(formatClock(elapsed)))
}

func (m model) renderNextRound(state *models.State) string {
	next, ok := engine.NextRound(state)
	if !ok || state.ActiveRoundIndex == models.NoRound {
		return helpStyle.Render("(order follows pass order)")
	}
	markers := make([]string, 0, len(next.PlayerOrder))
	for _, id := range next.PlayerOrder {
		if p, ok := engine.PlayerByID(state, id); ok {
			markers = append(markers, marker(p, false, false, false))
		}
	}
	if len(markers) == 0 {
		return helpStyle.Render("(nobody has passed yet)")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, markers...)
}

func (m model) renderScores(state *models.State) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("PLAYERS") + "\n")
	for _, p := range state.Players {
		line := fmt.Sprintf("%-12s %s", p.Name, formatClock(engine.TotalPlayerTime(state, p.ID, m.clock)))
		if len(p.Score) > 0 {
			line += "  " + formatScore(p.Score)
		}
		if p.ID == state.FocusedPlayerID {
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m model) renderGameOver(state *models.State) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("GAME OVER") + "\n\n")
	for _, st := range engine.Standings(state, m.clock) {
		fmt.Fprintf(&b, "%s %-12s %s  %3d pts\n",
			marker(st.Player, false, false, false), st.Player.Name, formatClock(st.TotalTime), st.Points)
	}
	b.WriteString("\n" + helpStyle.Render("u: undo  R: new game  q: quit"))
	return "\n" + b.String() + "\n"
}

func (m model) renderLog() string {
	state := m.session.State()
	var b strings.Builder
	b.WriteString(titleStyle.Render("LOG") + "\n")
	for _, t := range state.Turns {
		p, _ := engine.PlayerByID(state, t.PlayerID)
		kind := string(t.Kind)
		if t.Open() {
			kind = "..."
		}
		fmt.Fprintf(&b, "R%d %-10s %-8s %s\n", t.RoundIndex+1, p.Name, kind, formatClock(engine.TurnElapsed(t, m.clock)))
	}
	return b.String()
}

func (m model) help(state *models.State) string {
	keys := []string{}
	switch engine.CurrentPhase(state) {
	case engine.PhaseNotStarted:
		keys = append(keys, "space: start round", "a: add player")
	case engine.PhaseRoundEnded:
		keys = append(keys, "space: start next round")
	default:
		keys = append(keys, "space: done", "enter: pass")
	}
	keys = append(keys, "tab: select", "s: score")
	if m.session.CanUndo() {
		keys = append(keys, "u: undo")
	}
	if m.session.CanRedo() {
		keys = append(keys, "r: redo")
	}
	keys = append(keys, "q: quit")
	return strings.Join(keys, "  ")
}

func marker(p models.Player, active, passed, focused bool) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(playerColor(p))).
		Padding(0, 1).
		MarginRight(1)
	label := p.Name
	if active {
		label = "▶ " + label
		style = style.Bold(true)
	}
	if passed {
		style = style.Faint(true).Strikethrough(true)
	}
	if focused {
		style = style.Underline(true)
	}
	return style.Render(label)
}

func playerColor(p models.Player) string {
	if f, ok := models.FactionByID(p.Faction); ok {
		return f.Color
	}
	if hex, ok := namedColors[p.Color]; ok {
		return hex
	}
	return p.Color
}

func formatScore(score map[string]int) string {
	keys := make([]string, 0, len(score))
	for k := range score {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, score[k]))
	}
	return strings.Join(parts, " ")
}

// formatClock renders d as HH:MM:SS.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(session *engine.Session) error {
	p := tea.NewProgram(NewModel(session, time.Now), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package tui is the terminal reel viewer: a bubbletea program that feeds
// keyboard and mouse input into a reel.Engine and renders the current and
// next dashboards with a vertical slide between them.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scout/internal/catalog"
	"scout/internal/dashboard"
	"scout/internal/reel"
	"scout/internal/store"
)

// frameInterval paces redraws while a slide is running.
const frameInterval = time.Second / 30

// Styles.
var (
	badgeStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	favStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	advanceStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	advanceDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dividerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// SnapshotLoader builds the dashboard snapshot for an entry.
type SnapshotLoader interface {
	Load(ctx context.Context, entry catalog.Entry) (*dashboard.Snapshot, error)
}

// Options configures a Model.
type Options struct {
	Engine    *reel.Engine
	Loader    SnapshotLoader
	Favorites store.FavoriteStore // nil disables the favorite key
	User      string
	WheelStep float64
	Log       *slog.Logger
	Now       func() time.Time
}

// Messages.
type tickMsg struct{ at time.Time }
type engineEventMsg reel.Event
type engineClosedMsg struct{}

type snapshotMsg struct {
	symbol string
	snap   *dashboard.Snapshot
	err    error
}

type favoritesLoadedMsg struct {
	symbols map[string]bool
	err     error
}

type favoriteToggleMsg struct {
	symbol string
	added  bool
	err    error
}

// Model is the bubbletea model for the reel viewer.
type Model struct {
	engine    *reel.Engine
	input     *reel.Dispatcher
	loader    SnapshotLoader
	favs      store.FavoriteStore
	user      string
	wheelStep float64
	log       *slog.Logger
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	subID  int
	events <-chan reel.Event

	snaps     map[string]*dashboard.Snapshot
	loading   map[string]bool
	favorites map[string]bool
	spin      spinner.Model

	ticking       bool
	width, height int
}

// New mounts opts.Engine on a fresh input dispatcher and returns the model.
// Call Close when the program exits.
func New(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	step := opts.WheelStep
	if step <= 0 {
		step = 40
	}

	input := reel.NewDispatcher()
	opts.Engine.Mount(input, now())
	id, ch := opts.Engine.Subscribe(16)
	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		engine:    opts.Engine,
		input:     input,
		loader:    opts.Loader,
		favs:      opts.Favorites,
		user:      opts.User,
		wheelStep: step,
		log:       log.With("component", "tui"),
		now:       now,
		ctx:       ctx,
		cancel:    cancel,
		subID:     id,
		events:    ch,
		snaps:     make(map[string]*dashboard.Snapshot),
		loading:   make(map[string]bool),
		favorites: make(map[string]bool),
		spin:      spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(statusStyle)),
		width:     80,
		height:    24,
	}
}

// Close cancels in-flight loads and unmounts the engine.
func (m Model) Close() {
	m.cancel()
	m.engine.Unsubscribe(m.subID)
	m.engine.Unmount()
}

func waitEvent(ch <-chan reel.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return engineClosedMsg{}
		}
		return engineEventMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitEvent(m.events), m.spin.Tick}
	cmds = append(cmds, m.prefetch()...)
	if m.favs != nil {
		favs, user, ctx := m.favs, m.user, m.ctx
		cmds = append(cmds, func() tea.Msg {
			list, err := favs.ListFavorites(ctx, user)
			syms := make(map[string]bool, len(list))
			for _, f := range list {
				syms[f.Symbol] = true
			}
			return favoritesLoadedMsg{symbols: syms, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Close()
			return m, tea.Quit
		case "f":
			return m, m.toggleFavorite()
		}
		m.input.Dispatch(reel.KeyInput{At: m.now(), Key: msg.String()})
		return m.afterInput()

	case tea.MouseMsg:
		now := m.now()
		switch {
		case msg.Button == tea.MouseButtonWheelDown:
			m.input.Dispatch(reel.WheelInput{At: now, DeltaY: m.wheelStep})
		case msg.Button == tea.MouseButtonWheelUp:
			m.input.Dispatch(reel.WheelInput{At: now, DeltaY: -m.wheelStep})
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == m.affordanceRow():
			m.input.Dispatch(reel.ClickInput{At: now, Target: reel.AdvanceTarget})
		default:
			return m, nil
		}
		return m.afterInput()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.ticking = false
		m.engine.Tick(msg.at)
		cmd := m.schedule()
		return m, cmd

	case engineEventMsg:
		m.log.Debug("reel event", "type", msg.Type, "position", msg.Position)
		cmds := []tea.Cmd{waitEvent(m.events)}
		if msg.Type == reel.EventAdvanced {
			m.prune()
			cmds = append(cmds, m.prefetch()...)
		}
		cmds = append(cmds, m.schedule())
		return m, tea.Batch(cmds...)

	case engineClosedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case snapshotMsg:
		delete(m.loading, msg.symbol)
		if msg.err != nil {
			m.log.Warn("loading snapshot", "symbol", msg.symbol, "error", msg.err)
			return m, nil
		}
		m.snaps[msg.symbol] = msg.snap
		return m, nil

	case favoritesLoadedMsg:
		if msg.err != nil {
			m.log.Warn("loading favorites", "error", msg.err)
			return m, nil
		}
		m.favorites = msg.symbols
		m.log.Info("favorites loaded", "symbols", len(msg.symbols))
		return m, nil

	case favoriteToggleMsg:
		if msg.err != nil {
			m.log.Warn("favorite toggle failed", "symbol", msg.symbol, "error", msg.err)
			// Revert optimistic update.
			if msg.added {
				delete(m.favorites, msg.symbol)
			} else {
				m.favorites[msg.symbol] = true
			}
			return m, nil
		}
		m.log.Info("favorite toggled", "symbol", msg.symbol, "added", msg.added)
		return m, nil
	}
	return m, nil
}

// afterInput prefetches for a possibly advanced position and keeps the tick
// loop running while the engine has deadlines.
func (m Model) afterInput() (tea.Model, tea.Cmd) {
	cmds := m.prefetch()
	cmds = append(cmds, m.schedule())
	cmd := tea.Batch(cmds...)
	return m, cmd
}

// schedule starts one tick when the engine has pending deadlines and no tick
// is already in flight. Mutates m; callers must return it.
func (m *Model) schedule() tea.Cmd {
	if m.ticking || !m.engine.Pending() {
		return nil
	}
	delay := frameInterval
	if at, ok := m.engine.NextDeadline(); ok {
		until := at.Sub(m.now())
		if !m.engine.Animating() || until < delay {
			delay = until
		}
	}
	delay = max(delay, time.Millisecond)
	m.ticking = true
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return tickMsg{at: t}
	})
}

// prefetch starts loads for the current and next entries that are neither
// cached nor in flight.
func (m Model) prefetch() []tea.Cmd {
	if m.loader == nil {
		return nil
	}
	cur, next := m.engine.Visible()
	var cmds []tea.Cmd
	for _, e := range []catalog.Entry{cur, next} {
		if e.IsZero() || m.snaps[e.Symbol] != nil || m.loading[e.Symbol] {
			continue
		}
		m.loading[e.Symbol] = true
		entry, loader, ctx := e, m.loader, m.ctx
		cmds = append(cmds, func() tea.Msg {
			snap, err := loader.Load(ctx, entry)
			return snapshotMsg{symbol: entry.Symbol, snap: snap, err: err}
		})
	}
	return cmds
}

// prune drops snapshots that are no longer current or next.
func (m Model) prune() {
	cur, next := m.engine.Visible()
	for sym := range m.snaps {
		if sym != cur.Symbol && sym != next.Symbol {
			delete(m.snaps, sym)
		}
	}
}

func (m Model) toggleFavorite() tea.Cmd {
	if m.favs == nil {
		return nil
	}
	cur, _ := m.engine.Visible()
	favs, user, ctx := m.favs, m.user, m.ctx
	if m.favorites[cur.Symbol] {
		delete(m.favorites, cur.Symbol)
		return func() tea.Msg {
			_, err := favs.RemoveFavorite(ctx, user, cur.Symbol)
			return favoriteToggleMsg{symbol: cur.Symbol, added: false, err: err}
		}
	}
	m.favorites[cur.Symbol] = true
	fav := store.Favorite{Symbol: cur.Symbol, Name: cur.Name, AddedAt: m.now()}
	return func() tea.Msg {
		_, err := favs.AddFavorite(ctx, user, fav)
		return favoriteToggleMsg{symbol: cur.Symbol, added: true, err: err}
	}
}

func (m Model) affordanceRow() int {
	return m.height - 1
}

func (m Model) bodyHeight() int {
	return max(m.height-3, 1) // header, divider, affordance
}

func (m Model) View() string {
	now := m.now()
	cur, next := m.engine.Visible()

	var b strings.Builder
	b.WriteString(m.header(cur))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(m.width, 1))))
	b.WriteString("\n")

	h := m.bodyHeight()
	lines := fit(strings.Split(m.panel(cur), "\n"), h)
	offset := 0
	if m.engine.Animating() {
		lines = append(lines, fit(strings.Split(m.panel(next), "\n"), h)...)
		offset = int(m.engine.AnimationProgress(now) * float64(h))
	}
	b.WriteString(strings.Join(lines[offset:offset+h], "\n"))
	b.WriteString("\n")
	b.WriteString(m.affordance(now))
	return b.String()
}

func (m Model) header(cur catalog.Entry) string {
	var b strings.Builder
	b.WriteString(badgeStyle.Render(fmt.Sprintf(" Reel: %d ", m.engine.Position()+1)))
	if m.favorites[cur.Symbol] {
		b.WriteString(" ")
		b.WriteString(favStyle.Render("★"))
	}
	if n := len(m.loading); n > 0 {
		b.WriteString(" ")
		b.WriteString(m.spin.View())
		b.WriteString(statusStyle.Render(fmt.Sprintf(" loading %d", n)))
	}
	return b.String()
}

// affordance is the clickable advance control. It renders dimmed and says so
// while advancing is not possible.
func (m Model) affordance(now time.Time) string {
	key := m.engine.Config().AdvanceKey
	if m.engine.AdvanceEnabled(now) {
		return advanceStyle.Render(fmt.Sprintf("▼ next  (%s / scroll / click)", key))
	}
	return advanceDimStyle.Render("▽ next  (wait)")
}

func (m Model) panel(e catalog.Entry) string {
	if snap := m.snaps[e.Symbol]; snap != nil {
		return dashboard.Render(snap, m.width)
	}
	return dashboard.Placeholder(e, m.width)
}

// fit pads or truncates lines to exactly n entries.
func fit(lines []string, n int) []string {
	out := make([]string, n)
	copy(out, lines)
	return out
}

package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdeck/internal/cards"
	"github.com/desertthunder/playdeck/internal/formatter"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/services"
	"github.com/desertthunder/playdeck/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	AssembleView
	PublishView
)

func (v ViewState) String() string {
	switch v {
	case BrowseView:
		return "browse"
	case AssembleView:
		return "assemble"
	case PublishView:
		return "publish"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	engine *tasks.Engine
	logger *log.Logger
	style  string

	view   ViewState
	width  int
	height int

	loading    bool
	fetching   bool
	publishing bool
	spinning   bool
	spinner    spinner.Model

	playlistList list.Model
	playlists    []models.Playlist
	selected     *models.Playlist
	sequence     *cards.Sequence
	tracker      tasks.Tracker
	catalogs     tasks.Tracker
	viewport     viewport.Model
	renderer     *formatter.Renderer

	board   tasks.Board
	focus   tasks.Pane
	cursor  [2]int
	grabbed *tasks.Location

	input textinput.Model

	toast   *toast
	toastID int

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// style is the glamour style used for card descriptions; a nil logger discards output.
func NewModel(ctx context.Context, engine *tasks.Engine, logger *log.Logger, style string) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	playlists := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	playlists.Title = "Playlists"
	playlists.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	}

	input := textinput.New()
	input.Placeholder = "Playlist name"
	input.CharLimit = 255

	m := &Model{
		ctx:          ctx,
		engine:       engine,
		logger:       logger,
		style:        style,
		view:         BrowseView,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		playlistList: playlists,
		viewport:     vp,
		renderer:     formatter.NewRenderer(0, style),
		board:        tasks.NewBoard(nil),
		input:        input,
		help:         help.New(),
		keys:         newKeyMap(),
	}
	m.refreshViewport()
	return m
}

// Init loads playlists and videos.
func (m *Model) Init() tea.Cmd {
	return m.reload()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case AssembleView:
			return m.handleBoardKeys(msg)
		case PublishView:
			return m.handlePublishKeys(msg)
		}
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgCatalogLoaded:
		data := msg.data.(catalogData)
		if !m.catalogs.Current(data.ticket) {
			m.logger.Debug("discarding stale catalog response", "ticket", data.ticket)
			return m, nil
		}
		m.loading = false
		if data.err != nil {
			m.logger.Error("failed to load catalog", "error", data.err)
			return m, m.showToast(errorMessage(data.err), true)
		}
		m.playlists = data.catalog.Playlists
		m.board = tasks.NewBoard(data.catalog.Videos)
		m.cursor = [2]int{}
		m.grabbed = nil
		m.selected = nil
		m.sequence = nil
		m.refreshViewport()
		return m, m.playlistList.SetItems(playlistItems(m.playlists))

	case MsgSequenceLoaded:
		data := msg.data.(sequenceData)
		if !m.tracker.Current(data.ticket) {
			m.logger.Debug("discarding stale playlist response", "ticket", data.ticket)
			return m, nil
		}
		m.fetching = false
		if data.err != nil {
			m.logger.Error("failed to load playlist", "error", data.err)
			return m, m.showToast(errorMessage(data.err), true)
		}
		m.selected = data.playlist
		m.sequence = &data.sequence
		m.refreshViewport()
		m.viewport.GotoTop()
		return m, nil

	case MsgPublished:
		data := msg.data.(publishData)
		m.publishing = false
		if data.err != nil {
			m.logger.Error("failed to publish playlist", "error", data.err)
			return m, m.showToast(errorMessage(data.err), true)
		}
		m.board = data.board
		m.clampCursors()
		m.input.Reset()
		m.input.Blur()
		m.view = AssembleView
		return m, m.showToast("Content published successfully!", false)

	case MsgToastExpired:
		if id, ok := msg.data.(int); ok && m.toast != nil && m.toast.id == id {
			m.toast = nil
		}
	}
	return m, nil
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.playlistList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.playlistList, cmd = m.playlistList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		return m, m.selectPlaylist()
	case msg.String() == "tab":
		m.view = AssembleView
		return m, nil
	case key.Matches(msg, m.keys.reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.pageUp, m.keys.pageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.tab):
		m.focus = other(m.focus)
		m.clampCursors()
	case key.Matches(msg, m.keys.grab):
		m.grabOrDrop()
	case key.Matches(msg, m.keys.back):
		if m.grabbed != nil {
			m.board = m.board.Drop(tasks.Drag{Source: *m.grabbed})
			m.grabbed = nil
			m.clampCursors()
			return m, nil
		}
		m.view = BrowseView
	case m.grabbed != nil:
		return m, nil
	case key.Matches(msg, m.keys.add):
		if m.focus == tasks.PaneAvailable && m.board.Available.Len() > 0 {
			m.board = m.board.Add(m.cursor[tasks.PaneAvailable])
			m.clampCursors()
		}
	case key.Matches(msg, m.keys.remove):
		if m.focus == tasks.PanePlaylist && m.board.Playlist.Len() > 0 {
			m.board = m.board.Remove(m.cursor[tasks.PanePlaylist])
			m.clampCursors()
		}
	case key.Matches(msg, m.keys.publish):
		m.view = PublishView
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handlePublishKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.publishing {
			return m, nil
		}
		m.input.Blur()
		m.view = AssembleView
		return m, nil
	case "enter":
		if m.publishing {
			return m, nil
		}
		if err := tasks.NewPublishRequest(m.input.Value(), m.board).Validate(); err != nil {
			return m, m.showToast(err.Error(), true)
		}
		return m, m.publish()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BrowseView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case PublishView:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// grabOrDrop picks up the item under the cursor, or drops the held item there.
func (m *Model) grabOrDrop() {
	if m.grabbed == nil {
		if m.board.Pane(m.focus).Len() == 0 {
			return
		}
		m.grabbed = &tasks.Location{Pane: m.focus, Index: m.cursor[m.focus]}
		return
	}

	dest := tasks.Location{Pane: m.focus, Index: m.cursor[m.focus]}
	m.board = m.board.Drop(tasks.Drag{Source: *m.grabbed, Destination: &dest})
	m.grabbed = nil
	m.clampCursors()
}

// maxCursor is the last index the cursor may rest on in p. While an item from the other pane is
// held, the cursor may also sit one past the end to append.
func (m *Model) maxCursor(p tasks.Pane) int {
	n := m.board.Pane(p).Len()
	if m.grabbed != nil && m.grabbed.Pane != p {
		return n
	}
	return max(n-1, 0)
}

func (m *Model) moveCursor(delta int) {
	m.cursor[m.focus] = min(max(m.cursor[m.focus]+delta, 0), m.maxCursor(m.focus))
}

func (m *Model) clampCursors() {
	for _, p := range []tasks.Pane{tasks.PaneAvailable, tasks.PanePlaylist} {
		m.cursor[p] = min(max(m.cursor[p], 0), m.maxCursor(p))
	}
}

func other(p tasks.Pane) tasks.Pane {
	if p == tasks.PaneAvailable {
		return tasks.PanePlaylist
	}
	return tasks.PaneAvailable
}

func (m *Model) busy() bool {
	return m.loading || m.fetching || m.publishing
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) showToast(message string, failed bool) tea.Cmd {
	m.toastID++
	m.toast = &toast{id: m.toastID, message: message, failed: failed}
	return expireToast(m.toastID)
}

// reload fetches playlists and videos afresh. Any playlist fetch in flight is discarded.
func (m *Model) reload() tea.Cmd {
	m.tracker.Invalidate()
	m.fetching = false
	m.loading = true
	return tea.Batch(m.loadCatalog(), m.startSpinner())
}

// loadCatalog supersedes any catalog load in flight.
func (m *Model) loadCatalog() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	ticket := m.catalogs.Next()
	return func() tea.Msg {
		catalog, err := engine.Load(ctx, nil)
		return catalogLoadedMsg(ticket, catalog, err)
	}
}

func (m *Model) selectPlaylist() tea.Cmd {
	item, ok := m.playlistList.SelectedItem().(playlistItem)
	if !ok {
		return nil
	}

	ticket := m.tracker.Next()
	m.fetching = true
	id := item.playlist.ID.String()
	ctx, engine := m.ctx, m.engine
	fetch := func() tea.Msg {
		p, seq, err := engine.Sequence(ctx, nil, id)
		return sequenceLoadedMsg(ticket, p, seq, err)
	}
	return tea.Batch(fetch, m.startSpinner())
}

func (m *Model) publish() tea.Cmd {
	m.publishing = true
	name, board := m.input.Value(), m.board
	ctx, engine := m.ctx, m.engine
	send := func() tea.Msg {
		created, next, err := engine.Publish(ctx, nil, name, board)
		return publishedMsg(created, next, err)
	}
	return tea.Batch(send, m.startSpinner())
}

func errorMessage(err error) string {
	if reqErr, ok := services.AsRequestError(err); ok {
		return reqErr.Message
	}
	return err.Error()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	listWidth := width / 3
	m.playlistList.SetSize(listWidth, max(height-6, 0))

	m.viewport.Width = max(width-listWidth-4, 0)
	m.viewport.Height = max(height-8, 0)
	if w := max(m.viewport.Width-4, 20); w != m.renderer.Width() {
		m.renderer = formatter.NewRenderer(w, m.style)
	}
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.sequenceContent())
}

func (m *Model) sequenceContent() string {
	if m.sequence == nil || m.selected == nil {
		return m.renderer.RenderPlaceholder(cards.NoSelection)
	}

	content := styles.title.Render(m.selected.Title()) + "\n" + m.renderer.RenderSequence(*m.sequence)
	if m.sequence.Skipped > 0 {
		content += "\n" + styles.warn.Render(fmt.Sprintf("%d components skipped", m.sequence.Skipped))
	}
	return content
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case BrowseView:
		body = m.renderBrowse()
	case AssembleView:
		body = m.renderBoard()
	case PublishView:
		body = m.renderPublish()
	}

	return strings.Join([]string{m.renderHeader(), body, m.renderStatus(), m.renderHelp()}, "\n")
}

func (m *Model) renderHeader() string {
	source := "offline"
	if m.engine != nil && m.engine.Service() != nil {
		source = m.engine.Service().Name()
	}
	return styles.title.Render("playdeck") + " " + styles.muted.Render("("+source+")")
}

func (m *Model) renderStatus() string {
	switch {
	case m.loading:
		return m.spinner.View() + " Loading playlists and videos..."
	case m.fetching:
		return m.spinner.View() + " Loading playlist..."
	case m.publishing:
		return m.spinner.View() + " Publishing..."
	case m.toast != nil && m.toast.failed:
		return styles.err.Render("✗ " + m.toast.message)
	case m.toast != nil:
		return styles.ok.Render("✓ " + m.toast.message)
	default:
		return ""
	}
}

func (m *Model) renderHelp() string {
	if m.help.ShowAll {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	switch m.view {
	case AssembleView:
		return m.help.ShortHelpView(m.keys.boardHelp(m.grabbed != nil))
	case PublishView:
		submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "publish"))
		return m.help.ShortHelpView([]key.Binding{submit, m.keys.back})
	default:
		return m.help.ShortHelpView(m.keys.browseHelp())
	}
}

func (m *Model) renderBrowse() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.playlistList.View(), "  ", m.viewport.View())
}

func (m *Model) renderBoard() string {
	paneWidth := max((m.width-6)/2, 24)
	available := m.renderPane(tasks.PaneAvailable, "Available", paneWidth)
	playlist := m.renderPane(tasks.PanePlaylist, "Playlist", paneWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, available, " ", playlist)
}

func (m *Model) renderPane(p tasks.Pane, title string, width int) string {
	items := m.board.Pane(p).Items()
	focused := m.focus == p

	lines := []string{styles.cursor.Render(fmt.Sprintf("%s (%d)", title, len(items)))}
	for i, v := range items {
		item := videoItem{video: v}
		line := fmt.Sprintf("%s %s", item.Title(), styles.muted.Render(item.Description()))

		grabbed := m.grabbed != nil && m.grabbed.Pane == p && m.grabbed.Index == i
		switch {
		case grabbed:
			line = styles.grabbed.Render("≡ " + item.Title())
		case focused && m.cursor[p] == i:
			line = styles.cursor.Render("› ") + line
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}

	if m.grabbed != nil && focused && m.cursor[p] == len(items) && m.grabbed.Pane != p {
		lines = append(lines, styles.cursor.Render("› ── drop here ──"))
	} else if len(items) == 0 {
		hint := "No videos available"
		if p == tasks.PanePlaylist {
			hint = "Press a or drag videos here"
		}
		lines = append(lines, styles.help.Render(hint))
	}

	style := styles.pane
	if focused {
		style = styles.focused
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPublish() string {
	lines := []string{
		styles.title.Render("Publish playlist"),
		fmt.Sprintf("%d videos selected", m.board.Playlist.Len()),
		"",
		m.input.View(),
	}
	if !tasks.CanPublish(m.input.Value(), m.board) {
		lines = append(lines, "", styles.help.Render("Enter a name and select at least one video"))
	}
	return styles.dialog.Render(strings.Join(lines, "\n"))
}

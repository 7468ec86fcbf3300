package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/playdeck/internal/cards"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCatalogLoaded MsgKind = iota
	MsgSequenceLoaded
	MsgPublished
	MsgToastExpired
)

type catalogData struct {
	ticket  tasks.Ticket
	catalog *tasks.Catalog
	err     error
}

type sequenceData struct {
	ticket   tasks.Ticket
	playlist *models.Playlist
	sequence cards.Sequence
	err      error
}

type publishData struct {
	created *models.Created
	board   tasks.Board
	err     error
}

// catalogLoadedMsg is the constructor for [MsgCatalogLoaded]
func catalogLoadedMsg(ticket tasks.Ticket, catalog *tasks.Catalog, err error) Msg {
	return Msg{kind: MsgCatalogLoaded, data: catalogData{ticket, catalog, err}}
}

// sequenceLoadedMsg is the constructor for [MsgSequenceLoaded]
func sequenceLoadedMsg(ticket tasks.Ticket, p *models.Playlist, seq cards.Sequence, err error) Msg {
	return Msg{kind: MsgSequenceLoaded, data: sequenceData{ticket, p, seq, err}}
}

// publishedMsg is the constructor for [MsgPublished]
func publishedMsg(created *models.Created, board tasks.Board, err error) Msg {
	return Msg{kind: MsgPublished, data: publishData{created, board, err}}
}

// toastExpiredMsg is the constructor for [MsgToastExpired]
func toastExpiredMsg(id int) Msg {
	return Msg{kind: MsgToastExpired, data: id}
}

// toast is a transient status line.
type toast struct {
	id      int
	message string
	failed  bool
}

const toastTTL = 4 * time.Second

func expireToast(id int) tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg(id) })
}

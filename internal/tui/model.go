// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tui is the terminal front end of the fact board. It drives a
// board.Board from the Bubble Tea event loop: every data-service call runs
// as a tea.Cmd and its result comes back as a message that is folded into
// the board inside Update.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"factshare/internal/board"
	"factshare/internal/models"
)

// Form field indexes.
const (
	fieldText = iota
	fieldSource
	fieldCategory
	fieldCount
)

// resultMsg carries a finished board task back to the event loop.
type resultMsg struct{ res board.Result }

// Model is the Bubble Tea model. The board pointer is shared by copies of
// the model but only touched from Init and Update.
type Model struct {
	ctx   context.Context
	board *board.Board

	filters []string // "all" followed by the registry names
	filter  int      // highlighted entry in filters
	cursor  int      // selected fact

	inputs  []textinput.Model
	focus   int
	spinner spinner.Model
	styles  styles
	width   int
}

// New returns a model over b. ctx bounds every data-service call.
func New(ctx context.Context, b *board.Board) Model {
	st := defaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = "| "
		ti.Width = 60
		inputs[i] = ti
	}
	inputs[fieldText].Placeholder = "Share a fact with the world..."
	inputs[fieldSource].Placeholder = "Trustworthy source..."
	inputs[fieldCategory].Placeholder = "Choose category:"
	inputs[fieldCategory].ShowSuggestions = true
	inputs[fieldCategory].SetSuggestions(models.CategoryNames())

	m := Model{
		ctx:     ctx,
		board:   b,
		filters: append([]string{models.CategoryAll}, models.CategoryNames()...),
		inputs:  inputs,
		spinner: sp,
		styles:  st,
	}
	m.filter = m.filterIndex(b.Snapshot().Category)
	return m
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	task, _ := m.board.Mount()
	return tea.Batch(m.spinner.Tick, m.run(task))
}

// run wraps task in a command. Run only reads the data service, so it is
// safe off the event loop.
func (m Model) run(task *board.Task) tea.Cmd {
	if task == nil {
		return nil
	}
	b, ctx := m.board, m.ctx
	return func() tea.Msg {
		return resultMsg{res: b.Run(ctx, task)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.board.Complete(msg.res)
		if msg.res.Task.Kind == board.TaskInsert && msg.res.Err == nil {
			m.resetForm()
			m.cursor = 0
		}
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.board.Snapshot().ShowForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.board.Snapshot()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "n":
		m.board.Begin(board.FormToggled{})
		return m, m.focusField(fieldText)

	case "left", "shift+tab":
		m.filter = (m.filter - 1 + len(m.filters)) % len(m.filters)
	case "right", "tab":
		m.filter = (m.filter + 1) % len(m.filters)

	case "enter":
		return m, m.selectCategory(m.filters[m.filter])
	case "r":
		return m, m.selectCategory(state.Category)

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(state.Facts)-1 {
			m.cursor++
		}

	case "1", "2", "3":
		if len(state.Facts) == 0 {
			return m, nil
		}
		fact := state.Facts[m.cursor]
		if state.IsUpdating(fact.ID) {
			return m, nil
		}
		col := models.VoteColumns[msg.String()[0]-'1']
		task, _ := m.board.Begin(board.VoteCast{FactID: fact.ID, Column: col})
		return m, m.run(task)
	}
	return m, nil
}

func (m Model) selectCategory(category string) tea.Cmd {
	task, _ := m.board.Begin(board.CategorySelected{Category: category})
	return m.run(task)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.board.Begin(board.FormToggled{})
		m.blurAll()
		return m, nil

	case tea.KeyEnter:
		task, _ := m.board.Begin(board.FactSubmitted{Draft: m.draft()})
		return m, m.run(task)

	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.focusField((m.focus - 1 + fieldCount) % fieldCount)

	case tea.KeyTab, tea.KeyDown:
		// Tab on the category field completes a suggestion first.
		in := m.inputs[fieldCategory]
		if msg.Type == tea.KeyTab && m.focus == fieldCategory &&
			in.CurrentSuggestion() != "" && in.CurrentSuggestion() != in.Value() {
			break
		}
		return m, m.focusField((m.focus + 1) % fieldCount)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.board.Begin(board.DraftChanged{Draft: m.draft()})
	return m, cmd
}

// focusField moves keyboard focus to field i.
func (m *Model) focusField(i int) tea.Cmd {
	m.blurAll()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *Model) resetForm() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.blurAll()
	m.focus = fieldText
}

func (m Model) draft() models.Draft {
	return models.Draft{
		Text:     m.inputs[fieldText].Value(),
		Source:   m.inputs[fieldSource].Value(),
		Category: m.inputs[fieldCategory].Value(),
	}
}

func (m *Model) clampCursor() {
	n := len(m.board.Snapshot().Facts)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) filterIndex(category string) int {
	for i, name := range m.filters {
		if name == category {
			return i
		}
	}
	return 0
}

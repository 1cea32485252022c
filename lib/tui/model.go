// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/flipclock/lib/countdown"
)

// startMsg starts the countdown from inside Update so that Initialize
// runs on the update loop like every later tick.
type startMsg struct{}

// animationTickMsg drives flip animation frames. While any card is
// flipping, a new tick is scheduled after each one.
type animationTickMsg struct{}

// expiredBanner is stamped over the cards once the countdown ends.
const expiredBanner = "TIME'S UP"

// Model is the bubbletea model for the flip clock.
type Model struct {
	timer     *countdown.Timer
	board     *Board
	callbacks <-chan func()

	theme   Theme
	keys    KeyMap
	caption string

	width  int
	height int
	ready  bool

	// animating is true while an animation tick is scheduled.
	animating bool

	// status replaces the help line while a log record is shown.
	status         string
	statusLevel    slog.Level
	statusSequence int
}

// NewModel creates a model that renders board and runs timer. Pass the
// CallbackLoop's channel as callbacks when timer uses a real
// scheduler; pass nil when callbacks run some other way (tests drive a
// fake scheduler directly).
func NewModel(timer *countdown.Timer, board *Board, callbacks <-chan func()) Model {
	return Model{
		timer:     timer,
		board:     board,
		callbacks: callbacks,
		theme:     DefaultTheme,
		keys:      DefaultKeyMap,
	}
}

// SetTheme replaces the color palette. Call before SetCaption so the
// caption picks up the new colors.
func (model *Model) SetTheme(theme Theme) {
	model.theme = theme
}

// SetCaption sets a markdown caption shown above the cards.
func (model *Model) SetCaption(markdown string) {
	model.caption = RenderCaption(markdown, model.theme)
}

// Init implements tea.Model. Starts the countdown and begins listening
// for scheduler callbacks.
func (model Model) Init() tea.Cmd {
	commands := []tea.Cmd{func() tea.Msg { return startMsg{} }}
	if model.callbacks != nil {
		commands = append(commands, listenForCallback(model.callbacks))
	}
	return tea.Batch(commands...)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			model.timer.Stop()
			return model, tea.Quit

		case key.Matches(message, model.keys.Toggle):
			if model.timer.Running() {
				model.timer.Stop()
			} else if !model.timer.Expired() {
				model.timer.Start()
			}
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case startMsg:
		model.timer.Start()

	case callbackMsg:
		message.callback()
		commands := []tea.Cmd{listenForCallback(model.callbacks)}
		if command := model.maybeAnimate(); command != nil {
			commands = append(commands, command)
		}
		return model, tea.Batch(commands...)

	case animationTickMsg:
		model.animating = false
		return model, model.maybeAnimate()

	case logRecordMsg:
		model.status = message.Summary
		model.statusLevel = message.Level
		model.statusSequence++
		sequence := model.statusSequence
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{Sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.Sequence == model.statusSequence {
			model.status = ""
		}
	}
	return model, nil
}

// maybeAnimate schedules an animation tick if a card is flipping and
// no tick is already pending.
func (model *Model) maybeAnimate() tea.Cmd {
	if model.animating || !model.board.Animating() {
		return nil
	}
	model.animating = true
	return tea.Tick(AnimationTickInterval, func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	body := model.renderBody()
	help := model.renderHelp()

	bodyHeight := max(0, model.height-lipgloss.Height(help))
	placed := lipgloss.Place(model.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	return placed + "\n" + help
}

// renderBody renders the caption, the cards, and the status line as
// one centered block. The expired banner is stamped over the cards.
func (model Model) renderBody() string {
	var sections []string
	if model.caption != "" {
		sections = append(sections, model.caption, "")
	}

	cards := model.renderCards()
	if model.timer.Expired() {
		banner := lipgloss.NewStyle().
			Foreground(model.theme.ExpiredForeground).
			Background(model.theme.ExpiredBackground).
			Bold(true).
			Padding(0, 2).
			Render(expiredBanner)
		cards = CenterOverlay(cards, strings.Split(banner, "\n"))
	}
	sections = append(sections, cards, "", model.renderStatus())

	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

// renderCards joins every card on the board with separators.
func (model Model) renderCards() string {
	states := model.board.Cards()
	if len(states) == 0 {
		return ""
	}
	separator := renderSeparator(model.theme)

	blocks := make([]string, 0, 2*len(states)-1)
	for index, state := range states {
		if index > 0 {
			blocks = append(blocks, separator)
		}
		blocks = append(blocks, renderCard(state, model.theme))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// renderStatus describes the target and the run state.
func (model Model) renderStatus() string {
	target := model.timer.Target().Local().Format("Mon 2 Jan 2006 15:04:05 MST")
	var state string
	switch {
	case model.timer.Expired():
		state = "reached"
	case model.timer.Running():
		state = "counting down to"
	default:
		state = "stopped, counting down to"
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render(fmt.Sprintf("%s %s", state, target))
}

// renderHelp renders the key help line, or the latest log record while
// one is showing.
func (model Model) renderHelp() string {
	if model.status != "" {
		color := model.theme.WarningText
		if model.statusLevel >= slog.LevelError {
			color = model.theme.ErrorText
		}
		return lipgloss.NewStyle().
			Foreground(color).
			Render(" " + model.status)
	}

	var parts []string
	for _, binding := range model.keys.ShortHelp() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Render(" " + strings.Join(parts, "  "))
}

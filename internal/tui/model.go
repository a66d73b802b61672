// ============================================================================
// PebbleCode - Pebble scripting language
// ============================================================================
//
// Package:     tui
// Description: Terminal UI for the Pebble console with a live canvas pane
// Author:      Adam Nassar
// Created:     2025-09-14
// License:     MIT
// ============================================================================

package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/internal/canvas"
	"github.com/AGOODGITDUCK/PebbleCode/internal/console"
	"github.com/AGOODGITDUCK/PebbleCode/pkg/core/version"
)

const (
	// maxTranscript bounds the scrollback kept in memory
	maxTranscript = 2000

	// canvasRows is the height of the canvas pane without its border
	canvasRows = 12

	// chrome is the number of rows used by header, input and footer
	chrome = 6
)

// Model is the TUI model
type Model struct {
	ctx     context.Context
	console *console.Console
	out     *bytes.Buffer
	logger  *mdwlog.Logger

	// State
	width    int
	height   int
	ready    bool
	running  bool
	quitting bool

	// Components
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	// console state, refreshed after every command
	prompt  string
	gui     bool
	dir     string
	session string
	scene   *canvas.Scene

	transcript []string
}

// NewModel creates a model around a new console session. The console's
// output is captured into the transcript; opts.Output is ignored.
func NewModel(ctx context.Context, opts console.Options) Model {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	out := &bytes.Buffer{}
	opts.Output = out
	c := console.New(opts)

	ti := textinput.New()
	ti.Placeholder = "help"
	ti.CharLimit = 4096
	ti.Width = 80
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.spinner

	m := Model{
		ctx:      ctx,
		console:  c,
		out:      out,
		logger:   opts.Logger.WithField("component", "pebble-tui"),
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(80, 20),
	}
	m.sync()
	m.appendLines(styles.output.Render(c.Banner()))
	return m
}

// Console returns the session driven by the model
func (m Model) Console() *console.Console {
	return m.console
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd

		case "enter":
			if m.running {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			m.appendLines(renderPrompt(m.prompt, m.gui) + " " + line)
			m.updateContent()
			if line == "" {
				return m, nil
			}
			m.running = true
			return m, tea.Batch(m.spinner.Tick, m.execute(line))
		}

		if m.running {
			return m, nil
		}
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.updateContent()
		return m, nil

	case commandDoneMsg:
		m.running = false
		m.appendOutput(msg.output)
		if msg.err != nil {
			m.logger.DebugWithErr("command failed", msg.err, mdwlog.Fields{"line": msg.line})
			m.appendLines(RenderError(msg.err.Error()))
		}
		m.sync()
		m.layout()
		m.updateContent()

		if !m.console.Running() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.running {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execute hands line to the console off the UI goroutine
func (m Model) execute(line string) tea.Cmd {
	c, out, ctx := m.console, m.out, m.ctx
	return func() tea.Msg {
		err := c.Handle(ctx, line)
		text := out.String()
		out.Reset()
		return commandDoneMsg{line: line, output: text, err: err}
	}
}

// sync copies the console state read by View. It must not run while a
// command is in flight.
func (m *Model) sync() {
	c := m.console
	m.prompt = c.Prompt()
	m.gui = c.InGUI()
	m.dir = c.Dir()
	m.session = c.SessionID()
	m.scene = c.Scene()
	m.input.Prompt = m.prompt + " "
}

func (m *Model) appendOutput(text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = styles.output.Render(l)
	}
	m.appendLines(lines...)
}

func (m *Model) appendLines(lines ...string) {
	m.transcript = append(m.transcript, lines...)
	if over := len(m.transcript) - maxTranscript; over > 0 {
		m.transcript = append([]string(nil), m.transcript[over:]...)
	}
}

// layout sizes the viewport around the canvas pane
func (m *Model) layout() {
	if !m.ready {
		return
	}
	h := m.height - chrome
	if m.showCanvas() {
		h -= canvasRows + 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(h, 1)
	m.input.Width = max(m.width-len(m.input.Prompt)-6, 10)
}

func (m *Model) updateContent() {
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) showCanvas() bool {
	return m.gui && m.scene != nil
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	if m.showCanvas() {
		s.WriteString(m.renderCanvas())
		s.WriteString("\n")
	}

	if m.running {
		s.WriteString(styles.busy.Render(m.spinner.View() + " running..."))
	} else {
		s.WriteString(styles.input.Render(m.input.View()))
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m Model) renderHeader() string {
	mode := "console"
	if m.gui {
		mode = "gui"
	}
	title := styles.title.Render("Pebble v" + version.Language)
	sub := styles.subtitle.Render(fmt.Sprintf(" %s · %s", mode, m.dir))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, sub)
}

func (m Model) renderCanvas() string {
	snap := m.scene.Snapshot()
	cols := max(m.width-2, 10)
	label := styles.subtitle.Render(fmt.Sprintf("canvas %dx%d %s, %d elements",
		snap.Width, snap.Height, snap.Background, len(snap.Shapes)))
	body := canvas.Render(snap, cols, canvasRows-1)
	return styles.canvas.Width(cols).Render(lipgloss.JoinVertical(lipgloss.Left, label, body))
}

func (m Model) renderFooter() string {
	help := "Enter: Run • PgUp/PgDn: Scroll • Esc/Ctrl+C: Quit"
	session := m.session
	if len(session) > 8 {
		session = session[:8]
	}
	right := ""
	if session != "" {
		right = "session " + session
	}

	return styles.status.Width(m.width).Render(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			help,
			strings.Repeat(" ", max(0, m.width-len(help)-len(right)-4)),
			right,
		),
	)
}

// Run starts a console session in the terminal UI and blocks until the
// user quits or ctx is cancelled
func Run(ctx context.Context, opts console.Options) error {
	m := NewModel(ctx, opts)
	c := m.console

	if err := c.Begin(ctx); err != nil {
		m.logger.WarnWithErr("history unavailable", err)
	}
	m.sync()
	defer func() {
		if err := c.End(context.Background()); err != nil {
			m.logger.WarnWithErr("failed to save session", err)
		}
	}()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return mdwerror.Wrap(err, "terminal UI failed").
			WithCode(mdwerror.CodeInternal).
			WithOperation("tui.Run")
	}
	return nil
}

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/pubfindco/pubfind/client"
	"github.com/pubfindco/pubfind/pkg/search"
)

// entry roles in the transcript.
const (
	entryUser      = "user"
	entryAssistant = "assistant"
	entryError     = "error"
)

// entry is one rendered transcript item. The assistant's structured body
// (records, options) is pre-rendered at append time; the text part is
// markdown rendered at view time.
type entry struct {
	role    string
	content string
	body    string
}

// Messages for tea updates
type (
	responseMsg *search.Response
	errMsg      struct{ err error }
)

// Model is the main model for the interactive chat interface.
type Model struct {
	session *client.Session
	logger  *zap.Logger

	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    Styles
	renderer  *glamour.TermRenderer

	transcript []entry

	// pending holds the candidates of an unresolved disambiguation round.
	// Digit keys resolve it locally; no network round-trip is involved.
	pending []search.Candidate

	isLoading bool
	ready     bool
	width     int
	height    int
}

// NewModel creates the chat interface bound to a session.
func NewModel(session *client.Session, logger *zap.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about a person or organization..."
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		session:   session,
		logger:    logger,
		textinput: ti,
		spinner:   sp,
		styles:    NewStyles(DetectTheme()),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// submitCmd runs one round-trip off the Update loop. The session enforces
// the single-outstanding-request invariant; the TUI's isLoading flag only
// keeps the input surface honest about it.
func (m Model) submitCmd(query string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.session.Submit(context.Background(), query)
		if err != nil {
			return errMsg{err: err}
		}
		return responseMsg(resp)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.isLoading {
				return m, nil
			}
			return m.handleSubmit()

		case tea.KeyRunes:
			// Digits resolve a pending disambiguation round. '0' reaches
			// the tenth option; the backend caps option lists at ten.
			if len(m.pending) > 0 && !m.isLoading && len(msg.Runes) == 1 && m.textinput.Value() == "" {
				if r := msg.Runes[0]; r >= '0' && r <= '9' {
					return m.handleSelection(selectionIndex(r)), nil
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.textinput.Width = msg.Width - 6

		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(msg.Width-4),
		); err == nil {
			m.renderer = r
		}
		m.refreshViewport()

	case responseMsg:
		m.isLoading = false
		resp := (*search.Response)(msg)

		m.transcript = append(m.transcript, entry{
			role:    entryAssistant,
			content: resp.Response,
			body:    m.styles.RenderResponseBody(resp),
		})

		if resp.NeedsDisambiguation && len(resp.Candidates) > 0 {
			m.pending = resp.Candidates
		}
		m.refreshViewport()
		return m, nil

	case errMsg:
		m.isLoading = false
		if errors.Is(msg.err, client.ErrEmptyQuery) || errors.Is(msg.err, client.ErrBusy) {
			// Defined no-ops: nothing to show.
			return m, nil
		}

		m.logger.Warn("submission failed", zap.Error(msg.err))
		m.transcript = append(m.transcript, entry{
			role:    entryError,
			content: client.FallbackMessage,
		})
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.isLoading {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}
		return m, nil
	}

	m.textinput, tiCmd = m.textinput.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// handleSubmit echoes the query into the transcript and dispatches it. An
// empty or whitespace-only input produces nothing at all: no echo, no
// request, no error.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.textinput.Value())
	if query == "" {
		m.textinput.SetValue("")
		return m, nil
	}

	// Echo before dispatch: the transcript never waits on the network to
	// show what the user typed.
	m.transcript = append(m.transcript, entry{role: entryUser, content: query})
	m.textinput.SetValue("")
	m.pending = nil
	m.isLoading = true
	m.refreshViewport()

	return m, tea.Batch(m.submitCmd(query), m.spinner.Tick)
}

// selectionIndex maps a digit key to a zero-based candidate index, with
// '0' standing in for option 10.
func selectionIndex(r rune) int {
	if r == '0' {
		return 9
	}
	return int(r - '1')
}

// handleSelection resolves a disambiguation choice locally. An index with
// no matching candidate is reported in the transcript rather than dropped:
// it signals a broken contract between results and options.
func (m Model) handleSelection(index int) Model {
	rendered, err := m.styles.RenderSelection(m.pending, index)
	if err != nil {
		m.logger.Error("disambiguation selection out of range",
			zap.Int("index", index),
			zap.Int("candidates", len(m.pending)),
		)
		m.transcript = append(m.transcript, entry{
			role:    entryError,
			content: "That option does not exist: " + err.Error(),
		})
		m.refreshViewport()
		return m
	}

	m.transcript = append(m.transcript, entry{role: entryAssistant, body: rendered})
	m.pending = nil
	m.refreshViewport()
	return m
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var sb strings.Builder

	for _, e := range m.transcript {
		switch e.role {
		case entryUser:
			sb.WriteString(m.styles.UserLabel.Render("You") + "\n")
			sb.WriteString(e.content)
			sb.WriteString("\n\n")

		case entryError:
			sb.WriteString(m.styles.ErrorText.Render(e.content))
			sb.WriteString("\n\n")

		default: // assistant
			sb.WriteString(m.styles.BotLabel.Render("pubfind") + "\n")
			if e.content != "" {
				sb.WriteString(m.safeRenderMarkdown(e.content))
				sb.WriteString("\n")
			}
			if e.body != "" {
				sb.WriteString(e.body)
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		if rendered, err := m.renderer.Render(content); err == nil {
			return rendered
		}
	}
	return content
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var status string
	if m.isLoading {
		status = m.spinner.View() + " " + m.styles.Muted.Render("Searching...")
	} else {
		status = m.styles.StatusOK.Render("Ready")
	}
	header := m.styles.BotLabel.Render(" pubfind ") + " " + status + "\n"

	input := m.styles.InputBox.Render(m.textinput.View())

	help := "Enter: send"
	if len(m.pending) > 0 {
		keys := "1-9"
		if len(m.pending) >= 10 {
			keys = "1-9, 0 for 10"
		}
		help = keys + ": choose an option | " + help
	}
	footer := m.styles.Muted.Render(help + " | Esc: quit")

	return header + "\n" + m.viewport.View() + "\n" + input + "\n" + footer
}

// Package tui provides the interactive terminal UI for clipdex: a search
// box over the transcript index with keyboard navigation of the results.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driving"
)

const resultLimit = 20

// Styles groups the lipgloss styles used by the view.
type Styles struct {
	Title    lipgloss.Style
	Prompt   lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Meta     lipgloss.Style
	Mark     lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the default theme.
func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Selected: lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("236")),
		Normal:   lipgloss.NewStyle(),
		Meta:     lipgloss.NewStyle().Faint(true),
		Mark:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Status:   lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// searchCompleted carries results back into the update loop.
type searchCompleted struct {
	query   string
	results []domain.Result
	err     error
}

// Model is the bubbletea model for the search UI.
type Model struct {
	styles *Styles
	input  textinput.Model

	searchService driving.SearchService
	ctx           context.Context

	query    string
	results  []domain.Result
	selected int
	typing   bool
	status   string
	err      error
	width    int
	height   int
}

// NewModel creates the search UI model.
func NewModel(searchService driving.SearchService) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search transcripts..."
	ti.Focus()
	ti.CharLimit = 200

	return &Model{
		styles:        DefaultStyles(),
		input:         ti,
		searchService: searchService,
		ctx:           context.Background(),
		typing:        true,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context used for searches.
func (m *Model) WithContext(ctx context.Context) *Model {
	m.ctx = ctx
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case searchCompleted:
		m.err = msg.err
		m.query = msg.query
		m.results = msg.results
		m.selected = 0
		if msg.err != nil {
			m.status = ""
		} else {
			m.status = fmt.Sprintf("%d result(s) for %q", len(msg.results), msg.query)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		if m.typing {
			return m, tea.Quit
		}
		m.typing = true
		m.input.Focus()
		return m, textinput.Blink

	case tea.KeyEnter:
		if !m.typing {
			return m, nil
		}
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			return m, nil
		}
		m.typing = false
		m.input.Blur()
		m.status = "Searching..."
		return m, m.performSearch(query)
	}

	if m.typing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.results)-1 {
			m.selected++
		}
	case "/":
		m.typing = true
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// performSearch runs the search off the update loop.
func (m *Model) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.searchService.Search(m.ctx, query, resultLimit)
		return searchCompleted{query: query, results: results, err: err}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("clipdex"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case len(m.results) == 0 && m.query != "":
		b.WriteString(m.styles.Meta.Render("No results"))
		b.WriteString("\n")
	default:
		for i, r := range m.results {
			line := fmt.Sprintf("%s  %s", r.VideoTitle,
				m.styles.Meta.Render(fmt.Sprintf("(%s, %s)", formatTimestamp(r.Start), r.MatchInfo)))
			if i == m.selected && !m.typing {
				b.WriteString(m.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(m.styles.Normal.Render("  " + line))
			}
			b.WriteString("\n")
			if i == m.selected {
				b.WriteString("    " + m.renderMarks(r.ContextualText) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(m.statusLine()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) statusLine() string {
	help := "enter: search • ↑/↓: navigate • /: edit query • q: quit"
	if m.typing {
		help = "enter: search • esc: quit"
	}
	if m.status == "" {
		return help
	}
	return m.status + "  " + help
}

// renderMarks replaces highlight markers with terminal styling.
func (m *Model) renderMarks(s string) string {
	s = strings.ReplaceAll(s, domain.HighlightOpen, "\x00")
	s = strings.ReplaceAll(s, domain.HighlightClose, "\x01")
	var b strings.Builder
	for {
		open := strings.IndexByte(s, 0)
		if open < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:open])
		s = s[open+1:]
		end := strings.IndexByte(s, 1)
		if end < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(m.styles.Mark.Render(s[:end]))
		s = s[end+1:]
	}
	return b.String()
}

func formatTimestamp(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, searchService driving.SearchService) error {
	model := NewModel(searchService).WithContext(ctx)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"textcat/internal/domain"
	"textcat/internal/keywords"
)

// ClassifyPort is the TUI-facing subset of the news service.
type ClassifyPort interface {
	TopN(text string, topN int) ([]domain.NamedResult, error)
	Keywords(text string, k int) ([]keywords.Keyword, error)
}

type entry struct {
	text     string
	results  []domain.NamedResult
	keywords []keywords.Keyword
}

// Model is the Bubble Tea model for the interactive classifier.
type Model struct {
	service  ClassifyPort
	topN     int
	input    textinput.Model
	viewport viewport.Model
	history  []entry
	cursor   int
	status   string
	title    string
	ready    bool
}

// New creates a new TUI model instance. title is shown in the header.
func New(service ClassifyPort, topN int, title string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type or paste text and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, topN: topN, input: ti, viewport: vp, title: title, status: "Model loaded. Type to classify."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 3 + qh + 1
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				m.classify(text)
				m.input.SetValue("")
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		case "up":
			if len(m.history) > 0 {
				m.cursor = (m.cursor - 1 + len(m.history)) % len(m.history)
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		case "down":
			if len(m.history) > 0 {
				m.cursor = (m.cursor + 1) % len(m.history)
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) classify(text string) {
	res, err := m.service.TopN(text, m.topN)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	kws, err := m.service.Keywords(text, 8)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.history = append(m.history, entry{text: text, results: res, keywords: kws})
	m.cursor = len(m.history) - 1
	if len(res) > 0 {
		m.status = fmt.Sprintf("Classified as %s (%.1f%%)", res[0].Category, 100*res[0].Probability)
	} else {
		m.status = "No categories."
	}
}

// View renders the TUI layout and the selected classification.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render(m.title)
	help := dimStyle.Render("enter: classify  up/down: history  ctrl+c: quit")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + help + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrent() string {
	if len(m.history) == 0 {
		return "Nothing classified yet."
	}
	e := m.history[m.cursor]
	var sb strings.Builder
	fmt.Fprintf(&sb, "Entry %d/%d\n", m.cursor+1, len(m.history))
	sb.WriteString(dimStyle.Render(truncate(e.text, 120)))
	sb.WriteString("\n\n")
	sb.WriteString(renderResults(e.results, 30))
	if len(e.keywords) > 0 {
		terms := make([]string, len(e.keywords))
		for i, kw := range e.keywords {
			terms[i] = kw.Term
		}
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("keywords: " + strings.Join(terms, ", ")))
	}
	return sb.String()
}

func renderResults(results []domain.NamedResult, width int) string {
	var sb strings.Builder
	for i, r := range results {
		filled := int(r.Probability*float64(width) + 0.5)
		filled = min(max(filled, 0), width)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
		name := r.Category
		if name == "" {
			name = fmt.Sprintf("#%d", r.Label)
		}
		line := fmt.Sprintf("%-12s %s %6.2f%%", name, bar, 100*r.Probability)
		if i == 0 {
			line = highlightStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

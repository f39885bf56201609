package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"embedgraph/internal/domain"
	"embedgraph/internal/graph"
)

// ExplorerPort is the TUI-facing subset of the dataset explorer.
type ExplorerPort interface {
	Len() int
	Threshold() float64
	EdgeCount() int
	Find(prefix string, limit int) []domain.GraphNode
	Neighbors(id, k int) ([]graph.Neighbor, error)
}

// Model is the Bubble Tea model for the dataset inspector.
type Model struct {
	explorer ExplorerPort
	topK     int
	input    textinput.Model
	viewport viewport.Model
	matches  []domain.GraphNode
	cursor   int
	summary  string
	status   string
	ready    bool
}

// New creates a new inspector model showing topK neighbors per node.
func New(explorer ExplorerPort, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a label prefix (e.g. king_EN) and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	summary := fmt.Sprintf("%d nodes, %d edges above %.2f", explorer.Len(), explorer.EdgeCount(), explorer.Threshold())
	return Model{explorer: explorer, topK: topK, input: ti, viewport: vp, summary: summary, status: "Loaded. Type to search."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			m.matches = m.explorer.Find(q, 0)
			m.cursor = 0
			if len(m.matches) == 0 {
				m.status = fmt.Sprintf("No node matches %q", q)
			} else {
				m.status = fmt.Sprintf("%d nodes match %q (up/down to browse)", len(m.matches), q)
			}
			m.viewport.SetContent(m.renderCurrent())
			return m, nil
		case "down":
			if len(m.matches) > 0 {
				m.cursor = (m.cursor + 1) % len(m.matches)
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		case "up":
			if len(m.matches) > 0 {
				m.cursor = (m.cursor - 1 + len(m.matches)) % len(m.matches)
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the inspector layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Embedding Graph Inspector")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrent() string {
	if len(m.matches) == 0 {
		return "No node selected."
	}
	n := m.matches[m.cursor]
	var b strings.Builder
	fmt.Fprintf(&b, "%s  (%d/%d)\n", lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color)).Bold(true).Render(n.Label), m.cursor+1, len(m.matches))
	fmt.Fprintf(&b, "id=%d  x=%.3f  y=%.3f\n\n", n.ID, n.X, n.Y)
	neighbors, err := m.explorer.Neighbors(n.ID, m.topK)
	if err != nil {
		return b.String() + "Error: " + err.Error()
	}
	if len(neighbors) == 0 {
		b.WriteString("No comparable neighbors.")
		return b.String()
	}
	for i, nb := range neighbors {
		line := fmt.Sprintf("%2d. %-28s %6.3f", i+1, nb.Node.Label, float64(nb.Score))
		if nb.Edge {
			line = edgeStyle.Render(line + "  ●")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	edgeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

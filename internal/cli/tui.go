package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/artistgraph/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	defaultListHeight = 15
	minListHeight     = 5
	genreColumnWidth  = 40
)

// =============================================================================
// ArtistListModel - Interactive artist browser
// =============================================================================

// ArtistRow is one line of the artist table.
type ArtistRow struct {
	Name   string
	Degree int
	Genres []string
}

// ArtistDetail is the panel shown after selecting an artist.
type ArtistDetail struct {
	Name           string
	GenreNeighbors []string
	Collaborators  []string
}

// ArtistListModel is the bubbletea model for browsing the graph, most
// connected artists first.
type ArtistListModel struct {
	Rows   []ArtistRow
	Cursor int
	Height int
	Offset int
	Detail *ArtistDetail

	graph *graph.Graph
}

// NewArtistListModel creates a browser over g.
func NewArtistListModel(g *graph.Graph) ArtistListModel {
	ranked := g.TopDegree(g.NodeCount())
	rows := make([]ArtistRow, len(ranked))
	for i, r := range ranked {
		n, _ := g.Node(r.Name)
		rows[i] = ArtistRow{Name: r.Name, Degree: r.Degree, Genres: n.Genres}
	}
	return ArtistListModel{Rows: rows, Height: defaultListHeight, graph: g}
}

func (m ArtistListModel) Init() tea.Cmd {
	return nil
}

func (m ArtistListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Detail != nil {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "backspace", "enter":
				m.Detail = nil
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Rows) > 0 {
				m.Detail = m.detail(m.Rows[m.Cursor].Name)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < minListHeight {
			m.Height = minListHeight
		}
	}
	return m, nil
}

func (m ArtistListModel) detail(name string) *ArtistDetail {
	d := &ArtistDetail{Name: name}
	d.GenreNeighbors, _ = m.graph.GenreNeighbors(name)
	for _, other := range m.graph.Neighbors(name) {
		if e, ok := m.graph.Edge(name, other); ok && e.Kind == graph.KindCollaboration {
			d.Collaborators = append(d.Collaborators, other)
		}
	}
	return d
}

func (m ArtistListModel) View() string {
	if m.Detail != nil {
		return m.detailView()
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Artists"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ connections  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(StyleWarning.Render("Graph is empty"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		genres := "—"
		if len(r.Genres) > 0 {
			genres = truncate(strings.Join(r.Genres, ", "), genreColumnWidth)
		}
		rows = append(rows, []string{cursor, r.Name, fmt.Sprint(r.Degree), genres})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Artist", "Links", "Genres").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			isCurrent := idx == m.Cursor
			isolated := m.Rows[idx].Degree == 0

			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(colorDim)
			}
			switch {
			case isCurrent:
				if col != 3 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Bold(true)
			case isolated:
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

func (m ArtistListModel) detailView() string {
	var b strings.Builder
	d := m.Detail

	b.WriteString(StyleTitle.Render(d.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("⏎/esc back  q quit"))
	b.WriteString("\n\n")

	writeSection := func(title string, names []string, style lipgloss.Style) {
		b.WriteString(listSelectedStyle.Render(fmt.Sprintf("%s (%d)", title, len(names))))
		b.WriteString("\n")
		if len(names) == 0 {
			b.WriteString(listDimStyle.Render("  none"))
			b.WriteString("\n")
		}
		for _, n := range names {
			b.WriteString("  " + style.Render(n) + "\n")
		}
		b.WriteString("\n")
	}
	writeSection("Genre connections", d.GenreNeighbors, listNormalStyle)
	writeSection("Collaborations", d.Collaborators, styleCollab)

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// browseCommand creates the "browse" command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse artists and their connections in the terminal",
		Args:  cobra.NoArgs,
		RunE: c.graphCommand(func(cmd *cobra.Command, _ []string, g *graph.Graph, _ Config) error {
			p := tea.NewProgram(NewArtistListModel(g), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		}),
	}
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"meshwalk/pkg/mesh"
	"meshwalk/pkg/stl"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the inspect command: an interactive facet browser.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.stl>",
		Short: "Browse a mesh's facets interactively",
		Long: `Open an interactive browser over the mesh's facets. Each row shows the
facet's parse index, centroid, normal and its degree in the adjacency graph.

Navigation: arrows or j/k to move, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			data, err := readMeshFile(args[0])
			if err != nil {
				return err
			}
			m, err := stl.Decoder{Warn: logger.Warnf}.Decode(data)
			if err != nil {
				return err
			}
			adj := mesh.Build(m)

			model := newFacetListModel(m, adj)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("run facet browser: %w", err)
			}
			return nil
		},
	}
}

// =============================================================================
// FacetListModel - Interactive facet browser
// =============================================================================

// facetListModel is the bubbletea model for browsing mesh facets.
type facetListModel struct {
	mesh   *stl.Mesh
	adj    *mesh.Adjacency
	cursor int
	height int
	offset int
}

func newFacetListModel(m *stl.Mesh, adj *mesh.Adjacency) facetListModel {
	return facetListModel{
		mesh:   m,
		adj:    adj,
		height: 15,
	}
}

func (m facetListModel) Init() tea.Cmd {
	return nil
}

func (m facetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < m.mesh.FacetCount()-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "g":
			m.cursor = 0
			m.offset = 0
		case "G":
			m.cursor = m.mesh.FacetCount() - 1
			if m.cursor >= m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m facetListModel) View() string {
	var b strings.Builder

	title := m.mesh.Name
	if title == "" {
		title = "mesh"
	}
	b.WriteString(styleTitle.Render(fmt.Sprintf("Facets of %s", title)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if m.mesh.FacetCount() == 0 {
		b.WriteString(listDimStyle.Render("  (empty mesh)"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.offset + m.height
	if end > m.mesh.FacetCount() {
		end = m.mesh.FacetCount()
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		c := m.mesh.Facets[i].Centroid()
		n := m.mesh.Normals[i]
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i),
			fmt.Sprintf("(%.3g, %.3g, %.3g)", c[0], c[1], c[2]),
			fmt.Sprintf("(%.3g, %.3g, %.3g)", n[0], n[1], n[2]),
			fmt.Sprintf("%d", m.adj.Degree(i)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Facet", "Centroid", "Normal", "Degree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.offset + row
			if actualIdx == m.cursor {
				return listSelectedStyle
			}
			if actualIdx < m.adj.FacetCount() && m.adj.Degree(actualIdx) == 0 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, m.mesh.FacetCount())))

	return b.String()
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/keyplate/pkg/layout"
	"github.com/matzehuels/keyplate/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		f     buildFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse key placements and plate dimensions",
		Long: `Inspect interprets a layout and shows every placed key with its size,
center and rotation, along with the resulting plate and wall dimensions.
It is the quickest way to check a layout before building.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.layout = args[0]
			}
			opts, err := buildOptions(cmd.Flags(), &f, cmd.InOrStdin())
			if err != nil {
				return err
			}
			comp, err := pipeline.Compose(opts)
			if err != nil {
				return err
			}
			for _, w := range comp.Warnings {
				c.Logger.Warn(w.Error())
			}

			if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
				return printPlacements(cmd.OutOrStdout(), comp)
			}
			_, err = tea.NewProgram(NewPlacementListModel(comp), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	registerPlateFlags(cmd, &f)
	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive view")

	return cmd
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

var placementHeaders = []string{"#", "Label", "Size", "Center", "Rotation"}

// placementRow formats one placement as table cells.
func placementRow(p layout.Placement) []string {
	label := p.Label
	if label == "" {
		label = "-"
	}
	rot := "-"
	if p.Rotated() {
		rot = fmt.Sprintf("%g° @ %s,%s", p.Rotation, formatMM(p.Anchor.X), formatMM(p.Anchor.Y))
	}
	return []string{
		fmt.Sprintf("%d", p.Index),
		firstLine(label),
		fmt.Sprintf("%g×%gu", p.WidthFactor, p.HeightFactor),
		formatMM(p.Center.X) + ", " + formatMM(p.Center.Y),
		rot,
	}
}

// firstLine keeps the first legend of a multi-legend KLE label.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// plateSummary describes the composed plate in one line.
func plateSummary(comp *pipeline.Composition) string {
	d, w := comp.Plates.Dimensions, comp.Plates.Walls
	return fmt.Sprintf("plate %s × %s mm · walls L%s R%s T%s B%s · %d keys · %d decals",
		formatMM(d.ExteriorWidth), formatMM(d.ExteriorHeight),
		formatMM(w.Left), formatMM(w.Right), formatMM(w.Top), formatMM(w.Bottom),
		len(comp.Placed.Placements), comp.Placed.Decals)
}

// printPlacements writes a static table of every placement.
func printPlacements(w io.Writer, comp *pipeline.Composition) error {
	rows := make([][]string, len(comp.Placed.Placements))
	for i, p := range comp.Placed.Placements {
		rows[i] = placementRow(p)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(placementHeaders...).
		Rows(rows...)
	_, err := fmt.Fprintf(w, "%s\n%s\n", plateSummary(comp), t.Render())
	return err
}

// =============================================================================
// PlacementListModel - Interactive placement browser
// =============================================================================

// PlacementListModel is the bubbletea model for browsing placements.
type PlacementListModel struct {
	Summary    string
	Placements []layout.Placement
	Cursor     int
	Height     int
	Offset     int
}

// NewPlacementListModel creates a model for comp.
func NewPlacementListModel(comp *pipeline.Composition) PlacementListModel {
	return PlacementListModel{
		Summary:    plateSummary(comp),
		Placements: comp.Placed.Placements,
		Height:     15,
	}
}

func (m PlacementListModel) Init() tea.Cmd {
	return nil
}

func (m PlacementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Placements))
		case "end", "G":
			m.move(len(m.Placements))
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped, and scrolls it into view.
func (m *PlacementListModel) move(delta int) {
	if len(m.Placements) == 0 {
		return
	}
	m.Cursor = max(0, min(len(m.Placements)-1, m.Cursor+delta))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m PlacementListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Key Placements"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.Summary))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Placements))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		rows = append(rows, placementRow(m.Placements[i]))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(placementHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 0 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(m.Placements) > 0 {
		p := m.Placements[m.Cursor]
		corners := make([]string, len(p.Corners))
		for i, c := range p.Corners {
			corners[i] = "(" + formatMM(c.X) + ", " + formatMM(c.Y) + ")"
		}
		b.WriteString(StyleDim.Render("  corners "))
		b.WriteString(StyleNumber.Render(strings.Join(corners, " ")))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Placements))))

	return b.String()
}

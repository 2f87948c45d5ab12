package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/textblock/internal/showcase"
	"github.com/matzehuels/textblock/pkg/block"
	"github.com/matzehuels/textblock/pkg/document"
	"github.com/matzehuels/textblock/pkg/pipeline"
	"github.com/matzehuels/textblock/pkg/width"
)

// demoPrefix selects a built-in demo instead of a file in "view demo:NAME".
const demoPrefix = "demo:"

// Viewer styles
var (
	viewerHintStyle   = lipgloss.NewStyle().Foreground(colorDim)
	viewerBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// viewerChrome is the number of screen rows used by the title, the hint
// line and the footer.
const viewerChrome = 4

// viewCommand creates the view command, a scrollable viewer for layouts.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file|demo:NAME]",
		Short: "Browse a rendered layout in the terminal",
		Long: `View renders a layout document, or a built-in demo when the argument is
demo:NAME, and shows it in a scrollable viewer.

Keys: arrows or hjkl scroll, pgup/pgdown page, g/G jump to top/bottom, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBlock(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := tea.NewProgram(newViewerModel(args[0], b), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// loadBlock composes the layout named by arg: a document file or
// "demo:NAME".
func loadBlock(ctx context.Context, arg string) (block.Block, error) {
	if name, ok := strings.CutPrefix(arg, demoPrefix); ok {
		return showcase.Lookup(name)
	}
	doc, err := document.Load(arg)
	if err != nil {
		return block.Block{}, err
	}
	return pipeline.Layout(ctx, doc)
}

// =============================================================================
// viewerModel - Scrollable layout viewer
// =============================================================================

// viewerModel is the bubbletea model for the layout viewer.
type viewerModel struct {
	Title string
	Lines []string
	Width int // columns of the layout

	Top, Left  int // scroll offsets
	Rows, Cols int // visible area
}

func newViewerModel(title string, b block.Block) viewerModel {
	return viewerModel{
		Title: title,
		Lines: b.Lines(),
		Width: b.Width(),
		Rows:  20,
		Cols:  80,
	}
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Top--
		case "down", "j":
			m.Top++
		case "left", "h":
			m.Left--
		case "right", "l":
			m.Left++
		case "pgup":
			m.Top -= m.Rows
		case "pgdown", " ":
			m.Top += m.Rows
		case "home", "g":
			m.Top, m.Left = 0, 0
		case "end", "G":
			m.Top = len(m.Lines)
		}
	case tea.WindowSizeMsg:
		m.Rows = max(msg.Height-viewerChrome, 1)
		m.Cols = max(msg.Width, 1)
	}
	m.clamp()
	return m, nil
}

// clamp keeps the scroll offsets inside the layout.
func (m *viewerModel) clamp() {
	m.Top = min(m.Top, max(len(m.Lines)-m.Rows, 0))
	m.Top = max(m.Top, 0)
	m.Left = min(m.Left, max(m.Width-m.Cols, 0))
	m.Left = max(m.Left, 0)
}

func (m viewerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %dx%d", m.Width, len(m.Lines))))
	b.WriteString("\n")
	b.WriteString(viewerHintStyle.Render("←↑↓→ scroll  pgup/pgdn page  g/G top/bottom  q quit"))
	b.WriteString("\n")

	end := min(m.Top+m.Rows, len(m.Lines))
	for _, line := range m.Lines[m.Top:end] {
		b.WriteString(cropLine(line, m.Left, m.Cols))
		b.WriteString("\n")
	}

	b.WriteString(viewerBorderStyle.Render(strings.Repeat("─", min(m.Cols, 40))))
	b.WriteString("\n")
	if len(m.Lines) == 0 {
		b.WriteString(viewerHintStyle.Render("  (empty layout)"))
	} else {
		b.WriteString(viewerHintStyle.Render(fmt.Sprintf("  rows %d-%d of %d  col %d", m.Top+1, end, len(m.Lines), m.Left+1)))
	}

	return b.String()
}

// cropLine returns the n display columns of line starting at column from.
// A wide character cut by either edge shows as spaces for its visible part.
func cropLine(line string, from, n int) string {
	var b strings.Builder
	col := 0
	stop := from + n
	for _, cl := range width.Clusters(line) {
		if col >= stop {
			break
		}
		end := col + cl.Width
		switch {
		case cl.Width == 0:
			if col > from {
				b.WriteString(cl.Text)
			}
		case col >= from && end <= stop:
			b.WriteString(cl.Text)
		case end > from:
			b.WriteString(strings.Repeat(" ", min(end, stop)-max(col, from)))
		}
		col = end
	}
	return b.String()
}

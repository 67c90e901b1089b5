package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitry/pkg/circuit"
	"github.com/matzehuels/circuitry/pkg/errors"
	"github.com/matzehuels/circuitry/pkg/pipeline"
)

var (
	replayMarkStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	replayDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// replayCommand creates the replay command, an interactive step viewer.
func (c *CLI) replayCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "Step through a run interactively",
		Long: `Replay runs the pipeline with tracing enabled and opens a viewer over
every consumed connection, showing its outcome and the partition it left
behind. The checkpoint and unifying steps are marked.

The points must come from a file: the viewer reads keys from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := inputSource(args)
			if source == stdinSource {
				return errors.New(errors.ErrCodeInvalidInput, "replay needs a point file; stdin is reserved for the viewer")
			}
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts.Trace = true

			ctx := cmd.Context()
			result, err := execute(ctx, source, opts)
			if err != nil {
				return err
			}
			if len(result.Trace) == 0 {
				loggerFromContext(ctx).Warn("nothing to replay", "points", result.Stats.Points)
				return nil
			}

			p := tea.NewProgram(newReplayModel(result),
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithOutput(cmd.ErrOrStderr()))
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// ReplayModel - Interactive step viewer
// =============================================================================

// ReplayModel is the bubbletea model for browsing a run's trace.
type ReplayModel struct {
	Result *pipeline.Result
	Cursor int
	Offset int
	Height int
}

func newReplayModel(r *pipeline.Result) ReplayModel {
	return ReplayModel{Result: r, Height: 15}
}

func (m ReplayModel) Init() tea.Cmd {
	return nil
}

func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	last := len(m.Result.Trace) - 1
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Cursor--
		case "down", "j":
			m.Cursor++
		case "pgup":
			m.Cursor -= m.Height
		case "pgdown", " ":
			m.Cursor += m.Height
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = last
		case "m":
			m.Cursor = m.nextMerge()
		case "c":
			if m.Result.Checkpoint.Triggered {
				m.Cursor = m.Result.Checkpoint.K - 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}

	m.Cursor = min(max(m.Cursor, 0), last)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

// nextMerge returns the index of the first Merged step after the cursor,
// or the cursor itself when there is none.
func (m ReplayModel) nextMerge() int {
	for i := m.Cursor + 1; i < len(m.Result.Trace); i++ {
		if m.Result.Trace[i].Outcome == circuit.Merged {
			return i
		}
	}
	return m.Cursor
}

// mark annotates the checkpoint and unifying steps.
func (m ReplayModel) mark(step int) string {
	var marks []string
	if cp := m.Result.Checkpoint; cp.Triggered && step == cp.K {
		marks = append(marks, "checkpoint")
	}
	if step == m.Result.UnifyingStep {
		marks = append(marks, "unified")
	}
	return strings.Join(marks, ", ")
}

func (m ReplayModel) View() string {
	var b strings.Builder
	trace := m.Result.Trace

	b.WriteString(StyleTitle.Render("Replay"))
	b.WriteString("\n")
	b.WriteString(replayDimStyle.Render("↑/↓ step  pgup/pgdn page  m next merge  c checkpoint  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(trace))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		s := trace[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(s.Index),
			fmt.Sprintf("%d-%d", s.Connection.A, s.Connection.B),
			strconv.FormatFloat(s.Connection.Distance, 'g', 6, 64),
			s.Outcome.String(),
			strconv.Itoa(s.Circuits),
			strconv.Itoa(s.Largest),
			m.mark(s.Index),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Step", "Boxes", "Distance", "Outcome", "Circuits", "Largest", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(trace) {
				return lipgloss.NewStyle()
			}
			style := lipgloss.NewStyle()
			switch col {
			case 4:
				style = outcomeStyle(trace[idx].Outcome)
			case 7:
				style = replayMarkStyle
			}
			if idx == m.Cursor {
				style = style.Bold(true)
			}
			return style
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(replayDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(trace))))
	return b.String()
}

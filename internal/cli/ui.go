package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/circuitry/pkg/circuit"
	"github.com/matzehuels/circuitry/pkg/errors"
	"github.com/matzehuels/circuitry/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCreated = lipgloss.NewStyle().Foreground(colorGray)
	styleJoined  = lipgloss.NewStyle().Foreground(colorGreen)
	styleMerged  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleSkipped = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// FormatError renders err for the terminal, tagged with its code when it
// has one.
func FormatError(err error) string {
	text := errors.UserMessage(err)
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		text += ": " + e.Cause.Error()
	}
	msg := styleIconError.Render(iconError) + " " + text
	if code := errors.GetCode(err); code != "" {
		msg += " " + StyleDim.Render("["+string(code)+"]")
	}
	return msg
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// outcomeStyle returns the style used to show an outcome.
func outcomeStyle(o circuit.Outcome) lipgloss.Style {
	switch o {
	case circuit.Created:
		return styleCreated
	case circuit.Joined:
		return styleJoined
	case circuit.Merged:
		return styleMerged
	default:
		return styleSkipped
	}
}

// =============================================================================
// Run Summary
// =============================================================================

// summaryCircuits bounds the rows of the circuit table.
const summaryCircuits = 10

// printSummary prints run statistics and the largest final circuits.
func printSummary(w io.Writer, strategy string, r *pipeline.Result) {
	fmt.Fprintln(w, StyleTitle.Render("Run summary"))
	printKeyValue(w, "Points", strconv.Itoa(r.Stats.Points))
	printKeyValue(w, "Connections", strconv.Itoa(r.Stats.Connections))
	printKeyValue(w, "Strategy", strategy)
	printKeyValue(w, "Consumed", fmt.Sprintf("%d (%d merges, %d skips)", r.Stats.Consumed, r.Stats.Merges, r.Stats.Skips))

	cp := r.Checkpoint
	if cp.Triggered {
		printKeyValue(w, "Checkpoint", fmt.Sprintf("k=%d sizes=%v circuits=%d", cp.K, cp.Sizes, cp.Circuits))
	} else {
		printKeyValue(w, "Checkpoint", StyleWarning.Render(fmt.Sprintf("k=%d not reached", cp.K)))
	}
	if r.Unified() {
		printKeyValue(w, "Unifying", fmt.Sprintf("%s at step %d", r.Unifying, r.UnifyingStep))
	} else {
		printKeyValue(w, "Unifying", StyleWarning.Render("none"))
	}
	printKeyValue(w, "Build", r.Stats.BuildTime.String())
	printKeyValue(w, "Cluster", r.Stats.ClusterTime.String())

	if len(r.Final.Sizes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, circuitTable(r.Final.Sizes, r.Stats.Points, summaryCircuits))
	}
}

// circuitTable renders the first limit sizes with their share of all
// boxes.
func circuitTable(sizes []int, points, limit int) string {
	rows := make([][]string, 0, min(len(sizes), limit))
	for i, size := range sizes {
		if i == limit {
			break
		}
		share := 0.0
		if points > 0 {
			share = 100 * float64(size) / float64(points)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(size), fmt.Sprintf("%.1f%%", share)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Size", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		})

	out := t.Render()
	if hidden := len(sizes) - len(rows); hidden > 0 {
		out += "\n" + StyleDim.Render(fmt.Sprintf("  … %d more circuits", hidden))
	}
	return out
}

// fmtStats is the one-line progress summary of a run.
func fmtStats(r *pipeline.Result) string {
	return fmt.Sprintf("Clustered %d points (%d of %d connections)", r.Stats.Points, r.Stats.Consumed, r.Stats.Connections)
}

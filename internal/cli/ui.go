package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives the styled status lines.
var stdout io.Writer = os.Stdout

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// statusIcon is a colored marker in front of a status line.
type statusIcon struct {
	glyph string
	style lipgloss.Style
}

var (
	iconSuccess = statusIcon{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	iconError   = statusIcon{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	iconWarning = statusIcon{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	iconInfo    = statusIcon{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (i statusIcon) println(msg string) {
	fmt.Fprintln(stdout, i.style.Render(i.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { iconSuccess.println(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { iconError.println(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { iconInfo.println(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	iconWarning.println(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written file under the build summary.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printStats prints "N keys · N files · W × H mm · cached|fresh".
func printStats(keys, files int, width, height float64, cached bool) {
	source := StyleDim.Render("fresh")
	if cached {
		source = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(stdout, "  "+strings.Join([]string{
		StyleDim.Render(fmt.Sprintf("%d keys", keys)),
		StyleDim.Render(fmt.Sprintf("%d files", files)),
		StyleDim.Render(fmt.Sprintf("%s × %s mm", formatMM(width), formatMM(height))),
		source,
	}, sep))
}

// printNextStep suggests a follow-up command.
func printNextStep(label, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(label+":")+" "+styleCommand.Render(cmd))
}

// formatMM formats a length in millimetres with at most two decimals.
func formatMM(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

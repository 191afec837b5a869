package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/bmpedit/pkg/bmp"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an output file line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printStats prints the result dimensions and whether they came from cache.
func printStats(inW, inH, outW, outH int, cached bool) {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	dims := fmt.Sprintf("%dx%d", outW, outH)
	if inW > 0 {
		dims = fmt.Sprintf("%dx%d %s %dx%d", inW, inH, iconArrow, outW, outH)
	}
	fmt.Println("  " + StyleDim.Render(dims) + StyleDim.Render(" · ") + statusStyle.Render(status))
}

// renderHeader writes h as a two-column table.
func renderHeader(w io.Writer, path string, h bmp.Header) {
	labelStyle := lipgloss.NewStyle().Foreground(colorGray).PaddingRight(1)
	valueStyle := lipgloss.NewStyle().Foreground(colorWhite).PaddingLeft(1)

	rows := [][]string{
		{"magic", string(h.Magic[:])},
		{"file size", strconv.FormatUint(uint64(h.FileSize), 10)},
		{"data offset", strconv.FormatUint(uint64(h.DataOffset), 10)},
		{"header size", strconv.FormatUint(uint64(h.DIBSize), 10)},
		{"width", strconv.Itoa(int(h.Width))},
		{"height", strconv.Itoa(int(h.Height))},
		{"planes", strconv.Itoa(int(h.Planes))},
		{"bit count", strconv.Itoa(int(h.BitCount))},
		{"compression", strconv.FormatUint(uint64(h.Compression), 10)},
		{"image size", strconv.FormatUint(uint64(h.ImageSize), 10)},
		{"row stride", strconv.Itoa(h.Stride())},
		{"colors used", strconv.FormatUint(uint64(h.ColorsUsed), 10)},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return labelStyle
			}
			return valueStyle
		})

	fmt.Fprintln(w, StyleTitle.Render(path))
	fmt.Fprintln(w, t.Render())
}

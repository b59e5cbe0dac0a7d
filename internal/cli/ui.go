package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/youruser/soulcard/internal/agent"
	"github.com/youruser/soulcard/internal/form"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleWarning.Render(iconWarning), fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), fmt.Sprintf(format, args...))
}

func printKV(w io.Writer, key, value string) {
	fmt.Fprintf(w, "  %s %s %s\n", styleDim.Render(key), styleDim.Render(iconArrow), value)
}

// printResult reports an action outcome. It returns the action error so
// commands exit non-zero on failure.
func printResult(w io.Writer, r form.Result) error {
	switch r.Status {
	case form.StatusDone:
		switch r.Action {
		case form.ActionExport:
			printSuccess(w, "Exported %s", r.Filename)
		case form.ActionPublish:
			printSuccess(w, "Card published")
			printKV(w, "Agent ID", r.RecordID)
			printKV(w, "Image URL", styleLink.Render(r.PublicURL))
		}
		return nil
	case form.StatusSkipped:
		printWarning(w, "Nothing to %s: card is not mounted", r.Action)
		return nil
	case form.StatusBusy:
		printWarning(w, "Another action is in progress")
		return nil
	}
	printError(w, "%s", r.Notice)
	return r.Err
}

func presetTable(presets []form.Preset) string {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Value)).Render("■■")
		rows = append(rows, []string{swatch, p.Name, p.Value})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Preset", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}

func agentTable(recs []agent.Record) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		created := ""
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{r.ID, r.Name, r.Model, r.SerialNumber, r.ThemeColor, created})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Model", "Serial", "Color", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 4 && row >= 0 && row < len(recs) {
				return lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(recs[row].ThemeColor))
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}

package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arborfs/arbor/internal/utils"
)

const (
	collapsedIndicator  = "▸"
	expandedIndicator   = "▾"
	leafIndicator       = "·"
	indentUnit          = "  "
	defaultVisibleLines = 20
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#5F87AF")).
			Padding(0, 1)

	directoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D7FF")).
			Bold(true)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E8E8E8"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#5F5FAF")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9E9E9E"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))
)

// View implements tea.Model.
func (browser *Browser) View() string {
	var builder strings.Builder
	builder.WriteString(headerStyle.Render(browser.tree.RootPath()))
	builder.WriteString("\n")

	if len(browser.rows) == 0 {
		builder.WriteString(statusStyle.Render("(no entries)"))
		builder.WriteString("\n")
	} else {
		start := browser.offset
		end := start + browser.visibleLineCount()
		if end > len(browser.rows) {
			end = len(browser.rows)
		}
		for rowIndex := start; rowIndex < end; rowIndex++ {
			builder.WriteString(browser.renderRow(rowIndex))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(browser.statusLine())
	builder.WriteString("\n")
	builder.WriteString(browser.help.View(browser.keys))
	return builder.String()
}

func (browser *Browser) renderRow(rowIndex int) string {
	row := browser.rows[rowIndex]
	indicator := leafIndicator
	nameStyle := fileStyle
	if browser.tree.IsDirectory(row.address) {
		nameStyle = directoryStyle
		indicator = collapsedIndicator
		if browser.expanded[row.address] {
			indicator = expandedIndicator
		}
	}
	line := strings.Repeat(indentUnit, row.depth) + indicator + " " + browser.tree.DisplayValue(row.address)
	if rowIndex == browser.cursor {
		return selectedStyle.Render(line)
	}
	return nameStyle.Render(line)
}

// statusLine shows a transient notice when one is set, otherwise the selected
// entry's root-relative path, size, and modification time. The header already
// carries the absolute root.
func (browser *Browser) statusLine() string {
	if browser.notice != "" {
		return noticeStyle.Render(browser.notice)
	}
	row, ok := browser.selectedRow()
	if !ok {
		return statusStyle.Render(browser.tree.RootPath())
	}
	path, known := browser.tree.Path(row.address)
	if !known {
		return statusStyle.Render(browser.tree.RootPath())
	}
	displayPath := utils.RelativePathOrSelf(path, browser.tree.RootPath())
	information, statError := browser.filesystem.Stat(path)
	if statError != nil {
		return statusStyle.Render(displayPath)
	}
	if information.IsDir() {
		return statusStyle.Render(fmt.Sprintf("%s  %s", displayPath, utils.FormatTimestamp(information.ModTime())))
	}
	return statusStyle.Render(fmt.Sprintf("%s  %s  %s",
		displayPath, utils.FormatFileSize(information.Size()), utils.FormatTimestamp(information.ModTime())))
}

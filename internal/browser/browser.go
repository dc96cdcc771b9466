// Package browser is the interactive tree view over a filesystem root. It
// drives the lazily populated tree model one visible level at a time: a
// directory enumerates its children only once it is expanded on screen.
package browser

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/arborfs/arbor/internal/recent"
	"github.com/arborfs/arbor/internal/services/clipboard"
	"github.com/arborfs/arbor/internal/treemodel"
)

// Options configures a Browser.
type Options struct {
	Filesystem  afero.Fs
	RootPath    string
	DeniedNames []string
	ShowHidden  bool
	Clipboard   clipboard.Copier
	Recents     *recent.Store
}

// visibleRow is one on-screen line: a node address plus its indent depth.
type visibleRow struct {
	address treemodel.Address
	depth   int
}

// Browser is the bubbletea model for the interactive tree view.
type Browser struct {
	filesystem  afero.Fs
	tree        *treemodel.Model
	deniedNames []string
	showHidden  bool

	expanded map[treemodel.Address]bool
	rows     []visibleRow
	cursor   int
	offset   int
	width    int
	height   int

	keys      keyMap
	help      help.Model
	clipboard clipboard.Copier
	recents   *recent.Store
	notice    string
}

// New builds a browser rooted at options.RootPath. A missing root is allowed;
// the view simply shows no entries until a refresh or re-root finds some.
func New(options Options) *Browser {
	filesystem := options.Filesystem
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}
	browser := &Browser{
		filesystem:  filesystem,
		deniedNames: options.DeniedNames,
		showHidden:  options.ShowHidden,
		expanded:    make(map[treemodel.Address]bool),
		keys:        newKeyMap(),
		help:        help.New(),
		clipboard:   options.Clipboard,
		recents:     options.Recents,
	}
	browser.tree = treemodel.NewModelWithFilesystem(options.RootPath, browser.policy(), filesystem)
	browser.recordRoot()
	browser.rebuildRows()
	return browser
}

// Run starts the interactive browser and blocks until the user quits.
func Run(options Options) error {
	program := tea.NewProgram(New(options), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (browser *Browser) policy() treemodel.ExclusionPolicy {
	hiddenPrefix := treemodel.DefaultHiddenPrefix
	if browser.showHidden {
		hiddenPrefix = ""
	}
	return treemodel.NewExclusionPolicy(hiddenPrefix, browser.deniedNames)
}

// Init implements tea.Model.
func (browser *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (browser *Browser) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		browser.width = message.Width
		browser.height = message.Height
		browser.help.Width = message.Width
		browser.ensureCursorVisible()
		return browser, nil
	case tea.KeyMsg:
		return browser.handleKey(message)
	}
	return browser, nil
}

func (browser *Browser) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	browser.notice = ""
	switch {
	case key.Matches(message, browser.keys.Quit):
		return browser, tea.Quit
	case key.Matches(message, browser.keys.Help):
		browser.help.ShowAll = !browser.help.ShowAll
	case key.Matches(message, browser.keys.Up):
		browser.moveCursor(-1)
	case key.Matches(message, browser.keys.Down):
		browser.moveCursor(1)
	case key.Matches(message, browser.keys.PageUp):
		browser.moveCursor(-browser.visibleLineCount())
	case key.Matches(message, browser.keys.PageDown):
		browser.moveCursor(browser.visibleLineCount())
	case key.Matches(message, browser.keys.Top):
		browser.moveCursor(-len(browser.rows))
	case key.Matches(message, browser.keys.Bottom):
		browser.moveCursor(len(browser.rows))
	case key.Matches(message, browser.keys.ToggleExpand):
		browser.toggleExpand()
	case key.Matches(message, browser.keys.Expand):
		browser.expandSelected(true)
	case key.Matches(message, browser.keys.Collapse):
		browser.expandSelected(false)
	case key.Matches(message, browser.keys.Open):
		browser.openSelected()
	case key.Matches(message, browser.keys.Parent):
		browser.openParent()
	case key.Matches(message, browser.keys.ToggleHidden):
		browser.showHidden = !browser.showHidden
		browser.applyPolicy()
		if browser.showHidden {
			browser.notice = "hidden entries shown"
		} else {
			browser.notice = "hidden entries filtered"
		}
	case key.Matches(message, browser.keys.Refresh):
		browser.reRoot(browser.tree.RootPath())
	case key.Matches(message, browser.keys.CopyPath):
		browser.copySelectedPath()
	}
	return browser, nil
}

// toggleExpand expands or collapses the selected directory in place.
func (browser *Browser) toggleExpand() {
	row, ok := browser.selectedRow()
	if !ok || !browser.tree.IsDirectory(row.address) {
		return
	}
	browser.setExpandedState(row.address, !browser.expanded[row.address])
}

// expandSelected forces the selected directory into the requested state, so
// holding the key has no effect once the state is reached.
func (browser *Browser) expandSelected(expand bool) {
	row, ok := browser.selectedRow()
	if !ok || !browser.tree.IsDirectory(row.address) {
		return
	}
	browser.setExpandedState(row.address, expand)
}

func (browser *Browser) setExpandedState(address treemodel.Address, expand bool) {
	if browser.expanded[address] == expand {
		return
	}
	if expand {
		browser.expanded[address] = true
	} else {
		delete(browser.expanded, address)
	}
	browser.rebuildRows()
	browser.ensureCursorVisible()
}

// moveCursor shifts the selection by delta rows, clamping to the visible row
// range, and keeps the window following the cursor.
func (browser *Browser) moveCursor(delta int) {
	browser.cursor += delta
	if browser.cursor > len(browser.rows)-1 {
		browser.cursor = len(browser.rows) - 1
	}
	if browser.cursor < 0 {
		browser.cursor = 0
	}
	browser.ensureCursorVisible()
}

// openSelected re-roots the browser into the selected directory. Files are
// ignored.
func (browser *Browser) openSelected() {
	row, ok := browser.selectedRow()
	if !ok || !browser.tree.IsDirectory(row.address) {
		return
	}
	path, known := browser.tree.Path(row.address)
	if !known {
		return
	}
	browser.reRoot(path)
	browser.recordRoot()
}

// openParent re-roots the browser one directory up from the current root.
func (browser *Browser) openParent() {
	currentRoot := browser.tree.RootPath()
	parentPath := filepath.Dir(currentRoot)
	if parentPath == currentRoot {
		return
	}
	browser.reRoot(parentPath)
	browser.recordRoot()
}

func (browser *Browser) copySelectedPath() {
	path := browser.tree.RootPath()
	if row, ok := browser.selectedRow(); ok {
		if rowPath, known := browser.tree.Path(row.address); known {
			path = rowPath
		}
	}
	if browser.clipboard == nil {
		browser.notice = "clipboard unavailable"
		return
	}
	if copyError := browser.clipboard.Copy(path); copyError != nil {
		browser.notice = fmt.Sprintf("copy failed: %v", copyError)
		return
	}
	browser.notice = fmt.Sprintf("copied %s", path)
}

// reRoot points the tree at a new root. Every address held by the view stops
// resolving, so the expanded set and cursor reset with it.
func (browser *Browser) reRoot(rootPath string) {
	browser.tree.SetRoot(rootPath)
	browser.resetView()
}

// applyPolicy rebuilds the tree under the current exclusion policy.
func (browser *Browser) applyPolicy() {
	browser.tree = treemodel.NewModelWithFilesystem(browser.tree.RootPath(), browser.policy(), browser.filesystem)
	browser.resetView()
}

func (browser *Browser) resetView() {
	browser.expanded = make(map[treemodel.Address]bool)
	browser.cursor = 0
	browser.offset = 0
	browser.rebuildRows()
}

func (browser *Browser) recordRoot() {
	if browser.recents == nil {
		return
	}
	_ = browser.recents.Record(browser.tree.RootPath())
}

// rebuildRows flattens the expanded portion of the tree into visible lines.
// Collapsed subtrees are never visited, so they stay unenumerated.
func (browser *Browser) rebuildRows() {
	browser.rows = browser.rows[:0]
	browser.appendLevel(treemodel.Address{}, 0)
	if browser.cursor >= len(browser.rows) {
		browser.cursor = len(browser.rows) - 1
	}
	if browser.cursor < 0 {
		browser.cursor = 0
	}
}

func (browser *Browser) appendLevel(parent treemodel.Address, depth int) {
	rowTotal := browser.tree.RowCount(parent)
	for rowIndex := 0; rowIndex < rowTotal; rowIndex++ {
		address := browser.tree.IndexFor(rowIndex, 0, parent)
		browser.rows = append(browser.rows, visibleRow{address: address, depth: depth})
		if browser.expanded[address] {
			browser.appendLevel(address, depth+1)
		}
	}
}

func (browser *Browser) selectedRow() (visibleRow, bool) {
	if browser.cursor < 0 || browser.cursor >= len(browser.rows) {
		return visibleRow{}, false
	}
	return browser.rows[browser.cursor], true
}

func (browser *Browser) ensureCursorVisible() {
	visible := browser.visibleLineCount()
	if browser.cursor < browser.offset {
		browser.offset = browser.cursor
	}
	if browser.cursor >= browser.offset+visible {
		browser.offset = browser.cursor - visible + 1
	}
	if browser.offset < 0 {
		browser.offset = 0
	}
}

// visibleLineCount is the number of tree lines that fit between the header
// and the footer.
func (browser *Browser) visibleLineCount() int {
	reserved := 3 // header, status line, help line
	visible := browser.height - reserved
	if visible < 1 {
		visible = defaultVisibleLines
	}
	return visible
}

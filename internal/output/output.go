// Package output renders tree snapshots as raw text, JSON, or XML.
package output

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/arborfs/arbor/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix = "/"

	summaryLineFormat = "Summary: %d %s, %d %s"
)

func treeNodeLinePrefix(prefix string, isRoot bool, isLast bool) (string, string) {
	if isRoot {
		return "", ""
	}
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

func renderTreeNode(writer io.Writer, node *types.TreeOutputNode, prefix string, isRoot bool, isLast bool) {
	if node == nil {
		return
	}
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isRoot, isLast)
	label := node.Name
	if isRoot {
		label = node.Path
	} else if node.Type == types.NodeTypeDirectory {
		label += directorySuffix
	}
	fmt.Fprintf(writer, "%s%s\n", linePrefix, label)
	for index, child := range node.Children {
		if child == nil {
			continue
		}
		renderTreeNode(writer, child, childPrefix, false, index == len(node.Children)-1)
	}
}

// WriteTreeRaw renders a directory tree to the provided writer. The root line
// shows the full path; every other line shows the entry name, with a trailing
// slash on directories.
func WriteTreeRaw(writer io.Writer, node *types.TreeOutputNode) {
	if node == nil {
		return
	}
	renderTreeNode(writer, node, "", true, true)
}

// FormatSummaryLine formats aggregate counts into the raw summary line.
func FormatSummaryLine(summary *types.TreeSummary) string {
	if summary == nil {
		summary = &types.TreeSummary{}
	}
	directoryLabel := "directories"
	if summary.Directories == 1 {
		directoryLabel = "directory"
	}
	fileLabel := "files"
	if summary.Files == 1 {
		fileLabel = "file"
	}
	return fmt.Sprintf(summaryLineFormat, summary.Directories, directoryLabel, summary.Files, fileLabel)
}

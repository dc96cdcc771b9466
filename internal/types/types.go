// Package types defines the cross‑package data structures used by the arbor CLI.
package types

import "encoding/xml"

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	CommandBrowse = "browse"
	CommandPrint  = "print"
	CommandRecent = "recent"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// TreeOutputNode represents one rendered node of a directory tree.
type TreeOutputNode struct {
	XMLName  xml.Name          `json:"-" xml:"node"`
	Path     string            `json:"path" xml:"path"`
	Name     string            `json:"name" xml:"name"`
	Type     string            `json:"type" xml:"type"`
	Children []*TreeOutputNode `json:"children,omitempty" xml:"children>node,omitempty"`
}

// TreeSummary captures aggregate counts for a rendered tree.
type TreeSummary struct {
	Directories int `json:"directories" xml:"directories"`
	Files       int `json:"files" xml:"files"`
}

package stream

import (
	"encoding/xml"
	"time"

	"github.com/arborfs/arbor/internal/types"
)

const SchemaVersion = 1

type EventKind string

const (
	EventKindStart     EventKind = "start"
	EventKindDirectory EventKind = "directory"
	EventKindFile      EventKind = "file"
	EventKindSummary   EventKind = "summary"
	EventKindTree      EventKind = "tree"
	EventKindDone      EventKind = "done"
)

type DirectoryPhase string

const (
	DirectoryEnter DirectoryPhase = "enter"
	DirectoryLeave DirectoryPhase = "leave"
)

type Event struct {
	XMLName   xml.Name  `json:"-" xml:"event"`
	Version   int       `json:"version" xml:"version,attr"`
	Kind      EventKind `json:"kind" xml:"kind,attr"`
	Command   string    `json:"command,omitempty" xml:"command,attr,omitempty"`
	Path      string    `json:"path,omitempty" xml:"path,attr,omitempty"`
	EmittedAt time.Time `json:"emittedAt,omitempty" xml:"emittedAt,attr,omitempty"`

	Directory *DirectoryEvent       `json:"directory,omitempty" xml:"directory,omitempty"`
	File      *FileEvent            `json:"file,omitempty" xml:"file,omitempty"`
	Summary   *types.TreeSummary    `json:"summary,omitempty" xml:"summary,omitempty"`
	Tree      *types.TreeOutputNode `json:"tree,omitempty" xml:"tree,omitempty"`
}

type DirectoryEvent struct {
	Phase   DirectoryPhase     `json:"phase" xml:"phase,attr"`
	Path    string             `json:"path" xml:"path,attr"`
	Name    string             `json:"name,omitempty" xml:"name,attr,omitempty"`
	Depth   int                `json:"depth,omitempty" xml:"depth,attr,omitempty"`
	Summary *types.TreeSummary `json:"summary,omitempty" xml:"summary,omitempty"`
}

type FileEvent struct {
	Path  string `json:"path" xml:"path,attr"`
	Name  string `json:"name" xml:"name,attr"`
	Depth int    `json:"depth,omitempty" xml:"depth,attr,omitempty"`
}

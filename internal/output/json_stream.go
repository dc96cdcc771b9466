package output

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/arborfs/arbor/internal/services/stream"
	"github.com/arborfs/arbor/internal/types"
)

// treeDocument is the top-level object the JSON renderer emits.
type treeDocument struct {
	Tree    *types.TreeOutputNode `json:"tree"`
	Summary *types.TreeSummary    `json:"summary,omitempty"`
}

type jsonStreamRenderer struct {
	stdout         io.Writer
	includeSummary bool
	document       treeDocument
}

// NewJSONStreamRenderer renders the tree snapshot and its summary as one
// indented JSON document.
func NewJSONStreamRenderer(stdout io.Writer, includeSummary bool) StreamRenderer {
	return &jsonStreamRenderer{stdout: stdout, includeSummary: includeSummary}
}

func (renderer *jsonStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindTree:
		if event.Tree != nil {
			renderer.document.Tree = event.Tree
		}
	case stream.EventKindSummary:
		if event.Summary != nil && renderer.includeSummary {
			summaryCopy := *event.Summary
			renderer.document.Summary = &summaryCopy
		}
	}
	return nil
}

func (renderer *jsonStreamRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	encoded, marshalError := json.MarshalIndent(renderer.document, indentPrefix, indentSpacer)
	if marshalError != nil {
		return marshalError
	}
	_, writeError := fmt.Fprintln(renderer.stdout, string(encoded))
	return writeError
}

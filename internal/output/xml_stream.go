package output

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/arborfs/arbor/internal/services/stream"
	"github.com/arborfs/arbor/internal/types"
)

// xmlTreeDocument wraps the snapshot in a single result element. The tree
// element name comes from the node type's own XMLName.
type xmlTreeDocument struct {
	XMLName xml.Name              `xml:"result"`
	Tree    *types.TreeOutputNode `xml:",omitempty"`
	Summary *types.TreeSummary    `xml:"summary,omitempty"`
}

type xmlStreamRenderer struct {
	stdout         io.Writer
	includeSummary bool
	document       xmlTreeDocument
}

// NewXMLStreamRenderer renders the tree snapshot and its summary as one
// indented XML document.
func NewXMLStreamRenderer(stdout io.Writer, includeSummary bool) StreamRenderer {
	return &xmlStreamRenderer{stdout: stdout, includeSummary: includeSummary}
}

func (renderer *xmlStreamRenderer) Handle(event stream.Event) error {
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

func (renderer *xmlStreamRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	encoded, marshalError := xml.MarshalIndent(renderer.document, indentPrefix, indentSpacer)
	if marshalError != nil {
		return marshalError
	}
	_, writeError := fmt.Fprintln(renderer.stdout, xmlHeader+string(encoded))
	return writeError
}

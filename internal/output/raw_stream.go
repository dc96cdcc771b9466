package output

import (
	"fmt"
	"io"

	"github.com/arborfs/arbor/internal/services/stream"
	"github.com/arborfs/arbor/internal/types"
)

type rawStreamRenderer struct {
	stdout         io.Writer
	includeSummary bool
	summary        *types.TreeSummary
	trees          []*types.TreeOutputNode
}

// NewRawStreamRenderer renders tree snapshots as connector-drawn text with an
// optional trailing summary line.
func NewRawStreamRenderer(stdout io.Writer, includeSummary bool) StreamRenderer {
	return &rawStreamRenderer{stdout: stdout, includeSummary: includeSummary}
}

func (renderer *rawStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindTree:
		if event.Tree != nil {
			renderer.trees = append(renderer.trees, event.Tree)
		}
	case stream.EventKindSummary:
		if event.Summary != nil {
			summaryCopy := *event.Summary
			renderer.summary = &summaryCopy
		}
	}
	return nil
}

func (renderer *rawStreamRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	for index, node := range renderer.trees {
		if index > 0 {
			fmt.Fprintln(renderer.stdout)
		}
		WriteTreeRaw(renderer.stdout, node)
	}
	if renderer.includeSummary {
		fmt.Fprintln(renderer.stdout)
		fmt.Fprintln(renderer.stdout, FormatSummaryLine(renderer.summary))
	}
	return nil
}

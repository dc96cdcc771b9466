package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arborfs/arbor/internal/output"
	"github.com/arborfs/arbor/internal/types"
)

// decodedTreeDocument mirrors the JSON renderer's top-level object for assertions.
type decodedTreeDocument struct {
	Tree    *types.TreeOutputNode `json:"tree"`
	Summary *types.TreeSummary    `json:"summary"`
}

func TestJSONStreamRendererEmitsDocument(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	renderer := output.NewJSONStreamRenderer(&stdout, true)
	renderEvents(t, renderer, sampleEvents())

	if !strings.HasSuffix(stdout.String(), "\n") {
		t.Fatalf("expected a trailing newline")
	}
	var document decodedTreeDocument
	if decodeError := json.Unmarshal(stdout.Bytes(), &document); decodeError != nil {
		t.Fatalf("decoding output: %v\n%s", decodeError, stdout.String())
	}
	if document.Tree == nil || document.Tree.Path != "/project" || document.Tree.Type != types.NodeTypeDirectory {
		t.Fatalf("expected the project snapshot, got %+v", document.Tree)
	}
	if len(document.Tree.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(document.Tree.Children))
	}
	if document.Tree.Children[1].Name != "src" || len(document.Tree.Children[1].Children) != 1 {
		t.Fatalf("expected a nested src directory, got %+v", document.Tree.Children[1])
	}
	if document.Summary == nil || document.Summary.Directories != 1 || document.Summary.Files != 2 {
		t.Fatalf("expected a summary of 1 directory and 2 files, got %+v", document.Summary)
	}
}

func TestJSONStreamRendererOmitsSummaryWhenDisabled(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	renderer := output.NewJSONStreamRenderer(&stdout, false)
	renderEvents(t, renderer, sampleEvents())

	var document decodedTreeDocument
	if decodeError := json.Unmarshal(stdout.Bytes(), &document); decodeError != nil {
		t.Fatalf("decoding output: %v\n%s", decodeError, stdout.String())
	}
	if document.Summary != nil {
		t.Fatalf("expected no summary, got %+v", document.Summary)
	}
	if document.Tree == nil {
		t.Fatalf("expected the tree snapshot")
	}
}

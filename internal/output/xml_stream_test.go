package output_test

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/arborfs/arbor/internal/output"
	"github.com/arborfs/arbor/internal/types"
)

// decodedXMLDocument mirrors the XML renderer's result element for assertions.
type decodedXMLDocument struct {
	XMLName xml.Name              `xml:"result"`
	Tree    *types.TreeOutputNode `xml:"node"`
	Summary *types.TreeSummary    `xml:"summary"`
}

func TestXMLStreamRendererEmitsDocument(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	renderer := output.NewXMLStreamRenderer(&stdout, true)
	renderEvents(t, renderer, sampleEvents())

	if !strings.HasPrefix(stdout.String(), xml.Header) {
		t.Fatalf("expected the XML header, got:\n%s", stdout.String())
	}
	var document decodedXMLDocument
	if decodeError := xml.Unmarshal(stdout.Bytes(), &document); decodeError != nil {
		t.Fatalf("decoding output: %v\n%s", decodeError, stdout.String())
	}
	if document.Tree == nil || document.Tree.Path != "/project" || document.Tree.Type != types.NodeTypeDirectory {
		t.Fatalf("expected the project snapshot, got %+v", document.Tree)
	}
	if len(document.Tree.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(document.Tree.Children))
	}
	if document.Summary == nil || document.Summary.Directories != 1 || document.Summary.Files != 2 {
		t.Fatalf("expected a summary of 1 directory and 2 files, got %+v", document.Summary)
	}
}

func TestXMLStreamRendererOmitsSummaryWhenDisabled(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	renderer := output.NewXMLStreamRenderer(&stdout, false)
	renderEvents(t, renderer, sampleEvents())

	var document decodedXMLDocument
	if decodeError := xml.Unmarshal(stdout.Bytes(), &document); decodeError != nil {
		t.Fatalf("decoding output: %v\n%s", decodeError, stdout.String())
	}
	if document.Summary != nil {
		t.Fatalf("expected no summary, got %+v", document.Summary)
	}
	if document.Tree == nil {
		t.Fatalf("expected the tree snapshot")
	}
}

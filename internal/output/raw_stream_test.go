package output_test

import (
	"bytes"
	"testing"

	"github.com/arborfs/arbor/internal/output"
	"github.com/arborfs/arbor/internal/services/stream"
	"github.com/arborfs/arbor/internal/types"
)

func sampleTreeNode() *types.TreeOutputNode {
	return &types.TreeOutputNode{
		Path: "/project",
		Name: "project",
		Type: types.NodeTypeDirectory,
		Children: []*types.TreeOutputNode{
			{Path: "/project/README.md", Name: "README.md", Type: types.NodeTypeFile},
			{
				Path: "/project/src",
				Name: "src",
				Type: types.NodeTypeDirectory,
				Children: []*types.TreeOutputNode{
					{Path: "/project/src/main.go", Name: "main.go", Type: types.NodeTypeFile},
				},
			},
		},
	}
}

func sampleEvents() []stream.Event {
	return []stream.Event{
		{Kind: stream.EventKindStart, Path: "/project"},
		{Kind: stream.EventKindFile, File: &stream.FileEvent{Path: "/project/README.md", Name: "README.md", Depth: 1}},
		{Kind: stream.EventKindTree, Tree: sampleTreeNode()},
		{Kind: stream.EventKindSummary, Summary: &types.TreeSummary{Directories: 1, Files: 2}},
		{Kind: stream.EventKindDone},
	}
}

func renderEvents(t *testing.T, renderer output.StreamRenderer, events []stream.Event) {
	t.Helper()
	for index, event := range events {
		if err := renderer.Handle(event); err != nil {
			t.Fatalf("handle event %d failed: %v", index, err)
		}
	}
	if err := renderer.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
}

func TestRawStreamRendererDrawsConnectors(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	renderer := output.NewRawStreamRenderer(&stdout, true)
	renderEvents(t, renderer, sampleEvents())

	expected := "/project\n" +
		"├── README.md\n" +
		"└── src/\n" +
		"    └── main.go\n" +
		"\n" +
		"Summary: 1 directory, 2 files\n"
	if stdout.String() != expected {
		t.Fatalf("expected output:\n%s\ngot:\n%s", expected, stdout.String())
	}
}

func TestRawStreamRendererOmitsSummaryWhenDisabled(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	renderer := output.NewRawStreamRenderer(&stdout, false)
	renderEvents(t, renderer, sampleEvents())

	expected := "/project\n" +
		"├── README.md\n" +
		"└── src/\n" +
		"    └── main.go\n"
	if stdout.String() != expected {
		t.Fatalf("expected output:\n%s\ngot:\n%s", expected, stdout.String())
	}
}

func TestFormatSummaryLinePluralization(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		summary  *types.TreeSummary
		expected string
	}{
		{name: "plural counts", summary: &types.TreeSummary{Directories: 2, Files: 3}, expected: "Summary: 2 directories, 3 files"},
		{name: "singular counts", summary: &types.TreeSummary{Directories: 1, Files: 1}, expected: "Summary: 1 directory, 1 file"},
		{name: "empty tree", summary: &types.TreeSummary{}, expected: "Summary: 0 directories, 0 files"},
		{name: "nil summary", summary: nil, expected: "Summary: 0 directories, 0 files"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if actual := output.FormatSummaryLine(testCase.summary); actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

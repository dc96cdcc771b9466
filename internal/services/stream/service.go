// Package stream walks a tree model and emits ordered traversal events
// suitable for incremental rendering.
package stream

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/arborfs/arbor/internal/treemodel"
	"github.com/arborfs/arbor/internal/types"
)

// UnlimitedDepth disables the traversal depth cutoff.
const UnlimitedDepth = 0

const (
	errorNilEventChannelMessage = "stream: event channel is nil"
	errorNilModelMessage        = "stream: tree model is nil"
)

// WalkOptions configures a model walk.
type WalkOptions struct {
	// Model is the tree the walk reads. Only the walking goroutine may
	// touch it; the model performs no locking of its own.
	Model *treemodel.Model
	// MaxDepth bounds how many levels below the root are visited.
	// UnlimitedDepth visits everything.
	MaxDepth int
}

type emitter struct {
	ctx     context.Context
	out     chan<- Event
	command string
}

func newEmitter(ctx context.Context, out chan<- Event, command string) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out, command: command}
}

func (e *emitter) send(event Event) error {
	if e.out == nil {
		return errors.New(errorNilEventChannelMessage)
	}
	event.Version = SchemaVersion
	if event.Command == "" {
		event.Command = e.command
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

// WalkModel traverses the model in row order, sending a start event, one event
// per visited entry, the assembled tree snapshot, the aggregate summary, and a
// final done event. The walk materializes levels only as it descends, so a
// depth cutoff leaves deeper levels untouched.
func WalkModel(ctx context.Context, options WalkOptions, out chan<- Event) error {
	if options.Model == nil {
		return errors.New(errorNilModelMessage)
	}

	emitterInstance := newEmitter(ctx, out, types.CommandPrint)
	rootPath := options.Model.RootPath()
	if sendError := emitterInstance.send(Event{Kind: EventKindStart, Path: rootPath}); sendError != nil {
		return sendError
	}

	rootType := types.NodeTypeFile
	if options.Model.RootIsDirectory() {
		rootType = types.NodeTypeDirectory
	}
	rootNode := &types.TreeOutputNode{
		Path: rootPath,
		Name: filepath.Base(rootPath),
		Type: rootType,
	}

	summary, walkError := walkLevel(emitterInstance, options, treemodel.Address{}, rootNode, 1)
	if walkError != nil {
		return walkError
	}

	if sendError := emitterInstance.send(Event{Kind: EventKindTree, Path: rootPath, Tree: rootNode}); sendError != nil {
		return sendError
	}
	if sendError := emitterInstance.send(Event{Kind: EventKindSummary, Path: rootPath, Summary: &summary}); sendError != nil {
		return sendError
	}
	return emitterInstance.send(Event{Kind: EventKindDone, Path: rootPath})
}

// walkLevel visits every row under parent, appending snapshot children to
// parentNode and returning the counts for the whole subtree.
func walkLevel(emitterInstance *emitter, options WalkOptions, parent treemodel.Address, parentNode *types.TreeOutputNode, depth int) (types.TreeSummary, error) {
	summary := types.TreeSummary{}
	if options.MaxDepth != UnlimitedDepth && depth > options.MaxDepth {
		return summary, nil
	}
	model := options.Model
	rowCount := model.RowCount(parent)
	for row := 0; row < rowCount; row++ {
		address := model.IndexFor(row, 0, parent)
		entryPath, pathKnown := model.Path(address)
		if !pathKnown {
			continue
		}
		entryName := model.DisplayValue(address)

		if !model.IsDirectory(address) {
			summary.Files++
			if sendError := emitterInstance.send(Event{
				Kind: EventKindFile,
				Path: entryPath,
				File: &FileEvent{Path: entryPath, Name: entryName, Depth: depth},
			}); sendError != nil {
				return summary, sendError
			}
			parentNode.Children = append(parentNode.Children, &types.TreeOutputNode{
				Path: entryPath,
				Name: entryName,
				Type: types.NodeTypeFile,
			})
			continue
		}

		summary.Directories++
		if sendError := emitterInstance.send(Event{
			Kind: EventKindDirectory,
			Path: entryPath,
			Directory: &DirectoryEvent{
				Phase: DirectoryEnter,
				Path:  entryPath,
				Name:  entryName,
				Depth: depth,
			},
		}); sendError != nil {
			return summary, sendError
		}

		directoryNode := &types.TreeOutputNode{
			Path: entryPath,
			Name: entryName,
			Type: types.NodeTypeDirectory,
		}
		subtreeSummary, walkError := walkLevel(emitterInstance, options, address, directoryNode, depth+1)
		summary.Directories += subtreeSummary.Directories
		summary.Files += subtreeSummary.Files
		if walkError != nil {
			return summary, walkError
		}

		leaveSummary := subtreeSummary
		if sendError := emitterInstance.send(Event{
			Kind: EventKindDirectory,
			Path: entryPath,
			Directory: &DirectoryEvent{
				Phase:   DirectoryLeave,
				Path:    entryPath,
				Name:    entryName,
				Depth:   depth,
				Summary: &leaveSummary,
			},
		}); sendError != nil {
			return summary, sendError
		}
		parentNode.Children = append(parentNode.Children, directoryNode)
	}
	return summary, nil
}

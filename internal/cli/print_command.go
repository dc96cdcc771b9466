package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/arborfs/arbor/internal/output"
	"github.com/arborfs/arbor/internal/services/clipboard"
	"github.com/arborfs/arbor/internal/services/stream"
	"github.com/arborfs/arbor/internal/treemodel"
	"github.com/arborfs/arbor/internal/types"
)

const warningClipboardFormat = "Warning: clipboard copy failed: %v\n"

// printOptions carries everything runPrint needs. The zero value of each
// injectable field falls back to the real dependency, so commands construct
// only what they override and tests substitute writers, filesystem, and
// clipboard.
type printOptions struct {
	TargetPath      string
	Format          string
	MaxDepth        int
	IncludeSummary  bool
	CopyToClipboard bool
	Policy          treemodel.ExclusionPolicy

	Filesystem afero.Fs
	Stdout     io.Writer
	Stderr     io.Writer
	Clipboard  clipboard.Copier
}

// runPrint walks the tree level by level and renders it in the requested
// format. With CopyToClipboard the rendering is captured and placed on the
// clipboard after a successful flush; clipboard failures degrade to a warning
// because stdout already carries the output.
func runPrint(ctx context.Context, options printOptions) (err error) {
	filesystem := options.Filesystem
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}
	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := options.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	validated, pathError := resolveTargetPath(filesystem, options.TargetPath)
	if pathError != nil {
		return pathError
	}

	var rendered bytes.Buffer
	destination := stdout
	if options.CopyToClipboard {
		destination = io.MultiWriter(stdout, &rendered)
	}

	var renderer output.StreamRenderer
	switch options.Format {
	case types.FormatRaw:
		renderer = output.NewRawStreamRenderer(destination, options.IncludeSummary)
	case types.FormatJSON:
		renderer = output.NewJSONStreamRenderer(destination, options.IncludeSummary)
	case types.FormatXML:
		renderer = output.NewXMLStreamRenderer(destination, options.IncludeSummary)
	default:
		return fmt.Errorf(invalidFormatMessage, options.Format)
	}

	defer func() {
		if flushError := renderer.Flush(); flushError != nil && err == nil {
			err = flushError
		}
		if err != nil || !options.CopyToClipboard {
			return
		}
		copier := options.Clipboard
		if copier == nil {
			copier = clipboard.NewService()
		}
		if copyError := copier.Copy(rendered.String()); copyError != nil {
			fmt.Fprintf(stderr, warningClipboardFormat, copyError)
		}
	}()

	model := treemodel.NewModelWithFilesystem(validated.AbsolutePath, options.Policy, filesystem)

	producer := func(streamCtx context.Context, events chan<- stream.Event) error {
		walkOptions := stream.WalkOptions{
			Model:    model,
			MaxDepth: options.MaxDepth,
		}
		return stream.WalkModel(streamCtx, walkOptions, events)
	}

	return dispatchStream(ctx, producer, renderer.Handle)
}

// dispatchStream runs the producer and consumer concurrently, closing the
// event channel when production ends. The producer goroutine is the only
// goroutine touching the tree model.
func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// resolveTargetPath converts the input path to absolute form and validates
// that it exists on the provided filesystem.
func resolveTargetPath(filesystem afero.Fs, inputPath string) (types.ValidatedPath, error) {
	if inputPath == "" {
		inputPath = defaultPath
	}
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := filesystem.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	return types.ValidatedPath{AbsolutePath: cleanPath, IsDir: info.IsDir()}, nil
}

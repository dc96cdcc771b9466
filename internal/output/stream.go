package output

import (
	"github.com/arborfs/arbor/internal/services/stream"
)

type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}

// Package clipboard wraps the system clipboard behind a small interface so
// commands can substitute a fake in tests.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies text to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service is the production Copier backed by github.com/atotto/clipboard.
type Service struct{}

// NewService returns the system-clipboard Copier.
func NewService() *Service {
	return &Service{}
}

// Copy places text on the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ Copier = (*Service)(nil)

package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps a local ledger of pets created by scenario runs so they can be
// removed from the shared test account later.

// Entry is one recorded pet.
type Entry struct {
	ID        string
	CreatedAt time.Time
}

// Ledger tracks ids of pets created on the remote service.
type Ledger interface {
	Close() error
	Record(id string) error
	Forget(id string) error
	Entries() ([]Entry, error)
}

// NewLedger creates the configured storage backend.
func NewLedger(typ, path string) (Ledger, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "none", "disabled":
		return noopLedger{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		ledger, err := openBolt(path)
		if err != nil {
			return nil, err
		}
		return ledger, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

type noopLedger struct{}

func (noopLedger) Close() error              { return nil }
func (noopLedger) Record(string) error       { return nil }
func (noopLedger) Forget(string) error       { return nil }
func (noopLedger) Entries() ([]Entry, error) { return nil, nil }

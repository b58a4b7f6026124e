// Package store persists computed layouts.
//
// Two backends implement [Store]:
//
//   - [MemoryStore] keeps layouts in process, for tests and servers
//     started without a database
//   - [MongoStore] keeps them in a MongoDB collection
//
// Saving assigns a random UUID and a creation time unless the layout
// already carries them.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/kinship/pkg/graph"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no layout has the requested id.
	ErrNotFound = errors.New("layout not found")

	// ErrInvalidLayout is returned when saving a layout without nodes.
	ErrInvalidLayout = errors.New("invalid layout")
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Store is the interface for layout storage backends.
type Store interface {
	// Save stores l and returns its id.
	Save(ctx context.Context, l *graph.Layout) (string, error)

	// Get returns the layout with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*graph.Layout, error)

	// List returns summaries of the stored layouts, newest first. An empty
	// root lists layouts of every root.
	List(ctx context.Context, root string, limit int) ([]Summary, error)

	// Delete removes a layout. It returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error

	// Close releases the backend's resources.
	Close(ctx context.Context) error
}

// Summary describes a stored layout without its nodes.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Root      string    `json:"root" bson:"root"`
	Language  string    `json:"language,omitempty" bson:"language,omitempty"`
	Nodes     int       `json:"nodes" bson:"-"`
	InputHash string    `json:"input_hash,omitempty" bson:"input_hash,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func summarize(l *graph.Layout) Summary {
	return Summary{
		ID:        l.ID,
		Root:      l.Root,
		Language:  l.Language,
		Nodes:     len(l.Nodes),
		InputHash: l.InputHash,
		CreatedAt: l.CreatedAt,
	}
}

// prepare validates l and fills in its id and creation time.
func prepare(l *graph.Layout, now time.Time) error {
	if l == nil || len(l.Nodes) == 0 || l.Root == "" {
		return ErrInvalidLayout
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now.UTC().Truncate(time.Millisecond)
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

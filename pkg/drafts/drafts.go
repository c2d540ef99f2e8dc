// Package drafts stores named galaxy generation configs so admins can
// iterate on parameters before committing a universe-wide regeneration.
//
// Two backends implement [Store]:
//   - file: JSON files in a config directory, for single-admin CLI use
//   - mongo: a MongoDB collection, for the shared console deployment
package drafts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meridian/starchart/pkg/errors"
	"github.com/meridian/starchart/pkg/galaxy"
)

// Draft is a saved generation config awaiting review.
type Draft struct {
	ID        uuid.UUID               `json:"id" bson:"_id"`
	Name      string                  `json:"name" bson:"name"`
	Config    galaxy.GenerationConfig `json:"config" bson:"config"`
	CreatedAt time.Time               `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time               `json:"updated_at" bson:"updated_at"`
}

// Store persists drafts.
type Store interface {
	// Create validates and saves a new draft.
	Create(ctx context.Context, name string, cfg galaxy.GenerationConfig) (*Draft, error)

	// Get returns a draft by ID, or a DRAFT_NOT_FOUND error.
	Get(ctx context.Context, id uuid.UUID) (*Draft, error)

	// List returns all drafts, newest first.
	List(ctx context.Context) ([]Draft, error)

	// Update replaces a draft's config and bumps UpdatedAt.
	Update(ctx context.Context, id uuid.UUID, cfg galaxy.GenerationConfig) (*Draft, error)

	// Delete removes a draft. Deleting a missing draft is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepareConfig fills defaults and validates a config on its way into a
// store. A draft is named at the store level; its config borrows that name
// until an admin sets a galaxy name of its own, so nameless configs are
// fine here even though generation requires a name.
func prepareConfig(draftName string, cfg *galaxy.GenerationConfig) error {
	if cfg.Name == "" {
		cfg.Name = draftName
	}
	cfg.SetDefaults()
	return cfg.Validate()
}

// newDraft validates inputs and assembles a Draft with fresh timestamps.
func newDraft(name string, cfg galaxy.GenerationConfig) (*Draft, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	if err := prepareConfig(name, &cfg); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Draft{
		ID:        uuid.New(),
		Name:      name,
		Config:    cfg,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func notFound(id uuid.UUID) error {
	return errors.New(errors.ErrCodeDraftNotFound, "draft %s not found", id)
}

package ports

import (
	"context"

	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/aretw0/cipollino/pkg/project"
)

// ProjectStore keeps named projects.
type ProjectStore interface {
	// Save writes p under name, replacing whatever was stored there. Per-file
	// failures are listed in the report; the first one is also returned.
	Save(ctx context.Context, name string, p *project.Project) (*persistence.SaveReport, error)

	// Load reads the project stored under name.
	// Returns domain.ErrProjectNotFound if there is none.
	Load(ctx context.Context, name string) (*project.Project, *persistence.LoadReport, error)

	// Delete removes the project. Deleting a missing project is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored project names.
	List(ctx context.Context) ([]string, error)
}

// interfaces.go - Consumer-side interfaces for handler dependencies
package api

import (
	"context"

	"github.com/venue-navigator/backend/internal/models"
)

// NodeLister is the slice of the venue client the nodes handler needs.
// The session manager carries its own client; this one exists so the
// catalog proxy can be tested without a live venue service.
type NodeLister interface {
	ListNodes(ctx context.Context) (models.NodeCatalog, error)
}

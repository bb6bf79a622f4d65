package repositories

import (
	"context"
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
)

// PublicEntryReader defines read operations for public entry data.
type PublicEntryReader interface {
	// FindPublicEntryByID retrieves a specific public entry by its identifier.
	FindPublicEntryByID(ctx context.Context, publicEntryID int64) (*domain.PublicEntry, error)

	// ListPublicEntries retrieves a paginated list of public entries using
	// token-based pagination ordered by entry date.
	ListPublicEntries(ctx context.Context, limit int, nextToken *string) ([]domain.PublicEntry, *string, error)

	// FindActivePublicEntriesByDate retrieves public entries on the given
	// calendar date whose status is neither cancelled nor completed. The
	// optional excludeID omits the entry under update from the result.
	FindActivePublicEntriesByDate(ctx context.Context, date time.Time, excludeID *int64) ([]domain.PublicEntry, error)
}

// PublicEntryWriter defines write operations for public entry data. Each
// method owns one database transaction covering the row write and its audit
// entry.
type PublicEntryWriter interface {
	// SavePublicEntry inserts a new public entry plus its audit entry and
	// returns the assigned identifier.
	SavePublicEntry(ctx context.Context, entry domain.PublicEntry, audit domain.AuditLog) (int64, error)

	// UpdatePublicEntry persists all mutable fields of a public entry plus its
	// audit entry.
	UpdatePublicEntry(ctx context.Context, entry domain.PublicEntry, audit domain.AuditLog) error
}

// PublicEntryRepositoryFacade combines all public entry repository interfaces.
type PublicEntryRepositoryFacade interface {
	PublicEntryReader
	PublicEntryWriter
}

package ports

import (
	"context"
	"time"

	"github.com/colisdirect/delivery-system/internal/core/domain"
)

// ParcelScope restricts queries to the parcels an actor is allowed to see.
// All fields empty means no restriction (manager).
type ParcelScope struct {
	CourierID   string // courier: only parcels assigned to them
	ClientID    string // client: only parcels they sent
	RecipientID string // recipient: only parcels addressed to them
}

// ListParcelsFilter carries all query parameters for listing parcels.
// Scope is always set by the service layer from the acting user.
type ListParcelsFilter struct {
	Scope    ParcelScope
	Status   string // optional: filter by status
	Priority string // optional: filter by priority
	Search   string // optional: partial match on reference or description
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// ParcelRepository defines persistence operations for parcels.
type ParcelRepository interface {
	Create(ctx context.Context, p *domain.Parcel) error
	FindByID(ctx context.Context, id string) (*domain.Parcel, error)
	// FindByReference retrieves a parcel by its public reference code.
	FindByReference(ctx context.Context, reference string) (*domain.Parcel, error)
	Update(ctx context.Context, p *domain.Parcel) error
	Delete(ctx context.Context, id string) error
	// List returns a page of parcels matching filter and the total count.
	List(ctx context.Context, filter ListParcelsFilter) ([]*domain.Parcel, int64, error)
	// SetStatus atomically sets the parcel's status and modification time and
	// returns the updated document, which is the authoritative post-transition
	// state handed back to callers.
	SetStatus(ctx context.Context, id string, status domain.Status, modifiedAt time.Time) (*domain.Parcel, error)
	// CountByStatus aggregates parcel counts per status within scope.
	CountByStatus(ctx context.Context, scope ParcelScope) (*domain.StatusCounts, error)
	// FindOverdue returns non-terminal parcels whose due date is before now.
	FindOverdue(ctx context.Context, scope ParcelScope, now time.Time) ([]*domain.Parcel, error)
}

// HistoryRepository persists the append-only status transition log.
type HistoryRepository interface {
	Append(ctx context.Context, change *domain.StatusChange) error
	// ListByParcel returns the parcel's transitions, newest first.
	ListByParcel(ctx context.Context, parcelID string) ([]domain.StatusChange, error)
}

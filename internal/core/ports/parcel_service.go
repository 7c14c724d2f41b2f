package ports

import (
	"context"
	"time"

	"github.com/colisdirect/delivery-system/internal/core/domain"
)

// CreateParcelInput carries all data needed to register a new parcel.
type CreateParcelInput struct {
	Description     string
	WeightKg        float64
	Priority        string
	SenderClientID  string
	RecipientID     string
	CourierID       string
	ZoneID          string
	DestinationCity string
	DueDate         *time.Time
	Comment         string
}

// UpdateParcelInput carries the mutable descriptive fields of a parcel.
// Status is deliberately absent: transitions go through UpdateStatus only.
type UpdateParcelInput struct {
	Description     string
	WeightKg        float64
	Priority        string
	RecipientID     string
	CourierID       string
	ZoneID          string
	DestinationCity string
	DueDate         *time.Time
	Comment         string
}

// UpdateStatusInput is the transition request handed to the service.
type UpdateStatusInput struct {
	ParcelID  string
	NewStatus string
	Comment   string
}

// ListParcelsInput carries all parameters for the list endpoint.
type ListParcelsInput struct {
	Status   string
	Priority string
	Search   string
	Page     int
	Limit    int
}

// ParcelPage is one page of parcels plus pagination metadata.
type ParcelPage struct {
	Items      []*domain.Parcel
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TrackingStep is one public history entry: no actor attribution.
type TrackingStep struct {
	Status    domain.Status
	ChangedAt time.Time
	Comment   string
}

// TrackingView is the redacted parcel view served on the public tracking page.
type TrackingView struct {
	Reference       string
	Status          domain.Status
	DestinationCity string
	CreatedAt       time.Time
	ModifiedAt      time.Time
	DueDate         *time.Time
	Steps           []TrackingStep
}

// ParcelService defines the use-case operations for parcels. Every call takes
// the acting user explicitly; nothing reads ambient session state.
type ParcelService interface {
	Create(ctx context.Context, in CreateParcelInput, actor domain.Actor) (*domain.Parcel, error)
	Get(ctx context.Context, id string, actor domain.Actor) (*domain.Parcel, error)
	Update(ctx context.Context, id string, in UpdateParcelInput, actor domain.Actor) (*domain.Parcel, error)
	Delete(ctx context.Context, id string, actor domain.Actor) error
	List(ctx context.Context, in ListParcelsInput, actor domain.Actor) (*ParcelPage, error)
	// UpdateStatus performs the authoritative status transition: it validates
	// role and ownership, persists the new status, appends a StatusChange
	// record, and returns the updated parcel. A no-op (new == current) is
	// accepted and recorded.
	UpdateStatus(ctx context.Context, in UpdateStatusInput, actor domain.Actor) (*domain.Parcel, error)
	History(ctx context.Context, parcelID string, actor domain.Actor) ([]domain.StatusChange, error)
	Statistics(ctx context.Context, actor domain.Actor) (*domain.StatusCounts, error)
	Overdue(ctx context.Context, actor domain.Actor) ([]*domain.Parcel, error)
	// Track serves the public tracking page; no authentication, no actor.
	Track(ctx context.Context, reference string) (*TrackingView, error)
}

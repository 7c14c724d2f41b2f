package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colisdirect/delivery-system/internal/core/domain"
	"github.com/colisdirect/delivery-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// StatsCache abstracts the short-lived statistics cache (Redis).
type StatsCache interface {
	Get(ctx context.Context, scopeKey string) (*domain.StatusCounts, bool, error)
	Set(ctx context.Context, scopeKey string, counts *domain.StatusCounts) error
}

type ParcelService struct {
	parcels ports.ParcelRepository
	history ports.HistoryRepository
	stats   StatsCache
	logger  zerolog.Logger
}

// NewParcelService returns a ParcelService. stats may be nil, in which case
// statistics are always computed from the repository.
func NewParcelService(parcels ports.ParcelRepository, history ports.HistoryRepository, stats StatsCache, logger zerolog.Logger) *ParcelService {
	return &ParcelService{parcels: parcels, history: history, stats: stats, logger: logger}
}

// scopeFor translates the acting user into a repository-level visibility scope.
func scopeFor(actor domain.Actor) ports.ParcelScope {
	switch actor.Role {
	case domain.RoleCourier:
		return ports.ParcelScope{CourierID: actor.CourierID}
	case domain.RoleClient:
		return ports.ParcelScope{ClientID: actor.ClientID}
	case domain.RoleRecipient:
		return ports.ParcelScope{RecipientID: actor.RecipientID}
	default:
		return ports.ParcelScope{}
	}
}

// canView reports whether the actor may read this parcel at all.
func canView(actor domain.Actor, p *domain.Parcel) bool {
	switch actor.Role {
	case domain.RoleManager:
		return true
	case domain.RoleCourier:
		return actor.CourierID != "" && p.CourierID == actor.CourierID
	case domain.RoleClient:
		return actor.ClientID != "" && p.SenderClientID == actor.ClientID
	case domain.RoleRecipient:
		return actor.RecipientID != "" && p.RecipientID == actor.RecipientID
	default:
		return false
	}
}

func (s *ParcelService) Create(ctx context.Context, in ports.CreateParcelInput, actor domain.Actor) (*domain.Parcel, error) {
	if actor.Role != domain.RoleManager && actor.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}

	senderID := in.SenderClientID
	if actor.Role == domain.RoleClient {
		// Clients always register parcels on their own account.
		senderID = actor.ClientID
	}

	priority := domain.Priority(in.Priority)
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidTransition, in.Priority)
	}

	now := time.Now().UTC()
	parcel := &domain.Parcel{
		ID:              uuid.NewString(),
		Reference:       generateReference(),
		Description:     in.Description,
		WeightKg:        in.WeightKg,
		Priority:        priority,
		Status:          domain.StatusCreated,
		SenderClientID:  senderID,
		RecipientID:     in.RecipientID,
		CourierID:       in.CourierID,
		ZoneID:          in.ZoneID,
		DestinationCity: in.DestinationCity,
		DueDate:         in.DueDate,
		Comment:         in.Comment,
		CreatedAt:       now,
		ModifiedAt:      now,
	}

	if err := s.parcels.Create(ctx, parcel); err != nil {
		s.logger.Error().Err(err).Msg("failed to create parcel")
		return nil, err
	}

	s.logger.Info().
		Str("parcel_id", parcel.ID).
		Str("reference", parcel.Reference).
		Str("sender_client_id", senderID).
		Msg("parcel created")

	return parcel, nil
}

func (s *ParcelService) Get(ctx context.Context, id string, actor domain.Actor) (*domain.Parcel, error) {
	parcel, err := s.parcels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, parcel) {
		return nil, domain.ErrForbidden
	}
	return parcel, nil
}

func (s *ParcelService) Update(ctx context.Context, id string, in ports.UpdateParcelInput, actor domain.Actor) (*domain.Parcel, error) {
	if actor.Role != domain.RoleManager {
		return nil, domain.ErrForbidden
	}

	parcel, err := s.parcels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	priority := domain.Priority(in.Priority)
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidTransition, in.Priority)
	}

	parcel.Description = in.Description
	parcel.WeightKg = in.WeightKg
	parcel.Priority = priority
	parcel.RecipientID = in.RecipientID
	parcel.CourierID = in.CourierID
	parcel.ZoneID = in.ZoneID
	parcel.DestinationCity = in.DestinationCity
	parcel.DueDate = in.DueDate
	parcel.Comment = in.Comment
	parcel.ModifiedAt = time.Now().UTC()

	if err := s.parcels.Update(ctx, parcel); err != nil {
		s.logger.Error().Err(err).Str("parcel_id", id).Msg("failed to update parcel")
		return nil, err
	}
	return parcel, nil
}

func (s *ParcelService) Delete(ctx context.Context, id string, actor domain.Actor) error {
	if actor.Role != domain.RoleManager {
		return domain.ErrForbidden
	}
	if _, err := s.parcels.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.parcels.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("parcel_id", id).Str("deleted_by", actor.Username).Msg("parcel deleted")
	return nil
}

func (s *ParcelService) List(ctx context.Context, in ports.ListParcelsInput, actor domain.Actor) (*ports.ParcelPage, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page := in.Page
	if page < 1 {
		page = 1
	}

	items, total, err := s.parcels.List(ctx, ports.ListParcelsFilter{
		Scope:    scopeFor(actor),
		Status:   in.Status,
		Priority: in.Priority,
		Search:   in.Search,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ParcelPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus is the authoritative status transition. The client-side policy
// is advisory UX only; this is where denial actually happens.
func (s *ParcelService) UpdateStatus(ctx context.Context, in ports.UpdateStatusInput, actor domain.Actor) (*domain.Parcel, error) {
	parcel, err := s.parcels.FindByID(ctx, in.ParcelID)
	if err != nil {
		return nil, err
	}

	newStatus := domain.Status(in.NewStatus)
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, in.NewStatus)
	}

	if !domain.CanUpdateStatus(actor.Role, actor.CourierID, parcel.CourierID) {
		return nil, domain.ErrForbidden
	}

	assigned := actor.CourierID != "" && actor.CourierID == parcel.CourierID
	if !domain.StatusAllowed(actor.Role, parcel.Status, newStatus, assigned) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, parcel.Status, newStatus)
	}

	oldStatus := parcel.Status
	now := time.Now().UTC()

	updated, err := s.parcels.SetStatus(ctx, parcel.ID, newStatus, now)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	change := &domain.StatusChange{
		ID:        uuid.NewString(),
		ParcelID:  parcel.ID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Comment:   in.Comment,
		ChangedAt: now,
		ChangedBy: actor.Username,
	}
	if err := s.history.Append(ctx, change); err != nil {
		// The transition itself committed; losing one audit row is logged, not fatal.
		s.logger.Warn().Err(err).Str("parcel_id", parcel.ID).Msg("failed to append status change")
	}

	s.logger.Info().
		Str("parcel_id", parcel.ID).
		Str("old_status", string(oldStatus)).
		Str("new_status", string(newStatus)).
		Str("changed_by", actor.Username).
		Msg("parcel status updated")

	return updated, nil
}

func (s *ParcelService) History(ctx context.Context, parcelID string, actor domain.Actor) ([]domain.StatusChange, error) {
	parcel, err := s.parcels.FindByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, parcel) {
		return nil, domain.ErrForbidden
	}
	return s.history.ListByParcel(ctx, parcelID)
}

func (s *ParcelService) Statistics(ctx context.Context, actor domain.Actor) (*domain.StatusCounts, error) {
	scope := scopeFor(actor)
	key := statsKey(actor, scope)

	if s.stats != nil {
		if counts, ok, err := s.stats.Get(ctx, key); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed, falling back to repository")
		} else if ok {
			return counts, nil
		}
	}

	counts, err := s.parcels.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		if err := s.stats.Set(ctx, key, counts); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return counts, nil
}

func (s *ParcelService) Overdue(ctx context.Context, actor domain.Actor) ([]*domain.Parcel, error) {
	return s.parcels.FindOverdue(ctx, scopeFor(actor), time.Now().UTC())
}

func (s *ParcelService) Track(ctx context.Context, reference string) (*ports.TrackingView, error) {
	parcel, err := s.parcels.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	changes, err := s.history.ListByParcel(ctx, parcel.ID)
	if err != nil {
		return nil, err
	}

	// Newest first; the registration step closes the list.
	steps := make([]ports.TrackingStep, 0, len(changes)+1)
	for _, c := range changes {
		steps = append(steps, ports.TrackingStep{
			Status:    c.NewStatus,
			ChangedAt: c.ChangedAt,
			Comment:   c.Comment,
		})
	}
	steps = append(steps, ports.TrackingStep{Status: domain.StatusCreated, ChangedAt: parcel.CreatedAt})

	return &ports.TrackingView{
		Reference:       parcel.Reference,
		Status:          parcel.Status,
		DestinationCity: parcel.DestinationCity,
		CreatedAt:       parcel.CreatedAt,
		ModifiedAt:      parcel.ModifiedAt,
		DueDate:         parcel.DueDate,
		Steps:           steps,
	}, nil
}

// statsKey builds the cache key for an actor's statistics scope.
func statsKey(actor domain.Actor, scope ports.ParcelScope) string {
	switch {
	case scope.CourierID != "":
		return "courier:" + scope.CourierID
	case scope.ClientID != "":
		return "client:" + scope.ClientID
	case scope.RecipientID != "":
		return "recipient:" + scope.RecipientID
	default:
		return "all"
	}
}

// generateReference returns a public reference code in the format CD-XXXXXXXX.
func generateReference() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("CD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("CD-%08X", b)
}

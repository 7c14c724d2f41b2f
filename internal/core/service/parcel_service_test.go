package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/colisdirect/delivery-system/internal/core/domain"
	"github.com/colisdirect/delivery-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubParcelRepo struct {
	byID      map[string]*domain.Parcel
	createErr error
	setErr    error
}

func newStubParcelRepo() *stubParcelRepo {
	return &stubParcelRepo{byID: make(map[string]*domain.Parcel)}
}

func (r *stubParcelRepo) Create(_ context.Context, p *domain.Parcel) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubParcelRepo) FindByID(_ context.Context, id string) (*domain.Parcel, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrParcelNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubParcelRepo) FindByReference(_ context.Context, reference string) (*domain.Parcel, error) {
	for _, p := range r.byID {
		if p.Reference == reference {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrParcelNotFound
}

func (r *stubParcelRepo) Update(_ context.Context, p *domain.Parcel) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrParcelNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubParcelRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func inScope(p *domain.Parcel, scope ports.ParcelScope) bool {
	if scope.CourierID != "" && p.CourierID != scope.CourierID {
		return false
	}
	if scope.ClientID != "" && p.SenderClientID != scope.ClientID {
		return false
	}
	if scope.RecipientID != "" && p.RecipientID != scope.RecipientID {
		return false
	}
	return true
}

func (r *stubParcelRepo) List(_ context.Context, f ports.ListParcelsFilter) ([]*domain.Parcel, int64, error) {
	var matched []*domain.Parcel
	for _, p := range r.byID {
		if !inScope(p, f.Scope) {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(p.Priority) != f.Priority {
			continue
		}
		if f.Search != "" {
			refMatch := strings.Contains(strings.ToLower(p.Reference), strings.ToLower(f.Search))
			descMatch := strings.Contains(strings.ToLower(p.Description), strings.ToLower(f.Search))
			if !refMatch && !descMatch {
				continue
			}
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return nil, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubParcelRepo) SetStatus(_ context.Context, id string, status domain.Status, modifiedAt time.Time) (*domain.Parcel, error) {
	if r.setErr != nil {
		return nil, r.setErr
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrParcelNotFound
	}
	p.Status = status
	p.ModifiedAt = modifiedAt
	clone := *p
	return &clone, nil
}

func (r *stubParcelRepo) CountByStatus(_ context.Context, scope ports.ParcelScope) (*domain.StatusCounts, error) {
	counts := &domain.StatusCounts{}
	for _, p := range r.byID {
		if !inScope(p, scope) {
			continue
		}
		counts.Total++
		switch p.Status {
		case domain.StatusCreated:
			counts.Created++
		case domain.StatusCollected:
			counts.Collected++
		case domain.StatusInStock:
			counts.InStock++
		case domain.StatusInTransit:
			counts.InTransit++
		case domain.StatusDelivered:
			counts.Delivered++
		case domain.StatusCancelled:
			counts.Cancelled++
		case domain.StatusReturned:
			counts.Returned++
		}
	}
	return counts, nil
}

func (r *stubParcelRepo) FindOverdue(_ context.Context, scope ports.ParcelScope, now time.Time) ([]*domain.Parcel, error) {
	var out []*domain.Parcel
	for _, p := range r.byID {
		if !inScope(p, scope) || !p.Overdue(now) {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

type stubHistoryRepo struct {
	appendErr error
	records   []domain.StatusChange
}

func (r *stubHistoryRepo) Append(_ context.Context, c *domain.StatusChange) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.records = append(r.records, *c)
	return nil
}

func (r *stubHistoryRepo) ListByParcel(_ context.Context, parcelID string) ([]domain.StatusChange, error) {
	var out []domain.StatusChange
	for _, c := range r.records {
		if c.ParcelID == parcelID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChangedAt.After(out[j].ChangedAt) })
	return out, nil
}

type stubStatsCache struct {
	entries map[string]*domain.StatusCounts
	getErr  error
	gets    int
	sets    int
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: make(map[string]*domain.StatusCounts)}
}

func (c *stubStatsCache) Get(_ context.Context, key string) (*domain.StatusCounts, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	counts, ok := c.entries[key]
	return counts, ok, nil
}

func (c *stubStatsCache) Set(_ context.Context, key string, counts *domain.StatusCounts) error {
	c.sets++
	c.entries[key] = counts
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	managerActor = domain.Actor{Username: "boss", Role: domain.RoleManager}
	courierActor = domain.Actor{Username: "rider", Role: domain.RoleCourier, CourierID: "c1"}
	clientActor  = domain.Actor{Username: "sender", Role: domain.RoleClient, ClientID: "cl1"}
)

func newSvc(parcels *stubParcelRepo, history *stubHistoryRepo, stats StatsCache) *ParcelService {
	return NewParcelService(parcels, history, stats, zerolog.Nop())
}

func seedParcel(repo *stubParcelRepo, id string, status domain.Status, courierID string) *domain.Parcel {
	now := time.Now().UTC()
	p := &domain.Parcel{
		ID:              id,
		Reference:       "CD-" + strings.ToUpper(id),
		Description:     "books",
		WeightKg:        1.5,
		Priority:        domain.PriorityNormal,
		Status:          status,
		SenderClientID:  "cl1",
		RecipientID:     "r1",
		CourierID:       courierID,
		DestinationCity: "Lyon",
		CreatedAt:       now,
		ModifiedAt:      now,
	}
	repo.byID[id] = p
	return p
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestParcelService_Create_Manager(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)

	p, err := svc.Create(context.Background(), ports.CreateParcelInput{
		Description:     "books",
		WeightKg:        1.5,
		SenderClientID:  "cl9",
		RecipientID:     "r1",
		DestinationCity: "Lyon",
	}, managerActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != domain.StatusCreated {
		t.Errorf("expected status created, got %s", p.Status)
	}
	if !strings.HasPrefix(p.Reference, "CD-") {
		t.Errorf("reference format wrong: %s", p.Reference)
	}
	if p.Priority != domain.PriorityNormal {
		t.Errorf("expected default priority normal, got %s", p.Priority)
	}
	if p.SenderClientID != "cl9" {
		t.Errorf("manager-specified sender must be kept, got %s", p.SenderClientID)
	}
}

func TestParcelService_Create_ClientForcedToOwnAccount(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)

	p, err := svc.Create(context.Background(), ports.CreateParcelInput{
		Description:     "books",
		SenderClientID:  "cl999", // ignored: clients cannot send on behalf of others
		RecipientID:     "r1",
		DestinationCity: "Lyon",
	}, clientActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SenderClientID != "cl1" {
		t.Errorf("expected sender forced to cl1, got %s", p.SenderClientID)
	}
}

func TestParcelService_Create_CourierForbidden(t *testing.T) {
	svc := newSvc(newStubParcelRepo(), &stubHistoryRepo{}, nil)

	_, err := svc.Create(context.Background(), ports.CreateParcelInput{Description: "x"}, courierActor)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus — the transition executor, server side
// ---------------------------------------------------------------------------

func TestUpdateStatus_AssignedCourier_HappyPath(t *testing.T) {
	repo := newStubParcelRepo()
	history := &stubHistoryRepo{}
	svc := newSvc(repo, history, nil)
	seedParcel(repo, "p1", domain.StatusCreated, "c1")

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ParcelID:  "p1",
		NewStatus: "collected",
		Comment:   "picked up at 9am",
	}, courierActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusCollected {
		t.Errorf("expected collected, got %s", updated.Status)
	}

	if len(history.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history.records))
	}
	rec := history.records[0]
	if rec.OldStatus != domain.StatusCreated || rec.NewStatus != domain.StatusCollected {
		t.Errorf("history transition wrong: %s -> %s", rec.OldStatus, rec.NewStatus)
	}
	if rec.Comment != "picked up at 9am" {
		t.Errorf("history comment wrong: %q", rec.Comment)
	}
	if rec.ChangedBy != "rider" {
		t.Errorf("history actor wrong: %q", rec.ChangedBy)
	}
}

func TestUpdateStatus_UnassignedCourier_Forbidden(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)
	seedParcel(repo, "p1", domain.StatusInTransit, "c2") // someone else's parcel

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ParcelID:  "p1",
		NewStatus: "delivered",
	}, courierActor)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	// State untouched.
	if repo.byID["p1"].Status != domain.StatusInTransit {
		t.Errorf("parcel status must be unchanged, got %s", repo.byID["p1"].Status)
	}
}

func TestUpdateStatus_ClientRole_Forbidden(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)
	seedParcel(repo, "p1", domain.StatusCreated, "c1")

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ParcelID:  "p1",
		NewStatus: "collected",
	}, clientActor)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateStatus_CourierCannotCancel(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)
	seedParcel(repo, "p1", domain.StatusCollected, "c1")

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ParcelID:  "p1",
		NewStatus: "cancelled",
	}, courierActor)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateStatus_CourierTerminalLocked(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)
	seedParcel(repo, "p1", domain.StatusDelivered, "c1")

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ParcelID:  "p1",
		NewStatus: "in_transit",
	}, courierActor)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateStatus_ManagerMayRewindFromTerminal(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)
	seedParcel(repo, "p1", domain.StatusDelivered, "c1")

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ParcelID:  "p1",
		NewStatus: "in_transit",
	}, managerActor)
	if err != nil {
		t.Fatalf("manager must be unrestricted, got: %v", err)
	}
	if updated.Status != domain.StatusInTransit {
		t.Errorf("expected in_transit, got %s", updated.Status)
	}
}

func TestUpdateStatus_NoOpSucceedsAndIsRecorded(t *testing.T) {
	repo := newStubParcelRepo()
	history := &stubHistoryRepo{}
	svc := newSvc(repo, history, nil)
	seedParcel(repo, "p1", domain.StatusCollected, "c1")

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ParcelID:  "p1",
		NewStatus: "collected",
	}, courierActor)
	if err != nil {
		t.Fatalf("no-op must succeed, got: %v", err)
	}
	if updated.Status != domain.StatusCollected {
		t.Errorf("expected collected, got %s", updated.Status)
	}
	if len(history.records) != 1 {
		t.Fatalf("no-op must still be recorded, got %d records", len(history.records))
	}
	if history.records[0].OldStatus != history.records[0].NewStatus {
		t.Error("no-op record must have old == new")
	}
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)
	seedParcel(repo, "p1", domain.StatusCreated, "c1")

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ParcelID:  "p1",
		NewStatus: "teleported",
	}, managerActor)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateStatus_ParcelNotFound(t *testing.T) {
	svc := newSvc(newStubParcelRepo(), &stubHistoryRepo{}, nil)

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ParcelID:  "missing",
		NewStatus: "collected",
	}, managerActor)
	if !errors.Is(err, domain.ErrParcelNotFound) {
		t.Errorf("expected ErrParcelNotFound, got %v", err)
	}
}

func TestUpdateStatus_HistoryFailureIsNonFatal(t *testing.T) {
	repo := newStubParcelRepo()
	history := &stubHistoryRepo{appendErr: errors.New("mongo unavailable")}
	svc := newSvc(repo, history, nil)
	seedParcel(repo, "p1", domain.StatusCreated, "c1")

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ParcelID:  "p1",
		NewStatus: "collected",
	}, courierActor)
	if err != nil {
		t.Fatalf("history failure must not fail the transition, got: %v", err)
	}
	if updated.Status != domain.StatusCollected {
		t.Errorf("expected collected, got %s", updated.Status)
	}
}

// ---------------------------------------------------------------------------
// Get / List / History scoping
// ---------------------------------------------------------------------------

func TestGet_CourierSeesOwnOnly(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)
	seedParcel(repo, "mine", domain.StatusCreated, "c1")
	seedParcel(repo, "other", domain.StatusCreated, "c2")

	if _, err := svc.Get(context.Background(), "mine", courierActor); err != nil {
		t.Fatalf("courier must see own parcel: %v", err)
	}
	if _, err := svc.Get(context.Background(), "other", courierActor); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for other courier's parcel, got %v", err)
	}
}

func TestList_ScopedByRole(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)
	seedParcel(repo, "a", domain.StatusCreated, "c1")
	seedParcel(repo, "b", domain.StatusCreated, "c2")

	page, err := svc.List(context.Background(), ports.ListParcelsInput{}, courierActor)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 {
		t.Errorf("courier: expected 1 parcel, got %d", page.Total)
	}

	page, err = svc.List(context.Background(), ports.ListParcelsInput{}, managerActor)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 {
		t.Errorf("manager: expected 2 parcels, got %d", page.Total)
	}
}

func TestList_LimitCappedAt100(t *testing.T) {
	svc := newSvc(newStubParcelRepo(), &stubHistoryRepo{}, nil)

	page, err := svc.List(context.Background(), ports.ListParcelsInput{Limit: 999}, managerActor)
	if err != nil {
		t.Fatal(err)
	}
	if page.Limit != 100 {
		t.Errorf("expected limit 100, got %d", page.Limit)
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	repo := newStubParcelRepo()
	history := &stubHistoryRepo{}
	svc := newSvc(repo, history, nil)
	seedParcel(repo, "p1", domain.StatusInStock, "c1")

	now := time.Now().UTC()
	history.records = []domain.StatusChange{
		{ParcelID: "p1", OldStatus: domain.StatusCreated, NewStatus: domain.StatusCollected, ChangedAt: now.Add(-2 * time.Hour)},
		{ParcelID: "p1", OldStatus: domain.StatusCollected, NewStatus: domain.StatusInStock, ChangedAt: now.Add(-1 * time.Hour)},
	}

	changes, err := svc.History(context.Background(), "p1", managerActor)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if changes[0].NewStatus != domain.StatusInStock {
		t.Errorf("expected newest first, got %s", changes[0].NewStatus)
	}
}

// ---------------------------------------------------------------------------
// Statistics / Overdue / Track
// ---------------------------------------------------------------------------

func TestStatistics_UsesCache(t *testing.T) {
	repo := newStubParcelRepo()
	cache := newStubStatsCache()
	svc := newSvc(repo, &stubHistoryRepo{}, cache)
	seedParcel(repo, "p1", domain.StatusCreated, "c1")

	first, err := svc.Statistics(context.Background(), managerActor)
	if err != nil {
		t.Fatal(err)
	}
	if first.Total != 1 || first.Created != 1 {
		t.Errorf("unexpected counts: %+v", first)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.sets)
	}

	// Second call must be served from cache even after the data changed.
	seedParcel(repo, "p2", domain.StatusDelivered, "c1")
	second, err := svc.Statistics(context.Background(), managerActor)
	if err != nil {
		t.Fatal(err)
	}
	if second.Total != 1 {
		t.Errorf("expected cached total 1, got %d", second.Total)
	}
}

func TestStatistics_CacheErrorFallsBack(t *testing.T) {
	repo := newStubParcelRepo()
	cache := newStubStatsCache()
	cache.getErr = errors.New("redis timeout")
	svc := newSvc(repo, &stubHistoryRepo{}, cache)
	seedParcel(repo, "p1", domain.StatusDelivered, "c1")

	counts, err := svc.Statistics(context.Background(), managerActor)
	if err != nil {
		t.Fatalf("cache failure must not fail statistics: %v", err)
	}
	if counts.Delivered != 1 {
		t.Errorf("expected delivered=1, got %d", counts.Delivered)
	}
}

func TestOverdue_ExcludesTerminalStatuses(t *testing.T) {
	repo := newStubParcelRepo()
	svc := newSvc(repo, &stubHistoryRepo{}, nil)

	past := time.Now().UTC().Add(-48 * time.Hour)
	late := seedParcel(repo, "late", domain.StatusInTransit, "c1")
	late.DueDate = &past
	done := seedParcel(repo, "done", domain.StatusDelivered, "c1")
	done.DueDate = &past

	out, err := svc.Overdue(context.Background(), managerActor)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "late" {
		t.Errorf("expected only the late parcel, got %v", out)
	}
}

func TestTrack_PublicViewRedactsActor(t *testing.T) {
	repo := newStubParcelRepo()
	history := &stubHistoryRepo{}
	svc := newSvc(repo, history, nil)
	p := seedParcel(repo, "p1", domain.StatusCollected, "c1")

	history.records = []domain.StatusChange{{
		ParcelID:  "p1",
		OldStatus: domain.StatusCreated,
		NewStatus: domain.StatusCollected,
		Comment:   "picked up",
		ChangedAt: time.Now().UTC(),
		ChangedBy: "rider",
	}}

	view, err := svc.Track(context.Background(), p.Reference)
	if err != nil {
		t.Fatal(err)
	}
	if view.Status != domain.StatusCollected {
		t.Errorf("expected collected, got %s", view.Status)
	}
	// One transition step plus the registration step.
	if len(view.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(view.Steps))
	}
	if view.Steps[0].Status != domain.StatusCollected {
		t.Errorf("newest step first, got %s", view.Steps[0].Status)
	}
	if view.Steps[len(view.Steps)-1].Status != domain.StatusCreated {
		t.Error("registration step must close the list")
	}
}

func TestTrack_UnknownReference(t *testing.T) {
	svc := newSvc(newStubParcelRepo(), &stubHistoryRepo{}, nil)

	_, err := svc.Track(context.Background(), "CD-NOPE")
	if !errors.Is(err, domain.ErrParcelNotFound) {
		t.Errorf("expected ErrParcelNotFound, got %v", err)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/colisdirect/delivery-system/internal/core/domain"
	"github.com/colisdirect/delivery-system/internal/core/ports"
)

type stubParcelService struct {
	updateStatusFn func(ctx context.Context, in ports.UpdateStatusInput, actor domain.Actor) (*domain.Parcel, error)
	getFn          func(ctx context.Context, id string, actor domain.Actor) (*domain.Parcel, error)
}

func (s *stubParcelService) Create(ctx context.Context, in ports.CreateParcelInput, actor domain.Actor) (*domain.Parcel, error) {
	return nil, nil
}

func (s *stubParcelService) Get(ctx context.Context, id string, actor domain.Actor) (*domain.Parcel, error) {
	return s.getFn(ctx, id, actor)
}

func (s *stubParcelService) Update(ctx context.Context, id string, in ports.UpdateParcelInput, actor domain.Actor) (*domain.Parcel, error) {
	return nil, nil
}

func (s *stubParcelService) Delete(ctx context.Context, id string, actor domain.Actor) error {
	return nil
}

func (s *stubParcelService) List(ctx context.Context, in ports.ListParcelsInput, actor domain.Actor) (*ports.ParcelPage, error) {
	return &ports.ParcelPage{}, nil
}

func (s *stubParcelService) UpdateStatus(ctx context.Context, in ports.UpdateStatusInput, actor domain.Actor) (*domain.Parcel, error) {
	return s.updateStatusFn(ctx, in, actor)
}

func (s *stubParcelService) History(ctx context.Context, parcelID string, actor domain.Actor) ([]domain.StatusChange, error) {
	return nil, nil
}

func (s *stubParcelService) Statistics(ctx context.Context, actor domain.Actor) (*domain.StatusCounts, error) {
	return &domain.StatusCounts{}, nil
}

func (s *stubParcelService) Overdue(ctx context.Context, actor domain.Actor) ([]*domain.Parcel, error) {
	return nil, nil
}

func (s *stubParcelService) Track(ctx context.Context, reference string) (*ports.TrackingView, error) {
	return nil, domain.ErrParcelNotFound
}

func courierContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "rider")
	c.Set("role", "courier")
	c.Set("courier_id", "courier_1")
	return c, rec
}

func TestParcelHandler_UpdateStatus_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	now := time.Now().UTC()
	stub := &stubParcelService{
		updateStatusFn: func(ctx context.Context, in ports.UpdateStatusInput, actor domain.Actor) (*domain.Parcel, error) {
			if in.ParcelID != "p1" || in.NewStatus != "collected" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if actor.Role != domain.RoleCourier || actor.CourierID != "courier_1" {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			return &domain.Parcel{
				ID:         "p1",
				Reference:  "CD-AAAA1111",
				Status:     domain.StatusCollected,
				CourierID:  "courier_1",
				ModifiedAt: now,
			}, nil
		},
	}
	handler := NewParcelHandler(stub)

	c, rec := courierContext(e, http.MethodPatch, "/v1/parcels/p1/status",
		`{"status":"collected","comment":"picked up"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "collected" {
		t.Fatalf("response must carry the committed status, got %v", resp["status"])
	}

	// The advisory next-status set rides along for the assigned courier.
	next, ok := resp["allowed_next_statuses"].([]any)
	if !ok || len(next) == 0 {
		t.Fatalf("expected allowed_next_statuses, got %v", resp["allowed_next_statuses"])
	}
	if next[0] != "collected" {
		t.Fatalf("current status must lead the advisory set, got %v", next[0])
	}
}

func TestParcelHandler_UpdateStatus_UnknownStatusRejectedBeforeService(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubParcelService{
		updateStatusFn: func(ctx context.Context, in ports.UpdateStatusInput, actor domain.Actor) (*domain.Parcel, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewParcelHandler(stub)

	c, _ := courierContext(e, http.MethodPatch, "/v1/parcels/p1/status", `{"status":"teleported"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := handler.UpdateStatus(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestParcelHandler_UpdateStatus_ForbiddenPropagates(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubParcelService{
		updateStatusFn: func(ctx context.Context, in ports.UpdateStatusInput, actor domain.Actor) (*domain.Parcel, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewParcelHandler(stub)

	c, _ := courierContext(e, http.MethodPatch, "/v1/parcels/p1/status", `{"status":"delivered"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := handler.UpdateStatus(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestParcelHandler_UpdateStatus_MissingClaims(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewParcelHandler(&stubParcelService{})

	req := httptest.NewRequest(http.MethodPatch, "/v1/parcels/p1/status", strings.NewReader(`{"status":"collected"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.UpdateStatus(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestParcelHandler_Get_CourierWithoutLinkageRejected(t *testing.T) {
	e := echo.New()
	handler := NewParcelHandler(&stubParcelService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/parcels/p1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "rider")
	c.Set("role", "courier")
	// no courier_id claim

	err := handler.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing linkage id, got %v", err)
	}
}

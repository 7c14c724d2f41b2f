package handler

import (
	"github.com/colisdirect/delivery-system/internal/core/domain"
	"github.com/colisdirect/delivery-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createParcelRequest) ports.CreateParcelInput {
	return ports.CreateParcelInput{
		Description:     req.Description,
		WeightKg:        req.WeightKg,
		Priority:        req.Priority,
		SenderClientID:  req.SenderClientID,
		RecipientID:     req.RecipientID,
		CourierID:       req.CourierID,
		ZoneID:          req.ZoneID,
		DestinationCity: req.DestinationCity,
		DueDate:         req.DueDate,
		Comment:         req.Comment,
	}
}

func toUpdateInput(req updateParcelRequest) ports.UpdateParcelInput {
	return ports.UpdateParcelInput{
		Description:     req.Description,
		WeightKg:        req.WeightKg,
		Priority:        req.Priority,
		RecipientID:     req.RecipientID,
		CourierID:       req.CourierID,
		ZoneID:          req.ZoneID,
		DestinationCity: req.DestinationCity,
		DueDate:         req.DueDate,
		Comment:         req.Comment,
	}
}

// --- Domain → HTTP response ---

// toParcelResponse renders a parcel and, for the given actor, the advisory
// set of transitions the caller may offer next.
func toParcelResponse(p *domain.Parcel, actor domain.Actor) parcelResponse {
	assigned := actor.CourierID != "" && actor.CourierID == p.CourierID
	allowed := domain.AllowedNextStatuses(actor.Role, p.Status, assigned)

	next := make([]string, len(allowed))
	for i, s := range allowed {
		next[i] = string(s)
	}

	return parcelResponse{
		ID:                  p.ID,
		Reference:           p.Reference,
		Description:         p.Description,
		WeightKg:            p.WeightKg,
		Priority:            string(p.Priority),
		Status:              string(p.Status),
		SenderClientID:      p.SenderClientID,
		RecipientID:         p.RecipientID,
		CourierID:           p.CourierID,
		ZoneID:              p.ZoneID,
		DestinationCity:     p.DestinationCity,
		DueDate:             p.DueDate,
		Comment:             p.Comment,
		CreatedAt:           p.CreatedAt,
		ModifiedAt:          p.ModifiedAt,
		AllowedNextStatuses: next,
	}
}

func toListResponse(page *ports.ParcelPage, actor domain.Actor) listParcelsResponse {
	items := make([]parcelResponse, len(page.Items))
	for i, p := range page.Items {
		items[i] = toParcelResponse(p, actor)
	}
	return listParcelsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}

func toHistoryResponse(changes []domain.StatusChange) []statusChangeResponse {
	out := make([]statusChangeResponse, len(changes))
	for i, c := range changes {
		out[i] = statusChangeResponse{
			OldStatus: string(c.OldStatus),
			NewStatus: string(c.NewStatus),
			Comment:   c.Comment,
			ChangedAt: c.ChangedAt,
			ChangedBy: c.ChangedBy,
		}
	}
	return out
}

func toTrackingResponse(v *ports.TrackingView) trackingResponse {
	steps := make([]trackingStepResponse, len(v.Steps))
	for i, s := range v.Steps {
		steps[i] = trackingStepResponse{
			Status:    string(s.Status),
			ChangedAt: s.ChangedAt,
			Comment:   s.Comment,
		}
	}
	return trackingResponse{
		Reference:       v.Reference,
		Status:          string(v.Status),
		DestinationCity: v.DestinationCity,
		CreatedAt:       v.CreatedAt,
		ModifiedAt:      v.ModifiedAt,
		DueDate:         v.DueDate,
		Steps:           steps,
	}
}

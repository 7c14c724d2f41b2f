package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createParcelRequest struct {
	Description     string     `json:"description"      validate:"required"`
	WeightKg        float64    `json:"weight_kg"        validate:"required,gt=0"`
	Priority        string     `json:"priority"         validate:"omitempty,oneof=normal high urgent"`
	SenderClientID  string     `json:"sender_client_id" validate:"omitempty"`
	RecipientID     string     `json:"recipient_id"     validate:"required"`
	CourierID       string     `json:"courier_id"`
	ZoneID          string     `json:"zone_id"`
	DestinationCity string     `json:"destination_city" validate:"required"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Comment         string     `json:"comment,omitempty"`
}

type updateParcelRequest struct {
	Description     string     `json:"description"      validate:"required"`
	WeightKg        float64    `json:"weight_kg"        validate:"required,gt=0"`
	Priority        string     `json:"priority"         validate:"required,oneof=normal high urgent"`
	RecipientID     string     `json:"recipient_id"     validate:"required"`
	CourierID       string     `json:"courier_id"`
	ZoneID          string     `json:"zone_id"`
	DestinationCity string     `json:"destination_city" validate:"required"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Comment         string     `json:"comment,omitempty"`
}

// updateStatusRequest carries a transition. The new status is validated
// against the enumeration here; whether the transition is permitted for this
// actor on this parcel is decided in the service.
type updateStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=created collected in_stock in_transit delivered cancelled returned"`
	Comment string `json:"comment,omitempty"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type parcelResponse struct {
	ID              string     `json:"id"`
	Reference       string     `json:"reference"`
	Description     string     `json:"description"`
	WeightKg        float64    `json:"weight_kg"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	SenderClientID  string     `json:"sender_client_id"`
	RecipientID     string     `json:"recipient_id"`
	CourierID       string     `json:"courier_id,omitempty"`
	ZoneID          string     `json:"zone_id,omitempty"`
	DestinationCity string     `json:"destination_city"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Comment         string     `json:"comment,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ModifiedAt      time.Time  `json:"modified_at"`
	// AllowedNextStatuses tells the caller which transitions it may offer for
	// this parcel. Advisory only; the server re-checks on submission.
	AllowedNextStatuses []string `json:"allowed_next_statuses,omitempty"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listParcelsResponse struct {
	Data       []parcelResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type statusChangeResponse struct {
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Comment   string    `json:"comment,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by,omitempty"`
}

type trackingStepResponse struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	Comment   string    `json:"comment,omitempty"`
}

type trackingResponse struct {
	Reference       string                 `json:"reference"`
	Status          string                 `json:"status"`
	DestinationCity string                 `json:"destination_city"`
	CreatedAt       time.Time              `json:"created_at"`
	ModifiedAt      time.Time              `json:"modified_at"`
	DueDate         *time.Time             `json:"due_date,omitempty"`
	Steps           []trackingStepResponse `json:"steps"`
}

package domain

import "time"

// Status represents the lifecycle state of a parcel.
type Status string

const (
	StatusCreated   Status = "created"
	StatusCollected Status = "collected"
	StatusInStock   Status = "in_stock"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	StatusReturned  Status = "returned"
)

// AllStatuses lists every status in workflow order, terminal exits last.
var AllStatuses = []Status{
	StatusCreated,
	StatusCollected,
	StatusInStock,
	StatusInTransit,
	StatusDelivered,
	StatusCancelled,
	StatusReturned,
}

// Valid reports whether s is one of the defined enumeration values.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no courier-driven transition leaves s.
// Managers are not bound by terminality.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusReturned
}

// Priority represents the handling priority of a parcel.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the defined priority values.
func (p Priority) Valid() bool {
	return p == PriorityNormal || p == PriorityHigh || p == PriorityUrgent
}

// Parcel is the core aggregate root. A parcel always has exactly one current
// status; its transition log lives in the status_changes collection.
type Parcel struct {
	ID              string     `json:"id" bson:"_id"`
	Reference       string     `json:"reference" bson:"reference"`
	Description     string     `json:"description" bson:"description"`
	WeightKg        float64    `json:"weight_kg" bson:"weight_kg"`
	Priority        Priority   `json:"priority" bson:"priority"`
	Status          Status     `json:"status" bson:"status"`
	SenderClientID  string     `json:"sender_client_id" bson:"sender_client_id"`
	RecipientID     string     `json:"recipient_id" bson:"recipient_id"`
	CourierID       string     `json:"courier_id,omitempty" bson:"courier_id,omitempty"`
	ZoneID          string     `json:"zone_id,omitempty" bson:"zone_id,omitempty"`
	DestinationCity string     `json:"destination_city" bson:"destination_city"`
	DueDate         *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	Comment         string     `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	ModifiedAt      time.Time  `json:"modified_at" bson:"modified_at"`
}

// Overdue reports whether the parcel missed its due date and is still in a
// non-terminal status.
func (p *Parcel) Overdue(now time.Time) bool {
	if p.DueDate == nil || p.Status.Terminal() {
		return false
	}
	return p.DueDate.Before(now)
}

// StatusCounts aggregates parcels per status for the dashboard.
type StatusCounts struct {
	Total     int64 `json:"total"`
	Created   int64 `json:"created"`
	Collected int64 `json:"collected"`
	InStock   int64 `json:"in_stock"`
	InTransit int64 `json:"in_transit"`
	Delivered int64 `json:"delivered"`
	Cancelled int64 `json:"cancelled"`
	Returned  int64 `json:"returned"`
}

package domain

import "time"

// StatusChange records one status transition on a parcel. Entries are
// append-only: created as a side effect of every successful transition and
// never mutated or deleted afterwards.
type StatusChange struct {
	ID        string    `json:"id" bson:"_id"`
	ParcelID  string    `json:"parcel_id" bson:"parcel_id"`
	OldStatus Status    `json:"old_status" bson:"old_status"`
	NewStatus Status    `json:"new_status" bson:"new_status"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	ChangedAt time.Time `json:"changed_at" bson:"changed_at"`
	ChangedBy string    `json:"changed_by,omitempty" bson:"changed_by,omitempty"`
}

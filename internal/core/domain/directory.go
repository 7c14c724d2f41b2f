package domain

import "time"

// Directory entities are the reference data the console manages alongside
// parcels. They are flat CRUD records; parcels point at them by id.

// Courier is the person moving assigned parcels through the workflow.
type Courier struct {
	ID         string    `json:"id" bson:"_id"`
	FirstName  string    `json:"first_name" bson:"first_name"`
	LastName   string    `json:"last_name" bson:"last_name"`
	Phone      string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Vehicle    string    `json:"vehicle" bson:"vehicle"`
	ZoneID     string    `json:"zone_id,omitempty" bson:"zone_id,omitempty"`
	Active     bool      `json:"active" bson:"active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	ModifiedAt time.Time `json:"modified_at" bson:"modified_at"`
}

// Zone is a delivery area couriers and parcels can be assigned to.
type Zone struct {
	ID         string `json:"id" bson:"_id"`
	Name       string `json:"name" bson:"name"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
}

// Recipient is the addressee of a parcel.
type Recipient struct {
	ID        string `json:"id" bson:"_id"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Address   string `json:"address" bson:"address"`
}

// ClientAccount is the sender side of a parcel.
type ClientAccount struct {
	ID        string    `json:"id" bson:"_id"`
	FirstName string    `json:"first_name" bson:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string    `json:"address" bson:"address"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Product is a catalog item clients can reference when declaring contents.
type Product struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Category  string    `json:"category" bson:"category"`
	WeightKg  float64   `json:"weight_kg" bson:"weight_kg"`
	Price     float64   `json:"price" bson:"price"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

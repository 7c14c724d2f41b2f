package domain

import "time"

// Role identifies what an authenticated actor may do.
type Role string

const (
	RoleManager   Role = "manager"
	RoleCourier   Role = "courier"
	RoleClient    Role = "client"
	RoleRecipient Role = "recipient"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleCourier || r == RoleClient || r == RoleRecipient
}

// User models an authenticated actor. The linkage ids tie the account to its
// business entity: CourierID for couriers, ClientID for sender clients,
// RecipientID for addressees. At most one is set per account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CourierID    string    `json:"courier_id,omitempty"`
	ClientID     string    `json:"client_id,omitempty"`
	RecipientID  string    `json:"recipient_id,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the identity attached to a request after authentication. Services
// receive it explicitly instead of reading ambient session state.
type Actor struct {
	Username    string
	Role        Role
	CourierID   string
	ClientID    string
	RecipientID string
}

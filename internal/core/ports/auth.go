package ports

import (
	"context"

	"github.com/colisdirect/delivery-system/internal/core/domain"
)

// AuthRepository defines persistence for user accounts.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// RegisterInput carries everything needed to open an account. The linkage id
// matching the role must be set for couriers, clients, and recipients.
type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	FirstName   string
	LastName    string
	Role        string
	CourierID   string
	ClientID    string
	RecipientID string
}

// AuthService implements registration, login, and account administration.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	SetUserActive(ctx context.Context, id string, active bool) error
}

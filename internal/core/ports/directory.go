package ports

import (
	"context"

	"github.com/colisdirect/delivery-system/internal/core/domain"
)

// The directory repositories are uniform CRUD stores for reference data.
// They share no base interface on purpose: each entity keeps its own sentinel
// not-found error and its own collection.

type CourierRepository interface {
	Create(ctx context.Context, c *domain.Courier) error
	FindByID(ctx context.Context, id string) (*domain.Courier, error)
	List(ctx context.Context) ([]*domain.Courier, error)
	Update(ctx context.Context, c *domain.Courier) error
	Delete(ctx context.Context, id string) error
}

type ZoneRepository interface {
	Create(ctx context.Context, z *domain.Zone) error
	FindByID(ctx context.Context, id string) (*domain.Zone, error)
	List(ctx context.Context) ([]*domain.Zone, error)
	Update(ctx context.Context, z *domain.Zone) error
	Delete(ctx context.Context, id string) error
}

type RecipientRepository interface {
	Create(ctx context.Context, r *domain.Recipient) error
	FindByID(ctx context.Context, id string) (*domain.Recipient, error)
	List(ctx context.Context) ([]*domain.Recipient, error)
	Update(ctx context.Context, r *domain.Recipient) error
	Delete(ctx context.Context, id string) error
}

type ClientRepository interface {
	Create(ctx context.Context, c *domain.ClientAccount) error
	FindByID(ctx context.Context, id string) (*domain.ClientAccount, error)
	List(ctx context.Context) ([]*domain.ClientAccount, error)
	Update(ctx context.Context, c *domain.ClientAccount) error
	Delete(ctx context.Context, id string) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colisdirect/delivery-system/internal/core/domain"
	"github.com/colisdirect/delivery-system/internal/core/ports"
)

// DirectoryService groups the CRUD operations for the console's reference
// data: couriers, zones, recipients, client accounts, and products. Reads are
// open to every authenticated role; the RBAC middleware restricts writes to
// managers before a request ever reaches this service.
type DirectoryService struct {
	couriers   ports.CourierRepository
	zones      ports.ZoneRepository
	recipients ports.RecipientRepository
	clients    ports.ClientRepository
	products   ports.ProductRepository
	logger     zerolog.Logger
}

func NewDirectoryService(
	couriers ports.CourierRepository,
	zones ports.ZoneRepository,
	recipients ports.RecipientRepository,
	clients ports.ClientRepository,
	products ports.ProductRepository,
	logger zerolog.Logger,
) *DirectoryService {
	return &DirectoryService{
		couriers:   couriers,
		zones:      zones,
		recipients: recipients,
		clients:    clients,
		products:   products,
		logger:     logger,
	}
}

// --- Couriers ---

func (s *DirectoryService) CreateCourier(ctx context.Context, c *domain.Courier) (*domain.Courier, error) {
	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.ModifiedAt = now
	if err := s.couriers.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info().Str("courier_id", c.ID).Msg("courier created")
	return c, nil
}

func (s *DirectoryService) GetCourier(ctx context.Context, id string) (*domain.Courier, error) {
	return s.couriers.FindByID(ctx, id)
}

func (s *DirectoryService) ListCouriers(ctx context.Context) ([]*domain.Courier, error) {
	return s.couriers.List(ctx)
}

func (s *DirectoryService) UpdateCourier(ctx context.Context, c *domain.Courier) (*domain.Courier, error) {
	existing, err := s.couriers.FindByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = existing.CreatedAt
	c.ModifiedAt = time.Now().UTC()
	if err := s.couriers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *DirectoryService) DeleteCourier(ctx context.Context, id string) error {
	if _, err := s.couriers.FindByID(ctx, id); err != nil {
		return err
	}
	return s.couriers.Delete(ctx, id)
}

// --- Zones ---

func (s *DirectoryService) CreateZone(ctx context.Context, z *domain.Zone) (*domain.Zone, error) {
	z.ID = uuid.NewString()
	if err := s.zones.Create(ctx, z); err != nil {
		return nil, err
	}
	return z, nil
}

func (s *DirectoryService) GetZone(ctx context.Context, id string) (*domain.Zone, error) {
	return s.zones.FindByID(ctx, id)
}

func (s *DirectoryService) ListZones(ctx context.Context) ([]*domain.Zone, error) {
	return s.zones.List(ctx)
}

func (s *DirectoryService) UpdateZone(ctx context.Context, z *domain.Zone) (*domain.Zone, error) {
	if _, err := s.zones.FindByID(ctx, z.ID); err != nil {
		return nil, err
	}
	if err := s.zones.Update(ctx, z); err != nil {
		return nil, err
	}
	return z, nil
}

func (s *DirectoryService) DeleteZone(ctx context.Context, id string) error {
	if _, err := s.zones.FindByID(ctx, id); err != nil {
		return err
	}
	return s.zones.Delete(ctx, id)
}

// --- Recipients ---

func (s *DirectoryService) CreateRecipient(ctx context.Context, r *domain.Recipient) (*domain.Recipient, error) {
	r.ID = uuid.NewString()
	if err := s.recipients.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *DirectoryService) GetRecipient(ctx context.Context, id string) (*domain.Recipient, error) {
	return s.recipients.FindByID(ctx, id)
}

func (s *DirectoryService) ListRecipients(ctx context.Context) ([]*domain.Recipient, error) {
	return s.recipients.List(ctx)
}

func (s *DirectoryService) UpdateRecipient(ctx context.Context, r *domain.Recipient) (*domain.Recipient, error) {
	if _, err := s.recipients.FindByID(ctx, r.ID); err != nil {
		return nil, err
	}
	if err := s.recipients.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *DirectoryService) DeleteRecipient(ctx context.Context, id string) error {
	if _, err := s.recipients.FindByID(ctx, id); err != nil {
		return err
	}
	return s.recipients.Delete(ctx, id)
}

// --- Client accounts ---

func (s *DirectoryService) CreateClient(ctx context.Context, c *domain.ClientAccount) (*domain.ClientAccount, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *DirectoryService) GetClient(ctx context.Context, id string) (*domain.ClientAccount, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *DirectoryService) ListClients(ctx context.Context) ([]*domain.ClientAccount, error) {
	return s.clients.List(ctx)
}

func (s *DirectoryService) UpdateClient(ctx context.Context, c *domain.ClientAccount) (*domain.ClientAccount, error) {
	existing, err := s.clients.FindByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = existing.CreatedAt
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *DirectoryService) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clients.Delete(ctx, id)
}

// --- Products ---

func (s *DirectoryService) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *DirectoryService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *DirectoryService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

func (s *DirectoryService) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	existing, err := s.products.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = existing.CreatedAt
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *DirectoryService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

package flights

import (
	"context"

	"flightai/internal/catalog"
	"flightai/internal/domain"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.RouteOffer, error)
}

// Cache is optional; a nil cache means every List hits the catalog directly.
type Cache interface {
	GetOffers(ctx context.Context) ([]domain.RouteOffer, error)
	SetOffers(ctx context.Context, offers []domain.RouteOffer) error
}

type FlightService struct {
	catalog *catalog.Catalog
	cache   Cache
}

func NewFlightService(cat *catalog.Catalog, cache Cache) *FlightService {
	return &FlightService{catalog: cat, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.RouteOffer, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetOffers(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	offers := s.catalog.Offers()
	if s.cache != nil {
		_ = s.cache.SetOffers(ctx, offers)
	}
	return offers, nil
}

var _ FlightUseCase = (*FlightService)(nil)

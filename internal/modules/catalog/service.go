package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"juniorpass/internal/cache"
	"juniorpass/internal/domain"
	"juniorpass/internal/repository"
)

// Service serves listing lookups for browsing. Reads go through the
// injected cache with a TTL; a cache miss or an unreachable cache is a
// cold start and falls through to the database. The booking engine reads
// listings straight from the repository; money decisions never trust a
// cached price.
type Service struct {
	listings *repository.ListingRepository
	partners *repository.PartnerRepository
	store    cache.Store
	ttl      time.Duration
}

func NewService(listings *repository.ListingRepository, partners *repository.PartnerRepository, store cache.Store, ttl time.Duration) *Service {
	if store == nil {
		store = cache.Nop{}
	}
	return &Service{listings: listings, partners: partners, store: store, ttl: ttl}
}

func (s *Service) GetListing(ctx context.Context, id int64) (*domain.Listing, error) {
	key := listingCacheKey(id)
	if raw, ok := s.store.Get(ctx, key); ok {
		var l domain.Listing
		if err := json.Unmarshal([]byte(raw), &l); err == nil {
			return &l, nil
		}
		// Corrupt cache entry: drop it and fall through to the DB.
		_ = s.store.Delete(ctx, key)
	}

	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(l); err == nil {
		_ = s.store.Set(ctx, key, string(raw), s.ttl)
	}
	return l, nil
}

func (s *Service) ListActive(ctx context.Context, limit, offset int) ([]domain.Listing, error) {
	return s.listings.ListActive(ctx, limit, offset)
}

// GetPartner returns the vendor profile shown on a listing's detail page.
// Balances are internal, so the partner's credit never leaves this service.
func (s *Service) GetPartner(ctx context.Context, id int64) (*domain.Partner, error) {
	p, err := s.partners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Credit = 0
	return p, nil
}

func listingCacheKey(id int64) string {
	return fmt.Sprintf("listing:%d", id)
}

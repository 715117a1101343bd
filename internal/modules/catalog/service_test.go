package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"juniorpass/internal/cache"
	"juniorpass/internal/database"
	"juniorpass/internal/domain"
	"juniorpass/internal/repository"
)

func setupCatalog(t *testing.T, store cache.Store) (*Service, *gorm.DB, *domain.Listing) {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	partner := &domain.Partner{Email: "vendor@test.local", Name: "Vendor"}
	if err := db.Create(partner).Error; err != nil {
		t.Fatalf("seed partner: %v", err)
	}
	listing := &domain.Listing{PartnerID: partner.ID, Title: "Robotics Camp", Credit: 60, Active: true}
	if err := db.Create(listing).Error; err != nil {
		t.Fatalf("seed listing: %v", err)
	}

	return NewService(repository.NewListingRepository(db), repository.NewPartnerRepository(db), store, time.Minute), db, listing
}

func TestGetListingServesFromCache(t *testing.T) {
	store := cache.NewMemory()
	svc, db, listing := setupCatalog(t, store)
	ctx := context.Background()

	first, err := svc.GetListing(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetListing returned error: %v", err)
	}
	if first.Title != "Robotics Camp" {
		t.Fatalf("unexpected listing %+v", first)
	}

	// Change the row behind the cache; a hit must serve the cached copy.
	if err := db.Model(listing).Update("title", "Renamed").Error; err != nil {
		t.Fatalf("update listing: %v", err)
	}

	second, err := svc.GetListing(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetListing returned error: %v", err)
	}
	if second.Title != "Robotics Camp" {
		t.Fatalf("expected cached title, got %q", second.Title)
	}
}

func TestGetListingFallsBackWithoutCache(t *testing.T) {
	svc, db, listing := setupCatalog(t, cache.Nop{})
	ctx := context.Background()

	if _, err := svc.GetListing(ctx, listing.ID); err != nil {
		t.Fatalf("GetListing returned error: %v", err)
	}

	if err := db.Model(listing).Update("title", "Renamed").Error; err != nil {
		t.Fatalf("update listing: %v", err)
	}

	got, err := svc.GetListing(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetListing returned error: %v", err)
	}
	if got.Title != "Renamed" {
		t.Fatalf("without cache every read is fresh, got %q", got.Title)
	}
}

func TestGetListingDropsCorruptCacheEntry(t *testing.T) {
	store := cache.NewMemory()
	svc, _, listing := setupCatalog(t, store)
	ctx := context.Background()

	if err := store.Set(ctx, fmt.Sprintf("listing:%d", listing.ID), "{not json", time.Minute); err != nil {
		t.Fatalf("prime corrupt entry: %v", err)
	}

	got, err := svc.GetListing(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetListing returned error: %v", err)
	}
	if got.Title != "Robotics Camp" {
		t.Fatalf("expected DB fallback, got %+v", got)
	}

	raw, ok := store.Get(ctx, fmt.Sprintf("listing:%d", listing.ID))
	if !ok || raw == "{not json" {
		t.Fatal("corrupt entry must be replaced by the fresh row")
	}
}

func TestGetListingNotFound(t *testing.T) {
	svc, _, _ := setupCatalog(t, cache.NewMemory())

	_, err := svc.GetListing(context.Background(), 9999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestGetPartnerHidesBalance(t *testing.T) {
	svc, db, listing := setupCatalog(t, cache.Nop{})

	if err := db.Model(&domain.Partner{}).Where("id = ?", listing.PartnerID).Update("credit", 500).Error; err != nil {
		t.Fatalf("update partner: %v", err)
	}

	p, err := svc.GetPartner(context.Background(), listing.PartnerID)
	if err != nil {
		t.Fatalf("GetPartner returned error: %v", err)
	}
	if p.Credit != 0 {
		t.Fatalf("partner balance must not be exposed, got %d", p.Credit)
	}
	if p.Name != "Vendor" {
		t.Fatalf("unexpected partner %+v", p)
	}
}

func TestListActiveExcludesInactive(t *testing.T) {
	svc, db, listing := setupCatalog(t, cache.Nop{})
	ctx := context.Background()

	inactive := &domain.Listing{PartnerID: listing.PartnerID, Title: "Old Class", Credit: 10, Active: false}
	if err := db.Create(inactive).Error; err != nil {
		t.Fatalf("seed inactive listing: %v", err)
	}

	listings, err := svc.ListActive(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListActive returned error: %v", err)
	}
	if len(listings) != 1 || listings[0].ID != listing.ID {
		t.Fatalf("expected only the active listing, got %+v", listings)
	}
}

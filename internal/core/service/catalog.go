package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"github.com/storeworks/storefront/pkg/retry"
)

var _ port.CatalogProvider = (*CatalogService)(nil)
var _ port.CatalogAdmin = (*CatalogService)(nil)

// A CatalogService owns the in-memory product list and decides which of
// {local cache, remote store, embedded seed} is authoritative. The remote
// store always wins; the local cache is replaced wholesale or invalidated,
// never independently mutated.
type CatalogService struct {
	mu       sync.RWMutex
	products []domain.Product
	version  uint64

	repo     port.ProductsRepository
	cache    port.CatalogCache
	producer port.SyncProducer
	observer port.VersionObserver

	resyncInterval time.Duration
	pollInterval   time.Duration
}

func NewCatalogService(
	repo port.ProductsRepository,
	cache port.CatalogCache,
	producer port.SyncProducer,
	observer port.VersionObserver,
	resyncInterval time.Duration,
	pollInterval time.Duration,
) *CatalogService {
	return &CatalogService{
		repo:           repo,
		cache:          cache,
		producer:       producer,
		observer:       observer,
		resyncInterval: resyncInterval,
		pollInterval:   pollInterval,
	}
}

// Bootstrap loads the catalog at application start. An empty remote store
// is seeded with the embedded defaults; otherwise the remote list is
// pulled wholesale and repaired. When the remote store is unreachable the
// service degrades to the local cache, then to the seed, and serves that
// until the next successful resync.
func (s *CatalogService) Bootstrap(ctx context.Context) error {
	const op = "CatalogService.Bootstrap"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		log.Error("remote store unavailable, degrading", "err", err)
		s.degrade()
		return nil
	}

	if count == 0 {
		if err := s.seed(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		log.Info("remote store seeded", "products", len(domain.SeedCatalog()))
		return nil
	}

	if err := s.refresh(ctx); err != nil {
		log.Error("refresh failed, degrading", "err", err)
		s.degrade()
		return nil
	}
	return nil
}

// Run drives the periodic resync and the version watch until ctx is done.
func (s *CatalogService) Run(ctx context.Context) {
	const op = "CatalogService.Run"
	log := slog.With("op", op)

	log.Info("running")

	resyncTicker := time.NewTicker(time.Minute)
	defer resyncTicker.Stop()
	pollTicker := time.NewTicker(s.pollInterval)
	defer pollTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopped")
			return
		case <-resyncTicker.C:
			if err := s.Resync(ctx); err != nil {
				log.Error("resync failed", "err", err)
			}
		case <-pollTicker.C:
			s.checkObservedVersion(ctx)
		}
	}
}

// Resync re-runs reconciliation, throttled to once per resync interval.
func (s *CatalogService) Resync(ctx context.Context) error {
	const op = "CatalogService.Resync"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	last, ok, err := s.cache.LastSync()
	if err == nil && ok && time.Since(last) < s.resyncInterval {
		return nil
	}

	if err := s.refresh(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *CatalogService) Products(
	ctx context.Context, q port.ProductQuery,
) ([]domain.Product, error) {
	const op = "CatalogService.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ps := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.FeaturedOnly && !p.Featured {
			continue
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func (s *CatalogService) Product(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "CatalogService.Product"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ProductID == productID {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	const op = "CatalogService.Categories"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var cs []string
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cs = append(cs, p.Category)
	}
	return cs, nil
}

func (s *CatalogService) SaveProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "CatalogService.SaveProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	if p.ProductID == "" {
		p.ProductID = uuid.NewString()
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := p.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	replaced := false
	for i := range s.products {
		if s.products[i].ProductID == p.ProductID {
			s.products[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		s.products = append(s.products, p)
	}
	s.mu.Unlock()

	if err := s.bump(ctx, domain.SyncReasonSaved); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// SaveProducts stores the whole batch with the repository's batch-write
// primitive and bumps the version once.
func (s *CatalogService) SaveProducts(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "CatalogService.SaveProducts"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	for i := range ps {
		if ps[i].ProductID == "" {
			ps[i].ProductID = uuid.NewString()
			ps[i].CreatedAt = now
		}
		ps[i].UpdatedAt = now
		if err := ps[i].Validate(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := s.repo.UpsertMany(ctx, ps); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	for _, p := range ps {
		replaced := false
		for i := range s.products {
			if s.products[i].ProductID == p.ProductID {
				s.products[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			s.products = append(s.products, p)
		}
	}
	s.mu.Unlock()

	if err := s.bump(ctx, domain.SyncReasonSaved); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *CatalogService) DeleteProduct(
	ctx context.Context, productID string,
) error {
	const op = "CatalogService.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	ps := s.products[:0]
	for _, p := range s.products {
		if p.ProductID != productID {
			ps = append(ps, p)
		}
	}
	s.products = ps
	s.mu.Unlock()

	if err := s.bump(ctx, domain.SyncReasonDeleted); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CurrentVersion reports the catalog version this instance serves.
func (s *CatalogService) CurrentVersion() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *CatalogService) seed(ctx context.Context) error {
	ps := domain.SeedCatalog()

	if err := s.repo.UpsertMany(ctx, ps); err != nil {
		return err
	}
	if err := s.repo.SetVersion(ctx, domain.SeedVersion); err != nil {
		return err
	}

	s.setState(ps, domain.SeedVersion)
	s.persistCache(ps, domain.SeedVersion)
	s.produceSync(ctx, domain.SeedVersion, len(ps), domain.SyncReasonSeeded)
	return nil
}

// refresh pulls the remote list wholesale and repairs it: any seed member
// missing from its category remotely is re-inserted, so the served list
// is always the union of the remote list and the seed defaults.
func (s *CatalogService) refresh(ctx context.Context) error {
	retryCfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
	}

	ps, err := retry.DoWithResult(ctx, retryCfg, func() ([]domain.Product, error) {
		return s.repo.All(ctx)
	})
	if err != nil {
		return err
	}

	version, err := s.repo.Version(ctx)
	if err != nil {
		return err
	}

	missing := missingSeedMembers(ps)
	if len(missing) != 0 {
		if err := s.repo.UpsertMany(ctx, missing); err != nil {
			return err
		}
		ps = append(ps, missing...)

		version++
		if err := s.repo.SetVersion(ctx, version); err != nil {
			return err
		}
		s.produceSync(ctx, version, len(ps), domain.SyncReasonRepaired)

		slog.Warn("catalog repaired",
			"missing", len(missing), "version", version)
	}

	s.setState(ps, version)
	s.persistCache(ps, version)
	return nil
}

// bump increments the catalog version after an admin write and announces
// the change.
func (s *CatalogService) bump(ctx context.Context, reason string) error {
	s.mu.Lock()
	s.version++
	version := s.version
	ps := make([]domain.Product, len(s.products))
	copy(ps, s.products)
	s.mu.Unlock()

	if err := s.repo.SetVersion(ctx, version); err != nil {
		return err
	}

	s.persistCache(ps, version)
	s.produceSync(ctx, version, len(ps), reason)
	return nil
}

// checkObservedVersion invalidates the local cache and re-pulls when
// another instance announced a version this one does not serve yet.
func (s *CatalogService) checkObservedVersion(ctx context.Context) {
	const op = "CatalogService.checkObservedVersion"
	log := slog.With("op", op)

	observed, ok := s.observer.ObservedVersion()
	if !ok || observed == s.CurrentVersion() {
		return
	}

	log.Info("catalog version changed remotely",
		"local", s.CurrentVersion(), "observed", observed)

	if err := s.cache.InvalidateCatalog(); err != nil {
		log.Error("failed to invalidate local cache", "err", err)
	}
	if err := s.refresh(ctx); err != nil {
		log.Error("failed to refresh", "err", err)
	}
}

// degrade serves the local cache when present, else the embedded seed.
// Nothing is written to the remote store on this path.
func (s *CatalogService) degrade() {
	const op = "CatalogService.degrade"
	log := slog.With("op", op)

	ps, version, ok, err := s.cache.LoadCatalog()
	if err == nil && ok {
		s.setState(ps, version)
		log.Warn("serving local cache", "version", version)
		return
	}
	if err != nil {
		log.Error("local cache unreadable", "err", err)
	}

	s.setState(domain.SeedCatalog(), domain.SeedVersion)
	log.Warn("serving embedded seed catalog")
}

func (s *CatalogService) setState(ps []domain.Product, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = ps
	s.version = version
}

func (s *CatalogService) persistCache(ps []domain.Product, version uint64) {
	const op = "CatalogService.persistCache"
	log := slog.With("op", op)

	if err := s.cache.SaveCatalog(ps, version); err != nil {
		log.Error("failed to save local cache", "err", err)
		return
	}
	if err := s.cache.SetLastSync(time.Now().UTC()); err != nil {
		log.Error("failed to save sync timestamp", "err", err)
	}
}

func (s *CatalogService) produceSync(
	ctx context.Context, version uint64, count int, reason string,
) {
	const op = "CatalogService.produceSync"
	log := slog.With("op", op)

	evt := domain.CatalogSyncEvent{
		Version:      version,
		ProductCount: count,
		Reason:       reason,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.producer.ProduceSync(ctx, evt); err != nil {
		log.Error("failed to produce sync event", "err", err)
	}
}

// missingSeedMembers returns the seed products absent from ps. Membership
// is derived from the one canonical seed list per category.
func missingSeedMembers(ps []domain.Product) []domain.Product {
	present := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		present[p.ProductID] = struct{}{}
	}

	var missing []domain.Product
	for _, p := range domain.SeedCatalog() {
		if _, ok := present[p.ProductID]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

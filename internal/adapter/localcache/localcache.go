package localcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/storeworks/storefront/internal/core/domain"
	"github.com/storeworks/storefront/internal/core/port"
	"github.com/syndtr/goleveldb/leveldb"
)

const (
	cartKeyPrefix      = "cart:"
	catalogProductsKey = "catalog:products"
	lastSyncKey        = "catalog:last_sync"
)

// A Cache is the node-local key-value mirror: session carts, the cached
// catalog copy with its version, and the last-sync timestamp. Values are
// JSON-serialized.
type Cache struct {
	db *leveldb.DB
}

func New(path string) (*Cache, error) {
	const op = "localcache.New"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{db}, nil
}

func (c *Cache) Close() {
	const op = "Cache.Close"
	log := slog.With("op", op)

	log.Info("closing local cache...")
	if err := c.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("local cache is closed")
}

func (c *Cache) get(key string, v any) (bool, error) {
	data, err := c.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.db.Put([]byte(key), data, nil)
}

func (c *Cache) delete(key string) error {
	return c.db.Delete([]byte(key), nil)
}

var _ port.CartStore = (*CartStore)(nil)

type CartStore struct {
	cache *Cache
}

func NewCartStore(cache *Cache) CartStore {
	return CartStore{cache}
}

func (s CartStore) LoadCart(sessionID string) (domain.Cart, bool, error) {
	const op = "CartStore.LoadCart"

	var cart domain.Cart
	ok, err := s.cache.get(cartKeyPrefix+sessionID, &cart)
	if err != nil {
		return domain.Cart{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return cart, ok, nil
}

func (s CartStore) SaveCart(sessionID string, c domain.Cart) error {
	const op = "CartStore.SaveCart"

	if err := s.cache.put(cartKeyPrefix+sessionID, c); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CartStore) DropCart(sessionID string) error {
	const op = "CartStore.DropCart"

	if err := s.cache.delete(cartKeyPrefix + sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

var _ port.CatalogCache = (*CatalogCache)(nil)

type cachedCatalog struct {
	Version  uint64           `json:"version"`
	Products []domain.Product `json:"products"`
}

type CatalogCache struct {
	cache *Cache
}

func NewCatalogCache(cache *Cache) CatalogCache {
	return CatalogCache{cache}
}

func (s CatalogCache) LoadCatalog() ([]domain.Product, uint64, bool, error) {
	const op = "CatalogCache.LoadCatalog"

	var doc cachedCatalog
	ok, err := s.cache.get(catalogProductsKey, &doc)
	if err != nil {
		return nil, 0, false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, 0, false, nil
	}
	return doc.Products, doc.Version, true, nil
}

func (s CatalogCache) SaveCatalog(ps []domain.Product, version uint64) error {
	const op = "CatalogCache.SaveCatalog"

	doc := cachedCatalog{Version: version, Products: ps}
	if err := s.cache.put(catalogProductsKey, doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CatalogCache) InvalidateCatalog() error {
	const op = "CatalogCache.InvalidateCatalog"

	if err := s.cache.delete(catalogProductsKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CatalogCache) LastSync() (time.Time, bool, error) {
	const op = "CatalogCache.LastSync"

	var ts string
	ok, err := s.cache.get(lastSyncKey, &ts)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return time.Time{}, false, nil
	}

	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return t, true, nil
}

func (s CatalogCache) SetLastSync(t time.Time) error {
	const op = "CatalogCache.SetLastSync"

	if err := s.cache.put(lastSyncKey, t.Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

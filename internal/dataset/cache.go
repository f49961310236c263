package dataset

import (
	"path/filepath"
	"sync"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

// Cache memoizes loaded datasets by path. An entry is written once, on the
// first successful load, and only read afterwards. Failed loads are not
// stored so a corrected file is picked up on the next call.
type Cache struct {
	mu    sync.Mutex
	store *cache.Cache
	opt   Options
	open  func(path string, opt Options) (*Dataset, error)
}

// NewCache returns an empty cache reading files with opt.
func NewCache(opt Options) *Cache {
	return &Cache{
		store: cache.New(cache.NoExpiration, 0),
		opt:   opt,
		open:  Open,
	}
}

// Load returns the dataset for path, parsing it on first use. On failure
// it returns an empty Dataset and a *LoadError.
func (c *Cache) Load(path string) (*Dataset, error) {
	key := filepath.Clean(path)
	if v, ok := c.store.Get(key); ok {
		return v.(*Dataset), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.store.Get(key); ok {
		return v.(*Dataset), nil
	}
	ds, err := c.open(path, c.opt)
	if err != nil {
		log.WithField("path", path).WithError(err).Warn("dataset load failed")
		if ds == nil {
			ds = Empty(path)
		}
		return ds, err
	}
	c.store.Set(key, ds, cache.NoExpiration)
	return ds, nil
}

// Len reports how many datasets are cached.
func (c *Cache) Len() int { return c.store.ItemCount() }

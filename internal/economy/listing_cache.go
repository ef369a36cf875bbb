package economy

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/catchbot/internal/domain"
)

// listingCache keeps shop listings for a short TTL. Listings change only
// when the catalog is reloaded, which calls Invalidate.
type listingCache struct {
	one *expirable.LRU[string, domain.Listing]
	all *expirable.LRU[string, []domain.Listing]
}

func newListingCache(size int, ttl time.Duration) *listingCache {
	return &listingCache{
		one: expirable.NewLRU[string, domain.Listing](size, nil, ttl),
		all: expirable.NewLRU[string, []domain.Listing](1, nil, ttl),
	}
}

func idKey(id int) string        { return cacheKeyIDPrefix + strconv.Itoa(id) }
func slugKey(slug string) string { return cacheKeySlugPrefix + slug }

func (c *listingCache) get(key string) (*domain.Listing, bool) {
	if c == nil {
		return nil, false
	}
	listing, ok := c.one.Get(key)
	if !ok {
		return nil, false
	}
	return &listing, true
}

func (c *listingCache) put(listing domain.Listing) {
	if c == nil {
		return
	}
	c.one.Add(idKey(listing.ID), listing)
	if listing.Item.Slug != "" {
		c.one.Add(slugKey(listing.Item.Slug), listing)
	}
}

func (c *listingCache) getAll() ([]domain.Listing, bool) {
	if c == nil {
		return nil, false
	}
	listings, ok := c.all.Get(cacheKeyAll)
	if !ok {
		return nil, false
	}
	out := make([]domain.Listing, len(listings))
	copy(out, listings)
	return out, true
}

func (c *listingCache) putAll(listings []domain.Listing) {
	if c == nil {
		return
	}
	stored := make([]domain.Listing, len(listings))
	copy(stored, listings)
	c.all.Add(cacheKeyAll, stored)
	for _, l := range listings {
		c.put(l)
	}
}

func (c *listingCache) purge() {
	if c == nil {
		return
	}
	c.one.Purge()
	c.all.Purge()
}

package organisation

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 10 * time.Minute

// Cache is a redis read-through in front of the organisation store.
// Organisation data does not change during a report run, so concurrent
// per-student generators share lookups through it. With no redis client it
// degrades to pass-through.
type Cache struct {
	svc   *Service
	redis *redis.Client
}

func NewCache(svc *Service, redisClient *redis.Client) *Cache {
	return &Cache{svc: svc, redis: redisClient}
}

func (c *Cache) GetOrganisation(ctx context.Context, id string) (Organisation, error) {
	if c.redis != nil {
		cached, err := c.redis.Get(ctx, cacheKey(id)).Bytes()
		if err == nil {
			var org Organisation
			if err := json.Unmarshal(cached, &org); err == nil {
				return org, nil
			}
		}
	}

	org, err := c.svc.GetOrganisation(ctx, id)
	if err != nil {
		return Organisation{}, err
	}
	c.store(ctx, org)
	return org, nil
}

func (c *Cache) ListOrganisations(ctx context.Context) ([]Organisation, error) {
	orgs, err := c.svc.ListOrganisations(ctx)
	if err != nil {
		return nil, err
	}
	for _, org := range orgs {
		c.store(ctx, org)
	}
	return orgs, nil
}

func (c *Cache) CreateOrganisation(ctx context.Context, input Organisation) (Organisation, error) {
	org, err := c.svc.CreateOrganisation(ctx, input)
	if err != nil {
		return Organisation{}, err
	}
	c.store(ctx, org)
	return org, nil
}

func (c *Cache) DeleteOrganisation(ctx context.Context, id string) error {
	if err := c.svc.DeleteOrganisation(ctx, id); err != nil {
		return err
	}
	if c.redis != nil {
		if err := c.redis.Del(ctx, cacheKey(id)).Err(); err != nil {
			log.Printf("organisation cache del error: %v", err)
		}
	}
	return nil
}

func (c *Cache) store(ctx context.Context, org Organisation) {
	if c.redis == nil {
		return
	}
	payload, err := json.Marshal(org)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, cacheKey(org.ID), payload, cacheTTL).Err(); err != nil {
		log.Printf("organisation cache set error: %v", err)
	}
}

func cacheKey(id string) string {
	return "org:" + id
}

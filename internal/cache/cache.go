package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/config"
	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const specialtiesKey = "planning_specialties"

type Cache struct {
	cfg *config.Config
	rdb redis.Cmdable
}

func New(cfg *config.Config, rdb redis.Cmdable) *Cache {
	return &Cache{
		cfg: cfg,
		rdb: rdb,
	}
}

func (c *Cache) operationTimeout() time.Duration {
	return time.Duration(c.cfg.Redis.OperationExpiration) * time.Second
}

// GetSpecialties devuelve la lista de especialidades cacheada. ok es false si no hay entrada.
func (c *Cache) GetSpecialties(ctx context.Context) (specialties []*domain.Specialty, ok bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout())
	defer cancel()

	data, err := c.rdb.Get(ctx, specialtiesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if err := json.Unmarshal(data, &specialties); err != nil {
		return nil, false, err
	}

	return specialties, true, nil
}

func (c *Cache) SetSpecialties(ctx context.Context, specialties []*domain.Specialty) error {
	if c.cfg.Cache.SpecialtiesTTL <= 0 {
		return nil
	}

	data, err := json.Marshal(specialties)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout())
	defer cancel()

	return c.rdb.Set(ctx, specialtiesKey, data, time.Duration(c.cfg.Cache.SpecialtiesTTL)*time.Second).Err()
}

func (c *Cache) InvalidateSpecialties(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout())
	defer cancel()

	return c.rdb.Del(ctx, specialtiesKey).Err()
}

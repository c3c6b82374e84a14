package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/mappers"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/models"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

const (
	menuIDKeyPrefix  = "menu:id:"
	menuSIDKeyPrefix = "menu:sid:"
	baseMenuTTL      = 30 * time.Minute
	menuTTLJitter    = 10 * time.Minute // TTL range: 30-40 min
	menuNullMarker   = "_null"
	menuNullTTL      = time.Minute
)

// CachedMenuRepository is a read-through Redis cache in front of a
// menu.Repository. Writes go to the inner repository first and then drop
// the cached entries, so a renewal never prices against a stale schedule
// for longer than one in-flight read.
type CachedMenuRepository struct {
	inner  menu.Repository
	client *redis.Client
	mapper mappers.MenuMapper
	logger logger.Interface
}

func NewCachedMenuRepository(inner menu.Repository, client *redis.Client, logger logger.Interface) *CachedMenuRepository {
	return &CachedMenuRepository{
		inner:  inner,
		client: client,
		mapper: mappers.NewMenuMapper(),
		logger: logger,
	}
}

func menuIDKey(id uint) string {
	return fmt.Sprintf("%s%d", menuIDKeyPrefix, id)
}

func menuSIDKey(sid string) string {
	return menuSIDKeyPrefix + sid
}

func menuTTLWithJitter() time.Duration {
	return baseMenuTTL + time.Duration(rand.Int64N(int64(menuTTLJitter)))
}

func (r *CachedMenuRepository) Create(ctx context.Context, m *menu.Menu) error {
	return r.inner.Create(ctx, m)
}

func (r *CachedMenuRepository) GetByID(ctx context.Context, id uint) (*menu.Menu, error) {
	return r.readThrough(ctx, menuIDKey(id), func() (*menu.Menu, error) {
		return r.inner.GetByID(ctx, id)
	})
}

func (r *CachedMenuRepository) GetBySID(ctx context.Context, sid string) (*menu.Menu, error) {
	return r.readThrough(ctx, menuSIDKey(sid), func() (*menu.Menu, error) {
		return r.inner.GetBySID(ctx, sid)
	})
}

// ListByChef is not cached.
func (r *CachedMenuRepository) ListByChef(ctx context.Context, chefID uint, page, pageSize int) ([]*menu.Menu, int64, error) {
	return r.inner.ListByChef(ctx, chefID, page, pageSize)
}

func (r *CachedMenuRepository) Update(ctx context.Context, m *menu.Menu) error {
	if err := r.inner.Update(ctx, m); err != nil {
		return err
	}
	r.invalidate(ctx, m.ID(), m.SID())
	return nil
}

func (r *CachedMenuRepository) Delete(ctx context.Context, id uint) error {
	// resolve the SID first so both keys can be dropped
	existing, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	sid := ""
	if existing != nil {
		sid = existing.SID()
	}
	r.invalidate(ctx, id, sid)
	return nil
}

func (r *CachedMenuRepository) readThrough(ctx context.Context, key string, load func() (*menu.Menu, error)) (*menu.Menu, error) {
	cached, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if cached == menuNullMarker {
			return nil, nil
		}
		m, decodeErr := r.decode(cached)
		if decodeErr == nil {
			return m, nil
		}
		r.logger.Warnw("dropping undecodable cached menu", "key", key, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		// redis unavailable; serve from the database
		r.logger.Warnw("menu cache read failed", "key", key, "error", err)
		return load()
	}

	m, err := load()
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, m)
	return m, nil
}

func (r *CachedMenuRepository) store(ctx context.Context, key string, m *menu.Menu) {
	if m == nil {
		if err := r.client.Set(ctx, key, menuNullMarker, menuNullTTL).Err(); err != nil {
			r.logger.Warnw("failed to cache menu null marker", "key", key, "error", err)
		}
		return
	}

	model, err := r.mapper.ToModel(m)
	if err != nil {
		r.logger.Warnw("failed to map menu for cache", "menu_id", m.SID(), "error", err)
		return
	}
	data, err := json.Marshal(model)
	if err != nil {
		r.logger.Warnw("failed to encode menu for cache", "menu_id", m.SID(), "error", err)
		return
	}
	if err := r.client.Set(ctx, key, data, menuTTLWithJitter()).Err(); err != nil {
		r.logger.Warnw("failed to cache menu", "key", key, "error", err)
	}
}

func (r *CachedMenuRepository) decode(data string) (*menu.Menu, error) {
	var model models.MenuModel
	if err := json.Unmarshal([]byte(data), &model); err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&model)
}

func (r *CachedMenuRepository) invalidate(ctx context.Context, id uint, sid string) {
	keys := []string{menuIDKey(id)}
	if sid != "" {
		keys = append(keys, menuSIDKey(sid))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warnw("failed to invalidate cached menu", "menu_id", id, "error", err)
		return
	}
	r.logger.Debugw("menu cache invalidated", "menu_id", id, "sid", sid)
}

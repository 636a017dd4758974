package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/metrics"
)

const (
	catalogVersionKey = "catalog:version"
	siteKeyPrefix     = "site:"
	searchKeyPrefix   = "search:"

	cacheNameSite   = "site"
	cacheNameSearch = "search"
)

// CatalogCache - кеш чтений каталога поверх CacheRepository.
// Ключи поиска содержат версию каталога, ключи мест - версию места; обе растут
// при каждой записи, поэтому устаревшие значения никогда не отдаются. Ошибки Redis только логируются.
// nil *CatalogCache - кеш выключен.
type CatalogCache struct {
	repo      repository.CacheRepository
	siteTTL   time.Duration
	searchTTL time.Duration
	logger    *zap.Logger
}

// NewCatalogCache создает кеш; при repo == nil возвращает nil (кеш выключен)
func NewCatalogCache(
	repo repository.CacheRepository,
	siteTTL, searchTTL time.Duration,
	logger *zap.Logger,
) *CatalogCache {
	if repo == nil {
		return nil
	}
	return &CatalogCache{
		repo:      repo,
		siteTTL:   siteTTL,
		searchTTL: searchTTL,
		logger:    logger,
	}
}

func siteVersionKey(id int64) string {
	return fmt.Sprintf("%s%d:version", siteKeyPrefix, id)
}

// SiteKey строит ключ места для его текущей версии.
// Запись места поднимает версию, поэтому значение, прочитанное из БД до коммита
// и положенное в кеш после него, остаётся под старым ключом и больше не читается.
// false - версия недоступна, кешировать нельзя.
func (c *CatalogCache) SiteKey(ctx context.Context, id int64) (string, bool) {
	if c == nil {
		return "", false
	}

	version, err := c.repo.Counter(ctx, siteVersionKey(id))
	if err != nil {
		c.logger.Warn("Failed to read site version", zap.Int64("id", id), zap.Error(err))
		return "", false
	}
	return fmt.Sprintf("%s%d:v%d", siteKeyPrefix, id, version), true
}

// GetSite возвращает место из кеша; false - промах или ошибка
func (c *CatalogCache) GetSite(ctx context.Context, key string) (*domain.Site, bool) {
	if c == nil {
		return nil, false
	}

	var site domain.Site
	if !c.get(ctx, cacheNameSite, key, &site) {
		return nil, false
	}
	return &site, true
}

func (c *CatalogCache) SetSite(ctx context.Context, key string, site *domain.Site) {
	if c == nil {
		return
	}
	c.set(ctx, key, site, c.siteTTL)
}

// InvalidateSite поднимает версию места и версию каталога
func (c *CatalogCache) InvalidateSite(ctx context.Context, id int64) {
	if c == nil {
		return
	}
	if _, err := c.repo.Incr(ctx, siteVersionKey(id)); err != nil {
		c.logger.Warn("Failed to invalidate cached site", zap.Int64("id", id), zap.Error(err))
	}
	c.BumpVersion(ctx)
}

// BumpVersion делает все закешированные результаты поиска недоступными
func (c *CatalogCache) BumpVersion(ctx context.Context) {
	if c == nil {
		return
	}
	if _, err := c.repo.Incr(ctx, catalogVersionKey); err != nil {
		c.logger.Warn("Failed to bump catalog version", zap.Error(err))
	}
}

// SearchKey строит ключ результата поиска для текущей версии каталога.
// false - версия недоступна, кешировать нельзя.
func (c *CatalogCache) SearchKey(ctx context.Context, kind string, params ...string) (string, bool) {
	if c == nil {
		return "", false
	}

	version, err := c.repo.Counter(ctx, catalogVersionKey)
	if err != nil {
		c.logger.Warn("Failed to read catalog version", zap.Error(err))
		return "", false
	}

	sum := sha256.Sum256([]byte(strings.Join(params, "\x00")))
	return fmt.Sprintf("%sv%d:%s:%s", searchKeyPrefix, version, kind, hex.EncodeToString(sum[:16])), true
}

func (c *CatalogCache) GetSites(ctx context.Context, key string) ([]*domain.Site, bool) {
	if c == nil {
		return nil, false
	}

	var sites []*domain.Site
	if !c.get(ctx, cacheNameSearch, key, &sites) {
		return nil, false
	}
	if sites == nil {
		sites = make([]*domain.Site, 0)
	}
	return sites, true
}

func (c *CatalogCache) SetSites(ctx context.Context, key string, sites []*domain.Site) {
	if c == nil {
		return
	}
	c.set(ctx, key, sites, c.searchTTL)
}

func (c *CatalogCache) get(ctx context.Context, name, key string, dst interface{}) bool {
	data, err := c.repo.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Cache read failed, falling back to store", zap.String("key", key), zap.Error(err))
		return false
	}
	if data == nil {
		metrics.RecordCacheLookup(name, false)
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("Failed to decode cached value", zap.String("key", key), zap.Error(err))
		return false
	}

	metrics.RecordCacheLookup(name, true)
	return true
}

func (c *CatalogCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Failed to encode value for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.repo.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

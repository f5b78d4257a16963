package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"FundPulse/internal/domain/models"
	drepo "FundPulse/internal/domain/repository"
	"FundPulse/internal/service/cache"
	"FundPulse/internal/service/newsapi"
	pkgcache "FundPulse/pkg/cache"
)

// NewsSearch proxies news searches through a TTL response cache.
type NewsSearch struct {
	source drepo.NewsSource
	cache  *cache.TTLCache
}

func NewNewsSearch(source drepo.NewsSource, c *cache.TTLCache) *NewsSearch {
	return &NewsSearch{source: source, cache: c}
}

// CacheKey fingerprints one upstream request.
func CacheKey(req models.NewsRequest) string {
	return pkgcache.Fingerprint("news", newsapi.PathEverything, req.Query, req.Sort, req.PageSize)
}

// Search returns articles for req. cached reports whether they were served
// without an upstream call. req must already be validated.
func (n *NewsSearch) Search(ctx context.Context, req models.NewsRequest) (articles []models.Article, cached bool, err error) {
	payload, hit, err := n.cache.GetOrFetch(ctx, CacheKey(req), func(ctx context.Context) ([]byte, error) {
		list, err := n.source.Search(ctx, req.Query, req.Sort, req.PageSize)
		if err != nil {
			return nil, err
		}
		return json.Marshal(list)
	})
	if err != nil {
		return nil, false, err
	}

	if err := json.Unmarshal(payload, &articles); err != nil {
		return nil, false, fmt.Errorf("decode cached articles: %w", err)
	}
	return articles, hit, nil
}

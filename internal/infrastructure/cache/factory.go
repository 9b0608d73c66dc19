package cache

import (
	"go.uber.org/zap"

	"github.com/orderbill/backend/internal/application/report"
	"github.com/orderbill/backend/internal/infrastructure/config"
)

// NewSummaryCache builds the summary cache from configuration: Redis when
// enabled and reachable, otherwise the in-memory cache. A Redis connection
// failure is logged and degrades to in-memory rather than failing startup.
func NewSummaryCache(cfg config.RedisConfig, logger *zap.Logger) report.SummaryCache {
	if !cfg.Enabled {
		return NewInMemorySummaryCache()
	}

	redisCache, err := NewRedisSummaryCache(cfg)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory summary cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemorySummaryCache()
	}

	logger.Info("summary cache backed by redis", zap.String("addr", cfg.Addr()))
	return redisCache
}

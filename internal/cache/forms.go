// internal/cache/forms.go
// Package cache keeps generated forms in Redis so repeated reads of an
// unchanged submission skip regeneration and the database entirely.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"acord-intake/internal/common/logger"
	"acord-intake/internal/common/metrics"
	"acord-intake/internal/models"

	"github.com/redis/go-redis/v9"
)

const formKeyPrefix = "acord:forms:"

// FormCache is a read-through cache of a submission's generated forms.
// Cache failures are never fatal: a broken Redis degrades to
// regeneration, not errors.
type FormCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewFormCache(client *redis.Client, ttl time.Duration, log logger.Logger) *FormCache {
	return &FormCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "form-cache"}),
	}
}

// Get returns the cached forms for a submission, or ok=false on a miss.
func (c *FormCache) Get(ctx context.Context, submissionID string) ([]*models.GeneratedForm, bool) {
	val, err := c.client.Get(ctx, formKeyPrefix+submissionID).Result()
	if err != nil {
		metrics.FormCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}

	var forms []*models.GeneratedForm
	if err := json.Unmarshal([]byte(val), &forms); err != nil {
		c.logger.Warn("discarding unreadable cache entry", map[string]interface{}{
			"submissionId": submissionID,
			"error":        err.Error(),
		})
		c.client.Del(ctx, formKeyPrefix+submissionID)
		metrics.FormCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.FormCacheHits.WithLabelValues("hit").Inc()
	return forms, true
}

// Set stores the forms for a submission with the configured TTL.
func (c *FormCache) Set(ctx context.Context, submissionID string, forms []*models.GeneratedForm) {
	data, err := json.Marshal(forms)
	if err != nil {
		c.logger.Warn("failed to marshal forms for cache", map[string]interface{}{
			"submissionId": submissionID,
			"error":        err.Error(),
		})
		return
	}
	if err := c.client.Set(ctx, formKeyPrefix+submissionID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache forms", map[string]interface{}{
			"submissionId": submissionID,
			"error":        err.Error(),
		})
	}
	metrics.FormCacheHits.WithLabelValues("store").Inc()
}

// Invalidate drops the cached forms after a submission changes.
func (c *FormCache) Invalidate(ctx context.Context, submissionID string) {
	if err := c.client.Del(ctx, formKeyPrefix+submissionID).Err(); err != nil {
		c.logger.Warn("failed to invalidate form cache", map[string]interface{}{
			"submissionId": submissionID,
			"error":        err.Error(),
		})
	}
	metrics.FormCacheHits.WithLabelValues("invalidate").Inc()
}

package counter

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/landmark-crm/landmark/app/models"
	"github.com/landmark-crm/landmark/internal/pkg/cache"
)

const usageCounterKeyPrefix = "usage:counters:"

// Counter buffers high-frequency usage increments in Redis and drains them to
// the subscription_items table in batches. The tracker's absolute overwrites
// still win: a flush only adds deltas recorded since the last drain.
type Counter struct {
	db    *gorm.DB
	cache *cache.Client
}

// New creates a usage counter over the given database and cache.
func New(db *gorm.DB, cacheClient *cache.Client) *Counter {
	return &Counter{db: db, cache: cacheClient}
}

// Add increments the pending delta for one resource of one subscription.
func (c *Counter) Add(subscriptionID, resourceType string, delta int64) error {
	ctx := context.Background()
	return c.cache.Redis().HIncrBy(ctx, usageCounterKeyPrefix+resourceType, subscriptionID, delta).Err()
}

// FlushAll drains pending deltas for every tracked resource type.
func (c *Counter) FlushAll() error {
	for _, resource := range models.KnownResourceTypes {
		if err := c.flushResource(resource); err != nil {
			return err
		}
	}
	return nil
}

// flushResource drains one Redis hash atomically and applies the batched
// increments to subscription_items. Uses RENAME to a temporary key so
// in-flight increments during the drain are not lost.
func (c *Counter) flushResource(resource string) error {
	ctx := context.Background()
	rdb := c.cache.Redis()
	redisKey := usageCounterKeyPrefix + resource

	tmpKey := fmt.Sprintf("%s:tmp:%d", redisKey, time.Now().UnixNano())
	if err := rdb.Do(ctx, "RENAME", redisKey, tmpKey).Err(); err != nil {
		// If the key does not exist there is nothing to flush
		if strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return nil
		}
		if err.Error() == "redis: nil" {
			return nil
		}
		return err
	}

	defer rdb.Del(ctx, tmpKey)

	data, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	pairs := make([]pair, 0, len(data))
	for k, v := range data {
		var inc int64
		if _, perr := fmt.Sscanf(v, "%d", &inc); perr != nil || inc == 0 {
			continue
		}
		pairs = append(pairs, pair{subscriptionID: k, inc: inc})
	}
	if len(pairs) == 0 {
		return nil
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].subscriptionID < pairs[j].subscriptionID })

	query, args := buildFlushQuery(resource, pairs)
	if err := c.db.Exec(query, args...).Error; err != nil {
		return err
	}
	return nil
}

type pair struct {
	subscriptionID string
	inc            int64
}

// buildFlushQuery batches the deltas into one upsert. A pair without a usage
// line yet gets a fresh row with no limit set, so its deltas are kept instead
// of being discarded with the drained hash.
func buildFlushQuery(resource string, pairs []pair) (string, []interface{}) {
	var builder strings.Builder
	args := make([]interface{}, 0, len(pairs)*3)
	builder.WriteString("INSERT INTO subscription_items (subscription_id, resource_type, quantity, unit_amount, created_at, updated_at) VALUES")
	for i, p := range pairs {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString(" (?, ?, ?, 0, NOW(), NOW())")
		args = append(args, p.subscriptionID, resource, p.inc)
	}
	builder.WriteString(" ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity), updated_at = NOW()")
	return builder.String(), args
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"forum/internal/middleware"
	"forum/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// GroupsListKey holds the JSON-encoded group listing.
	GroupsListKey = "groups:list"
	// GroupsListTTL bounds staleness if an invalidation is lost.
	GroupsListTTL = 2 * time.Minute
)

// GroupList is a cache-aside wrapper for the group listing. A nil
// *GroupList, or one without a client, always calls through to load.
type GroupList struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewGroupList returns a GroupList backed by rdb.
func NewGroupList(rdb redis.Cmdable) *GroupList {
	return &GroupList{rdb: rdb, ttl: GroupsListTTL}
}

// Get returns the cached listing or fills the cache from load. Redis
// failures are logged and never fail the request.
func (g *GroupList) Get(ctx context.Context, load func(context.Context) ([]models.Group, error)) ([]models.Group, error) {
	if g == nil || g.rdb == nil {
		return load(ctx)
	}

	raw, err := g.rdb.Get(ctx, GroupsListKey).Bytes()
	if err == nil {
		var groups []models.Group
		if jsonErr := json.Unmarshal(raw, &groups); jsonErr == nil {
			return groups, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		middleware.Logger.WarnContext(ctx, "group cache read failed", slog.String("error", err.Error()))
	}

	groups, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(groups); jsonErr == nil {
		if setErr := g.rdb.Set(ctx, GroupsListKey, encoded, g.ttl).Err(); setErr != nil {
			middleware.Logger.WarnContext(ctx, "group cache write failed", slog.String("error", setErr.Error()))
		}
	}
	return groups, nil
}

// Invalidate drops the cached listing after a group is created or joined.
func (g *GroupList) Invalidate(ctx context.Context) {
	if g == nil || g.rdb == nil {
		return
	}
	if err := g.rdb.Del(ctx, GroupsListKey).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "group cache invalidation failed", slog.String("error", err.Error()))
	}
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talentshowcase/search-service/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// RedisOptions holds the connection settings for the search cache.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

type RedisSearchCache struct {
	client *redis.Client
	prefix string
}

// NewRedisSearchCache creates a new Redis-based search cache.
func NewRedisSearchCache(opts RedisOptions, prefix string) (*RedisSearchCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisSearchCache{
		client: client,
		prefix: prefix,
	}, nil
}

// Key creates a cache key covering every parameter that can alter a search
// response, including the caller (community decoration differs per caller).
func (c *RedisSearchCache) Key(req *domain.SearchRequest) string {
	talentID := ""
	if req.TalentID != nil {
		talentID = strconv.Itoa(*req.TalentID)
	}
	callerID := ""
	if req.CallerID != nil {
		callerID = strconv.Itoa(*req.CallerID)
	}
	return strings.Join([]string{
		c.prefix, "search",
		req.Query, req.Type, req.Level, talentID,
		strconv.Itoa(req.Page), strconv.Itoa(req.PageSize),
		req.SortBy, req.SortOrder,
		callerID,
	}, ":")
}

func (c *RedisSearchCache) catalogKey() string {
	return c.prefix + ":filters"
}

func (c *RedisSearchCache) GetResponse(ctx context.Context, key string) (*domain.SearchResponse, error) {
	var resp domain.SearchResponse
	if err := c.get(ctx, key, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RedisSearchCache) SetResponse(ctx context.Context, key string, resp *domain.SearchResponse, ttl time.Duration) error {
	return c.set(ctx, key, resp, ttl)
}

func (c *RedisSearchCache) GetCatalog(ctx context.Context) (*domain.FilterCatalog, error) {
	var catalog domain.FilterCatalog
	if err := c.get(ctx, c.catalogKey(), &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *RedisSearchCache) SetCatalog(ctx context.Context, catalog *domain.FilterCatalog, ttl time.Duration) error {
	return c.set(ctx, c.catalogKey(), catalog, ttl)
}

func (c *RedisSearchCache) get(ctx context.Context, key string, target interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get from redis: %w", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return nil
}

func (c *RedisSearchCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

func (c *RedisSearchCache) Close() error {
	return c.client.Close()
}

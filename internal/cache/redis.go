package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jask/fleetledger/internal/database/repository"
)

const vehiclesKey = "fleetledger:vehicles"

// VehicleCache keeps the vehicle list in redis. Every failure is logged and
// reported as a miss.
type VehicleCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *log.Logger
}

// Open connects to redis. url may be a redis:// URL or a bare host:port.
func Open(url string, ttl time.Duration, logger *log.Logger) (*VehicleCache, error) {
	if logger == nil {
		logger = log.Default()
	}
	if !strings.Contains(url, "://") {
		url = "redis://" + url
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: strings.TrimPrefix(url, "redis://")}
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return New(client, ttl, logger), nil
}

// New wraps an existing client.
func New(client *redis.Client, ttl time.Duration, logger *log.Logger) *VehicleCache {
	if logger == nil {
		logger = log.Default()
	}
	return &VehicleCache{client: client, ttl: ttl, log: logger}
}

func (c *VehicleCache) GetVehicles(ctx context.Context) ([]repository.Vehicle, bool) {
	data, err := c.client.Get(ctx, vehiclesKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Printf("warn: vehicle cache read: %v", err)
		return nil, false
	}
	var vehicles []repository.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		c.log.Printf("warn: vehicle cache decode: %v", err)
		return nil, false
	}
	return vehicles, true
}

func (c *VehicleCache) SetVehicles(ctx context.Context, vehicles []repository.Vehicle) {
	data, err := json.Marshal(vehicles)
	if err != nil {
		c.log.Printf("warn: vehicle cache encode: %v", err)
		return
	}
	if err := c.client.SetEx(ctx, vehiclesKey, data, c.ttl).Err(); err != nil {
		c.log.Printf("warn: vehicle cache write: %v", err)
	}
}

// Invalidate drops the cached vehicle list.
func (c *VehicleCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, vehiclesKey).Err()
}

func (c *VehicleCache) Close() error { return c.client.Close() }

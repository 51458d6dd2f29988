package usage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	keyUsagePlan = "usage:%s:plan"
	keyUsageFree = "usage:%s:free"
)

// increments only while the counter is below ARGV[1]; returns 1 when reserved
var reserveScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
	return 0
end
redis.call('INCR', KEYS[1])
return 1
`)

// decrements with a floor of zero
var releaseScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current <= 0 then
	return 0
end
return redis.call('DECR', KEYS[1])
`)

// implements Store on Redis; a user without keys is a fresh free-tier user
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetUsage(ctx context.Context, userID string) (*State, error) {
	pipe := s.client.Pipeline()
	planCmd := pipe.Get(ctx, fmt.Sprintf(keyUsagePlan, userID))
	freeCmd := pipe.Get(ctx, fmt.Sprintf(keyUsageFree, userID))

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read usage from redis: %w", err)
	}

	state := &State{Plan: PlanFree}

	plan, err := planCmd.Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return nil, fmt.Errorf("failed to read plan from redis: %w", err)
	default:
		state.Plan = ParsePlan(plan)
	}

	free, err := freeCmd.Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return nil, fmt.Errorf("failed to read free usage from redis: %w", err)
	default:
		n, convErr := strconv.Atoi(free)
		if convErr != nil {
			return nil, fmt.Errorf("corrupt free usage value %q: %w", free, convErr)
		}
		state.FreeUsage = n
	}

	return state, nil
}

func (s *RedisStore) IncrementFreeUsage(ctx context.Context, userID string) (int, error) {
	n, err := s.client.Incr(ctx, fmt.Sprintf(keyUsageFree, userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment free usage in redis: %w", err)
	}

	return int(n), nil
}

func (s *RedisStore) ReserveFreeUsage(ctx context.Context, userID string, limit int) (bool, error) {
	reserved, err := reserveScript.Run(ctx, s.client, []string{fmt.Sprintf(keyUsageFree, userID)}, limit).Int()
	if err != nil {
		return false, fmt.Errorf("failed to reserve free usage in redis: %w", err)
	}

	return reserved == 1, nil
}

func (s *RedisStore) ReleaseFreeUsage(ctx context.Context, userID string) error {
	if err := releaseScript.Run(ctx, s.client, []string{fmt.Sprintf(keyUsageFree, userID)}).Err(); err != nil {
		return fmt.Errorf("failed to release free usage in redis: %w", err)
	}

	return nil
}

// records the plan the billing provider reported for the user
func (s *RedisStore) SetPlan(ctx context.Context, userID string, plan Plan) error {
	if err := s.client.Set(ctx, fmt.Sprintf(keyUsagePlan, userID), string(plan), 0).Err(); err != nil {
		return fmt.Errorf("failed to set plan in redis: %w", err)
	}

	return nil
}

package carts

import (
	"context"
	"fmt"
	"strconv"

	goredislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 已登录用户的购物车
// 数量放在hash carts_<uid> 里，勾选状态放在set selected_<uid> 里
// 每个字段的操作都是原子的，但一次逻辑操作跨两个key，不保证隔离
type RedisStore struct {
	rdb    *goredislib.Client
	userID int32
	logger *zap.SugaredLogger
}

func NewRedisStore(rdb *goredislib.Client, userID int32, logger *zap.SugaredLogger) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		userID: userID,
		logger: logger,
	}
}

func (s *RedisStore) cartKey() string {
	return fmt.Sprintf("carts_%d", s.userID)
}

func (s *RedisStore) selectedKey() string {
	return fmt.Sprintf("selected_%d", s.userID)
}

func (s *RedisStore) Get(ctx context.Context) (Snapshot, error) {
	itemMap, err := s.rdb.HGetAll(ctx, s.cartKey()).Result()
	if err != nil {
		return nil, err
	}
	selected, err := s.rdb.SMembers(ctx, s.selectedKey()).Result()
	if err != nil {
		return nil, err
	}

	selectedSet := make(map[string]struct{}, len(selected))
	for _, skuID := range selected {
		selectedSet[skuID] = struct{}{}
	}

	snapshot := make(Snapshot, len(itemMap))
	for skuIDStr, countStr := range itemMap {
		skuID, err := strconv.Atoi(skuIDStr)
		if err != nil {
			s.logger.Warnf("购物车里有脏数据，跳过: %s", skuIDStr)
			continue
		}
		count, err := strconv.Atoi(countStr)
		if err != nil {
			s.logger.Warnf("购物车里有脏数据，跳过: sku=%s count=%s", skuIDStr, countStr)
			continue
		}
		_, ok := selectedSet[skuIDStr]
		snapshot[int32(skuID)] = Line{Count: int32(count), Selected: ok}
	}
	return snapshot, nil
}

func (s *RedisStore) SetLine(ctx context.Context, skuID, count int32, selected bool) error {
	field := strconv.Itoa(int(skuID))
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, s.cartKey(), field, count)
	if selected {
		pipe.SAdd(ctx, s.selectedKey(), field)
	} else {
		pipe.SRem(ctx, s.selectedKey(), field)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) AddLine(ctx context.Context, skuID, count int32, selected bool) error {
	field := strconv.Itoa(int(skuID))
	pipe := s.rdb.Pipeline()
	// hincrby可以做到数量累加的原子性
	pipe.HIncrBy(ctx, s.cartKey(), field, int64(count))
	if selected {
		pipe.SAdd(ctx, s.selectedKey(), field)
	} else {
		pipe.SRem(ctx, s.selectedKey(), field)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) RemoveLine(ctx context.Context, skuID int32) error {
	field := strconv.Itoa(int(skuID))
	pipe := s.rdb.Pipeline()
	pipe.HDel(ctx, s.cartKey(), field)
	pipe.SRem(ctx, s.selectedKey(), field)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) SetAllSelected(ctx context.Context, selected bool) error {
	skuIDs, err := s.rdb.HKeys(ctx, s.cartKey()).Result()
	if err != nil {
		return err
	}
	if len(skuIDs) == 0 {
		return nil
	}

	members := make([]interface{}, 0, len(skuIDs))
	for _, skuID := range skuIDs {
		members = append(members, skuID)
	}
	if selected {
		return s.rdb.SAdd(ctx, s.selectedKey(), members...).Err()
	}
	return s.rdb.SRem(ctx, s.selectedKey(), members...).Err()
}

package carts

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"go.uber.org/zap"
)

// 匿名购物车放在cookie里的名字
const CookieName = "carts"

// 匿名用户的购物车
// 整个快照json序列化后base64，整个放在一个cookie里
// 每次改动都是整体解码、改内存、整体重编，最后由handler写回cookie
type CookieStore struct {
	snapshot Snapshot
	logger   *zap.SugaredLogger
}

func NewCookieStore(raw string, logger *zap.SugaredLogger) *CookieStore {
	s := &CookieStore{
		snapshot: Snapshot{},
		logger:   logger,
	}
	if raw == "" {
		return s
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		// cookie是客户端传来的，坏了就当空购物车处理
		s.logger.Warnf("购物车cookie解码失败: %v", err)
		return s
	}
	if err := json.Unmarshal(data, &s.snapshot); err != nil {
		s.logger.Warnf("购物车cookie解析失败: %v", err)
		s.snapshot = Snapshot{}
	}
	return s
}

// Encode 把当前快照编码成可以写回cookie的字符串
func (s *CookieStore) Encode() (string, error) {
	data, err := json.Marshal(s.snapshot)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func (s *CookieStore) Get(ctx context.Context) (Snapshot, error) {
	snapshot := make(Snapshot, len(s.snapshot))
	for skuID, line := range s.snapshot {
		snapshot[skuID] = line
	}
	return snapshot, nil
}

func (s *CookieStore) SetLine(ctx context.Context, skuID, count int32, selected bool) error {
	s.snapshot[skuID] = Line{Count: count, Selected: selected}
	return nil
}

func (s *CookieStore) AddLine(ctx context.Context, skuID, count int32, selected bool) error {
	// 之前加过同一件商品就累加求和，勾选状态以最新的为准
	if line, ok := s.snapshot[skuID]; ok {
		count += line.Count
	}
	s.snapshot[skuID] = Line{Count: count, Selected: selected}
	return nil
}

func (s *CookieStore) RemoveLine(ctx context.Context, skuID int32) error {
	delete(s.snapshot, skuID)
	return nil
}

func (s *CookieStore) SetAllSelected(ctx context.Context, selected bool) error {
	for skuID, line := range s.snapshot {
		line.Selected = selected
		s.snapshot[skuID] = line
	}
	return nil
}

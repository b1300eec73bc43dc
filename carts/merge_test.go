package carts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 内存版的Store，合并逻辑的行为和redis后端一致
type fakeStore struct {
	snapshot Snapshot
}

func newFakeStore(initial Snapshot) *fakeStore {
	if initial == nil {
		initial = Snapshot{}
	}
	return &fakeStore{snapshot: initial}
}

func (f *fakeStore) Get(ctx context.Context) (Snapshot, error) {
	snapshot := make(Snapshot, len(f.snapshot))
	for skuID, line := range f.snapshot {
		snapshot[skuID] = line
	}
	return snapshot, nil
}

func (f *fakeStore) SetLine(ctx context.Context, skuID, count int32, selected bool) error {
	f.snapshot[skuID] = Line{Count: count, Selected: selected}
	return nil
}

func (f *fakeStore) AddLine(ctx context.Context, skuID, count int32, selected bool) error {
	if line, ok := f.snapshot[skuID]; ok {
		count += line.Count
	}
	f.snapshot[skuID] = Line{Count: count, Selected: selected}
	return nil
}

func (f *fakeStore) RemoveLine(ctx context.Context, skuID int32) error {
	delete(f.snapshot, skuID)
	return nil
}

func (f *fakeStore) SetAllSelected(ctx context.Context, selected bool) error {
	for skuID, line := range f.snapshot {
		line.Selected = selected
		f.snapshot[skuID] = line
	}
	return nil
}

func TestMergeSumsCounts(t *testing.T) {
	// 匿名{sku:3} 合并进 已登录{sku:2}，结果是{sku:5}
	store := newFakeStore(Snapshot{10: {Count: 2, Selected: true}})
	anonymous := Snapshot{10: {Count: 3, Selected: true}}

	require.NoError(t, Merge(context.Background(), anonymous, store))

	snapshot, _ := store.Get(context.Background())
	assert.Equal(t, Line{Count: 5, Selected: true}, snapshot[10])
}

func TestMergeSelectionOverwrites(t *testing.T) {
	// 勾选状态以匿名侧为准
	store := newFakeStore(Snapshot{10: {Count: 2, Selected: true}})
	anonymous := Snapshot{10: {Count: 1, Selected: false}}

	require.NoError(t, Merge(context.Background(), anonymous, store))

	snapshot, _ := store.Get(context.Background())
	assert.Equal(t, Line{Count: 3, Selected: false}, snapshot[10])
}

func TestMergeNewSku(t *testing.T) {
	// 已登录购物车里没有的sku，整行带着勾选状态搬过去
	store := newFakeStore(nil)
	anonymous := Snapshot{
		10: {Count: 3, Selected: true},
		11: {Count: 1, Selected: false},
	}

	require.NoError(t, Merge(context.Background(), anonymous, store))

	snapshot, _ := store.Get(context.Background())
	assert.Equal(t, Line{Count: 3, Selected: true}, snapshot[10])
	assert.Equal(t, Line{Count: 1, Selected: false}, snapshot[11])
}

func TestMergeEmptyAnonymousCart(t *testing.T) {
	store := newFakeStore(Snapshot{10: {Count: 2, Selected: true}})

	require.NoError(t, Merge(context.Background(), Snapshot{}, store))

	snapshot, _ := store.Get(context.Background())
	assert.Equal(t, Snapshot{10: {Count: 2, Selected: true}}, snapshot)
}

package orders

import (
	"MuXiangMall/carts"
	"MuXiangMall/model"
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 内存版的购物车，提交订单的测试不需要真redis
type fakeCartStore struct {
	snapshot carts.Snapshot
	removed  []int32
}

func (f *fakeCartStore) Get(ctx context.Context) (carts.Snapshot, error) {
	return f.snapshot, nil
}

func (f *fakeCartStore) SetLine(ctx context.Context, skuID, count int32, selected bool) error {
	f.snapshot[skuID] = carts.Line{Count: count, Selected: selected}
	return nil
}

func (f *fakeCartStore) AddLine(ctx context.Context, skuID, count int32, selected bool) error {
	line := f.snapshot[skuID]
	f.snapshot[skuID] = carts.Line{Count: line.Count + count, Selected: selected}
	return nil
}

func (f *fakeCartStore) RemoveLine(ctx context.Context, skuID int32) error {
	f.removed = append(f.removed, skuID)
	delete(f.snapshot, skuID)
	return nil
}

func (f *fakeCartStore) SetAllSelected(ctx context.Context, selected bool) error {
	for skuID, line := range f.snapshot {
		f.snapshot[skuID] = carts.Line{Count: line.Count, Selected: selected}
	}
	return nil
}

func addressRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user", "province", "city", "district", "address", "signer_name", "signer_phone"}).
		AddRow(7, 1, "广东省", "深圳市", "南山区", "科技园1号", "张三", "13800001111")
}

func TestCommitCashOnDelivery(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := &fakeCartStore{snapshot: carts.Snapshot{
		10: {Count: 2, Selected: true},
		20: {Count: 1, Selected: false}, // 没勾选的不参与下单
	}}

	mock.ExpectQuery("SELECT (.+) FROM `address`").WillReturnRows(addressRows())
	mock.ExpectBegin()
	mock.ExpectExec("SAVEPOINT sp_order").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `orderinfo`").WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectQuery("SELECT (.+) FROM `sku`").WillReturnRows(skuRows(5, 0))
	mock.ExpectExec("UPDATE `sku` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `goods` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `ordergoods`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `stockselldetail`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `orderinfo` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	committer := NewCommitter(gdb, store, nil, zap.NewNop().Sugar())
	order, err := committer.Commit(context.Background(), 1, 7, model.PayMethodCash)
	require.NoError(t, err)

	// 2件9.99加10块运费
	require.InDelta(t, 29.98, order.OrderMount, 0.001)
	require.Equal(t, int32(2), order.TotalCount)
	require.Equal(t, model.OrderStatusUnsend, order.Status)
	require.NotEmpty(t, order.OrderSn)

	// 买掉的要从购物车里清掉，没勾选的留着
	require.Equal(t, []int32{10}, store.removed)
	require.Contains(t, store.snapshot, int32(20))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitAlipayStartsUnpaid(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := &fakeCartStore{snapshot: carts.Snapshot{
		10: {Count: 1, Selected: true},
	}}

	mock.ExpectQuery("SELECT (.+) FROM `address`").WillReturnRows(addressRows())
	mock.ExpectBegin()
	mock.ExpectExec("SAVEPOINT sp_order").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `orderinfo`").WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectQuery("SELECT (.+) FROM `sku`").WillReturnRows(skuRows(5, 0))
	mock.ExpectExec("UPDATE `sku` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `goods` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `ordergoods`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `stockselldetail`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `orderinfo` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	committer := NewCommitter(gdb, store, nil, zap.NewNop().Sugar())
	order, err := committer.Commit(context.Background(), 1, 7, model.PayMethodAlipay)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusUnpaid, order.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitStockShortRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := &fakeCartStore{snapshot: carts.Snapshot{
		10: {Count: 6, Selected: true},
	}}

	mock.ExpectQuery("SELECT (.+) FROM `address`").WillReturnRows(addressRows())
	mock.ExpectBegin()
	mock.ExpectExec("SAVEPOINT sp_order").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `orderinfo`").WillReturnResult(sqlmock.NewResult(102, 1))
	// 库存只剩5件，要买6件，整单回滚到保存点
	mock.ExpectQuery("SELECT (.+) FROM `sku`").WillReturnRows(skuRows(5, 0))
	mock.ExpectExec("ROLLBACK TO SAVEPOINT sp_order").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	committer := NewCommitter(gdb, store, nil, zap.NewNop().Sugar())
	_, err := committer.Commit(context.Background(), 1, 7, model.PayMethodCash)
	require.ErrorIs(t, err, ErrStockShort)

	// 下单失败购物车不能动
	require.Empty(t, store.removed)
	require.Contains(t, store.snapshot, int32(10))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitEmptyCart(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := &fakeCartStore{snapshot: carts.Snapshot{
		20: {Count: 3, Selected: false},
	}}

	mock.ExpectQuery("SELECT (.+) FROM `address`").WillReturnRows(addressRows())

	committer := NewCommitter(gdb, store, nil, zap.NewNop().Sugar())
	_, err := committer.Commit(context.Background(), 1, 7, model.PayMethodCash)
	require.ErrorIs(t, err, ErrEmptyCart)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitWrongAddress(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := &fakeCartStore{snapshot: carts.Snapshot{
		10: {Count: 1, Selected: true},
	}}

	mock.ExpectQuery("SELECT (.+) FROM `address`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	committer := NewCommitter(gdb, store, nil, zap.NewNop().Sugar())
	_, err := committer.Commit(context.Background(), 1, 999, model.PayMethodCash)
	require.ErrorIs(t, err, ErrNoSuchAddress)
	require.NoError(t, mock.ExpectationsWereMet())
}

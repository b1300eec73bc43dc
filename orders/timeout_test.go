package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func timeoutMsgExt(body string) *primitive.MessageExt {
	return &primitive.MessageExt{
		Message: primitive.Message{Topic: TopicOrderTimeout, Body: []byte(body)},
	}
}

func orderRows(status int32) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "order_sn", "user", "status"}).
		AddRow(100, "2026090112000000000000142", 1, status)
}

func TestOrderTimeoutClosesUnpaidOrder(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `orderinfo`").WillReturnRows(orderRows(1))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `stockselldetail`").WillReturnRows(
		sqlmock.NewRows([]string{"order_sn", "status", "detail"}).
			AddRow("2026090112000000000000142", 1, []byte(`[{"Goods":10,"Num":2}]`)))
	mock.ExpectExec("UPDATE `sku` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `stockselldetail` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `orderinfo` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	handle := OrderTimeout(gdb, zap.NewNop().Sugar())
	result, err := handle(context.Background(), timeoutMsgExt(`{"order_sn":"2026090112000000000000142"}`))
	require.NoError(t, err)
	require.Equal(t, consumer.ConsumeSuccess, result)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTimeoutSkipsPaidOrder(t *testing.T) {
	gdb, mock := newMockDB(t)

	// 已经付过款的订单不关不还
	mock.ExpectQuery("SELECT (.+) FROM `orderinfo`").WillReturnRows(orderRows(3))

	handle := OrderTimeout(gdb, zap.NewNop().Sugar())
	result, err := handle(context.Background(), timeoutMsgExt(`{"order_sn":"2026090112000000000000142"}`))
	require.NoError(t, err)
	require.Equal(t, consumer.ConsumeSuccess, result)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTimeoutAlreadyRebacked(t *testing.T) {
	gdb, mock := newMockDB(t)

	// 消息重复投递，扣减明细已经是归还状态，不能再加一次库存
	mock.ExpectQuery("SELECT (.+) FROM `orderinfo`").WillReturnRows(orderRows(1))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `stockselldetail`").
		WillReturnRows(sqlmock.NewRows([]string{"order_sn"}))
	mock.ExpectRollback()

	handle := OrderTimeout(gdb, zap.NewNop().Sugar())
	result, err := handle(context.Background(), timeoutMsgExt(`{"order_sn":"2026090112000000000000142"}`))
	require.NoError(t, err)
	require.Equal(t, consumer.ConsumeSuccess, result)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTimeoutCommitFailureRedelivers(t *testing.T) {
	gdb, mock := newMockDB(t)

	// commit没成功库存就没还回去，这时候消息不能ack，要等重新投递
	mock.ExpectQuery("SELECT (.+) FROM `orderinfo`").WillReturnRows(orderRows(1))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `stockselldetail`").WillReturnRows(
		sqlmock.NewRows([]string{"order_sn", "status", "detail"}).
			AddRow("2026090112000000000000142", 1, []byte(`[{"Goods":10,"Num":2}]`)))
	mock.ExpectExec("UPDATE `sku` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `stockselldetail` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `orderinfo` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("invalid connection"))

	handle := OrderTimeout(gdb, zap.NewNop().Sugar())
	result, err := handle(context.Background(), timeoutMsgExt(`{"order_sn":"2026090112000000000000142"}`))
	require.NoError(t, err)
	require.Equal(t, consumer.ConsumeRetryLater, result)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderTimeoutUnknownOrder(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `orderinfo`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	handle := OrderTimeout(gdb, zap.NewNop().Sugar())
	result, err := handle(context.Background(), timeoutMsgExt(`{"order_sn":"nope"}`))
	require.NoError(t, err)
	require.Equal(t, consumer.ConsumeSuccess, result)
	require.NoError(t, mock.ExpectationsWereMet())
}

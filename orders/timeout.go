package orders

import (
	"MuXiangMall/model"
	"context"
	"encoding/json"

	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 订单超时消息的topic，提交订单时发延时消息进来
const TopicOrderTimeout = "order_timeout"

// OrderTimeout 返回超时消息的消费函数：到点还没支付的订单关单并归还库存
// 消息可能重复投递，归还靠StockSellDetail的status做幂等，不能多还
func OrderTimeout(db *gorm.DB, logger *zap.SugaredLogger) func(context.Context, ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
	type timeoutMsg struct {
		OrderSn string `json:"order_sn"`
	}

	return func(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
		// 有可能有多个订单超时消息，所以要range
		for i := range msgs {
			var m timeoutMsg
			if err := json.Unmarshal(msgs[i].Body, &m); err != nil {
				logger.Errorf("解析超时消息失败，直接丢弃: %s", string(msgs[i].Body))
				continue
			}

			var order model.OrderInfo
			if result := db.Where(&model.OrderInfo{OrderSn: m.OrderSn}).First(&order); result.RowsAffected == 0 {
				// 没找到订单，什么都不做
				continue
			}
			if order.Status != model.OrderStatusUnpaid {
				// 已经支付或者已经关了，什么都不做
				continue
			}

			if !closeAndReback(db, &order, logger) {
				return consumer.ConsumeRetryLater, nil
			}
		}
		return consumer.ConsumeSuccess, nil
	}
}

// closeAndReback 关单并归还库存，整个动作在一个事务里
// 只归还stock，sales不回退，销量按下过的单算
func closeAndReback(db *gorm.DB, order *model.OrderInfo, logger *zap.SugaredLogger) bool {
	tx := db.Begin()

	var sellDetail model.StockSellDetail
	if result := tx.Where(&model.StockSellDetail{OrderSn: order.OrderSn, Status: model.SellStatusSold}).
		First(&sellDetail); result.RowsAffected == 0 {
		// 找不到未归还的明细，说明已经还过了
		tx.Rollback()
		return true
	}

	for _, detail := range sellDetail.Detail {
		// update xx set stock=stock+n，用gorm的原子更新语法
		if result := tx.Model(&model.SKU{}).Where("id = ?", detail.Goods).
			UpdateColumn("stock", gorm.Expr("stock + ?", detail.Num)); result.Error != nil {
			tx.Rollback()
			logger.Errorf("归还库存失败 order_sn=%s sku=%d: %v", order.OrderSn, detail.Goods, result.Error)
			return false
		}
	}

	if result := tx.Model(&model.StockSellDetail{}).
		Where(&model.StockSellDetail{OrderSn: order.OrderSn}).
		Update("status", model.SellStatusRebacked); result.Error != nil {
		tx.Rollback()
		return false
	}

	if result := tx.Model(&model.OrderInfo{}).Where("order_sn = ?", order.OrderSn).
		Update("status", model.OrderStatusClosed); result.Error != nil {
		tx.Rollback()
		return false
	}

	// commit失败时库存还没真的还回去，要让消息重新投递
	if result := tx.Commit(); result.Error != nil {
		logger.Errorf("归还库存提交失败 order_sn=%s: %v", order.OrderSn, result.Error)
		return false
	}
	return true
}

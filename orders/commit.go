package orders

import (
	"MuXiangMall/carts"
	"MuXiangMall/model"
	"context"
	"encoding/json"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 运费先写死，和结算页保持一致
const Freight float32 = 10.00

const savePointName = "sp_order"

// 默认延时等级16，大概30分钟，超时还没支付就关单归还库存
const defaultDelayLevel = 16

// Committer 负责订单提交，依赖都显式传进来，方便测试
type Committer struct {
	db         *gorm.DB
	store      carts.Store
	mq         rocketmq.Producer // 可以为nil，消息发不出去不影响订单
	logger     *zap.SugaredLogger
	delayLevel int
}

func NewCommitter(db *gorm.DB, store carts.Store, mq rocketmq.Producer, logger *zap.SugaredLogger) *Committer {
	return &Committer{
		db:         db,
		store:      store,
		mq:         mq,
		logger:     logger,
		delayLevel: defaultDelayLevel,
	}
}

// Commit 提交订单
/*
	1. 校验地址，必须是当前用户自己的
	2. 从购物车中获取到选中的商品
	3. 开事务建保存点，先落订单行，再逐个sku扣库存
	4. 任何一步失败回滚到保存点，半成品订单不能被看见
	5. 提交之后清购物车、发超时延时消息，这两步失败只记日志
*/
func (c *Committer) Commit(ctx context.Context, userID, addressID, payMethod int32) (*model.OrderInfo, error) {
	var address model.Address
	if result := c.db.Where("id = ? and user = ?", addressID, userID).First(&address); result.RowsAffected == 0 {
		return nil, ErrNoSuchAddress
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "order_commit")
	defer span.Finish()

	cartSpan := opentracing.GlobalTracer().StartSpan("select_cart", opentracing.ChildOf(span.Context()))
	snapshot, err := c.store.Get(ctx)
	cartSpan.Finish()
	if err != nil {
		return nil, err
	}
	selected := snapshot.Selected()
	if len(selected) == 0 {
		return nil, ErrEmptyCart
	}

	// 货到付款直接进待发货，在线支付从待支付开始
	status := model.OrderStatusUnpaid
	if payMethod == model.PayMethodCash {
		status = model.OrderStatusUnsend
	}

	order := model.OrderInfo{
		OrderSn:     GenerateOrderSn(userID),
		User:        userID,
		Address:     address.ID,
		SignerName:  address.SignerName,
		SingerPhone: address.SignerPhone,
		PayMethod:   payMethod,
		Status:      status,
		Freight:     Freight,
	}

	tx := c.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	tx.SavePoint(savePointName)

	reserveSpan := opentracing.GlobalTracer().StartSpan("reserve_and_save", opentracing.ChildOf(span.Context()))
	err = c.fill(tx, &order, selected)
	reserveSpan.Finish()
	if err != nil {
		// 回滚到保存点再提交，和没下过这单一样
		tx.RollbackTo(savePointName)
		tx.Commit()
		return nil, err
	}

	if result := tx.Commit(); result.Error != nil {
		return nil, result.Error
	}

	// 下面都是尽力而为，订单已经生效，失败只记日志
	c.evict(ctx, selected)
	c.sendTimeoutMsg(order.OrderSn)

	return &order, nil
}

// fill 在事务里把订单填满：订单行、逐个sku扣库存、订单商品行、扣减明细
func (c *Committer) fill(tx *gorm.DB, order *model.OrderInfo, selected carts.Snapshot) error {
	if result := tx.Create(order); result.Error != nil {
		return result.Error
	}

	var orderGoods []*model.OrderGoods
	var details model.GoodsDetailList
	for skuID, line := range selected {
		reserved, err := ReserveStock(tx, skuID, line.Count)
		if err != nil {
			return err
		}

		orderGoods = append(orderGoods, &model.OrderGoods{
			Order:      order.ID,
			Goods:      reserved.SkuID,
			GoodsName:  reserved.Name,
			GoodsImage: reserved.Image,
			GoodsPrice: reserved.Price,
			Nums:       reserved.Count,
		})
		details = append(details, model.GoodsDetail{Goods: skuID, Num: line.Count})

		order.TotalCount += line.Count
		order.OrderMount += reserved.Price * float32(line.Count)
	}

	// 批量插入订单商品表
	if result := tx.CreateInBatches(orderGoods, 100); result.Error != nil {
		return result.Error
	}

	// 扣减明细落一条，超时归还的时候靠它做幂等
	sellDetail := model.StockSellDetail{
		OrderSn: order.OrderSn,
		Status:  model.SellStatusSold,
		Detail:  details,
	}
	if result := tx.Create(&sellDetail); result.Error != nil {
		return result.Error
	}

	order.OrderMount += order.Freight
	if result := tx.Save(order); result.Error != nil {
		return result.Error
	}
	return nil
}

// evict 把已经买掉的记录从购物车里清掉
// 失败不回滚订单，购物车里多躺一条记录比丢一单强
func (c *Committer) evict(ctx context.Context, selected carts.Snapshot) {
	for skuID := range selected {
		if err := c.store.RemoveLine(ctx, skuID); err != nil {
			c.logger.Warnf("清理已购买的购物车记录失败 sku=%d: %v", skuID, err)
		}
	}
}

func (c *Committer) sendTimeoutMsg(orderSn string) {
	if c.mq == nil {
		return
	}
	body, _ := json.Marshal(map[string]string{"order_sn": orderSn})
	msg := primitive.NewMessage(TopicOrderTimeout, body)
	msg.WithDelayTimeLevel(c.delayLevel)
	if _, err := c.mq.SendSync(context.Background(), msg); err != nil {
		c.logger.Errorf("发送订单超时延时消息失败 order_sn=%s: %v", orderSn, err)
	}
}

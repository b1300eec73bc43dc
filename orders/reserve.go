package orders

import (
	"MuXiangMall/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

// 乐观锁的重试上限，热点商品竞争太凶就放弃这一单，不能让事务一直挂着
var (
	casMaxRetries = 10
	casBackoff    = 5 * time.Millisecond
)

// ReservedLine 扣减成功的一行，价格以扣减那一刻为准，后面改价不影响这单
type ReservedLine struct {
	SkuID int32
	Count int32
	Price float32
	Name  string
	Image string
}

// ReserveStock 在调用方已经打开的事务里对单个sku做库存扣减
// 乐观锁：先读出stock，条件更新 where id=? and stock=读到的值
// 一行都没更新到说明有并发请求抢先改了，退避之后重读重试
// 库存不够直接返回ErrStockShort，由调用方回滚整个订单
func ReserveStock(tx *gorm.DB, skuID, count int32) (*ReservedLine, error) {
	backoff := casBackoff
	for i := 0; i < casMaxRetries; i++ {
		var sku model.SKU
		result := tx.Where("id = ?", skuID).First(&sku)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrNoSuchSku
		}

		if count > sku.Stock {
			return nil, ErrStockShort
		}

		// 条件更新，用map防止gorm忽略扣到0的stock
		result = tx.Model(&model.SKU{}).
			Where("id = ? and stock = ?", skuID, sku.Stock).
			Updates(map[string]interface{}{
				"stock": sku.Stock - count,
				"sales": sku.Sales + count,
			})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			time.Sleep(backoff)
			backoff *= 2
			continue
		}

		// spu的总销量也要加上去，UpdateColumn跳过钩子，es的同步由商品侧自己做
		if result := tx.Model(&model.Goods{}).Where("id = ?", sku.GoodsID).
			UpdateColumn("sold_num", gorm.Expr("sold_num + ?", count)); result.Error != nil {
			return nil, result.Error
		}

		return &ReservedLine{
			SkuID: sku.ID,
			Count: count,
			Price: sku.Price,
			Name:  sku.Name,
			Image: sku.DefaultImage,
		}, nil
	}
	return nil, ErrCasExhausted
}

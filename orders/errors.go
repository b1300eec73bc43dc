package orders

import "errors"

var (
	// ErrEmptyCart 购物车里没有勾选中的商品
	ErrEmptyCart = errors.New("没有选择结算的商品")
	// ErrNoSuchSku 购物车里引用的sku已经不存在了
	ErrNoSuchSku = errors.New("商品不存在")
	// ErrNoSuchAddress 地址不存在或者不属于当前用户
	ErrNoSuchAddress = errors.New("收货地址不存在")
	// ErrStockShort 库存不足，整单回滚
	ErrStockShort = errors.New("库存不足")
	// ErrCasExhausted 乐观锁重试次数用完了，属于临时性失败，可以重试下单
	ErrCasExhausted = errors.New("商品太抢手了，请稍后重试")
)

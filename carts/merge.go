package carts

import "context"

// Merge 登录成功后把匿名购物车合并进已登录用户的购物车
// 同一个sku数量相加，勾选状态以匿名侧为准
// 合并完由调用方把cookie清掉，不清的话下次登录会重复合并
func Merge(ctx context.Context, anonymous Snapshot, store Store) error {
	for skuID, line := range anonymous {
		if err := store.AddLine(ctx, skuID, line.Count, line.Selected); err != nil {
			return err
		}
	}
	return nil
}

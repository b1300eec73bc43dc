package carts

import "context"

// 购物车的一行记录
type Line struct {
	Count    int32 `json:"count"`
	Selected bool  `json:"selected"`
}

// sku_id -> Line
// 两种存储后端读出来都先统一成这个形状，方便后面统一查商品信息
type Snapshot map[int32]Line

// Selected 只保留勾选中的记录
func (s Snapshot) Selected() Snapshot {
	selected := Snapshot{}
	for skuID, line := range s {
		if line.Selected {
			selected[skuID] = line
		}
	}
	return selected
}

// Store 把redis购物车和cookie购物车统一成一个接口
// 登录态只在创建Store的地方判断一次，调用方不感知
type Store interface {
	Get(ctx context.Context) (Snapshot, error)
	// SetLine 数量和勾选状态都直接覆盖
	SetLine(ctx context.Context, skuID, count int32, selected bool) error
	// AddLine 数量累加，勾选状态覆盖
	AddLine(ctx context.Context, skuID, count int32, selected bool) error
	RemoveLine(ctx context.Context, skuID int32) error
	SetAllSelected(ctx context.Context, selected bool) error
}

package orders

import (
	"MuXiangMall/carts"
	"MuXiangMall/model"
	"context"

	"gorm.io/gorm"
)

type SettlementSku struct {
	ID           int32   `json:"id"`
	Name         string  `json:"name"`
	DefaultImage string  `json:"default_image_url"`
	Price        float32 `json:"price"`
	Count        int32   `json:"count"`
	Amount       float32 `json:"amount"`
}

type SettlementAddress struct {
	ID          int32  `json:"id"`
	Province    string `json:"province"`
	City        string `json:"city"`
	District    string `json:"district"`
	Address     string `json:"address"`
	SignerName  string `json:"signer_name"`
	SignerPhone string `json:"signer_phone"`
}

// SettlementView 结算页要的全部数据
type SettlementView struct {
	Addresses     []SettlementAddress `json:"addresses"`
	Skus          []SettlementSku     `json:"skus"`
	TotalCount    int32               `json:"total_count"`
	TotalAmount   float32             `json:"total_amount"`
	Freight       float32             `json:"freight"`
	PaymentAmount float32             `json:"payment_amount"`
}

// Settle 结算预览，纯读，不动任何状态
// 没有收货地址的用户也能看结算页，地址列表给空的就行
func Settle(ctx context.Context, db *gorm.DB, store carts.Store, userID int32) (*SettlementView, error) {
	view := &SettlementView{
		Addresses: []SettlementAddress{},
		Skus:      []SettlementSku{},
		Freight:   Freight,
	}

	var addresses []model.Address
	if result := db.Where(&model.Address{User: userID}).Find(&addresses); result.Error != nil {
		return nil, result.Error
	}
	for _, address := range addresses {
		view.Addresses = append(view.Addresses, SettlementAddress{
			ID:          address.ID,
			Province:    address.Province,
			City:        address.City,
			District:    address.District,
			Address:     address.Address,
			SignerName:  address.SignerName,
			SignerPhone: address.SignerPhone,
		})
	}

	snapshot, err := store.Get(ctx)
	if err != nil {
		return nil, err
	}
	selected := snapshot.Selected()
	if len(selected) == 0 {
		view.PaymentAmount = view.Freight
		return view, nil
	}

	skuIDs := make([]int32, 0, len(selected))
	for skuID := range selected {
		skuIDs = append(skuIDs, skuID)
	}

	// 价格以当前价为准，真正锁价是在提交订单扣库存的时候
	var skus []model.SKU
	if result := db.Where("id in ?", skuIDs).Find(&skus); result.Error != nil {
		return nil, result.Error
	}
	for _, sku := range skus {
		line := selected[sku.ID]
		amount := sku.Price * float32(line.Count)
		view.Skus = append(view.Skus, SettlementSku{
			ID:           sku.ID,
			Name:         sku.Name,
			DefaultImage: sku.DefaultImage,
			Price:        sku.Price,
			Count:        line.Count,
			Amount:       amount,
		})
		view.TotalCount += line.Count
		view.TotalAmount += amount
	}

	view.PaymentAmount = view.TotalAmount + view.Freight
	return view, nil
}

package forms

// 加购和改数量共用，selected用指针区分"没传"和"传了false"
type CartItemForm struct {
	SkuID    int32 `json:"sku_id" binding:"required"`
	Count    int32 `json:"count" binding:"required,min=1"`
	Selected *bool `json:"selected"`
}

type CartDeleteForm struct {
	SkuID int32 `json:"sku_id" binding:"required"`
}

type CartSelectAllForm struct {
	Selected *bool `json:"selected" binding:"required"`
}

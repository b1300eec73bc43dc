package forms

type OrderCommitForm struct {
	AddressID int32 `json:"address_id" binding:"required"`
	// 1货到付款 2在线支付
	PayMethod int32 `json:"pay_method" binding:"required,oneof=1 2"`
}

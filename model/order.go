package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// 支付方式
const (
	PayMethodCash   int32 = 1 // 货到付款
	PayMethodAlipay int32 = 2 // 在线支付
)

// 订单状态
const (
	OrderStatusUnpaid     int32 = 1 // 待支付
	OrderStatusUnsend     int32 = 2 // 待发货，货到付款的订单直接进这个状态
	OrderStatusUnreceived int32 = 3 // 待收货
	OrderStatusFinished   int32 = 4 // 已完成
	OrderStatusClosed     int32 = 6 // 超时关闭
)

type OrderInfo struct {
	BaseModel

	User    int32  `gorm:"type:int;index"`
	OrderSn string `gorm:"type:varchar(30);index"` //订单号，我们平台自己生成的
	TradeNo string `gorm:"type:varchar(100)"`      //交易号，支付平台那边的订单号

	PayMethod int32 `gorm:"type:int"`
	Status    int32 `gorm:"type:int"`

	TotalCount int32   `gorm:"type:int"` //勾选结算的商品总件数
	OrderMount float32 //订单总金额，含运费
	Freight    float32
	PayTime    *time.Time `gorm:"type:datetime"`

	Address     int32  `gorm:"type:int"`
	SignerName  string `gorm:"type:varchar(20)"`
	SingerPhone string `gorm:"type:varchar(11)"`
	Post        string `gorm:"type:varchar(20)"` //留言信息
}

func (OrderInfo) TableName() string {
	return "orderinfo"
}

// 订单商品表，价格是扣库存那一刻的快照
// 字段冗余是有意的，免得以后展示订单还要去查商品表
type OrderGoods struct {
	BaseModel

	Order int32 `gorm:"type:int;index"`
	Goods int32 `gorm:"type:int;index"` //sku的id

	GoodsName  string `gorm:"type:varchar(100);index"`
	GoodsImage string `gorm:"type:varchar(200)"`
	GoodsPrice float32
	Nums       int32 `gorm:"type:int"`
}

func (OrderGoods) TableName() string {
	return "ordergoods"
}

// 库存扣减状态
const (
	SellStatusSold     int32 = 1 // 已扣减
	SellStatusRebacked int32 = 2 // 已归还
)

type GoodsDetail struct {
	Goods int32
	Num   int32
}

// 库存扣减的细节，每件商品的id和数量
type GoodsDetailList []GoodsDetail

func (g GoodsDetailList) Value() (driver.Value, error) {
	return json.Marshal(g)
}

// 实现 sql.Scanner 接口，Scan 将 value 扫描至 GoodsDetailList
func (g *GoodsDetailList) Scan(value interface{}) error {
	return json.Unmarshal(value.([]byte), &g)
}

// 每个订单记一条扣减明细，超时归还的时候靠status做幂等
type StockSellDetail struct {
	OrderSn string          `gorm:"type:varchar(200);index:idx_order_sn,unique;"`
	Status  int32           `gorm:"type:int"`
	Detail  GoodsDetailList `gorm:"type:varchar(200)"`
}

func (StockSellDetail) TableName() string {
	return "stockselldetail"
}

package model

import (
	"MuXiangMall/global"
	"context"
	"strconv"

	"gorm.io/gorm"
)

// 分类表
// 实际开发中，类型尽量设置不可以为null
type Category struct {
	BaseModel
	Name             string    `gorm:"type:varchar(20);not null"`
	Level            int32     `gorm:"type:int;not null;default:1"` // 设置几级分类
	IsTab            bool      `gorm:"default:false;not null"`      // 是否能显示在tab栏中
	ParentCategoryID int32     `json:"parent"`
	ParentCategory   *Category `json:"-"` //外键对象，json取值时忽略
	// 外键的预加载对象，通过foreignKey指明是哪个外键，references指明ID
	SubCategory []*Category `gorm:"foreignKey:ParentCategoryID;references:ID" json:"sub_category"`
}

// 品牌
type Brands struct {
	BaseModel
	Name string `gorm:"type:varchar(50);not null"`
	Logo string `gorm:"type:varchar(200);default:'';not null"`
}

// 商品spu，一个spu下面挂多个sku
type Goods struct {
	BaseModel

	CategoryID int32 `gorm:"type:int;not null"`
	Category   Category
	BrandsID   int32 `gorm:"type:int;not null"`
	Brands     Brands

	OnSale   bool `gorm:"default:false;not null"`
	ShipFree bool `gorm:"default:false;not null"` // 是否免运费
	IsNew    bool `gorm:"default:false;not null"` // 是否是新品
	IsHot    bool `gorm:"default:false;not null"` // 是否热卖，广告位

	Name     string `gorm:"type:varchar(50);not null"`
	GoodsSn  string `gorm:"type:varchar(50);not null"` // 商家自己的编号
	ClickNum int32  `gorm:"type:int;default:0;not null"`
	SoldNum  int32  `gorm:"type:int;default:0;not null"` // 下单成功的时候累加
	FavNum   int32  `gorm:"type:int;default:0;not null"`

	MarketPrice float32 `gorm:"not null"`
	ShopPrice   float32 `gorm:"not null"`
	GoodsBrief  string  `gorm:"type:varchar(100);not null"`

	Images          GormList `gorm:"type:varchar(1000);not null"`
	DescImages      GormList `gorm:"type:varchar(1000);not null"`
	GoodsFrontImage string   `gorm:"type:varchar(200);not null"`
}

func (Goods) TableName() string {
	return "goods"
}

// sku表，真正可以下单的东西，库存和销量都挂在sku上
// stock和sales只允许走orders包的乐观锁扣减路径和超时归还路径，别的地方不要直接写
type SKU struct {
	BaseModel

	GoodsID int32 `gorm:"type:int;index;not null"`
	Goods   Goods `json:"-"`

	Name         string  `gorm:"type:varchar(50);not null"`
	Caption      string  `gorm:"type:varchar(100)"`
	Price        float32 `gorm:"not null"`
	CostPrice    float32
	MarketPrice  float32
	Stock        int32  `gorm:"type:int;default:0;not null"`
	Sales        int32  `gorm:"type:int;default:0;not null"`
	DefaultImage string `gorm:"type:varchar(200)"`
	OnSale       bool   `gorm:"default:true;not null"`
}

func (SKU) TableName() string {
	return "sku"
}

// 要保持es和mysql的数据一致性，使用gorm的钩子方法
func (g *Goods) AfterCreate(tx *gorm.DB) (err error) {
	esModel := EsGoods{
		ID:          g.ID,
		CategoryID:  g.CategoryID,
		BrandsID:    g.BrandsID,
		OnSale:      g.OnSale,
		ShipFree:    g.ShipFree,
		IsNew:       g.IsNew,
		IsHot:       g.IsHot,
		Name:        g.Name,
		ClickNum:    g.ClickNum,
		SoldNum:     g.SoldNum,
		FavNum:      g.FavNum,
		MarketPrice: g.MarketPrice,
		GoodsBrief:  g.GoodsBrief,
		ShopPrice:   g.ShopPrice,
	}

	_, err = global.EsClient.Index().Index(esModel.GetIndexName()).BodyJson(esModel).Id(strconv.Itoa(int(g.ID))).Do(context.Background())
	if err != nil {
		return err
	}
	return nil
}

func (g *Goods) AfterUpdate(tx *gorm.DB) (err error) {
	esModel := EsGoods{
		ID:          g.ID,
		CategoryID:  g.CategoryID,
		BrandsID:    g.BrandsID,
		OnSale:      g.OnSale,
		ShipFree:    g.ShipFree,
		IsNew:       g.IsNew,
		IsHot:       g.IsHot,
		Name:        g.Name,
		ClickNum:    g.ClickNum,
		SoldNum:     g.SoldNum,
		FavNum:      g.FavNum,
		MarketPrice: g.MarketPrice,
		GoodsBrief:  g.GoodsBrief,
		ShopPrice:   g.ShopPrice,
	}

	_, err = global.EsClient.Update().Index(esModel.GetIndexName()).
		Doc(esModel).Id(strconv.Itoa(int(g.ID))).Do(context.Background())
	if err != nil {
		return err
	}
	return nil
}

func (g *Goods) AfterDelete(tx *gorm.DB) (err error) {
	_, err = global.EsClient.Delete().Index(EsGoods{}.GetIndexName()).Id(strconv.Itoa(int(g.ID))).Do(context.Background())
	if err != nil {
		return err
	}
	return nil
}

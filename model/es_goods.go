package model

// es里的商品文档，只放搜索和列表展示用得上的字段
type EsGoods struct {
	ID          int32   `json:"id"`
	CategoryID  int32   `json:"category_id"`
	BrandsID    int32   `json:"brands_id"`
	OnSale      bool    `json:"on_sale"`
	ShipFree    bool    `json:"ship_free"`
	IsNew       bool    `json:"is_new"`
	IsHot       bool    `json:"is_hot"`
	Name        string  `json:"name"`
	ClickNum    int32   `json:"click_num"`
	SoldNum     int32   `json:"sold_num"`
	FavNum      int32   `json:"fav_num"`
	MarketPrice float32 `json:"market_price"`
	GoodsBrief  string  `json:"goods_brief"`
	ShopPrice   float32 `json:"shop_price"`
}

func (EsGoods) GetIndexName() string {
	return "goods"
}

// 新建索引时的mapping，name和goods_brief走分词
func (EsGoods) GetMapping() string {
	goodsMapping := `
	{
		"mappings": {
			"properties": {
				"name": {
					"type": "text",
					"analyzer": "ik_max_word"
				},
				"goods_brief": {
					"type": "text",
					"analyzer": "ik_max_word"
				},
				"id": { "type": "integer" },
				"category_id": { "type": "integer" },
				"brands_id": { "type": "integer" },
				"on_sale": { "type": "boolean" },
				"ship_free": { "type": "boolean" },
				"is_new": { "type": "boolean" },
				"is_hot": { "type": "boolean" },
				"click_num": { "type": "integer" },
				"sold_num": { "type": "integer" },
				"fav_num": { "type": "integer" },
				"market_price": { "type": "float" },
				"shop_price": { "type": "float" }
			}
		}
	}`
	return goodsMapping
}

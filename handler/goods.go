package handler

import (
	"MuXiangMall/global"
	"MuXiangMall/model"
	"MuXiangMall/retcode"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GoodsServer struct {
	logger *zap.SugaredLogger
}

func NewGoodsServer(logger *zap.SugaredLogger) *GoodsServer {
	return &GoodsServer{logger: logger}
}

// List 商品列表，支持按分类过滤
func (s *GoodsServer) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	query := global.DB.Model(&model.Goods{}).Where("on_sale = ?", true)
	if categoryID, err := strconv.Atoi(c.Query("category")); err == nil {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	query.Count(&total)

	var goodsList []model.Goods
	if result := query.Scopes(model.Paginate(page, pageSize)).Find(&goodsList); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "商品查询失败",
		})
		return
	}

	data := make([]gin.H, 0, len(goodsList))
	for _, goods := range goodsList {
		data = append(data, goodsBrief(&goods))
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   retcode.OK,
		"errmsg": "ok",
		"total":  total,
		"data":   data,
	})
}

// Detail 商品详情，顺手把点击量加一
func (s *GoodsServer) Detail(c *gin.Context) {
	goodsID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   retcode.ParamErr,
			"errmsg": "参数格式不对",
		})
		return
	}

	var goods model.Goods
	if result := global.DB.First(&goods, goodsID); result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"code":   retcode.NoDataErr,
			"errmsg": "商品不存在",
		})
		return
	}

	// UpdateColumn跳过钩子，点击量的变化不值得去同步一次es
	global.DB.Model(&model.Goods{}).Where("id = ?", goods.ID).
		UpdateColumn("click_num", gorm.Expr("click_num + ?", 1))

	var skus []model.SKU
	global.DB.Where("goods_id = ? and on_sale = ?", goods.ID, true).Find(&skus)

	skuList := make([]gin.H, 0, len(skus))
	for _, sku := range skus {
		skuList = append(skuList, gin.H{
			"id":                sku.ID,
			"name":              sku.Name,
			"caption":           sku.Caption,
			"price":             sku.Price,
			"market_price":      sku.MarketPrice,
			"stock":             sku.Stock,
			"default_image_url": sku.DefaultImage,
		})
	}

	detail := goodsBrief(&goods)
	detail["desc_images"] = goods.DescImages
	detail["images"] = goods.Images
	detail["skus"] = skuList

	c.JSON(http.StatusOK, gin.H{
		"code":   retcode.OK,
		"errmsg": "ok",
		"data":   detail,
	})
}

// Search 搜索走es，分词匹配商品名和简介，拿到id再回mysql查完整数据
func (s *GoodsServer) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}

	boolQuery := elastic.NewBoolQuery()
	if keyword != "" {
		boolQuery = boolQuery.Must(elastic.NewMultiMatchQuery(keyword, "name", "goods_brief"))
	}
	boolQuery = boolQuery.Filter(elastic.NewTermQuery("on_sale", true))

	result, err := global.EsClient.Search().
		Index(model.EsGoods{}.GetIndexName()).
		Query(boolQuery).
		From((page - 1) * pageSize).
		Size(pageSize).
		Do(c.Request.Context())
	if err != nil {
		s.logger.Errorf("es搜索失败 keyword=%s: %v", keyword, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "搜索失败",
		})
		return
	}

	goodsIDs := make([]int32, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		esGoods := model.EsGoods{}
		if err := json.Unmarshal(hit.Source, &esGoods); err != nil {
			continue
		}
		goodsIDs = append(goodsIDs, esGoods.ID)
	}

	data := []gin.H{}
	if len(goodsIDs) > 0 {
		var goodsList []model.Goods
		if re := global.DB.Where("id in ?", goodsIDs).Find(&goodsList); re.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":   retcode.DBErr,
				"errmsg": "商品查询失败",
			})
			return
		}
		for _, goods := range goodsList {
			data = append(data, goodsBrief(&goods))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   retcode.OK,
		"errmsg": "ok",
		"total":  result.TotalHits(),
		"data":   data,
	})
}

func goodsBrief(goods *model.Goods) gin.H {
	return gin.H{
		"id":          goods.ID,
		"name":        goods.Name,
		"goods_brief": goods.GoodsBrief,
		"shop_price":  goods.ShopPrice,
		"click_num":   goods.ClickNum,
		"sold_num":    goods.SoldNum,
		"is_hot":      goods.IsHot,
		"is_new":      goods.IsNew,
		"front_image": goods.GoodsFrontImage,
	}
}

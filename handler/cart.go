package handler

import (
	"MuXiangMall/carts"
	"MuXiangMall/forms"
	"MuXiangMall/global"
	"MuXiangMall/model"
	"MuXiangMall/retcode"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 匿名购物车cookie的有效期，30天
const cartCookieMaxAge = 30 * 24 * 3600

type CartServer struct {
	logger *zap.SugaredLogger
}

func NewCartServer(logger *zap.SugaredLogger) *CartServer {
	return &CartServer{logger: logger}
}

// storeFor 按登录态选购物车后端
// 匿名用户第二个返回值非nil，改完购物车要调writeCookie把快照写回去
func (s *CartServer) storeFor(c *gin.Context) (carts.Store, *carts.CookieStore) {
	if userID, ok := currentUser(c); ok {
		return carts.NewRedisStore(global.Redis, userID, s.logger), nil
	}
	raw, _ := c.Cookie(carts.CookieName)
	cookieStore := carts.NewCookieStore(raw, s.logger)
	return cookieStore, cookieStore
}

func (s *CartServer) writeCookie(c *gin.Context, cookieStore *carts.CookieStore) {
	encoded, err := cookieStore.Encode()
	if err != nil {
		s.logger.Errorf("购物车cookie编码失败: %v", err)
		return
	}
	c.SetCookie(carts.CookieName, encoded, cartCookieMaxAge, "/", "", false, true)
}

func (s *CartServer) skuExists(c *gin.Context, skuID int32) (*model.SKU, bool) {
	var sku model.SKU
	if result := global.DB.First(&sku, skuID); result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"code":   retcode.NoDataErr,
			"errmsg": "商品不存在",
		})
		return nil, false
	}
	return &sku, true
}

// List 购物车页面，把快照和sku表join出完整的商品信息
func (s *CartServer) List(c *gin.Context) {
	store, _ := s.storeFor(c)
	snapshot, err := store.Get(c.Request.Context())
	if err != nil {
		s.logger.Errorf("读取购物车失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "购物车读取失败",
		})
		return
	}

	cartSkus := []gin.H{}
	if len(snapshot) > 0 {
		skuIDs := make([]int32, 0, len(snapshot))
		for skuID := range snapshot {
			skuIDs = append(skuIDs, skuID)
		}

		var skus []model.SKU
		if result := global.DB.Where("id in ?", skuIDs).Find(&skus); result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":   retcode.DBErr,
				"errmsg": "商品查询失败",
			})
			return
		}
		// 购物车里可能有已经下架删除的sku，join不到的直接不展示
		for _, sku := range skus {
			line := snapshot[sku.ID]
			cartSkus = append(cartSkus, gin.H{
				"id":                sku.ID,
				"name":              sku.Name,
				"price":             sku.Price,
				"default_image_url": sku.DefaultImage,
				"count":             line.Count,
				"selected":          line.Selected,
				"amount":            sku.Price * float32(line.Count),
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      retcode.OK,
		"errmsg":    "ok",
		"cart_skus": cartSkus,
	})
}

// Simple 页面顶部的迷你购物车，只要数量不用join全部信息
func (s *CartServer) Simple(c *gin.Context) {
	store, _ := s.storeFor(c)
	snapshot, err := store.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "购物车读取失败",
		})
		return
	}

	var total int32
	cartSkus := []gin.H{}
	for skuID, line := range snapshot {
		total += line.Count
		cartSkus = append(cartSkus, gin.H{
			"id":    skuID,
			"count": line.Count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      retcode.OK,
		"errmsg":    "ok",
		"count":     total,
		"cart_skus": cartSkus,
	})
}

func (s *CartServer) Add(c *gin.Context) {
	form := forms.CartItemForm{}
	if err := c.ShouldBindJSON(&form); err != nil {
		HandleValidatorError(c, err)
		return
	}
	if _, ok := s.skuExists(c, form.SkuID); !ok {
		return
	}

	// 不传selected默认勾选，加购的商品多半是要买的
	selected := true
	if form.Selected != nil {
		selected = *form.Selected
	}

	store, cookieStore := s.storeFor(c)
	if err := store.AddLine(c.Request.Context(), form.SkuID, form.Count, selected); err != nil {
		s.logger.Errorf("加入购物车失败 sku=%d: %v", form.SkuID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "购物车保存失败",
		})
		return
	}
	if cookieStore != nil {
		s.writeCookie(c, cookieStore)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   retcode.OK,
		"errmsg": "添加成功",
		"count":  form.Count,
	})
}

// Update 数量和勾选状态都整体覆盖
func (s *CartServer) Update(c *gin.Context) {
	form := forms.CartItemForm{}
	if err := c.ShouldBindJSON(&form); err != nil {
		HandleValidatorError(c, err)
		return
	}
	if _, ok := s.skuExists(c, form.SkuID); !ok {
		return
	}

	selected := true
	if form.Selected != nil {
		selected = *form.Selected
	}

	store, cookieStore := s.storeFor(c)
	if err := store.SetLine(c.Request.Context(), form.SkuID, form.Count, selected); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "购物车保存失败",
		})
		return
	}
	if cookieStore != nil {
		s.writeCookie(c, cookieStore)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":     retcode.OK,
		"errmsg":   "修改成功",
		"count":    form.Count,
		"selected": selected,
	})
}

func (s *CartServer) Delete(c *gin.Context) {
	form := forms.CartDeleteForm{}
	if err := c.ShouldBindJSON(&form); err != nil {
		HandleValidatorError(c, err)
		return
	}

	// 删除不校验sku存在，已经下架的也要能从购物车里删掉
	store, cookieStore := s.storeFor(c)
	if err := store.RemoveLine(c.Request.Context(), form.SkuID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "购物车保存失败",
		})
		return
	}
	if cookieStore != nil {
		s.writeCookie(c, cookieStore)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   retcode.OK,
		"errmsg": "删除成功",
	})
}

func (s *CartServer) SelectAll(c *gin.Context) {
	form := forms.CartSelectAllForm{}
	if err := c.ShouldBindJSON(&form); err != nil {
		HandleValidatorError(c, err)
		return
	}

	store, cookieStore := s.storeFor(c)
	if err := store.SetAllSelected(c.Request.Context(), *form.Selected); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "购物车保存失败",
		})
		return
	}
	if cookieStore != nil {
		s.writeCookie(c, cookieStore)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   retcode.OK,
		"errmsg": "ok",
	})
}

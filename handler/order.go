package handler

import (
	"MuXiangMall/carts"
	"MuXiangMall/forms"
	"MuXiangMall/global"
	"MuXiangMall/model"
	"MuXiangMall/orders"
	"MuXiangMall/retcode"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderServer struct {
	logger *zap.SugaredLogger
}

func NewOrderServer(logger *zap.SugaredLogger) *OrderServer {
	return &OrderServer{logger: logger}
}

// Settlement 结算页，挂在JSONAuth后面，进来一定是登录用户
func (s *OrderServer) Settlement(c *gin.Context) {
	userID, _ := currentUser(c)
	store := carts.NewRedisStore(global.Redis, userID, s.logger)

	view, err := orders.Settle(c.Request.Context(), global.DB, store, userID)
	if err != nil {
		s.logger.Errorf("结算页查询失败 user=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "结算信息查询失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    retcode.OK,
		"errmsg":  "ok",
		"context": view,
	})
}

func (s *OrderServer) Commit(c *gin.Context) {
	form := forms.OrderCommitForm{}
	if err := c.ShouldBindJSON(&form); err != nil {
		HandleValidatorError(c, err)
		return
	}

	userID, _ := currentUser(c)
	store := carts.NewRedisStore(global.Redis, userID, s.logger)
	committer := orders.NewCommitter(global.DB, store, global.MqProducer, s.logger)

	order, err := committer.Commit(c.Request.Context(), userID, form.AddressID, form.PayMethod)
	if err != nil {
		s.commitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":     retcode.OK,
		"errmsg":   "下单成功",
		"order_id": order.OrderSn,
	})
}

// commitError 把订单提交的错误翻译成给前端的code
func (s *OrderServer) commitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orders.ErrStockShort):
		c.JSON(http.StatusConflict, gin.H{
			"code":   retcode.StockErr,
			"errmsg": "库存不足",
		})
	case errors.Is(err, orders.ErrCasExhausted):
		// 热点商品竞争太凶，让用户稍后重试
		c.JSON(http.StatusConflict, gin.H{
			"code":   retcode.StockErr,
			"errmsg": "下单的人太多了，请稍后重试",
		})
	case errors.Is(err, orders.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   retcode.ParamErr,
			"errmsg": "没有勾选要结算的商品",
		})
	case errors.Is(err, orders.ErrNoSuchAddress):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   retcode.ParamErr,
			"errmsg": "收货地址不存在",
		})
	case errors.Is(err, orders.ErrNoSuchSku):
		c.JSON(http.StatusNotFound, gin.H{
			"code":   retcode.NoDataErr,
			"errmsg": "商品不存在",
		})
	default:
		s.logger.Errorf("提交订单失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "下单失败",
		})
	}
}

// List 我的订单，按下单时间倒序分页
func (s *OrderServer) List(c *gin.Context) {
	userID, _ := currentUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	var total int64
	global.DB.Model(&model.OrderInfo{}).Where(&model.OrderInfo{User: userID}).Count(&total)

	var orderList []model.OrderInfo
	if result := global.DB.Scopes(model.Paginate(page, pageSize)).
		Where(&model.OrderInfo{User: userID}).
		Order("add_time desc").
		Find(&orderList); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "订单查询失败",
		})
		return
	}

	data := make([]gin.H, 0, len(orderList))
	for _, order := range orderList {
		data = append(data, gin.H{
			"order_sn":     order.OrderSn,
			"status":       order.Status,
			"pay_method":   order.PayMethod,
			"total_count":  order.TotalCount,
			"total_amount": order.OrderMount,
			"freight":      order.Freight,
			"add_time":     order.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   retcode.OK,
		"errmsg": "ok",
		"total":  total,
		"data":   data,
	})
}

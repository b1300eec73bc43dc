package initialize

import (
	"MuXiangMall/handler"
	"MuXiangMall/middlewares"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Routers() *gin.Engine {
	router := gin.Default()

	// consul的健康检查，注册在中间件之前，不走会话和链路追踪
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"code":    http.StatusOK,
			"success": true,
		})
	})

	router.Use(middlewares.Trace(), middlewares.Session())

	userServer := handler.NewUserServer(zap.S())
	cartServer := handler.NewCartServer(zap.S())
	orderServer := handler.NewOrderServer(zap.S())
	goodsServer := handler.NewGoodsServer(zap.S())

	v1 := router.Group("/v1")
	{
		userGroup := v1.Group("/user")
		{
			userGroup.POST("/register", userServer.Register)
			userGroup.POST("/login", userServer.Login)
			userGroup.POST("/logout", userServer.Logout)
		}

		// 购物车不要求登录，匿名用户走cookie购物车
		cartGroup := v1.Group("/carts")
		{
			cartGroup.GET("", cartServer.List)
			cartGroup.GET("/simple", cartServer.Simple)
			cartGroup.POST("", cartServer.Add)
			cartGroup.PUT("", cartServer.Update)
			cartGroup.DELETE("", cartServer.Delete)
			cartGroup.PUT("/selection", cartServer.SelectAll)
		}

		// 结算和下单必须登录
		orderGroup := v1.Group("/orders", middlewares.JSONAuth())
		{
			orderGroup.GET("/settlement", orderServer.Settlement)
			orderGroup.POST("", orderServer.Commit)
			orderGroup.GET("", orderServer.List)
		}

		goodsGroup := v1.Group("/goods")
		{
			goodsGroup.GET("", goodsServer.List)
			goodsGroup.GET("/search", goodsServer.Search)
			goodsGroup.GET("/:id", goodsServer.Detail)
		}
	}

	return router
}

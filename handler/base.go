package handler

import (
	"MuXiangMall/middlewares"
	"MuXiangMall/retcode"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// HandleValidatorError 表单没过校验的统一出口
func HandleValidatorError(c *gin.Context, err error) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   retcode.NecessaryParamErr,
			"errmsg": errs.Error(),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"code":   retcode.ParamErr,
		"errmsg": "参数格式不对",
	})
}

// currentUser 取Session中间件放进上下文的用户id
func currentUser(c *gin.Context) (int32, bool) {
	value, ok := c.Get(middlewares.CtxUserID)
	if !ok {
		return 0, false
	}
	userID, ok := value.(int32)
	return userID, ok
}

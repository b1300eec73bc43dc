package middlewares

import (
	"MuXiangMall/global"
	"MuXiangMall/retcode"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 放进gin上下文里的key
const CtxUserID = "userId"

// 会话cookie的名字
const SessionCookie = "session_id"

// SessionKey 会话在redis里的key
func SessionKey(token string) string {
	return "session_" + token
}

// Session 尽力解析会话，解析出来就把用户id放进上下文
// 解析不出来不拦截，匿名用户照样能逛，要不要登录由JSONAuth说了算
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		value, err := global.Redis.Get(c.Request.Context(), SessionKey(token)).Result()
		if err != nil {
			// 会话过期或者redis出问题，都当匿名处理
			c.Next()
			return
		}
		userID, err := strconv.Atoi(value)
		if err != nil {
			c.Next()
			return
		}

		c.Set(CtxUserID, int32(userID))
		c.Next()
	}
}

// JSONAuth 必须登录的接口挂这个，没登录直接401返回json
func JSONAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(CtxUserID); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":   retcode.SessionErr,
				"errmsg": "用户未登录",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

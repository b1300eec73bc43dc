package handler

import (
	"MuXiangMall/carts"
	"MuXiangMall/forms"
	"MuXiangMall/global"
	"MuXiangMall/middlewares"
	"MuXiangMall/model"
	"MuXiangMall/retcode"
	"crypto/sha512"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/anaskhan96/go-password-encoder"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 会话默认14天，配置里没写session_expire就用这个
const defaultSessionExpire = 14 * 24 * 3600

var mobileRegexp = regexp.MustCompile(`^1[3-9]\d{9}$`)

type UserServer struct {
	logger *zap.SugaredLogger
}

func NewUserServer(logger *zap.SugaredLogger) *UserServer {
	return &UserServer{logger: logger}
}

func passwordOptions() *password.Options {
	return &password.Options{SaltLen: 16, Iterations: 100, KeyLen: 32, HashFunction: sha512.New}
}

func (s *UserServer) Register(c *gin.Context) {
	form := forms.RegisterForm{}
	if err := c.ShouldBindJSON(&form); err != nil {
		HandleValidatorError(c, err)
		return
	}
	if !mobileRegexp.MatchString(form.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   retcode.ParamErr,
			"errmsg": "手机号格式不对",
		})
		return
	}

	var exists model.User
	if result := global.DB.Where("user_name = ? or mobile = ?", form.UserName, form.Mobile).
		First(&exists); result.RowsAffected > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   retcode.ParamErr,
			"errmsg": "用户名或手机号已经注册过了",
		})
		return
	}

	salt, encoded := password.Encode(form.Password, passwordOptions())
	user := model.User{
		Mobile:   form.Mobile,
		UserName: form.UserName,
		NickName: form.UserName,
		Password: fmt.Sprintf("$pbkdf2-sha512$%s$%s", salt, encoded),
	}
	if result := global.DB.Create(&user); result.Error != nil {
		s.logger.Errorf("创建用户失败: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":   retcode.DBErr,
			"errmsg": "注册失败",
		})
		return
	}

	// 注册完直接算登录，顺手把匿名购物车合并进来
	s.createSession(c, user.ID)
	s.mergeCarts(c, user.ID)

	c.JSON(http.StatusOK, gin.H{
		"code":   retcode.OK,
		"errmsg": "注册成功",
		"id":     user.ID,
	})
}

func (s *UserServer) Login(c *gin.Context) {
	form := forms.LoginForm{}
	if err := c.ShouldBindJSON(&form); err != nil {
		HandleValidatorError(c, err)
		return
	}

	// 用户不存在和密码错误给同一个提示，不给撞库的人递消息
	var user model.User
	if result := global.DB.Where(&model.User{UserName: form.UserName}).First(&user); result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   retcode.PwdErr,
			"errmsg": "用户名或密码错误",
		})
		return
	}

	passwordInfo := strings.Split(user.Password, "$")
	if len(passwordInfo) != 4 ||
		!password.Verify(form.Password, passwordInfo[2], passwordInfo[3], passwordOptions()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   retcode.PwdErr,
			"errmsg": "用户名或密码错误",
		})
		return
	}

	s.createSession(c, user.ID)
	s.mergeCarts(c, user.ID)

	c.JSON(http.StatusOK, gin.H{
		"code":   retcode.OK,
		"errmsg": "登录成功",
		"id":     user.ID,
		"name":   user.NickName,
	})
}

func (s *UserServer) Logout(c *gin.Context) {
	if token, err := c.Cookie(middlewares.SessionCookie); err == nil && token != "" {
		if err := global.Redis.Del(c.Request.Context(), middlewares.SessionKey(token)).Err(); err != nil {
			s.logger.Warnf("删除会话失败: %v", err)
		}
	}
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"code":   retcode.OK,
		"errmsg": "ok",
	})
}

func (s *UserServer) createSession(c *gin.Context, userID int32) {
	expire := global.ServerConfig.RedisInfo.SessionExpire
	if expire <= 0 {
		expire = defaultSessionExpire
	}

	token := uuid.NewString()
	if err := global.Redis.Set(c.Request.Context(), middlewares.SessionKey(token),
		strconv.Itoa(int(userID)), time.Duration(expire)*time.Second).Err(); err != nil {
		s.logger.Errorf("写入会话失败 user=%d: %v", userID, err)
		return
	}
	c.SetCookie(middlewares.SessionCookie, token, expire, "/", "", false, true)
}

// mergeCarts 把cookie购物车合并进redis购物车
// 同一个用户在两个端同时登录会并发合并，加分布式锁保证hincrby不会双算
// 合并失败只记日志，不能因为购物车合不进来就不让人登录
func (s *UserServer) mergeCarts(c *gin.Context, userID int32) {
	raw, err := c.Cookie(carts.CookieName)
	if err != nil || raw == "" {
		return
	}

	cookieStore := carts.NewCookieStore(raw, s.logger)
	snapshot, _ := cookieStore.Get(c.Request.Context())
	if len(snapshot) > 0 {
		mutex := global.RS.NewMutex(fmt.Sprintf("cart_merge_%d", userID))
		if err := mutex.Lock(); err != nil {
			s.logger.Warnf("购物车合并拿锁失败 user=%d: %v", userID, err)
			return
		}
		defer mutex.Unlock()

		redisStore := carts.NewRedisStore(global.Redis, userID, s.logger)
		if err := carts.Merge(c.Request.Context(), snapshot, redisStore); err != nil {
			s.logger.Errorf("购物车合并失败 user=%d: %v", userID, err)
			return
		}
	}

	// 合并完把匿名购物车清掉，不然退出再登录会又合并一次
	c.SetCookie(carts.CookieName, "", -1, "/", "", false, true)
}

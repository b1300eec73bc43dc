package initialize

import (
	"MuXiangMall/global"
	"fmt"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
)

// redis承担两件事：已登录用户的购物车存储、会话存储
// redsync的分布式锁用在登录合并购物车那一步
func InitRedis() {
	c := global.ServerConfig.RedisInfo
	global.Redis = goredislib.NewClient(&goredislib.Options{
		Addr: fmt.Sprintf("%s:%d", c.Host, c.Port),
		DB:   c.DB,
	})

	pool := goredis.NewPool(global.Redis)
	global.RS = redsync.New(pool)
}

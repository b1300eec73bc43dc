package global

import (
	"MuXiangMall/config"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/go-redsync/redsync/v4"
	"github.com/olivere/elastic/v7"
	goredislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	DB *gorm.DB

	Redis *goredislib.Client
	RS    *redsync.Redsync

	EsClient *elastic.Client

	MqProducer rocketmq.Producer

	ServerConfig *config.ServerConfig = new(config.ServerConfig)

	NacosConfig *config.NacosConfig = &config.NacosConfig{}
)

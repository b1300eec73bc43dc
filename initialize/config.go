package initialize

import (
	"MuXiangMall/global"
	"encoding/json"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/nacos-group/nacos-sdk-go/clients"
	"github.com/nacos-group/nacos-sdk-go/common/constant"
	"github.com/nacos-group/nacos-sdk-go/vo"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func GetEnvInfo(env string) bool {
	viper.AutomaticEnv()
	return viper.GetBool(env)
}

func InitConfig() {
	debug := GetEnvInfo("MUXIANG_DEBUG")
	configFilePrefix := "config"
	configFileName := fmt.Sprintf("%s-pro.yaml", configFilePrefix)
	if debug {
		configFileName = fmt.Sprintf("%s-debug.yaml", configFilePrefix)
	}

	v := viper.New()
	v.SetConfigFile(configFileName)
	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}

	// debug模式下配置都在本地yaml里，改了文件直接热加载
	if debug {
		if err := v.Unmarshal(global.ServerConfig); err != nil {
			panic(err)
		}
		zap.S().Infof("配置信息: %v", global.ServerConfig)

		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			zap.S().Infof("配置文件发生变化: %s", e.Name)
			_ = v.ReadInConfig()
			if err := v.Unmarshal(global.ServerConfig); err != nil {
				zap.S().Errorf("重新加载配置失败: %s", err.Error())
			}
		})
		return
	}

	// 线上模式，本地yaml只是nacos的连接信息
	if err := v.Unmarshal(global.NacosConfig); err != nil {
		panic(err)
	}
	zap.S().Infof("nacos信息: %v", global.NacosConfig)

	// sc是nacos服务的ip和port
	sc := []constant.ServerConfig{
		{
			IpAddr: global.NacosConfig.Host,
			Port:   global.NacosConfig.Port,
		},
	}

	// cc是本地服务作为nacos客户端的配置
	cc := constant.ClientConfig{
		NamespaceId:         global.NacosConfig.Namespace,
		TimeoutMs:           5000,
		NotLoadCacheAtStart: true,
		// nacos会在本地放一些拉取下来的配置缓存，以及放一些日志
		LogDir:   "tmp/nacos/log",
		CacheDir: "tmp/nacos/cache",
		LogLevel: "debug",
	}

	configClient, err := clients.CreateConfigClient(map[string]interface{}{
		"serverConfigs": sc,
		"clientConfig":  cc,
	})
	if err != nil {
		panic(err)
	}

	// 通过nacos拿到配置，配置是json格式，需要解析到global的变量中
	content, err := configClient.GetConfig(vo.ConfigParam{
		DataId: global.NacosConfig.DataId,
		Group:  global.NacosConfig.Group})
	if err != nil {
		panic(err)
	}
	if err = json.Unmarshal([]byte(content), global.ServerConfig); err != nil {
		zap.S().Fatalf("读取nacos配置失败： %s", err.Error())
	}
	zap.S().Infof("配置信息: %v", global.ServerConfig)
}

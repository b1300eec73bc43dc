package main

import (
	"MuXiangMall/global"
	"MuXiangMall/initialize"
	"MuXiangMall/utils"
	"MuXiangMall/utils/register/consul"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	ip := flag.String("ip", "0.0.0.0", "ip地址")
	port := flag.Int("port", 0, "端口号")
	flag.Parse()

	initialize.InitLogger()
	initialize.InitConfig()
	initialize.InitDB()
	initialize.InitRedis()
	initialize.InitEs()
	initialize.InitMq()
	closer := initialize.InitTracer()
	defer closer.Close()

	// 命令行指定的端口优先，其次配置文件，都没有就随机拿一个空闲端口
	if *port == 0 {
		*port = global.ServerConfig.Port
	}
	if *port == 0 {
		freePort, err := utils.GetFreePort()
		if err != nil {
			zap.S().Panicf("获取空闲端口失败: %s", err.Error())
		}
		*port = freePort
	}

	router := initialize.Routers()

	registerClient := consul.NewRegistryClient(
		global.ServerConfig.ConsulInfo.Host,
		global.ServerConfig.ConsulInfo.Port,
	)
	serviceId := uuid.NewString()
	if err := registerClient.Register(global.ServerConfig.Host, *port,
		global.ServerConfig.Name, global.ServerConfig.Tags, serviceId); err != nil {
		zap.S().Errorf("服务注册失败: %s", err.Error())
	}

	go func() {
		zap.S().Infof("启动服务器, 端口: %d", *port)
		if err := router.Run(fmt.Sprintf("%s:%d", *ip, *port)); err != nil {
			zap.S().Panicf("启动失败: %s", err.Error())
		}
	}()

	// 接收终止信号，退出前把consul里的注册注销掉
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	if err := registerClient.DeRegister(serviceId); err != nil {
		zap.S().Info("注销失败:", err.Error())
	} else {
		zap.S().Info("注销成功")
	}
}

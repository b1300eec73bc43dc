package initialize

import "go.uber.org/zap"

// 初始化zap并替换全局logger，业务组件用的logger从这里派生后注入
func InitLogger() {
	var logger *zap.Logger
	var err error
	if GetEnvInfo("MUXIANG_DEBUG") {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

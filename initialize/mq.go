package initialize

import (
	"MuXiangMall/global"
	"MuXiangMall/orders"
	"fmt"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"go.uber.org/zap"
)

// 初始化rocketmq：一个producer发订单超时的延时消息，一个consumer消费它
// 不要在一个进程中使用多个producer
func InitMq() {
	c := global.ServerConfig.RocketmqInfo
	nameServer := []string{fmt.Sprintf("%s:%d", c.Host, c.Port)}

	p, err := rocketmq.NewProducer(
		producer.WithNameServer(nameServer),
		producer.WithGroupName("order_timeout_send"),
	)
	if err != nil {
		panic("生成producer失败:" + err.Error())
	}
	if err = p.Start(); err != nil {
		panic("启动producer失败:" + err.Error())
	}
	global.MqProducer = p

	pc, err := rocketmq.NewPushConsumer(
		consumer.WithNameServer(nameServer),
		consumer.WithGroupName("order_timeout_check"),
	)
	if err != nil {
		panic("生成consumer失败:" + err.Error())
	}
	if err = pc.Subscribe(orders.TopicOrderTimeout, consumer.MessageSelector{},
		orders.OrderTimeout(global.DB, zap.S())); err != nil {
		panic("订阅超时消息失败:" + err.Error())
	}
	if err = pc.Start(); err != nil {
		panic("启动consumer失败:" + err.Error())
	}
}

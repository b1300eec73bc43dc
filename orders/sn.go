package orders

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// 生成订单号
func GenerateOrderSn(userID int32) string {
	//订单号的生成规则
	/*
		年月日时分秒+用户id+2位随机数
	*/
	now := time.Now()
	rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	orderSn := fmt.Sprintf("%s%09d%d",
		now.Format("20060102150405"), userID, rand.Intn(90)+10,
	)
	return orderSn
}

package initialize

import (
	"MuXiangMall/global"
	"MuXiangMall/model"
	"context"
	"fmt"

	"github.com/olivere/elastic/v7"
)

func InitEs() {
	c := global.ServerConfig.EsInfo
	host := fmt.Sprintf("http://%s:%d", c.Host, c.Port)

	var err error
	global.EsClient, err = elastic.NewClient(elastic.SetURL(host), elastic.SetSniff(false))
	if err != nil {
		panic(err)
	}

	// 索引不存在就按mapping新建一个
	exists, err := global.EsClient.IndexExists(model.EsGoods{}.GetIndexName()).Do(context.Background())
	if err != nil {
		panic(err)
	}
	if !exists {
		_, err = global.EsClient.CreateIndex(model.EsGoods{}.GetIndexName()).
			BodyString(model.EsGoods{}.GetMapping()).Do(context.Background())
		if err != nil {
			panic(err)
		}
	}
}

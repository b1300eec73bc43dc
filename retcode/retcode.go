// retcode 统一响应体里的code取值，前端根据code做提示
// 响应格式固定是 {code, errmsg, ...payload}
package retcode

const (
	OK = 0

	ThrottlingErr     = 4002 // 操作太频繁
	NecessaryParamErr = 4003 // 缺少必传参数
	ParamErr          = 4004 // 参数类型或者取值不对
	PwdErr            = 4005 // 用户名或者密码错误

	SessionErr = 4101 // 未登录或者会话过期

	DBErr     = 5000 // 数据库出错，对外统一说法
	NoDataErr = 5001 // 查无此数据
	StockErr  = 5003 // 库存不足
)

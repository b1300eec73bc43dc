package model

// 用户表，注册只需要用户名、手机号和密码
// 密码存加密后的格式: $pbkdf2-sha512$salt$encoded
type User struct {
	BaseModel
	Mobile   string `gorm:"index:idx_mobile;unique;type:varchar(11);not null"`
	UserName string `gorm:"index:idx_user_name;unique;type:varchar(20);not null"`
	Password string `gorm:"type:varchar(200);not null"`
	NickName string `gorm:"type:varchar(20)"`
}

// 收货地址
// 地址的增删改不在这个服务里做，结算页只读
type Address struct {
	BaseModel
	User        int32  `gorm:"type:int;index"`
	Province    string `gorm:"type:varchar(10);not null"`
	City        string `gorm:"type:varchar(10);not null"`
	District    string `gorm:"type:varchar(20);not null"`
	Address     string `gorm:"type:varchar(100);not null"`
	SignerName  string `gorm:"type:varchar(20);not null"`
	SignerPhone string `gorm:"type:varchar(11);not null"`
}

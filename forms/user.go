package forms

type RegisterForm struct {
	UserName string `json:"username" binding:"required,min=5,max=20"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	Mobile   string `json:"mobile" binding:"required,len=11"`
}

type LoginForm struct {
	UserName string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

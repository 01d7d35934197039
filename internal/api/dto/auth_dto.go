package dto

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginDTO 登录
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshDTO 刷新访问 Token
type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenPairDTO 登录 / 刷新返回的 Token 对
type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
}

package auth

// RegisterRequest represents the input for user registration.
type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Username string `json:"username" form:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents the input for user login. Login accepts either an
// email address or a username.
type LoginRequest struct {
	Login    string `json:"login" form:"login" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

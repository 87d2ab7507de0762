package dto

// GoogleLoginRequest cuerpo de POST /auth/google-login.
type GoogleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginResponse token de sesión propio + usuario resuelto.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

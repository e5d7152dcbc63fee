package dto

// TokenRequest credenciales del administrador.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse token Bearer emitido.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"` // segundos
	Role      string `json:"role"`
}

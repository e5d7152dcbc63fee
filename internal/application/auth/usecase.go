package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/pkg/jwt"
)

// Roles emitidos en el token.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials un usuario configurado con su hash bcrypt y rol.
type Credentials struct {
	Username     string
	PasswordHash string
	Role         string
}

// AuthUseCase emite tokens para los usuarios configurados (no hay tabla de usuarios).
type AuthUseCase struct {
	users  []Credentials
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso. Los usuarios sin hash se ignoran.
func NewAuthUseCase(jwtCfg JWTConfig, users ...Credentials) *AuthUseCase {
	valid := make([]Credentials, 0, len(users))
	for _, u := range users {
		if u.Username != "" && u.PasswordHash != "" {
			valid = append(valid, u)
		}
	}
	return &AuthUseCase{users: valid, jwtCfg: jwtCfg}
}

// Login verifica usuario/password y devuelve un token Bearer.
func (uc *AuthUseCase) Login(in dto.TokenRequest) (*dto.TokenResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	var match *Credentials
	for i := range uc.users {
		if subtle.ConstantTimeCompare([]byte(uc.users[i].Username), []byte(in.Username)) == 1 {
			match = &uc.users[i]
			break
		}
	}
	if match == nil {
		// Comparar igual contra un hash ficticio para no revelar qué usuarios existen.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(match.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, match.Username, match.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Role:      match.Role,
	}, nil
}

// Hash bcrypt válido (coste 10) sin contraseña asociada.
const dummyHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8.6Jd7yG8K1D3v8yJ0HGx5b4yZt7eK"

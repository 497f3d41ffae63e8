package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"event-manager-api/internal/domain/common/errorz"
	"event-manager-api/internal/domain/entity"
)

// Claims is the decoded payload of an access token.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

type authUserStorage interface {
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

type tokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type AuthConfig struct {
	MasterUsername string
	MasterPassword string
	JWTSecret      string
	TokenTTL       time.Duration
}

type AuthService struct {
	userStorage authUserStorage
	tokens      tokenRevoker
	config      AuthConfig
}

func NewAuthService(userStorage authUserStorage, tokens tokenRevoker, config AuthConfig) *AuthService {
	return &AuthService{
		userStorage: userStorage,
		tokens:      tokens,
		config:      config,
	}
}

// Login verifies credentials and issues a bearer token. The master admin
// logs in against the configured credentials without touching storage and
// receives an admin-role token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == s.config.MasterUsername && password == s.config.MasterPassword {
		return s.issueToken(s.config.MasterUsername, entity.Admin)
	}

	user, err := s.userStorage.GetByUsername(ctx, username)
	if err != nil {
		return "", errorz.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", errorz.ErrInvalidCredentials
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errorz.ErrInvalidCredentials
	}

	return s.issueToken(user.Username, user.Role)
}

// VerifyToken decodes and validates a bearer token. Expired, malformed,
// badly signed and revoked tokens all collapse to ErrInvalidToken.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errorz.ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, errorz.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errorz.ErrInvalidToken
	}
	subject, _ := mapClaims["sub"].(string)
	role, _ := mapClaims["role"].(string)
	exp, _ := mapClaims["exp"].(float64)
	if subject == "" || role == "" {
		return Claims{}, errorz.ErrInvalidToken
	}

	revoked, err := s.tokens.IsRevoked(ctx, token)
	if err != nil {
		return Claims{}, err
	}
	if revoked {
		return Claims{}, errorz.ErrInvalidToken
	}

	return Claims{
		Subject:   subject,
		Role:      role,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

// Logout marks the token revoked until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.VerifyToken(ctx, token)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.tokens.Revoke(ctx, token, ttl)
}

func (s *AuthService) issueToken(username string, role entity.Role) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": string(role),
		"exp":  time.Now().Add(s.config.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(s.config.JWTSecret))
}

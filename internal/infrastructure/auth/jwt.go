package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
)

// Issuer is stamped into every token and required on verification.
const Issuer = "tiffin"

type TokenType string

const TokenTypeAccess TokenType = "access"

var (
	ErrWrongTokenType = errors.New("auth: not an access token")
	ErrNoSubject      = errors.New("auth: token carries no user")
)

// Claims identify the caller. Accounts live in the identity service that
// issues these tokens; this service only verifies them.
type Claims struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    time.Duration(accessExpMinutes) * time.Minute,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(5*time.Second),
		),
	}
}

// Generate signs an HS256 access token. Used by tests and the token command.
func (s *JWTService) Generate(userID uint, email, role string) (string, error) {
	if userID == 0 {
		return "", ErrNoSubject
	}
	now := biztime.NowUTC()
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	if claims.UserID == 0 {
		return nil, ErrNoSubject
	}
	return claims, nil
}

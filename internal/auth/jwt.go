package auth

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidJWTToken = errors.New("JWT token is invalid")
	ErrExpiredJWTToken = errors.New("JWT token is expired")
)

const defaultJWTDuration = 2 * time.Hour

type JWTManagerInterface interface {
	GenerateAccessJWT(userID int, role string, duration time.Duration) (string, error)
	ValidateAccessToken(tokenString string) (int, string, error)
}

type AccessTokenCustomClaims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret string
}

func NewJWTManager() JWTManagerInterface {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET is not set in .env file")
	}

	return &JWTManager{
		secret: jwtSecret,
	}
}

func (j *JWTManager) GenerateAccessJWT(userID int, role string, duration time.Duration) (string, error) {
	claims := &AccessTokenCustomClaims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTManager) ValidateAccessToken(tokenString string) (int, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessTokenCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.Errors&(jwt.ValidationErrorExpired) != 0 {
				return 0, "", ErrExpiredJWTToken
			}
		}
		return 0, "", err
	}

	claims, ok := token.Claims.(*AccessTokenCustomClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, "", ErrInvalidJWTToken
	}

	return claims.UserID, claims.Role, nil
}

package auth

import (
	"errors"
	"net/http"

	"github.com/sebuszqo/HouseholdBudget/internal/user"
)

var ErrInternalError = errors.New("internal Server Error")

type Service interface {
	Login(emailOrMatricula, senha string) (string, *user.Usuario, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
	RequireAdmin(next http.HandlerFunc) http.HandlerFunc
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Login authenticates against the user store and issues a signed access
// token carrying the user id and role.
func (s *service) Login(emailOrMatricula, senha string) (string, *user.Usuario, error) {
	usuario, err := s.userService.Authenticate(emailOrMatricula, senha)
	if err != nil {
		return "", nil, err
	}

	token, err := s.jwtManager.GenerateAccessJWT(usuario.ID, usuario.Tipo, defaultJWTDuration)
	if err != nil {
		return "", nil, ErrInternalError
	}

	return token, usuario, nil
}

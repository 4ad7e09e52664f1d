package service

import (
	"time"

	"github.com/rs/zerolog"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/apperror"
	"go-stockledger/pkg/config"
	"go-stockledger/pkg/jwt"
	"go-stockledger/pkg/security"
	"go-stockledger/pkg/validator"
)

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse carries the session token pair alongside the user.
type LoginResponse struct {
	User         model.UserResponse `json:"user"`
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
}

type AuthService interface {
	Register(req *RegisterRequest) (*model.User, error)
	Login(email, password string) (*LoginResponse, error)
	Refresh(refreshToken string) (string, error)
	Logout(refreshToken string) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	tokens    *jwt.TokenManager
	pwCfg     config.PasswordConfig
	log       zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, tokens *jwt.TokenManager, pwCfg config.PasswordConfig, log zerolog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		pwCfg:     pwCfg,
		log:       log,
	}
}

func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if fields := validator.ValidateStruct(req); len(fields) > 0 {
		return nil, apperror.Validation(fields...)
	}

	if existing, err := s.userRepo.FindByUsername(req.Username); err == nil && existing != nil {
		return nil, apperror.New(apperror.CodeConflict, "username is already taken")
	}
	if existing, err := s.userRepo.FindByEmail(req.Email); err == nil && existing != nil {
		return nil, apperror.New(apperror.CodeConflict, "email is already registered")
	}

	hash, err := security.HashPassword(req.Password, s.pwCfg)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not hash password")
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		s.log.Error().Err(err).Str("username", req.Username).Msg("register failed")
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not create user")
	}

	s.log.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, apperror.New(apperror.CodeAuth, "invalid email or password")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, apperror.New(apperror.CodeAuth, "invalid email or password")
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not generate token")
	}

	refresh, expiresAt, err := s.tokens.GenerateRefreshToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not generate token")
	}

	if err := s.tokenRepo.Create(&model.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not persist refresh token")
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return &LoginResponse{
		User:         user.ToResponse(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh exchanges a valid persisted refresh token for a new access token.
func (s *authService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperror.New(apperror.CodeAuth, "invalid or expired refresh token")
	}

	stored, err := s.tokenRepo.FindByToken(refreshToken)
	if err != nil {
		return "", apperror.New(apperror.CodeAuth, "refresh token is not recognized")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokenRepo.DeleteByToken(refreshToken)
		return "", apperror.New(apperror.CodeAuth, "invalid or expired refresh token")
	}

	access, err := s.tokens.GenerateAccessToken(claims.UserID, claims.Username, claims.Email)
	if err != nil {
		return "", apperror.Wrap(apperror.CodeInternal, err, "could not generate token")
	}
	return access, nil
}

func (s *authService) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokenRepo.DeleteByToken(refreshToken)
}

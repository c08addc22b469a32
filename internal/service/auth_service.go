package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/dto"
	"github.com/GabrielHenriqueHE/sinapse/internal/repository"
	"github.com/GabrielHenriqueHE/sinapse/internal/response"
)

// TokenBlacklist revokes issued tokens until they would expire anyway
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo  repository.UserRepository
	blacklist TokenBlacklist
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	blacklist TokenBlacklist,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		blacklist: blacklist,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates an account and returns a freshly issued token
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao verificar o email.", err.Error())
	}
	if exists {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Este email já está em uso.", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao processar a senha.", err.Error())
	}

	user := &domain.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.Role(req.Role),
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao criar a conta.", err.Error())
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	token, err := s.issueToken(user)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao gerar o token de acesso.", err.Error())
	}

	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Login authenticates by email and password and returns a token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Email ou senha inválidos.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao autenticar.", err.Error())
	}

	if !user.IsActive {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Esta conta está desativada.", "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Email ou senha inválidos.", "")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao gerar o token de acesso.", err.Error())
	}

	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Logout revokes the presented token for the remainder of its lifetime
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.Add(ctx, token, s.tokenTTL); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Erro ao encerrar a sessão.", err.Error())
	}
	return nil
}

// GetUser returns the profile of the authenticated user
func (s *authServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Usuário não encontrado.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao buscar o usuário.", err.Error())
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// issueToken signs a JWT carrying the user's identity and role
func (s *authServiceImpl) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

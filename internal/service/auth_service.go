package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitfantasy/weldshop/internal/config"
	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/middleware"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials 账号或密码错误
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidRefreshToken refresh token 无效或已注销
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// AuthService 认证服务
type AuthService struct {
	users *repository.UserRepository
	rdb   *redis.Client
	cfg   *config.Config
}

// NewAuthService 创建认证服务
func NewAuthService(users *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{users: users, rdb: rdb, cfg: cfg}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenPair 登录结果
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         *entity.User `json:"user"`
}

// Login 校验密码并签发 token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != entity.UserStatusActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh 用 refresh token 换新 token 对
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if s.rdb == nil {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := s.rdb.Get(ctx, refreshKey(refreshToken)).Result()
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// 旧 token 作废，轮换新 token
	s.rdb.Del(ctx, refreshKey(refreshToken))
	return s.issueTokens(ctx, user)
}

// Logout 注销 refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if s.rdb == nil || refreshToken == "" {
		return nil
	}
	return s.rdb.Del(ctx, refreshKey(refreshToken)).Err()
}

// CurrentUser 按 ID 查询当前用户
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*TokenPair, error) {
	now := time.Now()
	expire := s.cfg.JWT.AccessTokenExpire

	claims := middleware.JWTClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWT.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			ID:        uuid.New().String(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("签发 access token 失败: %w", err)
	}

	refreshToken := uuid.New().String()
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, refreshKey(refreshToken), user.ID, s.cfg.JWT.RefreshTokenExpire).Err(); err != nil {
			return nil, fmt.Errorf("保存 refresh token 失败: %w", err)
		}
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(expire.Seconds()),
		User:         user,
	}, nil
}

func refreshKey(token string) string {
	return "auth:refresh:" + token
}

// HashPassword bcrypt 加密密码（建用户、seed 共用）
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

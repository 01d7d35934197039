package service

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/model"
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/redis"
	"Keystone/internal/pkg/security"
	"context"
	log "log/slog"
	"time"

	"Keystone/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.TokenPairDTO, error)
	Login(ctx context.Context, req *dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, req *dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, accessToken string) error
}

type authServiceImpl struct {
	userRepo repository.UserRepo
}

func NewAuthService(userRepo repository.UserRepo) AuthService {
	return &authServiceImpl{userRepo: userRepo}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.TokenPairDTO, error) {
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return issueTokenPair(user)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := security.CheckPasswordHash(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	return issueTokenPair(user)
}

func (s *authServiceImpl) Refresh(ctx context.Context, req *dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := security.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, ErrRefreshInvalid
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrRefreshInvalid
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrRefreshInvalid
	}
	return issueTokenPair(user)
}

// Logout 把访问令牌签名按剩余有效期拉黑，令牌自然过期后黑名单条目一并过期
func (s *authServiceImpl) Logout(ctx context.Context, accessToken string) error {
	claims, err := security.ValidateAccessToken(accessToken)
	if err != nil {
		// 过期或伪造的令牌无需拉黑
		return nil
	}

	signature, err := security.ExtractSignature(accessToken)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "1", ttl); err != nil {
		log.ErrorContext(ctx, "blacklist token failed", "err", err)
		return err
	}
	return nil
}

func issueTokenPair(user *model.User) (*dto.TokenPairDTO, error) {
	access, err := security.GenerateAccessToken(user.ID.Hex(), user.Username)
	if err != nil {
		return nil, err
	}
	refresh, err := security.GenerateRefreshToken(user.ID.Hex(), user.Username)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       user.ID.Hex(),
		Username:     user.Username,
	}, nil
}

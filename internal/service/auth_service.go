package service

import (
	"context"
	"errors"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/micropost/internal/model"
	"github.com/xxxsen/micropost/internal/pkg/email"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
	"github.com/xxxsen/micropost/internal/pkg/jwt"
	"github.com/xxxsen/micropost/internal/pkg/password"
	"github.com/xxxsen/micropost/internal/pkg/timeutil"
)

var burnPassword = password.Burn

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users UserStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.jwtTTL
}

// Register creates an account and returns it without the password hash.
func (s *AuthService) Register(ctx context.Context, addr, plainPassword string) (*model.User, error) {
	if !email.Valid(addr) {
		return nil, appErr.ErrInvalidEmail
	}
	if plainPassword == "" {
		return nil, appErr.ErrPasswordRequired
	}
	if _, err := s.users.GetByEmail(ctx, addr); err == nil {
		return nil, appErr.ErrUserExists
	} else if !errors.Is(err, appErr.ErrNotFound) {
		return nil, err
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        addr,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, appErr.ErrConflict) {
			return nil, appErr.ErrUserExists
		}
		return nil, err
	}
	logutil.GetLogger(ctx).Info("user registered", zap.String("user_id", user.ID))
	return user.Public(), nil
}

// Login returns the stored user. Unknown email and wrong password fail with
// the same error.
func (s *AuthService) Login(ctx context.Context, addr, plainPassword string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			burnPassword(plainPassword)
			return nil, appErr.ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Matches(user.PasswordHash, plainPassword) {
		return nil, appErr.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) IssueToken(user *model.User) (string, error) {
	return jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
}

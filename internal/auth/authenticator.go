package auth

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/micropost/internal/model"
	"github.com/xxxsen/micropost/internal/pkg/jwt"
)

type UserLookup interface {
	GetByID(ctx context.Context, userID string) (*model.User, error)
}

type Authenticator struct {
	users  UserLookup
	secret []byte
}

func NewAuthenticator(users UserLookup, secret []byte) *Authenticator {
	return &Authenticator{users: users, secret: secret}
}

// Resolve never fails: every rejected token resolves to Anonymous. The user
// store is consulted at most once, and only for a verified token that names
// a user.
func (a *Authenticator) Resolve(ctx context.Context, token string) Identity {
	if token == "" {
		return Anonymous()
	}
	logger := logutil.GetLogger(ctx)
	claims, err := jwt.ParseToken(token, a.secret)
	if err != nil {
		logger.Debug("auth token rejected", zap.Error(err))
		return Anonymous()
	}
	if claims.UserID == "" {
		logger.Debug("auth token has no user id")
		return Anonymous()
	}
	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil || user == nil {
		logger.Debug("auth token user lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return Anonymous()
	}
	return Identified(user)
}

package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/model"
	"go.uber.org/zap"
)

// Account runs the authentication and profile flows and keeps the session in step.
type Account struct {
	auth     AuthService
	profile  ProfileService
	sessions SessionStore
	logger   *zap.Logger
}

// NewAccount constructs the account flows.
func NewAccount(auth AuthService, profile ProfileService, sessions SessionStore, logger *zap.Logger) *Account {
	return &Account{auth: auth, profile: profile, sessions: sessions, logger: logger.Named("account")}
}

// Login authenticates and replaces the session.
func (a *Account) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, validation("auth.login", "email and password are required")
	}
	resp, err := a.auth.Login(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return model.User{}, err
	}
	return a.start(resp)
}

// Register creates an account with its first household and replaces the session.
func (a *Account) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return model.User{}, validation("auth.register", "username, email and password are required")
	}
	if req.HouseName == "" || req.City == "" {
		return model.User{}, validation("auth.register", "house name and city are required")
	}
	resp, err := a.auth.Register(ctx, req)
	if err != nil {
		return model.User{}, err
	}
	return a.start(resp)
}

func (a *Account) start(resp model.AuthResponse) (model.User, error) {
	sess := model.Session{User: resp.User, Token: resp.Token}
	if resp.ExpiresAt > 0 {
		sess.ExpiresAt = time.Unix(resp.ExpiresAt, 0)
	}
	if err := a.sessions.Replace(sess); err != nil {
		return model.User{}, fmt.Errorf("store session: %w", err)
	}
	a.logger.Info("signed in", zap.Uint("user_id", resp.User.ID), zap.String("role", string(resp.User.Role)))
	return resp.User, nil
}

// Logout revokes the token server-side when possible and always clears the local session.
func (a *Account) Logout(ctx context.Context) error {
	if _, ok := a.sessions.Current(); ok {
		if err := a.auth.Logout(ctx); err != nil {
			a.logger.Warn("server logout failed, clearing local session anyway", zap.Error(err))
		}
	}
	return a.sessions.Clear()
}

// Refresh exchanges the current token for a new one.
func (a *Account) Refresh(ctx context.Context) error {
	sess, ok := a.sessions.Current()
	if !ok {
		return validation("auth.refresh", "not signed in")
	}
	resp, err := a.auth.Refresh(ctx)
	if err != nil {
		return err
	}
	next := model.Session{User: sess.User, Token: resp.Token}
	if resp.ExpiresAt > 0 {
		next.ExpiresAt = time.Unix(resp.ExpiresAt, 0)
	}
	return a.sessions.Replace(next)
}

// Whoami returns the signed-in user as the server sees it and refreshes the stored identity.
func (a *Account) Whoami(ctx context.Context) (model.User, error) {
	u, err := a.profile.Profile(ctx)
	if err != nil {
		return model.User{}, err
	}
	if err := a.sessions.UpdateUser(u); err != nil {
		return model.User{}, fmt.Errorf("store session: %w", err)
	}
	return u, nil
}

// UpdateProfile saves profile changes and replaces the session identity, keeping the token.
func (a *Account) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (model.User, error) {
	u, err := a.profile.UpdateProfile(ctx, req)
	if err != nil {
		return model.User{}, err
	}
	if err := a.sessions.UpdateUser(u); err != nil {
		return model.User{}, fmt.Errorf("store session: %w", err)
	}
	return u, nil
}

// ChangePassword replaces the account password.
func (a *Account) ChangePassword(ctx context.Context, current, next string) error {
	if current == next && current != "" {
		return validation("user.change_password", "new password must differ from the current one")
	}
	return a.profile.ChangePassword(ctx, current, next)
}

// CurrentUser returns the signed-in user from the session.
func (a *Account) CurrentUser() (model.User, bool) {
	sess, ok := a.sessions.Current()
	return sess.User, ok
}

func validation(operation, msg string) error {
	return &apiclient.Error{Kind: apiclient.KindValidation, Operation: operation, Message: msg}
}

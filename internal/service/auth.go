package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/model"
)

// Auth talks to the authentication endpoints.
type Auth struct {
	api Requester
}

// NewAuth constructs an Auth service.
func NewAuth(api Requester) *Auth {
	return &Auth{api: api}
}

// Register creates an account with its first household and returns the new credential.
func (s *Auth) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	return s.authenticate(ctx, "auth.register", "/auth/register", req)
}

// Login exchanges credentials for a token.
func (s *Auth) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	return s.authenticate(ctx, "auth.login", "/auth/login", req)
}

func (s *Auth) authenticate(ctx context.Context, operation, path string, body any) (model.AuthResponse, error) {
	var raw json.RawMessage
	err := s.api.Do(ctx, apiclient.Request{
		Operation: operation,
		Method:    http.MethodPost,
		Path:      path,
		Body:      body,
		Anonymous: true,
	}, &raw)
	if err != nil {
		return model.AuthResponse{}, err
	}
	var resp model.AuthResponse
	if err := decodeStrict(operation, raw, &resp, "token", "user"); err != nil {
		return model.AuthResponse{}, err
	}
	if resp.Token == "" {
		return model.AuthResponse{}, apiclient.Malformed(operation, errors.New("empty token"))
	}
	if err := resp.User.Validate(); err != nil {
		return model.AuthResponse{}, apiclient.Malformed(operation, err)
	}
	return resp, nil
}

// Logout revokes the current token server-side.
func (s *Auth) Logout(ctx context.Context) error {
	return s.api.Do(ctx, apiclient.Request{
		Operation: "auth.logout",
		Method:    http.MethodPost,
		Path:      "/auth/logout",
	}, nil)
}

// Refresh exchanges the current token for a new one.
func (s *Auth) Refresh(ctx context.Context) (model.RefreshResponse, error) {
	const operation = "auth.refresh"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{
		Operation: operation,
		Method:    http.MethodPost,
		Path:      "/auth/refresh",
	}, &raw); err != nil {
		return model.RefreshResponse{}, err
	}
	var resp model.RefreshResponse
	if err := decodeStrict(operation, raw, &resp, "token"); err != nil {
		return model.RefreshResponse{}, err
	}
	if resp.Token == "" {
		return model.RefreshResponse{}, apiclient.Malformed(operation, errors.New("empty token"))
	}
	return resp, nil
}

// Users serves the caller's own profile.
type Users struct {
	api Requester
}

// NewUsers constructs a Users service.
func NewUsers(api Requester) *Users {
	return &Users{api: api}
}

// Profile returns the caller's profile.
func (s *Users) Profile(ctx context.Context) (model.User, error) {
	return s.user(ctx, apiclient.Request{Operation: "user.profile", Method: http.MethodGet, Path: "/api/user/profile"})
}

// UpdateProfile changes profile fields and returns the stored profile.
func (s *Users) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (model.User, error) {
	return s.user(ctx, apiclient.Request{Operation: "user.update_profile", Method: http.MethodPut, Path: "/api/user/profile", Body: req})
}

func (s *Users) user(ctx context.Context, req apiclient.Request) (model.User, error) {
	var u model.User
	if err := s.api.Do(ctx, req, &u); err != nil {
		return model.User{}, err
	}
	if err := u.Validate(); err != nil {
		return model.User{}, apiclient.Malformed(req.Operation, err)
	}
	return u, nil
}

// ChangePassword replaces the account password. A wrong current password is
// reported by the server as unauthenticated.
func (s *Users) ChangePassword(ctx context.Context, current, next string) error {
	const operation = "user.change_password"
	if current == "" || next == "" {
		return &apiclient.Error{Kind: apiclient.KindValidation, Operation: operation, Message: "current and new password are required"}
	}
	return s.api.Do(ctx, apiclient.Request{
		Operation: operation,
		Method:    http.MethodPut,
		Path:      "/api/user/password",
		Body:      model.ChangePasswordRequest{CurrentPassword: current, NewPassword: next},
	}, nil)
}

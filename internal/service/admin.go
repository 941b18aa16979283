package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/model"
)

// Admin serves administrator-only endpoints.
type Admin struct {
	api Requester
}

// NewAdmin constructs an Admin service.
func NewAdmin(api Requester) *Admin {
	return &Admin{api: api}
}

// Dashboard returns the system-wide snapshot.
func (s *Admin) Dashboard(ctx context.Context) (model.AdminDashboard, error) {
	const operation = "admin.dashboard"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{Operation: operation, Method: http.MethodGet, Path: "/admin/dashboard"}, &raw); err != nil {
		return model.AdminDashboard{}, err
	}
	var d model.AdminDashboard
	if err := decodeStrict(operation, raw, &d, "totalUsers", "totalHouseholds", "systemHealth", "serviceStatus"); err != nil {
		return model.AdminDashboard{}, err
	}
	return d, nil
}

// Users returns every registered user.
func (s *Admin) Users(ctx context.Context) ([]model.User, error) {
	const operation = "admin.users"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{Operation: operation, Method: http.MethodGet, Path: "/admin/users"}, &raw); err != nil {
		return nil, err
	}
	var users []model.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, apiclient.Malformed(operation, fmt.Errorf("expected user list: %w", err))
	}
	if users == nil {
		return nil, apiclient.Malformed(operation, errors.New("user list is null"))
	}
	for _, u := range users {
		if err := u.Validate(); err != nil {
			return nil, apiclient.Malformed(operation, err)
		}
	}
	return users, nil
}

// ChangeRole sets a user's role to exactly role.
func (s *Admin) ChangeRole(ctx context.Context, userID uint, role model.Role) error {
	const operation = "admin.change_role"
	if !role.Valid() {
		return &apiclient.Error{Kind: apiclient.KindValidation, Operation: operation, Message: fmt.Sprintf("unknown role %q", role)}
	}
	return s.api.Do(ctx, apiclient.Request{
		Operation: operation,
		Method:    http.MethodPut,
		Path:      "/admin/users/" + strconv.FormatUint(uint64(userID), 10) + "/role",
		Body:      model.RoleChange{Role: role},
	}, nil)
}

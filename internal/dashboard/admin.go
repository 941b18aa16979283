package dashboard

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/clock"
	"github.com/goodnatureofminers/energypulse/internal/listview"
	"github.com/goodnatureofminers/energypulse/internal/model"
	"go.uber.org/zap"
)

// Admin is the administration view: a system snapshot and the user list.
type Admin struct {
	svc   AdminService
	users *listview.Controller[model.User]
}

// NewAdmin constructs the admin view.
func NewAdmin(svc AdminService, c clock.Clock, logger *zap.Logger) *Admin {
	v := &Admin{svc: svc}
	v.users = listview.New(listview.Config{
		Name:           "admin_users",
		FailureMessage: "Failed to load users",
		Clock:          c,
	}, v.fetch, logger)
	return v
}

func (v *Admin) fetch(ctx context.Context, _ int) (listview.Page[model.User], error) {
	users, err := v.svc.Users(ctx)
	if err != nil {
		return listview.Page[model.User]{}, err
	}
	return listview.SinglePage(users), nil
}

// Dashboard returns the current system snapshot.
func (v *Admin) Dashboard(ctx context.Context) (model.AdminDashboard, error) {
	return v.svc.Dashboard(ctx)
}

// LoadUsers fetches the user list.
func (v *Admin) LoadUsers(ctx context.Context) error {
	return v.users.Load(ctx, 1)
}

// Users returns the rendered user list state.
func (v *Admin) Users() listview.State[model.User] {
	return v.users.Snapshot()
}

// SetRole gives a loaded user role. When the user already has it nothing is sent.
func (v *Admin) SetRole(ctx context.Context, userID uint, role model.Role) error {
	u, err := v.find(userID)
	if err != nil {
		return err
	}
	if u.Role == role {
		return nil
	}
	return v.changeRole(ctx, userID, role)
}

// ToggleRole flips a loaded user between admin and user.
func (v *Admin) ToggleRole(ctx context.Context, userID uint) error {
	u, err := v.find(userID)
	if err != nil {
		return err
	}
	return v.changeRole(ctx, userID, u.Role.Toggle())
}

func (v *Admin) changeRole(ctx context.Context, userID uint, role model.Role) error {
	return v.users.Mutate(ctx, listview.Mutation[model.User]{
		Write: func(ctx context.Context) (listview.Patch[model.User], error) {
			if err := v.svc.ChangeRole(ctx, userID, role); err != nil {
				return nil, err
			}
			return listview.Update(
				func(u model.User) bool { return u.ID == userID },
				func(u model.User) model.User {
					u.Role = role
					return u
				},
			), nil
		},
		Success: fmt.Sprintf("Role updated to %s", role),
		Failure: "Failed to update role",
	})
}

func (v *Admin) find(userID uint) (model.User, error) {
	for _, u := range v.users.Snapshot().Items {
		if u.ID == userID {
			return u, nil
		}
	}
	return model.User{}, &apiclient.Error{
		Kind:      apiclient.KindNotFound,
		Operation: "admin.change_role",
		Message:   fmt.Sprintf("user %d is not loaded", userID),
	}
}

// Close releases the view.
func (v *Admin) Close() {
	v.users.Close()
}

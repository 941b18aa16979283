package dashboard

import (
	"context"

	"github.com/goodnatureofminers/energypulse/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// HouseService is the household registry.
	HouseService interface {
		List(ctx context.Context) ([]model.Household, error)
		Get(ctx context.Context, id string) (model.Household, error)
		Create(ctx context.Context, in model.HouseholdInput) (model.Household, error)
		Update(ctx context.Context, id string, in model.HouseholdInput) (model.Household, error)
		Delete(ctx context.Context, id string) error
		Forecast(ctx context.Context, id string) ([]model.Prediction, error)
	}
	// PredictionService is the prediction log.
	PredictionService interface {
		List(ctx context.Context, q model.PredictionQuery) (model.PredictionPage, error)
		Statistics(ctx context.Context) (model.Statistics, error)
	}
	// LedgerService is the blockchain ledger.
	LedgerService interface {
		Logs(ctx context.Context) (model.BlockchainLogs, error)
		Stats(ctx context.Context) (model.BlockchainStats, error)
		Verify(ctx context.Context, hash string) (model.VerificationResult, error)
		Block(ctx context.Context, number uint64) (model.Block, error)
	}
	// AdminService serves administrator endpoints.
	AdminService interface {
		Dashboard(ctx context.Context) (model.AdminDashboard, error)
		Users(ctx context.Context) ([]model.User, error)
		ChangeRole(ctx context.Context, userID uint, role model.Role) error
	}
	// AuthService authenticates the user.
	AuthService interface {
		Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error)
		Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
		Logout(ctx context.Context) error
		Refresh(ctx context.Context) (model.RefreshResponse, error)
	}
	// ProfileService serves the caller's own profile.
	ProfileService interface {
		Profile(ctx context.Context) (model.User, error)
		UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (model.User, error)
		ChangePassword(ctx context.Context, current, next string) error
	}
	// WeatherService looks up current conditions.
	WeatherService interface {
		Current(ctx context.Context, city string) (model.Weather, error)
	}
	// SessionStore holds the current session.
	SessionStore interface {
		Current() (model.Session, bool)
		Replace(sess model.Session) error
		UpdateUser(user model.User) error
		Clear() error
	}
)

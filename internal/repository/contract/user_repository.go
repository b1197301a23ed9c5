package contract

import (
	"context"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)

	// Profile
	UpsertProfile(ctx context.Context, profile *entity.UserProfile) error
	FindProfile(ctx context.Context, userId uuid.UUID) (*entity.UserProfile, error)

	// Settings
	UpsertSettings(ctx context.Context, settings *entity.UserSettings) error
	FindSettings(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error)

	// Email verification
	CreateVerificationToken(ctx context.Context, token *entity.EmailVerificationToken) error
	FindVerificationToken(ctx context.Context, token string) (*entity.EmailVerificationToken, error)
	DeleteVerificationTokensByUserId(ctx context.Context, userId uuid.UUID) error

	// OAuth providers
	CreateProvider(ctx context.Context, provider *entity.UserProvider) error
	FindProvider(ctx context.Context, specs ...specification.Specification) (*entity.UserProvider, error)
}

// FILE: internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"time"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetMe(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)

	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)

	GetSettings(ctx context.Context, userId uuid.UUID) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) GetMe(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return &dto.UserDTO{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		AvatarURL: user.AvatarURL,
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.UserRepository().FindProfile(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	res := profileToResponse(profile)
	return &res, nil
}

// UpdateProfile merges the request into the stored profile. Only the fields
// present in the request change; the upsert creates the row on first write.
func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.UserRepository().FindProfile(ctx, userId)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if profile == nil {
		profile = &entity.UserProfile{
			Id:        uuid.New(),
			UserId:    userId,
			CreatedAt: now,
		}
	}

	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Gender != nil {
		profile.Gender = entity.Gender(*req.Gender)
	}
	if req.HeightCm != nil {
		profile.HeightCm = *req.HeightCm
	}
	if req.WeightKg != nil {
		profile.WeightKg = *req.WeightKg
	}
	if req.ActivityLevel != nil {
		profile.ActivityLevel = entity.ActivityLevel(*req.ActivityLevel)
	}
	if req.Goal != nil {
		profile.Goal = entity.Goal(*req.Goal)
	}
	if req.DietType != nil {
		profile.DietType = *req.DietType
	}
	if req.Allergies != nil {
		profile.Allergies = req.Allergies
	}
	if req.DailyCalories != nil {
		profile.DailyCalories = *req.DailyCalories
	}
	profile.UpdatedAt = now

	if err := uow.UserRepository().UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	res := profileToResponse(profile)
	return &res, nil
}

func (s *userService) GetSettings(ctx context.Context, userId uuid.UUID) (*dto.SettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := uow.UserRepository().FindSettings(ctx, userId)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		// Defaults for users who never touched their settings
		return &dto.SettingsResponse{
			Units:  "metric",
			Locale: "en",
			Prefs:  map[string]interface{}{},
		}, nil
	}

	res := settingsToResponse(settings)
	return &res, nil
}

func (s *userService) UpdateSettings(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.UserRepository().FindSettings(ctx, userId)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.UserSettings{
			Id:     uuid.New(),
			UserId: userId,
			Units:  "metric",
			Locale: "en",
			Prefs:  map[string]interface{}{},
		}
	}

	if req.Units != nil {
		settings.Units = *req.Units
	}
	if req.Locale != nil {
		settings.Locale = *req.Locale
	}
	if req.Prefs != nil {
		if settings.Prefs == nil {
			settings.Prefs = map[string]interface{}{}
		}
		for k, v := range req.Prefs {
			settings.Prefs[k] = v
		}
	}
	settings.UpdatedAt = time.Now()

	if err := uow.UserRepository().UpsertSettings(ctx, settings); err != nil {
		return nil, err
	}

	res := settingsToResponse(settings)
	return &res, nil
}

func profileToResponse(p *entity.UserProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		Id:            p.Id,
		Age:           p.Age,
		Gender:        string(p.Gender),
		HeightCm:      p.HeightCm,
		WeightKg:      p.WeightKg,
		ActivityLevel: string(p.ActivityLevel),
		Goal:          string(p.Goal),
		DietType:      p.DietType,
		Allergies:     p.Allergies,
		DailyCalories: p.DailyCalories,
		UpdatedAt:     p.UpdatedAt,
	}
}

func settingsToResponse(s *entity.UserSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		Units:     s.Units,
		Locale:    s.Locale,
		Prefs:     s.Prefs,
		UpdatedAt: s.UpdatedAt,
	}
}

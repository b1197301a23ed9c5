package mapper

import (
	"encoding/json"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:              u.Id,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		FullName:        u.FullName,
		Role:            entity.UserRole(u.Role),
		Status:          entity.UserStatus(u.Status),
		EmailVerified:   u.EmailVerified,
		EmailVerifiedAt: u.EmailVerifiedAt,
		AvatarURL:       u.AvatarURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:              u.Id,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		FullName:        u.FullName,
		Role:            string(u.Role),
		Status:          string(u.Status),
		EmailVerified:   u.EmailVerified,
		EmailVerifiedAt: u.EmailVerifiedAt,
		AvatarURL:       u.AvatarURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (m *UserMapper) ProfileToEntity(p *model.UserProfile) *entity.UserProfile {
	if p == nil {
		return nil
	}
	return &entity.UserProfile{
		Id:            p.Id,
		UserId:        p.UserId,
		Age:           p.Age,
		Gender:        entity.Gender(p.Gender),
		HeightCm:      p.HeightCm,
		WeightKg:      p.WeightKg,
		ActivityLevel: entity.ActivityLevel(p.ActivityLevel),
		Goal:          entity.Goal(p.Goal),
		DietType:      p.DietType,
		Allergies:     jsonToStrings(p.Allergies),
		DailyCalories: p.DailyCalories,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *UserMapper) ProfileToModel(p *entity.UserProfile) *model.UserProfile {
	if p == nil {
		return nil
	}
	return &model.UserProfile{
		Id:            p.Id,
		UserId:        p.UserId,
		Age:           p.Age,
		Gender:        string(p.Gender),
		HeightCm:      p.HeightCm,
		WeightKg:      p.WeightKg,
		ActivityLevel: string(p.ActivityLevel),
		Goal:          string(p.Goal),
		DietType:      p.DietType,
		Allergies:     stringsToJSON(p.Allergies),
		DailyCalories: p.DailyCalories,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *UserMapper) SettingsToEntity(s *model.UserSettings) *entity.UserSettings {
	if s == nil {
		return nil
	}
	var prefs map[string]interface{}
	if len(s.Prefs) > 0 {
		_ = json.Unmarshal(s.Prefs, &prefs)
	}
	return &entity.UserSettings{
		Id:        s.Id,
		UserId:    s.UserId,
		Units:     s.Units,
		Locale:    s.Locale,
		Prefs:     prefs,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *UserMapper) SettingsToModel(s *entity.UserSettings) *model.UserSettings {
	if s == nil {
		return nil
	}
	var prefs datatypes.JSON
	if s.Prefs != nil {
		if raw, err := json.Marshal(s.Prefs); err == nil {
			prefs = raw
		}
	}
	return &model.UserSettings{
		Id:        s.Id,
		UserId:    s.UserId,
		Units:     s.Units,
		Locale:    s.Locale,
		Prefs:     prefs,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *UserMapper) VerificationTokenToEntity(t *model.EmailVerificationToken) *entity.EmailVerificationToken {
	if t == nil {
		return nil
	}
	return &entity.EmailVerificationToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}

func (m *UserMapper) VerificationTokenToModel(t *entity.EmailVerificationToken) *model.EmailVerificationToken {
	if t == nil {
		return nil
	}
	return &model.EmailVerificationToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}

func (m *UserMapper) ProviderToEntity(p *model.UserProvider) *entity.UserProvider {
	if p == nil {
		return nil
	}
	return &entity.UserProvider{
		Id:             p.Id,
		UserId:         p.UserId,
		ProviderName:   p.ProviderName,
		ProviderUserId: p.ProviderUserId,
		AvatarURL:      p.AvatarURL,
		CreatedAt:      p.CreatedAt,
	}
}

func (m *UserMapper) ProviderToModel(p *entity.UserProvider) *model.UserProvider {
	if p == nil {
		return nil
	}
	return &model.UserProvider{
		Id:             p.Id,
		UserId:         p.UserId,
		ProviderName:   p.ProviderName,
		ProviderUserId: p.ProviderUserId,
		AvatarURL:      p.AvatarURL,
		CreatedAt:      p.CreatedAt,
	}
}

package persistent

import (
	"streamlane/services/account/internal/entity"
	"streamlane/services/account/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Username:  m.Username,
		Password:  m.Password,
		Role:      entity.UserRole(m.Role),
		IsActive:  m.IsActive,
		LastLogin: m.LastLogin,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Email:     e.Email,
		Username:  e.Username,
		Password:  e.Password,
		Role:      string(e.Role),
		IsActive:  e.IsActive,
		LastLogin: e.LastLogin,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToProfileEntity(m *model.ProfileModel) *entity.Profile {
	if m == nil {
		return nil
	}

	return &entity.Profile{
		ID:               m.ID,
		UserID:           m.UserID,
		Title:            m.Title,
		Image:            m.Image,
		Description:      m.Description,
		Location:         m.Location,
		TotalSubscribers: m.TotalSubscribers,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToProfileModel(e *entity.Profile) *model.ProfileModel {
	if e == nil {
		return nil
	}

	return &model.ProfileModel{
		ID:               e.ID,
		UserID:           e.UserID,
		Title:            e.Title,
		Image:            e.Image,
		Description:      e.Description,
		Location:         e.Location,
		TotalSubscribers: e.TotalSubscribers,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

package persistent

import (
	"errors"

	"streamlane/services/account/internal/entity"
	"streamlane/services/account/internal/model"

	"gorm.io/gorm"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	EmailExists(email string) (bool, error)
	UsernameExists(username string) (bool, error)
	Update(user *entity.User) error
	GetProfileByUserID(userID string) (*entity.Profile, error)
	UpdateProfile(profile *entity.Profile) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user together with its default channel profile. Both
// rows share one transaction so no user exists without a profile.
func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userModel).Error; err != nil {
			return err
		}

		profileModel := &model.ProfileModel{
			UserID:      userModel.ID,
			Title:       userModel.Username,
			Image:       "default_profile_image_url",
			Description: "",
		}
		return tx.Create(profileModel).Error
	})
	if err != nil {
		return err
	}

	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) EmailExists(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UsernameExists(username string) (bool, error) {
	if username == "" {
		return false, nil
	}
	var count int64
	if err := r.db.Model(&model.UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Update(user *entity.User) error {
	return r.db.Save(ToUserModel(user)).Error
}

func (r *userRepository) GetProfileByUserID(userID string) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	if err := r.db.Where("user_id = ?", userID).First(&profileModel).Error; err != nil {
		return nil, err
	}
	return ToProfileEntity(&profileModel), nil
}

func (r *userRepository) UpdateProfile(profile *entity.Profile) error {
	return r.db.Save(ToProfileModel(profile)).Error
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/recon_backend/config"
	"github.com/mmdatafocus/recon_backend/utils"
)

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:100;not null;unique" json:"username"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Division  string    `gorm:"size:100" json:"division"`
	Role      string    `gorm:"size:20;not null;default:operator" json:"role"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewUser struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Division string `json:"division"`
	Role     string `json:"role"`
	Password string `json:"password" binding:"required"`
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {

	role := input.Role
	if role == "" {
		role = RoleOperator
	}
	if role != RoleAdmin && role != RoleOperator {
		return nil, errors.New("invalid role")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Username: input.Username,
		Name:     input.Name,
		Division: input.Division,
		Role:     role,
		Password: string(hashed),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, utils.NewBadRequest(err)
	}
	return &user, nil
}

// Login verifies the credentials and issues a signed token.
func Login(ctx context.Context, username string, password string) (string, error) {

	db := config.GetDB()
	var user User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return "", utils.ErrorRecordNotFound
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return "", utils.ErrorRecordNotFound
	}
	return utils.JwtGenerate(user.ID, user.Role)
}

func ResetPassword(ctx context.Context, userID int, newPassword string) error {

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).Update("password", string(hashed))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

package models

import (
	"github.com/relearn-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认超级管理员账号
func InitDefaultAdmin(name, email, password string) error {
	var count int64
	DB.Model(&User{}).Where("is_superuser = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	if name == "" {
		name = "admin"
	}
	if email == "" {
		email = "admin@localhost"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "name", name)
		logger.Warnw("default_admin_password_change_required", "name", name)
	} else {
		logger.Warnw("default_admin_created", "name", name, "password_hidden", true)
	}

	return nil
}

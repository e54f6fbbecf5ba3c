package models

import (
	"errors"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	// Nil for accounts created through an OAuth provider. Such accounts
	// cannot sign in with a password.
	HashedPassword *string `json:"-"`
	// OAuth provider that created the account, empty for password accounts.
	Provider string `json:"provider,omitempty"`
}

func CreateUser(db *gorm.DB, username, email string, hashedPassword *string, provider string) (*User, error) {
	user := User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		Provider:       provider,
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func GetUserByEmail(db *gorm.DB, email string) (*User, error) {
	var user User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func GetUserByID(db *gorm.DB, id uint) (*User, error) {
	var user User
	err := db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

// DeleteUser removes the user and their tracking rows in one transaction.
func DeleteUser(db *gorm.DB, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&UserCompany{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&User{}, userID).Error
	})
}

package models

import "time"

// User represents a shop customer account.
type User struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName    string    `gorm:"column:first_name;not null"`
	LastName     string    `gorm:"column:last_name;not null"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	Mobile       string    `gorm:"column:mobile;not null"`
	CountryID    int64     `gorm:"column:country_id;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

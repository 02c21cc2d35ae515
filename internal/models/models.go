package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Avatar       string    `json:"avatar"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Income struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	Icon      string    `json:"icon"`
	Source    string    `gorm:"not null"                 json:"source"`
	Amount    float64   `gorm:"not null"                 json:"amount"`
	Date      time.Time `gorm:"index;not null"           json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type Expense struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	Icon      string    `json:"icon"`
	Category  string    `gorm:"not null"                 json:"category"`
	Amount    float64   `gorm:"not null"                 json:"amount"`
	Date      time.Time `gorm:"index;not null"           json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

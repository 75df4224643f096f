package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name             string     `json:"name" gorm:"default:''"`
	Email            string     `json:"email" gorm:"uniqueIndex;not null"` // stored trimmed + lowercased
	Password         string     `json:"-" gorm:"not null"`                 // bcrypt hash
	Role             string     `json:"role" gorm:"default:'student'"`     // student, admin
	SignaturePath    string     `json:"signature_path" gorm:"default:''"`  // admin only, embedded into rendered certificates
	ResetToken       string     `json:"-" gorm:"default:''"`
	ResetTokenExpiry *time.Time `json:"-"`
	IsDeleted        bool       `gorm:"default:false"`
}

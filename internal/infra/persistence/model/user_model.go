package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. Username, email and the verification
// token columns all carry unique indexes; consumption moves the token from
// the outstanding column to the consumed one so the link stays resolvable.
type UserModel struct {
	ID                        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username                  string    `gorm:"type:varchar(100);unique;not null"`
	Email                     string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash              string    `gorm:"type:varchar(255);not null"`
	Verified                  bool      `gorm:"not null;default:false"`
	VerificationToken         *string   `gorm:"type:varchar(255);unique"`
	ConsumedVerificationToken *string   `gorm:"type:varchar(255);unique"`
	IsAdmin                   bool      `gorm:"not null;default:false"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time

	Reviews []ReviewModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

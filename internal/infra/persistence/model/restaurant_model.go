package model

import (
	"time"

	"github.com/google/uuid"
)

// RestaurantModel mirrors the 'restaurants' table.
type RestaurantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null;index"`
	CreatedAt time.Time

	Reviews []ReviewModel `gorm:"foreignKey:RestaurantID"`
}

// TableName explicitly sets the table name for GORM.
func (RestaurantModel) TableName() string {
	return "restaurants"
}

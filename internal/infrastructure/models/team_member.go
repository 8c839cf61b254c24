package models

import (
	"time"

	"github.com/google/uuid"
)

type TeamMember struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName   string    `gorm:"type:varchar(100);not null"`
	LastName    string    `gorm:"type:varchar(100);not null"`
	PhoneNumber string    `gorm:"type:varchar(15);not null"`
	Email       string    `gorm:"type:varchar(254);uniqueIndex;not null"`
	Role        string    `gorm:"type:varchar(10);not null;default:'regular';check:chk_team_members_role,role IN ('admin','regular')"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

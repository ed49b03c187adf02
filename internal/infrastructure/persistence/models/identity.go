package models

import (
	"github.com/google/uuid"

	"github.com/management360/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User entity.
type UserModel struct {
	BaseModel
	Email         string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash  string        `gorm:"type:varchar(255);not null"`
	FirstName     string        `gorm:"type:varchar(100);not null"`
	LastName      string        `gorm:"type:varchar(100)"`
	PhoneNumber   string        `gorm:"type:varchar(30)"`
	Role          identity.Role `gorm:"type:varchar(20);not null;index"`
	ApartmentCode string        `gorm:"type:varchar(20);not null;index:idx_user_apartment"`
	FlatID        *uuid.UUID    `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:    m.BaseModel.ToDomain(),
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		PhoneNumber:   m.PhoneNumber,
		Role:          m.Role,
		ApartmentCode: m.ApartmentCode,
		FlatID:        m.FlatID,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.PhoneNumber = u.PhoneNumber
	m.Role = u.Role
	m.ApartmentCode = u.ApartmentCode
	m.FlatID = u.FlatID
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

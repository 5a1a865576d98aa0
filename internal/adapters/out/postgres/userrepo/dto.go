// Package userrepo provides data transfer objects and mapping functions for
// user persistence. Handles the conversion between the user domain aggregate
// and its relational representation.
package userrepo

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user aggregates.
// Role, driver status and tier are stored as their integer enum values.
// The composite index on (role, driver_status) serves the available-agent
// candidate scan.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string `gorm:"index"`
	Role         int    `gorm:"index:idx_users_role_driver_status"`
	DriverStatus int    `gorm:"index:idx_users_role_driver_status"`
	Tier         int
	Points       int64
	RegisteredAt time.Time
}

// TableName overrides GORM's default naming convention to use "users".
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Bytes(),
		Name:         u.Name(),
		Email:        u.Email(),
		Role:         int(u.Role()),
		DriverStatus: int(u.DriverStatus()),
		Tier:         int(u.Tier()),
		Points:       u.Points(),
		RegisteredAt: u.RegisteredAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		dto.Name,
		dto.Email,
		user.Role(dto.Role),
		user.DriverStatus(dto.DriverStatus),
		user.Tier(dto.Tier),
		dto.Points,
		dto.RegisteredAt,
	)
}

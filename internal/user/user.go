package user

import (
	"time"

	userDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/user"
	"github.com/commerceops/backoffice/internal/rbac"
)

type User struct {
	ID          int64     `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Name        string    `json:"name" db:"name"`
	Role        string    `json:"role" db:"role"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Permissions []string  `json:"permissions" db:"-"`
}

func (u *User) HasPermission(permission string) bool {
	return rbac.HasPermission(&rbac.Principal{Role: rbac.Role(u.Role)}, rbac.Permission(permission))
}

func (u *User) IsAdmin() bool {
	return u.Role == string(rbac.RoleAdmin)
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

func FromDataModel(m *userDatamodel.User) *User {
	return &User{
		ID:          m.ID,
		Email:       m.Email,
		Name:        m.Name,
		Role:        m.Role,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Permissions: rbac.PermissionStrings(rbac.Role(m.Role)),
	}
}

package model

type Role struct {
	DTO
	Name        string       `gorm:"uniqueIndex;not null" validate:"required" json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions"`
}

type Permission struct {
	DTO
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Resource string `gorm:"index;not null" json:"resource"` // grouping key for bulk toggling
	Action   string `gorm:"not null" json:"action"`         // view, create, update, delete
}

type CreateRoleInput struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	PermissionIDs []uint `json:"permissionIds" validate:"omitempty,dive,required"`
}

type UpdateRoleInput struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	PermissionIDs *[]uint `json:"permissionIds"`
}

// PermissionGroup is the per-resource view used by the role form.
type PermissionGroup struct {
	Resource    string       `json:"resource"`
	Permissions []Permission `json:"permissions"`
}

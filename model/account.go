package model

import "time"

type Account struct {
	DTO
	Username     string `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Password     string `gorm:"not null" json:"-"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
	Role         string `json:"role"`

	Roles []Role `gorm:"many2many:account_roles;" json:"roles"`

	// owned back-office resources, removed with the account
	Properties      []Property       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Transportations []Transportation `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

type Accounts []Account

type CreateAccountInput struct {
	Username string `validate:"required,min=3,max=50" json:"username"`
	Password string `validate:"required,min=6,max=50" json:"password"`
	Role     string `validate:"required,oneof=ADMIN HOTEL_OWNER TRANSPORT_OWNER" json:"role"`
}

type UpdateAccountInput struct {
	Username *string `json:"username,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Role     *string `json:"role,omitempty"`
}

type FilterAccount struct {
	Pagination
	SearchKey string  `json:"searchKey" query:"searchKey"`
	Active    *bool   `json:"active" query:"active"`
	Role      *string `json:"role" query:"role"`
}

type AdminChangePassword struct {
	AccountId      uint   `json:"accountId" validate:"required"`
	NewPassword    string `json:"newPassword" validate:"required,min=6"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=NewPassword"`
}

type PasswordResetToken struct {
	DTO
	CustomerId uint      `gorm:"not null" json:"customerId"`
	Token      string    `gorm:"uniqueIndex;size:64" json:"-"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

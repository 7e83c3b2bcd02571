package model

import "gorm.io/datatypes"

type Province struct {
	DTO
	Name   string  `gorm:"uniqueIndex;not null" validate:"required" json:"name"`
	Region string  `json:"region"`
	Places []Place `gorm:"foreignKey:ProvinceID" json:"-"`
}

type PlaceCategory struct {
	DTO
	Name        string  `gorm:"uniqueIndex;not null" validate:"required" json:"name"`
	Description string  `json:"description"`
	Places      []Place `gorm:"foreignKey:CategoryID" json:"-"`
}

type Place struct {
	DTO
	Name           string         `gorm:"not null" validate:"required" json:"name"`
	Slug           string         `gorm:"uniqueIndex" json:"slug"`
	Description    string         `json:"description"`
	Rating         float64        `gorm:"type:decimal(3,2);default:0" json:"rating"`
	ReviewCount    int            `gorm:"default:0" json:"reviewCount"`
	OperatingHours string         `json:"operatingHours"`
	HasEntryFee    bool           `gorm:"default:false" json:"hasEntryFee"`
	Images         datatypes.JSON `json:"images"`

	// lookup dimensions null out when the parent row is removed
	CategoryID *uint          `json:"categoryId"`
	ProvinceID *uint          `json:"provinceId"`
	Category   *PlaceCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category"`
	Province   *Province      `gorm:"foreignKey:ProvinceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"province"`
}

type Places []Place

type CreatePlaceInput struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	OperatingHours string   `json:"operatingHours"`
	HasEntryFee    bool     `json:"hasEntryFee"`
	Images         []string `json:"images"`
	CategoryID     *uint    `json:"categoryId"`
	ProvinceID     *uint    `json:"provinceId"`
}

type EditPlaceInput struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Rating         *float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewCount    *int      `json:"reviewCount" validate:"omitempty,gte=0"`
	OperatingHours *string   `json:"operatingHours"`
	HasEntryFee    *bool     `json:"hasEntryFee"`
	Images         *[]string `json:"images"`
	CategoryID     *uint     `json:"categoryId"`
	ProvinceID     *uint     `json:"provinceId"`
}

type FilterPlace struct {
	Pagination
	SearchKey  string `json:"searchKey" query:"searchKey"`
	ProvinceID uint   `json:"provinceId" query:"provinceId"`
	CategoryID uint   `json:"categoryId" query:"categoryId"`
	MinRating  *float64
}

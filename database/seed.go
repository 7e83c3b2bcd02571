package database

import (
	"log"
	"travel_booking/constants"
	"travel_booking/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456tb"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456tb"
	}
	accounts := []model.Account{
		{Username: "Administration", Password: HashPassword, Active: true, Role: constants.ROLE_ADMIN},
	}

	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	permissions := []model.Permission{}
	for _, resource := range []string{"places", "properties", "rooms", "buses", "schedules", "bookings", "trips", "roles", "accounts"} {
		for _, action := range []string{"view", "create", "update", "delete"} {
			permissions = append(permissions, model.Permission{
				Name:     resource + "." + action,
				Resource: resource,
				Action:   action,
			})
		}
	}
	for _, permission := range permissions {
		if err := db.Where(model.Permission{Name: permission.Name}).FirstOrCreate(&permission).Error; err != nil {
			log.Println("failed to seed permission:", permission.Name, "error:", err)
		}
	}

	var allPermissions []model.Permission
	db.Find(&allPermissions)
	superadmin := model.Role{Name: constants.ROLE_SUPERADMIN_NAME, Description: "Full access, cannot be deleted"}
	if err := db.Where(model.Role{Name: superadmin.Name}).FirstOrCreate(&superadmin).Error; err != nil {
		log.Println("failed to seed superadmin role:", err)
	} else {
		db.Model(&superadmin).Association("Permissions").Replace(allPermissions)
	}

	provinces := []model.Province{
		{Name: "Phnom Penh", Region: "central"},
		{Name: "Siem Reap", Region: "northwest"},
		{Name: "Battambang", Region: "northwest"},
		{Name: "Sihanoukville", Region: "coast"},
		{Name: "Kampot", Region: "coast"},
		{Name: "Mondulkiri", Region: "northeast"},
	}
	for _, province := range provinces {
		if err := db.Where(model.Province{Name: province.Name}).FirstOrCreate(&province).Error; err != nil {
			log.Println("failed to seed province:", province.Name, "error:", err)
		}
	}

	categories := []model.PlaceCategory{
		{Name: "Temple"},
		{Name: "Beach"},
		{Name: "Museum"},
		{Name: "Market"},
		{Name: "National Park"},
		{Name: "Restaurant"},
	}
	for _, category := range categories {
		if err := db.Where(model.PlaceCategory{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			log.Println("failed to seed category:", category.Name, "error:", err)
		}
	}

	facilities := []model.Facility{
		{Name: "Pool"}, {Name: "Parking"}, {Name: "Wifi"}, {Name: "Gym"}, {Name: "Restaurant"},
	}
	for _, facility := range facilities {
		if err := db.Where(model.Facility{Name: facility.Name}).FirstOrCreate(&facility).Error; err != nil {
			log.Println("failed to seed facility:", facility.Name, "error:", err)
		}
	}

	amenities := []model.Amenity{
		{Name: "Air conditioning"}, {Name: "TV"}, {Name: "Mini bar"}, {Name: "Balcony"}, {Name: "Hot water"},
	}
	for _, amenity := range amenities {
		if err := db.Where(model.Amenity{Name: amenity.Name}).FirstOrCreate(&amenity).Error; err != nil {
			log.Println("failed to seed amenity:", amenity.Name, "error:", err)
		}
	}
}

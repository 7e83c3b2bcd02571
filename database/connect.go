package database

import (
	"fmt"
	"strconv"
	"travel_booking/config"
	"travel_booking/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.ConfigOr("DB_PORT", "5432")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	if err := Migrate(DB); err != nil {
		panic(err)
	}
	fmt.Println("Database Migrated")

	SeedData(DB)
}

// Migrate creates the schema and applies the one-off status rewrite. Split
// out of ConnectDB so the test suite can run it against another dialect.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Account{},
		&model.Customer{},
		&model.PasswordResetToken{},
		&model.Role{},
		&model.Permission{},
		&model.Province{},
		&model.PlaceCategory{},
		&model.Place{},
		&model.Property{},
		&model.Facility{},
		&model.RoomProperty{},
		&model.Amenity{},
		&model.Room{},
		&model.Transportation{},
		&model.BusProperty{},
		&model.Bus{},
		&model.BusSeat{},
		&model.Route{},
		&model.BusSchedule{},
		&model.ScheduleSeat{},
		&model.Booking{},
		&model.BookingItem{},
		&model.BookingHotelDetail{},
		&model.Trip{},
		&model.TripDay{},
		&model.TripPlace{},
		&model.TripShare{},
		&model.TripShareAccess{},
		&model.Budget{},
		&model.Expense{},
	); err != nil {
		return err
	}

	return MigrateLegacyScheduleStatus(db)
}

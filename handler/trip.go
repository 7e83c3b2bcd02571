package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func tripOwnedBy(c *fiber.Ctx, tripId int) (*model.Trip, *model.Customer, error) {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return nil, nil, errors.New("login required")
	}

	var trip model.Trip
	if err := database.DB.First(&trip, tripId).Error; err != nil {
		return nil, customer, err
	}
	if trip.CustomerID != customer.ID {
		return nil, customer, errors.New("not trip owner")
	}
	return &trip, customer, nil
}

// CreateTrip builds the itinerary skeleton: one day row per calendar day of
// the date range.
func CreateTrip(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	input, ok := c.Locals("inputCreateTrip").(model.CreateTripInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	startDate, err := utils.ParseDate(input.StartDate)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid start date", err, "startDate")
	}
	endDate, err := utils.ParseDate(input.EndDate)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid end date", err, "endDate")
	}
	if endDate.Before(startDate) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "End date before start date", nil, "endDate")
	}

	tx := database.DB.Begin()

	trip := model.Trip{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		CustomerID:  customer.ID,
	}
	if err := tx.Create(&trip).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	dayCount := int(endDate.Sub(startDate).Hours()/24) + 1
	days := make([]model.TripDay, 0, dayCount)
	for i := 1; i <= dayCount; i++ {
		days = append(days, model.TripDay{TripID: trip.ID, DayIndex: i})
	}
	if err := tx.Create(&days).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx.Commit()

	database.DB.Preload("Days").First(&trip, trip.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, trip)
}

func GetMyTrips(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	var trips []model.Trip
	if err := database.DB.
		Where("customer_id = ?", customer.ID).
		Preload("Days.Places.Place").
		Preload("Budget").
		Preload("Share").
		Order("start_date DESC").
		Find(&trips).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, trips)
}

func GetTripDetail(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	if err := database.DB.
		Preload("Days.Places.Place.Province").
		Preload("Budget.Expenses").
		Preload("Share").
		First(trip, trip.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, trip)
}

// EditTrip updates metadata. Extending the date range appends day rows;
// shrinking it deletes the trailing days together with their places.
func EditTrip(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputEditTrip").(model.EditTripInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	if input.Name != nil {
		trip.Name = *input.Name
	}
	if input.Description != nil {
		trip.Description = *input.Description
	}
	if input.StartDate != nil {
		startDate, err := utils.ParseDate(*input.StartDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid start date", err, "startDate")
		}
		trip.StartDate = startDate
	}
	if input.EndDate != nil {
		endDate, err := utils.ParseDate(*input.EndDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid end date", err, "endDate")
		}
		trip.EndDate = endDate
	}
	if trip.EndDate.Before(trip.StartDate) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "End date before start date", nil, "endDate")
	}

	tx := database.DB.Begin()

	if err := tx.Save(trip).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	dayCount := int(trip.EndDate.Sub(trip.StartDate).Hours()/24) + 1

	var existing int64
	tx.Model(&model.TripDay{}).Where("trip_id = ?", trip.ID).Count(&existing)

	for i := int(existing) + 1; i <= dayCount; i++ {
		if err := tx.Create(&model.TripDay{TripID: trip.ID, DayIndex: i}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	if int(existing) > dayCount {
		var trailing []model.TripDay
		tx.Where("trip_id = ? AND day_index > ?", trip.ID, dayCount).Find(&trailing)
		for _, day := range trailing {
			if err := tx.Where("trip_day_id = ?", day.ID).Delete(&model.TripPlace{}).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
		}
		if err := tx.Where("trip_id = ? AND day_index > ?", trip.ID, dayCount).Delete(&model.TripDay{}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	tx.Commit()

	database.DB.Preload("Days.Places").First(trip, trip.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, trip)
}

func DeleteTrip(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	tx := database.DB.Begin()

	// delete children explicitly, sqlite does not always enforce the cascade
	var dayIds []uint
	tx.Model(&model.TripDay{}).Where("trip_id = ?", trip.ID).Pluck("id", &dayIds)
	if len(dayIds) > 0 {
		if err := tx.Where("trip_day_id IN ?", dayIds).Delete(&model.TripPlace{}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	if err := tx.Where("trip_id = ?", trip.ID).Delete(&model.TripDay{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var budget model.Budget
	if err := tx.Where("trip_id = ?", trip.ID).First(&budget).Error; err == nil {
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&model.Expense{}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if err := tx.Delete(&budget).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	var share model.TripShare
	if err := tx.Where("trip_id = ?", trip.ID).First(&share).Error; err == nil {
		if err := tx.Where("trip_share_id = ?", share.ID).Delete(&model.TripShareAccess{}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if err := tx.Delete(&share).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if err := tx.Delete(trip).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx.Commit()
	return utils.SuccessResponse(c, fiber.StatusOK, "Deleted")
}

func AddTripPlace(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	dayIndex, err := c.ParamsInt("dayIndex")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	input, ok := c.Locals("inputAddTripPlace").(model.AddTripPlaceInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	db := database.DB

	var day model.TripDay
	if err := db.Where("trip_id = ? AND day_index = ?", trip.ID, dayIndex).First(&day).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Trip day not found", err)
	}
	var place model.Place
	if err := db.First(&place, input.PlaceID).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Place does not exist", err, "placeId")
	}

	var maxOrder int64
	db.Model(&model.TripPlace{}).Where("trip_day_id = ?", day.ID).Count(&maxOrder)

	tripPlace := model.TripPlace{
		TripDayID:  day.ID,
		PlaceID:    input.PlaceID,
		VisitOrder: int(maxOrder) + 1,
		Note:       input.Note,
	}
	if err := db.Create(&tripPlace).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	db.Preload("Place").First(&tripPlace, tripPlace.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, tripPlace)
}

func RemoveTripPlace(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	placeEntryId, err := c.ParamsInt("tripPlaceId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	db := database.DB

	var tripPlace model.TripPlace
	if err := db.Joins("JOIN trip_days ON trip_days.id = trip_places.trip_day_id").
		Where("trip_places.id = ? AND trip_days.trip_id = ?", placeEntryId, trip.ID).
		First(&tripPlace).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if err := db.Delete(&tripPlace).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Deleted")
}

// ReorderTripPlaces rewrites visit order within a day from the given id list.
func ReorderTripPlaces(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	dayIndex, err := c.ParamsInt("dayIndex")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	input, ok := c.Locals("inputReorderTripPlaces").(model.ReorderTripPlacesInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	db := database.DB

	var day model.TripDay
	if err := db.Where("trip_id = ? AND day_index = ?", trip.ID, dayIndex).First(&day).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Trip day not found", err)
	}

	var count int64
	db.Model(&model.TripPlace{}).
		Where("trip_day_id = ? AND id IN ?", day.ID, input.PlaceIDs).
		Count(&count)
	if count != int64(len(input.PlaceIDs)) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Some entries do not belong to this day", nil)
	}

	tx := db.Begin()
	for order, id := range input.PlaceIDs {
		if err := tx.Model(&model.TripPlace{}).
			Where("id = ?", id).
			Update("visit_order", order+1).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	tx.Commit()

	var places []model.TripPlace
	db.Preload("Place").Where("trip_day_id = ?", day.ID).Order("visit_order").Find(&places)
	return utils.SuccessResponse(c, fiber.StatusOK, places)
}

// ShareTrip issues (or rotates) the share token of a trip.
func ShareTrip(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputShareTrip").(model.ShareTripInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	token := hex.EncodeToString(buf)

	var expiresAt *time.Time
	if input.ExpiresInDays != nil {
		exp := time.Now().AddDate(0, 0, *input.ExpiresInDays)
		expiresAt = &exp
	}

	db := database.DB

	var share model.TripShare
	if err := db.Where("trip_id = ?", trip.ID).First(&share).Error; err == nil {
		share.Token = token
		share.ExpiresAt = expiresAt
		if err := db.Save(&share).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	} else {
		share = model.TripShare{TripID: trip.ID, Token: token, ExpiresAt: expiresAt}
		if err := db.Create(&share).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, share)
}

func RevokeTripShare(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	db := database.DB

	var share model.TripShare
	if err := db.Where("trip_id = ?", trip.ID).First(&share).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Trip is not shared", err)
	}

	if err := db.Where("trip_share_id = ?", share.ID).Delete(&model.TripShareAccess{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := db.Delete(&share).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Revoked")
}

// ResolveSharedTrip returns a read-only itinerary by share token. A logged-in
// viewer is recorded once per share; repeat visits do not add rows.
func ResolveSharedTrip(c *fiber.Ctx) error {
	token := c.Params("token")

	db := database.DB

	var share model.TripShare
	if err := db.Where("token = ?", token).First(&share).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Share link is invalid", err)
	}
	if share.ExpiresAt != nil && share.ExpiresAt.Before(time.Now()) {
		return utils.ErrorResponse(c, fiber.StatusGone, "Share link has expired", nil)
	}

	if customer, ok := c.Locals("customer").(*model.Customer); ok && customer != nil {
		access := model.TripShareAccess{TripShareID: share.ID, UserID: customer.ID}
		db.Where(&access).FirstOrCreate(&access)
	}

	var trip model.Trip
	if err := db.
		Preload("Days.Places.Place.Province").
		First(&trip, share.TripID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, trip)
}

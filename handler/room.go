package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/helper"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateRoomProperty(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	input, ok := c.Locals("inputCreateRoomProperty").(model.CreateRoomPropertyInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	if !helper.OwnsProperty(db, accountInfo.AccountId, isAdmin, input.PropertyID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not property owner"))
	}

	images, _ := json.Marshal(input.Images)
	roomProperty := model.RoomProperty{
		Name:          input.Name,
		Description:   input.Description,
		PricePerNight: input.PricePerNight,
		Capacity:      input.Capacity,
		Images:        images,
		PropertyID:    input.PropertyID,
	}

	tx := db.Begin()
	if err := tx.Create(&roomProperty).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if len(input.AmenityIDs) > 0 {
		var amenities []model.Amenity
		if err := tx.Where("id IN ?", input.AmenityIDs).Find(&amenities).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if err := tx.Model(&roomProperty).Association("Amenities").Replace(amenities); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	tx.Commit()

	db.Preload("Amenities").First(&roomProperty, roomProperty.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, roomProperty)
}

func EditRoomProperty(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	roomPropertyId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputEditRoomProperty").(model.EditRoomPropertyInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var roomProperty model.RoomProperty
	if err := db.First(&roomProperty, roomPropertyId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if !helper.OwnsProperty(db, accountInfo.AccountId, isAdmin, roomProperty.PropertyID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not property owner"))
	}

	if input.Name != nil {
		roomProperty.Name = *input.Name
	}
	if input.Description != nil {
		roomProperty.Description = *input.Description
	}
	if input.PricePerNight != nil {
		roomProperty.PricePerNight = *input.PricePerNight
	}
	if input.Capacity != nil {
		roomProperty.Capacity = *input.Capacity
	}
	if input.Images != nil {
		images, _ := json.Marshal(*input.Images)
		roomProperty.Images = images
	}

	if err := db.Save(&roomProperty).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.AmenityIDs != nil {
		var amenities []model.Amenity
		if len(*input.AmenityIDs) > 0 {
			if err := db.Where("id IN ?", *input.AmenityIDs).Find(&amenities).Error; err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
		}
		if err := db.Model(&roomProperty).Association("Amenities").Replace(amenities); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	db.Preload("Amenities").Preload("Rooms").First(&roomProperty, roomProperty.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, roomProperty)
}

func DeleteRoomProperty(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB
	for _, id := range input.IDs {
		var roomProperty model.RoomProperty
		if err := db.First(&roomProperty, id).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
		}
		if !helper.OwnsProperty(db, accountInfo.AccountId, isAdmin, roomProperty.PropertyID) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not property owner"))
		}
	}

	if err := db.Delete(&model.RoomProperty{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}

func ownsRoomProperty(accountInfo model.TokenClaim, isAdmin bool, roomPropertyId uint) (*model.RoomProperty, error) {
	db := database.DB
	var roomProperty model.RoomProperty
	if err := db.First(&roomProperty, roomPropertyId).Error; err != nil {
		return nil, err
	}
	if !helper.OwnsProperty(db, accountInfo.AccountId, isAdmin, roomProperty.PropertyID) {
		return nil, errors.New("not property owner")
	}
	return &roomProperty, nil
}

func CreateRoom(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	input, ok := c.Locals("inputCreateRoom").(model.CreateRoomInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	if _, err := ownsRoomProperty(accountInfo, isAdmin, input.RoomPropertyID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	room := model.Room{
		RoomNumber:     input.RoomNumber,
		Floor:          input.Floor,
		Status:         constants.ROOM_AVAILABLE,
		IsAvailable:    true,
		RoomPropertyID: input.RoomPropertyID,
	}

	if err := database.DB.Create(&room).Error; err != nil {
		// composite unique on (room_property_id, room_number)
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Room number already exists in this room type", err, "roomNumber")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, room)
}

// CreateRoomBatch generates a run of numbered rooms under one room type.
func CreateRoomBatch(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	input, ok := c.Locals("inputCreateRoomBatch").(model.CreateRoomBatchInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	if _, err := ownsRoomProperty(accountInfo, isAdmin, input.RoomPropertyID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	var rooms []model.Room
	for i := 0; i < input.Count; i++ {
		rooms = append(rooms, model.Room{
			RoomNumber:     fmt.Sprintf("%s%d", input.Prefix, input.StartNumber+i),
			Floor:          input.Floor,
			Status:         constants.ROOM_AVAILABLE,
			IsAvailable:    true,
			RoomPropertyID: input.RoomPropertyID,
		})
	}

	if err := database.DB.Create(&rooms).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Some room numbers already exist in this room type", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, rooms)
}

func EditRoom(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	roomId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputEditRoom").(model.EditRoomInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var room model.Room
	if err := db.First(&room, roomId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if _, err := ownsRoomProperty(accountInfo, isAdmin, room.RoomPropertyID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	if input.RoomNumber != nil {
		room.RoomNumber = *input.RoomNumber
	}
	if input.Floor != nil {
		room.Floor = *input.Floor
	}
	if input.Status != nil {
		room.Status = *input.Status
		// IsAvailable mirrors status; schema does not enforce the pairing
		room.IsAvailable = *input.Status == constants.ROOM_AVAILABLE
	}

	if err := db.Save(&room).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Room number already exists in this room type", err, "roomNumber")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, room)
}

func DeleteRoom(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB
	for _, id := range input.IDs {
		var room model.Room
		if err := db.First(&room, id).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
		}
		if _, err := ownsRoomProperty(accountInfo, isAdmin, room.RoomPropertyID); err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
		}
	}

	if err := db.Delete(&model.Room{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}

// GetRoomAvailability lists rooms of a room type that are free for the stay.
func GetRoomAvailability(c *fiber.Ctx) error {
	roomPropertyId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	checkInStr := c.Query("checkIn")
	checkOutStr := c.Query("checkOut")
	checkIn, err := utils.ParseDate(checkInStr)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "checkIn must be YYYY-MM-DD", err, "checkIn")
	}
	checkOut, err := utils.ParseDate(checkOutStr)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "checkOut must be YYYY-MM-DD", err, "checkOut")
	}
	if !checkIn.Before(checkOut) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "checkOut must be after checkIn", errors.New("empty range"))
	}

	db := database.DB

	var rooms []model.Room
	if err := db.Where("room_property_id = ? AND status = ?", roomPropertyId, constants.ROOM_AVAILABLE).
		Order("room_number").
		Find(&rooms).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	type RoomAvailability struct {
		model.Room
		Free bool `json:"free"`
	}

	result := make([]RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		conflicts, err := helper.RoomRangeConflicts(db, room.ID, checkIn, checkOut)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		result = append(result, RoomAvailability{Room: room, Free: conflicts == 0})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

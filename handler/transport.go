package handler

import (
	"encoding/json"
	"errors"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/helper"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func GetMyTransportations(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, isTransportOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isTransportOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not a transport owner"))
	}

	query := database.DB.Model(&model.Transportation{})
	if !isAdmin {
		query = query.Where("owner_id = ?", accountInfo.AccountId)
	}

	var companies []model.Transportation
	if err := query.
		Preload("Place").
		Preload("BusProperties.Buses.Seats").
		Order("id DESC").
		Find(&companies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, companies)
}

func CreateTransportation(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, isTransportOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isTransportOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not a transport owner"))
	}

	input, ok := c.Locals("inputCreateTransportation").(model.CreateTransportationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var place model.Place
	if err := db.First(&place, input.PlaceID).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Place does not exist", err, "placeId")
	}

	company := model.Transportation{
		Name:        input.Name,
		Slug:        helper.GenerateUniqueTransportationSlug(db, input.Name),
		Description: input.Description,
		Phone:       input.Phone,
		Active:      utils.Ptr(true),
		OwnerID:     accountInfo.AccountId,
		PlaceID:     input.PlaceID,
	}

	if err := db.Create(&company).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Place is already linked to a company", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, company)
}

func EditTransportation(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	companyId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputEditTransportation").(model.EditTransportationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	if !helper.OwnsTransportation(db, accountInfo.AccountId, isAdmin, uint(companyId)) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not company owner"))
	}

	var company model.Transportation
	if err := db.First(&company, companyId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if input.Name != nil && *input.Name != company.Name {
		company.Name = *input.Name
		company.Slug = helper.GenerateUniqueTransportationSlug(db, *input.Name)
	}
	if input.Description != nil {
		company.Description = *input.Description
	}
	if input.Phone != nil {
		company.Phone = *input.Phone
	}
	if input.Active != nil {
		company.Active = input.Active
	}

	if err := db.Save(&company).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, company)
}

func CreateBusProperty(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	input, ok := c.Locals("inputCreateBusProperty").(model.CreateBusPropertyInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	if !helper.OwnsTransportation(db, accountInfo.AccountId, isAdmin, input.TransportationID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not company owner"))
	}

	features, _ := json.Marshal(input.Features)
	busProperty := model.BusProperty{
		Name:             input.Name,
		Capacity:         input.SeatRows * input.SeatColumns * input.SeatLevels,
		PricePerSeat:     input.PricePerSeat,
		Features:         features,
		SeatRows:         input.SeatRows,
		SeatColumns:      input.SeatColumns,
		SeatLevels:       input.SeatLevels,
		TransportationID: input.TransportationID,
	}

	if err := db.Create(&busProperty).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, busProperty)
}

func EditBusProperty(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	busPropertyId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputEditBusProperty").(model.EditBusPropertyInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var busProperty model.BusProperty
	if err := db.First(&busProperty, busPropertyId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if !helper.OwnsTransportation(db, accountInfo.AccountId, isAdmin, busProperty.TransportationID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not company owner"))
	}

	if input.Name != nil {
		busProperty.Name = *input.Name
	}
	if input.PricePerSeat != nil {
		busProperty.PricePerSeat = *input.PricePerSeat
	}
	if input.Features != nil {
		features, _ := json.Marshal(*input.Features)
		busProperty.Features = features
	}

	if err := db.Save(&busProperty).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, busProperty)
}

// CreateBus registers a vehicle and generates its seats from the type layout.
func CreateBus(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	input, ok := c.Locals("inputCreateBus").(model.CreateBusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var busProperty model.BusProperty
	if err := db.First(&busProperty, input.BusPropertyID).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Bus type does not exist", err, "busPropertyId")
	}

	if !helper.OwnsTransportation(db, accountInfo.AccountId, isAdmin, busProperty.TransportationID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not company owner"))
	}

	tx := db.Begin()

	bus := model.Bus{
		LicensePlate:  input.LicensePlate,
		Status:        constants.BUS_ACTIVE,
		BusPropertyID: input.BusPropertyID,
	}
	if err := tx.Create(&bus).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "License plate already registered", err, "licensePlate")
	}

	if err := helper.GenerateBusSeats(tx, &bus, &busProperty); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot generate seats", err)
	}

	tx.Commit()

	db.Preload("Seats").First(&bus, bus.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, bus)
}

func EditBus(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	busId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputEditBus").(model.EditBusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var bus model.Bus
	if err := db.Preload("BusProperty").First(&bus, busId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if !helper.OwnsTransportation(db, accountInfo.AccountId, isAdmin, bus.BusProperty.TransportationID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not company owner"))
	}

	if input.LicensePlate != nil {
		bus.LicensePlate = *input.LicensePlate
	}
	if input.Status != nil {
		bus.Status = *input.Status
	}

	if err := db.Save(&bus).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "License plate already registered", err, "licensePlate")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, bus)
}

func GetBusSeats(c *fiber.Ctx) error {
	busId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	var seats []model.BusSeat
	if err := database.DB.Where("bus_id = ?", busId).
		Order("level, row, \"column\"").
		Find(&seats).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, seats)
}

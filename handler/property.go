package handler

import (
	"errors"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/helper"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetProperties(c *fiber.Ctx) error {
	db := database.DB
	var filter model.FilterProperty
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid filter", err)
	}

	query := db.Model(&model.Property{}).Where("active = ?", true)
	if filter.SearchKey != "" {
		query = query.Where("name ILIKE ?", "%"+filter.SearchKey+"%")
	}
	if filter.ProvinceID > 0 {
		query = query.Joins("JOIN places ON places.id = properties.place_id").
			Where("places.province_id = ?", filter.ProvinceID)
	}

	var totalCount int64
	query.Count(&totalCount)

	var properties []model.Property
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Place").
		Preload("Place.Province").
		Preload("Facilities").
		Preload("RoomProperties").
		Order("properties.id DESC").
		Find(&properties).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       properties,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

// GetMyProperties lists properties owned by the calling account.
func GetMyProperties(c *fiber.Ctx) error {
	accountInfo, isAdmin, isHotelOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isHotelOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not a hotel owner"))
	}

	query := database.DB.Model(&model.Property{})
	if !isAdmin {
		query = query.Where("owner_id = ?", accountInfo.AccountId)
	}

	var properties []model.Property
	if err := query.
		Preload("Place").
		Preload("Facilities").
		Preload("RoomProperties.Rooms").
		Preload("RoomProperties.Amenities").
		Order("id DESC").
		Find(&properties).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, properties)
}

func GetPropertyDetail(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var property model.Property
	if err := database.DB.
		Preload("Place.Province").
		Preload("Facilities").
		Preload("RoomProperties.Amenities").
		Preload("RoomProperties.Rooms").
		Where("slug = ? AND active = ?", slug, true).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, property)
}

func CreateProperty(c *fiber.Ctx) error {
	accountInfo, isAdmin, isHotelOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isHotelOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not a hotel owner"))
	}

	input, ok := c.Locals("inputCreateProperty").(model.CreatePropertyInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var place model.Place
	if err := db.First(&place, input.PlaceID).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Place does not exist", err, "placeId")
	}

	property := model.Property{
		Name:        input.Name,
		Slug:        helper.GenerateUniquePropertySlug(db, input.Name),
		Description: input.Description,
		Phone:       input.Phone,
		Active:      utils.Ptr(true),
		OwnerID:     accountInfo.AccountId,
		PlaceID:     input.PlaceID,
	}

	tx := db.Begin()
	if err := tx.Create(&property).Error; err != nil {
		tx.Rollback()
		// PlaceID is 1:1, a second property on the same place violates the index
		return utils.ErrorResponse(c, fiber.StatusConflict, "Place is already linked to a property", err)
	}

	if len(input.FacilityIDs) > 0 {
		var facilities []model.Facility
		if err := tx.Where("id IN ?", input.FacilityIDs).Find(&facilities).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if err := tx.Model(&property).Association("Facilities").Replace(facilities); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	tx.Commit()

	db.Preload("Place").Preload("Facilities").First(&property, property.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, property)
}

func EditProperty(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	propertyId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputEditProperty").(model.EditPropertyInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	if !helper.OwnsProperty(db, accountInfo.AccountId, isAdmin, uint(propertyId)) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not property owner"))
	}

	var property model.Property
	if err := db.First(&property, propertyId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if input.Name != nil && *input.Name != property.Name {
		property.Name = *input.Name
		property.Slug = helper.GenerateUniquePropertySlug(db, *input.Name)
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.Phone != nil {
		property.Phone = *input.Phone
	}
	if input.Active != nil {
		property.Active = input.Active
	}

	if err := db.Save(&property).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.FacilityIDs != nil {
		var facilities []model.Facility
		if len(*input.FacilityIDs) > 0 {
			if err := db.Where("id IN ?", *input.FacilityIDs).Find(&facilities).Error; err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
		}
		if err := db.Model(&property).Association("Facilities").Replace(facilities); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	db.Preload("Place").Preload("Facilities").First(&property, property.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, property)
}

func DeleteProperty(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB
	for _, id := range input.IDs {
		if !helper.OwnsProperty(db, accountInfo.AccountId, isAdmin, id) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not property owner"))
		}
	}

	if err := db.Delete(&model.Property{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}

func GetFacilities(c *fiber.Ctx) error {
	var facilities []model.Facility
	if err := database.DB.Order("name").Find(&facilities).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, facilities)
}

func GetAmenities(c *fiber.Ctx) error {
	var amenities []model.Amenity
	if err := database.DB.Order("name").Find(&amenities).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, amenities)
}

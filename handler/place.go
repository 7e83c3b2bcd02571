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
	"gorm.io/gorm"
)

func GetProvinces(c *fiber.Ctx) error {
	var provinces []model.Province
	if err := database.DB.Order("name").Find(&provinces).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, provinces)
}

func CreateProvince(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	var province model.Province
	if err := c.BodyParser(&province); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}
	if province.Name == "" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Name is required", errors.New("empty name"), "name")
	}

	if err := database.DB.Create(&province).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Province already exists", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, province)
}

// DeleteProvince removes the lookup row; places referencing it keep existing
// with province_id set to NULL by the FK.
func DeleteProvince(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	provinceId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	result := database.DB.Delete(&model.Province{}, provinceId)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, errors.New("province not found"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": provinceId})
}

func GetPlaceCategories(c *fiber.Ctx) error {
	var categories []model.PlaceCategory
	if err := database.DB.Order("name").Find(&categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func CreatePlaceCategory(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	var category model.PlaceCategory
	if err := c.BodyParser(&category); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}
	if category.Name == "" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Name is required", errors.New("empty name"), "name")
	}

	if err := database.DB.Create(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Category already exists", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, category)
}

func DeletePlaceCategory(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	categoryId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	result := database.DB.Delete(&model.PlaceCategory{}, categoryId)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, errors.New("category not found"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": categoryId})
}

func GetPlaces(c *fiber.Ctx) error {
	db := database.DB
	var filter model.FilterPlace
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid filter", err)
	}

	query := db.Model(&model.Place{})
	if filter.SearchKey != "" {
		query = query.Where("name ILIKE ?", "%"+filter.SearchKey+"%")
	}
	if filter.ProvinceID > 0 {
		query = query.Where("province_id = ?", filter.ProvinceID)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	var totalCount int64
	query.Count(&totalCount)

	var places model.Places
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Category").
		Preload("Province").
		Order("rating DESC, id").
		Find(&places).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       places,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetPlaceDetail(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var place model.Place
	if err := database.DB.
		Preload("Category").
		Preload("Province").
		Where("slug = ?", slug).
		First(&place).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, place)
}

func CreatePlace(c *fiber.Ctx) error {
	_, isAdmin, isHotelOwner, isTransportOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isHotelOwner && !isTransportOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not allowed"))
	}

	input, ok := c.Locals("inputCreatePlace").(model.CreatePlaceInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	images, _ := json.Marshal(input.Images)
	place := model.Place{
		Name:           input.Name,
		Slug:           helper.GenerateUniquePlaceSlug(db, input.Name),
		Description:    input.Description,
		OperatingHours: input.OperatingHours,
		HasEntryFee:    input.HasEntryFee,
		Images:         images,
		CategoryID:     input.CategoryID,
		ProvinceID:     input.ProvinceID,
	}

	if err := db.Create(&place).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, place)
}

func EditPlace(c *fiber.Ctx) error {
	_, isAdmin, isHotelOwner, isTransportOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isHotelOwner && !isTransportOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not allowed"))
	}

	placeId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputEditPlace").(model.EditPlaceInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var place model.Place
	if err := db.First(&place, placeId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if input.Name != nil && *input.Name != place.Name {
		place.Name = *input.Name
		place.Slug = helper.GenerateUniquePlaceSlug(db, *input.Name)
	}
	if input.Description != nil {
		place.Description = *input.Description
	}
	if input.Rating != nil {
		place.Rating = *input.Rating
	}
	if input.ReviewCount != nil {
		place.ReviewCount = *input.ReviewCount
	}
	if input.OperatingHours != nil {
		place.OperatingHours = *input.OperatingHours
	}
	if input.HasEntryFee != nil {
		place.HasEntryFee = *input.HasEntryFee
	}
	if input.Images != nil {
		images, _ := json.Marshal(*input.Images)
		place.Images = images
	}
	if input.CategoryID != nil {
		place.CategoryID = input.CategoryID
	}
	if input.ProvinceID != nil {
		place.ProvinceID = input.ProvinceID
	}

	if err := db.Save(&place).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, place)
}

func DeletePlace(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	if err := database.DB.Delete(&model.Place{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}

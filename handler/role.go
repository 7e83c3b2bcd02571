package handler

import (
	"errors"
	"sort"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/helper"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func GetRoles(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	var roles []model.Role
	if err := database.DB.Preload("Permissions").Order("id").Find(&roles).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, roles)
}

// GetPermissionGroups returns permissions grouped by resource for the role form.
func GetPermissionGroups(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	var permissions []model.Permission
	if err := database.DB.Order("resource, id").Find(&permissions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	byResource := make(map[string][]model.Permission)
	for _, p := range permissions {
		byResource[p.Resource] = append(byResource[p.Resource], p)
	}

	resources := make([]string, 0, len(byResource))
	for r := range byResource {
		resources = append(resources, r)
	}
	sort.Strings(resources)

	groups := make([]model.PermissionGroup, 0, len(resources))
	for _, r := range resources {
		groups = append(groups, model.PermissionGroup{Resource: r, Permissions: byResource[r]})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, groups)
}

func CreateRole(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	input, ok := c.Locals("inputCreateRole").(model.CreateRoleInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	role := model.Role{Name: input.Name, Description: input.Description}
	if err := db.Create(&role).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Role name already exists", err)
	}

	if len(input.PermissionIDs) > 0 {
		var permissions []model.Permission
		if err := db.Where("id IN ?", input.PermissionIDs).Find(&permissions).Error; err == nil {
			db.Model(&role).Association("Permissions").Replace(permissions)
		}
	}

	db.Preload("Permissions").First(&role, role.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, role)
}

func UpdateRole(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	roleId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputUpdateRole").(model.UpdateRoleInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var role model.Role
	if err := db.First(&role, roleId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if role.Name == constants.ROLE_SUPERADMIN_NAME && input.Name != nil && *input.Name != role.Name {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "The superadmin role cannot be renamed", errors.New("superadmin protected"))
	}

	if input.Name != nil {
		role.Name = *input.Name
	}
	if input.Description != nil {
		role.Description = *input.Description
	}
	if err := db.Save(&role).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.PermissionIDs != nil {
		var permissions []model.Permission
		if len(*input.PermissionIDs) > 0 {
			if err := db.Where("id IN ?", *input.PermissionIDs).Find(&permissions).Error; err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
		}
		if err := db.Model(&role).Association("Permissions").Replace(permissions); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	db.Preload("Permissions").First(&role, role.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, role)
}

func DeleteRole(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	roleId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var role model.Role
	if err := db.First(&role, roleId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	// the seeded superadmin role is protected at the API level
	if role.Name == constants.ROLE_SUPERADMIN_NAME {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "The superadmin role cannot be deleted", errors.New("superadmin protected"))
	}

	db.Model(&role).Association("Permissions").Clear()
	if err := db.Delete(&role).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": role.ID})
}

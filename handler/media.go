package handler

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"sort"
	"strings"
	"time"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/helper"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// GenerateSignature signs upload parameters so the frontend can upload
// straight to cloudinary without the API key secret.
func GenerateSignature(c *fiber.Ctx) error {
	_, isAdmin, isHotelOwner, isTransportOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isHotelOwner && !isTransportOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, nil)
	}

	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // parsed but never signed
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid params", err)
	}

	timestamp := time.Now().Unix()

	paramMap := map[string]string{
		"timestamp": fmt.Sprintf("%d", timestamp),
	}
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadPlaceImages pushes the attached files to cloudinary and appends
// their URLs to the place's image list.
func UploadPlaceImages(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	placeId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	var place model.Place
	if err := database.DB.First(&place, placeId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Multipart form required", err)
	}
	files := form.File["images"]
	if len(files) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No images attached", nil)
	}

	cld := helper.InitCloudinary()

	var urls []string
	if len(place.Images) > 0 {
		if err := json.Unmarshal(place.Images, &urls); err != nil {
			urls = nil
		}
	}

	var failed []fiber.Map
	uploadOne := func(idx int, file *multipart.FileHeader) {
		if file.Size > 5*1024*1024 {
			failed = append(failed, fiber.Map{"filename": file.Filename, "error": "File exceeds 5MB"})
			return
		}
		f, err := file.Open()
		if err != nil {
			failed = append(failed, fiber.Map{"filename": file.Filename, "error": "Cannot open file"})
			return
		}
		defer f.Close()

		result, err := cld.Upload.Upload(context.Background(), f, uploader.UploadParams{
			Folder:       "places",
			PublicID:     fmt.Sprintf("place_%d_%d_%d", place.ID, time.Now().UnixNano(), idx),
			ResourceType: "image",
		})
		if err != nil {
			failed = append(failed, fiber.Map{"filename": file.Filename, "error": "Upload failed"})
			return
		}
		urls = append(urls, result.SecureURL)
	}
	for idx, file := range files {
		uploadOne(idx, file)
	}

	images, _ := json.Marshal(urls)
	if err := database.DB.Model(&place).Update("images", images).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"images":       urls,
		"failedFiles":  failed,
		"successCount": len(files) - len(failed),
	})
}

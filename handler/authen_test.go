package handler

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/helper"
	"travel_booking/middleware"
	"travel_booking/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, username, password, role string) model.Account {
	t.Helper()
	hash, err := helper.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	account := model.Account{
		Username: username,
		Password: hash,
		Active:   true,
		Role:     role,
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func TestLoginResponseEnvelope(t *testing.T) {
	db := setupHandlerTestDB(t)
	os.Setenv("JWT_SECRET", "test-secret")
	seedAccount(t, db, "admin", "secret123", constants.ROLE_ADMIN)

	app := fiber.New()
	app.Post("/login", Login)

	req := httptest.NewRequest("POST", "/login",
		strings.NewReader(`{"username":"admin","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["status"] != "success" {
		t.Fatalf("status field = %v, want success", body["status"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data field missing, body keys: %v", body)
	}
	if token, _ := data["token"].(string); token == "" {
		t.Fatal("data.token must carry the access token")
	}
	if refresh, _ := data["refreshToken"].(string); refresh == "" {
		t.Fatal("data.refreshToken must carry the refresh token")
	}
	account, ok := data["account"].(map[string]interface{})
	if !ok {
		t.Fatal("data.account must carry the account summary")
	}
	if account["username"] != "admin" {
		t.Fatalf("account.username = %v, want admin", account["username"])
	}
}

func TestCloudinarySignatureEnvelope(t *testing.T) {
	db := setupHandlerTestDB(t)
	os.Setenv("JWT_SECRET", "test-secret")
	admin := seedAccount(t, db, "admin", "secret123", constants.ROLE_ADMIN)

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		AccountId: admin.ID,
		Username:  admin.Username,
		Role:      admin.Role,
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	app := fiber.New()
	app.Post("/cloudinary-signature", middleware.Protected(), GenerateSignature)

	req := httptest.NewRequest("POST", "/cloudinary-signature",
		strings.NewReader(`{"folder":"places"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("signature request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["status"] != "success" {
		t.Fatalf("status field = %v, want success", body["status"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data field missing, body keys: %v", body)
	}
	if sig, _ := data["signature"].(string); sig == "" {
		t.Fatal("data.signature must carry the signed params")
	}
	if _, ok := data["timestamp"]; !ok {
		t.Fatal("data.timestamp must be present")
	}
}

func TestAccessTokenSecretReadAtCallTime(t *testing.T) {
	os.Setenv("JWT_SECRET", "first-secret")
	token, err := helper.GenerateAccessToken(model.TokenClaim{AccountId: 1, Username: "a"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := helper.ParseToken(token); err != nil {
		t.Fatalf("parse with same secret: %v", err)
	}

	// changing the env var must take effect on the next call
	os.Setenv("JWT_SECRET", "second-secret")
	if parsed, err := helper.ParseToken(token); err == nil && parsed.Valid {
		t.Fatal("token signed under the old secret must not verify under the new one")
	}
	token2, err := helper.GenerateAccessToken(model.TokenClaim{AccountId: 1, Username: "a"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	parsed, err := helper.ParseToken(token2)
	if err != nil || !parsed.Valid {
		t.Fatalf("token signed under the new secret must verify: %v", err)
	}
}

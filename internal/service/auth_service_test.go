package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nivran-shop/storefront-api/internal/config"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	service := NewAuthService(repository.NewAdminRepository(db), config.JWTConfig{
		SecretKey:   "unit-test-secret-key-0123456789abcdef",
		ExpireHours: 1,
	})
	return service, db
}

func createAdmin(t *testing.T, db *gorm.DB, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	if err := db.Create(&models.Admin{Username: username, PasswordHash: string(hash)}).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
}

func TestLoginAndParseToken(t *testing.T) {
	service, db := setupAuthTest(t)
	createAdmin(t, db, "admin", "s3cret-pass")

	token, err := service.Login("admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := service.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.Username != "admin" || claims.AdminID == 0 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service, db := setupAuthTest(t)
	createAdmin(t, db, "admin", "s3cret-pass")

	// 用户不存在与密码错误返回同一个错误
	if _, err := service.Login("nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := service.Login("admin", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	service, db := setupAuthTest(t)
	createAdmin(t, db, "admin", "s3cret-pass")

	other := NewAuthService(nil, config.JWTConfig{SecretKey: "another-secret-key-entirely-different"})
	token, err := service.Login("admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := other.ParseToken(token); err == nil {
		t.Fatalf("expected parse to fail with a different secret")
	}
	if _, err := service.ParseToken("not-a-token"); err == nil {
		t.Fatalf("expected parse to fail for garbage input")
	}
}

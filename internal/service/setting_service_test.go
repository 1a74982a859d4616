package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSettingTest(t *testing.T) (*SettingService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewSettingService(repository.NewSettingRepository(db)), db
}

func TestFreeShippingThresholdFromSettings(t *testing.T) {
	service, db := setupSettingTest(t)
	mustCreate(t, db, &models.Setting{
		Key: constants.SettingKeyShippingConfig,
		ValueJSON: models.JSON{
			constants.SettingFieldFreeShippingThreshold: float64(49),
		},
	})

	result := service.FreeShippingThreshold()
	if result.Degraded {
		t.Fatalf("expected non-degraded read, reason=%s", result.Reason)
	}
	if result.Value.String() != "49.00" {
		t.Fatalf("expected threshold 49.00, got %s", result.Value.String())
	}
}

func TestFreeShippingThresholdDegradesWhenMissing(t *testing.T) {
	service, _ := setupSettingTest(t)

	result := service.FreeShippingThreshold()
	if !result.Degraded {
		t.Fatalf("expected degraded read when setting row is missing")
	}
	if result.Reason != "settings_missing" {
		t.Fatalf("expected reason settings_missing, got %s", result.Reason)
	}
	if result.Value.String() != "69.00" {
		t.Fatalf("expected default threshold 69.00, got %s", result.Value.String())
	}
}

func TestFreeShippingThresholdDegradesOnBadField(t *testing.T) {
	service, db := setupSettingTest(t)
	mustCreate(t, db, &models.Setting{
		Key: constants.SettingKeyShippingConfig,
		ValueJSON: models.JSON{
			constants.SettingFieldFreeShippingThreshold: "not-a-number",
		},
	})

	result := service.FreeShippingThreshold()
	if !result.Degraded || result.Reason != "settings_field_invalid" {
		t.Fatalf("expected degraded read with settings_field_invalid, got %+v", result)
	}
	if result.Value.String() != "69.00" {
		t.Fatalf("expected default threshold 69.00, got %s", result.Value.String())
	}
}

func TestPaymentExpireMinutesFallback(t *testing.T) {
	service, db := setupSettingTest(t)

	if got := service.PaymentExpireMinutes(45); got != 45 {
		t.Fatalf("expected configured default 45, got %d", got)
	}
	if got := service.PaymentExpireMinutes(0); got != constants.DefaultOrderPaymentExpireMinutes {
		t.Fatalf("expected built-in default, got %d", got)
	}

	mustCreate(t, db, &models.Setting{
		Key: constants.SettingKeyOrderConfig,
		ValueJSON: models.JSON{
			constants.SettingFieldPaymentExpireMinutes: float64(30),
		},
	})
	if got := service.PaymentExpireMinutes(45); got != 30 {
		t.Fatalf("expected stored value 30, got %d", got)
	}
}

func TestSettingUpdateUpserts(t *testing.T) {
	service, _ := setupSettingTest(t)

	if err := service.Update("store_info", models.JSON{"name": "Nivran"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := service.Update("store_info", models.JSON{"name": "Nivran Amman"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	stored, err := service.Get("store_info")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored == nil || stored.ValueJSON["name"] != "Nivran Amman" {
		t.Fatalf("expected upserted value, got %+v", stored)
	}

	settings, err := service.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(settings) != 1 {
		t.Fatalf("expected a single setting row, got %d", len(settings))
	}
}

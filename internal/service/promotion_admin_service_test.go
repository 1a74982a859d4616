package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPromotionAdminTest(t *testing.T) (*PromotionAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewPromotionAdminService(repository.NewPromotionRepository(db)), db
}

func TestCreatePromotionNormalization(t *testing.T) {
	service, _ := setupPromotionAdminTest(t)

	// code 类活动缺码
	if err := service.Create(codePromo("X", func(p *models.Promotion) { p.Code = nil })); !errors.Is(err, ErrPromoCodeRequired) {
		t.Fatalf("expected ErrPromoCodeRequired, got %v", err)
	}
	blank := "   "
	if err := service.Create(codePromo("X", func(p *models.Promotion) { p.Code = &blank })); !errors.Is(err, ErrPromoCodeRequired) {
		t.Fatalf("expected ErrPromoCodeRequired for blank code, got %v", err)
	}

	// auto 类活动的码被清空
	stray := "STRAY"
	auto := autoPromo("auto deal", 1, 2, func(p *models.Promotion) { p.Code = &stray })
	if err := service.Create(auto); err != nil {
		t.Fatalf("create auto promotion failed: %v", err)
	}
	if auto.Code != nil {
		t.Fatalf("expected auto promotion code cleared, got %v", *auto.Code)
	}

	// 未知类型与非法折扣
	if err := service.Create(&models.Promotion{Kind: "flash", Title: "x", DiscountType: constants.DiscountTypeFixed, DiscountValue: models.NewMoneyFromFloat(1)}); !errors.Is(err, ErrPromoInvalid) {
		t.Fatalf("expected ErrPromoInvalid for unknown kind, got %v", err)
	}
	if err := service.Create(autoPromo("bad type", 1, 2, func(p *models.Promotion) { p.DiscountType = "bogo" })); !errors.Is(err, ErrPromoInvalid) {
		t.Fatalf("expected ErrPromoInvalid for unknown discount type, got %v", err)
	}
	if err := service.Create(autoPromo("zero value", 1, 0, nil)); !errors.Is(err, ErrPromoInvalid) {
		t.Fatalf("expected ErrPromoInvalid for zero discount value, got %v", err)
	}
}

func TestCreatePromotionCodeConflict(t *testing.T) {
	service, _ := setupPromotionAdminTest(t)

	if err := service.Create(codePromo("WELCOME10", nil)); err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	if err := service.Create(codePromo("WELCOME10", nil)); !errors.Is(err, ErrPromoCodeConflict) {
		t.Fatalf("expected ErrPromoCodeConflict, got %v", err)
	}
}

func TestUpdatePromotionPreservesUsedCount(t *testing.T) {
	service, db := setupPromotionAdminTest(t)

	promo := codePromo("WELCOME10", nil)
	if err := service.Create(promo); err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	if err := db.Model(&models.Promotion{}).Where("id = ?", promo.ID).
		Update("used_count", 7).Error; err != nil {
		t.Fatalf("bump used_count failed: %v", err)
	}

	edited := codePromo("WELCOME10", func(p *models.Promotion) {
		p.ID = promo.ID
		p.Title = "Renamed"
		p.UsedCount = 0
	})
	if err := service.Update(edited); err != nil {
		t.Fatalf("update promotion failed: %v", err)
	}

	stored, err := service.Get(promo.ID)
	if err != nil {
		t.Fatalf("get promotion failed: %v", err)
	}
	if stored.Title != "Renamed" {
		t.Fatalf("expected title updated, got %s", stored.Title)
	}
	if stored.UsedCount != 7 {
		t.Fatalf("expected used_count preserved at 7, got %d", stored.UsedCount)
	}
}

func TestDeletePromotionNotFound(t *testing.T) {
	service, _ := setupPromotionAdminTest(t)
	if err := service.Delete(12345); !errors.Is(err, ErrPromoNotFound) {
		t.Fatalf("expected ErrPromoNotFound, got %v", err)
	}
}

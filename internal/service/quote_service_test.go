package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupQuoteTest(t *testing.T) (*QuoteService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.Promotion{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	pricing := NewPricingService(
		repository.NewProductRepository(db),
		repository.NewProductVariantRepository(db),
	)
	promotion := NewPromotionService(repository.NewPromotionRepository(db))
	setting := NewSettingService(repository.NewSettingRepository(db))
	return NewQuoteService(pricing, promotion, setting), db
}

func seedQuoteCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustCreate(t, db, &models.Product{
		Slug:        "nivran-calm-100ml",
		Title:       "Nivran Calm 100ml",
		CategoryKey: "perfume",
		PriceAmount: models.NewMoneyFromFloat(18),
		IsActive:    true,
	})
	mustCreate(t, db, &models.Setting{
		Key: constants.SettingKeyShippingConfig,
		ValueJSON: models.JSON{
			constants.SettingFieldFreeShippingThreshold: float64(69),
		},
	})
}

func TestQuoteWithoutDiscount(t *testing.T) {
	service, db := setupQuoteTest(t)
	seedQuoteCatalog(t, db)

	quote, err := service.Quote([]CartItem{{Slug: "nivran-calm-100ml", Quantity: 1}}, "", "")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	totals := quote.Totals
	if totals.SubtotalBeforeDiscount.String() != "18.00" {
		t.Fatalf("expected subtotal 18.00, got %s", totals.SubtotalBeforeDiscount.String())
	}
	if totals.Discount.String() != "0.00" {
		t.Fatalf("expected discount 0.00, got %s", totals.Discount.String())
	}
	if totals.Shipping.String() != "3.50" {
		t.Fatalf("expected shipping 3.50, got %s", totals.Shipping.String())
	}
	if totals.Total.String() != "21.50" {
		t.Fatalf("expected total 21.50, got %s", totals.Total.String())
	}
	if quote.Discount.Source != constants.DiscountSourceNone {
		t.Fatalf("expected source none, got %s", quote.Discount.Source)
	}
	if quote.DegradedThreshold {
		t.Fatalf("expected threshold read from settings, got degraded")
	}
}

func TestQuoteWithPercentCode(t *testing.T) {
	service, db := setupQuoteTest(t)
	seedQuoteCatalog(t, db)
	mustCreate(t, db, codePromo("WELCOME10", nil))

	quote, err := service.Quote([]CartItem{{Slug: "nivran-calm-100ml", Quantity: 1}}, "code", "WELCOME10")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	totals := quote.Totals
	if totals.Discount.String() != "1.80" {
		t.Fatalf("expected discount 1.80, got %s", totals.Discount.String())
	}
	if totals.SubtotalAfterDiscount.String() != "16.20" {
		t.Fatalf("expected subtotal after 16.20, got %s", totals.SubtotalAfterDiscount.String())
	}
	if totals.Total.String() != "19.70" {
		t.Fatalf("expected total 19.70, got %s", totals.Total.String())
	}
	if quote.Discount.Source != constants.DiscountSourceCode {
		t.Fatalf("expected source code, got %s", quote.Discount.Source)
	}
	if quote.Discount.Code == nil || *quote.Discount.Code != "WELCOME10" {
		t.Fatalf("expected code WELCOME10 echoed, got %v", quote.Discount.Code)
	}
	if quote.Discount.Meta == nil || quote.Discount.Meta.DiscountType != constants.DiscountTypePercent {
		t.Fatalf("expected percent promo meta, got %+v", quote.Discount.Meta)
	}
}

func TestQuoteCodePushesOverFreeShippingLine(t *testing.T) {
	service, db := setupQuoteTest(t)
	seedQuoteCatalog(t, db)
	mustCreate(t, db, &models.Product{
		Slug:        "amber-oud-50ml",
		Title:       "Amber Oud 50ml",
		CategoryKey: "perfume",
		PriceAmount: models.NewMoneyFromFloat(75),
		IsActive:    true,
	})
	mustCreate(t, db, codePromo("FIVE", func(p *models.Promotion) {
		p.DiscountType = constants.DiscountTypeFixed
		p.DiscountValue = models.NewMoneyFromFloat(5)
	}))

	// 折后 70.00 >= 69，免运费判定在折扣之后
	quote, err := service.Quote([]CartItem{{Slug: "amber-oud-50ml", Quantity: 1}}, "CODE", "FIVE")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if quote.Totals.Shipping.String() != "0.00" {
		t.Fatalf("expected free shipping after discount, got %s", quote.Totals.Shipping.String())
	}
	if quote.Totals.Total.String() != "70.00" {
		t.Fatalf("expected total 70.00, got %s", quote.Totals.Total.String())
	}
}

func TestQuoteCodeInAutoModeRejected(t *testing.T) {
	service, db := setupQuoteTest(t)
	seedQuoteCatalog(t, db)
	mustCreate(t, db, codePromo("WELCOME10", nil))

	quote, err := service.Quote([]CartItem{{Slug: "nivran-calm-100ml", Quantity: 1}}, "auto", "WELCOME10")
	if !errors.Is(err, ErrDiscountModeUnsupported) {
		t.Fatalf("expected ErrDiscountModeUnsupported, got %v", err)
	}
	// 附带的报价必须是零折扣版本
	if quote == nil {
		t.Fatalf("expected fallback quote alongside the error")
	}
	if quote.Totals.Discount.String() != "0.00" {
		t.Fatalf("expected zero discount in fallback quote, got %s", quote.Totals.Discount.String())
	}
	if quote.Discount.Source != constants.DiscountSourceNone {
		t.Fatalf("expected source none in fallback quote, got %s", quote.Discount.Source)
	}
}

func TestQuoteUnknownModeRejected(t *testing.T) {
	service, db := setupQuoteTest(t)
	seedQuoteCatalog(t, db)

	quote, err := service.Quote([]CartItem{{Slug: "nivran-calm-100ml", Quantity: 1}}, "LOYALTY", "")
	if !errors.Is(err, ErrDiscountModeUnsupported) {
		t.Fatalf("expected ErrDiscountModeUnsupported, got %v", err)
	}
	if quote == nil || quote.Totals.Total.String() != "21.50" {
		t.Fatalf("expected fallback quote with total 21.50, got %+v", quote)
	}
}

func TestQuoteCodeModeWithoutCode(t *testing.T) {
	service, db := setupQuoteTest(t)
	seedQuoteCatalog(t, db)

	quote, err := service.Quote([]CartItem{{Slug: "nivran-calm-100ml", Quantity: 1}}, "code", "   ")
	if !errors.Is(err, ErrPromoCodeRequired) {
		t.Fatalf("expected ErrPromoCodeRequired for blank code, got %v", err)
	}
	if got := ReasonForError(err); got != ReasonPromoInvalid {
		t.Fatalf("expected reason %s, got %s", ReasonPromoInvalid, got)
	}
	if quote == nil || quote.Totals.Discount.String() != "0.00" {
		t.Fatalf("expected zero-discount fallback quote, got %+v", quote)
	}
}

func TestQuoteExpiredCodeReturnsFallbackQuote(t *testing.T) {
	service, db := setupQuoteTest(t)
	seedQuoteCatalog(t, db)
	past := time.Now().Add(-time.Hour)
	mustCreate(t, db, codePromo("OLD10", func(p *models.Promotion) { p.EndsAt = &past }))

	quote, err := service.Quote([]CartItem{{Slug: "nivran-calm-100ml", Quantity: 1}}, "code", "OLD10")
	if !errors.Is(err, ErrPromoExpired) {
		t.Fatalf("expected ErrPromoExpired, got %v", err)
	}
	if quote == nil || quote.Totals.Discount.String() != "0.00" {
		t.Fatalf("expected zero-discount fallback quote, got %+v", quote)
	}
}

func TestQuoteAutoModePicksWinnerSilently(t *testing.T) {
	service, db := setupQuoteTest(t)
	seedQuoteCatalog(t, db)
	mustCreate(t, db, autoPromo("two off perfume", 5, 2, func(p *models.Promotion) {
		p.CategoryScope = models.StringArray{"perfume"}
	}))
	mustCreate(t, db, autoPromo("needs 100", 9, 10, func(p *models.Promotion) {
		p.MinOrder = models.NewMoneyFromFloat(100)
	}))

	quote, err := service.Quote([]CartItem{{Slug: "nivran-calm-100ml", Quantity: 1}}, "AUTO", "")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if quote.Discount.Source != constants.DiscountSourceAuto {
		t.Fatalf("expected source auto, got %s", quote.Discount.Source)
	}
	if quote.Totals.Discount.String() != "2.00" {
		t.Fatalf("expected discount 2.00, got %s", quote.Totals.Discount.String())
	}
	if quote.Totals.Total.String() != "19.50" {
		t.Fatalf("expected total 19.50, got %s", quote.Totals.Total.String())
	}
}

func TestQuoteEmptyCart(t *testing.T) {
	service, db := setupQuoteTest(t)
	seedQuoteCatalog(t, db)

	quote, err := service.Quote(nil, "", "")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(quote.Lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(quote.Lines))
	}
	if quote.Totals.Shipping.String() != "0.00" || quote.Totals.Total.String() != "0.00" {
		t.Fatalf("expected zero shipping and total, got %s / %s",
			quote.Totals.Shipping.String(), quote.Totals.Total.String())
	}
}

func TestQuoteMissingShippingSettingFallsBack(t *testing.T) {
	service, db := setupQuoteTest(t)
	mustCreate(t, db, &models.Product{
		Slug:        "soap-bar",
		Title:       "Soap Bar",
		CategoryKey: "body-care",
		PriceAmount: models.NewMoneyFromFloat(3.25),
		IsActive:    true,
	})

	quote, err := service.Quote([]CartItem{{Slug: "soap-bar", Quantity: 1}}, "", "")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if !quote.DegradedThreshold {
		t.Fatalf("expected degraded threshold marker")
	}
	if quote.Totals.FreeShippingThreshold.String() != "69.00" {
		t.Fatalf("expected default threshold 69.00, got %s", quote.Totals.FreeShippingThreshold.String())
	}
}

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

func setupPromotionTest(t *testing.T) (*PromotionService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewPromotionService(repository.NewPromotionRepository(db)), db
}

func perfumeLine(slug string, amount float64) models.PricedLine {
	return models.PricedLine{
		Slug:        slug,
		Title:       slug,
		CategoryKey: "perfume",
		Quantity:    1,
		UnitPrice:   models.NewMoneyFromFloat(amount),
		LineTotal:   models.NewMoneyFromFloat(amount),
	}
}

func linesSubtotal(lines []models.PricedLine) models.Money {
	total := models.ZeroMoney()
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	return total
}

func codePromo(code string, mutate func(*models.Promotion)) *models.Promotion {
	promo := &models.Promotion{
		Kind:          constants.PromotionKindCode,
		Code:          &code,
		Title:         "Test " + code,
		DiscountType:  constants.DiscountTypePercent,
		DiscountValue: models.NewMoneyFromFloat(10),
		IsActive:      true,
	}
	if mutate != nil {
		mutate(promo)
	}
	return promo
}

func TestEvaluateCodeValidationOrder(t *testing.T) {
	service, db := setupPromotionTest(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	limit := 5

	// 停用的活动即使同时已过期，也先报停用
	inactiveExpired := codePromo("OFF-A", func(p *models.Promotion) {
		p.IsActive = false
		p.EndsAt = &past
	})
	mustCreate(t, db, inactiveExpired)
	inactiveExpired.IsActive = false
	if err := db.Save(inactiveExpired).Error; err != nil {
		t.Fatalf("update promotion failed: %v", err)
	}

	mustCreate(t, db, codePromo("OFF-B", func(p *models.Promotion) { p.StartsAt = &future }))
	mustCreate(t, db, codePromo("OFF-C", func(p *models.Promotion) { p.EndsAt = &past }))
	mustCreate(t, db, codePromo("OFF-D", func(p *models.Promotion) {
		p.UsageLimit = &limit
		p.UsedCount = 5
	}))
	mustCreate(t, db, codePromo("OFF-E", func(p *models.Promotion) {
		p.MinOrder = models.NewMoneyFromFloat(100)
	}))
	mustCreate(t, db, codePromo("OFF-F", func(p *models.Promotion) {
		p.CategoryScope = models.StringArray{"body-care"}
	}))

	lines := []models.PricedLine{perfumeLine("calm", 18)}
	subtotal := linesSubtotal(lines)

	cases := []struct {
		code string
		want error
	}{
		{"NO-SUCH-CODE", ErrPromoNotFound},
		{"OFF-A", ErrPromoInactive},
		{"OFF-B", ErrPromoNotStarted},
		{"OFF-C", ErrPromoExpired},
		{"OFF-D", ErrPromoUsageLimit},
		{"OFF-E", ErrPromoMinOrder},
		{"OFF-F", ErrPromoCategoryMismatch},
	}
	for _, tc := range cases {
		if _, err := service.EvaluateCode(tc.code, lines, subtotal); !errors.Is(err, tc.want) {
			t.Fatalf("code %s: expected %v, got %v", tc.code, tc.want, err)
		}
	}
}

func TestEvaluateCodePercentDiscount(t *testing.T) {
	service, db := setupPromotionTest(t)
	mustCreate(t, db, codePromo("WELCOME10", nil))

	lines := []models.PricedLine{perfumeLine("calm", 18)}
	result, err := service.EvaluateCode("WELCOME10", lines, linesSubtotal(lines))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result.Discount.String() != "1.80" {
		t.Fatalf("expected discount 1.80, got %s", result.Discount.String())
	}
	if result.SubtotalAfterDiscount.String() != "16.20" {
		t.Fatalf("expected subtotal after 16.20, got %s", result.SubtotalAfterDiscount.String())
	}
	if result.PromoCode == nil || *result.PromoCode != "WELCOME10" {
		t.Fatalf("expected promo code echoed back, got %v", result.PromoCode)
	}
}

func TestEvaluateCodeFixedDiscountClampedToEligible(t *testing.T) {
	service, db := setupPromotionTest(t)
	mustCreate(t, db, codePromo("FLAT50", func(p *models.Promotion) {
		p.DiscountType = constants.DiscountTypeFixed
		p.DiscountValue = models.NewMoneyFromFloat(50)
		p.SlugScope = models.StringArray{"calm"}
	}))

	lines := []models.PricedLine{
		perfumeLine("calm", 18),
		perfumeLine("amber", 32),
	}
	result, err := service.EvaluateCode("FLAT50", lines, linesSubtotal(lines))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	// 定额 50 收敛到可享小计 18：不会吃掉范围之外的行
	if result.Discount.String() != "18.00" {
		t.Fatalf("expected discount clamped to 18.00, got %s", result.Discount.String())
	}
	if result.EligibleSubtotal.String() != "18.00" {
		t.Fatalf("expected eligible subtotal 18.00, got %s", result.EligibleSubtotal.String())
	}
	if result.SubtotalAfterDiscount.String() != "32.00" {
		t.Fatalf("expected subtotal after 32.00, got %s", result.SubtotalAfterDiscount.String())
	}
}

func TestEvaluateCodeScopeUnion(t *testing.T) {
	service, db := setupPromotionTest(t)
	mustCreate(t, db, codePromo("UNION10", func(p *models.Promotion) {
		p.CategoryScope = models.StringArray{"perfume"}
		p.SlugScope = models.StringArray{"soap-bar"}
	}))

	soap := models.PricedLine{
		Slug:        "soap-bar",
		CategoryKey: "body-care",
		Quantity:    1,
		UnitPrice:   models.NewMoneyFromFloat(4),
		LineTotal:   models.NewMoneyFromFloat(4),
	}
	mist := models.PricedLine{
		Slug:        "room-mist",
		CategoryKey: "home-fragrance",
		Quantity:    1,
		UnitPrice:   models.NewMoneyFromFloat(10),
		LineTotal:   models.NewMoneyFromFloat(10),
	}
	lines := []models.PricedLine{perfumeLine("calm", 18), soap, mist}

	result, err := service.EvaluateCode("UNION10", lines, linesSubtotal(lines))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	// 命中任一范围即可享：18(分类) + 4(slug)，10 不命中
	if result.EligibleSubtotal.String() != "22.00" {
		t.Fatalf("expected eligible subtotal 22.00, got %s", result.EligibleSubtotal.String())
	}
	if result.Discount.String() != "2.20" {
		t.Fatalf("expected discount 2.20, got %s", result.Discount.String())
	}
}

func TestEvaluateCodeEmptyScopeMatchesNothing(t *testing.T) {
	service, db := setupPromotionTest(t)
	mustCreate(t, db, codePromo("EMPTY", func(p *models.Promotion) {
		p.CategoryScope = models.StringArray{}
	}))

	lines := []models.PricedLine{perfumeLine("calm", 18)}
	if _, err := service.EvaluateCode("EMPTY", lines, linesSubtotal(lines)); !errors.Is(err, ErrPromoCategoryMismatch) {
		t.Fatalf("expected ErrPromoCategoryMismatch for empty scope, got %v", err)
	}
}

func autoPromo(title string, priority int, value float64, mutate func(*models.Promotion)) *models.Promotion {
	promo := &models.Promotion{
		Kind:          constants.PromotionKindAuto,
		Title:         title,
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromFloat(value),
		Priority:      priority,
		IsActive:      true,
	}
	if mutate != nil {
		mutate(promo)
	}
	return promo
}

func TestEvaluateAutoPicksPriorityWinner(t *testing.T) {
	service, db := setupPromotionTest(t)
	mustCreate(t, db, autoPromo("low priority big discount", 1, 10, nil))
	winner := autoPromo("high priority small discount", 5, 2, nil)
	mustCreate(t, db, winner)

	lines := []models.PricedLine{perfumeLine("calm", 18)}
	result, err := service.EvaluateAuto(lines, linesSubtotal(lines))
	if err != nil {
		t.Fatalf("evaluate auto failed: %v", err)
	}
	if result == nil || result.PromotionID != winner.ID {
		t.Fatalf("expected priority winner %d, got %+v", winner.ID, result)
	}
}

func TestEvaluateAutoTieBreaksOnDiscountThenID(t *testing.T) {
	service, db := setupPromotionTest(t)
	mustCreate(t, db, autoPromo("small", 3, 2, nil))
	bigger := autoPromo("bigger", 3, 4, nil)
	mustCreate(t, db, bigger)

	lines := []models.PricedLine{perfumeLine("calm", 18)}
	result, err := service.EvaluateAuto(lines, linesSubtotal(lines))
	if err != nil {
		t.Fatalf("evaluate auto failed: %v", err)
	}
	if result == nil || result.PromotionID != bigger.ID {
		t.Fatalf("expected discount tie-break winner %d, got %+v", bigger.ID, result)
	}

	// 优先级与折扣额都相同时取 id 更大的一条
	twinA := autoPromo("twin", 9, 3, nil)
	twinB := autoPromo("twin", 9, 3, nil)
	mustCreate(t, db, twinA)
	mustCreate(t, db, twinB)

	result, err = service.EvaluateAuto(lines, linesSubtotal(lines))
	if err != nil {
		t.Fatalf("evaluate auto failed: %v", err)
	}
	if result == nil || result.PromotionID != twinB.ID {
		t.Fatalf("expected id tie-break winner %d, got %+v", twinB.ID, result)
	}
}

func TestEvaluateAutoNoCandidateIsNotAnError(t *testing.T) {
	service, db := setupPromotionTest(t)
	mustCreate(t, db, autoPromo("needs 100", 1, 5, func(p *models.Promotion) {
		p.MinOrder = models.NewMoneyFromFloat(100)
	}))

	lines := []models.PricedLine{perfumeLine("calm", 18)}
	result, err := service.EvaluateAuto(lines, linesSubtotal(lines))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no winner, got %+v", result)
	}
}

func TestEvaluateCodeInvalidDiscountValue(t *testing.T) {
	service, db := setupPromotionTest(t)
	mustCreate(t, db, codePromo("ZERO", func(p *models.Promotion) {
		p.DiscountValue = models.ZeroMoney()
	}))

	lines := []models.PricedLine{perfumeLine("calm", 18)}
	if _, err := service.EvaluateCode("ZERO", lines, linesSubtotal(lines)); !errors.Is(err, ErrPromoInvalid) {
		t.Fatalf("expected ErrPromoInvalid for zero discount value, got %v", err)
	}
}

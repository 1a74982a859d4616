package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPromotionRepositoryTest(t *testing.T) (*GormPromotionRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewPromotionRepository(db), db
}

// 两次提交争抢最后一个名额时，数据库对写入串行化，条件更新
// `used_count < usage_limit` 总有一方读到已满的计数而命中 0 行；
// 顺序调用覆盖的正是败者视角，与并发交错下的结果一致。
func TestRedeemUsageStopsAtLimit(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	code := "LIMITED"
	limit := 2
	promo := models.Promotion{
		Kind:          constants.PromotionKindCode,
		Code:          &code,
		Title:         "Limited",
		DiscountType:  constants.DiscountTypePercent,
		DiscountValue: models.NewMoneyFromFloat(10),
		UsageLimit:    &limit,
		IsActive:      true,
	}
	if err := db.Create(&promo).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		affected, err := repo.RedeemUsage(promo.ID)
		if err != nil {
			t.Fatalf("redeem %d failed: %v", i, err)
		}
		if affected != 1 {
			t.Fatalf("redeem %d: expected 1 row, got %d", i, affected)
		}
	}

	// 名额已满：条件更新不命中任何行
	affected, err := repo.RedeemUsage(promo.ID)
	if err != nil {
		t.Fatalf("redeem at limit failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows at limit, got %d", affected)
	}

	var stored models.Promotion
	if err := db.First(&stored, promo.ID).Error; err != nil {
		t.Fatalf("load promotion failed: %v", err)
	}
	if stored.UsedCount != 2 {
		t.Fatalf("expected used_count 2, got %d", stored.UsedCount)
	}
}

func TestRedeemUsageUnlimited(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	code := "OPEN"
	promo := models.Promotion{
		Kind:          constants.PromotionKindCode,
		Code:          &code,
		Title:         "Open",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromFloat(1),
		IsActive:      true,
	}
	if err := db.Create(&promo).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		affected, err := repo.RedeemUsage(promo.ID)
		if err != nil || affected != 1 {
			t.Fatalf("redeem %d: affected=%d err=%v", i, affected, err)
		}
	}
}

func TestReleaseUsageNeverGoesNegative(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	code := "RELEASE"
	promo := models.Promotion{
		Kind:          constants.PromotionKindCode,
		Code:          &code,
		Title:         "Release",
		DiscountType:  constants.DiscountTypePercent,
		DiscountValue: models.NewMoneyFromFloat(5),
		IsActive:      true,
	}
	if err := db.Create(&promo).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	if _, err := repo.RedeemUsage(promo.ID); err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if err := repo.ReleaseUsage(promo.ID); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	// 已经为 0 时再次释放是空操作
	if err := repo.ReleaseUsage(promo.ID); err != nil {
		t.Fatalf("release at zero failed: %v", err)
	}

	var stored models.Promotion
	if err := db.First(&stored, promo.ID).Error; err != nil {
		t.Fatalf("load promotion failed: %v", err)
	}
	if stored.UsedCount != 0 {
		t.Fatalf("expected used_count 0, got %d", stored.UsedCount)
	}
}

func TestGetByCodeOnlyMatchesCodeKind(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	auto := models.Promotion{
		Kind:          constants.PromotionKindAuto,
		Title:         "Auto",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromFloat(2),
		IsActive:      true,
	}
	if err := db.Create(&auto).Error; err != nil {
		t.Fatalf("create auto promotion failed: %v", err)
	}

	found, err := repo.GetByCode("MISSING")
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for unknown code, got %+v", found)
	}
}

func TestListActiveAutoOrdering(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	low := models.Promotion{Kind: constants.PromotionKindAuto, Title: "low", DiscountType: constants.DiscountTypeFixed, DiscountValue: models.NewMoneyFromFloat(1), Priority: 1, IsActive: true}
	high := models.Promotion{Kind: constants.PromotionKindAuto, Title: "high", DiscountType: constants.DiscountTypeFixed, DiscountValue: models.NewMoneyFromFloat(1), Priority: 9, IsActive: true}
	disabled := models.Promotion{Kind: constants.PromotionKindAuto, Title: "disabled", DiscountType: constants.DiscountTypeFixed, DiscountValue: models.NewMoneyFromFloat(1), Priority: 99, IsActive: true}
	code := "CODE-KIND"
	coded := models.Promotion{Kind: constants.PromotionKindCode, Code: &code, Title: "coded", DiscountType: constants.DiscountTypeFixed, DiscountValue: models.NewMoneyFromFloat(1), Priority: 50, IsActive: true}
	for _, p := range []*models.Promotion{&low, &high, &disabled, &coded} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("create promotion failed: %v", err)
		}
	}
	if err := db.Model(&models.Promotion{}).Where("id = ?", disabled.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("disable promotion failed: %v", err)
	}

	promotions, err := repo.ListActiveAuto(30)
	if err != nil {
		t.Fatalf("list active auto failed: %v", err)
	}
	if len(promotions) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(promotions))
	}
	if promotions[0].ID != high.ID || promotions[1].ID != low.ID {
		t.Fatalf("expected priority order [%d %d], got [%d %d]",
			high.ID, low.ID, promotions[0].ID, promotions[1].ID)
	}
}

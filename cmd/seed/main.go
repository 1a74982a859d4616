package main

import (
	"time"

	"github.com/nivran-shop/storefront-api/internal/config"
	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/logger"
	"github.com/nivran-shop/storefront-api/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	seedCategories(stdLog.Printf)
	seedProducts(stdLog.Printf)
	seedPromotions(stdLog.Printf)
	seedSettings(stdLog.Printf)

	stdLog.Printf("Seed finished")
}

func seedCategories(logf func(string, ...interface{})) {
	categories := []models.Category{
		{Key: "perfume", Name: "Perfume", SortOrder: 30},
		{Key: "home-fragrance", Name: "Home Fragrance", SortOrder: 20},
		{Key: "body-care", Name: "Body Care", SortOrder: 10},
	}
	for _, category := range categories {
		var existing models.Category
		if err := models.DB.Where("key = ?", category.Key).First(&existing).Error; err == nil {
			logf("Category already exists: %s", category.Key)
			continue
		}
		if err := models.DB.Create(&category).Error; err != nil {
			logf("Failed to create category %s: %v", category.Key, err)
			continue
		}
		logf("Created category: %s", category.Key)
	}
}

func seedProducts(logf func(string, ...interface{})) {
	products := []struct {
		product  models.Product
		variants []models.ProductVariant
	}{
		{
			product: models.Product{
				Slug:        "nivran-calm-100ml",
				Title:       "Nivran Calm Eau de Parfum 100ml",
				Description: "Lavender and cedarwood, bottled for slow evenings.",
				CategoryKey: "perfume",
				PriceAmount: models.NewMoneyFromFloat(18.00),
				Images:      models.StringArray{"/uploads/nivran-calm-100ml.jpg"},
				IsActive:    true,
				SortOrder:   40,
			},
		},
		{
			product: models.Product{
				Slug:        "nivran-amber-oud",
				Title:       "Nivran Amber Oud",
				Description: "Amber resin over Cambodian oud.",
				CategoryKey: "perfume",
				PriceAmount: models.NewMoneyFromFloat(32.00),
				Images:      models.StringArray{"/uploads/nivran-amber-oud.jpg"},
				IsActive:    true,
				SortOrder:   30,
			},
			variants: []models.ProductVariant{
				{Label: "50ml", PriceAmount: models.NewMoneyFromFloat(32.00), IsDefault: true, IsActive: true, SortOrder: 20},
				{Label: "100ml", PriceAmount: models.NewMoneyFromFloat(55.00), IsActive: true, SortOrder: 10},
			},
		},
		{
			product: models.Product{
				Slug:        "jasmine-room-mist",
				Title:       "Jasmine Room Mist",
				Description: "Night-blooming jasmine for linens and living rooms.",
				CategoryKey: "home-fragrance",
				PriceAmount: models.NewMoneyFromFloat(9.50),
				Images:      models.StringArray{"/uploads/jasmine-room-mist.jpg"},
				IsActive:    true,
				SortOrder:   20,
			},
		},
		{
			product: models.Product{
				Slug:        "soap-bar",
				Title:       "Olive & Laurel Soap Bar",
				Description: "Cold-pressed Jordanian olive oil soap.",
				CategoryKey: "body-care",
				PriceAmount: models.NewMoneyFromFloat(3.25),
				Images:      models.StringArray{"/uploads/soap-bar.jpg"},
				IsActive:    true,
				SortOrder:   10,
			},
		},
	}

	for _, entry := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", entry.product.Slug).First(&existing).Error; err == nil {
			logf("Product already exists: %s", entry.product.Slug)
			continue
		}
		product := entry.product
		if err := models.DB.Create(&product).Error; err != nil {
			logf("Failed to create product %s: %v", product.Slug, err)
			continue
		}
		for _, variant := range entry.variants {
			variant.ProductID = product.ID
			if err := models.DB.Create(&variant).Error; err != nil {
				logf("Failed to create variant %s/%s: %v", product.Slug, variant.Label, err)
			}
		}
		logf("Created product: %s", product.Slug)
	}
}

func seedPromotions(logf func(string, ...interface{})) {
	welcomeCode := "WELCOME10"
	endOfYear := time.Date(time.Now().Year(), 12, 31, 23, 59, 59, 0, time.UTC)
	usageLimit := 500

	promotions := []models.Promotion{
		{
			Kind:          constants.PromotionKindCode,
			Code:          &welcomeCode,
			Title:         "Welcome 10% Off",
			DiscountType:  constants.DiscountTypePercent,
			DiscountValue: models.NewMoneyFromFloat(10),
			UsageLimit:    &usageLimit,
			EndsAt:        &endOfYear,
			IsActive:      true,
		},
		{
			Kind:          constants.PromotionKindAuto,
			Title:         "Perfume Season: 2 JOD Off",
			DiscountType:  constants.DiscountTypeFixed,
			DiscountValue: models.NewMoneyFromFloat(2),
			MinOrder:      models.NewMoneyFromFloat(25),
			CategoryScope: models.StringArray{"perfume"},
			Priority:      10,
			IsActive:      true,
		},
	}

	for _, promo := range promotions {
		query := models.DB.Where("title = ?", promo.Title)
		var existing models.Promotion
		if err := query.First(&existing).Error; err == nil {
			logf("Promotion already exists: %s", promo.Title)
			continue
		}
		if err := models.DB.Create(&promo).Error; err != nil {
			logf("Failed to create promotion %s: %v", promo.Title, err)
			continue
		}
		logf("Created promotion: %s", promo.Title)
	}
}

func seedSettings(logf func(string, ...interface{})) {
	settings := []models.Setting{
		{
			Key: constants.SettingKeyShippingConfig,
			ValueJSON: models.JSON{
				constants.SettingFieldFreeShippingThreshold: float64(constants.DefaultFreeShippingThresholdJOD),
			},
		},
		{
			Key: constants.SettingKeyOrderConfig,
			ValueJSON: models.JSON{
				constants.SettingFieldPaymentExpireMinutes: float64(constants.DefaultOrderPaymentExpireMinutes),
			},
		},
	}
	for _, setting := range settings {
		var existing models.Setting
		if err := models.DB.Where("key = ?", setting.Key).First(&existing).Error; err == nil {
			logf("Setting already exists: %s", setting.Key)
			continue
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			logf("Failed to create setting %s: %v", setting.Key, err)
			continue
		}
		logf("Created setting: %s", setting.Key)
	}
}

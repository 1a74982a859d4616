package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nivran-shop/storefront-api/internal/cache"
	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/logger"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"
)

// ThresholdResult 免邮阈值读取结果。
// 设置存储不可用时回落到内置默认值，降级标记只用于观测，不暴露给用户。
type ThresholdResult struct {
	Value    models.Money
	Degraded bool
	Reason   string
}

// SettingService 店铺设置服务
type SettingService struct {
	settingRepo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(settingRepo repository.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

// FreeShippingThreshold 读取免邮阈值。永不返回错误：任何读取失败都降级为默认值。
func (s *SettingService) FreeShippingThreshold() ThresholdResult {
	fallback := ThresholdResult{
		Value:    models.NewMoneyFromFloat(constants.DefaultFreeShippingThresholdJOD),
		Degraded: true,
	}

	ctx := context.Background()
	if cache.Enabled() {
		var cached float64
		if ok, err := cache.GetJSON(ctx, cacheKeyShippingThreshold, &cached); err == nil && ok {
			return ThresholdResult{Value: models.NewMoneyFromFloat(cached)}
		}
	}

	setting, err := s.settingRepo.GetByKey(constants.SettingKeyShippingConfig)
	if err != nil {
		logger.Warnw("读取运费设置失败，使用默认免邮阈值", "error", err)
		fallback.Reason = "settings_store_unavailable"
		return fallback
	}
	if setting == nil {
		fallback.Reason = "settings_missing"
		return fallback
	}

	value, ok := numericField(setting.ValueJSON, constants.SettingFieldFreeShippingThreshold)
	if !ok {
		fallback.Reason = "settings_field_invalid"
		return fallback
	}

	if cache.Enabled() {
		_ = cache.SetJSON(ctx, cacheKeyShippingThreshold, value, cacheTTLSetting)
	}
	return ThresholdResult{Value: models.NewMoneyFromFloat(value)}
}

// PaymentExpireMinutes 读取订单支付超时分钟数，缺失或非法时回落到给定默认值。
func (s *SettingService) PaymentExpireMinutes(defaultMinutes int) int {
	if defaultMinutes <= 0 {
		defaultMinutes = constants.DefaultOrderPaymentExpireMinutes
	}
	setting, err := s.settingRepo.GetByKey(constants.SettingKeyOrderConfig)
	if err != nil || setting == nil {
		return defaultMinutes
	}
	value, ok := numericField(setting.ValueJSON, constants.SettingFieldPaymentExpireMinutes)
	if !ok || value <= 0 {
		return defaultMinutes
	}
	return int(value)
}

// Get 按键读取设置
func (s *SettingService) Get(key string) (*models.Setting, error) {
	return s.settingRepo.GetByKey(key)
}

// List 读取全部设置
func (s *SettingService) List() ([]models.Setting, error) {
	return s.settingRepo.List()
}

// Update 写入设置并使缓存失效
func (s *SettingService) Update(key string, value models.JSON) error {
	if err := s.settingRepo.Upsert(&models.Setting{Key: key, ValueJSON: value}); err != nil {
		return err
	}
	if cache.Enabled() && key == constants.SettingKeyShippingConfig {
		_ = cache.Del(context.Background(), cacheKeyShippingThreshold)
	}
	return nil
}

const cacheKeyShippingThreshold = "setting:free_shipping_threshold"

const cacheTTLSetting = 5 * time.Minute

// numericField 从 JSON 设置里取数值字段，兼容 float64 和 json.Number
func numericField(values models.JSON, field string) (float64, bool) {
	raw, ok := values[field]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

package service

import (
	"strings"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"
)

// PromotionAdminService 后台促销活动管理服务
type PromotionAdminService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionAdminService 创建后台促销服务
func NewPromotionAdminService(promotionRepo repository.PromotionRepository) *PromotionAdminService {
	return &PromotionAdminService{promotionRepo: promotionRepo}
}

// List 促销活动列表
func (s *PromotionAdminService) List(filter repository.PromotionListFilter) ([]models.Promotion, int64, error) {
	return s.promotionRepo.List(filter)
}

// Get 促销活动详情
func (s *PromotionAdminService) Get(id uint) (*models.Promotion, error) {
	promo, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoNotFound
	}
	return promo, nil
}

// Create 创建促销活动。
// 不变量：code 类活动必须带全局唯一的码，auto 类活动的码必须为空。
func (s *PromotionAdminService) Create(promo *models.Promotion) error {
	if err := s.normalize(promo); err != nil {
		return err
	}
	if promo.Code != nil {
		existing, err := s.promotionRepo.GetByCode(*promo.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrPromoCodeConflict
		}
	}
	return s.promotionRepo.Create(promo)
}

// Update 更新促销活动，码与类型不变量同创建
func (s *PromotionAdminService) Update(promo *models.Promotion) error {
	current, err := s.promotionRepo.GetByID(promo.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrPromoNotFound
	}
	if err := s.normalize(promo); err != nil {
		return err
	}
	if promo.Code != nil {
		existing, err := s.promotionRepo.GetByCode(*promo.Code)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != promo.ID {
			return ErrPromoCodeConflict
		}
	}
	// 使用计数只在下单事务内变更，后台编辑不得覆盖
	promo.UsedCount = current.UsedCount
	return s.promotionRepo.Update(promo)
}

// Delete 删除促销活动（软删除，已关联订单保留快照）
func (s *PromotionAdminService) Delete(id uint) error {
	promo, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if promo == nil {
		return ErrPromoNotFound
	}
	return s.promotionRepo.Delete(id)
}

// normalize 清洗并校验促销字段
func (s *PromotionAdminService) normalize(promo *models.Promotion) error {
	switch promo.Kind {
	case constants.PromotionKindCode:
		if promo.Code == nil {
			return ErrPromoCodeRequired
		}
		code := strings.TrimSpace(*promo.Code)
		if code == "" {
			return ErrPromoCodeRequired
		}
		promo.Code = &code
	case constants.PromotionKindAuto:
		promo.Code = nil
	default:
		return ErrPromoInvalid
	}

	switch promo.DiscountType {
	case constants.DiscountTypePercent, constants.DiscountTypeFixed:
	default:
		return ErrPromoInvalid
	}
	if !promo.DiscountValue.Decimal.IsPositive() {
		return ErrPromoInvalid
	}
	if promo.UsageLimit != nil && *promo.UsageLimit < 0 {
		return ErrPromoInvalid
	}
	if promo.StartsAt != nil && promo.EndsAt != nil && promo.EndsAt.Before(*promo.StartsAt) {
		return ErrPromoInvalid
	}
	return nil
}

package repository

import (
	"errors"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 促销活动数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	GetByCode(code string) (*models.Promotion, error)
	ListActiveAuto(limit int) ([]models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Delete(id uint) error
	List(filter PromotionListFilter) ([]models.Promotion, int64, error)
	RedeemUsage(id uint) (int64, error)
	ReleaseUsage(id uint) error
	WithTx(tx *gorm.DB) *GormPromotionRepository
}

// PromotionListFilter 促销活动列表筛选
type PromotionListFilter struct {
	Kind     string
	Code     string
	IsActive *bool
	Page     int
	PageSize int
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销活动仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) *GormPromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// GetByID 根据ID获取促销活动
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetByCode 根据优惠码获取促销活动（仅 code 类型，精确匹配）
func (r *GormPromotionRepository) GetByCode(code string) (*models.Promotion, error) {
	var promotion models.Promotion
	err := r.db.Where("kind = ? AND code = ?", constants.PromotionKindCode, code).
		First(&promotion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// ListActiveAuto 获取启用中的自动活动候选（日期窗口等校验留给评估流水线）
func (r *GormPromotionRepository) ListActiveAuto(limit int) ([]models.Promotion, error) {
	if limit <= 0 {
		limit = constants.AutoPromotionCandidateLimit
	}
	var promotions []models.Promotion
	err := r.db.Where("kind = ? AND is_active = ?", constants.PromotionKindAuto, true).
		Order("priority desc, created_at desc, id desc").
		Limit(limit).
		Find(&promotions).Error
	if err != nil {
		return nil, err
	}
	return promotions, nil
}

// Create 创建促销活动
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新促销活动
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

// Delete 删除促销活动
func (r *GormPromotionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Promotion{}, id).Error
}

// List 获取促销活动列表
func (r *GormPromotionRepository) List(filter PromotionListFilter) ([]models.Promotion, int64, error) {
	var promotions []models.Promotion
	query := r.db.Model(&models.Promotion{})

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Code != "" {
		query = query.Where("code = ?", filter.Code)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&promotions).Error; err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}

// RedeemUsage 条件递增使用次数。
// 返回受影响行数：0 表示上限已满（报价与下单之间被并发占用），调用方必须回滚。
func (r *GormPromotionRepository) RedeemUsage(id uint) (int64, error) {
	result := r.db.Model(&models.Promotion{}).
		Where("id = ?", id).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	return result.RowsAffected, result.Error
}

// ReleaseUsage 释放一次使用（订单取消时调用），不允许减到负数
func (r *GormPromotionRepository) ReleaseUsage(id uint) error {
	return r.db.Model(&models.Promotion{}).
		Where("id = ?", id).
		Where("used_count > 0").
		UpdateColumn("used_count", gorm.Expr("used_count - 1")).Error
}

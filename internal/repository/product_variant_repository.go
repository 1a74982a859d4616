package repository

import (
	"errors"

	"github.com/nivran-shop/storefront-api/internal/models"

	"gorm.io/gorm"
)

// defaultVariantOrder 默认规格的全序排序。
// is_default 优先，其后价格、排序权重、主键依次决胜，保证同一商品反复取价结果一致。
const defaultVariantOrder = "is_default desc, price_amount asc, sort_order asc, id asc"

// ProductVariantRepository 商品规格数据访问接口
type ProductVariantRepository interface {
	GetByID(id uint) (*models.ProductVariant, error)
	GetDefaultForProduct(productID uint) (*models.ProductVariant, error)
	ListByProduct(productID uint) ([]models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	Delete(id uint) error
	ClearDefault(productID uint, exceptID uint) error
	WithTx(tx *gorm.DB) *GormProductVariantRepository
}

// GormProductVariantRepository GORM 实现
type GormProductVariantRepository struct {
	db *gorm.DB
}

// NewProductVariantRepository 创建商品规格仓库
func NewProductVariantRepository(db *gorm.DB) *GormProductVariantRepository {
	return &GormProductVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductVariantRepository) WithTx(tx *gorm.DB) *GormProductVariantRepository {
	if tx == nil {
		return r
	}
	return &GormProductVariantRepository{db: tx}
}

// GetByID 根据ID获取规格
func (r *GormProductVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// GetDefaultForProduct 获取商品默认规格（第一条启用规格，按全序排序）
func (r *GormProductVariantRepository) GetDefaultForProduct(productID uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.Where("product_id = ? AND is_active = ?", productID, true).
		Order(defaultVariantOrder).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// ListByProduct 获取商品规格列表
func (r *GormProductVariantRepository) ListByProduct(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Where("product_id = ?", productID).Order(defaultVariantOrder).Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// Create 创建规格
func (r *GormProductVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// Update 更新规格
func (r *GormProductVariantRepository) Update(variant *models.ProductVariant) error {
	return r.db.Save(variant).Error
}

// Delete 删除规格
func (r *GormProductVariantRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductVariant{}, id).Error
}

// ClearDefault 清理同商品其它规格的默认标记（后台写入默认规格时调用）
func (r *GormProductVariantRepository) ClearDefault(productID uint, exceptID uint) error {
	query := r.db.Model(&models.ProductVariant{}).Where("product_id = ?", productID)
	if exceptID > 0 {
		query = query.Where("id <> ?", exceptID)
	}
	return query.UpdateColumn("is_default", false).Error
}

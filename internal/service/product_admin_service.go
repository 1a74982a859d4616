package service

import (
	"strings"

	"gorm.io/gorm"

	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"
)

// ProductAdminService 后台商品与规格管理服务
type ProductAdminService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

// NewProductAdminService 创建后台商品服务
func NewProductAdminService(db *gorm.DB, productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository) *ProductAdminService {
	return &ProductAdminService{db: db, productRepo: productRepo, variantRepo: variantRepo}
}

// ListProducts 后台商品列表（含下架商品）
func (s *ProductAdminService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProduct 后台商品详情
func (s *ProductAdminService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductInvalid
	}
	variants, err := s.variantRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	product.Variants = variants
	return product, nil
}

// CreateProduct 创建商品，slug 全局唯一
func (s *ProductAdminService) CreateProduct(product *models.Product) error {
	product.Slug = strings.TrimSpace(product.Slug)
	if product.Slug == "" {
		return ErrProductInvalid
	}
	existing, err := s.productRepo.GetBySlug(product.Slug)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrSlugConflict
	}
	return s.productRepo.Create(product)
}

// UpdateProduct 更新商品
func (s *ProductAdminService) UpdateProduct(product *models.Product) error {
	current, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrProductInvalid
	}
	product.Slug = strings.TrimSpace(product.Slug)
	if product.Slug != current.Slug {
		existing, err := s.productRepo.GetBySlug(product.Slug)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != product.ID {
			return ErrSlugConflict
		}
	}
	return s.productRepo.Update(product)
}

// DeleteProduct 软删除商品（历史订单保存行快照，不受影响）
func (s *ProductAdminService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductInvalid
	}
	return s.productRepo.Delete(id)
}

// CreateVariant 创建规格。设为默认时在事务内先清除同商品其它默认标记，
// 保证每个商品至多一个默认规格。
func (s *ProductAdminService) CreateVariant(variant *models.ProductVariant) error {
	product, err := s.productRepo.GetByID(variant.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductInvalid
	}
	if !variant.IsDefault {
		return s.variantRepo.Create(variant)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.variantRepo.WithTx(tx).ClearDefault(variant.ProductID, 0); err != nil {
			return err
		}
		return s.variantRepo.WithTx(tx).Create(variant)
	})
}

// UpdateVariant 更新规格，默认标记唯一性同创建
func (s *ProductAdminService) UpdateVariant(variant *models.ProductVariant) error {
	current, err := s.variantRepo.GetByID(variant.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrVariantInvalid
	}
	variant.ProductID = current.ProductID
	if !variant.IsDefault {
		return s.variantRepo.Update(variant)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.variantRepo.WithTx(tx).ClearDefault(variant.ProductID, variant.ID); err != nil {
			return err
		}
		return s.variantRepo.WithTx(tx).Update(variant)
	})
}

// DeleteVariant 删除规格
func (s *ProductAdminService) DeleteVariant(id uint) error {
	variant, err := s.variantRepo.GetByID(id)
	if err != nil {
		return err
	}
	if variant == nil {
		return ErrVariantInvalid
	}
	return s.variantRepo.Delete(id)
}

package service

import (
	"strings"

	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"
)

// CatalogService 店面目录查询服务（只读）
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListProducts 店面商品列表（只含上架商品）
func (s *CatalogService) ListProducts(categoryKey, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.productRepo.List(repository.ProductListFilter{
		CategoryKey: strings.TrimSpace(categoryKey),
		Search:      strings.TrimSpace(search),
		ActiveOnly:  true,
		Page:        page,
		PageSize:    pageSize,
	})
}

// GetProduct 按 slug 读取上架商品详情
func (s *CatalogService) GetProduct(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductInvalid
	}
	// 店面只暴露在售款式
	variants := make([]models.ProductVariant, 0, len(product.Variants))
	for _, v := range product.Variants {
		if v.IsActive {
			variants = append(variants, v)
		}
	}
	product.Variants = variants
	return product, nil
}

// ListCategories 分类列表
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

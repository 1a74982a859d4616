package service

import (
	"strings"

	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"
)

// CategoryAdminService 后台分类管理服务
type CategoryAdminService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryAdminService 创建后台分类服务
func NewCategoryAdminService(categoryRepo repository.CategoryRepository) *CategoryAdminService {
	return &CategoryAdminService{categoryRepo: categoryRepo}
}

// List 分类列表
func (s *CategoryAdminService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// Create 创建分类，key 全局唯一
func (s *CategoryAdminService) Create(category *models.Category) error {
	category.Key = strings.TrimSpace(category.Key)
	if category.Key == "" {
		return ErrCategoryInvalid
	}
	existing, err := s.categoryRepo.GetByKey(category.Key)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrCategoryConflict
	}
	return s.categoryRepo.Create(category)
}

// Update 更新分类
func (s *CategoryAdminService) Update(category *models.Category) error {
	current, err := s.categoryRepo.GetByID(category.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrCategoryNotFound
	}
	category.Key = strings.TrimSpace(category.Key)
	if category.Key != current.Key {
		existing, err := s.categoryRepo.GetByKey(category.Key)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != category.ID {
			return ErrCategoryConflict
		}
	}
	return s.categoryRepo.Update(category)
}

// Delete 删除分类（商品仍保留其分类标识快照）
func (s *CategoryAdminService) Delete(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(id)
}

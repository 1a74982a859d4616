package repository

import (
	"errors"
	"time"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	GetByCartID(cartID string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	List(filter OrderListFilter) ([]models.Order, int64, error)
	MarkPaid(id uint, paidAt time.Time) (int64, error)
	MarkCanceled(id uint, canceledAt time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// OrderListFilter 订单列表筛选
type OrderListFilter struct {
	Status    string
	CartID    string
	Phone     string
	PromoCode string
	Page      int
	PageSize  int
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// GetByID 根据ID获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByCartID 根据购物车标识获取订单
func (r *GormOrderRepository) GetByCartID(cartID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("cart_id = ?", cartID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create 创建订单
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// Update 更新订单
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// List 获取订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CartID != "" {
		query = query.Where("cart_id = ?", filter.CartID)
	}
	if filter.Phone != "" {
		query = query.Where("customer_phone = ?", filter.Phone)
	}
	if filter.PromoCode != "" {
		query = query.Where("promo_code = ?", filter.PromoCode)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// MarkPaid 待支付订单标记为已支付（条件更新，返回受影响行数）
func (r *GormOrderRepository) MarkPaid(id uint, paidAt time.Time) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, constants.OrderStatusPendingPayment).
		Updates(map[string]interface{}{
			"status":  constants.OrderStatusPaid,
			"paid_at": paidAt,
		})
	return result.RowsAffected, result.Error
}

// MarkCanceled 待支付订单标记为已取消（条件更新，返回受影响行数）
func (r *GormOrderRepository) MarkCanceled(id uint, canceledAt time.Time) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, constants.OrderStatusPendingPayment).
		Updates(map[string]interface{}{
			"status":      constants.OrderStatusCanceled,
			"canceled_at": canceledAt,
		})
	return result.RowsAffected, result.Error
}

package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/logger"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/queue"
	"github.com/nivran-shop/storefront-api/internal/repository"
)

// OrderCustomer 下单客户信息
type OrderCustomer struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

// OrderShipping 收货信息
type OrderShipping struct {
	City    string `json:"city" binding:"required"`
	Address string `json:"address" binding:"required"`
	Country string `json:"country"`
	Notes   string `json:"notes"`
}

// CreateOrderInput 创建订单入参。金额一律服务端重算，客户端只提交原始购物车。
type CreateOrderInput struct {
	Items         []CartItem
	DiscountMode  string
	PromoCode     string
	Customer      OrderCustomer
	Shipping      OrderShipping
	PaymentMethod string
	Locale        string
	ClientIP      string
}

// OrderService 订单服务
type OrderService struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	promotionRepo repository.PromotionRepository
	quote         *QuoteService
	setting       *SettingService
	expireMinutes int
}

// NewOrderService 创建订单服务
func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	promotionRepo repository.PromotionRepository,
	quote *QuoteService,
	setting *SettingService,
	expireMinutes int,
) *OrderService {
	if expireMinutes <= 0 {
		expireMinutes = constants.DefaultOrderPaymentExpireMinutes
	}
	return &OrderService{
		db:            db,
		orderRepo:     orderRepo,
		promotionRepo: promotionRepo,
		quote:         quote,
		setting:       setting,
		expireMinutes: expireMinutes,
	}
}

// CreateOrder 创建订单。
// 从原始购物车重新报价（与预览走同一条计算路径），在单个事务内
// 条件递增促销使用次数并落库订单快照。使用次数只在这里变更。
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, *Quote, error) {
	if len(input.Items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	quote, err := s.quote.Quote(input.Items, input.DiscountMode, input.PromoCode)
	if err != nil {
		// 下单阶段促销校验失败一律硬错误：订单不创建，客户显式重试
		return nil, quote, err
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.expireMinutes) * time.Minute)
	order := &models.Order{
		CartID:            uuid.NewString(),
		Status:            constants.OrderStatusPendingPayment,
		Currency:          constants.CurrencyJOD,
		Items:             models.PricedLines(quote.Lines),
		Subtotal:          quote.Totals.SubtotalBeforeDiscount,
		DiscountAmount:    quote.Totals.Discount,
		SubtotalAfter:     quote.Totals.SubtotalAfterDiscount,
		ShippingAmount:    quote.Totals.Shipping,
		TotalAmount:       quote.Totals.Total,
		FreeShipThreshold: quote.Totals.FreeShippingThreshold,
		DiscountSource:    quote.Discount.Source,
		PromotionID:       quote.Discount.PromotionID,
		PaymentMethod:     strings.TrimSpace(input.PaymentMethod),
		CustomerName:      strings.TrimSpace(input.Customer.Name),
		CustomerPhone:     strings.TrimSpace(input.Customer.Phone),
		CustomerEmail:     strings.TrimSpace(input.Customer.Email),
		ShippingCity:      strings.TrimSpace(input.Shipping.City),
		ShippingAddress:   strings.TrimSpace(input.Shipping.Address),
		ShippingCountry:   strings.TrimSpace(input.Shipping.Country),
		ShippingNotes:     strings.TrimSpace(input.Shipping.Notes),
		Locale:            input.Locale,
		ClientIP:          input.ClientIP,
		ExpiresAt:         &expiresAt,
	}
	if quote.Discount.Code != nil {
		order.PromoCode = *quote.Discount.Code
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 报价与提交之间可能被并发占满名额：条件更新零行即限额已尽，整单回滚
		if quote.Discount.Source == constants.DiscountSourceCode && quote.Discount.PromotionID != nil {
			affected, redeemErr := s.promotionRepo.WithTx(tx).RedeemUsage(*quote.Discount.PromotionID)
			if redeemErr != nil {
				return redeemErr
			}
			if affected == 0 {
				return ErrPromoUsageLimit
			}
		}
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		return nil, quote, err
	}

	if enqueueErr := queue.EnqueueOrderTimeoutCancel(order.ID, time.Until(expiresAt)); enqueueErr != nil {
		logger.Warnw("订单超时取消任务入队失败", "order_id", order.ID, "error", enqueueErr)
	}

	logger.Infow("订单创建成功",
		"order_id", order.ID,
		"cart_id", order.CartID,
		"total", order.TotalAmount.String(),
		"discount_source", order.DiscountSource,
	)
	return order, quote, nil
}

// GetByCartID 根据购物车标识查询订单
func (s *OrderService) GetByCartID(cartID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByCartID(strings.TrimSpace(cartID))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByID 根据ID查询订单
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// MarkPaid 待支付订单标记为已支付
func (s *OrderService) MarkPaid(id uint) (*models.Order, error) {
	order, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	affected, err := s.orderRepo.MarkPaid(order.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderStateConflict
	}
	return s.GetByID(id)
}

// CancelOrder 取消待支付订单，并释放码类促销占用的使用名额。
func (s *OrderService) CancelOrder(id uint) (*models.Order, error) {
	order, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		affected, cancelErr := s.orderRepo.WithTx(tx).MarkCanceled(order.ID, time.Now())
		if cancelErr != nil {
			return cancelErr
		}
		if affected == 0 {
			return ErrOrderStateConflict
		}
		if order.DiscountSource == constants.DiscountSourceCode && order.PromotionID != nil {
			if releaseErr := s.promotionRepo.WithTx(tx).ReleaseUsage(*order.PromotionID); releaseErr != nil {
				return releaseErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// CancelExpired 由超时任务调用：仅当订单仍待支付且已过期时取消。
// 订单已支付或已取消时静默跳过，任务不重试。
func (s *OrderService) CancelExpired(id uint) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil || order.Status != constants.OrderStatusPendingPayment {
		return nil
	}
	if order.ExpiresAt != nil && time.Now().Before(*order.ExpiresAt) {
		return nil
	}
	_, err = s.CancelOrder(order.ID)
	if errors.Is(err, ErrOrderStateConflict) {
		return nil
	}
	if err == nil {
		logger.Infow("超时订单已自动取消", "order_id", order.ID, "cart_id", order.CartID)
	}
	return err
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// PricedLine 定价后的订单行（下单时快照进订单，之后不再随商品变化）
type PricedLine struct {
	Slug        string `json:"slug"`         // 商品标识
	VariantID   *uint  `json:"variantId"`    // 规格ID（无规格时为 null）
	Title       string `json:"title"`        // 商品标题快照
	Label       string `json:"label"`        // 规格名称快照
	CategoryKey string `json:"categoryKey"`  // 分类标识快照
	Quantity    int    `json:"qty"`          // 数量（1..99）
	UnitPrice   Money  `json:"unitPriceJod"` // 单价
	LineTotal   Money  `json:"lineTotalJod"` // 行小计（逐行保留 2 位小数）
}

// PricedLines 订单行快照集合（JSON 列存储）
type PricedLines []PricedLine

// Value 实现 driver.Valuer 接口
func (l PricedLines) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(PricedLines{})
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner 接口
func (l *PricedLines) Scan(value interface{}) error {
	if value == nil {
		*l = PricedLines{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, l)
}

// Order 订单表
// 下单时快照订单行、全部金额与促销关联，后续商品/活动修改不回溯已下订单。
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                             // 主键
	CartID            string         `gorm:"uniqueIndex;not null" json:"cart_id"`                              // 购物车标识（对外订单号）
	Status            string         `gorm:"index;not null" json:"status"`                                     // 订单状态
	Currency          string         `gorm:"not null" json:"currency"`                                         // 币种（JOD）
	Items             PricedLines    `gorm:"type:json;not null" json:"items"`                                  // 订单行快照
	Subtotal          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`            // 折前小计
	DiscountAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`     // 优惠金额
	SubtotalAfter     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal_after"`      // 折后小计
	ShippingAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_amount"`     // 运费
	TotalAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`        // 应付总额
	FreeShipThreshold Money          `gorm:"type:decimal(20,2);not null;default:0" json:"free_ship_threshold"` // 下单时使用的包邮门槛
	DiscountSource    string         `gorm:"type:varchar(10);not null;default:'none'" json:"discount_source"`  // 优惠来源（none/auto/code）
	PromoCode         string         `gorm:"index" json:"promo_code,omitempty"`                                // 实际应用的优惠码
	PromotionID       *uint          `gorm:"index" json:"promotion_id,omitempty"`                              // 促销活动ID
	PaymentMethod     string         `gorm:"type:varchar(20)" json:"payment_method"`                           // 支付方式
	CustomerName      string         `gorm:"not null" json:"customer_name"`                                    // 客户姓名
	CustomerPhone     string         `gorm:"not null;index" json:"customer_phone"`                             // 客户电话
	CustomerEmail     string         `gorm:"index" json:"customer_email"`                                      // 客户邮箱
	ShippingCity      string         `gorm:"not null" json:"shipping_city"`                                    // 收货城市
	ShippingAddress   string         `gorm:"not null" json:"shipping_address"`                                 // 收货地址
	ShippingCountry   string         `json:"shipping_country"`                                                 // 收货国家
	ShippingNotes     string         `gorm:"type:text" json:"shipping_notes"`                                  // 配送备注
	Locale            string         `gorm:"type:varchar(10)" json:"locale"`                                   // 下单语言
	ClientIP          string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                      // 下单客户端IP
	ExpiresAt         *time.Time     `gorm:"index" json:"expires_at"`                                          // 待支付过期时间
	PaidAt            *time.Time     `gorm:"index" json:"paid_at"`                                             // 支付时间
	CanceledAt        *time.Time     `gorm:"index" json:"canceled_at"`                                         // 取消时间
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                          // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                          // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                   // 软删除时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

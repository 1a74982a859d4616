package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion 促销活动表
// kind=code 时 Code 非空且唯一；kind=auto 时 Code 为 NULL。
// CategoryScope / SlugScope 为 NULL 表示不限范围；两者都有值时按并集匹配。
type Promotion struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                   // 主键
	Kind          string         `gorm:"type:varchar(10);not null;index" json:"kind"`            // 类型（auto/code）
	Code          *string        `gorm:"uniqueIndex" json:"code"`                                // 优惠码（仅 code 类型）
	Title         string         `gorm:"not null" json:"title"`                                  // 活动名称
	DiscountType  string         `gorm:"type:varchar(10);not null" json:"discount_type"`         // 折扣类型（percent/fixed）
	DiscountValue Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"`      // 折扣数值（百分比或固定金额）
	MinOrder      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order"` // 最低订单金额（0 表示不限制）
	UsageLimit    *int           `gorm:"" json:"usage_limit"`                                    // 总使用上限（NULL 表示不限制）
	UsedCount     int            `gorm:"not null;default:0" json:"used_count"`                   // 已使用次数（仅下单事务内递增）
	CategoryScope StringArray    `gorm:"type:json" json:"category_scope"`                        // 适用分类集合
	SlugScope     StringArray    `gorm:"type:json" json:"slug_scope"`                            // 适用商品集合
	Priority      int            `gorm:"not null;default:0;index" json:"priority"`               // 自动活动优先级
	StartsAt      *time.Time     `gorm:"index" json:"starts_at"`                                 // 生效时间
	EndsAt        *time.Time     `gorm:"index" json:"ends_at"`                                   // 失效时间
	IsActive      bool           `gorm:"not null;default:true;index" json:"is_active"`           // 是否启用
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

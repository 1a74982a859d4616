package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant 商品规格表（容量/套装等价格维度）
type ProductVariant struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	ProductID   uint           `gorm:"not null;index" json:"product_id"`                          // 商品ID
	Label       string         `gorm:"not null" json:"label"`                                     // 规格名称（如 50ml / 100ml）
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 规格价格（覆盖商品基础价）
	IsDefault   bool           `gorm:"not null;default:false;index" json:"is_default"`            // 是否默认规格（同商品至多一个，由后台写入时清理）
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否启用
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

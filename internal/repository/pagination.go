package repository

import "gorm.io/gorm"

// applyPagination 统一分页（page 从 1 开始，pageSize<=0 表示不分页）
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

package admin

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nivran-shop/storefront-api/internal/http/response"
	"github.com/nivran-shop/storefront-api/internal/models"
)

// SettingRequest 设置更新请求
type SettingRequest struct {
	Value models.JSON `json:"value" binding:"required"`
}

// GetSettings 设置列表 (Admin)
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.SettingService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	response.Success(c, settings)
}

// GetSetting 按键读取设置 (Admin)
func (h *Handler) GetSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	setting, err := h.SettingService.Get(key)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	if setting == nil {
		respondError(c, response.CodeNotFound, "error.bad_request", nil)
		return
	}
	response.Success(c, setting)
}

// UpdateSetting 更新设置 (Admin)
func (h *Handler) UpdateSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.SettingService.Update(key, req.Value); err != nil {
		respondError(c, response.CodeInternal, "error.setting_update_failed", err)
		return
	}
	response.Success(c, gin.H{"key": key, "value": req.Value})
}

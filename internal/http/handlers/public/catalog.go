package public

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/http/handlers/shared"
	"github.com/nivran-shop/storefront-api/internal/http/response"
	"github.com/nivran-shop/storefront-api/internal/i18n"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/service"
)

// ListProducts 店面商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	products, total, err := h.CatalogService.ListProducts(c.Query("category"), c.Query("search"), page, pageSize)
	if err != nil {
		shared.RequestLog(c).Errorw("catalog_list_failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, i18n.T(i18n.ResolveLocale(c), "error.catalog_fetch_failed"), "", nil)
		return
	}

	response.OK(c, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetProduct 店面商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.GetProduct(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductInvalid) {
			response.Fail(c, http.StatusNotFound, i18n.T(i18n.ResolveLocale(c), "error.product_not_found"), "", nil)
			return
		}
		shared.RequestLog(c).Errorw("catalog_detail_failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, i18n.T(i18n.ResolveLocale(c), "error.catalog_fetch_failed"), "", nil)
		return
	}
	response.OK(c, gin.H{"product": product})
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories()
	if err != nil {
		shared.RequestLog(c).Errorw("category_list_failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, i18n.T(i18n.ResolveLocale(c), "error.catalog_fetch_failed"), "", nil)
		return
	}
	response.OK(c, gin.H{"categories": categories})
}

// Config 店面公共配置（币种、免邮阈值、基础运费）
func (h *Handler) Config(c *gin.Context) {
	threshold := h.SettingService.FreeShippingThreshold()
	response.OK(c, gin.H{
		"currency":              constants.CurrencyJOD,
		"freeShippingThreshold": threshold.Value,
		"baseShippingRate":      models.NewMoneyFromFloat(constants.BaseShippingRateJOD),
	})
}

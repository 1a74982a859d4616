package router

import (
	"fmt"
	"strings"

	"github.com/nivran-shop/storefront-api/internal/cache"
	"github.com/nivran-shop/storefront-api/internal/config"
	adminhandlers "github.com/nivran-shop/storefront-api/internal/http/handlers/admin"
	publichandlers "github.com/nivran-shop/storefront-api/internal/http/handlers/public"
	"github.com/nivran-shop/storefront-api/internal/logger"
	"github.com/nivran-shop/storefront-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "nv"
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 店面公开接口
		store := apiV1.Group("/store")
		{
			store.GET("/config", publicHandler.Config)
			store.GET("/categories", publicHandler.ListCategories)
			store.GET("/products", publicHandler.ListProducts)
			store.GET("/products/:slug", publicHandler.GetProduct)
			store.POST("/quote", publicHandler.Quote)
			store.POST("/orders", publicHandler.CreateOrder)
			store.GET("/orders/:cartId", publicHandler.GetOrder)
		}

		// 后台接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login",
				RateLimitMiddleware(cache.Client(), adminLoginRule, KeyByIPAndJSONField("username")),
				adminHandler.Login,
			)

			authed := admin.Group("")
			authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authed.GET("/profile", adminHandler.Profile)

				authed.GET("/products", adminHandler.GetProducts)
				authed.GET("/products/:id", adminHandler.GetProduct)
				authed.POST("/products", adminHandler.CreateProduct)
				authed.PUT("/products/:id", adminHandler.UpdateProduct)
				authed.DELETE("/products/:id", adminHandler.DeleteProduct)

				authed.POST("/variants", adminHandler.CreateVariant)
				authed.PUT("/variants/:id", adminHandler.UpdateVariant)
				authed.DELETE("/variants/:id", adminHandler.DeleteVariant)

				authed.GET("/categories", adminHandler.GetCategories)
				authed.POST("/categories", adminHandler.CreateCategory)
				authed.PUT("/categories/:id", adminHandler.UpdateCategory)
				authed.DELETE("/categories/:id", adminHandler.DeleteCategory)

				authed.GET("/promotions", adminHandler.GetPromotions)
				authed.GET("/promotions/:id", adminHandler.GetPromotion)
				authed.POST("/promotions", adminHandler.CreatePromotion)
				authed.PUT("/promotions/:id", adminHandler.UpdatePromotion)
				authed.DELETE("/promotions/:id", adminHandler.DeletePromotion)

				authed.GET("/orders", adminHandler.GetOrders)
				authed.GET("/orders/:id", adminHandler.GetOrder)
				authed.POST("/orders/:id/paid", adminHandler.MarkOrderPaid)
				authed.POST("/orders/:id/cancel", adminHandler.CancelOrder)

				authed.GET("/settings", adminHandler.GetSettings)
				authed.GET("/settings/:key", adminHandler.GetSetting)
				authed.PUT("/settings/:key", adminHandler.UpdateSetting)
			}
		}
	}

	return r
}

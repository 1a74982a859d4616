package provider

import (
	"github.com/nivran-shop/storefront-api/internal/cache"
	"github.com/nivran-shop/storefront-api/internal/config"
	"github.com/nivran-shop/storefront-api/internal/logger"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/queue"
	"github.com/nivran-shop/storefront-api/internal/repository"
	"github.com/nivran-shop/storefront-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	AdminRepo     repository.AdminRepository
	ProductRepo   repository.ProductRepository
	VariantRepo   repository.ProductVariantRepository
	CategoryRepo  repository.CategoryRepository
	PromotionRepo repository.PromotionRepository
	OrderRepo     repository.OrderRepository
	SettingRepo   repository.SettingRepository

	// Services
	AuthService           *service.AuthService
	CatalogService        *service.CatalogService
	PricingService        *service.PricingService
	PromotionService      *service.PromotionService
	SettingService        *service.SettingService
	QuoteService          *service.QuoteService
	OrderService          *service.OrderService
	ProductAdminService   *service.ProductAdminService
	PromotionAdminService *service.PromotionAdminService
	CategoryAdminService  *service.CategoryAdminService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}
	queue.Init(cfg)

	c := &Container{Config: cfg}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewProductVariantRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	db := models.DB
	c.AuthService = service.NewAuthService(c.AdminRepo, c.Config.JWT)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CategoryRepo)
	c.PricingService = service.NewPricingService(c.ProductRepo, c.VariantRepo)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo)
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.QuoteService = service.NewQuoteService(c.PricingService, c.PromotionService, c.SettingService)
	c.OrderService = service.NewOrderService(
		db,
		c.OrderRepo,
		c.PromotionRepo,
		c.QuoteService,
		c.SettingService,
		c.SettingService.PaymentExpireMinutes(c.Config.Order.PaymentExpireMinutes),
	)
	c.ProductAdminService = service.NewProductAdminService(db, c.ProductRepo, c.VariantRepo)
	c.PromotionAdminService = service.NewPromotionAdminService(c.PromotionRepo)
	c.CategoryAdminService = service.NewCategoryAdminService(c.CategoryRepo)
}

package admin

import "github.com/nivran-shop/storefront-api/internal/provider"

// Handler 管理端接口处理器
// 说明：对应路由全部挂在 JWT 鉴权中间件之后。
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

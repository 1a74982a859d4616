package public

import "github.com/nivran-shop/storefront-api/internal/provider"

// Handler 店面/公开接口处理器入口
// 说明：该处理器仅用于店面与游客侧 API，不做身份鉴权。
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

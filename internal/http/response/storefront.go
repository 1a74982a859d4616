package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 店面接口使用 ok 风格信封，前端按 ok 字段与 reason 机器码分支，
// 不解析 error 文案。

// OK 店面成功响应，payload 的键会平铺进响应体
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"ok": true}
	for key, value := range payload {
		body[key] = value
	}
	c.JSON(http.StatusOK, body)
}

// Fail 店面失败响应。reason 为空时省略该字段；
// extra 用于附带零折扣报价等展示数据。
func Fail(c *gin.Context, httpStatus int, message, reason string, extra gin.H) {
	body := gin.H{
		"ok":    false,
		"error": message,
	}
	if reason != "" {
		body["reason"] = reason
	}
	for key, value := range extra {
		body[key] = value
	}
	c.JSON(httpStatus, body)
}

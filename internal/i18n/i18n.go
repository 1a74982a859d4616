package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// LocaleEN 英文（默认）
	LocaleEN = "en"
	// LocaleAR 阿拉伯文
	LocaleAR = "ar"
)

// localeContextKey 请求上下文里的语言键（handler 解析请求体后可覆盖）
const localeContextKey = "locale"

// SetLocale 将语言写入请求上下文
func SetLocale(c *gin.Context, locale string) {
	if c == nil {
		return
	}
	normalized := Normalize(locale)
	if normalized != "" {
		c.Set(localeContextKey, normalized)
	}
}

// ResolveLocale 解析请求语言：上下文 > query > Accept-Language > 默认英文
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return LocaleEN
	}
	if value, ok := c.Get(localeContextKey); ok {
		if locale, ok := value.(string); ok && locale != "" {
			return locale
		}
	}
	if locale := Normalize(c.Query("locale")); locale != "" {
		return locale
	}
	if locale := Normalize(c.GetHeader("Accept-Language")); locale != "" {
		return locale
	}
	return LocaleEN
}

// Normalize 归一化语言标识（ar-JO -> ar，en-US -> en）
func Normalize(locale string) string {
	trimmed := strings.ToLower(strings.TrimSpace(locale))
	if trimmed == "" {
		return ""
	}
	if idx := strings.IndexAny(trimmed, "-_,;"); idx > 0 {
		trimmed = trimmed[:idx]
	}
	switch trimmed {
	case LocaleEN, LocaleAR:
		return trimmed
	default:
		return ""
	}
}

// T 获取指定语言的文案，缺失时回退英文，再缺失时返回键本身
func T(locale, key string) string {
	normalized := Normalize(locale)
	if normalized == "" {
		normalized = LocaleEN
	}
	if table, ok := messages[normalized]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[LocaleEN][key]; ok {
		return msg
	}
	return key
}

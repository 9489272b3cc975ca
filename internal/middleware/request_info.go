package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/domain"
)

const requestMetaKey = "request_meta"

// RequestInfo records the client address and user agent for audit entries. Behind
// Cloudflare the peer address is the proxy, so the forwarded headers win.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(requestMetaKey, domain.RequestMeta{
			IPAddress: GetIPAddress(c),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		})
		return c.Next()
	}
}

func GetIPAddress(c *fiber.Ctx) string {
	if ip := c.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if ip := c.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return c.IP()
}

func GetRequestMeta(c *fiber.Ctx) domain.RequestMeta {
	if meta, ok := c.Locals(requestMetaKey).(domain.RequestMeta); ok {
		return meta
	}
	return domain.RequestMeta{IPAddress: GetIPAddress(c), UserAgent: c.Get(fiber.HeaderUserAgent)}
}

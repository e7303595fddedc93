package middleware

import "github.com/gin-gonic/gin"

// ProxyHeaders are consulted, in order, when the direct peer is a trusted proxy.
var ProxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// TrustProxies limits which peers may set the client IP through
// ProxyHeaders. Gin trusts every peer by default, so the engine must be
// configured before RealIP is useful; an empty list ignores the headers.
func TrustProxies(r *gin.Engine, proxies []string) error {
	r.ForwardedByClientIP = true
	r.RemoteIPHeaders = ProxyHeaders
	return r.SetTrustedProxies(proxies)
}

// RealIP stores the client IP under "real_ip". Forwarding headers count
// only when the request came through a proxy accepted by TrustProxies;
// X-Forwarded-For is walked from the right, skipping trusted hops.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}

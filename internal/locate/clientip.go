package locate

import (
	"net"
	"net/http"
	"strings"
)

// 文档注释：获取访问者 IP
// 背景：多层代理下按常见反向代理头顺序取值，最后回退远端地址。
// 约束：头部可被伪造，只用于近似定位，不可用于鉴权；不接受查询参数指定 IP，避免接口被当作任意地址的查询服务。
func ClientIP(r *http.Request) string {
	h := r.Header
	if x := h.Get("X-Forwarded-For"); x != "" {
		return strings.TrimSpace(strings.Split(x, ",")[0])
	}
	for _, k := range []string{"CF-Connecting-IP", "X-Real-IP", "X-Client-IP"} {
		if x := strings.TrimSpace(h.Get(k)); x != "" {
			return x
		}
	}
	if x := h.Get("Forwarded"); x != "" {
		if i := strings.Index(strings.ToLower(x), "for="); i >= 0 {
			y := x[i+4:]
			if p := strings.IndexAny(y, ";,"); p >= 0 {
				y = y[:p]
			}
			y = strings.Trim(y, "\" []")
			return y
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

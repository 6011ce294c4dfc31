// 包 api：HTTP 路由与处理器；只做参数解析、调用核心与错误映射
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"relief-api/internal/geo"
	"relief-api/internal/metrics"
	"relief-api/internal/store"
)

// Resolver 为邮编到坐标的解析能力（geocode.Resolver）
type Resolver interface {
	Resolve(ctx context.Context, raw string) (geo.Coordinate, error)
}

// Locator 为按 IP 的近似定位能力（locate.Locator）；可为空
type Locator interface {
	Locate(ip string) (geo.Coordinate, error)
}

type Deps struct {
	Repo            store.Reader
	Resolver        Resolver
	Locator         Locator
	DefaultRadiusKm float64
}

type handler struct {
	Deps
	validate *validator.Validate
}

// 文档注释：构建 API 路由
// 背景：由主入口挂载到 {API_BASE} 下；路径不含前缀。
// 约束：所有错误体均为 {"error": "..."}，不向客户端透出内部错误细节。
func BuildRoutes(d Deps) http.Handler {
	if d.DefaultRadiusKm <= 0 {
		d.DefaultRadiusKm = 25
	}
	h := &handler{Deps: d, validate: validator.New()}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/healthz", h.healthz)
	r.Route("/relief-centers", func(r chi.Router) {
		r.Get("/", h.listReliefCenters)
		r.Get("/summary", h.summary)
	})
	r.Post("/postal-code/convert", h.convertPostalCode)
	r.Get("/locate", h.locate)
	return r
}

// instrument 按路由模板计数，避免把原始路径作为标签
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// 包 nominatim：OpenStreetMap Nominatim 搜索接口客户端（带进程级节流）
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"relief-api/internal/geo"
	"relief-api/internal/logger"
	"relief-api/internal/metrics"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org/search"
	DefaultUserAgent = "Relief-Resource-Locator/1.0"
	DefaultRegion    = "Ontario,Canada"
)

const (
	ReasonRequestFailed = "request failed"
	ReasonNotFound      = "not found"
	ReasonBadResponse   = "bad response"
)

// 文档注释：外部服务错误
// 背景：区分传输/状态码失败、空结果与响应格式异常；解析器边界统一折叠为"未找到"。
type ProviderError struct {
	Reason string
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	s := "nominatim: " + e.Reason
	if e.Status != 0 {
		s += " (status " + strconv.Itoa(e.Status) + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsNotFound 判断是否为空结果
func IsNotFound(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Reason == ReasonNotFound
}

// searchResult 只解析需要的字段；lat/lon 为字符串
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type Client struct {
	baseURL   string
	userAgent string
	region    string
	http      *http.Client
	throttle  *Throttle
}

type Option func(*Client)

func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }
func WithUserAgent(ua string) Option { return func(c *Client) { c.userAgent = ua } }
func WithRegion(r string) Option { return func(c *Client) { c.region = r } }
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithThrottle 替换节流器；默认使用进程级单例
func WithThrottle(t *Throttle) Option { return func(c *Client) { c.throttle = t } }

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		region:    DefaultRegion,
		throttle:  Shared(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
	}
	return c
}

// 文档注释：按自由文本查询坐标
// 参数：raw 为用户原始输入；查询串追加固定区域后缀，format=json&limit=1。
// 返回：首个结果的坐标；非 2xx/传输错误返回 ReasonRequestFailed，空数组返回 ReasonNotFound。
// 约束：外呼前经过进程级节流，调用方可能被阻塞至多一个间隔。
func (c *Client) FetchCoordinate(ctx context.Context, raw string) (geo.Coordinate, error) {
	q := url.Values{}
	q.Set("q", strings.TrimSpace(raw)+","+c.region)
	q.Set("format", "json")
	q.Set("limit", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return geo.Coordinate{}, &ProviderError{Reason: ReasonRequestFailed, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	waited := c.throttle.Wait()
	t0 := time.Now()
	metrics.NominatimRequestsTotal.Inc()
	logger.L().Debug("nominatim_req", "q", raw, "waited_ms", waited.Milliseconds())
	resp, err := c.http.Do(req)
	if err != nil {
		return geo.Coordinate{}, c.fail(&ProviderError{Reason: ReasonRequestFailed, Err: err})
	}
	defer resp.Body.Close()
	metrics.NominatimDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return geo.Coordinate{}, c.fail(&ProviderError{Reason: ReasonRequestFailed, Status: resp.StatusCode})
	}
	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return geo.Coordinate{}, c.fail(&ProviderError{Reason: ReasonBadResponse, Err: err})
	}
	if len(results) == 0 {
		return geo.Coordinate{}, c.fail(&ProviderError{Reason: ReasonNotFound})
	}
	coord, err := parseResult(results[0])
	if err != nil {
		return geo.Coordinate{}, c.fail(&ProviderError{Reason: ReasonBadResponse, Err: err})
	}
	logger.L().Debug("nominatim_resp", "q", raw, "lat", coord.Lat, "lng", coord.Lng, "display_name", results[0].DisplayName)
	return coord, nil
}

func (c *Client) fail(pe *ProviderError) error {
	metrics.NominatimFailTotal.WithLabelValues(pe.Reason).Inc()
	logger.L().Error("nominatim_error", "reason", pe.Reason, "status", pe.Status, "err", pe.Err)
	return pe
}

func parseResult(r searchResult) (geo.Coordinate, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("lat %q: %w", r.Lat, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("lon %q: %w", r.Lon, err)
	}
	c := geo.Coordinate{Lat: lat, Lng: lng}
	if !c.Valid() {
		return geo.Coordinate{}, fmt.Errorf("coordinate out of range: %v,%v", lat, lng)
	}
	return c, nil
}

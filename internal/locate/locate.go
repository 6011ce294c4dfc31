// 包 locate：按客户端 IP 估算大致坐标（GeoLite2/GeoIP2 City 库），在设备定位被拒绝时作为回退
package locate

import (
	"errors"
	"net"

	"github.com/oschwald/geoip2-golang"

	"relief-api/internal/geo"
	"relief-api/internal/logger"
	"relief-api/internal/metrics"
)

var ErrUnknown = errors.New("location unknown")

// CityReader 为 *geoip2.Reader 的子集，便于测试替换
type CityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

type Locator struct {
	db CityReader
}

// Open 打开 mmdb 文件；路径为空或打开失败由调用方决定是否禁用定位
func Open(path string) (*Locator, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return New(r), nil
}

func New(r CityReader) *Locator { return &Locator{db: r} }

// 文档注释：IP 定位
// 背景：库中无记录时 geoip2 返回零值而非错误，此处统一视为未知；私网与回环地址不查库。
// 约束：结果仅为城市级近似，不写入任何缓存。
func (l *Locator) Locate(raw string) (geo.Coordinate, error) {
	ip := net.ParseIP(raw)
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		metrics.LocateTotal.WithLabelValues("skipped").Inc()
		return geo.Coordinate{}, ErrUnknown
	}
	rec, err := l.db.City(ip)
	if err != nil {
		logger.L().Error("geoip_lookup_error", "ip", raw, "err", err)
		metrics.LocateTotal.WithLabelValues("error").Inc()
		return geo.Coordinate{}, err
	}
	c := geo.Coordinate{Lat: rec.Location.Latitude, Lng: rec.Location.Longitude}
	if (c.Lat == 0 && c.Lng == 0) || !c.Valid() {
		metrics.LocateTotal.WithLabelValues("miss").Inc()
		return geo.Coordinate{}, ErrUnknown
	}
	logger.L().Debug("geoip_hit", "ip", raw, "city", rec.City.Names["en"])
	metrics.LocateTotal.WithLabelValues("hit").Inc()
	return c, nil
}

func (l *Locator) Close() error { return l.db.Close() }

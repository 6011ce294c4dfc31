// 包 geo：坐标值类型与大圆距离计算；无状态、无副作用，可被任意并发调用
package geo

import (
	"math"
	"strconv"

	"github.com/umahmood/haversine"
)

// EarthRadiusKm 与 haversine 库内部半径一致
const EarthRadiusKm = 6371.0

// 文档注释：WGS84 坐标（值类型）
// 约束：纬度 [-90,90]，经度 [-180,180]；不可变，按值传递与比较。
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid：校验范围与有限性；DistanceKm 本身不做校验，由调用方在边界处调用
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// 文档注释：大圆距离（千米）
// 背景：haversine 公式，球半径 6371km，度数先转弧度。
// 约束：对称；a==b 时返回 0；非法输入行为未定义。
func DistanceKm(a, b Coordinate) float64 {
	if a == b {
		return 0
	}
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lng},
		haversine.Coord{Lat: b.Lat, Lon: b.Lng},
	)
	return km
}

// DirectionsURL：外部地图应用的导航深链；本服务不做路径规划
func DirectionsURL(dest Coordinate) string {
	return "https://www.google.com/maps/dir/?api=1&destination=" +
		strconv.FormatFloat(dest.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(dest.Lng, 'f', -1, 64)
}

// 包 proximity：半径过滤与距离标注；纯函数，无共享状态
package proximity

import (
	"fmt"
	"sort"
	"strings"

	"relief-api/internal/geo"
	"relief-api/internal/store"
)

// Annotated 为带查询中心距离的记录；每次查询重新计算，不缓存
type Annotated struct {
	store.Resource
	DistanceKm    float64 `json:"distance"`
	DirectionsURL string  `json:"directionsUrl"`
}

// 文档注释：半径过滤
// 背景：数据集小，线性扫描即可；逐条计算大圆距离，distance <= radiusKm 时保留（边界包含）。
// 约束：不保证顺序，排序由调用方按需处理；空输入或半径为 0 均为合法输入，返回空切片而非 nil。
func WithinRadius(center geo.Coordinate, radiusKm float64, recs []store.Resource) []Annotated {
	out := make([]Annotated, 0, len(recs))
	for _, r := range recs {
		d := geo.DistanceKm(center, r.Coordinate())
		if d <= radiusKm {
			out = append(out, Annotated{Resource: r, DistanceKm: d, DirectionsURL: geo.DirectionsURL(r.Coordinate())})
		}
	}
	return out
}

// FilterCategories 保留属于任一给定类别的记录；未给类别时原样返回
func FilterCategories(recs []store.Resource, cats ...store.Category) []store.Resource {
	if len(cats) == 0 {
		return recs
	}
	want := make(map[store.Category]bool, len(cats))
	for _, c := range cats {
		want[c] = true
	}
	out := make([]store.Resource, 0, len(recs))
	for _, r := range recs {
		if want[r.Category] {
			out = append(out, r)
		}
	}
	return out
}

// CountByCategory 统计各类别数量，全部类别都有键（可能为 0）
func CountByCategory(recs []store.Resource) map[store.Category]int {
	out := make(map[store.Category]int, len(store.Categories))
	for _, c := range store.Categories {
		out[c] = 0
	}
	for _, r := range recs {
		out[r.Category]++
	}
	return out
}

const (
	SortDistance = "distance"
	SortCategory = "category"
	SortName     = "name"
)

// ParseSort 校验排序键；空串返回 def
func ParseSort(s, def string) (string, error) {
	switch k := strings.ToLower(strings.TrimSpace(s)); k {
	case "":
		return def, nil
	case SortDistance, SortCategory, SortName:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// SortAnnotated 原地稳定排序；相同键按 id 决定先后，结果确定
func SortAnnotated(a []Annotated, key string) {
	sort.SliceStable(a, func(i, j int) bool {
		x, y := a[i], a[j]
		switch key {
		case SortCategory:
			if x.Category != y.Category {
				return categoryRank(x.Category) < categoryRank(y.Category)
			}
			if x.DistanceKm != y.DistanceKm {
				return x.DistanceKm < y.DistanceKm
			}
		case SortName:
			if x.Name != y.Name {
				return x.Name < y.Name
			}
		default:
			if x.DistanceKm != y.DistanceKm {
				return x.DistanceKm < y.DistanceKm
			}
		}
		return x.ID < y.ID
	})
}

// SortResources 用于未带中心点的全量列表；distance 在此无意义，按名称处理
func SortResources(recs []store.Resource, key string) {
	sort.SliceStable(recs, func(i, j int) bool {
		x, y := recs[i], recs[j]
		if key == SortCategory && x.Category != y.Category {
			return categoryRank(x.Category) < categoryRank(y.Category)
		}
		if x.Name != y.Name {
			return x.Name < y.Name
		}
		return x.ID < y.ID
	})
}

func categoryRank(c store.Category) int {
	for i, k := range store.Categories {
		if k == c {
			return i
		}
	}
	return len(store.Categories)
}

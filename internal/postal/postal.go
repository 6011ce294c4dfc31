// 包 postal：邮编键归一化与固定区域静态索引
package postal

import (
	"strings"
	"unicode"

	"relief-api/internal/geo"
)

// Key 为归一化后的邮编键：大写、去除全部空白
type Key string

// Normalize：大写并移除空白；幂等，Normalize(Normalize(x)) == Normalize(x)
func Normalize(raw string) Key {
	up := strings.ToUpper(raw)
	return Key(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, up))
}

// 文档注释：静态邮编索引（只读）
// 背景：维护少量高置信度的本地映射，命中即返回，避免触达限速的外部地理编码服务。
// 约束：启动时固定，无写操作；键可能以"去空格"或"带空格"两种形式存在，查询时两者都尝试。
type Index struct {
	m map[string]geo.Coordinate
}

// NewIndex 复制传入映射，调用方后续修改不影响索引
func NewIndex(entries map[string]geo.Coordinate) *Index {
	m := make(map[string]geo.Coordinate, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return &Index{m: m}
}

// Lookup：先查归一化（去空格）键，再查仅大写的原始形式；首个命中即返回
func (ix *Index) Lookup(raw string) (geo.Coordinate, bool) {
	if ix == nil {
		return geo.Coordinate{}, false
	}
	if c, ok := ix.m[string(Normalize(raw))]; ok {
		return c, true
	}
	if c, ok := ix.m[strings.ToUpper(raw)]; ok {
		return c, true
	}
	return geo.Coordinate{}, false
}

func (ix *Index) Len() int { return len(ix.m) }

// 包 store：救助资源记录的数据访问层（PostgreSQL / 进程内），核心逻辑只读
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"relief-api/internal/geo"
)

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Repository

type Category string

const (
	CategoryShelter Category = "shelter"
	CategoryFood    Category = "food"
	CategoryMedical Category = "medical"
	CategoryWater   Category = "water"
)

// Categories 按展示顺序列出全部类别
var Categories = []Category{CategoryShelter, CategoryFood, CategoryMedical, CategoryWater}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range Categories {
		if k == c {
			return c, true
		}
	}
	return "", false
}

// 文档注释：救助资源记录
// 背景：由仓储持有；核心只读取，不修改不删除。JSON 字段与前端约定保持一致（类别字段名为 type）。
type Resource struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"type"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Address     string    `json:"address"`
	Phone       *string   `json:"phone"`
	Hours       *string   `json:"hours"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (r Resource) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: r.Latitude, Lng: r.Longitude}
}

var ErrInvalidResource = errors.New("invalid resource")

// Validate 用于写入前（种子/导入）的基本校验
func (r Resource) Validate() error {
	if r.ID == "" || strings.TrimSpace(r.Name) == "" {
		return ErrInvalidResource
	}
	if _, ok := ParseCategory(string(r.Category)); !ok {
		return ErrInvalidResource
	}
	if !r.Coordinate().Valid() {
		return ErrInvalidResource
	}
	return nil
}

// Reader 为核心所需的唯一能力：读取全部记录
type Reader interface {
	List(ctx context.Context) ([]Resource, error)
}

// Repository 额外提供种子写入与计数
type Repository interface {
	Reader
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, recs []Resource) error
}

package api

import "relief-api/internal/store"

// 文档注释：对外请求/响应结构
// 约束：字段名与前端约定一致，新增字段需评估兼容性。
type convertRequest struct {
	PostalCode string `json:"postalCode" validate:"required"`
}

type coordinateResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locateResponse struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Source string  `json:"source"`
}

type summaryResponse struct {
	Total  int                    `json:"total"`
	Counts map[store.Category]int `json:"counts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// nearbyQuery 为解析后的列表查询参数；HasCenter 为 false 时坐标与半径不参与过滤
type nearbyQuery struct {
	HasCenter  bool
	Lat        float64 `validate:"gte=-90,lte=90"`
	Lng        float64 `validate:"gte=-180,lte=180"`
	RadiusKm   float64 `validate:"gte=0"`
	Sort       string  `validate:"omitempty,oneof=distance category name"`
	Categories []store.Category
}

const (
	msgPostalRequired  = "Postal code is required"
	msgPostalNotFound  = "Postal code not found. Please try another location or use your current location."
	msgPostalFailed    = "Failed to convert postal code"
	msgListFailed      = "Failed to fetch relief centers"
	msgLocationUnknown = "Location unavailable"
	msgLocateFailed    = "Failed to determine location"
)

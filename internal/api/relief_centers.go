package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"relief-api/internal/geo"
	"relief-api/internal/logger"
	"relief-api/internal/metrics"
	"relief-api/internal/proximity"
	"relief-api/internal/store"
)

// 文档注释：救助点列表
// 背景：同时给出 lat 与 lng 时按半径过滤并标注距离与导航链接；否则返回全集（不标注）。
// 约束：参数非法返回 400；仓储失败返回 500 且不透出细节。
func (h *handler) listReliefCenters(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseNearby(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	recs, err := h.Repo.List(r.Context())
	if err != nil {
		logger.L().Error("relief_centers_list_error", "err", err)
		writeError(w, http.StatusInternalServerError, msgListFailed)
		return
	}
	recs = proximity.FilterCategories(recs, q.Categories...)
	if recs == nil {
		recs = []store.Resource{}
	}

	if !q.HasCenter {
		sortKey := q.Sort
		if sortKey == "" || sortKey == proximity.SortDistance {
			sortKey = proximity.SortName
		}
		proximity.SortResources(recs, sortKey)
		writeJSON(w, http.StatusOK, recs)
		return
	}

	center := geo.Coordinate{Lat: q.Lat, Lng: q.Lng}
	out := proximity.WithinRadius(center, q.RadiusKm, recs)
	sortKey := q.Sort
	if sortKey == "" {
		sortKey = proximity.SortDistance
	}
	proximity.SortAnnotated(out, sortKey)
	metrics.NearbyResultsCount.Observe(float64(len(out)))
	logger.L().Debug("relief_centers_nearby", "radius_km", q.RadiusKm, "total", len(recs), "within", len(out))
	writeJSON(w, http.StatusOK, out)
}

// summary 按类别计数，供前端筛选标签展示；接受与列表相同的过滤参数（sort 除外）
func (h *handler) summary(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseNearby(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	recs, err := h.Repo.List(r.Context())
	if err != nil {
		logger.L().Error("relief_centers_summary_error", "err", err)
		writeError(w, http.StatusInternalServerError, msgListFailed)
		return
	}
	if q.HasCenter {
		within := proximity.WithinRadius(geo.Coordinate{Lat: q.Lat, Lng: q.Lng}, q.RadiusKm, recs)
		recs = recs[:0:0]
		for _, a := range within {
			recs = append(recs, a.Resource)
		}
	}
	recs = proximity.FilterCategories(recs, q.Categories...)
	writeJSON(w, http.StatusOK, summaryResponse{Total: len(recs), Counts: proximity.CountByCategory(recs)})
}

func (h *handler) parseNearby(v url.Values) (nearbyQuery, error) {
	q := nearbyQuery{RadiusKm: h.DefaultRadiusKm, Sort: strings.ToLower(strings.TrimSpace(v.Get("sort")))}
	var err error
	latRaw, lngRaw := v.Get("lat"), v.Get("lng")
	if latRaw != "" {
		if q.Lat, err = parseFinite(latRaw); err != nil {
			return q, errors.New("latitude must be a number")
		}
	}
	if lngRaw != "" {
		if q.Lng, err = parseFinite(lngRaw); err != nil {
			return q, errors.New("longitude must be a number")
		}
	}
	if s := v.Get("radius"); s != "" {
		if q.RadiusKm, err = parseFinite(s); err != nil {
			return q, errors.New("radius must be a number")
		}
	}
	q.HasCenter = latRaw != "" && lngRaw != ""

	if s := v.Get("category"); s != "" {
		for _, part := range strings.Split(s, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			c, ok := store.ParseCategory(part)
			if !ok {
				return q, fmt.Errorf("unknown category %q", strings.TrimSpace(part))
			}
			q.Categories = append(q.Categories, c)
		}
	}

	if err := h.validate.Struct(q); err != nil {
		return q, queryError(err)
	}
	return q, nil
}

// queryError 把校验失败转成可读信息，只取第一个字段
func queryError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return errors.New("invalid query parameters")
	}
	switch ve[0].Field() {
	case "Lat":
		return errors.New("latitude must be between -90 and 90")
	case "Lng":
		return errors.New("longitude must be between -180 and 180")
	case "RadiusKm":
		return errors.New("radius must not be negative")
	case "Sort":
		return errors.New("sort must be one of distance, category, name")
	}
	return errors.New("invalid query parameters")
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}

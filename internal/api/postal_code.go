package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"relief-api/internal/geocode"
	"relief-api/internal/logger"
)

// 文档注释：邮编转坐标
// 背景：解析链内任一失败（包括外部服务故障）对用户统一表现为 404，详细原因只进日志。
// 约束：请求体上限 4KB；postalCode 缺失或为空白返回 400。
func (h *handler) convertPostalCode(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgPostalRequired)
		return
	}
	req.PostalCode = strings.TrimSpace(req.PostalCode)
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, msgPostalRequired)
		return
	}

	c, err := h.Resolver.Resolve(r.Context(), req.PostalCode)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, coordinateResponse{Lat: c.Lat, Lng: c.Lng})
	case errors.Is(err, geocode.ErrNotFound):
		logger.L().Info("postal_convert_not_found", "postal_code", req.PostalCode, "err", err)
		writeError(w, http.StatusNotFound, msgPostalNotFound)
	default:
		logger.L().Error("postal_convert_error", "postal_code", req.PostalCode, "err", err)
		writeError(w, http.StatusInternalServerError, msgPostalFailed)
	}
}

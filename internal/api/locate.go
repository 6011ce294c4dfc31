package api

import (
	"errors"
	"net/http"

	"relief-api/internal/locate"
	"relief-api/internal/logger"
)

// locate 按访问者 IP 返回近似坐标；未配置定位库或无记录时 404
func (h *handler) locate(w http.ResponseWriter, r *http.Request) {
	if h.Locator == nil {
		writeError(w, http.StatusNotFound, msgLocationUnknown)
		return
	}
	ip := locate.ClientIP(r)
	c, err := h.Locator.Locate(ip)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, locateResponse{Lat: c.Lat, Lng: c.Lng, Source: "ip"})
	case errors.Is(err, locate.ErrUnknown):
		writeError(w, http.StatusNotFound, msgLocationUnknown)
	default:
		logger.L().Error("locate_error", "ip", ip, "err", err)
		writeError(w, http.StatusInternalServerError, msgLocateFailed)
	}
}

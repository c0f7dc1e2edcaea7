package httpapi

import (
	"net/http"

	"internmatch-engine/internal/events"
	"internmatch-engine/internal/service"
)

type HealthHandler struct {
	Service *service.Service
	Hub     *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{"ok": true}
	if h.Service != nil && h.Service.Registry != nil {
		out["matching_version"] = h.Service.Registry.Current().Version
		out["versions"] = h.Service.Registry.Versions()
	}
	if h.Hub != nil {
		out["subscribers"] = h.Hub.Subscribers()
	}
	WriteJSON(w, http.StatusOK, out)
}

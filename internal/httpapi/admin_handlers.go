package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"internmatch-engine/internal/config"
	"internmatch-engine/internal/logger"
	"internmatch-engine/internal/service"
)

type AdminHandler struct {
	Service     *service.Service
	CfgVal      *atomic.Value
	RotateToken func() (string, error)
	Log         *logger.Logger
}

// Report serves GET /admin/report[?version=v].
func (h AdminHandler) Report(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Service.Report(r.Context(), strings.TrimSpace(r.URL.Query().Get("version")))
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	WriteJSON(w, http.StatusOK, rep)
}

// Preview serves GET /admin/preview?students=a,b&internships=c&version=v.
func (h AdminHandler) Preview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	students := splitIDs(q.Get("students"))
	internships := splitIDs(q.Get("internships"))
	if len(students) > service.PreviewLimit || len(internships) > service.PreviewLimit {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "too many ids for one preview")
		return
	}
	p, err := h.Service.Preview(r.Context(), strings.TrimSpace(q.Get("version")), students, internships)
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

func splitIDs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h AdminHandler) current() config.Config {
	cfg, _ := h.CfgVal.Load().(config.Config)
	return cfg
}

// Config serves the running config with credentials stripped.
func (h AdminHandler) Config(w http.ResponseWriter, r *http.Request) {
	cfg := h.current()
	cfg.Cache.RedisURL = redactURL(cfg.Cache.RedisURL)
	WriteJSON(w, http.StatusOK, cfg)
}

func (h AdminHandler) ValidateConfig(w http.ResponseWriter, r *http.Request) {
	_, vr := config.NormalizeAndValidate(h.current())
	WriteJSON(w, http.StatusOK, vr)
}

func (h AdminHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RefreshCatalog(r.Context()); err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// RotateAdminToken returns the new token once. The old one stops working
// immediately.
func (h AdminHandler) RotateAdminToken(w http.ResponseWriter, r *http.Request) {
	if h.RotateToken == nil {
		WriteError(w, r, http.StatusNotImplemented, "not_supported", "token rotation is not configured")
		return
	}
	tok, err := h.RotateToken()
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	h.Log.Info("admin token rotated", "request_id", RequestIDFrom(r.Context()))
	WriteJSON(w, http.StatusOK, map[string]any{"admin_token": tok})
}

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		u.User = url.User("REDACTED")
	}
	return u.String()
}

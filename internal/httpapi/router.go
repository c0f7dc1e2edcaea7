package httpapi

import (
	"net/http"
	"strings"
)

// NewMux registers every route. Admin routes are wrapped individually so
// the public ones stay token-free.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	admin := AdminOnly(d.AdminToken, d.Log)

	hh := HealthHandler{Service: d.Service, Hub: d.Hub}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Ranking
	mh := MatchesHandler{Service: d.Service, CfgVal: d.CfgVal}
	ah := ApplicationsHandler{Service: d.Service}
	mux.HandleFunc("/students/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.StudentMatches, // expects /students/{id}/matches
	}))
	mux.HandleFunc("/internships/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/applications") {
				ah.ListForInternship(w, r) // /internships/{id}/applications
				return
			}
			mh.Applicants(w, r) // /internships/{id}/applicants
		},
	}))

	// Applications
	mux.HandleFunc("/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Create,
	}))
	mux.HandleFunc("/applications/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.GetByPath, // expects /applications/{id}
	}))

	// Admin
	adh := AdminHandler{Service: d.Service, CfgVal: d.CfgVal, RotateToken: d.RotateToken, Log: d.Log}
	mux.HandleFunc("/admin/report", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: admin(adh.Report),
	}))
	mux.HandleFunc("/admin/preview", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: admin(adh.Preview),
	}))
	mux.HandleFunc("/admin/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: admin(adh.Config),
	}))
	mux.HandleFunc("/admin/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: admin(adh.ValidateConfig),
	}))
	mux.HandleFunc("/admin/catalog/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: admin(adh.RefreshCatalog),
	}))
	mux.HandleFunc("/admin/token/rotate", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: admin(adh.RotateAdminToken),
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}

// Handler is the full middleware stack around NewMux.
func Handler(d Deps) http.Handler {
	mws := []Middleware{RequestID, Recover(d.Log), AccessLog(d.Log), Cors}
	if d.Limiter != nil {
		mws = append(mws, RateLimit(d.Limiter))
	}
	return Chain(NewMux(d), mws...)
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// pathID extracts {id} from a path shaped prefix + id + suffix.
func pathID(path, prefix, suffix string) (string, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, suffix)
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

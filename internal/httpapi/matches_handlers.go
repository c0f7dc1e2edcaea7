package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"internmatch-engine/internal/config"
	"internmatch-engine/internal/matching"
	"internmatch-engine/internal/profile"
	"internmatch-engine/internal/service"
)

type MatchesHandler struct {
	Service *service.Service
	CfgVal  *atomic.Value
}

// MatchView is one ranked row as the API shows it. Breakdown is only set
// with ?explain=1.
type MatchView struct {
	ID              string              `json:"id"`
	Title           string              `json:"title,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	Score           float64             `json:"score"`
	MaxScore        float64             `json:"max_score"`
	NormalizedScore float64             `json:"normalized_score"`
	Reasons         []matching.Reason   `json:"reasons"`
	Gaps            []matching.Gap      `json:"gaps"`
	Breakdown       *matching.Breakdown `json:"breakdown,omitempty"`
}

type MatchesResponse struct {
	SubjectID       string              `json:"subject_id"`
	MatchingVersion string              `json:"matching_version"`
	Items           []MatchView         `json:"items"`
	Excluded        []matching.Excluded `json:"excluded,omitempty"`
}

const defaultTopN = 2

type viewOpts struct {
	top     int
	explain bool
}

func parseViewOpts(r *http.Request) (viewOpts, string) {
	q := r.URL.Query()
	o := viewOpts{top: defaultTopN}
	if s := q.Get("top"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return o, "top must be a non-negative integer"
		}
		o.top = n
	}
	if s := q.Get("explain"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return o, "explain must be a boolean"
		}
		o.explain = b
	}
	return o, ""
}

func (o viewOpts) view(id, title string, created time.Time, res matching.MatchResult) MatchView {
	v := MatchView{
		ID:              id,
		Title:           title,
		CreatedAt:       created,
		Score:           res.Score,
		MaxScore:        res.MaxScore,
		NormalizedScore: res.NormalizedScore,
		Reasons:         nonNil(res.TopReasons(o.top)),
		Gaps:            nonNil(res.TopGaps(o.top)),
	}
	if o.explain {
		b := res.Breakdown
		v.Breakdown = &b
	}
	return v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (h MatchesHandler) matchLimit() int {
	if h.CfgVal == nil {
		return 0
	}
	cfg, ok := h.CfgVal.Load().(config.Config)
	if !ok {
		return 0
	}
	return cfg.API.MatchLimit
}

// StudentMatches serves GET /students/{id}/matches.
func (h MatchesHandler) StudentMatches(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/students/", "/matches")
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "expected /students/{id}/matches")
		return
	}
	vo, msg := parseViewOpts(r)
	if msg != "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", msg)
		return
	}

	q := r.URL.Query()
	opts := service.RankOptions{Limit: h.matchLimit()}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			WriteError(w, r, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return
		}
		opts.Limit = n
	}
	if s := strings.TrimSpace(q.Get("work_mode")); s != "" {
		opts.WorkMode = profile.ParseWorkMode(s)
		if opts.WorkMode == profile.WorkModeUnknown {
			WriteError(w, r, http.StatusBadRequest, "bad_request", "unknown work_mode "+strconv.Quote(s))
			return
		}
	}
	if s := strings.TrimSpace(q.Get("term")); s != "" {
		opts.Term = profile.ParseSeason(s)
		if opts.Term == profile.SeasonUnknown {
			WriteError(w, r, http.StatusBadRequest, "bad_request", "unknown term "+strconv.Quote(s))
			return
		}
	}

	ranking, err := h.Service.RankForStudent(r.Context(), id, opts)
	if err != nil {
		writeServiceError(w, r, h.Service.Log, err)
		return
	}

	out := MatchesResponse{
		SubjectID:       id,
		MatchingVersion: h.Service.Registry.Current().Version,
		Items:           make([]MatchView, 0, len(ranking.Items)),
		Excluded:        ranking.Excluded,
	}
	for _, it := range ranking.Items {
		out.Items = append(out.Items, vo.view(it.Internship.ID, it.Internship.Title, it.Internship.CreatedAt, it.Match))
	}
	WriteJSON(w, http.StatusOK, out)
}

// Applicants serves GET /internships/{id}/applicants.
func (h MatchesHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/internships/", "/applicants")
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "expected /internships/{id}/applicants")
		return
	}
	vo, msg := parseViewOpts(r)
	if msg != "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", msg)
		return
	}

	ranking, err := h.Service.RankApplicants(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Service.Log, err)
		return
	}

	out := MatchesResponse{
		SubjectID:       id,
		MatchingVersion: h.Service.Registry.Current().Version,
		Items:           make([]MatchView, 0, len(ranking.Items)),
		Excluded:        ranking.Excluded,
	}
	for _, it := range ranking.Items {
		out.Items = append(out.Items, vo.view(it.Student.ID, "", it.Student.CreatedAt, it.Match))
	}
	WriteJSON(w, http.StatusOK, out)
}

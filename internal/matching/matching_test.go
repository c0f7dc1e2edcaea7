package matching_test

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"internmatch-engine/internal/config"
	"internmatch-engine/internal/matching"
	"internmatch-engine/internal/profile"
)

func contribution(t *testing.T, res matching.MatchResult, s matching.Signal) matching.Contribution {
	t.Helper()
	for _, c := range res.Breakdown.Contributions {
		if c.Signal == s {
			return c
		}
	}
	t.Fatalf("no contribution for %s", s)
	return matching.Contribution{}
}

func hasReason(res matching.MatchResult, key string) bool {
	for _, r := range res.Breakdown.Reasons {
		if r.Key == key {
			return true
		}
	}
	return false
}

func hasGap(res matching.MatchResult, key string) bool {
	for _, g := range res.Breakdown.Gaps {
		if g.Key == key {
			return true
		}
	}
	return false
}

func mustEvaluate(t *testing.T, m matching.Model, s profile.Student, in profile.Internship) matching.MatchResult {
	t.Helper()
	res, err := matching.Evaluate(m, s, in)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return res
}

func TestDefaultModelIsValid(t *testing.T) {
	m := matching.DefaultModel()
	if err := m.Validate(); err != nil {
		t.Fatalf("default model invalid: %v", err)
	}
	if m.MaxScore() != 100 {
		t.Errorf("MaxScore = %v, want 100", m.MaxScore())
	}
	if len(m.Signals) != len(matching.AllSignals) {
		t.Errorf("default model has %d signals, want %d", len(m.Signals), len(matching.AllSignals))
	}
}

func TestFullMatch(t *testing.T) {
	m := matching.DefaultModel()
	res := mustEvaluate(t, m, fullStudent(), fullListing())

	if res.Score != 100 || res.NormalizedScore != 1 {
		t.Fatalf("score = %v (%v), want 100 (1)", res.Score, res.NormalizedScore)
	}
	if len(res.Breakdown.Gaps) != 0 {
		t.Errorf("unexpected gaps: %+v", res.Breakdown.Gaps)
	}
	var keys []string
	for _, r := range res.Breakdown.Reasons {
		keys = append(keys, r.Key)
	}
	want := []string{
		"required_skills", // 25
		"major",           // 15, earlier in model order than location
		"location",        // 15
		"coursework",
		"experience",
		"class_year",
		"availability",
		"preferred_skills",
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("reason order = %v, want %v", keys, want)
	}
	if got := res.Breakdown.Reasons[0].Text; got != "Has required skills: Excel, SQL" {
		t.Errorf("reason text = %q", got)
	}
	if got := res.TopReasons(2); len(got) != 2 || got[1].Key != "major" {
		t.Errorf("TopReasons(2) = %+v", got)
	}
}

// Internship requires {SQL, Excel}, student has {Excel}, skill weight 20.
func TestPartialSkillCoverageThresholdBoundaries(t *testing.T) {
	base := matching.DefaultModel()
	base.Signals[0].Weight = 20
	if base.Signals[0].Signal != matching.SignalSkillCoverage {
		t.Fatal("skill_coverage is expected first in the default model")
	}

	s := fullStudent()
	s.Skills = profile.NewSet(excel)
	in := fullListing()

	cases := []struct {
		name            string
		reasonThreshold float64
		gapThreshold    float64
		wantReason      bool
		wantGap         bool
	}{
		{"defaults", 0.6, 0, false, false},
		{"reason threshold at 0.5", 0.5, 0, true, false},
		{"reason threshold just above", 0.5001, 0, false, false},
		{"gap threshold at 0.5", 0.6, 0.5, false, true},
		{"gap threshold just below", 0.6, 0.4999, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := base.Clone()
			m.Signals[0].ReasonThreshold = tc.reasonThreshold
			m.GapThreshold = tc.gapThreshold
			if err := m.Validate(); err != nil {
				t.Fatalf("model invalid: %v", err)
			}
			res := mustEvaluate(t, m, s, in)
			c := contribution(t, res, matching.SignalSkillCoverage)
			if c.RawValue != 0.5 || c.Points != 10 {
				t.Fatalf("raw=%v points=%v, want 0.5 and 10", c.RawValue, c.Points)
			}
			if got := hasReason(res, "required_skills"); got != tc.wantReason {
				t.Errorf("reason present = %v, want %v", got, tc.wantReason)
			}
			if got := hasGap(res, "required_skills"); got != tc.wantGap {
				t.Errorf("gap present = %v, want %v", got, tc.wantGap)
			}
		})
	}
}

func TestNoOverlappingRequiredSkillsIsGap(t *testing.T) {
	s := fullStudent()
	s.Skills = profile.NewSet(python)
	res := mustEvaluate(t, matching.DefaultModel(), s, fullListing())

	c := contribution(t, res, matching.SignalSkillCoverage)
	if c.Points != 0 {
		t.Errorf("points = %v, want exactly 0", c.Points)
	}
	if !hasGap(res, "required_skills") {
		t.Fatalf("required_skills gap missing: %+v", res.Breakdown.Gaps)
	}
	if got := res.Breakdown.Gaps[0].Text; got != "Missing required skills: Excel, SQL" {
		t.Errorf("gap text = %q", got)
	}
}

func TestStudentWithoutSkillsStillGetsRequiredSkillGap(t *testing.T) {
	s := fullStudent()
	s.Skills = profile.Set{}
	res := mustEvaluate(t, matching.DefaultModel(), s, fullListing())
	c := contribution(t, res, matching.SignalSkillCoverage)
	if c.Known || c.Points != 0 || !hasGap(res, "required_skills") {
		t.Errorf("contribution = %+v, gaps = %+v", c, res.Breakdown.Gaps)
	}
}

func TestEmptyMajorSetIsAutomaticPass(t *testing.T) {
	in := fullListing()
	in.Majors = profile.Set{}
	for _, majors := range []profile.Set{{}, profile.NewSet(fin), profile.NewSet(custom("Art History"))} {
		s := fullStudent()
		s.Majors = majors
		res := mustEvaluate(t, matching.DefaultModel(), s, in)
		if c := contribution(t, res, matching.SignalMajorFit); c.RawValue != 1 || c.Points != c.Weight {
			t.Errorf("majors %v: major_fit = %+v, want full credit", majors.Labels(), c)
		}
	}
}

func TestMajorFit(t *testing.T) {
	in := fullListing()
	in.Majors = profile.NewSet(fin, custom("Applied Mathematics"))

	cases := []struct {
		name   string
		majors profile.Set
		want   float64
		known  bool
	}{
		{"canonical", profile.NewSet(fin), 1, true},
		{"free-text token overlap", profile.NewSet(custom("Mathematics and Economics")), 0.5, true},
		{"stopwords only", profile.NewSet(custom("Science")), 0, true},
		{"no overlap", profile.NewSet(cs), 0, true},
		{"unknown", profile.Set{}, 0, false},
	}
	for _, tc := range cases {
		s := fullStudent()
		s.Majors = tc.majors
		res := mustEvaluate(t, matching.DefaultModel(), s, in)
		c := contribution(t, res, matching.SignalMajorFit)
		if c.RawValue != tc.want || c.Known != tc.known {
			t.Errorf("%s: raw=%v known=%v, want %v %v", tc.name, c.RawValue, c.Known, tc.want, tc.known)
		}
		if wantGap := tc.want == 0; hasGap(res, "major") != wantGap {
			t.Errorf("%s: gap present = %v, want %v", tc.name, !wantGap, wantGap)
		}
	}
}

func TestCustomLabelsEarnPartialCredit(t *testing.T) {
	in := fullListing()
	in.RequiredSkills = profile.NewSet(custom("Looker"), sql)
	s := fullStudent()
	s.Skills = profile.NewSet(custom("looker"), sql)
	res := mustEvaluate(t, matching.DefaultModel(), s, in)
	// (1 + 0.5) / 2
	if c := contribution(t, res, matching.SignalSkillCoverage); c.RawValue != 0.75 {
		t.Errorf("raw = %v, want 0.75", c.RawValue)
	}
}

func TestExperienceFit(t *testing.T) {
	cases := []struct {
		student, listing profile.Experience
		want             float64
	}{
		{profile.ExperienceEntry, profile.ExperienceEntry, 1},
		{profile.ExperienceProjects, profile.ExperienceEntry, 0.5},
		{profile.ExperienceExperienced, profile.ExperienceEntry, 0.5},
		{profile.ExperienceNone, profile.ExperienceEntry, 0},
		{profile.ExperienceUnknown, profile.ExperienceEntry, 0},
		{profile.ExperienceNone, profile.ExperienceUnknown, 1},
	}
	for _, tc := range cases {
		s := fullStudent()
		s.Experience = tc.student
		in := fullListing()
		in.Experience = tc.listing
		res := mustEvaluate(t, matching.DefaultModel(), s, in)
		if c := contribution(t, res, matching.SignalExperienceFit); c.RawValue != tc.want {
			t.Errorf("%s vs %s: raw = %v, want %v", tc.student, tc.listing, c.RawValue, tc.want)
		}
	}
}

func TestYearFitUnknownIsNotMismatch(t *testing.T) {
	s := fullStudent()
	s.Year = profile.YearUnknown
	res := mustEvaluate(t, matching.DefaultModel(), s, fullListing())
	c := contribution(t, res, matching.SignalYearFit)
	if c.Known || c.Points != 0 {
		t.Errorf("contribution = %+v", c)
	}
	// listing targets specific years, so the missing year is still a gap
	if !hasGap(res, "class_year") {
		t.Error("class_year gap expected for a required dimension")
	}

	in := fullListing()
	in.AnyYear = true
	res = mustEvaluate(t, matching.DefaultModel(), s, in)
	if c := contribution(t, res, matching.SignalYearFit); c.RawValue != 1 || hasGap(res, "class_year") {
		t.Errorf("any-year listing should pass: %+v", c)
	}
}

func TestUnknownDataOnUnconstrainedDimensionIsNotGap(t *testing.T) {
	s := profile.Student{ID: "st-empty"}
	in := openListing("in-open", t0)
	res := mustEvaluate(t, matching.DefaultModel(), s, in)
	if len(res.Breakdown.Gaps) != 0 {
		t.Errorf("gaps = %+v, want none", res.Breakdown.Gaps)
	}
	if res.NormalizedScore != 1 {
		t.Errorf("open listing should be a full match, got %v", res.NormalizedScore)
	}
}

func TestWorkModeFit(t *testing.T) {
	near := profile.Location{City: "dallas", State: "TX", Lat: 32.80, Lng: -96.80, HasCoords: true}

	cases := []struct {
		name    string
		mode    profile.WorkMode
		states  []string
		listing profile.Location
		student profile.Location
		commute int
		travel  profile.Transport
		want    float64
		known   bool
	}{
		{"remote anywhere", profile.WorkModeRemote, nil, profile.Location{}, profile.Location{}, 0, profile.TransportUnknown, 1, true},
		{"remote state ok", profile.WorkModeRemote, []string{"CA", "TX"}, profile.Location{}, profile.Location{State: "TX"}, 0, profile.TransportUnknown, 1, true},
		{"remote state blocked", profile.WorkModeRemote, []string{"CA"}, profile.Location{}, profile.Location{State: "TX"}, 0, profile.TransportUnknown, 0, true},
		{"remote state unknown", profile.WorkModeRemote, []string{"CA"}, profile.Location{}, profile.Location{}, 0, profile.TransportUnknown, 0, false},
		{"drive short", profile.WorkModeOnSite, nil, near, fullStudent().Location, 45, profile.TransportCar, 1, true},
		{"walk within limit", profile.WorkModeHybrid, nil, near, fullStudent().Location, 45, profile.TransportWalk, 1, true},
		{"walk over limit", profile.WorkModeHybrid, nil, near, fullStudent().Location, 20, profile.TransportWalk, 0, true},
		{"same city no coords", profile.WorkModeOnSite, nil, profile.Location{City: "austin", State: "TX"}, profile.Location{City: "austin", State: "TX"}, 0, profile.TransportUnknown, 1, true},
		{"other state no coords", profile.WorkModeOnSite, nil, profile.Location{City: "austin", State: "TX"}, profile.Location{City: "reno", State: "NV"}, 0, profile.TransportUnknown, 0, true},
		{"same state other city", profile.WorkModeOnSite, nil, profile.Location{City: "austin", State: "TX"}, profile.Location{City: "dallas", State: "TX"}, 0, profile.TransportUnknown, 0, false},
		{"unknown mode", profile.WorkModeUnknown, nil, profile.Location{}, profile.Location{}, 0, profile.TransportUnknown, 1, true},
		{"on site without listing location", profile.WorkModeOnSite, nil, profile.Location{}, fullStudent().Location, 45, profile.TransportCar, 1, true},
		{"hybrid without listing location", profile.WorkModeHybrid, nil, profile.Location{}, profile.Location{}, 0, profile.TransportUnknown, 1, true},
	}
	for _, tc := range cases {
		s := fullStudent()
		s.Location, s.MaxCommuteMinutes, s.Transport = tc.student, tc.commute, tc.travel
		in := fullListing()
		in.WorkMode, in.RemoteStates, in.Location = tc.mode, tc.states, tc.listing
		res := mustEvaluate(t, matching.DefaultModel(), s, in)
		c := contribution(t, res, matching.SignalWorkModeFit)
		if c.RawValue != tc.want || c.Known != tc.known {
			t.Errorf("%s: raw=%v known=%v, want %v %v (%+v)", tc.name, c.RawValue, c.Known, tc.want, tc.known, c)
		}
	}
}

func TestMissingListingLocationScoresLikeUnknownMode(t *testing.T) {
	s := fullStudent()
	onSite := fullListing()
	onSite.Location = profile.Location{}
	unknown := fullListing()
	unknown.WorkMode, unknown.Location = profile.WorkModeUnknown, profile.Location{}

	a := mustEvaluate(t, matching.DefaultModel(), s, onSite)
	b := mustEvaluate(t, matching.DefaultModel(), s, unknown)
	if a.Score != b.Score {
		t.Errorf("on-site without location scored %v, unknown mode %v", a.Score, b.Score)
	}
	if hasGap(a, "location") {
		t.Errorf("missing listing location produced a gap: %+v", a.Breakdown.Gaps)
	}
}

func TestAvailabilityAfterTermIsAGap(t *testing.T) {
	for _, month := range []int{9, 10, 12, 1} {
		s := fullStudent()
		s.AvailabilityStartMonth = month
		in := fullListing()
		in.Term, in.HoursMin, in.HoursMax = profile.SeasonSummer, 0, 0

		res := mustEvaluate(t, matching.DefaultModel(), s, in)
		c := contribution(t, res, matching.SignalAvailabilityFit)
		if c.RawValue != 0 || c.Points != 0 {
			t.Errorf("month %d: raw=%v points=%v, want 0", month, c.RawValue, c.Points)
		}
		if hasReason(res, "availability") {
			t.Errorf("month %d: unexpected availability reason", month)
		}
		if !hasGap(res, "availability") {
			t.Errorf("month %d: missing availability gap, gaps=%+v", month, res.Breakdown.Gaps)
		}
	}
}

func TestAvailabilityFit(t *testing.T) {
	cases := []struct {
		name   string
		term   profile.Season
		lo, hi int
		month  int
		hours  int
		want   float64
	}{
		{"before term", profile.SeasonSummer, 0, 0, 4, 0, 1},
		{"mid term", profile.SeasonSummer, 0, 0, 6, 0, 0.75},
		{"after term", profile.SeasonSummer, 0, 0, 9, 0, 0},
		{"too early for lead", profile.SeasonSummer, 0, 0, 1, 0, 0},
		{"after term with hours", profile.SeasonSummer, 20, 40, 10, 30, 0.5},
		{"mid term and short hours", profile.SeasonSummer, 20, 40, 6, 10, 0.625},
		{"too many hours", profile.SeasonUnknown, 10, 20, 0, 40, 0.5},
		{"winter wraps", profile.SeasonWinter, 0, 0, 1, 0, 0.6667},
		{"no constraint", profile.SeasonUnknown, 0, 0, 0, 0, 1},
		{"unknown student", profile.SeasonFall, 0, 0, 0, 0, 0},
	}
	for _, tc := range cases {
		s := fullStudent()
		s.AvailabilityStartMonth, s.HoursPerWeek = tc.month, tc.hours
		in := fullListing()
		in.Term, in.HoursMin, in.HoursMax = tc.term, tc.lo, tc.hi
		res := mustEvaluate(t, matching.DefaultModel(), s, in)
		if c := contribution(t, res, matching.SignalAvailabilityFit); c.RawValue != tc.want {
			t.Errorf("%s: raw = %v, want %v", tc.name, c.RawValue, tc.want)
		}
	}
}

func randomSet(r *rand.Rand, pool []profile.Item) profile.Set {
	var items []profile.Item
	for _, it := range pool {
		if r.Intn(2) == 0 {
			items = append(items, it)
		}
	}
	return profile.NewSet(items...)
}

func randomPair(r *rand.Rand) (profile.Student, profile.Internship) {
	skillPool := []profile.Item{sql, excel, python, custom("Looker"), custom("Figma")}
	majorPool := []profile.Item{cs, fin, custom("Applied Mathematics")}
	years := append([]profile.Year{profile.YearUnknown}, profile.Years...)
	exps := append([]profile.Experience{profile.ExperienceUnknown}, profile.Experiences...)
	modes := append([]profile.WorkMode{profile.WorkModeUnknown}, profile.WorkModes...)
	seasons := append([]profile.Season{profile.SeasonUnknown}, profile.Seasons...)

	s := profile.Student{
		ID:                     "st",
		Majors:                 randomSet(r, majorPool),
		Year:                   years[r.Intn(len(years))],
		Experience:             exps[r.Intn(len(exps))],
		Skills:                 randomSet(r, skillPool),
		Coursework:             randomSet(r, []profile.Item{dbs, custom("Statistics")}),
		AvailabilityStartMonth: r.Intn(13),
		HoursPerWeek:           r.Intn(50),
		Location:               profile.Location{State: []string{"", "TX", "CA"}[r.Intn(3)], Lat: 30 + r.Float64()*5, Lng: -100 + r.Float64()*5, HasCoords: r.Intn(2) == 0},
		MaxCommuteMinutes:      r.Intn(90),
		Transport:              profile.Transports[r.Intn(len(profile.Transports))],
	}
	in := profile.Internship{
		ID:                 "in",
		RequiredSkills:     randomSet(r, skillPool),
		PreferredSkills:    randomSet(r, skillPool),
		RequiredCoursework: randomSet(r, []profile.Item{dbs}),
		Majors:             randomSet(r, majorPool),
		TargetYears:        []profile.Year{profile.Years[r.Intn(len(profile.Years))]},
		AnyYear:            r.Intn(4) == 0,
		Experience:         exps[r.Intn(len(exps))],
		WorkMode:           modes[r.Intn(len(modes))],
		Term:               seasons[r.Intn(len(seasons))],
		HoursMin:           r.Intn(25),
		HoursMax:           25 + r.Intn(20),
		Location:           profile.Location{State: "TX", City: "dallas", Lat: 30 + r.Float64()*5, Lng: -100 + r.Float64()*5, HasCoords: r.Intn(2) == 0},
	}
	if r.Intn(3) == 0 {
		in.RemoteStates = []string{"TX"}
	}
	return s, in
}

func TestScoreBoundsAndDeterminism(t *testing.T) {
	m := matching.DefaultModel()
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		s, in := randomPair(r)
		a := mustEvaluate(t, m, s, in)
		b := mustEvaluate(t, m, s, in)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("pair %d: results differ between calls", i)
		}
		if a.Score < 0 || a.Score > a.MaxScore {
			t.Fatalf("pair %d: score %v outside [0, %v]", i, a.Score, a.MaxScore)
		}
		if a.NormalizedScore < 0 || a.NormalizedScore > 1 {
			t.Fatalf("pair %d: normalized %v outside [0, 1]", i, a.NormalizedScore)
		}
		for _, c := range a.Breakdown.Contributions {
			if c.Points < 0 || c.Points > c.Weight {
				t.Fatalf("pair %d: %s points %v outside [0, %v]", i, c.Signal, c.Points, c.Weight)
			}
		}
	}
}

func TestAddingMatchingSkillNeverLowersScore(t *testing.T) {
	m := matching.DefaultModel()
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		s, in := randomPair(r)
		before := mustEvaluate(t, m, s, in)
		for _, it := range append(in.RequiredSkills.Items, in.PreferredSkills.Items...) {
			if it.Custom() || s.Skills.HasID(it.ID) {
				continue
			}
			grown := s
			grown.Skills = profile.NewSet(append(append([]profile.Item(nil), s.Skills.Items...), it)...)
			after := mustEvaluate(t, m, grown, in)
			if after.Score < before.Score {
				t.Fatalf("pair %d: adding %s lowered score %v -> %v", i, it.ID, before.Score, after.Score)
			}
		}
	}
}

func TestEvaluateRejectsMissingIDs(t *testing.T) {
	_, err := matching.Evaluate(matching.DefaultModel(), profile.Student{}, fullListing())
	if !errors.Is(err, matching.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestEvaluateSafeIsolatesPanics(t *testing.T) {
	m := matching.DefaultModel()
	m.Signals = append(m.Signals, matching.SignalDefinition{Signal: "bogus", Weight: 1, ReasonThreshold: 1})
	_, err := matching.EvaluateSafe(m, fullStudent(), fullListing())
	if !errors.Is(err, matching.ErrInvariant) {
		t.Errorf("err = %v, want ErrInvariant", err)
	}
}

func TestModelValidation(t *testing.T) {
	cases := map[string]func(*matching.Model){
		"negative weight":   func(m *matching.Model) { m.Signals[0].Weight = -1 },
		"zero weight":       func(m *matching.Model) { m.Signals[0].Weight = 0 },
		"duplicate signal":  func(m *matching.Model) { m.Signals[1].Signal = m.Signals[0].Signal },
		"unknown signal":    func(m *matching.Model) { m.Signals[0].Signal = "vibes" },
		"empty version":     func(m *matching.Model) { m.Version = "" },
		"no signals":        func(m *matching.Model) { m.Signals = nil },
		"reason below gap":  func(m *matching.Model) { m.GapThreshold = 0.7 },
		"partial over one":  func(m *matching.Model) { m.Partial.AdjacentExperience = 1.5 },
		"zero commute":      func(m *matching.Model) { m.DefaultCommuteMinutes = 0 },
		"gap threshold one": func(m *matching.Model) { m.GapThreshold = 1 },
	}
	for name, mutate := range cases {
		m := matching.DefaultModel()
		mutate(&m)
		if err := m.Validate(); !errors.Is(err, matching.ErrInvalidModel) {
			t.Errorf("%s: err = %v, want ErrInvalidModel", name, err)
		}
	}
}

func f(v float64) *float64 { return &v }

func TestBuildRegistry(t *testing.T) {
	reg, err := matching.BuildRegistry(config.Scoring{
		CurrentVersion: "1.2.0",
		Models: []config.ModelSpec{
			{Version: "1.2.0", Extends: "1.1.0", GapThreshold: f(0.2)},
			{Version: "1.1.0", Signals: []config.SignalSpec{
				{Key: "skill_coverage", Weight: 40},
				{Key: "major_fit", Weight: 10, ReasonThreshold: f(0.5)},
			}},
		},
	})
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if got, want := reg.Versions(), []string{"1.0.0", "1.1.0", "1.2.0"}; !reflect.DeepEqual(got, want) {
		t.Errorf("versions = %v, want %v", got, want)
	}
	cur := reg.Current()
	if cur.Version != "1.2.0" || cur.MaxScore() != 50 || cur.GapThreshold != 0.2 {
		t.Errorf("current = %+v", cur)
	}
	d, _ := cur.Definition(matching.SignalMajorFit)
	if d.ReasonThreshold != 0.5 || d.Description == "" {
		t.Errorf("major_fit definition = %+v", d)
	}

	// mutating a returned model must not leak into the registry
	cur.Signals[0].Weight = 999
	if reg.Current().Signals[0].Weight != 40 {
		t.Error("registry model was mutated through a returned copy")
	}
}

func TestBuildRegistryErrors(t *testing.T) {
	cases := map[string]config.Scoring{
		"unknown signal":  {Models: []config.ModelSpec{{Version: "2", Signals: []config.SignalSpec{{Key: "vibes", Weight: 1}}}}},
		"unknown extends": {Models: []config.ModelSpec{{Version: "2", Extends: "9"}}},
		"unknown current": {CurrentVersion: "3"},
		"negative weight": {Models: []config.ModelSpec{{Version: "2", Signals: []config.SignalSpec{{Key: "year_fit", Weight: -2}}}}},
		"duplicate":       {Models: []config.ModelSpec{{Version: "1.0.0"}}},
	}
	for name, sc := range cases {
		if _, err := matching.BuildRegistry(sc); !errors.Is(err, matching.ErrInvalidModel) {
			t.Errorf("%s: err = %v, want ErrInvalidModel", name, err)
		}
	}
}

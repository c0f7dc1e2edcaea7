package profile

import (
	"strings"

	"internmatch-engine/internal/catalog"
)

// Unknown is the shared "no information" value for every enum below. It is
// never a match and never a mismatch.
const Unknown = "unknown"

type Year string

const (
	YearFreshman  Year = "freshman"
	YearSophomore Year = "sophomore"
	YearJunior    Year = "junior"
	YearSenior    Year = "senior"
	YearGraduate  Year = "graduate"
	YearAny       Year = "any"
	YearUnknown   Year = Unknown
)

var Years = []Year{YearFreshman, YearSophomore, YearJunior, YearSenior, YearGraduate}

var yearAliases = map[string]Year{
	"freshman": YearFreshman, "first year": YearFreshman, "1st year": YearFreshman, "fr": YearFreshman, "1": YearFreshman,
	"sophomore": YearSophomore, "second year": YearSophomore, "2nd year": YearSophomore, "so": YearSophomore, "2": YearSophomore,
	"junior": YearJunior, "third year": YearJunior, "3rd year": YearJunior, "jr": YearJunior, "3": YearJunior,
	"senior": YearSenior, "fourth year": YearSenior, "4th year": YearSenior, "sr": YearSenior, "4": YearSenior,
	"graduate": YearGraduate, "grad": YearGraduate, "masters": YearGraduate, "master s": YearGraduate, "phd": YearGraduate,
	"any": YearAny, "all": YearAny, "any year": YearAny,
}

func ParseYear(s string) Year {
	if y, ok := yearAliases[catalog.NormalizeLabel(s)]; ok {
		return y
	}
	return YearUnknown
}

// Experience levels are ordered; Rank is used for adjacency.
type Experience string

const (
	ExperienceNone        Experience = "none"
	ExperienceProjects    Experience = "projects"
	ExperienceEntry       Experience = "entry"
	ExperienceExperienced Experience = "experienced"
	ExperienceUnknown     Experience = Unknown
)

var Experiences = []Experience{ExperienceNone, ExperienceProjects, ExperienceEntry, ExperienceExperienced}

var experienceAliases = map[string]Experience{
	"none": ExperienceNone, "no experience": ExperienceNone, "beginner": ExperienceNone,
	"projects": ExperienceProjects, "project": ExperienceProjects, "coursework projects": ExperienceProjects, "class projects": ExperienceProjects,
	"entry": ExperienceEntry, "entry level": ExperienceEntry, "some experience": ExperienceEntry, "previous internship": ExperienceEntry,
	"experienced": ExperienceExperienced, "intermediate": ExperienceExperienced, "advanced": ExperienceExperienced,
}

func ParseExperience(s string) Experience {
	if e, ok := experienceAliases[catalog.NormalizeLabel(s)]; ok {
		return e
	}
	return ExperienceUnknown
}

// Rank returns the position of e in Experiences, or -1 for unknown.
func (e Experience) Rank() int {
	for i, x := range Experiences {
		if x == e {
			return i
		}
	}
	return -1
}

type WorkMode string

const (
	WorkModeRemote  WorkMode = "remote"
	WorkModeHybrid  WorkMode = "hybrid"
	WorkModeOnSite  WorkMode = "on_site"
	WorkModeUnknown WorkMode = Unknown
)

var WorkModes = []WorkMode{WorkModeRemote, WorkModeHybrid, WorkModeOnSite}

func ParseWorkMode(s string) WorkMode {
	m := catalog.NormalizeLabel(s)
	switch {
	case m == "":
		return WorkModeUnknown
	case strings.Contains(m, "hybrid"):
		return WorkModeHybrid
	case strings.Contains(m, "remote"), m == "virtual", m == "wfh":
		return WorkModeRemote
	case m == "on site", m == "onsite", m == "in person", m == "office", m == "in office":
		return WorkModeOnSite
	default:
		return WorkModeUnknown
	}
}

type Season string

const (
	SeasonSpring  Season = "spring"
	SeasonSummer  Season = "summer"
	SeasonFall    Season = "fall"
	SeasonWinter  Season = "winter"
	SeasonUnknown Season = Unknown
)

var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

func ParseSeason(s string) Season {
	switch m := catalog.NormalizeLabel(s); {
	case strings.HasPrefix(m, "spring"):
		return SeasonSpring
	case strings.HasPrefix(m, "summer"):
		return SeasonSummer
	case strings.HasPrefix(m, "fall"), strings.HasPrefix(m, "autumn"):
		return SeasonFall
	case strings.HasPrefix(m, "winter"):
		return SeasonWinter
	default:
		return SeasonUnknown
	}
}

// Window returns the term's first and last month. Winter wraps the year
// (December through February).
func (s Season) Window() (start, end int, ok bool) {
	switch s {
	case SeasonSpring:
		return 1, 5, true
	case SeasonSummer:
		return 5, 8, true
	case SeasonFall:
		return 8, 12, true
	case SeasonWinter:
		return 12, 2, true
	default:
		return 0, 0, false
	}
}

type Transport string

const (
	TransportCar     Transport = "car"
	TransportTransit Transport = "transit"
	TransportBike    Transport = "bike"
	TransportWalk    Transport = "walk"
	TransportUnknown Transport = Unknown
)

var Transports = []Transport{TransportCar, TransportTransit, TransportBike, TransportWalk}

var transportAliases = map[string]Transport{
	"car": TransportCar, "drive": TransportCar, "driving": TransportCar,
	"transit": TransportTransit, "public transit": TransportTransit, "bus": TransportTransit, "train": TransportTransit, "subway": TransportTransit,
	"bike": TransportBike, "bicycle": TransportBike, "cycling": TransportBike,
	"walk": TransportWalk, "walking": TransportWalk,
}

func ParseTransport(s string) Transport {
	if t, ok := transportAliases[catalog.NormalizeLabel(s)]; ok {
		return t
	}
	return TransportUnknown
}

// NormalizeState upper-cases two-letter US state codes and keeps anything
// else as normalized text.
func NormalizeState(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 2 {
		return strings.ToUpper(s)
	}
	return catalog.NormalizeLabel(s)
}

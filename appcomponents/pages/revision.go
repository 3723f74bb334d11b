package pages

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vcrobe/landing/appcomponents/sections"
)

// ErrInvalidRevision is returned for revisions outside Revision1..LatestRevision.
var ErrInvalidRevision = errors.New("pages: invalid revision")

// Revision identifies one published arrangement of the Home page. Each
// revision adds one section below the previous revision's sections.
type Revision int

const (
	Revision1 Revision = iota + 1 // header and hero
	Revision2                     // adds solution features
	Revision3                     // adds the tech section

	LatestRevision = Revision3
)

var revisionSections = map[Revision][]sections.Name{
	Revision1: {sections.NavHeaderName, sections.HeroSectionName},
	Revision2: {sections.NavHeaderName, sections.HeroSectionName, sections.SolutionFeaturesName},
	Revision3: {sections.NavHeaderName, sections.HeroSectionName, sections.SolutionFeaturesName, sections.TechSectionName},
}

// Revisions lists every valid revision, oldest first.
func Revisions() []Revision {
	return []Revision{Revision1, Revision2, Revision3}
}

// Valid reports whether r names a published revision.
func (r Revision) Valid() bool {
	_, ok := revisionSections[r]
	return ok
}

// Sections returns the sections r renders, top to bottom.
func (r Revision) Sections() []sections.Name {
	names := revisionSections[r]
	out := make([]sections.Name, len(names))
	copy(out, names)
	return out
}

func (r Revision) String() string {
	return "r" + strconv.Itoa(int(r))
}

// ParseRevision accepts "2", "r2" or "latest", in any letter case. Padded
// forms such as "02", "+2" or " 2" are rejected.
func ParseRevision(s string) (Revision, error) {
	s = strings.ToLower(s)
	if s == "latest" {
		return LatestRevision, nil
	}
	digits := strings.TrimPrefix(s, "r")
	n, err := strconv.Atoi(digits)
	if err != nil || strconv.Itoa(n) != digits {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRevision, s)
	}
	rev := Revision(n)
	if !rev.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRevision, s)
	}
	return rev, nil
}

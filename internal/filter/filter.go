// Package filter defines which relations qualify for extraction. Predicates
// are plain values over decoded relations, so the pipeline stays statically
// analyzable and each predicate can be tested without the assembler.
package filter

import (
	"regexp"
	"slices"
	"strings"

	"github.com/paulmach/osm"
)

// Predicate decides whether a relation qualifies.
type Predicate func(*osm.Relation) bool

// All accepts every relation. Used by the stats command's -all mode.
func All(*osm.Relation) bool { return true }

// Rules are the tag constraints an administrative boundary must satisfy.
type Rules struct {
	// Boundary is the required value of the "boundary" tag.
	Boundary string
	// RegionKey is a tag that must be present, whatever its value.
	RegionKey string
	// AdminLevels are the accepted values of the "admin_level" tag.
	AdminLevels []string
}

// DefaultRules selects named administrative boundaries carrying a German
// regional key, at country through municipality level.
func DefaultRules() Rules {
	return Rules{
		Boundary:    "administrative",
		RegionKey:   "de:regionalschluessel",
		AdminLevels: []string{"2", "4", "6", "7", "8"},
	}
}

// Target returns the predicate selecting boundary relations that satisfy the
// given rules.
func Target(rules Rules) Predicate {
	return func(rel *osm.Relation) bool {
		tags := rel.Tags
		return tags.Find("name") != "" &&
			tags.Find("type") == "boundary" &&
			tags.Find("boundary") == rules.Boundary &&
			tags.Find(rules.RegionKey) != "" &&
			slices.Contains(rules.AdminLevels, tags.Find("admin_level"))
	}
}

// ByQuery matches relations by name. The query is used as a regular
// expression when it compiles, and as a case-insensitive substring otherwise.
func ByQuery(query string) Predicate {
	pattern := strings.ToLower(query)
	re, err := regexp.Compile(query)
	if err != nil {
		re = nil
	}

	return func(rel *osm.Relation) bool {
		name := rel.Tags.Find("name")
		if name == "" {
			return false
		}
		if re != nil {
			return re.MatchString(name)
		}
		return strings.Contains(strings.ToLower(name), pattern)
	}
}

// And combines predicates; the result accepts a relation only when every
// predicate does.
func And(predicates ...Predicate) Predicate {
	return func(rel *osm.Relation) bool {
		for _, p := range predicates {
			if !p(rel) {
				return false
			}
		}
		return true
	}
}

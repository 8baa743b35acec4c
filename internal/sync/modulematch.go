package sync

import (
	"strings"

	"github.com/baula-dev/baula-sync/internal/models"
)

// MatchRule is a pure predicate deciding whether a course belongs to a
// module-curriculum entry. Rules are evaluated in order, first match wins.
type MatchRule func(course *models.Course, mc *models.ModuleCourse) bool

// moduleMatchRules is the default rule chain: acronym containment in the
// short name, in the full name, and finally in the organizational text with
// an additional name-prefix check. Every rule also requires the curriculum
// entry's type to appear in the course type.
var moduleMatchRules = []MatchRule{
	func(course *models.Course, mc *models.ModuleCourse) bool {
		return strings.Contains(course.Short, mc.Acronym) && typeMatches(course, mc)
	},
	func(course *models.Course, mc *models.ModuleCourse) bool {
		return strings.Contains(course.Name, mc.Acronym) && typeMatches(course, mc)
	},
	func(course *models.Course, mc *models.ModuleCourse) bool {
		return strings.Contains(course.Organizational, mc.Acronym) &&
			typeMatches(course, mc) &&
			(mc.Name == "" || strings.Contains(course.Name, mc.Name) || len(mc.Name) < 3)
	},
}

func typeMatches(course *models.Course, mc *models.ModuleCourse) bool {
	return strings.Contains(strings.ToLower(course.Type), strings.ToLower(mc.Type))
}

// matchesModuleCourse evaluates the rule chain. Entries without an acronym
// can never match.
func matchesModuleCourse(course *models.Course, mc *models.ModuleCourse, rules []MatchRule) bool {
	if mc.Acronym == "" {
		return false
	}
	for _, rule := range rules {
		if rule(course, mc) {
			return true
		}
	}
	return false
}

// Package classify assigns a role family and a seniority grade to a
// free-text vacancy title. Both functions are total: any string, including
// empty or random input, resolves to a defined tag.
//
// Classification is heuristic, first match wins. The rule order below is the
// whole contract: to change precedence, reorder the table.
package classify

import (
	"strings"

	"golang.org/x/text/cases"

	"go-response-tracker/internal/models"
)

// RoleRule maps a title to a role family when ALL of its substrings are
// present in the folded title. OR within one tag is expressed as several
// rules with the same tag.
type RoleRule struct {
	Tag models.RoleTag
	All []string
}

// RoleRules is evaluated top to bottom. Compound rules must come before the
// single-keyword rules they disambiguate: a title carrying both a marketing
// and a product keyword is product-marketing, not either alone.
var RoleRules = []RoleRule{
	{Tag: models.RoleProductMarketing, All: []string{"маркет", "продукт"}},
	{Tag: models.RoleProductMarketing, All: []string{"marketing", "product"}},
	// Analyst before product: "Продуктовый аналитик" is an analyst role.
	{Tag: models.RoleAnalyst, All: []string{"аналитик"}},
	{Tag: models.RoleAnalyst, All: []string{"analyst"}},
	{Tag: models.RoleProduct, All: []string{"продакт"}},
	{Tag: models.RoleProduct, All: []string{"продукт"}},
	{Tag: models.RoleProduct, All: []string{"product"}},
	{Tag: models.RoleProject, All: []string{"проджект"}},
	{Tag: models.RoleProject, All: []string{"проект"}},
	{Tag: models.RoleProject, All: []string{"project"}},
	{Tag: models.RoleMarketing, All: []string{"маркет"}},
	{Tag: models.RoleMarketing, All: []string{"marketing"}},
	{Tag: models.RoleDesign, All: []string{"дизайн"}},
	{Tag: models.RoleDesign, All: []string{"design"}},
	{Tag: models.RoleDevelopment, All: []string{"разработ"}},
	{Tag: models.RoleDevelopment, All: []string{"программист"}},
	{Tag: models.RoleDevelopment, All: []string{"developer"}},
	{Tag: models.RoleDevelopment, All: []string{"engineer"}},
	{Tag: models.RoleHR, All: []string{"рекрут"}},
	{Tag: models.RoleHR, All: []string{"recruiter"}},
	{Tag: models.RoleHR, All: []string{"hr-"}},
	{Tag: models.RoleSales, All: []string{"продаж"}},
	{Tag: models.RoleSales, All: []string{"sales"}},
}

// GradeRule maps a title to a grade when ANY of its substrings is present in
// the folded title.
type GradeRule struct {
	Tag models.GradeTag
	Any []string
}

// GradeRules is evaluated top to bottom: junior markers before lead markers,
// so a title carrying both resolves to junior. That tie-break is deliberate.
var GradeRules = []GradeRule{
	{Tag: models.GradeJunior, Any: []string{
		"junior", "джуниор", "джун", "стажер", "стажёр", "intern", "trainee", "начинающ",
	}},
	{Tag: models.GradeLead, Any: []string{
		"senior", "сеньор", "синьор", "lead", "лид", "ведущий", "старший", "руководитель", "head", "principal", "staff",
	}},
}

// Role returns the role family for a title, RoleOther when nothing matches.
func Role(title string) models.RoleTag {
	t := fold(title)
	for _, r := range RoleRules {
		if matchesAll(t, r.All) {
			return r.Tag
		}
	}
	return models.RoleOther
}

// Grade returns the seniority grade for a title, GradeMiddle when nothing
// matches.
func Grade(title string) models.GradeTag {
	t := fold(title)
	for _, r := range GradeRules {
		if matchesAny(t, r.Any) {
			return r.Tag
		}
	}
	return models.GradeMiddle
}

// fold case-folds the title so rules match Cyrillic and Latin uppercase
// alike. cases.Fold caser is stateful, so a fresh one per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func matchesAll(title string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(title, sub) {
			return false
		}
	}
	return len(subs) > 0
}

func matchesAny(title string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(title, sub) {
			return true
		}
	}
	return false
}

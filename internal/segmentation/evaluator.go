package segmentation

import (
	"strconv"
	"strings"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
)

// Matches decides whether one lead satisfies one filter condition.
//
// Comparison rules match the admin UI the segments were authored in:
// equals/not_equals and contains compare case-insensitive string forms,
// greater_than/less_than parse both sides as numbers and fail closed when
// either side does not parse. Unknown operators never match. Malformed input
// degrades to false, it never errors.
func Matches(lead *entity.Lead, c FilterCondition) bool {
	leadValue := lead.FilterValue(c.Field)

	switch c.Operator {
	case OpEquals:
		return strings.EqualFold(leadValue, c.Value)
	case OpNotEquals:
		return !strings.EqualFold(leadValue, c.Value)
	case OpGreaterThan:
		lv, fv, ok := numericPair(leadValue, c.Value)
		return ok && lv > fv
	case OpLessThan:
		lv, fv, ok := numericPair(leadValue, c.Value)
		return ok && lv < fv
	case OpContains:
		return strings.Contains(strings.ToLower(leadValue), strings.ToLower(c.Value))
	default:
		return false
	}
}

func numericPair(a, b string) (float64, float64, bool) {
	av, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, false
	}
	bv, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, false
	}
	return av, bv, true
}

package segmentation

import "github.com/rusingacademy/ecosystem-crm/internal/entity"

// MatchingLeads applies a segment's rules to a lead snapshot and returns the
// matching subset in the snapshot's order.
//
// Incomplete conditions are dropped first. A segment with no usable
// conditions matches nothing, under "or" logic too. Pure function: the same
// snapshot and rules always produce the same subset, and nothing is cached
// between calls. Cost is O(leads x filters), which is fine for the lead
// volumes the admin pages work with.
func MatchingLeads(leads []entity.Lead, filters []FilterCondition, logic Logic) []entity.Lead {
	valid := validFilters(filters)
	if len(valid) == 0 {
		return []entity.Lead{}
	}

	matched := make([]entity.Lead, 0, len(leads))
	for i := range leads {
		if matchesAll(&leads[i], valid, logic) {
			matched = append(matched, leads[i])
		}
	}
	return matched
}

// CountMatching is MatchingLeads without materializing the subset.
func CountMatching(leads []entity.Lead, filters []FilterCondition, logic Logic) int {
	valid := validFilters(filters)
	if len(valid) == 0 {
		return 0
	}
	count := 0
	for i := range leads {
		if matchesAll(&leads[i], valid, logic) {
			count++
		}
	}
	return count
}

func validFilters(filters []FilterCondition) []FilterCondition {
	valid := make([]FilterCondition, 0, len(filters))
	for _, f := range filters {
		if f.IsValid() {
			valid = append(valid, f)
		}
	}
	return valid
}

func matchesAll(lead *entity.Lead, filters []FilterCondition, logic Logic) bool {
	if logic == LogicOr {
		for _, f := range filters {
			if Matches(lead, f) {
				return true
			}
		}
		return false
	}
	// "and" is the default for anything else, as in the segments editor.
	for _, f := range filters {
		if !Matches(lead, f) {
			return false
		}
	}
	return true
}

package segmentation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
)

func TestMatchesEqualsIsCaseInsensitive(t *testing.T) {
	lead := &entity.Lead{Status: "Won"}

	assert.True(t, Matches(lead, FilterCondition{Field: "status", Operator: OpEquals, Value: "won"}))
	assert.True(t, Matches(lead, FilterCondition{Field: "status", Operator: OpEquals, Value: "WON"}))
	assert.False(t, Matches(lead, FilterCondition{Field: "status", Operator: OpEquals, Value: "lost"}))
}

func TestMatchesNotEquals(t *testing.T) {
	lead := &entity.Lead{Source: "lingueefy"}

	assert.False(t, Matches(lead, FilterCondition{Field: "source", Operator: OpNotEquals, Value: "Lingueefy"}))
	assert.True(t, Matches(lead, FilterCondition{Field: "source", Operator: OpNotEquals, Value: "barholex"}))
}

func TestMatchesNumericComparisons(t *testing.T) {
	lead := &entity.Lead{LeadScore: 75}

	assert.True(t, Matches(lead, FilterCondition{Field: "leadScore", Operator: OpGreaterThan, Value: "60"}))
	assert.False(t, Matches(lead, FilterCondition{Field: "leadScore", Operator: OpGreaterThan, Value: "75"}))
	assert.True(t, Matches(lead, FilterCondition{Field: "leadScore", Operator: OpLessThan, Value: "80"}))
	assert.False(t, Matches(lead, FilterCondition{Field: "leadScore", Operator: OpLessThan, Value: "75"}))
}

func TestMatchesNumericFailsClosedOnGarbage(t *testing.T) {
	lead := &entity.Lead{LeadScore: 75, Budget: "enterprise"}

	// Threshold does not parse.
	assert.False(t, Matches(lead, FilterCondition{Field: "leadScore", Operator: OpGreaterThan, Value: "abc"}))
	// Lead side does not parse.
	assert.False(t, Matches(lead, FilterCondition{Field: "budget", Operator: OpGreaterThan, Value: "10"}))
	assert.False(t, Matches(lead, FilterCondition{Field: "budget", Operator: OpLessThan, Value: "10"}))
}

func TestMatchesNumericParsesDecimalsAndWhitespace(t *testing.T) {
	lead := &entity.Lead{Budget: " 1500.50 "}

	assert.True(t, Matches(lead, FilterCondition{Field: "budget", Operator: OpGreaterThan, Value: "1000"}))
	assert.True(t, Matches(lead, FilterCondition{Field: "budget", Operator: OpLessThan, Value: "2000.75"}))
}

func TestMatchesContainsIsCaseInsensitiveSubstring(t *testing.T) {
	lead := &entity.Lead{Company: "RusingAcademy Ltd"}

	assert.True(t, Matches(lead, FilterCondition{Field: "company", Operator: OpContains, Value: "academy"}))
	assert.True(t, Matches(lead, FilterCondition{Field: "company", Operator: OpContains, Value: "LTD"}))
	assert.False(t, Matches(lead, FilterCondition{Field: "company", Operator: OpContains, Value: "barholex"}))
}

func TestMatchesUnknownOperatorNeverMatches(t *testing.T) {
	lead := &entity.Lead{Status: "won"}

	assert.False(t, Matches(lead, FilterCondition{Field: "status", Operator: "between", Value: "won"}))
	// "in" is declared but has no evaluation semantics yet.
	assert.False(t, Matches(lead, FilterCondition{Field: "status", Operator: OpIn, Value: "won,lost"}))
}

func TestMatchesUnknownFieldReadsEmpty(t *testing.T) {
	lead := &entity.Lead{Status: "won"}

	assert.False(t, Matches(lead, FilterCondition{Field: "favoriteColor", Operator: OpEquals, Value: "blue"}))
	// not_equals against an unknown field is vacuously true.
	assert.True(t, Matches(lead, FilterCondition{Field: "favoriteColor", Operator: OpNotEquals, Value: "blue"}))
}

func TestFilterConditionIsValid(t *testing.T) {
	assert.True(t, FilterCondition{Field: "status", Operator: OpEquals, Value: "won"}.IsValid())
	// "0" is a usable threshold, not an empty value.
	assert.True(t, FilterCondition{Field: "leadScore", Operator: OpGreaterThan, Value: "0"}.IsValid())

	assert.False(t, FilterCondition{Operator: OpEquals, Value: "won"}.IsValid())
	assert.False(t, FilterCondition{Field: "status", Value: "won"}.IsValid())
	assert.False(t, FilterCondition{Field: "status", Operator: OpEquals}.IsValid())
}

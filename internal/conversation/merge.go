package conversation

import (
	"strconv"
	"strings"
)

// merger applies the existing-wins merge policy field by field: scalars are
// kept when already set (recording a contradiction if the incoming value
// differs), ranges and nested structs recurse, and arrays concatenate.
type merger struct {
	turn  int
	conf  map[string]float64
	found []Contradiction
}

func (m *merger) str(field string, existing *string, incoming string) {
	if incoming == "" {
		return
	}
	if *existing == "" {
		*existing = incoming
		return
	}
	if *existing != incoming {
		m.found = append(m.found, Contradiction{
			Field:      field,
			OldValue:   *existing,
			NewValue:   incoming,
			Confidence: m.confidence(field),
			Turn:       m.turn,
		})
	}
}

func (m *merger) num(field string, existing *float64, incoming float64) {
	if incoming == 0 {
		return
	}
	if *existing == 0 {
		*existing = incoming
		return
	}
	if *existing != incoming {
		m.found = append(m.found, Contradiction{
			Field:      field,
			OldValue:   strconv.FormatFloat(*existing, 'f', -1, 64),
			NewValue:   strconv.FormatFloat(incoming, 'f', -1, 64),
			Confidence: m.confidence(field),
			Turn:       m.turn,
		})
	}
}

// confidence looks up the incoming field's extraction confidence. Range
// contradictions are keyed by their .min/.max leaf but the model reports
// confidence per field, so the suffix is stripped on a miss.
func (m *merger) confidence(field string) float64 {
	if c, ok := m.conf[field]; ok {
		return c
	}
	field = strings.TrimSuffix(strings.TrimSuffix(field, ".min"), ".max")
	return m.conf[field]
}

func (m *merger) rng(field string, existing *Range, incoming Range) {
	m.num(field+".min", &existing.Min, incoming.Min)
	m.num(field+".max", &existing.Max, incoming.Max)
}

func (m *merger) loc(field string, existing *Location, incoming Location) {
	m.str(field+".city", &existing.City, incoming.City)
	m.str(field+".area", &existing.Area, incoming.Area)
	existing.Landmarks = append(existing.Landmarks, incoming.Landmarks...)
}

func (m *merger) list(existing *[]string, incoming []string) {
	*existing = append(*existing, incoming...)
}

func mergeBrand(existing, incoming BrandRequirements, turn int, conf map[string]float64) (BrandRequirements, []Contradiction) {
	m := &merger{turn: turn, conf: conf}

	m.rng("area", &existing.Area, incoming.Area)
	m.loc("location", &existing.Location, incoming.Location)
	m.str("property_type", &existing.PropertyType, incoming.PropertyType)
	m.rng("budget.monthly_rent", &existing.Budget.MonthlyRent, incoming.Budget.MonthlyRent)
	m.num("budget.deposit", &existing.Budget.Deposit, incoming.Budget.Deposit)
	m.rng("footfall", &existing.Footfall, incoming.Footfall)
	m.list(&existing.Accessibility, incoming.Accessibility)
	m.list(&existing.Infrastructure, incoming.Infrastructure)
	m.str("lease_term", &existing.LeaseTerm, incoming.LeaseTerm)
	m.str("category", &existing.Category, incoming.Category)

	return existing, m.found
}

func mergeOwner(existing, incoming OwnerRequirements, turn int, conf map[string]float64) (OwnerRequirements, []Contradiction) {
	m := &merger{turn: turn, conf: conf}

	m.num("property_area", &existing.PropertyArea, incoming.PropertyArea)
	m.str("property_type", &existing.PropertyType, incoming.PropertyType)
	m.loc("location", &existing.Location, incoming.Location)
	m.num("monthly_rent", &existing.MonthlyRent, incoming.MonthlyRent)
	m.num("deposit", &existing.Deposit, incoming.Deposit)
	m.list(&existing.Infrastructure, incoming.Infrastructure)
	m.list(&existing.Accessibility, incoming.Accessibility)
	m.num("footfall", &existing.Footfall, incoming.Footfall)
	m.str("desired_tenant", &existing.DesiredTenant, incoming.DesiredTenant)
	m.str("lease_term", &existing.LeaseTerm, incoming.LeaseTerm)
	m.str("availability", &existing.Availability, incoming.Availability)

	return existing, m.found
}

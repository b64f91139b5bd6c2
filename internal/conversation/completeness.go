package conversation

// CompletenessReport says how far requirement collection has progressed and
// which critical fields are still missing.
type CompletenessReport struct {
	Percent         float64  `json:"percent"`
	MissingCritical []string `json:"missing_critical,omitempty"`
	Ready           bool     `json:"ready"`
}

// Completeness is the single canonical completeness computation. Brand
// conversations are ready to search at >=60% completion with no missing
// critical field; owner conversations are ready to redirect once property
// area, city+area and monthly rent are all known.
func Completeness(s ConversationState) CompletenessReport {
	switch s.Identity.Type {
	case EntityBrand:
		return brandCompleteness(s.Requirements.Brand)
	case EntityOwner:
		return ownerCompleteness(s.Requirements.Owner)
	default:
		return CompletenessReport{}
	}
}

func brandCompleteness(r *BrandRequirements) CompletenessReport {
	if r == nil {
		return CompletenessReport{MissingCritical: []string{"area", "location.city", "budget.monthly_rent"}}
	}

	fields := []bool{
		!r.Area.IsZero(),
		r.Location.City != "",
		r.Location.Area != "",
		r.PropertyType != "",
		r.Budget.MonthlyRent.Min > 0 && r.Budget.MonthlyRent.Max > 0,
		!r.Footfall.IsZero(),
		len(r.Accessibility) > 0,
		len(r.Infrastructure) > 0,
		r.LeaseTerm != "",
		r.Category != "",
	}

	var missing []string
	if r.Area.IsZero() {
		missing = append(missing, "area")
	}
	if r.Location.City == "" {
		missing = append(missing, "location.city")
	}
	if r.Budget.MonthlyRent.Min <= 0 || r.Budget.MonthlyRent.Max <= 0 {
		missing = append(missing, "budget.monthly_rent")
	}

	pct := percent(fields)
	return CompletenessReport{
		Percent:         pct,
		MissingCritical: missing,
		Ready:           pct >= 0.6 && len(missing) == 0,
	}
}

func ownerCompleteness(r *OwnerRequirements) CompletenessReport {
	if r == nil {
		return CompletenessReport{MissingCritical: []string{"property_area", "location.city", "location.area", "monthly_rent"}}
	}

	fields := []bool{
		r.PropertyArea > 0,
		r.PropertyType != "",
		r.Location.City != "",
		r.Location.Area != "",
		r.MonthlyRent > 0,
		r.Deposit > 0,
		len(r.Infrastructure) > 0,
		len(r.Accessibility) > 0,
		r.DesiredTenant != "",
		r.Availability != "",
	}

	var missing []string
	if r.PropertyArea <= 0 {
		missing = append(missing, "property_area")
	}
	if r.Location.City == "" {
		missing = append(missing, "location.city")
	}
	if r.Location.Area == "" {
		missing = append(missing, "location.area")
	}
	if r.MonthlyRent <= 0 {
		missing = append(missing, "monthly_rent")
	}

	return CompletenessReport{
		Percent:         percent(fields),
		MissingCritical: missing,
		Ready:           len(missing) == 0,
	}
}

func percent(fields []bool) float64 {
	if len(fields) == 0 {
		return 0
	}
	set := 0
	for _, ok := range fields {
		if ok {
			set++
		}
	}
	return float64(set) / float64(len(fields))
}

package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

// ParseError reports that the model's output could not be turned into a
// typed partial-requirements value.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing extraction output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type brandPayload struct {
	conversation.BrandRequirements
	Confidence map[string]float64 `json:"confidence,omitempty"`
}

type ownerPayload struct {
	conversation.OwnerRequirements
	Confidence map[string]float64 `json:"confidence,omitempty"`
}

// ParseRequirements validates and types the model's JSON output. On a
// malformed document it attempts one best-effort salvage of an embedded
// object before giving up with a *ParseError. The returned partial may be
// empty; it is never nil on success.
func ParseRequirements(raw string, entityType conversation.EntityType) (*conversation.Extracted, map[string]float64, error) {
	doc := strings.TrimSpace(raw)
	if doc == "" {
		return emptyPartial(entityType), nil, nil
	}

	extracted, conf, err := parseStrict(doc, entityType)
	if err == nil {
		return extracted, conf, nil
	}

	// Best-effort: the model sometimes wraps the object in prose or fences.
	if salvaged, ok := embeddedObject(doc); ok {
		if extracted, conf, err2 := parseStrict(salvaged, entityType); err2 == nil {
			return extracted, conf, nil
		}
	}

	return nil, nil, &ParseError{Raw: raw, Err: err}
}

func parseStrict(doc string, entityType conversation.EntityType) (*conversation.Extracted, map[string]float64, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(doc)))
	dec.DisallowUnknownFields()

	if entityType == conversation.EntityOwner {
		var p ownerPayload
		if err := dec.Decode(&p); err != nil {
			return nil, nil, err
		}
		if err := validateOwner(&p.OwnerRequirements); err != nil {
			return nil, nil, err
		}
		return &conversation.Extracted{Owner: &p.OwnerRequirements}, p.Confidence, nil
	}

	var p brandPayload
	if err := dec.Decode(&p); err != nil {
		return nil, nil, err
	}
	if err := validateBrand(&p.BrandRequirements); err != nil {
		return nil, nil, err
	}
	return &conversation.Extracted{Brand: &p.BrandRequirements}, p.Confidence, nil
}

func validateBrand(r *conversation.BrandRequirements) error {
	for name, rng := range map[string]*conversation.Range{
		"area":                &r.Area,
		"budget.monthly_rent": &r.Budget.MonthlyRent,
		"footfall":            &r.Footfall,
	} {
		if rng.Min < 0 || rng.Max < 0 {
			return fmt.Errorf("%s: negative value", name)
		}
		if rng.Min > 0 && rng.Max > 0 && rng.Min > rng.Max {
			rng.Min, rng.Max = rng.Max, rng.Min
		}
	}
	if r.Budget.Deposit < 0 {
		return fmt.Errorf("budget.deposit: negative value")
	}
	return nil
}

func validateOwner(r *conversation.OwnerRequirements) error {
	for name, v := range map[string]float64{
		"property_area": r.PropertyArea,
		"monthly_rent":  r.MonthlyRent,
		"deposit":       r.Deposit,
		"footfall":      r.Footfall,
	} {
		if v < 0 {
			return fmt.Errorf("%s: negative value", name)
		}
	}
	return nil
}

// embeddedObject returns the outermost {...} span of the document, if any.
func embeddedObject(doc string) (string, bool) {
	start := strings.IndexByte(doc, '{')
	end := strings.LastIndexByte(doc, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return doc[start : end+1], true
}

func emptyPartial(entityType conversation.EntityType) *conversation.Extracted {
	if entityType == conversation.EntityOwner {
		return &conversation.Extracted{Owner: &conversation.OwnerRequirements{}}
	}
	return &conversation.Extracted{Brand: &conversation.BrandRequirements{}}
}

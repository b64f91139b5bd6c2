package extract

import (
	"fmt"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

const brandSchema = `{
  "area": {"min": 0, "max": 0},
  "location": {"city": "", "area": "", "landmarks": []},
  "property_type": "",
  "budget": {"monthly_rent": {"min": 0, "max": 0}, "deposit": 0},
  "footfall": {"min": 0, "max": 0},
  "accessibility": [],
  "infrastructure": [],
  "lease_term": "",
  "category": "",
  "confidence": {"<field>": 0.0}
}`

const ownerSchema = `{
  "property_area": 0,
  "property_type": "",
  "location": {"city": "", "area": "", "landmarks": []},
  "monthly_rent": 0,
  "deposit": 0,
  "infrastructure": [],
  "accessibility": [],
  "footfall": 0,
  "desired_tenant": "",
  "lease_term": "",
  "availability": "",
  "confidence": {"<field>": 0.0}
}`

// systemPrompt instructs the model to extract leasing requirements as a
// partial JSON object matching the given side's schema.
func systemPrompt(entityType conversation.EntityType) string {
	schema := brandSchema
	side := "a brand looking for commercial space to lease"
	if entityType == conversation.EntityOwner {
		schema = ownerSchema
		side = "a property owner listing commercial space"
	}
	return fmt.Sprintf(`You extract structured commercial-leasing requirements from conversations with %s.

Return ONLY a JSON object with this shape, omitting every field the user has not stated:
%s

Rules:
- Amounts in rupees: "2 lakhs" is 200000, "50k" is 50000.
- Areas in square feet.
- When a locality like "Koramangala" is mentioned, set both location.city and location.area.
- "confidence" maps each extracted field name to your confidence in [0,1].
- Never invent values. An empty object {} is a valid answer.`, side, schema)
}

func userPrompt(utterance, transcript string) string {
	if transcript == "" {
		return "Latest message:\n" + utterance
	}
	return fmt.Sprintf("Conversation so far:\n%s\n\nLatest message:\n%s", transcript, utterance)
}

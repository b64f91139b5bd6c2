package classify

import "regexp"

// Lexical signal lists for the brand (seeker) and owner (lister) sides.
// Scores are the fraction of each list matched in the query.
var brandKeywords = []string{
	"looking for",
	"need space",
	"want to lease",
	"want to rent",
	"searching for",
	"open a store",
	"open a shop",
	"expand",
	"outlet",
	"franchise",
	"my brand",
	"tenant",
	"budget",
}

var ownerKeywords = []string{
	"property owner",
	"landlord",
	"my property",
	"my shop",
	"my space",
	"have a space",
	"have a property",
	"rent out",
	"lease out",
	"give on rent",
	"listing",
	"vacant",
	"available for rent",
}

// Strong markers lock identity on sight, in the current utterance or
// anywhere in the history.
var strongBrandMarkers = []string{
	"looking for space to lease",
	"looking for space",
	"i am a tenant",
	"i'm a tenant",
	"i am a brand",
	"i'm a brand",
}

var strongOwnerMarkers = []string{
	"property owner",
	"landlord",
	"i am an owner",
	"i'm an owner",
	"rent out my",
	"lease out my",
	"looking for a tenant",
	"need a tenant",
}

// Possessive self-descriptions that name no listing keyword, like
// "I have a retail space" or "we're looking for a small outlet".
var (
	ownSpaceRe  = regexp.MustCompile(`(?i)\b(?:have|own|got)\s+an?\s+(?:\w+\s+){0,2}?(?:space|property|shop|store|unit)\b`)
	seekSpaceRe = regexp.MustCompile(`(?i)\blooking\s+for\s+(?:\w+\s+){0,3}?(?:space|property|shop|store|unit|outlet)\b`)
)

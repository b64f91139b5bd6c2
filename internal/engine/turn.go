package engine

import (
	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/scoring"
)

// TurnResult is what one processed turn hands back to the transport layer.
type TurnResult struct {
	Message         string                          `json:"message"`
	Phase           Phase                           `json:"phase"`
	EntityType      conversation.EntityType         `json:"entity_type,omitempty"`
	Matches         []scoring.ScoredMatch           `json:"matches,omitempty"`
	Summary         *Summary                        `json:"summary,omitempty"`
	Completeness    conversation.CompletenessReport `json:"completeness"`
	ReadyToRedirect bool                            `json:"ready_to_redirect,omitempty"`
}

// Summary aggregates a search result for the response envelope.
type Summary struct {
	TotalMatches       int     `json:"total_matches"`
	ShowingTop         int     `json:"showing_top"`
	AverageMatchScore  float64 `json:"average_match_score"`
	SearchCompleteness float64 `json:"search_completeness"`
}

func summarize(candidates int, matches []scoring.ScoredMatch, report conversation.CompletenessReport) *Summary {
	s := &Summary{
		TotalMatches:       candidates,
		ShowingTop:         len(matches),
		SearchCompleteness: report.Percent,
	}
	if len(matches) > 0 {
		total := 0
		for _, m := range matches {
			total += m.FinalScore
		}
		s.AverageMatchScore = float64(total) / float64(len(matches))
	}
	return s
}

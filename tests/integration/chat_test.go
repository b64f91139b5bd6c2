//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

const brandExtraction = `{
	"area": {"min": 400, "max": 600},
	"location": {"city": "Bangalore", "area": "Koramangala"},
	"property_type": "retail",
	"budget": {"monthly_rent": {"min": 100000, "max": 200000}},
	"category": "retail",
	"confidence": {"area": 0.9, "location.city": 0.9, "budget.monthly_rent": 0.85}
}`

func TestChatTurnBrandReachesSearch(t *testing.T) {
	env := SetupTestEnv(t)

	CreateListing(t, env, map[string]any{
		"title":            "Retail unit, 5th Block",
		"address":          "5th Block, Koramangala",
		"city":             "Bangalore",
		"locality":         "Koramangala",
		"size":             550,
		"price":            150000,
		"property_type":    "retail",
		"parking":          true,
		"security_deposit": 900000,
	})

	env.LLM.Enqueue(brandExtraction)

	resp := DoRequest(t, env, "POST", "/api/v1/chat/turn", map[string]any{
		"query": "I'm looking for a 500 sqft space in Koramangala, Bangalore to expand my brand with a new outlet, budget 1 to 2 lakhs per month",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("turn failed: status %d", resp.StatusCode)
	}

	data := ParseResponse(t, resp)["data"].(map[string]any)
	if data["phase"] != "READY_TO_SEARCH" {
		t.Fatalf("expected READY_TO_SEARCH, got %v", data["phase"])
	}
	if data["confirmed_entity_type"] != "brand" {
		t.Errorf("expected brand, got %v", data["confirmed_entity_type"])
	}
	if data["session_id"] == "" {
		t.Error("expected a generated session ID")
	}
	matches, ok := data["matches"].([]any)
	if !ok || len(matches) == 0 {
		t.Fatalf("expected matches, got %v", data["matches"])
	}
	if data["full_state"] == nil {
		t.Error("expected serialized state in response")
	}
}

func TestChatSessionLifecycle(t *testing.T) {
	env := SetupTestEnv(t)

	env.LLM.Enqueue(`{"location": {"area": "Indiranagar"}, "availability": "immediate"}`)

	resp := DoRequest(t, env, "POST", "/api/v1/chat/turn", map[string]any{
		"session_id": "it-session-1",
		"query":      "I am a property owner. My property in Indiranagar is vacant and available for rent, I would like to lease out the space.",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("turn failed: status %d", resp.StatusCode)
	}
	data := ParseResponse(t, resp)["data"].(map[string]any)
	if data["confirmed_entity_type"] != "owner" {
		t.Fatalf("expected owner, got %v", data["confirmed_entity_type"])
	}

	// State survives in Redis between turns.
	resp = DoRequest(t, env, "GET", "/api/v1/chat/sessions/it-session-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get session failed: status %d", resp.StatusCode)
	}
	stateData := ParseResponse(t, resp)["data"].(map[string]any)
	if turn, _ := stateData["turn"].(float64); turn != 1 {
		t.Errorf("expected turn 1, got %v", stateData["turn"])
	}

	resp = DoRequest(t, env, "DELETE", "/api/v1/chat/sessions/it-session-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete session failed: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = DoRequest(t, env, "GET", "/api/v1/chat/sessions/it-session-1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestChatTurnRequiresQuery(t *testing.T) {
	env := SetupTestEnv(t)

	resp := DoRequest(t, env, "POST", "/api/v1/chat/turn", map[string]any{"query": ""})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty query, got %d", resp.StatusCode)
	}
}

func TestChatTurnThreadedStateRestoresConversation(t *testing.T) {
	env := SetupTestEnv(t)

	env.LLM.Enqueue(brandExtraction)
	resp := DoRequest(t, env, "POST", "/api/v1/chat/turn", map[string]any{
		"query": "Looking for retail space for my brand, we want to open a new outlet and expand the franchise",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("turn failed: status %d", resp.StatusCode)
	}
	data := ParseResponse(t, resp)["data"].(map[string]any)
	fullState := data["full_state"]

	// Thread the state into a brand-new session: progress carries over.
	env.LLM.Enqueue(`{}`)
	resp = DoRequest(t, env, "POST", "/api/v1/chat/turn", map[string]any{
		"session_id": fmt.Sprintf("threaded-%v", data["session_id"]),
		"query":      "anything good out there?",
		"context":    map[string]any{"full_state": fullState},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("threaded turn failed: status %d", resp.StatusCode)
	}
	second := ParseResponse(t, resp)["data"].(map[string]any)
	if second["confirmed_entity_type"] != "brand" {
		t.Errorf("expected threaded identity to survive, got %v", second["confirmed_entity_type"])
	}
	if second["phase"] != "READY_TO_SEARCH" {
		t.Errorf("expected READY_TO_SEARCH from threaded requirements, got %v", second["phase"])
	}
}

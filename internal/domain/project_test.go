package domain

import (
	"encoding/json"
	"testing"
)

func TestProjectUnmarshal_LegacyClientID(t *testing.T) {
	// Older records carry a singular clientId instead of clientIds.
	data := []byte(`{"id":"7","clientId":"3","title":"Site redesign","status":"in-progress","amount":1500}`)

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(p.ClientIDs) != 1 || p.ClientIDs[0] != "3" {
		t.Fatalf("clientIds = %v, want [3]", p.ClientIDs)
	}
}

func TestProjectUnmarshal_ClientIDsWins(t *testing.T) {
	// When both shapes are present the list is authoritative.
	data := []byte(`{"id":"7","clientId":"3","clientIds":["4","5"],"title":"X","amount":10}`)

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(p.ClientIDs) != 2 || p.ClientIDs[0] != "4" || p.ClientIDs[1] != "5" {
		t.Fatalf("clientIds = %v, want [4 5]", p.ClientIDs)
	}
}

func TestProjectUnmarshal_NumericIDs(t *testing.T) {
	data := []byte(`{"id":7,"clientIds":[3,12],"title":"X","amount":"1200.50"}`)

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.ID != "7" {
		t.Errorf("id = %q, want 7", p.ID)
	}
	if len(p.ClientIDs) != 2 || p.ClientIDs[0] != "3" || p.ClientIDs[1] != "12" {
		t.Errorf("clientIds = %v, want [3 12]", p.ClientIDs)
	}
	if p.Amount != 1200.50 {
		t.Errorf("amount = %v, want 1200.50 (string coercion)", p.Amount)
	}
}

func TestAmountUnmarshal_Lenient(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{`{"amount": 42.5}`, 42.5},
		{`{"amount": "17"}`, 17},
		{`{"amount": null}`, 0},
		{`{"amount": "not a number"}`, 0},
		{`{}`, 0},
	}

	for _, tt := range tests {
		var v struct {
			Amount Amount `json:"amount"`
		}
		if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
			t.Errorf("unmarshal %s: %v", tt.in, err)
			continue
		}
		if v.Amount != tt.want {
			t.Errorf("amount from %s = %v, want %v", tt.in, v.Amount, tt.want)
		}
	}
}

func TestProjectValidate_RuleOrder(t *testing.T) {
	p := &Project{}
	if err := p.Validate(); err == nil || err.Error() != "at least one client must be selected" {
		t.Fatalf("expected client-selection error first, got %v", err)
	}

	p.ClientIDs = []ID{"1"}
	if err := p.Validate(); err == nil || err.Error() != "project title is required" {
		t.Fatalf("expected title error, got %v", err)
	}

	p.Title = "Site redesign"
	if err := p.Validate(); err == nil || err.Error() != "amount must be greater than zero" {
		t.Fatalf("expected amount error, got %v", err)
	}

	p.Amount = 2500
	if err := p.Validate(); err != nil {
		t.Fatalf("valid project rejected: %v", err)
	}
}

func TestProjectHasClient(t *testing.T) {
	p := &Project{ClientIDs: []ID{"1", "2"}}
	if !p.HasClient("2") {
		t.Error("expected HasClient(2) = true")
	}
	if p.HasClient("3") {
		t.Error("expected HasClient(3) = false")
	}
}

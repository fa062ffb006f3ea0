package types

import (
	"encoding/json"
	"testing"
)

func TestFlexInt64Unmarshal(t *testing.T) {
	type payload struct {
		ID FlexInt64 `json:"id"`
	}

	cases := []struct {
		body  string
		set   bool
		value int64
	}{
		{`{"id": 7}`, true, 7},
		{`{"id": "12"}`, true, 12},
		{`{"id": " "}`, false, 0},
		{`{"id": null}`, false, 0},
		{`{}`, false, 0},
	}
	for _, tc := range cases {
		var got payload
		if err := json.Unmarshal([]byte(tc.body), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.body, err)
		}
		if got.ID.Set != tc.set || got.ID.Value != tc.value {
			t.Fatalf("%s: expected set=%v value=%d, got %+v", tc.body, tc.set, tc.value, got.ID)
		}
	}

	var bad payload
	if err := json.Unmarshal([]byte(`{"id": "abc"}`), &bad); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	if err := json.Unmarshal([]byte(`{"id": 1.5}`), &bad); err == nil {
		t.Fatal("expected error for fractional id")
	}
}

func TestFlexFloat64Unmarshal(t *testing.T) {
	var got struct {
		Qty FlexFloat64 `json:"quantity"`
	}
	if err := json.Unmarshal([]byte(`{"quantity": "2.5"}`), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Qty.Set || got.Qty.Value != 2.5 {
		t.Fatalf("unexpected value %+v", got.Qty)
	}

	out, err := json.Marshal(got.Qty)
	if err != nil || string(out) != "2.5" {
		t.Fatalf("unexpected marshal %s err=%v", out, err)
	}
}

func TestFlexFloat64RejectsNonFinite(t *testing.T) {
	for _, body := range []string{
		`{"quantity": "Infinity"}`,
		`{"quantity": "-Inf"}`,
		`{"quantity": "NaN"}`,
		`{"quantity": 1e400}`,
	} {
		var got struct {
			Qty FlexFloat64 `json:"quantity"`
		}
		if err := json.Unmarshal([]byte(body), &got); err == nil {
			t.Fatalf("expected error for %s, got %+v", body, got.Qty)
		}
	}

	var got struct {
		Qty FlexFloat64 `json:"quantity"`
	}
	if err := json.Unmarshal([]byte(`{"quantity": 1e308}`), &got); err != nil {
		t.Fatalf("large finite value rejected: %v", err)
	}
}

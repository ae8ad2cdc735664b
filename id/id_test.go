package id_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/momentumhq/momentum/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"UserID", id.NewUserID, "user_"},
		{"TaskID", id.NewTaskID, "task_"},
		{"SessionID", id.NewSessionID, "pomo_"},
		{"MoodID", id.NewMoodID, "mood_"},
		{"PurchaseID", id.NewPurchaseID, "pur_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixTask)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixTask {
		t.Errorf("expected prefix %q, got %q", id.PrefixTask, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"UserID", id.NewUserID, id.ParseUserID},
		{"TaskID", id.NewTaskID, id.ParseTaskID},
		{"SessionID", id.NewSessionID, id.ParseSessionID},
		{"MoodID", id.NewMoodID, id.ParseMoodID},
		{"PurchaseID", id.NewPurchaseID, id.ParsePurchaseID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := tt.newFn()
			parsed, err := tt.parseFn(orig.String())
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if parsed.String() != orig.String() {
				t.Errorf("round trip mismatch: %q != %q", parsed, orig)
			}
		})
	}
}

func TestParseWrongPrefix(t *testing.T) {
	taskID := id.NewTaskID()
	if _, err := id.ParseUserID(taskID.String()); err == nil {
		t.Error("expected error parsing task ID as user ID")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := id.Parse(""); err == nil {
		t.Error("expected error parsing empty string")
	}
}

func TestNilID(t *testing.T) {
	var nilID id.ID
	if !nilID.IsNil() {
		t.Error("zero-value ID should be nil")
	}
	if nilID.String() != "" {
		t.Errorf("nil ID should stringify to empty, got %q", nilID.String())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := id.NewUserID()

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var parsed id.ID
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("round trip mismatch: %q != %q", parsed, orig)
	}
}

func TestSQLValueScan(t *testing.T) {
	orig := id.NewPurchaseID()

	v, err := orig.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var scanned id.ID
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if scanned.String() != orig.String() {
		t.Errorf("round trip mismatch: %q != %q", scanned, orig)
	}

	var nilScanned id.ID
	if err := nilScanned.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !nilScanned.IsNil() {
		t.Error("scanning nil should produce the Nil ID")
	}
}

package logger

import "testing"

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{"admin_token", "abc", "student_id", "s1", "dangling"})
	want := []interface{}{"admin_token", "[REDACTED]", "student_id", "s1", "dangling"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kv[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	l, err := New("dev", "loud")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.SugaredLogger.Desugar().Core().Enabled(-1) {
		t.Error("debug should be disabled when level is unparseable")
	}
}

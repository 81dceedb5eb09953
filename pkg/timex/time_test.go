package timex

import (
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}

	// Verify it's not returning time.Now() by waiting a bit
	time.Sleep(10 * time.Millisecond)
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() changed after sleep, it should be static. got %v, want %v", tt.Unix(), now.Unix())
	}
}

func TestTime_JSONRoundTrip(t *testing.T) {
	orig := Time(time.Date(2024, 6, 15, 8, 30, 0, 0, time.Local))

	data, err := orig.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	if string(data) != `"2024-06-15 08:30:00"` {
		t.Errorf("MarshalJSON = %s, want %q", data, "2024-06-15 08:30:00")
	}

	var parsed Time
	if err := parsed.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON error: %v", err)
	}
	if parsed.Unix() != orig.Unix() {
		t.Errorf("round trip mismatch: got %v, want %v", parsed, orig)
	}
}

func TestTime_ScanNil(t *testing.T) {
	var tt Time
	if err := tt.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if !tt.IsZero() {
		t.Errorf("Scan(nil) should produce zero time, got %v", tt)
	}
}

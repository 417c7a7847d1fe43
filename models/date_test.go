package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-02-29", Date{2024, time.February, 29}, false},
		{" 2024-01-08 ", Date{2024, time.January, 8}, false},
		{"2023-02-29", Date{}, true},
		{"2024-13-01", Date{}, true},
		{"08/01/2024", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDate(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDateArithmeticAcrossBoundaries(t *testing.T) {
	if got := NewDate(2023, time.December, 29).AddDays(7); got != NewDate(2024, time.January, 5) {
		t.Errorf("year rollover = %s", got)
	}
	if got := NewDate(2024, time.March, 1).AddDays(-1); got != NewDate(2024, time.February, 29) {
		t.Errorf("leap day = %s", got)
	}
	if n := NewDate(2024, time.January, 1).DaysUntil(NewDate(2025, time.January, 1)); n != 366 {
		t.Errorf("DaysUntil = %d, want 366", n)
	}
	if n := NewDate(2024, time.January, 10).DaysUntil(NewDate(2024, time.January, 3)); n != -7 {
		t.Errorf("DaysUntil backwards = %d, want -7", n)
	}
}

func TestDateOfUsesOwnLocation(t *testing.T) {
	manila := time.FixedZone("PHT", 8*3600)
	// 20:00 UTC on Jan 7 is already Jan 8 in Manila.
	instant := time.Date(2024, time.January, 7, 20, 0, 0, 0, time.UTC)
	if got := DateOf(instant.In(manila)); got != NewDate(2024, time.January, 8) {
		t.Errorf("DateOf in +08:00 = %s", got)
	}
	if got := DateOf(instant); got != NewDate(2024, time.January, 7) {
		t.Errorf("DateOf in UTC = %s", got)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2024, time.January, 31)
	b := NewDate(2024, time.February, 1)
	if !a.Before(b) || !b.After(a) || a.Compare(a) != 0 {
		t.Error("ordering across month boundary is wrong")
	}
}

func TestDateJSONAsMapKey(t *testing.T) {
	in := map[Date]int{NewDate(2024, time.January, 8): 2}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"2024-01-08":2}` {
		t.Errorf("json = %s", b)
	}
	var out map[Date]int
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out[NewDate(2024, time.January, 8)] != 2 {
		t.Errorf("round trip = %v", out)
	}
}

func TestDateUnmarshalEmptyIsZero(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`""`), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("d = %v, want zero", d)
	}
}

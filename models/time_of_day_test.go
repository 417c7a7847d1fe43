package models

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"08:00", 480, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", MinutesPerDay, false},
		{"09:05", 545, false},
		{" 09:05 ", 545, false},
		{"9:05", 0, true},
		{"8:5", 0, true},
		{"08:5", 0, true},
		{"+8:00", 0, true},
		{"-0:30", 0, true},
		{"+08:00", 0, true},
		{"008:00", 0, true},
		{"24:01", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"noon", 0, true},
		{"12", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseTimeOfDay(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayFormatting(t *testing.T) {
	if s := NewTimeOfDay(9, 5).String(); s != "09:05" {
		t.Errorf("String = %q", s)
	}
	if s := TimeOfDay(MinutesPerDay).String(); s != "24:00" {
		t.Errorf("end of day = %q", s)
	}
	if NewTimeOfDay(23, 30).Add(45).Valid() {
		t.Error("23:30 + 45m should be past the end of the day")
	}
}

func TestActivityOverlapIsHalfOpen(t *testing.T) {
	a := TimelineActivity{StartTime: NewTimeOfDay(9, 0), EndTime: NewTimeOfDay(10, 0)}
	touching := TimelineActivity{StartTime: NewTimeOfDay(10, 0), EndTime: NewTimeOfDay(11, 0)}
	inside := TimelineActivity{StartTime: NewTimeOfDay(9, 30), EndTime: NewTimeOfDay(9, 45)}
	if a.Overlaps(touching) {
		t.Error("back-to-back activities should not overlap")
	}
	if !a.Overlaps(inside) || !inside.Overlaps(a) {
		t.Error("nested activity should overlap both ways")
	}
}

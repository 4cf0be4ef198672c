package temporal

import (
	"testing"
	"time"
)

func utcWindow() WorkWindow {
	return WorkWindow{Location: time.UTC, Start: 9, End: 18}
}

func TestDerive_UTC(t *testing.T) {
	f := Derive(1700000000000, utcWindow())

	if f.LocalDatetime == nil || f.Hour == nil || f.Weekday == nil || f.WeekdayName == nil {
		t.Fatalf("expected all features set, got %+v", f)
	}

	want := time.UnixMilli(1700000000000).UTC()
	if *f.LocalDatetime != "2023-11-14T22:13:20+00:00" {
		t.Errorf("LocalDatetime = %q", *f.LocalDatetime)
	}
	if *f.Hour != want.Hour() {
		t.Errorf("Hour = %d, want %d", *f.Hour, want.Hour())
	}
	if *f.Weekday != 1 {
		t.Errorf("Weekday = %d, want 1 (Tuesday)", *f.Weekday)
	}
	if *f.WeekdayName != "Tuesday" {
		t.Errorf("WeekdayName = %q", *f.WeekdayName)
	}
	if f.IsWorkingHours {
		t.Error("22:13 must be outside working hours")
	}
}

func TestDerive_ZeroStartTime(t *testing.T) {
	f := Derive(0, utcWindow())

	if f.LocalDatetime != nil || f.Hour != nil || f.Weekday != nil || f.WeekdayName != nil {
		t.Errorf("expected null features, got %+v", f)
	}
	if f.IsWorkingHours {
		t.Error("IsWorkingHours must be false for zero start time")
	}
}

func TestDerive_FractionalSeconds(t *testing.T) {
	f := Derive(1700000000123, utcWindow())
	if *f.LocalDatetime != "2023-11-14T22:13:20.123000+00:00" {
		t.Errorf("LocalDatetime = %q", *f.LocalDatetime)
	}
}

func TestDerive_Timezone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	f := Derive(1700000000000, WorkWindow{Location: loc, Start: 9, End: 18})

	// 22:13 UTC Tuesday is 07:13 Wednesday at +09:00
	if *f.LocalDatetime != "2023-11-15T07:13:20+09:00" {
		t.Errorf("LocalDatetime = %q", *f.LocalDatetime)
	}
	if *f.Hour != 7 || *f.Weekday != 2 || *f.WeekdayName != "Wednesday" {
		t.Errorf("unexpected features: hour=%d weekday=%d name=%s", *f.Hour, *f.Weekday, *f.WeekdayName)
	}
}

func TestDerive_WorkingHoursBoundaries(t *testing.T) {
	// 2023-11-13 is a Monday, 2023-11-18 a Saturday
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"monday 09:00 start is inclusive", time.Date(2023, 11, 13, 9, 0, 0, 0, time.UTC), true},
		{"monday 17:59", time.Date(2023, 11, 13, 17, 59, 0, 0, time.UTC), true},
		{"monday 18:00 end is exclusive", time.Date(2023, 11, 13, 18, 0, 0, 0, time.UTC), false},
		{"monday 08:59", time.Date(2023, 11, 13, 8, 59, 0, 0, time.UTC), false},
		{"friday 10:00", time.Date(2023, 11, 17, 10, 0, 0, 0, time.UTC), true},
		{"saturday 10:00", time.Date(2023, 11, 18, 10, 0, 0, 0, time.UTC), false},
		{"sunday 10:00", time.Date(2023, 11, 19, 10, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Derive(tt.at.UnixMilli(), utcWindow())
			if f.IsWorkingHours != tt.want {
				t.Errorf("IsWorkingHours = %v, want %v (hour=%d weekday=%d)", f.IsWorkingHours, tt.want, *f.Hour, *f.Weekday)
			}
		})
	}
}

func TestDerive_NilLocationUsesLocal(t *testing.T) {
	ms := int64(1700000000000)
	f := Derive(ms, WorkWindow{Start: 9, End: 18})
	if *f.Hour != time.UnixMilli(ms).In(time.Local).Hour() {
		t.Errorf("Hour = %d, want local hour", *f.Hour)
	}
}

func TestMondayIndex(t *testing.T) {
	if got := MondayIndex(time.Monday); got != 0 {
		t.Errorf("MondayIndex(Monday) = %d", got)
	}
	if got := MondayIndex(time.Sunday); got != 6 {
		t.Errorf("MondayIndex(Sunday) = %d", got)
	}
}

func TestWorkWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		w       WorkWindow
		wantErr bool
	}{
		{"default", DefaultWorkWindow(), false},
		{"full day", WorkWindow{Start: 0, End: 24}, false},
		{"negative start", WorkWindow{Start: -1, End: 18}, true},
		{"end past midnight", WorkWindow{Start: 9, End: 25}, true},
		{"inverted", WorkWindow{Start: 18, End: 9}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

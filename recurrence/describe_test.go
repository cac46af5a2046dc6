package recurrence

import (
	"reflect"
	"strings"
	"testing"

	"main/model"
)

func TestParseDescription(t *testing.T) {
	tests := []struct {
		text string
		want *model.RecurrencePattern
	}{
		{"daily", &model.RecurrencePattern{Type: model.RecurrenceDaily, Interval: 1}},
		{"Every Day", &model.RecurrencePattern{Type: model.RecurrenceDaily, Interval: 1}},
		{"every 3 days", &model.RecurrencePattern{Type: model.RecurrenceDaily, Interval: 3}},
		{"weekly", &model.RecurrencePattern{Type: model.RecurrenceWeekly, Interval: 1}},
		{"every 2 weeks", &model.RecurrencePattern{Type: model.RecurrenceWeekly, Interval: 2}},
		{"every Mon, Wed and Fri", &model.RecurrencePattern{Type: model.RecurrenceWeekly, Interval: 1, DaysOfWeek: []int{1, 3, 5}}},
		{"every friday", &model.RecurrencePattern{Type: model.RecurrenceWeekly, Interval: 1, DaysOfWeek: []int{5}}},
		{"every sat, sun", &model.RecurrencePattern{Type: model.RecurrenceWeekly, Interval: 1, DaysOfWeek: []int{0, 6}}},
		{"every mon mon monday", &model.RecurrencePattern{Type: model.RecurrenceWeekly, Interval: 1, DaysOfWeek: []int{1}}},
		{"monthly", &model.RecurrencePattern{Type: model.RecurrenceMonthly, Interval: 1}},
		{"every 6 months", &model.RecurrencePattern{Type: model.RecurrenceMonthly, Interval: 6}},
		{"every month on the 15th", &model.RecurrencePattern{Type: model.RecurrenceMonthly, Interval: 1, DayOfMonth: 15}},
		{"every month on the 2nd", &model.RecurrencePattern{Type: model.RecurrenceMonthly, Interval: 1, DayOfMonth: 2}},
		{"every month on the 31", &model.RecurrencePattern{Type: model.RecurrenceMonthly, Interval: 1, DayOfMonth: 31}},
		{"yearly", &model.RecurrencePattern{Type: model.RecurrenceYearly, Interval: 1}},
		{"every 2 years", &model.RecurrencePattern{Type: model.RecurrenceYearly, Interval: 2}},
		{"every month on the 32nd", nil},
		{"every 0 days", nil},
		{"whenever I feel like it", nil},
		{"every", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseDescription(tt.text)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %+v, got nil", tt.want)
			}
			if got.NotifyAt != model.DefaultNotifyAt {
				t.Fatalf("expected default notify time, got %q", got.NotifyAt)
			}
			got.NotifyAt = ""
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestFormatPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern model.RecurrencePattern
		want    string
	}{
		{"daily", model.RecurrencePattern{Type: model.RecurrenceDaily, Interval: 1}, "Daily"},
		{"daily interval", model.RecurrencePattern{Type: model.RecurrenceDaily, Interval: 3}, "Every 3 days"},
		{"weekly", model.RecurrencePattern{Type: model.RecurrenceWeekly}, "Weekly"},
		{"weekly days", model.RecurrencePattern{Type: model.RecurrenceWeekly, DaysOfWeek: []int{1, 3, 5}}, "Weekly on Mon, Wed, Fri"},
		{"weekly interval", model.RecurrencePattern{Type: model.RecurrenceWeekly, Interval: 2}, "Every 2 weeks"},
		{"weekly days interval", model.RecurrencePattern{Type: model.RecurrenceWeekly, Interval: 2, DaysOfWeek: []int{2}}, "Every 2 weeks on Tue"},
		{"monthly", model.RecurrencePattern{Type: model.RecurrenceMonthly}, "Monthly"},
		{"monthly 3rd", model.RecurrencePattern{Type: model.RecurrenceMonthly, DayOfMonth: 3}, "Monthly on the 3rd"},
		{"monthly teens", model.RecurrencePattern{Type: model.RecurrenceMonthly, DayOfMonth: 11}, "Monthly on the 11th"},
		{"monthly 21st", model.RecurrencePattern{Type: model.RecurrenceMonthly, DayOfMonth: 21}, "Monthly on the 21st"},
		{"monthly 22nd", model.RecurrencePattern{Type: model.RecurrenceMonthly, DayOfMonth: 22}, "Monthly on the 22nd"},
		{"monthly interval", model.RecurrencePattern{Type: model.RecurrenceMonthly, Interval: 6, DayOfMonth: 1}, "Every 6 months on the 1st"},
		{"yearly", model.RecurrencePattern{Type: model.RecurrenceYearly}, "Yearly"},
		{"yearly date", model.RecurrencePattern{Type: model.RecurrenceYearly, MonthOfYear: 7, DayOfMonth: 4}, "Yearly on Jul 4"},
		{"yearly interval", model.RecurrencePattern{Type: model.RecurrenceYearly, Interval: 2}, "Every 2 years"},
		{"custom bare", model.RecurrencePattern{Type: model.RecurrenceCustom}, "Custom"},
		{"custom days", model.RecurrencePattern{Type: model.RecurrenceCustom, DaysOfWeek: []int{2, 4}}, "Custom: Tue, Thu"},
		{"custom days interval", model.RecurrencePattern{Type: model.RecurrenceCustom, Interval: 2, DaysOfWeek: []int{1, 3, 5}}, "Custom: Mon, Wed, Fri every 2 weeks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPattern(tt.pattern); got != tt.want {
				t.Fatalf("FormatPattern = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOrdinalSuffixes(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 24: "24th", 31: "31st",
	}
	for n, want := range cases {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

// A parsed pattern formats back to text carrying the same structural facts.
func TestParseFormatRoundTrip(t *testing.T) {
	tests := []struct {
		text     string
		contains []string
	}{
		{"every Mon, Wed, Fri", []string{"Mon, Wed, Fri"}},
		{"every 3 days", []string{"3 days"}},
		{"every month on the 15th", []string{"15th"}},
		{"every 2 weeks", []string{"2 weeks"}},
	}

	for _, tt := range tests {
		p := ParseDescription(tt.text)
		if p == nil {
			t.Fatalf("failed to parse %q", tt.text)
		}
		formatted := FormatPattern(*p)
		for _, fragment := range tt.contains {
			if !strings.Contains(formatted, fragment) {
				t.Errorf("formatting %q gave %q, missing %q", tt.text, formatted, fragment)
			}
		}
	}
}

package civil_test

import (
	"testing"
	"time"

	"readrise/internal/platform/civil"
)

func TestAddDaysCrossesMonthYearAndLeapDay(t *testing.T) {
	t.Parallel()
	cases := []struct {
		from string
		n    int
		want string
	}{
		{"2024-06-15", -1, "2024-06-14"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2023-03-01", -1, "2023-02-28"},
		{"2024-01-01", -1, "2023-12-31"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-31", 1, "2024-04-01"},
	}
	for _, tc := range cases {
		got := civil.MustParse(tc.from).AddDays(tc.n).String()
		if got != tc.want {
			t.Fatalf("%s %+d: expected %s, got %s", tc.from, tc.n, tc.want, got)
		}
	}
}

func TestDateOfUsesUTCDay(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+10", 10*3600)
	instant := time.Date(2024, 6, 15, 8, 0, 0, 0, loc)
	if got := civil.DateOf(instant).String(); got != "2024-06-14" {
		t.Fatalf("expected UTC day 2024-06-14, got %s", got)
	}
}

func TestCompareAndParse(t *testing.T) {
	t.Parallel()
	a := civil.MustParse("2024-05-26")
	b := civil.MustParse("2024-06-15")
	if !a.Before(b) || !b.After(a) || a.Compare(a) != 0 {
		t.Fatalf("unexpected ordering between %s and %s", a, b)
	}
	if _, err := civil.Parse("2024-13-01"); err == nil {
		t.Fatalf("invalid month should fail")
	}
	var d civil.Date
	if err := d.UnmarshalText([]byte("2024-02-29")); err != nil || d.String() != "2024-02-29" {
		t.Fatalf("unmarshal text: %v %s", err, d)
	}
}

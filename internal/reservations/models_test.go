package reservations

import "testing"

func mustWindow(t *testing.T, checkIn, checkOut string) StayWindow {
	t.Helper()
	window, err := NormalizeStay(checkIn, checkOut)
	if err != nil {
		t.Fatalf("NormalizeStay(%q, %q) returned error: %v", checkIn, checkOut, err)
	}
	return window
}

func TestOverlaps(t *testing.T) {
	existing := mustWindow(t, "2026-06-01", "2026-06-03")

	tests := []struct {
		name      string
		candidate StayWindow
		want      bool
	}{
		{"identical stay", mustWindow(t, "2026-06-01", "2026-06-03"), true},
		{"contained inside", mustWindow(t, "2026-06-01", "2026-06-02"), true},
		{"spanning over", mustWindow(t, "2026-05-30", "2026-06-05"), true},
		{"straddles the start", mustWindow(t, "2026-05-31", "2026-06-02"), true},
		{"straddles the end", mustWindow(t, "2026-06-02", "2026-06-04"), true},

		// Back-to-back stays: same-day turnover never conflicts because
		// check-out at 12:00 precedes check-in at 14:00.
		{"starts on the existing check-out day", mustWindow(t, "2026-06-03", "2026-06-05"), false},
		{"ends on the existing check-in day", mustWindow(t, "2026-05-30", "2026-06-01"), false},

		{"entirely before", mustWindow(t, "2026-05-20", "2026-05-25"), false},
		{"entirely after", mustWindow(t, "2026-06-10", "2026-06-12"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.candidate, existing); got != tt.want {
				t.Errorf("Overlaps(%v..%v vs %v..%v) = %v, want %v",
					tt.candidate.CheckIn, tt.candidate.CheckOut,
					existing.CheckIn, existing.CheckOut, got, tt.want)
			}
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	a := mustWindow(t, "2026-06-01", "2026-06-04")
	b := mustWindow(t, "2026-06-03", "2026-06-06")

	if !Overlaps(a, b) || !Overlaps(b, a) {
		t.Errorf("Overlaps should be symmetric for intersecting windows")
	}

	c := mustWindow(t, "2026-06-04", "2026-06-06")
	if Overlaps(a, c) || Overlaps(c, a) {
		t.Errorf("Overlaps should be symmetric for touching windows")
	}
}

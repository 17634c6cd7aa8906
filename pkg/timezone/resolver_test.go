package timezone

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestResolveValidNames(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"America/New_York", "America/New_York"},
		{"Europe/London", "Europe/London"},
		{"Asia/Kathmandu", "Asia/Kathmandu"},
		{"UTC", "UTC"},
		{"GMT", "GMT"},
		{"Etc/UTC", "Etc/UTC"},
		{"Etc/GMT+5", "Etc/GMT+5"},   // IANA name, not an offset form
		{"US/Eastern", "US/Eastern"}, // backward-compatible link
		{"  Asia/Tokyo  ", "Asia/Tokyo"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, err := Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tt.input, err)
			}
			if h.Name() != tt.want {
				t.Errorf("Resolve(%q).Name() = %q, want %q", tt.input, h.Name(), tt.want)
			}
			if h.Location() == nil {
				t.Errorf("Resolve(%q).Location() is nil", tt.input)
			}
		})
	}
}

func TestResolveRejectsOffsets(t *testing.T) {
	inputs := []string{"+05:30", "-05:00", "+0800", "-3", "UTC+5", "UTC-8", "UTC+5:30", "GMT+1", "GMT-03:00", "utc+2", " +01:00 "}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Resolve(in)
			if !errors.Is(err, ErrOffsetForm) {
				t.Fatalf("Resolve(%q) error = %v, want ErrOffsetForm", in, err)
			}
			if !strings.Contains(err.Error(), "IANA timezone name") {
				t.Errorf("error message %q does not suggest an IANA name", err.Error())
			}
			if !strings.Contains(err.Error(), strings.TrimSpace(in)) {
				t.Errorf("error message %q does not name the input", err.Error())
			}
		})
	}
}

func TestResolveRejectsAbbreviations(t *testing.T) {
	// EST, MST, HST, CET, EET, MET and WET exist in the tz database but are still rejected.
	inputs := []string{"EST", "PST", "CET", "EET", "MET", "WET", "IST", "CEST", "AEDT", "MST", "HST", "ET"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Resolve(in)
			if !errors.Is(err, ErrAbbreviation) {
				t.Fatalf("Resolve(%q) error = %v, want ErrAbbreviation", in, err)
			}
			if !strings.Contains(err.Error(), "America/New_York") {
				t.Errorf("error message %q does not suggest an IANA equivalent", err.Error())
			}
		})
	}
}

func TestResolveUppercaseRegionLinks(t *testing.T) {
	for _, in := range []string{"UCT", "GB", "NZ", "PRC", "ROC", "ROK"} {
		t.Run(in, func(t *testing.T) {
			h, err := Resolve(in)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", in, err)
			}
			if h.Name() != in {
				t.Errorf("Name() = %q, want %q", h.Name(), in)
			}
		})
	}
}

func TestResolveInvalidNames(t *testing.T) {
	inputs := []string{"Fake/Zone", "Not/A/Timezone", "", "   ", "Local", "ABCDEF", "America/New York"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Resolve(in)
			if !errors.Is(err, ErrInvalidName) {
				t.Fatalf("Resolve(%q) error = %v, want ErrInvalidName", in, err)
			}
			if !strings.HasPrefix(err.Error(), "Invalid timezone:") {
				t.Errorf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestValidationErrorClassification(t *testing.T) {
	_, err := Resolve("PST")
	if !IsValidation(err) {
		t.Fatalf("IsValidation(%v) = false, want true", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("errors.As failed for %v", err)
	}
	if ve.Input != "PST" {
		t.Errorf("Input = %q, want %q", ve.Input, "PST")
	}

	if IsValidation(errors.New("disk on fire")) {
		t.Error("IsValidation returned true for a plain error")
	}
}

func TestResolverCacheReturnsSameLocation(t *testing.T) {
	r := NewResolver(nil, 0)

	first, err := r.Resolve("Europe/Paris")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := r.Resolve("Europe/Paris")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if first.Location() != second.Location() {
		t.Error("expected cached *time.Location to be reused")
	}
}

func TestResolverConcurrentUse(t *testing.T) {
	r := NewResolver(nil, 8)
	names := []string{"UTC", "Asia/Tokyo", "Europe/Berlin", "PST", "+01:00", "Fake/Zone"}

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, _ = r.Resolve(name) //nolint:errcheck // exercising concurrent access only
		}(names[i%len(names)])
	}
	wg.Wait()
}

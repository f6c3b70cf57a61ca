package phone

import "testing"

func TestValidateRejectsFakePatterns(t *testing.T) {
	rejected := []string{
		"1111111111",
		"0000000000",
		"9999999999",
		"1234567890",
		"9876543210",
		"0001234567",
		"555-123-5511",
		"(555) 867-5522",
		"212-1111111",
		"123",
		"12345678901234567",
	}
	for _, raw := range rejected {
		if Validate(raw) {
			t.Errorf("Validate(%q) = true, want rejection", raw)
		}
	}
}

func TestValidateAcceptsRealShapedNumbers(t *testing.T) {
	accepted := []string{
		"(212) 555-0134",
		"+442071838750",
		"14155552671",
		"415-555-2671",
	}
	for _, raw := range accepted {
		if !Validate(raw) {
			t.Errorf("Validate(%q) = false, want accept", raw)
		}
	}
}

func TestNormalizeAppliesE164Rules(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"(212) 555-0134", "+12125550134"},
		{"+44 20 7183 8750", "+442071838750"},
		{"14155552671", "+14155552671"},
		{"61293744000", "+61293744000"},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.raw)
		if !ok || got != tc.want {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, true)", tc.raw, got, ok, tc.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"(212) 555-0134", "+442071838750", "415 555 2671"}
	for _, raw := range inputs {
		once, ok := Normalize(raw)
		if !ok {
			t.Fatalf("Normalize(%q) unexpectedly rejected", raw)
		}
		twice, ok := Normalize(once)
		if !ok || twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", raw, twice, once)
		}
	}
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	if got, ok := Normalize("1234567890"); ok {
		t.Fatalf("expected rejection, got %q", got)
	}
}

func TestNormalizeWithRegionUsesCountryHint(t *testing.T) {
	got, ok := NormalizeWithRegion("020 7183 8750", "GB")
	if !ok || got != "+442071838750" {
		t.Fatalf("NormalizeWithRegion = (%q, %v), want (+442071838750, true)", got, ok)
	}
}

func TestNormalizeWithRegionDefaultsToUS(t *testing.T) {
	got, ok := NormalizeWithRegion("(212) 555-0134", "US")
	if !ok || got != "+12125550134" {
		t.Fatalf("NormalizeWithRegion = (%q, %v), want (+12125550134, true)", got, ok)
	}
}

func TestBestPrefersLongestDigitString(t *testing.T) {
	got, ok := Best([]string{"(212) 555-0134", "+44 20 7183 8750", "not a phone"})
	if !ok || got != "+442071838750" {
		t.Fatalf("Best = (%q, %v), want (+442071838750, true)", got, ok)
	}
}

func TestBestAllInvalid(t *testing.T) {
	if got, ok := Best([]string{"123", "1111111111"}); ok {
		t.Fatalf("expected no usable number, got %q", got)
	}
}

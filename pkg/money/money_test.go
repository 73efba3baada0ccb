package money

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
	}{
		{"₹49", 4900},
		{"₹65", 6500},
		{"₹1,049.50", 104950},
		{"49", 4900},
		{" ₹20 ", 2000},
		{"₹0", 0},
		{"₹15.5", 1550},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", tc.in, err)
		}
		if got.Paise() != tc.want {
			t.Fatalf("Parse(%q) = %d, want %d", tc.in, got.Paise(), tc.want)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "₹", "₹abc", "₹-5", "free", "₹1.2.3"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q): expected error", in)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	t.Parallel()

	a := MustParse("₹1,049.50")
	if a.String() != "₹1049.50" {
		t.Fatalf("unexpected display form: %s", a.String())
	}

	back, err := Parse(a.String())
	if err != nil {
		t.Fatalf("round trip parse failed: %v", err)
	}
	if back != a {
		t.Fatalf("round trip mismatch: %d != %d", back, a)
	}
}

func TestMul(t *testing.T) {
	t.Parallel()

	if got := MustParse("₹15.5").Mul(2); got.Paise() != 3100 {
		t.Fatalf("unexpected product: %d", got.Paise())
	}
}

package season

import (
	"fmt"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for y := 1917; y <= 2100; y++ {
		code := Encode(y)
		if got := Decode(code); got != y {
			t.Fatalf("Decode(Encode(%d)) = %d, want %d (code=%q)", y, got, y, code)
		}
	}
}

func TestEncodeFormat(t *testing.T) {
	if got := Encode(2023); got != "20232024" {
		t.Fatalf("Encode(2023) = %q, want 20232024", got)
	}
}

func TestParseTOI(t *testing.T) {
	for m := 0; m <= 99; m += 7 {
		for s := 0; s <= 59; s += 11 {
			str := fmt.Sprintf("%02d:%02d", m, s)
			want := round2(float64(m) + float64(s)/60.0)
			if got := ParseTOI(str); got != want {
				t.Fatalf("ParseTOI(%q) = %v, want %v", str, got, want)
			}
		}
	}
}

func TestParseTOIMalformed(t *testing.T) {
	cases := []string{"", "garbage", "12", "ab:cd", ":30", "12:"}
	for _, c := range cases {
		if got := ParseTOI(c); got != 0.0 {
			t.Fatalf("ParseTOI(%q) = %v, want 0.0", c, got)
		}
	}
}

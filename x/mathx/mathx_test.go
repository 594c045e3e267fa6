package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5,0,10) = %d", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1,0,10) = %d", got)
	}
	if got := Clamp(uint16(5000), 0, 4095); got != 4095 {
		t.Errorf("Clamp(5000,0,4095) = %d", got)
	}
}

func TestBetween(t *testing.T) {
	if !Between(10, 10, 400) || !Between(400, 10, 400) {
		t.Error("bounds are inclusive")
	}
	if Between(9, 10, 400) || Between(401, 10, 400) {
		t.Error("out of range accepted")
	}
}

func TestMapU16(t *testing.T) {
	cases := []struct {
		x, want uint16
	}{
		{1000, 0},
		{4000, 400},
		{2500, 200},
		{500, 0},    // below input range clamps low
		{4500, 400}, // above input range clamps high
	}
	for _, c := range cases {
		if got := MapU16(c.x, 1000, 4000, 0, 400); got != c.want {
			t.Errorf("MapU16(%d) = %d, want %d", c.x, got, c.want)
		}
	}
	if got := MapU16(7, 3, 3, 9, 100); got != 9 {
		t.Errorf("degenerate input range: got %d, want 9", got)
	}
}

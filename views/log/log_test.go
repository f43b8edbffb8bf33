package log

import "testing"

func TestPanelHeight(t *testing.T) {
	cases := []struct{ h, want int }{
		{h: 12, want: 4},
		{h: 30, want: 10},
		{h: 100, want: 15},
	}
	for _, tc := range cases {
		if got := PanelHeight(tc.h); got != tc.want {
			t.Errorf("PanelHeight(%d) = %d, want %d", tc.h, got, tc.want)
		}
	}
}

package engine

import "testing"

func TestSelectEnabled(t *testing.T) {
	const (
		i = MechanismInterval
		b = MechanismBarrier
		r = MechanismRefresh
	)

	tests := []struct {
		name      string
		installed [mechanismCount]bool
		weights   [mechanismCount]float64
		want      [mechanismCount]bool
	}{
		{
			name:    "nothing installed",
			weights: [mechanismCount]float64{1, 1, 1},
			want:    [mechanismCount]bool{},
		},
		{
			name:      "equal weights enable all installed",
			installed: [mechanismCount]bool{i: true, b: true, r: true},
			weights:   [mechanismCount]float64{1, 1, 1},
			want:      [mechanismCount]bool{i: true, b: true, r: true},
		},
		{
			name:      "single winner disables the rest",
			installed: [mechanismCount]bool{i: true, b: true, r: true},
			weights:   [mechanismCount]float64{i: 1, b: 5, r: 2},
			want:      [mechanismCount]bool{b: true},
		},
		{
			name:      "tie at the top enables both winners",
			installed: [mechanismCount]bool{i: true, b: true, r: true},
			weights:   [mechanismCount]float64{i: 1, b: 3, r: 3},
			want:      [mechanismCount]bool{b: true, r: true},
		},
		{
			name:      "uninstalled winner weight is ignored",
			installed: [mechanismCount]bool{b: true},
			weights:   [mechanismCount]float64{i: 100, b: 1, r: 100},
			want:      [mechanismCount]bool{b: true},
		},
		{
			name:      "negative weights still pick the max",
			installed: [mechanismCount]bool{i: true, b: true},
			weights:   [mechanismCount]float64{i: -2, b: -1, r: 0},
			want:      [mechanismCount]bool{b: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := selectEnabled(tc.installed, tc.weights); got != tc.want {
				t.Fatalf("selectEnabled() = %v, want %v", got, tc.want)
			}
		})
	}
}

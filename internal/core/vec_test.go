package core

import (
	"math"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestTowards(t *testing.T) {
	tests := map[string]struct {
		from Vec3
		to   Vec3
		step float64
		exp  Vec3
	}{
		"partial step": {
			from: Vec3{},
			to:   Vec3{X: 10},
			step: 4,
			exp:  Vec3{X: 4},
		},
		"arrives without overshoot": {
			from: Vec3{X: 8},
			to:   Vec3{X: 10},
			step: 4,
			exp:  Vec3{X: 10},
		},
		"already there": {
			from: Vec3{Z: 3},
			to:   Vec3{Z: 3},
			step: 1,
			exp:  Vec3{Z: 3},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "position", Towards(tt.from, tt.to, tt.step), tt.exp)
		})
	}
}

func TestDistance(t *testing.T) {
	testutil.AssertEqual(t, "3-4-5", Distance(Vec3{}, Vec3{X: 3, Z: 4}), 5.0)
}

func TestVec3_IsFinite(t *testing.T) {
	tests := map[string]struct {
		v   Vec3
		exp bool
	}{
		"origin":   {v: Vec3{}, exp: true},
		"negative": {v: Vec3{X: -3, Z: 2.5}, exp: true},
		"nan":      {v: Vec3{X: math.NaN()}, exp: false},
		"inf":      {v: Vec3{Z: math.Inf(-1)}, exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "finite", tt.v.IsFinite(), tt.exp)
		})
	}
}

package core

import (
	"math"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type recordingObserver struct {
	assaults int
	deaths   int
}

func (o *recordingObserver) OnAssaultStarted() { o.assaults++ }
func (o *recordingObserver) OnDeath()          { o.deaths++ }

func TestHealth_TakeDamage(t *testing.T) {
	tests := map[string]struct {
		start       float64
		damage      []float64
		expPoints   float64
		expAlive    bool
		expAssault  bool
		expAssaults int
		expDeaths   int
	}{
		"no damage": {
			start:     100,
			expPoints: 100,
			expAlive:  true,
		},
		"first hit starts assault": {
			start:       100,
			damage:      []float64{5},
			expPoints:   95,
			expAlive:    true,
			expAssault:  true,
			expAssaults: 1,
		},
		"second hit does not restart assault": {
			start:       100,
			damage:      []float64{5, 5},
			expPoints:   90,
			expAlive:    true,
			expAssault:  true,
			expAssaults: 1,
		},
		"lethal first hit dies without assault": {
			start:     10,
			damage:    []float64{25},
			expPoints: 0,
			expDeaths: 1,
		},
		"overkill clamps at zero and dies once": {
			start:       10,
			damage:      []float64{5, 25, 25},
			expPoints:   0,
			expAssault:  true,
			expAssaults: 1,
			expDeaths:   1,
		},
		"negative damage clamps to zero": {
			start:       50,
			damage:      []float64{-10},
			expPoints:   50,
			expAlive:    true,
			expAssault:  true,
			expAssaults: 1,
		},
		"NaN damage clamps to zero": {
			start:       50,
			damage:      []float64{math.NaN(), 5},
			expPoints:   45,
			expAlive:    true,
			expAssault:  true,
			expAssaults: 1,
		},
		"zero damage counts as an assault": {
			start:       50,
			damage:      []float64{0},
			expPoints:   50,
			expAlive:    true,
			expAssault:  true,
			expAssaults: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			obs := &recordingObserver{}
			h := NewHealth(tt.start, &Scheduler{}, obs)

			for _, d := range tt.damage {
				h.TakeDamage(d)
				if h.Points() < 0 {
					t.Fatalf("points went negative: %v", h.Points())
				}
			}

			testutil.AssertEqual(t, "points", h.Points(), tt.expPoints)
			testutil.AssertEqual(t, "alive", h.IsAlive(), tt.expAlive)
			testutil.AssertEqual(t, "assaulted", h.IsAssaulted(), tt.expAssault)
			testutil.AssertEqual(t, "assault events", obs.assaults, tt.expAssaults)
			testutil.AssertEqual(t, "death events", obs.deaths, tt.expDeaths)
		})
	}
}

func TestHealth_DeathReleasesScheduler(t *testing.T) {
	s := &Scheduler{}
	owner := &countingOwner{}
	s.StartAction(owner)

	h := NewHealth(10, s, nil)
	h.TakeDamage(10)

	testutil.AssertEqual(t, "alive", h.IsAlive(), false)
	testutil.AssertEqual(t, "owner cancelled", owner.cancelled, 1)
	testutil.AssertEqual(t, "scheduler empty", s.Current() == nil, true)
}

func TestHealth_DamageWhenDeadIsNoop(t *testing.T) {
	obs := &recordingObserver{}
	h := NewHealth(10, &Scheduler{}, obs)
	h.TakeDamage(10)
	h.Tick(3 * time.Second)

	before := *h
	h.TakeDamage(5)
	h.TakeDamage(500)

	testutil.AssertEqual(t, "points", h.Points(), before.points)
	testutil.AssertEqual(t, "alive", h.IsAlive(), before.alive)
	testutil.AssertEqual(t, "assaulted", h.IsAssaulted(), before.assaulted)
	testutil.AssertEqual(t, "since assault", h.SinceAssault(), before.sinceAssault)
	testutil.AssertEqual(t, "death events", obs.deaths, 1)
	testutil.AssertEqual(t, "assault events", obs.assaults, 0)
}

func TestHealth_Tick(t *testing.T) {
	h := NewHealth(10, nil, nil)
	testutil.AssertEqual(t, "starts at never", h.SinceAssault(), Never)

	h.Tick(time.Second)
	testutil.AssertEqual(t, "saturates", h.SinceAssault(), Never)

	h.TakeDamage(1)
	h.Tick(time.Second)
	h.Tick(500 * time.Millisecond)
	testutil.AssertEqual(t, "advances", h.SinceAssault(), 1500*time.Millisecond)

	h.ResetAssaultTimer()
	testutil.AssertEqual(t, "reset", h.SinceAssault(), time.Duration(0))
}

func TestHealth_Heal(t *testing.T) {
	h := NewHealth(10, nil, nil)
	h.TakeDamage(6)
	h.Heal(2)
	testutil.AssertEqual(t, "healed", h.Points(), 6.0)
	h.Heal(100)
	testutil.AssertEqual(t, "capped", h.Points(), 10.0)

	h.TakeDamage(3)
	h.Heal(math.NaN())
	testutil.AssertEqual(t, "NaN heal ignored", h.Points(), 7.0)

	h.TakeDamage(10)
	h.Heal(5)
	testutil.AssertEqual(t, "dead stays dead", h.Points(), 0.0)
}

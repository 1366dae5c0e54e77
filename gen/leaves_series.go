package gen

import (
	"math"
	"math/rand"
	"time"

	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

var errThinningExhausted = diag.Unspecifiedf("cyclical series: thinning sampler failed to accept a candidate within the attempt budget")

// NewSeriesIncrementing returns a factory producing a strictly-increasing
// date-time sequence advancing by a fixed duration each call:
// t_k = start + k*duration. Like NewIncrementing,
// state lives in the closure so the sequence keeps advancing across
// sampling rounds rather than restarting at start each round.
func NewSeriesIncrementing(format string, start time.Time, duration time.Duration) func() (ValueGen, error) {
	state := &incSeriesState{current: start, duration: duration}
	return func() (ValueGen, error) {
		return Leaf(func(*rand.Rand) (value.Value, error) {
			return state.advance(format), nil
		}), nil
	}
}

type incSeriesState struct {
	current  time.Time
	duration time.Duration
	started  bool
}

func (s *incSeriesState) advance(format string) value.Value {
	if !s.started {
		s.started = true
		return value.DateTime(s.current, format)
	}
	s.current = s.current.Add(s.duration)
	return value.DateTime(s.current, format)
}

// NewSeriesPoisson returns a factory producing a date-time sequence whose
// gaps are exponentially distributed with mean 1/rate:
// t_{k+1} = t_k + Exp(rate). rate is in events per
// second.
func NewSeriesPoisson(format string, start time.Time, rate float64) func() (ValueGen, error) {
	state := &poissonSeriesState{current: start, rate: rate}
	return func() (ValueGen, error) {
		return Leaf(func(rng *rand.Rand) (value.Value, error) {
			return state.advance(format, rng), nil
		}), nil
	}
}

type poissonSeriesState struct {
	current time.Time
	rate    float64
	started bool
}

func (s *poissonSeriesState) advance(format string, rng *rand.Rand) value.Value {
	if !s.started {
		s.started = true
		return value.DateTime(s.current, format)
	}
	gapSeconds := rng.ExpFloat64() / s.rate
	s.current = s.current.Add(time.Duration(gapSeconds * float64(time.Second)))
	return value.DateTime(s.current, format)
}

// cyclicalThinningAttempts bounds the rejection-sampling loop used to draw
// the next event under a time-varying rate; with minRate > 0 the expected
// number of attempts is maxRate/rate(t), which in any realistic schema
// configuration is far below this ceiling.
const cyclicalThinningAttempts = 10000

// NewSeriesCyclical returns a factory producing a date-time sequence whose
// instantaneous rate varies sinusoidally between minRate and maxRate over
// period, drawn by Lewis-Shedler thinning against the maxRate envelope
//.
func NewSeriesCyclical(format string, start time.Time, period time.Duration, minRate, maxRate float64) func() (ValueGen, error) {
	state := &cyclicalSeriesState{current: start, epoch: start, period: period, minRate: minRate, maxRate: maxRate}
	return func() (ValueGen, error) {
		return Leaf(func(rng *rand.Rand) (value.Value, error) {
			return state.advance(format, rng)
		}), nil
	}
}

type cyclicalSeriesState struct {
	current time.Time
	epoch   time.Time
	period  time.Duration
	minRate float64
	maxRate float64
	started bool
}

func (s *cyclicalSeriesState) rateAt(t time.Time) float64 {
	elapsed := t.Sub(s.epoch).Seconds()
	phase := 2 * math.Pi * elapsed / s.period.Seconds()
	return s.minRate + (s.maxRate-s.minRate)*(1+math.Sin(phase))/2
}

func (s *cyclicalSeriesState) advance(format string, rng *rand.Rand) (value.Value, error) {
	if !s.started {
		s.started = true
		return value.DateTime(s.current, format), nil
	}
	for attempt := 0; attempt < cyclicalThinningAttempts; attempt++ {
		gapSeconds := rng.ExpFloat64() / s.maxRate
		candidate := s.current.Add(time.Duration(gapSeconds * float64(time.Second)))
		if rng.Float64() <= s.rateAt(candidate)/s.maxRate {
			s.current = candidate
			return value.DateTime(s.current, format), nil
		}
		s.current = candidate
	}
	return value.Value{}, errThinningExhausted
}

// zipChild tracks one SeriesZip member's next not-yet-emitted value.
type zipChild struct {
	next    func() (ValueGen, error)
	pending *value.Value
}

type zipState struct {
	children []*zipChild
}

// NewSeriesZip returns a factory merging children by globally pulling
// whichever child holds the smallest next timestamp.
// Each child is itself a persistent-state series factory, so every child's
// own advance rule (Incrementing, Poisson, Cyclical, or a nested Zip) keeps
// running independently; only the interleaving is decided here.
func NewSeriesZip(children []func() (ValueGen, error)) func() (ValueGen, error) {
	state := &zipState{children: make([]*zipChild, len(children))}
	for i, c := range children {
		state.children[i] = &zipChild{next: c}
	}
	return func() (ValueGen, error) {
		return Leaf(func(rng *rand.Rand) (value.Value, error) {
			return state.advance(rng)
		}), nil
	}
}

func (s *zipState) advance(rng *rand.Rand) (value.Value, error) {
	for _, c := range s.children {
		if c.pending == nil {
			g, err := c.next()
			if err != nil {
				return value.Value{}, err
			}
			v, err := Aggregate(g, rng)
			if err != nil {
				return value.Value{}, err
			}
			c.pending = &v
		}
	}
	minIdx := 0
	minT, _, _ := s.children[0].pending.AsDateTime()
	for i := 1; i < len(s.children); i++ {
		t, _, _ := s.children[i].pending.AsDateTime()
		if t.Before(minT) {
			minT = t
			minIdx = i
		}
	}
	result := *s.children[minIdx].pending
	s.children[minIdx].pending = nil
	return result, nil
}

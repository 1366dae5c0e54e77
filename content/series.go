package content

import (
	"time"

	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

// SeriesVariant selects how a Series node's strictly-increasing date-time
// sequence advances from one record to the next.
type SeriesVariant interface {
	seriesVariant()
}

// SeriesIncrementing advances by a fixed Duration each step:
// t_k = Start + k*Duration.
type SeriesIncrementing struct {
	Start    time.Time
	Duration time.Duration
}

func (SeriesIncrementing) seriesVariant() {}

// NewSeriesIncrementing validates duration is positive.
func NewSeriesIncrementing(start time.Time, duration time.Duration) (SeriesIncrementing, error) {
	if duration <= 0 {
		return SeriesIncrementing{}, diag.BadRequestf("incrementing series requires a positive duration, got %s", duration)
	}
	return SeriesIncrementing{Start: start, Duration: duration}, nil
}

// SeriesPoisson advances by an exponentially-distributed gap with mean
// 1/Rate: t_{k+1} = t_k + Exp(Rate).
type SeriesPoisson struct {
	Start time.Time
	Rate  float64
}

func (SeriesPoisson) seriesVariant() {}

// NewSeriesPoisson validates rate is positive.
func NewSeriesPoisson(start time.Time, rate float64) (SeriesPoisson, error) {
	if rate <= 0 {
		return SeriesPoisson{}, diag.BadRequestf("poisson series requires a positive rate, got %v", rate)
	}
	return SeriesPoisson{Start: start, Rate: rate}, nil
}

// SeriesCyclical advances with an instantaneous rate that varies
// sinusoidally between MinRate and MaxRate over Period.
type SeriesCyclical struct {
	Start            time.Time
	Period           time.Duration
	MinRate, MaxRate float64
}

func (SeriesCyclical) seriesVariant() {}

// NewSeriesCyclical validates period is positive and 0 < minRate <= maxRate.
func NewSeriesCyclical(start time.Time, period time.Duration, minRate, maxRate float64) (SeriesCyclical, error) {
	if period <= 0 {
		return SeriesCyclical{}, diag.BadRequestf("cyclical series requires a positive period, got %s", period)
	}
	if minRate <= 0 || maxRate < minRate {
		return SeriesCyclical{}, diag.BadRequestf("cyclical series requires 0 < min_rate <= max_rate, got min=%v max=%v", minRate, maxRate)
	}
	return SeriesCyclical{Start: start, Period: period, MinRate: minRate, MaxRate: maxRate}, nil
}

// SeriesZip merges Children — each itself a Series node — by globally
// repeatedly pulling whichever child holds the smallest next timestamp.
type SeriesZip struct {
	Children []Content
}

func (SeriesZip) seriesVariant() {}

// NewSeriesZip validates children is non-empty and every entry is itself a
// Series node.
func NewSeriesZip(children []Content) (SeriesZip, error) {
	if len(children) == 0 {
		return SeriesZip{}, diag.BadRequestf("zip series requires at least one child series")
	}
	for i, c := range children {
		if _, ok := c.(Series); !ok {
			return SeriesZip{}, diag.BadRequestf("zip series child %d must be a series node, got kind %q", i, c.Kind())
		}
	}
	return SeriesZip{Children: children}, nil
}

// Series is the content node producing a strictly-increasing sequence of
// DateTime values, formatted with Format, advanced per Variant.
type Series struct {
	Format  string
	Variant SeriesVariant
}

// NewSeries wraps variant as a Series content node.
func NewSeries(format string, variant SeriesVariant) Series {
	return Series{Format: format, Variant: variant}
}

func (Series) Kind() Kind { return KindSeries }

func (Series) Accepts(v value.Value) bool {
	_, _, ok := v.AsDateTime()
	return ok
}

func (Series) content() {}

package gen

import (
	"hash"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2"
	bloomfilter "github.com/holiman/bloomfilter/v2"

	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

// UniqueBacking tracks values a Unique-wrapped generator has already
// yielded, so the next duplicate draw can be detected and resampled away.
type UniqueBacking interface {
	Contains(v value.Value) bool
	Insert(v value.Value)
}

// maxUniqueAttempts bounds how many times Unique resamples its inner
// generator looking for a fresh value before giving up with a Conflict
// diagnostic. A schema that repeatedly yields the same handful of values
// (scenario: a constant wrapped in Unique) exhausts this quickly rather
// than hanging; the sample driver's livelock break is the outer
// backstop for the same condition at the round level.
const maxUniqueAttempts = 1000

// Unique wraps newInner so repeated runs never yield a duplicate value,
// resampling via newInner until backing reports a fresh draw. backing
// persists across runs (and across sampling rounds, since the compiler
// constructs it once per Unique content node), which is what makes
// uniqueness whole-run rather than per-round.
func Unique(newInner func() (ValueGen, error), backing UniqueBacking) ValueGen {
	return newOneShot(func(rng *rand.Rand) (value.Value, error) {
		for attempt := 0; attempt < maxUniqueAttempts; attempt++ {
			g, err := newInner()
			if err != nil {
				return value.Value{}, err
			}
			v, err := Aggregate(g, rng)
			if err != nil {
				return value.Value{}, err
			}
			if backing.Contains(v) {
				continue
			}
			backing.Insert(v)
			return v, nil
		}
		return value.Value{}, diag.Conflictf("unique generator exhausted after %d resamples without a fresh value", maxUniqueAttempts)
	})
}

// NewExactSetBacking returns a backing that remembers every value it has
// seen: exact uniqueness, memory proportional to the number of distinct
// accepted yields. When every yielded value is an integral Number that
// fits a uint32 (array lengths, small incrementing keys), it stores the set
// in a github.com/RoaringBitmap/roaring/v2 bitmap instead of a Go map for
// compactness.
func NewExactSetBacking() UniqueBacking {
	return &exactSetBacking{seen: make(map[uint64]struct{})}
}

type exactSetBacking struct {
	seen map[uint64]struct{}
	ints *roaring.Bitmap
}

func (b *exactSetBacking) Contains(v value.Value) bool {
	if n, ok := integralKey(v); ok {
		return b.ints != nil && b.ints.Contains(n)
	}
	_, ok := b.seen[hashValue(v)]
	return ok
}

func (b *exactSetBacking) Insert(v value.Value) {
	if n, ok := integralKey(v); ok {
		if b.ints == nil {
			b.ints = roaring.New()
		}
		b.ints.Add(n)
		return
	}
	b.seen[hashValue(v)] = struct{}{}
}

// integralKey reports whether v is a Number narrow enough to fit a uint32,
// and that narrowed value.
func integralKey(v value.Value) (uint32, bool) {
	num, ok := v.AsNumber()
	if !ok {
		return 0, false
	}
	if i, ok := num.Int64(); ok && i >= 0 && i <= math.MaxUint32 {
		return uint32(i), true
	}
	if u, ok := num.Uint64(); ok && u <= math.MaxUint32 {
		return uint32(u), true
	}
	return 0, false
}

// hashValue hashes v's canonical JSON projection. A collision only costs an
// extra resample in Unique, never incorrect output, so fnv64a's collision
// rate is an acceptable tradeoff for avoiding a heavier content-aware
// hasher.
func hashValue(v value.Value) uint64 {
	return newValueHasher(v).Sum64()
}

func newValueHasher(v value.Value) hash.Hash64 {
	h := fnv.New64a()
	data, err := value.MarshalJSON(v)
	if err != nil {
		data = []byte(v.Kind().String())
	}
	_, _ = h.Write(data)
	return h
}

// NewBloomBacking returns a probabilistic backing sized for maxElements
// accepted yields at false-positive rate p: constant memory, trading a
// small chance of treating a genuinely-fresh value as a duplicate and
// silently resampling it.
func NewBloomBacking(maxElements uint64, p float64) (UniqueBacking, error) {
	filter, err := bloomfilter.NewOptimal(maxElements, p)
	if err != nil {
		return nil, diag.BadRequestf("unique bloom backing: %v", err)
	}
	return &bloomBacking{filter: filter}, nil
}

type bloomBacking struct {
	filter *bloomfilter.Filter
}

func (b *bloomBacking) Contains(v value.Value) bool {
	return b.filter.Contains(newValueHasher(v))
}

func (b *bloomBacking) Insert(v value.Value) {
	b.filter.Add(newValueHasher(v))
}

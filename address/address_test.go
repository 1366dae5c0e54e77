package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/address"
)

func TestAtAndWithinBuildExpectedSegments(t *testing.T) {
	a := address.Root().Within("users").At("profile").At("name")
	assert.Equal(t, []string{"users", "profile", "name"}, a.Segments())
	assert.Equal(t, "users.profile.name", a.String())
}

func TestRoundTripLaw(t *testing.T) {
	cases := [][]string{
		{"users", "profile", "name"},
		{"a"},
		{},
		{"orders", "content", "user_id"},
	}
	for _, segs := range cases {
		a := address.New(segs...)
		for i := 0; i <= len(segs); i++ {
			p := address.New(segs[:i]...)
			require.True(t, a.StartsWith(p))
			assert.Equal(t, a, p.Concat(a.AsLocalTo(p)))
		}
	}
}

func TestCompareIsLexicographicWithShorterPrefixFirst(t *testing.T) {
	a := address.New("users", "id")
	b := address.New("users", "id", "0")
	c := address.New("users", "name")

	assert.Negative(t, a.Compare(b))
	assert.Negative(t, b.Compare(c))
	assert.Zero(t, a.Compare(address.New("users", "id")))
}

func TestCommonRoot(t *testing.T) {
	a := address.New("orders", "user_id")
	b := address.New("orders", "total")
	assert.Equal(t, address.New("orders"), a.CommonRoot(b))
}

func TestFieldRefParsesCollectionAndDescent(t *testing.T) {
	ref, err := address.ParseFieldRef("users.profile.0.name")
	require.NoError(t, err)
	assert.Equal(t, "users", ref.Collection())
	assert.Equal(t, []string{"profile", "0", "name"}, ref.Descent())
}

func TestParseFieldRefRejectsEmptySegments(t *testing.T) {
	_, err := address.ParseFieldRef("users..name")
	assert.Error(t, err)

	_, err = address.ParseFieldRef("")
	assert.Error(t, err)
}

func FuzzParseFieldRef(f *testing.F) {
	f.Add("users.id")
	f.Add("users.content.length")
	f.Add("")
	f.Add(".")
	f.Add("a..b")
	f.Add("orders.0.user_id")

	f.Fuzz(func(t *testing.T, input string) {
		_, _ = address.ParseFieldRef(input)
	})
}

func FuzzAddressRoundTrip(f *testing.F) {
	f.Add("users", "profile")
	f.Add("", "")
	f.Add("a.b", "c")

	f.Fuzz(func(t *testing.T, seg1, seg2 string) {
		a := address.New(seg1, seg2)
		p := address.New(seg1)
		if !a.StartsWith(p) {
			t.Fatalf("expected %v to start with %v", a, p)
		}
		if got := p.Concat(a.AsLocalTo(p)); got.Compare(a) != 0 {
			t.Fatalf("round-trip law violated: got %v, want %v", got, a)
		}
	})
}

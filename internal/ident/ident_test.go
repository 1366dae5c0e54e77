package ident_test

import (
	"strings"
	"testing"

	"github.com/halvard-io/synthgen/internal/ident"
	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"users", true},
		{"user_id", true},
		{"user-id", true},
		{"Users2", true},
		{"0", true},
		{"", false},
		{"user id", false},
		{"users.id", false},
		{"usérs", false},
		{"users!", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ident.ValidName(tt.input), "ValidName(%q)", tt.input)
	}
}

func TestToLowerSnake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "all-caps with separator", input: "WORKS_AT", want: "works_at"},
		{name: "simple all-caps", input: "KNOWS", want: "knows"},
		{name: "acronym boundary", input: "HTTPProxy", want: "http_proxy"},
		{name: "CamelCase split", input: "CreatedBy", want: "created_by"},
		{name: "trailing acronym", input: "UserID", want: "user_id"},
		{name: "hyphenated", input: "first-name", want: "first_name"},
		{name: "already snake", input: "first_name", want: "first_name"},
		{name: "digits split", input: "sha256sum", want: "sha_256_sum"},
		{name: "empty", input: "", want: ""},
		{name: "separator-only", input: "___", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ident.ToLowerSnake(tt.input), "ToLowerSnake(%q)", tt.input)
		})
	}
}

func TestToLowerSnake_Idempotent(t *testing.T) {
	inputs := []string{"WORKS_AT", "HTTPProxy", "UserID", "first-name", "a1b2"}
	for _, in := range inputs {
		once := ident.ToLowerSnake(in)
		assert.Equal(t, once, ident.ToLowerSnake(once), "ToLowerSnake not idempotent on %q", in)
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"user_id", "email", "created_at"}

	assert.Equal(t, "user_id", ident.Closest("user_idd", candidates))
	assert.Equal(t, "user_id", ident.Closest("userId", candidates))
	assert.Equal(t, "email", ident.Closest("emial", candidates))

	// Too far from anything: no suggestion beats a wrong suggestion.
	assert.Equal(t, "", ident.Closest("zzzzzzzzzz", candidates))
	assert.Equal(t, "", ident.Closest("x", nil))
}

func TestClosest_PrefersExactLength(t *testing.T) {
	got := ident.Closest("emails", []string{"email", "emailing"})
	assert.Equal(t, "email", got)
}

func TestToLowerSnake_LongInput(t *testing.T) {
	in := strings.Repeat("AbC", 100)
	out := ident.ToLowerSnake(in)
	assert.NotEmpty(t, out)
	assert.Equal(t, out, ident.ToLowerSnake(out))
}

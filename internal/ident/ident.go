package ident

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NamePattern documents the identifier shape collection and field names
// must match: one or more letters, digits, hyphens, or underscores.
const NamePattern = `[A-Za-z0-9_-]+`

// ValidName reports whether s is a legal collection or field name:
// non-empty and consisting only of letters, digits, hyphens, and
// underscores.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// ToLowerSnake converts an identifier to lower_snake_case.
//
// Separator characters (underscores, hyphens, spaces, punctuation) are
// treated as word boundaries and removed from output, so the faker
// registry can accept "FirstName", "first-name", and "first_name" as the
// same generator name. Empty or separator-only inputs return an empty
// string.
//
// Examples:
//
//	ToLowerSnake("FirstName")  = "first_name"
//	ToLowerSnake("HTTPProxy")  = "http_proxy"
//	ToLowerSnake("user-id")    = "user_id"
//	ToLowerSnake("___")        = ""           // separator-only
func ToLowerSnake(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(words, "_"))
}

// Closest returns the candidate with the smallest edit distance to name,
// used to build "did you mean" hints when a field reference or collection
// lookup misses. Returns "" when candidates is empty or no candidate is
// within half of name's length (a suggestion further away than that is
// noise, not help). Distance is computed over the lower_snake
// normalization of both sides, so "userId" suggests "user_id".
func Closest(name string, candidates []string) string {
	norm := ToLowerSnake(name)
	best, bestDist := "", -1
	for _, cand := range candidates {
		d := editDistance(norm, ToLowerSnake(cand))
		if bestDist < 0 || d < bestDist {
			best, bestDist = cand, d
		}
	}
	if bestDist < 0 {
		return ""
	}
	limit := max(1, utf8.RuneCountInString(norm)/2)
	if bestDist > limit {
		return ""
	}
	return best
}

// editDistance is the Levenshtein distance over runes, two-row rolling
// computation.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = min(prev[j]+cost, min(prev[j+1]+1, curr[j]+1))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// splitWords cuts an identifier into its words: separators end a word, a
// case or digit transition starts one, and an all-caps run stays together
// until the letter that begins the next capitalized word (HTTPProxy splits
// as HTTP, Proxy). This only feeds ToLowerSnake, so unlike a general
// identifier tokenizer it has no need to remember which words were
// acronyms or digits — the split positions alone decide the output.
func splitWords(s string) []string {
	runes := []rune(s)
	var words []string
	var word []rune
	cut := func() {
		if len(word) > 0 {
			words = append(words, string(word))
			word = word[:0]
		}
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			cut()
			continue
		}
		if len(word) > 0 && breaksWord(word[len(word)-1], r, peek(runes, i+1)) {
			cut()
		}
		word = append(word, r)
	}
	cut()
	return words
}

// breaksWord reports whether cur starts a new word given the previous
// in-word rune and a one-rune lookahead (0 past the end).
func breaksWord(prev, cur, next rune) bool {
	switch {
	case unicode.IsDigit(prev) != unicode.IsDigit(cur):
		// letters↔digits always split: sha256sum -> sha, 256, sum.
		return true
	case !unicode.IsUpper(prev) && unicode.IsUpper(cur):
		// lowerUpper is a camel hump: userId -> user, Id.
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(next):
		// the last capital of an acronym run belongs to the word that
		// follows it: HTTPProxy -> HTTP before Proxy's P.
		return true
	default:
		return false
	}
}

func peek(runes []rune, i int) rune {
	if i >= len(runes) {
		return 0
	}
	return runes[i]
}

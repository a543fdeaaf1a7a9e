package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		slug string
		want string
	}{
		{"ohio-st", "OSU"},
		{"texas", "TEX"},
		{"Texas A&M", "TEXA"},
		{"texas am", "TAMU"},
		{"Saint-Marys-CA", "SMC"},
		{"fictional-college", "FICT"},
		{"osu", "OSU"},
		{"bc", "BC"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.slug))
		})
	}
}

func TestResolver_Lookup(t *testing.T) {
	r := NewDefault()

	abbr, ok := r.Lookup("gonzaga")
	assert.True(t, ok)
	assert.Equal(t, "GONZ", abbr)

	abbr, ok = r.Lookup("fictional-college")
	assert.False(t, ok, "unmapped slug is a surrogate, not a hit")
	assert.Equal(t, "FICT", abbr)
}

func TestResolver_InjectedTableIsCopied(t *testing.T) {
	table := map[string]string{"ohio-st": "OHST"}
	r := New(table)
	table["ohio-st"] = "CHANGED"
	table["texas"] = "TX"

	assert.Equal(t, "OHST", r.Resolve("ohio-st"))
	assert.Equal(t, "TEXA", r.Resolve("texas"), "fixture table does not fall through to the default table")
	assert.Equal(t, 1, r.Len())
}

func TestDefaultTable_AbbreviationsAreUnique(t *testing.T) {
	seen := make(map[string]string, len(DefaultTable))
	for slug, abbr := range DefaultTable {
		if prev, dup := seen[abbr]; dup {
			t.Fatalf("abbreviation %s used by %s and %s", abbr, prev, slug)
		}
		seen[abbr] = slug
	}
	assert.Len(t, DefaultTable, 82)
}

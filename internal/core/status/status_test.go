package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Status
		wantErr bool
	}{
		{name: "on_track", raw: "on_track", want: OnTrack},
		{name: "at_risk", raw: "at_risk", want: AtRisk},
		{name: "off_track", raw: "off_track", want: OffTrack},
		{name: "not_started", raw: "not_started", want: NotStarted},
		{name: "surrounding whitespace", raw: "  at_risk\n", want: AtRisk},
		{name: "empty", raw: "", wantErr: true},
		{name: "unknown value", raw: "complete", wantErr: true},
		{name: "wrong case is not coerced", raw: "On_Track", wantErr: true},
		{name: "hyphenated is not coerced", raw: "off-track", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidStatus))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAll_StopsAtFirstInvalid(t *testing.T) {
	_, err := ParseAll([]string{"on_track", "bogus", "at_risk"})
	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.Contains(t, err.Error(), "bogus")

	got, err := ParseAll(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRollup(t *testing.T) {
	tests := []struct {
		name     string
		children []Status
		want     Status
	}{
		{name: "nil children", children: nil, want: NotStarted},
		{name: "empty children", children: []Status{}, want: NotStarted},
		{name: "single on_track", children: []Status{OnTrack}, want: OnTrack},
		{name: "all on_track", children: []Status{OnTrack, OnTrack, OnTrack}, want: OnTrack},
		{name: "off_track dominates everything", children: []Status{OnTrack, AtRisk, NotStarted, OffTrack}, want: OffTrack},
		{name: "off_track first", children: []Status{OffTrack, OnTrack}, want: OffTrack},
		{name: "at_risk without off_track", children: []Status{OnTrack, AtRisk, NotStarted}, want: AtRisk},
		{name: "not_started with on_track is not blended", children: []Status{NotStarted, OnTrack}, want: NotStarted},
		{name: "all not_started", children: []Status{NotStarted, NotStarted}, want: NotStarted},
		{name: "duplicates allowed", children: []Status{AtRisk, AtRisk, OnTrack}, want: AtRisk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rollup(tt.children)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRollup_RejectsInvalidChild(t *testing.T) {
	// An off_track sibling must not mask a malformed value.
	_, err := Rollup([]Status{OffTrack, Status("done")})
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = Rollup([]Status{Status("")})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRollup_OrderIndependent(t *testing.T) {
	multisets := [][]Status{
		{OnTrack, AtRisk, NotStarted, OffTrack},
		{OnTrack, NotStarted, NotStarted},
		{AtRisk, OnTrack, OnTrack},
		{OnTrack, OnTrack, OnTrack},
	}

	for _, set := range multisets {
		want, err := Rollup(set)
		require.NoError(t, err)
		for _, perm := range permutations(set) {
			got, err := Rollup(perm)
			require.NoError(t, err)
			assert.Equal(t, want, got, "permutation %v of %v", perm, set)
		}
	}
}

// TestRollup_Tiers checks every multiset of up to four children against the priority tiers.
func TestRollup_Tiers(t *testing.T) {
	for _, set := range multisetsUpTo(4) {
		got, err := Rollup(set)
		require.NoError(t, err)

		switch {
		case len(set) == 0:
			assert.Equal(t, NotStarted, got)
		case contains(set, OffTrack):
			assert.Equal(t, OffTrack, got, "%v", set)
		case contains(set, AtRisk):
			assert.Equal(t, AtRisk, got, "%v", set)
		case contains(set, NotStarted):
			assert.Equal(t, NotStarted, got, "%v", set)
		default:
			assert.Equal(t, OnTrack, got, "%v", set)
		}
	}
}

func TestStatusHelpers(t *testing.T) {
	assert.Equal(t, []Status{OffTrack, AtRisk, NotStarted, OnTrack}, All())
	assert.Equal(t, "not started", NotStarted.Label())
	assert.Equal(t, "off_track", OffTrack.String())
	assert.False(t, Status("").IsValid())
}

func permutations(in []Status) [][]Status {
	if len(in) <= 1 {
		return [][]Status{append([]Status(nil), in...)}
	}
	var out [][]Status
	for i := range in {
		rest := make([]Status, 0, len(in)-1)
		rest = append(rest, in[:i]...)
		rest = append(rest, in[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]Status{in[i]}, p...))
		}
	}
	return out
}

func multisetsUpTo(n int) [][]Status {
	out := [][]Status{{}}
	frontier := [][]Status{{}}
	for size := 1; size <= n; size++ {
		var next [][]Status
		for _, base := range frontier {
			for _, s := range All() {
				set := append(append([]Status(nil), base...), s)
				next = append(next, set)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func contains(set []Status, s Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

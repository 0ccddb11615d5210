package linediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Dispatch(t *testing.T) {
	oldLines := []string{"a", "b", "c"}
	newLines := []string{"a", "x", "c"}

	for _, name := range []string{"naive", "lcs", "myers", " Myers ", "LCS"} {
		t.Run(name, func(t *testing.T) {
			d, err := Run(name, oldLines, newLines, &Options{Label: "new.txt"})
			require.NoError(t, err)
			assert.Equal(t, "new.txt", d.Label)
			assert.Equal(t, []DiffChunk{
				{Kind: Modification, Changes: []LineChange{{2, "b"}, {2, "x"}}, Removed: 1},
			}, d.Chunks)
		})
	}
}

func TestRun_NilOptions(t *testing.T) {
	d, err := Run("myers", []string{"a"}, []string{"a"}, nil)
	require.NoError(t, err)
	assert.True(t, d.Empty())
	assert.Equal(t, "", d.Label)
}

func TestRun_Errors(t *testing.T) {
	_, err := Run("patience", nil, nil, nil)
	require.ErrorIs(t, err, ErrNotImplemented)

	_, err = Run("bogus", nil, nil, nil)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Contains(t, err.Error(), `"bogus"`)

	_, err = Run("", nil, nil, nil)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestRun_MaxLines(t *testing.T) {
	oldLines := []string{"a", "b", "c"}
	newLines := []string{"d", "e"}

	for _, name := range []string{"lcs", "myers"} {
		d, err := Run(name, oldLines, newLines, &Options{MaxLines: 4})
		require.ErrorIs(t, err, ErrInputTooLarge, name)
		assert.True(t, d.Empty())

		_, err = Run(name, oldLines, newLines, &Options{MaxLines: 5})
		require.NoError(t, err, name)
	}

	// Naive is linear and ignores the limit.
	_, err := Run("naive", oldLines, newLines, &Options{MaxLines: 1})
	require.NoError(t, err)
}

func TestLookup(t *testing.T) {
	cmp, err := Lookup("lcs", nil)
	require.NoError(t, err)
	assert.IsType(t, LCS{}, cmp)

	cmp, err = Lookup("MYERS", nil)
	require.NoError(t, err)
	assert.IsType(t, Myers{}, cmp)

	cmp, err = Lookup("naive", nil)
	require.NoError(t, err)
	assert.IsType(t, Naive{}, cmp)
}

func TestAlgorithms(t *testing.T) {
	algs := Algorithms()
	require.Len(t, algs, 4)
	names := make([]string, len(algs))
	for i, a := range algs {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"naive", "lcs", "myers", "patience"}, names)
	assert.False(t, algs[3].Implemented)

	// Callers get a copy.
	algs[0].Name = "changed"
	assert.Equal(t, "naive", Algorithms()[0].Name)
}

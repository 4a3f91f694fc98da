package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSizes(t *testing.T) {
	assert.Len(t, NormalChords, 12)
	assert.Len(t, Variations, 50)
	assert.Len(t, SplitChords, 48)
	assert.Equal(t, "", Variations[0], "plain chord comes first")
}

func TestAll(t *testing.T) {
	keys := All()
	require.Len(t, keys, 12*50+48)

	assert.Equal(t, Key{Chord: "C"}, keys[0])
	assert.Equal(t, Key{Chord: "C", Variation: "maj7"}, keys[1])
	assert.Equal(t, Key{Chord: "C#/Db"}, keys[50])
	assert.Equal(t, Key{Chord: "B", Variation: "-5"}, keys[12*50-1])
	assert.Equal(t, Key{Chord: "C/E"}, keys[12*50])
	assert.Equal(t, Key{Chord: "Am/G#"}, keys[len(keys)-1])
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "C#/Dbmaj7", Key{Chord: "C#/Db", Variation: "maj7"}.Name())
	assert.Equal(t, "D/F#", Key{Chord: "D/F#"}.Name())
	assert.Equal(t, "A7(b5,#9)", Key{Chord: "A", Variation: "7(b5,#9)"}.String())
}

func TestFilter(t *testing.T) {
	keys := Filter(All(), []string{"E", "D/F#"})
	require.Len(t, keys, 51)
	for _, k := range keys[:50] {
		assert.Equal(t, "E", k.Chord)
	}
	assert.Equal(t, Key{Chord: "D/F#"}, keys[50])

	assert.Len(t, Filter(All(), nil), len(All()))
	assert.Empty(t, Filter(All(), []string{"H"}))
}

func TestFilterVariations(t *testing.T) {
	keys := FilterVariations(Filter(All(), []string{"A"}), []string{"m", "7"})
	assert.Equal(t, []Key{{Chord: "A", Variation: "m"}, {Chord: "A", Variation: "7"}}, keys)

	plain := FilterVariations(All(), []string{""})
	assert.Len(t, plain, 12+48)
}

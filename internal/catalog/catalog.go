// Package catalog holds the chord names and variations requested from the
// diagram site.
package catalog

// Key identifies one chord lookup. Variation is empty for plain and split chords.
type Key struct {
	Chord     string `json:"chord" yaml:"chord"`
	Variation string `json:"variation,omitempty" yaml:"variation,omitempty"`
}

// Name is the chord name as written in output, e.g. "C#/Dbmaj7".
func (k Key) Name() string {
	return k.Chord + k.Variation
}

func (k Key) String() string {
	return k.Name()
}

// NormalChords are the twelve roots combined with every variation.
var NormalChords = []string{
	"C",
	"C#/Db",
	"D",
	"D#/Eb",
	"E",
	"F",
	"F#/Gb",
	"G",
	"G#/Ab",
	"A",
	"A#/Bb",
	"B",
}

// Variations are chord qualities appended to a root. The first entry is the
// plain major chord.
var Variations = []string{
	"",
	"maj7",
	"maj9",
	"maj11",
	"maj13",
	"maj9#11",
	"maj13#11",
	"6",
	"add9",
	"6add9",
	"maj7b5",
	"maj7#5",
	"m",
	"m7",
	"m9",
	"m11",
	"m13",
	"m6",
	"madd9",
	"m6add9",
	"mmaj7",
	"mmaj9",
	"m7b5",
	"m7#5",
	"7",
	"9",
	"11",
	"13",
	"7sus4",
	"7b5",
	"7#5",
	"7b9",
	"7#9",
	"7(b5,b9)",
	"7(b5,#9)",
	"7(#5,b9)",
	"7(#5,#9)",
	"9b5",
	"9#5",
	"13#11",
	"13b9",
	"11b9",
	"aug",
	"dim",
	"dim7",
	"5",
	"sus4",
	"sus2",
	"sus2sus4",
	"-5",
}

// SplitChords are slash chords, requested without a variation.
var SplitChords = []string{
	"C/E",
	"C/F",
	"C/G",
	"D/F#",
	"D/A",
	"D/Bb",
	"D/B",
	"D/C",
	"E/B",
	"E/C#",
	"E/D",
	"E/D#",
	"E/F",
	"E/F#",
	"E/G",
	"E/G#",
	"Em/B",
	"Em/C#",
	"Em/D",
	"Em/D#",
	"Em/F",
	"Em/F#",
	"Em/G",
	"Em/G#",
	"F/C",
	"F/D",
	"F/D#",
	"F/E",
	"F/G",
	"F/A",
	"Fm/C",
	"G/B",
	"G/D",
	"G/E",
	"G/F",
	"G/F#",
	"A/C#",
	"A/E",
	"A/F",
	"A/F#",
	"A/G",
	"A/G#",
	"Am/C",
	"Am/E",
	"Am/F",
	"Am/F#",
	"Am/G",
	"Am/G#",
}

// All returns every lookup in request order: each root with each variation,
// then the split chords.
func All() []Key {
	keys := make([]Key, 0, len(NormalChords)*len(Variations)+len(SplitChords))
	for _, chord := range NormalChords {
		for _, variation := range Variations {
			keys = append(keys, Key{Chord: chord, Variation: variation})
		}
	}
	for _, chord := range SplitChords {
		keys = append(keys, Key{Chord: chord})
	}
	return keys
}

// Filter keeps the keys whose chord is listed. An empty list keeps everything.
func Filter(keys []Key, chords []string) []Key {
	if len(chords) == 0 {
		return keys
	}
	wanted := make(map[string]struct{}, len(chords))
	for _, c := range chords {
		wanted[c] = struct{}{}
	}
	var out []Key
	for _, k := range keys {
		if _, ok := wanted[k.Chord]; ok {
			out = append(out, k)
		}
	}
	return out
}

// FilterVariations keeps the keys whose variation is listed. An empty list keeps everything.
func FilterVariations(keys []Key, variations []string) []Key {
	if len(variations) == 0 {
		return keys
	}
	wanted := make(map[string]struct{}, len(variations))
	for _, v := range variations {
		wanted[v] = struct{}{}
	}
	var out []Key
	for _, k := range keys {
		if _, ok := wanted[k.Variation]; ok {
			out = append(out, k)
		}
	}
	return out
}

package diagram

import "regexp"

// MarkerKind is the closed set of things a fret slot can show.
type MarkerKind uint8

const (
	NoMarker MarkerKind = iota
	BarreMarker
	Occupied
)

func (k MarkerKind) String() string {
	switch k {
	case NoMarker:
		return "none"
	case BarreMarker:
		return "barre"
	case Occupied:
		return "occupied"
	default:
		return "unknown"
	}
}

// Filename stems with a meaning of their own. Every other valid stem is Occupied.
const (
	StemEmpty = "empty"
	StemBarre = "full2"
)

var stemPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Marker is one fret slot of one string.
type Marker struct {
	Kind MarkerKind
	Stem string
}

// ParseMarker classifies an image filename stem.
func ParseMarker(stem string) (Marker, error) {
	switch stem {
	case StemEmpty:
		return Marker{Kind: NoMarker, Stem: stem}, nil
	case StemBarre:
		return Marker{Kind: BarreMarker, Stem: stem}, nil
	}
	if !stemPattern.MatchString(stem) {
		return Marker{}, &MalformedDiagramError{Reason: "unexpected marker stem", Ref: stem}
	}
	return Marker{Kind: Occupied, Stem: stem}, nil
}

// Row holds the markers of one string, indexed by fret slot.
type Row []Marker

// Grid holds one Row per string in the order the diagram draws them.
type Grid []Row

// GridFromStems builds a Grid from raw filename stems.
func GridFromStems(rows [][]string) (Grid, error) {
	grid := make(Grid, 0, len(rows))
	for _, stems := range rows {
		row := make(Row, 0, len(stems))
		for _, stem := range stems {
			m, err := ParseMarker(stem)
			if err != nil {
				return nil, err
			}
			row = append(row, m)
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// Stems returns the raw stems of the grid, mostly useful for debugging output.
func (g Grid) Stems() [][]string {
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = make([]string, len(row))
		for j, m := range row {
			out[i][j] = m.Stem
		}
	}
	return out
}

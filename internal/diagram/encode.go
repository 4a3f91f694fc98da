package diagram

import (
	"strconv"
	"strings"
)

// Token is the encoded form of one string: a fret number or TokenMuted.
type Token string

// TokenMuted is emitted for a string whose last marker is the barre image.
const TokenMuted Token = "x"

// Separator joins tokens in a fingering code.
const Separator = ","

// EncodeRow reduces one string to its token. index is the row's position in
// the grid and is only used for error reporting.
func EncodeRow(row Row, index int) (Token, error) {
	for fn := len(row) - 1; fn >= 0; fn-- {
		switch row[fn].Kind {
		case NoMarker:
			continue
		case BarreMarker:
			return TokenMuted, nil
		default:
			return Token(strconv.Itoa(fn)), nil
		}
	}
	return "", &EmptyStringError{Row: index}
}

// Encode turns a grid into a fingering code. Tokens come out in reverse row
// order: the string drawn last is listed first.
func Encode(grid Grid) (string, error) {
	tokens := make([]string, len(grid))
	for i, row := range grid {
		tok, err := EncodeRow(row, i)
		if err != nil {
			return "", err
		}
		tokens[len(grid)-1-i] = string(tok)
	}
	return strings.Join(tokens, Separator), nil
}

// Decode extracts and encodes a diagram cell fragment in one step.
func Decode(fragment string) (string, error) {
	grid, err := ExtractGrid(fragment)
	if err != nil {
		return "", err
	}
	return Encode(grid)
}

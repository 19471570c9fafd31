package extractors

import "strings"

// Token is a positioned unit of text produced by a token source.
// Coordinates use a top-left origin: Top grows downward.
type Token struct {
	Text   string
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Center returns the horizontal center of the token
func (t Token) Center() float64 {
	return (t.Left + t.Right) / 2
}

// Line is a run of tokens sharing a vertical cluster, sorted left to right.
type Line struct {
	Tokens []Token
}

// Text joins the token texts with single spaces.
func (l Line) Text() string {
	return JoinText(l.Tokens)
}

// Folded returns the matching form of the line text.
func (l Line) Folded() string {
	return Fold(l.Text())
}

// Top returns the vertical position of the first token, or 0 for an empty line.
func (l Line) Top() float64 {
	if len(l.Tokens) == 0 {
		return 0
	}
	return l.Tokens[0].Top
}

// JoinText joins token texts with single spaces
func JoinText(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

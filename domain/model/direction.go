package model

import "strings"

// TextDirection is the writing direction of the page content.
type TextDirection string

const (
	DirectionLTR TextDirection = "ltr"
	DirectionRTL TextDirection = "rtl"
)

// ParseDirection normalises s; anything other than rtl is ltr.
func ParseDirection(s string) TextDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(DirectionRTL)) {
		return DirectionRTL
	}
	return DirectionLTR
}

// AlignEnd returns the trailing edge for the direction.
func (d TextDirection) AlignEnd() string {
	if d == DirectionRTL {
		return string(LocationLeft)
	}
	return string(LocationRight)
}

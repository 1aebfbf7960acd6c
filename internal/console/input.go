package console

import (
	"errors"
	"strconv"
	"strings"
)

// Input errors
var (
	ErrNotANumber       = errors.New("input is not a number")
	ErrChoiceOutOfRange = errors.New("choice out of range")
)

// ParseMenuChoice parses a menu selection. Range checking is left to the menu.
func ParseMenuChoice(line string) (int, error) {
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, ErrNotANumber
	}
	return choice, nil
}

// SelectCandidate resolves a 1-based position in names to the candidate name
func SelectCandidate(names []string, line string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return "", ErrNotANumber
	}
	if n < 1 || n > len(names) {
		return "", ErrChoiceOutOfRange
	}
	return names[n-1], nil
}

package spot

import (
	"errors"
	"fmt"
	"strings"
)

type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

var ErrUnknownSeason = errors.New("unknown season")

// Seasons in calendar order.
func Seasons() []Season {
	return []Season{Spring, Summer, Autumn, Winter}
}

func ParseSeason(s string) (Season, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spring":
		return Spring, nil
	case "summer":
		return Summer, nil
	case "autumn", "fall":
		return Autumn, nil
	case "winter":
		return Winter, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSeason, s)
}

func (s Season) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

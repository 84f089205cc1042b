package spot

import (
	"fmt"
	"net/url"
	"strconv"
)

type Coords struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

func (c Coords) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// Spot is a named fishing location. Name is the identity: two spots with the
// same name are the same spot.
type Spot struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Desc    string `json:"desc" yaml:"desc"`
	Fish    string `json:"fish" yaml:"fish"`
	Coords  Coords `json:"coords" yaml:"coords"`
	Img     string `json:"img,omitempty" yaml:"img"`
}

func Name(s Spot) string { return s.Name }

// MapURL builds a Google Maps link for c, optionally labelled.
func MapURL(c Coords, label string) string {
	q := c.String()
	if label != "" {
		q += "(" + label + ")"
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%s", url.QueryEscape(q))
}

// Package content holds the built-in forecast and tip articles.
package content

import (
	"fmt"

	"github.com/faideww/fishing-journal/internal/spot"
)

type Article struct {
	ID    string
	Title string
	Text  string
}

type Forecast struct {
	Article
	Season spot.Season
	// Best names the recommended spot in the catalog.
	Best string
}

// BestSpot resolves the recommended spot against cat.
func (f Forecast) BestSpot(cat *spot.Catalog) (spot.Spot, bool) {
	return cat.ByName(f.Best)
}

var forecasts = []Forecast{
	{
		Article: Article{
			ID:    "spring",
			Title: "Spring Fishing Forecast",
			Text: "Water is warming and fish are waking up. Trout and salmon feed hard in the cool, " +
				"fast water, so this is the season for fly fishing and live bait.",
		},
		Season: spot.Spring,
		Best:   "Loch Lomond, Scotland",
	},
	{
		Article: Article{
			ID:    "summer",
			Title: "Summer Fishing Forecast",
			Text: "Warm water slows the bite near the surface. Fish the deeper, cooler layers " +
				"for carp, pike, perch and catfish.",
		},
		Season: spot.Summer,
		Best:   "River Wye, Herefordshire",
	},
	{
		Article: Article{
			ID:    "autumn",
			Title: "Autumn Fishing Forecast",
			Text: "Stable temperatures and fish feeding up for winter. Expect good runs of salmon " +
				"and trout, and aggressive pike.",
		},
		Season: spot.Autumn,
		Best:   "River Avon, Warwickshire",
	},
	{
		Article: Article{
			ID:    "winter",
			Title: "Winter Fishing Forecast",
			Text: "Cold water makes fish sluggish, but pike and perch still bite. Dress warm, " +
				"fish slowly and be patient.",
		},
		Season: spot.Winter,
		Best:   "Derwent Reservoir, Tyne and Wear",
	},
}

var tips = []Article{
	{ID: "equipment", Title: "Choose the Right Equipment", Text: "Match rod, reel and line to the fish you are after."},
	{ID: "weather", Title: "Check the Weather", Text: "Overcast days with light wind bring fish closer to the surface."},
	{ID: "live_bait", Title: "Use Live Bait", Text: "Worms, minnows and insects usually out-fish lures. Pick bait the target species eats."},
	{ID: "seasons", Title: "Know the Fishing Seasons", Text: "Each species has its best months. Look them up before you go."},
	{ID: "water_temp", Title: "Understand Water Temperature", Text: "Fish go deep when it is warm and may cruise higher when it is cold."},
	{ID: "times", Title: "Fish Early or Late in the Day", Text: "Dawn and dusk mean cooler water and more feeding."},
	{ID: "distance", Title: "Keep Your Distance", Text: "Stay quiet and move slowly near the bank. Fish spook easily."},
	{ID: "observe", Title: "Observe the Water", Text: "Ripples and jumping fish mark active feeding zones."},
	{ID: "patience", Title: "Practice Patience", Text: "Long waits are part of it. Relax until the fish bite."},
	{ID: "regulations", Title: "Know the Local Regulations", Text: "Check seasons, bag limits and protected species before casting."},
}

func Forecasts() []Forecast { return append([]Forecast(nil), forecasts...) }

func ForecastFor(s spot.Season) (Forecast, error) {
	for _, f := range forecasts {
		if f.Season == s {
			return f, nil
		}
	}
	return Forecast{}, fmt.Errorf("%w: %q", spot.ErrUnknownSeason, s)
}

func Tips() []Article { return append([]Article(nil), tips...) }

func TipByID(id string) (Article, bool) {
	for _, t := range tips {
		if t.ID == id {
			return t, true
		}
	}
	return Article{}, false
}

package content

import (
	"fmt"

	"github.com/faideww/fishing-journal/internal/diary"
	"github.com/faideww/fishing-journal/internal/spot"
)

// ShareSpot is the message sent when a spot is shared.
func ShareSpot(sp spot.Spot) string {
	return fmt.Sprintf("%s\n%s\n%s", sp.Name, sp.Address, sp.Desc)
}

func ShareEntry(e diary.Entry) string {
	return fmt.Sprintf("%s\n%s\n\n%s", e.Title, e.Date, e.Desc)
}

func ShareArticle(a Article) string {
	return fmt.Sprintf("%s\n\n%s", a.Title, a.Text)
}

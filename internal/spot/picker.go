package spot

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"sync"
	"time"
)

// Picker suggests another spot from the same season.
type Picker struct {
	cat *Catalog

	mu  sync.Mutex
	rng *mrand.Rand
}

func NewPicker(cat *Catalog, rng *mrand.Rand) *Picker {
	if rng == nil {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			rng = mrand.New(mrand.NewSource(time.Now().UnixNano()))
		} else {
			rng = mrand.New(mrand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
		}
	}
	return &Picker{cat: cat, rng: rng}
}

// Other returns a random spot of season whose name differs from current.
// When the season has no alternative, current is returned unchanged.
func (p *Picker) Other(season Season, current Spot) Spot {
	list := p.cat.BySeason(season)

	candidates := make([]Spot, 0, len(list))
	for _, sp := range list {
		if sp.Name != current.Name {
			candidates = append(candidates, sp)
		}
	}
	if len(candidates) == 0 {
		return current
	}

	p.mu.Lock()
	i := p.rng.Intn(len(candidates))
	p.mu.Unlock()
	return candidates[i]
}

package service

import (
	"errors"
	"fmt"
	"sort"
)

// OutcomeBand - диапазон баллов [Lower, Upper] с результатом теста.
// Upper не учитывается, если Unbounded; так можно пометить только последний диапазон.
type OutcomeBand struct {
	Lower       int
	Upper       int
	Unbounded   bool
	Label       string
	Description string
	AudioFile   string
}

func (b OutcomeBand) Contains(score int) bool {
	return score >= b.Lower && (b.Unbounded || score <= b.Upper)
}

// Outcome - итог классификации. Matched == false для результата по умолчанию.
type Outcome struct {
	Label       string
	Description string
	AudioFile   string
	Matched     bool
}

type OutcomeClassifier struct {
	bands    []OutcomeBand
	fallback Outcome
}

func NewOutcomeClassifier(bands []OutcomeBand, fallback Outcome) (*OutcomeClassifier, error) {
	if len(bands) == 0 {
		return nil, errors.New("no outcome bands configured")
	}

	sorted := make([]OutcomeBand, len(bands))
	copy(sorted, bands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Lower < sorted[j].Lower
	})

	for i, band := range sorted {
		if band.Label == "" {
			return nil, fmt.Errorf("band %d: empty label", i)
		}
		if !band.Unbounded && band.Upper < band.Lower {
			return nil, fmt.Errorf("band %q: upper %d below lower %d", band.Label, band.Upper, band.Lower)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if prev.Unbounded {
			return nil, fmt.Errorf("band %q: only the last band may be unbounded", prev.Label)
		}
		if band.Lower <= prev.Upper {
			return nil, fmt.Errorf("bands %q and %q overlap", prev.Label, band.Label)
		}
		if band.Lower != prev.Upper+1 {
			return nil, fmt.Errorf("gap between bands %q and %q", prev.Label, band.Label)
		}
	}

	fallback.Matched = false
	return &OutcomeClassifier{bands: sorted, fallback: fallback}, nil
}

// Classify возвращает первый диапазон, содержащий score, или результат по умолчанию.
func (c *OutcomeClassifier) Classify(score int) Outcome {
	for _, band := range c.bands {
		if band.Contains(score) {
			return Outcome{
				Label:       band.Label,
				Description: band.Description,
				AudioFile:   band.AudioFile,
				Matched:     true,
			}
		}
	}
	return c.fallback
}

// Covers проверяет, что каждый достижимый результат из [lowest, highest] попадает в диапазон.
func (c *OutcomeClassifier) Covers(lowest, highest int) error {
	first := c.bands[0]
	last := c.bands[len(c.bands)-1]
	if lowest < first.Lower {
		return fmt.Errorf("scores %d..%d are not covered by any band", lowest, first.Lower-1)
	}
	if !last.Unbounded && highest > last.Upper {
		return fmt.Errorf("scores %d..%d are not covered by any band", last.Upper+1, highest)
	}
	return nil
}

func (c *OutcomeClassifier) Bands() []OutcomeBand {
	out := make([]OutcomeBand, len(c.bands))
	copy(out, c.bands)
	return out
}

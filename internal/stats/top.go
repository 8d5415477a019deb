package stats

import (
	"sort"

	"github.com/verte-zerg/readpace/internal/model"
)

// PassageBest is the best and latest result for one passage.
type PassageBest struct {
	PassageID     string
	Attempts      int
	BestWPM       int
	Comprehension float64
}

// BestByPassage groups tests by passage, keeping the best WPM and the
// average comprehension, ordered by best WPM descending.
func BestByPassage(tests []model.TestResult) []PassageBest {
	if len(tests) == 0 {
		return nil
	}
	index := map[string]int{}
	var out []PassageBest
	for _, t := range tests {
		i, ok := index[t.PassageID]
		if !ok {
			i = len(out)
			index[t.PassageID] = i
			out = append(out, PassageBest{PassageID: t.PassageID})
		}
		pb := &out[i]
		pb.Attempts++
		if t.WPM > pb.BestWPM {
			pb.BestWPM = t.WPM
		}
		pb.Comprehension += Comprehension(t.Correct, t.Total)
	}
	for i := range out {
		out[i].Comprehension /= float64(out[i].Attempts)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BestWPM == out[j].BestWPM {
			return out[i].PassageID < out[j].PassageID
		}
		return out[i].BestWPM > out[j].BestWPM
	})
	return out
}

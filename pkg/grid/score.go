package grid

import (
	"cmp"
	"math"

	"github.com/matzehuels/oncogrid/pkg/model"
)

// ComputeDonorScores sets each donor's score from its presence pattern over
// the current gene order.
func ComputeDonorScores(donors []*model.Donor, genes []*model.Gene, idx *model.Index) {
	n := len(genes)
	for _, d := range donors {
		score := 0.0
		for j, g := range genes {
			if idx.Has(d.ID, g.ID) {
				score += math.Ldexp(1, n+1-j)
			}
		}
		d.Score = score
	}
}

// ComputeGeneScoresAndCounts sets each gene's score and count to its number
// of observations across donors.
func ComputeGeneScoresAndCounts(genes []*model.Gene, donors []*model.Donor, idx *model.Index) {
	for _, g := range genes {
		total := 0
		for _, d := range donors {
			total += idx.CountAt(d.ID, g.ID)
		}
		g.Score = float64(total)
		g.Count = total
	}
}

// ComputeDonorCounts sets each donor's count to its number of observations.
func ComputeDonorCounts(donors []*model.Donor, idx *model.Index) {
	for _, d := range donors {
		d.Count = idx.DonorTotal(d.ID)
	}
}

// CompareScore orders by descending score, then ascending id.
func CompareScore[T Entity](a, b T) int {
	if c := cmp.Compare(b.Rank(), a.Rank()); c != 0 {
		return c
	}
	return cmp.Compare(a.Key(), b.Key())
}

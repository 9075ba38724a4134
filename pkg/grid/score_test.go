package grid

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/oncogrid/pkg/model"
)

func TestComputeScores(t *testing.T) {
	p := demoParams()
	idx := model.BuildIndex(p.Observations)
	genes := []*model.Gene{{ID: braf}, {ID: tp53}, {ID: ttn}, {ID: csmd3}}

	ComputeDonorScores(p.Donors, genes, idx)
	want := map[string]float64{"DO1": 48, "DO2": 16, "DO3": 32, "DO4": 36, "DO5": 40, "DO6": 32, "DO7": 0}
	for _, d := range p.Donors {
		if d.Score != want[d.ID] {
			t.Errorf("score(%s) = %v, want %v", d.ID, d.Score, want[d.ID])
		}
	}

	ComputeGeneScoresAndCounts(genes, p.Donors, idx)
	wantGenes := map[string]int{braf: 6, tp53: 2, ttn: 1, csmd3: 1}
	for _, g := range genes {
		if g.Count != wantGenes[g.ID] || g.Score != float64(wantGenes[g.ID]) {
			t.Errorf("gene %s score, count = %v, %d, want %d", g.ID, g.Score, g.Count, wantGenes[g.ID])
		}
	}
}

func TestDonorCountsMatchIndex(t *testing.T) {
	p := demoParams()
	idx := model.BuildIndex(p.Observations)
	ComputeDonorCounts(p.Donors, idx)

	for _, d := range p.Donors {
		sum := 0
		for _, g := range p.Genes {
			sum += idx.CountAt(d.ID, g.ID)
		}
		if sum != d.Count {
			t.Errorf("donor %s: sum of CountAt = %d, Count = %d", d.ID, sum, d.Count)
		}
	}
}

func TestSortByScoreTieBreak(t *testing.T) {
	d := NewDomain([]*model.Donor{
		{ID: "DO9", Score: 8},
		{ID: "DO3", Score: 8},
		{ID: "DO5", Score: 16},
		{ID: "DO1", Score: 8},
	})
	d.SortByScore()

	if got := d.IDs(); !slices.Equal(got, []string{"DO5", "DO1", "DO3", "DO9"}) {
		t.Errorf("SortByScore() = %v, want [DO5 DO1 DO3 DO9]", got)
	}
}

func TestDonorScoreOverflow(t *testing.T) {
	genes := make([]*model.Gene, 1100)
	for i := range genes {
		genes[i] = &model.Gene{ID: fmt.Sprintf("G%04d", i)}
	}
	donors := []*model.Donor{{ID: "DO2"}, {ID: "DO1"}}
	idx := model.BuildIndex([]model.Observation{
		{ID: "MU1", DonorID: "DO1", GeneID: "G0000"},
		{ID: "MU2", DonorID: "DO2", GeneID: "G0000"},
		{ID: "MU3", DonorID: "DO2", GeneID: "G0001"},
	})
	ComputeDonorScores(donors, genes, idx)

	for _, d := range donors {
		if !math.IsInf(d.Score, 1) {
			t.Errorf("score(%s) = %v, want +Inf", d.ID, d.Score)
		}
	}
	dom := NewDomain(donors)
	dom.SortByScore()
	if got := dom.IDs(); !slices.Equal(got, []string{"DO1", "DO2"}) {
		t.Errorf("SortByScore() with overflowed scores = %v, want id order", got)
	}
}

package cell

import (
	"testing"

	"github.com/matzehuels/oncogrid/pkg/model"
)

func TestResolveStacked(t *testing.T) {
	obs := []model.Observation{
		{ID: "MU1", DonorID: "DO1", GeneID: "G1", Consequence: "missense_variant"},
		{ID: "MU2", DonorID: "DO1", GeneID: "G1", Consequence: "stop_gained"},
	}
	r := Resolver{Colors: DefaultColorMap(), Index: model.BuildIndex(obs)}

	tests := []struct {
		obs  model.Observation
		want Geometry
	}{
		{obs[0], Geometry{Y: 20, Height: 5, Fill: "#ff9b6c", Opacity: 1}},
		{obs[1], Geometry{Y: 25, Height: 5, Fill: "#af57db", Opacity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.obs.ID, func(t *testing.T) {
			if got := r.Resolve(tt.obs, 20, 10); got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveHeatmap(t *testing.T) {
	o := model.Observation{ID: "MU1", DonorID: "DO1", GeneID: "G1", Consequence: "missense_variant"}
	r := Resolver{HeatMap: true, Colors: DefaultColorMap(), Index: model.BuildIndex([]model.Observation{o, {ID: "MU2", DonorID: "DO1", GeneID: "G1"}})}

	want := Geometry{Y: 30, Height: 10, Fill: HeatmapFill, Opacity: HeatmapOpacity}
	if got := r.Resolve(o, 30, 10); got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

func TestResolveUnindexed(t *testing.T) {
	r := Resolver{Colors: DefaultColorMap(), Index: model.BuildIndex(nil)}
	got := r.Resolve(model.Observation{ID: "X", DonorID: "D", GeneID: "G", Consequence: "synonymous"}, 0, 8)
	want := Geometry{Y: 0, Height: 8, Fill: "", Opacity: 1}
	if got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

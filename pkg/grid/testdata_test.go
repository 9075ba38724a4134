package grid

import (
	"github.com/matzehuels/oncogrid/pkg/model"
	"github.com/matzehuels/oncogrid/pkg/track"
)

const (
	tp53  = "ENSG00000141510"
	braf  = "ENSG00000157764"
	ttn   = "ENSG00000155657"
	csmd3 = "ENSG00000164796"
)

func demoParams() Params {
	donor := func(id string, age int, alive bool) *model.Donor {
		return &model.Donor{ID: id, Fields: model.Fields{"age_diagnosis": age, "alive": alive, "foobar": true}}
	}
	return Params{
		Donors: []*model.Donor{
			donor("DO1", 49, true),
			donor("DO2", 62, false),
			donor("DO3", 1, true),
			donor("DO4", 59, true),
			donor("DO5", 12, true),
			donor("DO6", 32, true),
			donor("DO7", 80, true),
		},
		Genes: []*model.Gene{
			{ID: tp53, Symbol: "TP53", Fields: model.Fields{"totalDonors": 40}},
			{ID: braf, Symbol: "BRAF", Fields: model.Fields{"totalDonors": 21}},
			{ID: ttn, Symbol: "TTN", Fields: model.Fields{"totalDonors": 12}},
			{ID: csmd3, Symbol: "CSMD3", Fields: model.Fields{"totalDonors": -777}},
		},
		Observations: []model.Observation{
			{ID: "MU1", DonorID: "DO1", GeneID: braf, Consequence: "missense_variant"},
			{ID: "MU11", DonorID: "DO1", GeneID: braf, Consequence: "frameshift_variant"},
			{ID: "MU2", DonorID: "DO1", GeneID: tp53, Consequence: "stop_gained"},
			{ID: "MU3", DonorID: "DO2", GeneID: tp53, Consequence: "start_lost"},
			{ID: "MU4", DonorID: "DO3", GeneID: braf, Consequence: "stop_lost"},
			{ID: "MU5", DonorID: "DO4", GeneID: braf, Consequence: "initiator_codon_variant"},
			{ID: "MU6", DonorID: "DO4", GeneID: csmd3, Consequence: "stop_lost"},
			{ID: "MU7", DonorID: "DO5", GeneID: ttn, Consequence: "start_lost"},
			{ID: "MU8", DonorID: "DO5", GeneID: braf, Consequence: "stop_gained"},
			{ID: "MU9", DonorID: "DO6", GeneID: braf, Consequence: "frameshift_variant"},
		},
		DonorTracks: []track.Track{
			{Name: "Age at Diagnosis", FieldName: "age_diagnosis", Group: "Clinical", Type: track.TypeInt, Sort: track.SortInt},
			{Name: "Alive", FieldName: "alive", Group: "Clinical", Type: track.TypeBool, Sort: track.SortBool},
			{Name: "Foobar", FieldName: "foobar", Group: "Data", Type: track.TypeBool, Sort: track.SortBool},
		},
		GeneTracks: []track.Track{
			{Name: "Total Donors Affected", FieldName: "totalDonors", Group: "cbca", Type: track.TypeInt},
		},
	}
}

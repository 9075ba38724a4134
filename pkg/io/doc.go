// Package io reads and writes oncogrid datasets as JSON.
//
// # Format
//
// A dataset is a JSON object with three arrays:
//
//	{
//	  "donors": [
//	    {"id": "DO1", "age": 42, "clinical": {"vitalStatus": true}}
//	  ],
//	  "genes": [
//	    {"id": "ENSG00000141510", "symbol": "TP53", "totalDonors": 1200}
//	  ],
//	  "observations": [
//	    {"id": "MU1", "donorId": "DO1", "geneId": "ENSG00000141510",
//	     "consequence": "missense_variant"}
//	  ]
//	}
//
// Donors and genes need an "id"; genes may carry a "symbol". Every other
// key becomes an entry of the entity's [model.Fields]. Nested objects are
// flattened into dotted keys, so the donor above gets the fields "age" and
// "clinical.vitalStatus". Integral numbers decode as int64 and the rest as
// float64. The keys "score" and "count" are computed by the grid and are
// ignored on input.
//
// Observations without an "id" get a random UUID. Observations may refer to
// donors or genes that are not listed; they never produce cells.
//
// # Import
//
// [ReadJSON] decodes from any io.Reader; [ImportJSON] opens a file and
// reports the load through the observability pipeline hooks:
//
//	ds, err := io.ImportJSON(ctx, "cohort.json")
//	if err != nil {
//	    return err
//	}
//	g := grid.New(grid.Params{Donors: ds.Donors, Genes: ds.Genes, Observations: ds.Observations})
//
// Malformed documents fail with [errors.ErrCodeInvalidInput]; a missing file
// fails with [errors.ErrCodeFileNotFound].
//
// # Export
//
// [WriteJSON] and [ExportJSON] write a dataset back in the same format, with
// fields expanded to nested objects again, so exported files re-import to
// the same dataset. The grid's current state can be saved this way after
// filtering with [Snapshot].
//
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/oncogrid/pkg/errors.ErrCodeInvalidInput
// [errors.ErrCodeFileNotFound]: github.com/matzehuels/oncogrid/pkg/errors.ErrCodeFileNotFound
package io

// Package model holds the entities an oncogrid is built from and the
// observation index used for constant-time cell lookups.
//
// # Entities
//
// A grid is a matrix of [Donor] columns and [Gene] rows. Each [Observation]
// links one donor to one gene with a consequence classification such as
// "missense_variant". Donors and genes carry derived Score and Count values
// plus arbitrary [Fields] used by annotation tracks.
//
// Entities are plain structs. The grid engine owns its own copies, produced
// with the Clone methods, so callers never alias the engine's state.
//
// # Index
//
// [BuildIndex] groups observation ids by donor and gene:
//
//	idx := model.BuildIndex(observations)
//	idx.Has("DO1", "ENSG00000157764")      // true
//	idx.CountAt("DO1", "ENSG00000157764")  // 2
//	idx.StackIndexOf("MU11", "DO1", "ENSG00000157764") // 1
//
// The insertion order of ids inside a cell is the stacking order used when
// cells are subdivided among their observations. An [Index] is immutable once
// built; it is rebuilt wholesale when the grid reloads.
//
// # Missing data
//
// Lookups never fail. Absent pairs report zero counts and a stack index of -1,
// so dangling donor or gene references degrade to "no data".
//
// # Concurrency
//
// An [Index] is safe for concurrent reads. Entities are not synchronized.
package model

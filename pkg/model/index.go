package model

// Index maps donor id → gene id → observation ids in insertion order.
type Index struct {
	cells map[string]map[string][]string
}

// BuildIndex indexes observations. Intermediate maps are created lazily, so
// donors without observations have no entry at all.
func BuildIndex(obs []Observation) *Index {
	idx := &Index{cells: make(map[string]map[string][]string)}
	for _, o := range obs {
		genes, ok := idx.cells[o.DonorID]
		if !ok {
			genes = make(map[string][]string)
			idx.cells[o.DonorID] = genes
		}
		genes[o.GeneID] = append(genes[o.GeneID], o.ID)
	}
	return idx
}

// Has reports whether the donor has at least one observation on the gene.
func (x *Index) Has(donorID, geneID string) bool {
	return x.CountAt(donorID, geneID) > 0
}

// CountAt returns the number of observations at (donor, gene), or 0.
func (x *Index) CountAt(donorID, geneID string) int {
	if x == nil {
		return 0
	}
	return len(x.cells[donorID][geneID])
}

// StackIndexOf returns the position of obsID within the cell's stacking
// order, or -1 when the observation is not indexed there.
func (x *Index) StackIndexOf(obsID, donorID, geneID string) int {
	if x == nil {
		return -1
	}
	for i, id := range x.cells[donorID][geneID] {
		if id == obsID {
			return i
		}
	}
	return -1
}

// IDs returns a copy of the observation ids at (donor, gene).
func (x *Index) IDs(donorID, geneID string) []string {
	if x == nil {
		return nil
	}
	ids := x.cells[donorID][geneID]
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}

// DonorTotal returns the number of observations across all genes for a donor.
func (x *Index) DonorTotal(donorID string) int {
	if x == nil {
		return 0
	}
	total := 0
	for _, ids := range x.cells[donorID] {
		total += len(ids)
	}
	return total
}

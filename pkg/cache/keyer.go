package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered output of a dataset.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists everything that changes a rendered artifact apart
// from the dataset itself.
type ArtifactKeyOpts struct {
	Format       string    `json:"format"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	ConfigHash   string    `json:"config_hash,omitempty"`
	HeatMap      bool      `json:"heatmap,omitempty"`
	GridLines    bool      `json:"grid,omitempty"`
	Cluster      bool      `json:"cluster,omitempty"`
	RemoveDonors string    `json:"remove_donors,omitempty"`
	RemoveGenes  string    `json:"remove_genes,omitempty"`
	SortDonors   string    `json:"sort_donors,omitempty"`
	SortGenes    string    `json:"sort_genes,omitempty"`
	Select       []float64 `json:"select,omitempty"`

	SortDonorsTrack string `json:"sort_donors_track,omitempty"`
	SortGenesTrack  string `json:"sort_genes_track,omitempty"`

	Tooltips bool    `json:"tooltips,omitempty"`
	Title    string  `json:"title,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes the key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, datasetHash, opts)
}

package config

import (
	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/grid"
	"github.com/matzehuels/oncogrid/pkg/track"
)

// Style defaults.
const (
	DefaultIntMax          = 100
	DefaultNotVerifiedFill = "#cccccc"
)

// TrackConfig describes one annotation track.
type TrackConfig struct {
	Name      string `toml:"name" yaml:"name"`
	Field     string `toml:"field" yaml:"field"`
	Type      string `toml:"type" yaml:"type"`
	Group     string `toml:"group" yaml:"group"`
	Collapsed bool   `toml:"collapsed" yaml:"collapsed"`
	Template  string `toml:"template" yaml:"template"`
	// Sort is "int", "bool" or empty to sort by the track type.
	Sort string `toml:"sort" yaml:"sort"`
}

func (t *TrackConfig) setDefaults() {
	if t.Name == "" {
		t.Name = t.Field
	}
	if t.Type == "" {
		t.Type = string(track.TypeInt)
	}
	if t.Group == "" {
		t.Group = track.DefaultGroup
	}
}

func (t TrackConfig) validate() error {
	if t.Field == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "track %q has no field", t.Name)
	}
	if err := errors.ValidateFieldName(t.Field); err != nil {
		return err
	}
	if !validType(t.Type) {
		return errors.New(errors.ErrCodeInvalidConfig, "track %q: unknown type %q (want int or bool)", t.Name, t.Type)
	}
	if t.Sort != "" && !validType(t.Sort) {
		return errors.New(errors.ErrCodeInvalidConfig, "track %q: unknown sort %q (want int or bool)", t.Name, t.Sort)
	}
	return nil
}

func validType(s string) bool {
	return s == string(track.TypeInt) || s == string(track.TypeBool)
}

// Track converts the config entry to a track definition.
func (t TrackConfig) Track() track.Track {
	out := track.Track{
		Name:      t.Name,
		FieldName: t.Field,
		Type:      track.Type(t.Type),
		Group:     t.Group,
		Collapsed: t.Collapsed,
		Template:  t.Template,
	}
	switch track.Type(t.Sort) {
	case track.TypeInt:
		out.Sort = track.SortInt
	case track.TypeBool:
		out.Sort = track.SortBool
	}
	return out
}

// StyleConfig colours the cells of one axis' tracks.
type StyleConfig struct {
	// DefaultFill colours cells whose field and group have no entry in
	// Fills.
	DefaultFill string `toml:"default_fill" yaml:"default_fill"`
	// Fills maps a field name or a group name to a colour. Field names win.
	Fills map[string]string `toml:"fills" yaml:"fills"`
	// NotVerifiedFill colours cells holding the null sentinel.
	NotVerifiedFill string `toml:"not_verified_fill" yaml:"not_verified_fill"`
	// IntMax is the int value drawn at full opacity.
	IntMax float64 `toml:"int_max" yaml:"int_max"`
}

func (s *StyleConfig) setDefaults() {
	if s.DefaultFill == "" {
		s.DefaultFill = grid.DefaultTrackFill
	}
	if s.NotVerifiedFill == "" {
		s.NotVerifiedFill = DefaultNotVerifiedFill
	}
	if s.IntMax == 0 {
		s.IntMax = DefaultIntMax
	}
}

func (s StyleConfig) validate(section string) error {
	if s.IntMax < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s.int_max must be positive, got %v", section, s.IntMax)
	}
	for _, c := range []string{s.DefaultFill, s.NotVerifiedFill} {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", section)
		}
	}
	for k, c := range s.Fills {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s.fills.%s", section, k)
		}
	}
	return nil
}

// FillFunc returns the fill of a track cell. groups maps field names to
// their track group so group entries of Fills apply.
func (s StyleConfig) FillFunc(groups map[string]string) grid.FillFunc {
	return func(d track.Datum) string {
		if !d.NotNullSentinel {
			return s.NotVerifiedFill
		}
		if c, ok := s.Fills[d.FieldName]; ok {
			return c
		}
		if c, ok := s.Fills[groups[d.FieldName]]; ok {
			return c
		}
		return s.DefaultFill
	}
}

// OpacityFunc returns the opacity of a track cell: bools are fully drawn
// when true and hidden when false, ints scale linearly up to IntMax.
// Missing values are hidden and sentinel cells are fully drawn.
func (s StyleConfig) OpacityFunc() grid.OpacityFunc {
	return func(d track.Datum) float64 {
		if !d.NotNullSentinel {
			return 1
		}
		if d.Value == nil {
			return 0
		}
		switch d.Type {
		case track.TypeBool:
			if b, ok := d.Value.(bool); ok && b {
				return 1
			}
			return 0
		case track.TypeInt:
			n, ok := track.Number(d.Value)
			if !ok || s.IntMax <= 0 {
				return 0
			}
			return min(max(n/s.IntMax, 0), 1)
		}
		return 1
	}
}

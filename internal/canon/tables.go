package canon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables holds the reference data used for canonicalization. A Tables value
// is built once and then only read.
type Tables struct {
	SpeciesLabels map[string]string  `yaml:"species_labels"`
	GenomeSizeKb  map[string]float64 `yaml:"genome_size_kb"`
	ToolLabels    map[string]string  `yaml:"tool_labels"`
	ModelLabels   map[string]string  `yaml:"model_labels"`
	TrainAliases  map[string]string  `yaml:"train_species_aliases"`
}

// DefaultTables returns a fresh copy of the built-in reference tables
func DefaultTables() *Tables {
	return &Tables{
		SpeciesLabels: map[string]string{
			"arabidopsis_thaliana": "A. thaliana",
			"oryza_sativa":         "O. sativa",
			"gossypium_raimondii":  "G. raimondii",
			"manihot_esculenta":    "M. esculenta",
		},
		GenomeSizeKb: map[string]float64{
			"arabidopsis_thaliana": 30210,
			"oryza_sativa":         42962,
			"gossypium_raimondii":  55469,
			"manihot_esculenta":    42691,
		},
		ToolLabels: map[string]string{
			"genemarkes":  "GeneMark-ES",
			"genemarkep":  "GeneMark-EP+",
			"genemarketp": "GeneMark-ETP",
			"gemoma":      "GeMoMa",
			"augustus":    "AUGUSTUS",
			"snap":        "SNAP",
		},
		ModelLabels: map[string]string{
			"a_thaliana_model":      "A. thaliana model",
			"a_thaliana_model_PCA":  "A. thaliana model (PCA)",
			"o_sativa_model":        "O. sativa model",
			"o_sativa_model_PCA":    "O. sativa model (PCA)",
			"genemark_model":        "GeneMark model",
			"genemark_model_PCA":    "GeneMark model (PCA)",
			"m_esculenta_model_PCA": "M. esculenta model (PCA)",
		},
		TrainAliases: map[string]string{
			"arabidopsis_thaliana": "A. thaliana",
			"a_thaliana":           "A. thaliana",
			"arabidopsis":          "A. thaliana",
			"oryza_sativa":         "O. sativa",
			"o_sativa":             "O. sativa",
			"rice":                 "O. sativa",
		},
	}
}

// LoadTables reads a YAML file whose entries override or extend the
// built-in tables. Sections left out of the file keep their defaults.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	var overrides Tables
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse tables file: %w", err)
	}

	t := DefaultTables()
	t.Merge(&overrides)
	return t, nil
}

// Merge copies every entry of o into t
func (t *Tables) Merge(o *Tables) {
	mergeInto(t.SpeciesLabels, o.SpeciesLabels)
	mergeInto(t.GenomeSizeKb, o.GenomeSizeKb)
	mergeInto(t.ToolLabels, o.ToolLabels)
	mergeInto(t.ModelLabels, o.ModelLabels)
	mergeInto(t.TrainAliases, o.TrainAliases)
}

func mergeInto[V any](dst, src map[string]V) {
	for k, v := range src {
		dst[k] = v
	}
}

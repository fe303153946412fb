package types

// Config represents the application configuration
type Config struct {
	// Input locations
	Input InputSettings `yaml:"input" mapstructure:"input"`

	// Metric normalization policy
	Normalize NormalizeSettings `yaml:"normalize" mapstructure:"normalize"`

	// GeAnno operating point and model selection
	GeAnno GeAnnoSettings `yaml:"geanno" mapstructure:"geanno"`

	// Output settings
	Output OutputSettings `yaml:"output" mapstructure:"output"`

	// GFF evaluation settings
	Eval EvalSettings `yaml:"eval" mapstructure:"eval"`
}

// InputSettings holds the result file locations
type InputSettings struct {
	BenchDir      string `yaml:"bench_dir" mapstructure:"bench_dir"`
	GeAnnoDir     string `yaml:"geanno_dir" mapstructure:"geanno_dir"`
	GeAnnoAUCFile string `yaml:"geanno_auc_file" mapstructure:"geanno_auc_file"`
	BenchAUCDir   string `yaml:"bench_auc_dir" mapstructure:"bench_auc_dir"`
	SkipInvalid   bool   `yaml:"skip_invalid" mapstructure:"skip_invalid"`
	TablesFile    string `yaml:"tables_file" mapstructure:"tables_file"` // canonicalizer overrides
}

// Null policies
const (
	NullPolicyPropagate = "propagate"
	NullPolicyZeroFill  = "zero_fill"
)

// NormalizeSettings holds the normalizer policy
type NormalizeSettings struct {
	NullPolicy      string `yaml:"null_policy" mapstructure:"null_policy"` // propagate, zero_fill
	DropEmptyCounts bool   `yaml:"drop_empty_counts" mapstructure:"drop_empty_counts"`
}

// GeAnnoSettings selects the GeAnno slice used by fixed-point analyses
type GeAnnoSettings struct {
	Window    float64 `yaml:"window" mapstructure:"window"`
	Step      float64 `yaml:"step" mapstructure:"step"`
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
	Model     string  `yaml:"model" mapstructure:"model"`
}

// OutputSettings holds output configuration
type OutputSettings struct {
	Dir      string   `yaml:"dir" mapstructure:"dir"`
	Formats  []string `yaml:"formats" mapstructure:"formats"` // csv, json, markdown, text
	Title    string   `yaml:"title" mapstructure:"title"`
	Decimals int      `yaml:"decimals" mapstructure:"decimals"`
	Verbose  bool     `yaml:"verbose" mapstructure:"verbose"`
	Color    bool     `yaml:"color" mapstructure:"color"`
}

// EvalSettings holds GFF evaluator configuration
type EvalSettings struct {
	Labels  []string `yaml:"labels" mapstructure:"labels"`
	Workers int      `yaml:"workers" mapstructure:"workers"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputSettings{
			BenchDir:    "data/results",
			GeAnnoDir:   "data/geanno",
			SkipInvalid: false,
		},
		Normalize: NormalizeSettings{
			NullPolicy:      NullPolicyPropagate,
			DropEmptyCounts: true,
		},
		GeAnno: GeAnnoSettings{
			Window:    1500,
			Step:      50,
			Threshold: 0.8,
			Model:     "m_esculenta_model_PCA",
		},
		Output: OutputSettings{
			Dir:      "tables",
			Formats:  []string{"csv"},
			Title:    "Gene annotation benchmark",
			Decimals: 2,
			Verbose:  false,
			Color:    true,
		},
		Eval: EvalSettings{
			Labels:  []string{"gene", "mRNA", "CDS", "exon", "CDS_nucleotide", "gene_nucleotide"},
			Workers: 4,
		},
	}
}

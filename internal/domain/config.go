package domain

import (
	"gopkg.in/yaml.v3"
)

type Config struct {
	// CatalogPath points to a catalog YAML file. Empty means the built-in catalog.
	CatalogPath string `yaml:"catalog_path"`
	Shield      string `yaml:"shield"`
	// Levels and HeadshotRatios span the scenarios of a ranked run: every
	// level is combined with every ratio, in the order given.
	Levels         []int     `yaml:"levels"`
	HeadshotRatios []float64 `yaml:"headshot_ratios"`
	// Weapons limits a ranked run to a specific set of weapon ids.
	// When empty, every catalog weapon passing MinimumRarity is ranked.
	Weapons       []string `yaml:"weapons"`
	MinimumRarity string   `yaml:"minimum_rarity"`
	SortBy        string   `yaml:"sort_by"`
	Descending    bool     `yaml:"descending"`
	Parallelism   int      `yaml:"parallelism"`
	// BaseTablePath optionally points to an existing XLSX table (usually produced by ttk_roster)
	// whose rows should be merged into the result table.
	BaseTablePath string `yaml:"base_table_path"`
	// OutputTablePath optionally sets the output XLSX path.
	OutputTablePath string `yaml:"output_table_path"`
	LogLevel        string `yaml:"log_level"`
}

func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "config",
		"catalog_path",
		"shield",
		"levels",
		"headshot_ratios",
		"weapons",
		"minimum_rarity",
		"sort_by",
		"descending",
		"parallelism",
		"base_table_path",
		"output_table_path",
		"log_level",
	); err != nil {
		return err
	}

	// Decoding into the receiver keeps defaults for absent keys.
	type raw Config
	tmp := raw(*c)
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*c = Config(tmp)
	return nil
}

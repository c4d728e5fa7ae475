package config

import (
	"github.com/spf13/viper"
)

// Settings groups every tunable the liquidation engine reads from viper.
type Settings struct {
	Classification Classification
	Bands          Bands
	Subvaluation   Subvaluation
	Batch          Batch
	Report         Report
	Tariff         Tariff
}

type Classification struct {
	MinScore        float64
	AmbiguityGap    float64
	SuggestionFloor float64
	MaxCandidates   int
}

// Bands carries the customs band thresholds. DeMinimis is inclusive for band B,
// HighValue is inclusive for band D.
type Bands struct {
	DeMinimis  float64
	HighValue  float64
	CustomsFee float64
}

type Subvaluation struct {
	WarningPercent float64
	BlockPercent   float64
}

type Batch struct {
	ChunkSize int
	Workers   int
}

type Report struct {
	Dir      string
	Template string
}

// Tariff points to optional YAML files replacing the built-in reference tables.
type Tariff struct {
	File      string
	Reference string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("classification.min-score", 85.0)
	v.SetDefault("classification.ambiguity-gap", 10.0)
	v.SetDefault("classification.suggestion-floor", 0.5)
	v.SetDefault("classification.max-candidates", 5)

	v.SetDefault("bands.de-minimis", 100.0)
	v.SetDefault("bands.high-value", 2000.0)
	v.SetDefault("bands.customs-fee", 2.0)

	v.SetDefault("subvaluation.warning-percent", 30.0)
	v.SetDefault("subvaluation.block-percent", 70.0)

	v.SetDefault("batch.chunk-size", 100)
	v.SetDefault("batch.workers", 4)

	v.SetDefault("report.dir", "./reports")
	v.SetDefault("report.template", "")

	v.SetDefault("tariff.file", "")
	v.SetDefault("tariff.reference", "")

	v.SetDefault("port", "1324")
	v.SetDefault("log.level", "info")
	v.SetDefault("mysql.driver", "mysql")
}

// Load reads the settings from v, applying defaults for missing keys.
func Load(v *viper.Viper) Settings {
	SetDefaults(v)

	return Settings{
		Classification: Classification{
			MinScore:        v.GetFloat64("classification.min-score"),
			AmbiguityGap:    v.GetFloat64("classification.ambiguity-gap"),
			SuggestionFloor: v.GetFloat64("classification.suggestion-floor"),
			MaxCandidates:   v.GetInt("classification.max-candidates"),
		},
		Bands: Bands{
			DeMinimis:  v.GetFloat64("bands.de-minimis"),
			HighValue:  v.GetFloat64("bands.high-value"),
			CustomsFee: v.GetFloat64("bands.customs-fee"),
		},
		Subvaluation: Subvaluation{
			WarningPercent: v.GetFloat64("subvaluation.warning-percent"),
			BlockPercent:   v.GetFloat64("subvaluation.block-percent"),
		},
		Batch: Batch{
			ChunkSize: v.GetInt("batch.chunk-size"),
			Workers:   v.GetInt("batch.workers"),
		},
		Report: Report{
			Dir:      v.GetString("report.dir"),
			Template: v.GetString("report.template"),
		},
		Tariff: Tariff{
			File:      v.GetString("tariff.file"),
			Reference: v.GetString("tariff.reference"),
		},
	}
}

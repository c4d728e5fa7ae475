/*
Copyright © 2022 Joker
*/
package cmd

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"sysafari.com/customs/mguard/classify"
	"sysafari.com/customs/mguard/config"
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/regulatory"
	"sysafari.com/customs/mguard/report"
	"sysafari.com/customs/mguard/review"
	"sysafari.com/customs/mguard/subvaluation"
	"sysafari.com/customs/mguard/tariff"
	"sysafari.com/customs/mguard/tax"
)

// components are the shared, read-only pieces every command works with.
type components struct {
	settings  config.Settings
	tariffs   *tariff.Store
	processor *liquidation.Processor
	detector  *subvaluation.Detector
	workflow  *review.Workflow
	writer    *report.Writer
}

func newComponents() (*components, error) {
	s := config.Load(viper.GetViper())

	tariffs := tariff.Default()
	if s.Tariff.File != "" {
		var err error
		if tariffs, err = tariff.LoadFile(s.Tariff.File); err != nil {
			return nil, err
		}
	}
	refs := subvaluation.DefaultReferences
	if s.Tariff.Reference != "" {
		var err error
		if refs, err = subvaluation.LoadReferenceFile(s.Tariff.Reference); err != nil {
			return nil, err
		}
	}

	engine, err := regulatory.NewDefaultEngine()
	if err != nil {
		return nil, fmt.Errorf("compile regulatory rules: %w", err)
	}
	matcher := classify.NewMatcher(tariffs, classify.Policy{
		MinScore:        s.Classification.MinScore,
		AmbiguityGap:    s.Classification.AmbiguityGap,
		SuggestionFloor: s.Classification.SuggestionFloor,
		MaxCandidates:   s.Classification.MaxCandidates,
	})
	bands := tax.NewBandPolicy(s.Bands.DeMinimis, s.Bands.HighValue, s.Bands.CustomsFee)
	detector := subvaluation.NewDetector(refs, s.Subvaluation.WarningPercent, s.Subvaluation.BlockPercent)

	log.Infof("Loaded %d tariff entries, %d reference products, %d regulatory rules",
		tariffs.Len(), len(refs), engine.RulesCount())

	return &components{
		settings: s,
		tariffs:  tariffs,
		processor: liquidation.NewProcessor(matcher, engine, bands,
			liquidation.WithChunkSize(s.Batch.ChunkSize),
			liquidation.WithWorkers(s.Batch.Workers),
			liquidation.WithDetector(detector)),
		detector: detector,
		workflow: review.NewWorkflow(tariffs, engine, s.Bands.CustomsFee),
		writer:   &report.Writer{Dir: s.Report.Dir, Template: s.Report.Template},
	}, nil
}

// openDatabase connects to mysql.url. An empty url disables persistence.
func openDatabase() (*sqlx.DB, error) {
	url := viper.GetString("mysql.url")
	if url == "" {
		return nil, nil
	}
	log.Info("init sql connection ....")
	db, err := sqlx.Open(viper.GetString("mysql.driver"), url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	return db, nil
}

/*
Copyright © 2022 Joker
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"sysafari.com/customs/mguard/manifest"
	"sysafari.com/customs/mguard/store"
)

var (
	processManifestNumber string
	processSave           bool
)

var processCmd = &cobra.Command{
	Use:   "process [manifest.xlsx]",
	Short: "Process a manifest workbook and write its consolidated report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, err := newComponents()
		if err != nil {
			return err
		}

		var saver manifest.BatchSaver
		if processSave {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			if db == nil {
				return errors.New("--save needs mysql.url")
			}
			defer db.Close()
			s := store.New(db)
			if err = s.Migrate(ctx); err != nil {
				return err
			}
			saver = s
		}

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Liquidating packages..."),
		)
		svc := manifest.NewService(c.processor, c.detector, saver, c.writer, nil).
			WithProgress(func(done, total int) {
				bar.ChangeMax(total)
				_ = bar.Set(done)
			})
		res := svc.Process(ctx, manifest.Request{ManifestNumber: processManifestNumber, File: args[0]})
		_ = bar.Finish()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err = enc.Encode(res); err != nil {
			return err
		}
		if res.Status != manifest.StatusSuccess {
			return errors.New(res.Error)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().StringVarP(&processManifestNumber, "manifest", "m", "", "manifest number shown in the report")
	processCmd.Flags().BoolVar(&processSave, "save", false, "persist the batch in mysql")
	rootCmd.AddCommand(processCmd)
}

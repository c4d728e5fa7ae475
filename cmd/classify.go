/*
Copyright © 2022 Joker
*/
package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCIF float64

var classifyCmd = &cobra.Command{
	Use:   "classify [description]",
	Short: "Classify one product description and print the result as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newComponents()
		if err != nil {
			return err
		}
		res := c.processor.ClassifyProduct(strings.Join(args, " "), classifyCIF)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	classifyCmd.Flags().Float64Var(&classifyCIF, "cif", 0, "CIF value in USD, enables the tax calculation")
	rootCmd.AddCommand(classifyCmd)
}

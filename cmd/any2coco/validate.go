package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/any2coco-cli/internal/apperr"
	bomio "github.com/idlab-discover/any2coco-cli/internal/io"
	"github.com/idlab-discover/any2coco-cli/internal/ui"
	"github.com/idlab-discover/any2coco-cli/internal/validator"
)

var (
	validateInput    string
	validateImages   string
	validateStrict   bool
	validateLogLevel string
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a COCO annotations.json",
	Long: "Checks id sequences, references, bounding boxes, areas and polygons of an annotations.json. " +
		"--input may name the file or the dataset directory that contains it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := resolveLogLevel("validate")
		if err != nil {
			return err
		}
		wireLoggers(cmd.ErrOrStderr(), level)

		path := strings.TrimSpace(viper.GetString("validate.input"))
		if path == "" {
			return apperr.User("--input is required")
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, bomio.AnnotationsFile)
		}

		ds, err := bomio.ReadDataset(path)
		if err != nil {
			return err
		}

		result := validator.Validate(ds, validator.ValidationOptions{
			ImageRoot:  strings.TrimSpace(viper.GetString("validate.images")),
			StrictMode: viper.GetBool("validate.strict"),
		})

		if level == "debug" {
			validator.PrintReport(result)
		}
		ui.NewValidationUI(cmd.OutOrStdout(), level == "quiet").PrintReport(ui.ValidationReport{
			Path:        path,
			Valid:       result.Valid,
			Errors:      result.Errors,
			Warnings:    result.Warnings,
			Images:      result.Images,
			Annotations: result.Annotations,
			Categories:  result.Categories,
		})

		if !result.Valid {
			return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Path to annotations.json or its dataset directory (required)")
	validateCmd.Flags().StringVar(&validateImages, "images", "", "Directory in which every file_name must exist")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail on warnings")
	validateCmd.Flags().StringVar(&validateLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("validate.input", validateCmd.Flags().Lookup("input"))
	viper.BindPFlag("validate.images", validateCmd.Flags().Lookup("images"))
	viper.BindPFlag("validate.strict", validateCmd.Flags().Lookup("strict"))
	viper.BindPFlag("validate.log-level", validateCmd.Flags().Lookup("log-level"))
}

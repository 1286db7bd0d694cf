package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/any2coco-cli/internal/apperr"
	"github.com/idlab-discover/any2coco-cli/internal/converter"
	"github.com/idlab-discover/any2coco-cli/internal/ui"
)

var (
	inspectInput    string
	inspectLenient  bool
	inspectLogLevel string
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the categories and skipped files of a source directory without decoding images",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := resolveLogLevel("inspect")
		if err != nil {
			return err
		}
		wireLoggers(cmd.ErrOrStderr(), level)

		src := strings.TrimSpace(viper.GetString("inspect.input"))
		if src == "" {
			return apperr.User("--input is required")
		}
		if info, err := os.Stat(src); err != nil || !info.IsDir() {
			return apperr.Userf("source %q is not a directory", src)
		}

		in, err := converter.Inspect(cmd.Context(), converter.Options{
			Source:  src,
			Lenient: viper.GetBool("inspect.lenient"),
		})
		if err != nil {
			return err
		}

		counts := in.LabelCounts()
		rows := make([]ui.CategoryRow, 0, in.Index.Len())
		for id, label := range in.Index.Labels() {
			rows = append(rows, ui.CategoryRow{ID: id, Name: label, Annotations: counts[id]})
		}

		out := ui.NewConvertUI(cmd.OutOrStdout(), level == "quiet")
		out.LogStep("info", fmt.Sprintf("%d image(s), %d annotated, %d sidecar(s) in %s",
			len(in.Listing.Images), len(in.Annotations), len(in.Listing.Annotations), src))
		out.PrintCategories(rows)
		d := in.Diagnostics
		out.PrintDiagnostics(ui.ConvertSummary{
			UnrecognizedFiles: d.UnrecognizedFiles,
			UnmatchedSidecars: d.UnmatchedSidecars,
			EmptySidecars:     d.EmptySidecars,
			MalformedSidecars: d.MalformedSidecars,
			DiscardedShapes:   d.DiscardedShapes,
		})
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "", "Source directory with images and JSON sidecars (required)")
	inspectCmd.Flags().BoolVar(&inspectLenient, "lenient", false, "Skip malformed sidecars instead of failing")
	inspectCmd.Flags().StringVar(&inspectLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("inspect.input", inspectCmd.Flags().Lookup("input"))
	viper.BindPFlag("inspect.lenient", inspectCmd.Flags().Lookup("lenient"))
	viper.BindPFlag("inspect.log-level", inspectCmd.Flags().Lookup("log-level"))
}

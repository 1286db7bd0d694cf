package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/any2coco-cli/internal/apperr"
	"github.com/idlab-discover/any2coco-cli/internal/converter"
	"github.com/idlab-discover/any2coco-cli/internal/datasetinfo"
	bomio "github.com/idlab-discover/any2coco-cli/internal/io"
	"github.com/idlab-discover/any2coco-cli/internal/ui"
)

var (
	convertInput       string
	convertOutput      string
	convertInfoFile    string
	convertDescription string
	convertVersion     string
	convertContributor string
	convertURL         string

	convertLenient         bool
	convertCheckDimensions bool
	convertWorkers         int
	convertIndent          bool

	convertBOM       bool
	convertBOMFormat string
	convertSpec      string

	convertDryRun   bool
	convertYes      bool
	convertLogLevel string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an annotated image directory into a COCO dataset",
	Long: "Reads every image and <stem>.json polygon sidecar in --input, copies the images to --output and writes " +
		"--output/annotations.json. Non-polygon shapes, sidecars without an image and images without a sidecar are " +
		"reported but do not stop the run.",
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("convert")
	if err != nil {
		return err
	}
	quiet := level == "quiet"
	wireLoggers(cmd.ErrOrStderr(), level)

	src := strings.TrimSpace(viper.GetString("convert.input"))
	dst := strings.TrimSpace(viper.GetString("convert.output"))
	dryRun := viper.GetBool("convert.dry-run")
	if src == "" {
		return apperr.User("--input is required")
	}
	if dst == "" && !dryRun {
		return apperr.User("--output is required (or use --dry-run)")
	}
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return apperr.Userf("source %q is not a directory", src)
	}

	meta, err := resolveMetadata()
	if err != nil {
		return err
	}

	opts := converter.Options{
		Source:          src,
		Destination:     dst,
		Info:            meta.Info,
		Licenses:        meta.Licenses,
		Lenient:         viper.GetBool("convert.lenient"),
		CheckDimensions: viper.GetBool("convert.check-dimensions"),
		Workers:         viper.GetInt("convert.workers"),
		Indent:          viper.GetBool("convert.indent"),
		BOM:             viper.GetBool("convert.bom"),
		BOMFormat:       viper.GetString("convert.bom-format"),
		SpecVersion:     viper.GetString("convert.spec"),
		DatasetName:     filepath.Base(filepath.Clean(dst)),
		DatasetVersion:  viper.GetString("convert.dataset-version"),
		Description:     viper.GetString("convert.description"),
	}
	if opts.BOM {
		if _, err := bomio.BOMFormat(opts.BOMFormat, ""); err != nil {
			return apperr.User(err.Error())
		}
		if opts.SpecVersion != "" {
			if _, ok := bomio.ParseSpecVersion(opts.SpecVersion); !ok {
				return apperr.Userf("unsupported --spec %q (expected 1.5 or 1.6)", opts.SpecVersion)
			}
		}
	}

	if !dryRun {
		if err := confirmOverwrite(dst, viper.GetBool("convert.yes")); err != nil {
			return err
		}
	}

	convUI := ui.NewConvertUI(cmd.OutOrStdout(), quiet)
	progress, stop := convertProgress(cmd, quiet, dryRun, opts.BOM)
	opts.OnProgress = progress
	convUI.LogStep("info", fmt.Sprintf("Converting %s", src))

	start := time.Now()
	var res *converter.Result
	if dryRun {
		res, err = converter.Plan(cmd.Context(), opts)
	} else {
		res, err = converter.Convert(cmd.Context(), opts)
	}
	stop()
	if err != nil {
		if errors.Is(err, converter.ErrSameDirectory) {
			return apperr.User(err.Error())
		}
		return err
	}

	convUI.PrintSummary(summaryFromResult(res, dryRun, time.Since(start)))
	return nil
}

func resolveMetadata() (datasetinfo.Metadata, error) {
	if path := strings.TrimSpace(viper.GetString("convert.info")); path != "" {
		meta, err := datasetinfo.Load(path)
		if err != nil {
			return datasetinfo.Metadata{}, apperr.Userf("failed to load --info %s: %v", path, err)
		}
		return meta, nil
	}
	return datasetinfo.Default(
		viper.GetString("convert.description"),
		viper.GetString("convert.dataset-version"),
		viper.GetString("convert.contributor"),
		viper.GetString("convert.url"),
		time.Now(),
	), nil
}

// confirmOverwrite asks before replacing an existing annotations.json.
// Without a terminal the run is refused unless --yes is given.
func confirmOverwrite(dst string, yes bool) error {
	existing := filepath.Join(dst, bomio.AnnotationsFile)
	if _, err := os.Stat(existing); err != nil || yes {
		return nil
	}
	if !isInteractive() {
		return apperr.Userf("%s already exists; use --yes to overwrite", existing)
	}

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite existing dataset?").
				Description(fmt.Sprintf("%s already exists. Images with the same name will be replaced.", existing)).
				Value(&confirm).
				Affirmative("Yes").
				Negative("No"),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return apperr.ErrCancelled
		}
		return err
	}
	if !confirm {
		return apperr.ErrCancelled
	}
	return nil
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// convertProgress maps converter events onto a spinner workflow. The returned
// stop function finalizes the display.
func convertProgress(cmd *cobra.Command, quiet, dryRun, withBOM bool) (converter.ProgressCallback, func()) {
	if quiet {
		return nil, func() {}
	}

	wf := ui.NewWorkflow(cmd.OutOrStdout(), "")
	scanIdx := wf.AddTask("Scanning source")
	extractIdx := wf.AddTask("Extracting annotations")
	measureIdx := wf.AddTask("Measuring images")
	copyIdx, writeIdx, bomIdx := -1, -1, -1
	if !dryRun {
		copyIdx = wf.AddTask("Copying images")
		writeIdx = wf.AddTask("Writing annotations.json")
		if withBOM {
			bomIdx = wf.AddTask("Writing dataset BOM")
		}
	}
	wf.Start()

	current := scanIdx
	begin := func(idx int, msg string) {
		current = idx
		wf.StartTask(idx, msg)
	}

	onProgress := func(evt converter.ProgressEvent) {
		switch evt.Type {
		case converter.EventClassifyStart:
			begin(scanIdx, ui.Dim.Render(evt.File))
		case converter.EventClassifyComplete:
			wf.CompleteTask(scanIdx, fmt.Sprintf("%d file(s)", evt.Total))
		case converter.EventExtractStart:
			begin(extractIdx, ui.Dim.Render(fmt.Sprintf("%d sidecar(s)", evt.Total)))
		case converter.EventExtractComplete:
			wf.CompleteTask(extractIdx, fmt.Sprintf("%d annotated image(s)", evt.Total))
		case converter.EventAssembleStart:
			begin(measureIdx, ui.Dim.Render(fmt.Sprintf("0/%d", evt.Total)))
		case converter.EventImageMeasured:
			wf.UpdateMessage(measureIdx, ui.Dim.Render(fmt.Sprintf("%d/%d: %s", evt.Index, evt.Total, evt.File)))
		case converter.EventAssembleComplete:
			wf.CompleteTask(measureIdx, fmt.Sprintf("%d annotation(s)", evt.Total))
		case converter.EventCopyStart:
			begin(copyIdx, ui.Dim.Render(fmt.Sprintf("0/%d", evt.Total)))
		case converter.EventImageCopied:
			wf.UpdateMessage(copyIdx, ui.Dim.Render(fmt.Sprintf("%d/%d: %s", evt.Index, evt.Total, evt.File)))
		case converter.EventCopyComplete:
			wf.CompleteTask(copyIdx, fmt.Sprintf("%d image(s)", evt.Total))
		case converter.EventWriteStart:
			begin(writeIdx, "")
		case converter.EventWriteComplete:
			wf.CompleteTask(writeIdx, evt.File)
		case converter.EventBOMStart:
			begin(bomIdx, "")
		case converter.EventBOMComplete:
			wf.CompleteTask(bomIdx, evt.File)
		case converter.EventError:
			wf.FailTask(current, evt.Message)
		}
	}

	return onProgress, wf.Stop
}

func summaryFromResult(res *converter.Result, dryRun bool, elapsed time.Duration) ui.ConvertSummary {
	d := res.Diagnostics
	return ui.ConvertSummary{
		Images:              len(res.Dataset.Images),
		Annotations:         len(res.Dataset.Annotations),
		Categories:          len(res.Dataset.Categories),
		OutputPath:          res.OutputPath,
		BOMPath:             res.BOMPath,
		DryRun:              dryRun,
		Duration:            elapsed,
		UnrecognizedFiles:   d.UnrecognizedFiles,
		UnmatchedSidecars:   d.UnmatchedSidecars,
		EmptySidecars:       d.EmptySidecars,
		MalformedSidecars:   d.MalformedSidecars,
		InvalidPolygons:     d.InvalidPolygons,
		DimensionMismatches: d.DimensionMismatches,
		DiscardedShapes:     d.DiscardedShapes,
	}
}

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "Source directory with images and JSON sidecars (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Destination directory for the COCO dataset")
	convertCmd.Flags().StringVar(&convertInfoFile, "info", "", "YAML or JSON file with 'info' and 'licenses' blocks")
	convertCmd.Flags().StringVar(&convertDescription, "description", "", "Dataset description (used when --info is not given)")
	convertCmd.Flags().StringVar(&convertVersion, "dataset-version", "1.0", "Dataset version (used when --info is not given)")
	convertCmd.Flags().StringVar(&convertContributor, "contributor", "", "Dataset contributor (used when --info is not given)")
	convertCmd.Flags().StringVar(&convertURL, "url", "", "Dataset URL (used when --info is not given)")
	convertCmd.Flags().BoolVar(&convertLenient, "lenient", false, "Skip malformed sidecars instead of failing")
	convertCmd.Flags().BoolVar(&convertCheckDimensions, "check-dimensions", false, "Warn when a sidecar's imageHeight/imageWidth differ from the image")
	convertCmd.Flags().IntVar(&convertWorkers, "workers", 0, "Parallel sidecar reads and image decodes (0 = number of CPUs)")
	convertCmd.Flags().BoolVar(&convertIndent, "indent", false, "Pretty-print annotations.json")
	convertCmd.Flags().BoolVar(&convertBOM, "bom", false, "Also write a CycloneDX description of the dataset (dataset.cdx.json)")
	convertCmd.Flags().StringVar(&convertBOMFormat, "bom-format", "json", "Dataset BOM format: json|xml")
	convertCmd.Flags().StringVar(&convertSpec, "spec", "", "CycloneDX spec version for the dataset BOM (1.5 or 1.6)")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "Build the dataset in memory and print the summary without writing")
	convertCmd.Flags().BoolVarP(&convertYes, "yes", "y", false, "Overwrite an existing annotations.json without asking")
	convertCmd.Flags().StringVar(&convertLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	// Bind all flags to viper for config file support
	viper.BindPFlag("convert.input", convertCmd.Flags().Lookup("input"))
	viper.BindPFlag("convert.output", convertCmd.Flags().Lookup("output"))
	viper.BindPFlag("convert.info", convertCmd.Flags().Lookup("info"))
	viper.BindPFlag("convert.description", convertCmd.Flags().Lookup("description"))
	viper.BindPFlag("convert.dataset-version", convertCmd.Flags().Lookup("dataset-version"))
	viper.BindPFlag("convert.contributor", convertCmd.Flags().Lookup("contributor"))
	viper.BindPFlag("convert.url", convertCmd.Flags().Lookup("url"))
	viper.BindPFlag("convert.lenient", convertCmd.Flags().Lookup("lenient"))
	viper.BindPFlag("convert.check-dimensions", convertCmd.Flags().Lookup("check-dimensions"))
	viper.BindPFlag("convert.workers", convertCmd.Flags().Lookup("workers"))
	viper.BindPFlag("convert.indent", convertCmd.Flags().Lookup("indent"))
	viper.BindPFlag("convert.bom", convertCmd.Flags().Lookup("bom"))
	viper.BindPFlag("convert.bom-format", convertCmd.Flags().Lookup("bom-format"))
	viper.BindPFlag("convert.spec", convertCmd.Flags().Lookup("spec"))
	viper.BindPFlag("convert.dry-run", convertCmd.Flags().Lookup("dry-run"))
	viper.BindPFlag("convert.yes", convertCmd.Flags().Lookup("yes"))
	viper.BindPFlag("convert.log-level", convertCmd.Flags().Lookup("log-level"))
}

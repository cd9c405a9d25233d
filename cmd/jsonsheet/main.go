// Package main provides the CLI entry point for jsonsheet-go.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet"
	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/config"
)

const version = "0.7.0"

var (
	outPath    string
	sheetName  string
	configPath string

	arrayMode  bool
	ndjsonMode bool

	pkCSV     string
	pkFirst   bool
	noPKFirst bool

	includeCSV       string
	includeRegexCSV  string
	includeSubstrCSV string

	orderCSV       string
	orderRegexCSV  string
	orderSubstrCSV string
	orderRest      string

	linkCSV string
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var verr *jsonsheet.ValidationError
		if errors.As(err, &verr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsonsheet",
		Short: "Merge flattened JSON records into an xlsx sheet",
		Long: `jsonsheet reads flattened JSON records from stdin (array, single object,
or NDJSON) and merges them into a sheet of an xlsx workbook. Rows are
matched by composite primary key; the existing workbook is updated in
place and cell styling is preserved.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "Target workbook path (required, must end in .xlsx)")
	rootCmd.Flags().StringVarP(&sheetName, "sheet", "s", "Sheet1", "Target sheet name")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (TOML, YAML, or JSON)")
	rootCmd.Flags().BoolVar(&arrayMode, "array", false, "Parse input as a JSON array (default)")
	rootCmd.Flags().BoolVar(&ndjsonMode, "ndjson", false, "Parse input as newline-delimited JSON")
	rootCmd.Flags().StringVarP(&pkCSV, "pk", "k", "", "Primary-key columns, comma-separated")
	rootCmd.Flags().BoolVar(&pkFirst, "pk-first", false, "Place primary-key columns first (default)")
	rootCmd.Flags().BoolVar(&noPKFirst, "no-pk-first", false, "Do not force primary-key columns first")
	rootCmd.Flags().StringVarP(&includeCSV, "include", "i", "", "Only keep these columns (exact names, comma-separated)")
	rootCmd.Flags().StringVar(&includeRegexCSV, "include-regex", "", "Only keep columns matching these regexes")
	rootCmd.Flags().StringVar(&includeSubstrCSV, "include-substr", "", "Only keep columns containing these substrings")
	rootCmd.Flags().StringVar(&orderCSV, "order", "", "Place these columns first, in this order")
	rootCmd.Flags().StringVar(&orderRegexCSV, "order-regex", "", "Place columns matching these regexes next")
	rootCmd.Flags().StringVar(&orderSubstrCSV, "order-substr", "", "Place columns containing these substrings next")
	rootCmd.Flags().StringVar(&orderRest, "order-rest", "existing", "Remainder policy: existing, alpha, or none")
	rootCmd.Flags().StringVar(&linkCSV, "link", "", "Hyperlink columns as col=BASE[,col2=BASE2,...]")
	rootCmd.Flags().BoolP("version", "V", false, "Print version and exit")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	var file *config.File
	if configPath != "" {
		var err error
		file, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	opts := resolveOptions(cmd, file)
	if opts.OutPath == "" {
		return fmt.Errorf("--out is required (or set out in the config file)")
	}
	if err := jsonsheet.ValidateOutPath(opts.OutPath); err != nil {
		return err
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return jsonsheet.Sync(input, opts)
}

// resolveOptions overlays command-line flags onto the config file,
// field by field. Include lists from the CLI extend the file's lists;
// ordering lists replace them.
func resolveOptions(cmd *cobra.Command, file *config.File) jsonsheet.Options {
	opts := jsonsheet.DefaultOptions()
	if file == nil {
		file = &config.File{}
	}

	opts.OutPath = outPath
	if opts.OutPath == "" {
		opts.OutPath = file.Out
	}

	if cmd.Flags().Changed("sheet") {
		opts.Sheet = sheetName
	} else if file.Sheet != "" {
		opts.Sheet = file.Sheet
	}

	// Input mode precedence: --array > --ndjson > config.
	switch {
	case arrayMode:
		opts.NDJSON = false
	case ndjsonMode:
		opts.NDJSON = true
	default:
		opts.NDJSON = file.NDJSON
	}

	if cmd.Flags().Changed("pk") {
		opts.PK = splitCSV(pkCSV)
	} else {
		opts.PK = file.PK
	}

	switch {
	case noPKFirst:
		opts.PKFirst = false
	case pkFirst:
		opts.PKFirst = true
	case file.PKFirst != nil:
		opts.PKFirst = *file.PKFirst
	}

	opts.Include = append(opts.Include, file.Include...)
	opts.Include = append(opts.Include, splitCSV(includeCSV)...)
	opts.IncludeRegex = append(opts.IncludeRegex, file.IncludeRegex...)
	opts.IncludeRegex = append(opts.IncludeRegex, splitCSV(includeRegexCSV)...)
	opts.IncludeSubstr = append(opts.IncludeSubstr, file.IncludeSubstr...)
	opts.IncludeSubstr = append(opts.IncludeSubstr, splitCSV(includeSubstrCSV)...)

	if cmd.Flags().Changed("order") {
		opts.Order = splitCSV(orderCSV)
	} else {
		opts.Order = file.Order
	}
	if cmd.Flags().Changed("order-regex") {
		opts.OrderRegex = splitCSV(orderRegexCSV)
	} else {
		opts.OrderRegex = file.OrderRegex
	}
	if cmd.Flags().Changed("order-substr") {
		opts.OrderSubstr = splitCSV(orderSubstrCSV)
	} else {
		opts.OrderSubstr = file.OrderSubstr
	}
	if cmd.Flags().Changed("order-rest") {
		opts.OrderRest = orderRest
	} else if file.OrderRest != "" {
		opts.OrderRest = file.OrderRest
	}

	opts.Links = make(map[string]string, len(file.Link))
	for col, base := range file.Link {
		opts.Links[col] = base
	}
	for col, base := range parseLinks(linkCSV) {
		opts.Links[col] = base
	}

	return opts
}

// parseLinks parses col=BASE[,col2=BASE2,...]; malformed entries are
// skipped with a warning.
func parseLinks(s string) map[string]string {
	links := make(map[string]string)
	for _, part := range splitCSV(s) {
		col, base, ok := strings.Cut(part, "=")
		if !ok {
			log.Warn().Str("mapping", part).Msg("ignoring malformed --link mapping (expected col=BASE)")
			continue
		}
		links[strings.TrimSpace(col)] = strings.TrimSpace(base)
	}
	return links
}

// splitCSV splits a comma-separated flag value, trimming whitespace and
// dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pyhub-apps/tablestitch"
	"github.com/pyhub-apps/tablestitch/internal/logger"
	"github.com/pyhub-apps/tablestitch/pkg/config"
	"github.com/pyhub-apps/tablestitch/pkg/sink"
)

type sheetNames []string

func (s *sheetNames) String() string { return strings.Join(*s, ",") }

func (s *sheetNames) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var sheets sheetNames
	var (
		profileName = flag.String("profile", config.Default().Name, "Built-in or user profile name ("+strings.Join(config.BuiltinNames(), ", ")+")")
		configPath  = flag.String("config", "", "Path to a profile YAML file (overrides -profile)")
		outPath     = flag.String("out", "result.xlsx", "Output workbook, CSV directory or text file (- for stdout)")
		format      = flag.String("format", sink.FormatXLSX, "Output format: xlsx, csv or text")
		strict      = flag.Bool("strict", false, "Report every skipped page, header and row")
		keepLabels  = flag.Bool("keep-labels", false, "Do not apply the profile's column renames")
	)
	flag.Var(&sheets, "sheet", "Sheet name for the matching input (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] input.pdf [input.pdf...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logger.GetLogger("extract_tables")
	defer logger.Sync()

	inputs := flag.Args()
	if len(inputs) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	profile, err := config.Resolve(*profileName, *configPath)
	if err != nil {
		log.Fatal("failed to load profile", zap.Error(err))
	}

	results, err := tablestitch.ParseFiles(context.Background(), inputs,
		tablestitch.WithProfile(profile),
		tablestitch.WithStrict(*strict),
	)
	if err != nil {
		log.Fatal("failed to parse input", zap.Error(err))
	}

	w, err := sink.New(*format, *outPath)
	if err != nil {
		log.Fatal("failed to create output", zap.Error(err))
	}

	for i, res := range results {
		name := sheetName(sheets, i, inputs[i])
		for _, d := range res.Diagnostics {
			fmt.Fprintf(os.Stderr, "%s: %s\n", inputs[i], d)
		}

		t := res.Table
		if !*keepLabels {
			t = t.Rename(profile.Rename)
		}
		if err := w.WriteTable(name, t); err != nil {
			log.Fatal("failed to write table", zap.String("sheet", name), zap.Error(err))
		}
		log.Info("table written",
			zap.String("input", inputs[i]),
			zap.String("sheet", name),
			zap.Int("rows", t.Len()),
			zap.Int("pages_skipped", res.PagesSkipped))
	}

	if err := w.Close(); err != nil {
		log.Fatal("failed to finish output", zap.Error(err))
	}
}

// sheetName uses the i-th -sheet value, else the input's base name
func sheetName(sheets []string, i int, input string) string {
	if i < len(sheets) && sheets[i] != "" {
		return sheets[i]
	}
	return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
}

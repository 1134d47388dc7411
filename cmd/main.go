// Command rrcpermits turns the Texas RRC's DAF420 drilling-permit master
// export into CSV tables, imagery AOIs, an Oracle load, and a terminal
// browser for looking up and diffing permits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"rrcpermits/internal/aoi"
	"rrcpermits/internal/config"
	"rrcpermits/internal/csvout"
	"rrcpermits/internal/daf420"
	"rrcpermits/internal/database"
	"rrcpermits/internal/logging"
)

// Shared session state. cur always holds the processed export; prev and db
// stay nil unless their flags ask for them.
var (
	cur    *permitIndex
	prev   *permitIndex
	db     *database.Database
	logger zerolog.Logger
)

func main() {
	inPath := flag.String("in", "", "DAF420 export to process (.dat or .gz)")
	prevPath := flag.String("prev", "", "previous export to diff against")
	outDir := flag.String("out", "", "directory for the CSV tables")
	configPath := flag.String("config", "", "TOML config file")
	aoiFlag := flag.Bool("aoi", false, "write the imagery AOI table and shapefile")
	boxFt := flag.Float64("box", config.Default().AOIBoxFt, "AOI box side length in feet")
	dbFlag := flag.Bool("db", false, "load the parse into Oracle")
	browse := flag.Bool("browse", false, "browse permits interactively after processing")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logger = logging.Init("rrcpermits", *verbose)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("bad config")
		}
	}
	// Flags the user actually set win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Input = *inPath
		case "prev":
			cfg.Previous = *prevPath
		case "out":
			cfg.OutputDir = *outDir
		case "aoi":
			cfg.AOI = *aoiFlag
		case "box":
			cfg.AOIBoxFt = *boxFt
		case "db":
			cfg.Database = *dbFlag
		}
	})
	if cfg.Input == "" {
		fmt.Fprintln(os.Stderr, "an input export is required: -in <file> or input in the config file")
		flag.Usage()
		os.Exit(2)
	}
	if cfg.AOIBoxFt <= 0 {
		logger.Fatal().Float64("box_ft", cfg.AOIBoxFt).Msg("AOI box size must be positive")
	}

	start := time.Now()
	res, checksum, err := parseExport(cfg.Input)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Input).Msg("cannot read export")
	}
	cur = buildIndex(res)

	printSummary(res)
	logger.Info().
		Int("permits", len(res.Permits)).
		Int("fields", len(res.Fields)).
		Int("restrictions", len(res.Restrictions)).
		Str("sha256", checksum).
		Dur("elapsed", time.Since(start).Truncate(time.Millisecond)).
		Msg("export processed")

	if cfg.Previous != "" {
		prevRes, _, err := parseExport(cfg.Previous)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.Previous).Msg("cannot read previous export")
		}
		prev = buildIndex(prevRes)
		logger.Info().Int("permits", len(prevRes.Permits)).Str("path", cfg.Previous).Msg("previous export processed")
	}

	if err := writeTables(res, cfg.OutputDir); err != nil {
		logger.Fatal().Err(err).Msg("write csv tables")
	}

	if cfg.AOI {
		if err := writeAOI(res, cfg); err != nil {
			logger.Fatal().Err(err).Msg("write AOI outputs")
		}
	}

	if cfg.Database {
		d, err := database.New(database.LoadConfig())
		if err != nil {
			logger.Fatal().Err(err).Msg("connect to database")
		}
		defer d.Close()
		db = d
		if err := loadDatabase(res, cfg, checksum); err != nil {
			logger.Fatal().Err(err).Msg("database load")
		}
	}

	// A positional argument is a one-shot lookup, the way a quick status
	// check reads: rrcpermits -in file.dat 0871234
	if flag.NArg() > 0 {
		lookupAndRender(strings.Join(flag.Args(), " "), true)
		return
	}
	if *browse {
		browseLoop()
	}
}

// parseExport runs one full pass over an export file. Opening and reading the
// file are the only failures; everything inside it is tolerated.
func parseExport(path string) (*daf420.Result, string, error) {
	in, err := openExport(path)
	if err != nil {
		return nil, "", err
	}
	defer in.Close()

	asm := daf420.NewAssembler()
	for in.Scan() {
		asm.Line(in.Text())
	}
	if err := in.Err(); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return asm.Finish(), in.Checksum(), nil
}

// printSummary prints the line and record-type accounting for the pass.
func printSummary(res *daf420.Result) {
	fmt.Println("\n--- Processing Summary ---")
	fmt.Printf("Total lines processed: %d\n", res.LinesRead)
	fmt.Println("Record counts by type:")
	tags := make([]string, 0, len(res.TagCounts))
	for tag := range res.TagCounts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Printf("  Record Type '%s': %d occurrences\n", tag, res.TagCounts[tag])
	}
	fmt.Printf("Assembled %d permits, %d field segments, %d restrictions\n",
		len(res.Permits), len(res.Fields), len(res.Restrictions))
}

// writeTables emits the three CSV collections, skipping any empty one.
func writeTables(res *daf420.Result, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	if err := emitTable(filepath.Join(outDir, "permits.csv"), "permit", res.Permits); err != nil {
		return err
	}
	if err := emitTable(filepath.Join(outDir, "permit_fields.csv"), "field segment", res.Fields); err != nil {
		return err
	}
	return emitTable(filepath.Join(outDir, "permit_restrictions.csv"), "restriction", res.Restrictions)
}

// emitTable writes one collection, or says why it didn't.
func emitTable[R ~map[string]string](path, what string, rows []R) error {
	if len(rows) == 0 {
		fmt.Printf("No %s records found; skipped %s\n", what, path)
		return nil
	}
	if err := csvout.WriteTable(path, rows); err != nil {
		return err
	}
	fmt.Printf("Wrote %d %s records to %s\n", len(rows), what, path)
	return nil
}

// writeAOI builds the imagery rectangles and writes both output shapes.
func writeAOI(res *daf420.Result, cfg config.Config) error {
	rows, skipped := aoi.BuildRows(res.Permits, cfg.AOIBoxFt)
	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Msg("permits without usable surface coordinates left out of the AOI")
	}
	if len(rows) == 0 {
		fmt.Println("No permits with surface coordinates; skipped AOI outputs")
		return nil
	}

	csvPath := filepath.Join(cfg.OutputDir, "well_aoi_for_imagery.csv")
	if err := aoi.WriteCSV(csvPath, rows); err != nil {
		return err
	}
	fmt.Printf("Wrote %d AOI rows to %s\n", len(rows), csvPath)

	shpPath := filepath.Join(cfg.OutputDir, "well_aoi.shp")
	if err := aoi.WriteShapefile(shpPath, rows); err != nil {
		return err
	}
	fmt.Printf("Wrote AOI polygons to %s\n", shpPath)
	return nil
}

// loadDatabase pushes the parse into Oracle unless the identical file bytes
// are already in the ledger.
func loadDatabase(res *daf420.Result, cfg config.Config, checksum string) error {
	if err := db.EnsureSchema(); err != nil {
		return err
	}

	name := filepath.Base(cfg.Input)
	last, err := db.LatestLoadByFile(name)
	if err != nil {
		return err
	}
	if last != nil && last.SHA256 == checksum {
		logger.Info().Str("file", name).Str("load_id", last.LoadID).Msg("already loaded, skipping")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	sum, err := db.LoadRun(ctx, res, name, checksum)
	if err != nil {
		return err
	}
	logger.Info().
		Str("load_id", sum.LoadID).
		Int("permits", sum.Permits).
		Int("fields", sum.Fields).
		Int("restrictions", sum.Restrictions).
		Msg("loaded into Oracle")
	return nil
}

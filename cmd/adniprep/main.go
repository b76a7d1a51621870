// Command adniprep prepares an ADNIMERGE.csv export for analysis. It writes
// the prepared table and its column dictionary into a destination directory
// and can optionally archive the run in SQLite and render a report.
//
// The migrate subcommand manages the archive schema:
//
//	adniprep migrate -db runs.db status
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/adniprep/internal/config"
	"github.com/banshee-data/adniprep/internal/db"
	"github.com/banshee-data/adniprep/internal/fsutil"
	"github.com/banshee-data/adniprep/internal/monitoring"
	"github.com/banshee-data/adniprep/internal/prep"
	"github.com/banshee-data/adniprep/internal/report"
	"github.com/banshee-data/adniprep/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("adniprep: %v", err)
	}
}

type options struct {
	source     string
	dest       string
	configPath string
	dbPath     string
	reportDir  string
	quiet      bool
	version    bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	var o options
	fset := flag.NewFlagSet("adniprep", flag.ContinueOnError)
	fset.SetOutput(output)
	fset.StringVar(&o.source, "source", "ADNIMERGE.csv", "path to the ADNIMERGE export")
	fset.StringVar(&o.dest, "dest", ".", "directory receiving the prepared files")
	fset.StringVar(&o.configPath, "config", "", "path to a JSON preparation config (defaults when empty)")
	fset.StringVar(&o.dbPath, "db", "", "path to a sqlite archive of runs (disabled when empty)")
	fset.StringVar(&o.reportDir, "report", "", "directory for summary, missingness and censoring reports (disabled when empty)")
	fset.BoolVar(&o.quiet, "quiet", false, "suppress progress logging")
	fset.BoolVar(&o.version, "version", false, "print version and exit")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if fset.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fset.Args())
	}
	return &o, nil
}

func runMigrate(args []string, stdout io.Writer) error {
	fset := flag.NewFlagSet("adniprep migrate", flag.ContinueOnError)
	fset.SetOutput(stdout)
	dbPath := fset.String("db", "adniprep.db", "path to the sqlite archive of runs")
	if err := fset.Parse(args); err != nil {
		return err
	}
	return db.RunMigrateCommand(fset.Args(), *dbPath, stdout)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) > 0 && args[0] == "migrate" {
		return runMigrate(args[1:], stdout)
	}

	o, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	if o.version {
		fmt.Fprintln(stdout, version.String())
		return nil
	}
	if o.quiet {
		prev := monitoring.Logf
		monitoring.SetLogger(nil)
		defer monitoring.SetLogger(prev)
	}

	cfg, err := config.LoadPrepConfig(o.configPath)
	if err != nil {
		return err
	}

	p := prep.New(o.source, o.dest, prep.WithConfig(cfg))
	if err := p.Run(ctx); err != nil {
		return err
	}
	monitoring.Logf("prepared %s and %s", p.PreparedPath(), p.DictionaryPath())

	if o.dbPath != "" {
		archive, err := db.Open(o.dbPath)
		if err != nil {
			return err
		}
		defer archive.Close()
		runID, err := archive.SaveRun(ctx, o.source, o.dest, p.Prepared(), p.Dictionary())
		if err != nil {
			return err
		}
		monitoring.Logf("archived run %s in %s", runID, o.dbPath)
	}

	if o.reportDir != "" {
		if err := report.Write(fsutil.OSFileSystem{}, o.reportDir, p.Prepared(), p.Censoring()); err != nil {
			return err
		}
	}
	return nil
}

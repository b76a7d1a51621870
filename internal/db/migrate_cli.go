package db

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrUnknownMigrateAction is returned for an unrecognised migrate action.
var ErrUnknownMigrateAction = errors.New("unknown migrate action")

// RunMigrateCommand handles the 'migrate' subcommand against the archive at
// dbPath. Progress and status are written to out.
func RunMigrateCommand(args []string, dbPath string, out io.Writer) error {
	if len(args) < 1 || args[0] == "help" {
		PrintMigrateHelp(out)
		if len(args) < 1 {
			return errors.New("missing migrate action")
		}
		return nil
	}
	action := args[0]

	var target int
	switch action {
	case "up", "down", "status":
	case "version", "force":
		if len(args) < 2 {
			return fmt.Errorf("usage: adniprep migrate %s <version_number>", action)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid version number: %s", args[1])
		}
		target = n
	default:
		PrintMigrateHelp(out)
		return fmt.Errorf("%w: %s", ErrUnknownMigrateAction, action)
	}

	database, err := OpenUnmigrated(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	switch action {
	case "up":
		err = database.MigrateUp()
	case "down":
		err = database.MigrateDown()
	case "version":
		err = database.MigrateTo(uint(target))
	case "force":
		err = database.MigrateForce(target)
	}
	if err != nil {
		return err
	}
	return printMigrateStatus(database, out)
}

func printMigrateStatus(database *DB, out io.Writer) error {
	version, dirty, err := database.MigrateVersion()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	fmt.Fprintf(out, "Current version: %d\n", version)
	fmt.Fprintf(out, "Dirty: %v\n", dirty)
	if dirty {
		fmt.Fprintln(out, "A migration failed mid-execution. Inspect the archive, then run: adniprep migrate force <version>")
	}
	return nil
}

// PrintMigrateHelp writes usage for the migrate subcommand.
func PrintMigrateHelp(out io.Writer) {
	fmt.Fprint(out, `Usage: adniprep migrate [-db path] <action> [version]

Actions:
  up                 apply all pending migrations
  down               roll back the most recent migration
  status             show the current version and dirty state
  version <n>        migrate up or down to version n
  force <n>          record version n without running migrations
  help               show this message
`)
}

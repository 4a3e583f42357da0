package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/reciteapp/recite/internal/cli"
	"github.com/reciteapp/recite/internal/config"
	"github.com/reciteapp/recite/internal/constants"
	"github.com/reciteapp/recite/internal/errors"
	"github.com/reciteapp/recite/internal/logger"
	"github.com/reciteapp/recite/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init cli.InitCmd `cmd:"" help:"Initialize recite storage."`
	Note struct {
		Add    cli.NoteAddCmd    `cmd:"" help:"Put a note under review."`
		Remove cli.NoteRemoveCmd `cmd:"" help:"Remove a note from review."`
		List   cli.NoteListCmd   `cmd:"" help:"List notes under review."`
	} `cmd:"" help:"Manage reviewed notes."`
	Due      cli.DueCmd      `cmd:"" help:"Show notes due for review."`
	Review   cli.ReviewCmd   `cmd:"" help:"Record a graded review."`
	Skip     cli.SkipCmd     `cmd:"" help:"Skip a scheduled review."`
	Postpone cli.PostponeCmd `cmd:"" help:"Push a note's next review out."`
	Advance  cli.AdvanceCmd  `cmd:"" help:"Pull a note's next review one day closer."`
	Order    cli.OrderCmd    `cmd:"" help:"Show or set the custom review order."`
	Convert  cli.ConvertCmd  `cmd:"" help:"Convert all schedules between algorithms."`
	History  cli.HistoryCmd  `cmd:"" help:"Show the review log."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage scheduling settings."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the store." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Keyring  struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store the postgres connection string."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Spaced-repetition review scheduler for notes"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Formatf("invalid config: %v", err))
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:   CLI.Debug || cfg.Debug,
		DataDir: config.DefaultDataDir(),
	}); err != nil {
		fmt.Fprintln(os.Stderr, errors.Formatf("failed to initialize logging: %v", err))
		os.Exit(1)
	}

	appCtx := &cli.Context{}

	// Keyring commands manage the credentials the postgres backend needs, so
	// they run without opening a store at all.
	command := ctx.Command()
	if !strings.HasPrefix(command, "keyring") {
		store, err := storage.Open(cfg.Storage)
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Format(err))
			os.Exit(1)
		}
		defer store.Close()
		appCtx.Store = store

		if !strings.HasPrefix(command, "init") {
			if err := store.Load(); err != nil {
				fmt.Fprintln(os.Stderr, errors.Format(err))
				os.Exit(1)
			}
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
}

package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/importshift/pkg/fsys"
	"github.com/walteh/importshift/pkg/log"
	"github.com/walteh/importshift/pkg/migrate"
	"github.com/walteh/importshift/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the flags shared by all commands
type rootOpts struct {
	dir   string
	debug bool
}

// newRootCmd creates the importshift command. Console lines go to stdout,
// structured logs to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "importshift",
		Short: "Rewrite import prefixes for the client/server/shared layout",
		Long: `importshift rewrites import path prefixes in every .tsx and .ts file under
the working directory, using a fixed rule table compiled into the binary.

It will:
1. Find all **/*.tsx files, then all **/*.ts files
2. Apply every rule, in order, to each file
3. Write back only the files that changed

Files are rewritten in place. There is no backup.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(opts, stderr).WithContext(cmd.Context())

			manifest, err := rules.Default()
			if err != nil {
				return err
			}

			fs, err := fsys.NewOS(opts.dir)
			if err != nil {
				return errors.Errorf("opening %s: %w", opts.dir, err)
			}

			migrator, err := migrate.New(migrate.Options{
				FS:       fs,
				Manifest: manifest,
				Logger:   log.New(stdout, *zerolog.Ctx(ctx)),
			})
			if err != nil {
				return errors.Errorf("creating migrator: %w", err)
			}

			if _, err := migrator.Run(ctx); err != nil {
				return errors.Errorf("migrating imports: %w", err)
			}

			return nil
		},
	}

	addRootFlags(cmd, opts)

	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "directory to migrate")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging builds the zerolog logger for a run based on flags
func setupLogging(opts *rootOpts, out io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if opts.debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

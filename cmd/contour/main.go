// Command contour draws marching-squares contours over an image.
//
// Usage:
//
//	contour <in_file> <out_file> <P>
//
// P is the number of worker goroutines. Tiles are read from ./contours/0.ppm
// through ./contours/15.ppm unless --contours points elsewhere; the value
// "builtin" uses a generated tile set.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/contour"
)

// builtinTiles selects the generated tile set instead of files.
const builtinTiles = "builtin"

const usage = "Usage: contour <in_file> <out_file> <P>"

// errUsage is returned when fewer than three positional arguments are given.
var errUsage = errors.New(usage)

type options struct {
	contours string
	tileExt  string
	verbose  bool
	floor    bool
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "contour <in_file> <out_file> <P>",
		Short: "Draw marching-squares contours over an image",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 3 {
				return errUsage
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.contours, "contours", "./contours", `tile directory, or "builtin"`)
	flags.StringVar(&opts.tileExt, "tile-ext", ".ppm", "tile file extension")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.floor, "floor-partition", false, "give each worker exactly extent/P rows, dropping the remainder")

	return cmd
}

func run(stdout, stderr io.Writer, args []string, opts options) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	contour.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	inPath, outPath := args[0], args[1]
	workers, err := strconv.Atoi(args[2])
	if err != nil || workers < 1 {
		return fmt.Errorf("invalid worker count %q: %w", args[2], contour.ErrInvalidWorkers)
	}

	src, err := contour.LoadImage(inPath)
	if err != nil {
		return err
	}

	var tiles *contour.TileTable
	if opts.contours == builtinTiles {
		tiles, err = contour.SynthesizeTiles(contour.DefaultStep)
	} else {
		tiles, err = contour.LoadTiles(opts.contours, opts.tileExt)
	}
	if err != nil {
		return err
	}

	cfg := contour.NewConfig(contour.WithWorkers(workers))
	if opts.floor {
		cfg.Partition = contour.FloorPartition
	}

	start := time.Now()
	res, err := contour.Run(src, tiles, cfg)
	if err != nil {
		return err
	}

	if err := contour.SaveImage(res.Image, outPath); err != nil {
		return err
	}

	p, q := res.Grid.Cells()
	printer := message.NewPrinter(language.English)
	printer.Fprintf(stdout, "%s: %dx%d, %d cells, %d workers, %v\n",
		outPath, res.Image.Width(), res.Image.Height(), p*q, workers,
		time.Since(start).Round(time.Millisecond))
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	citybuf "github.com/tingold/orb-citybuf"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "cjseq2cb",
		Usage:     "convert a CityJSON sequence to CityBuf",
		ArgsUsage: "<input.city.jsonl> <output.city.fcb>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "schema",
				Usage: "attribute types overriding inference, as name:type[,name:type...] (text, integer, float, boolean, structured)",
			},
			&cli.BoolFlag{
				Name:    "skip-null-attributes",
				Aliases: []string{"skip-null_attributes"},
				Usage:   "do not encode attributes with a null value",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "features encoded in parallel (0 uses all CPUs)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "write conversion statistics to this file in the Prometheus text format",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "one of debug, info, warn, error",
			},
		},
		Action: convert,
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "print the header of a CityBuf file",
				ArgsUsage: "<file.city.fcb>",
				Action:    inspect,
			},
		},
	}
}

func newLogger(lvl string) (log.Logger, error) {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
	return level.NewFilter(logger, opt), nil
}

func convert(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.ShowAppHelp(c)
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	logger, err := newLogger(c.String("log-level"))
	if err != nil {
		return err
	}

	opts := citybuf.DefaultOptions()
	opts.Logger = logger
	opts.WriteNulls = !c.Bool("skip-null-attributes")
	if n := c.Int("workers"); n > 0 {
		opts.Workers = n
	}
	if opts.Overrides, err = citybuf.ParseSchemaOverrides(c.String("schema")); err != nil {
		return err
	}
	var reg *prometheus.Registry
	if c.String("metrics-file") != "" {
		reg = prometheus.NewRegistry()
		opts.Metrics = citybuf.NewMetrics(reg)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	level.Info(logger).Log("msg", "converting", "input", in, "output", out)
	if err := writeAtomic(out, func(w io.Writer) error {
		_, err := citybuf.Convert(ctx, src, w, opts)
		return err
	}); err != nil {
		return err
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(c.String("metrics-file"), reg); err != nil {
			level.Error(logger).Log("msg", "failed to write metrics", "err", err)
		}
	}
	return nil
}

// writeAtomic writes to a temporary file next to path and renames it into
// place once fn succeeds.
func writeAtomic(path string, fn func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = fn(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func inspect(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := citybuf.NewReader(f)
	if err != nil {
		return err
	}
	h := r.Header()
	w := c.App.Writer
	fmt.Fprintf(w, "version:   %d.%d\n", h.Major, h.Minor)
	fmt.Fprintf(w, "features:  %d\n", h.FeaturesCount)
	fmt.Fprintf(w, "scale:     %v\n", h.Scale)
	fmt.Fprintf(w, "translate: %v\n", h.Translate)
	if h.ReferenceSystem != nil {
		rs := h.ReferenceSystem
		fmt.Fprintf(w, "crs:       %s:%d (version %d)\n", rs.Authority, rs.Code, rs.Version)
	}
	if h.Extent != nil {
		fmt.Fprintf(w, "extent:    %v %v\n", h.Extent.Min(), h.Extent.Max())
	}
	fmt.Fprintf(w, "columns:   %d\n", len(h.Columns))
	for i, col := range h.Columns {
		fmt.Fprintf(w, "  %3d %-32s %s nullable=%t\n", i, col.Name, col.Type, col.Nullable)
	}

	var n uint64
	for {
		if _, err := r.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		n++
	}
	if n != h.FeaturesCount {
		return fmt.Errorf("header declares %d features, file holds %d", h.FeaturesCount, n)
	}
	return nil
}

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"locsplit.dev/locsplit/convert"
	"locsplit.dev/locsplit/grouping"
	"locsplit.dev/locsplit/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "locsplit",
		Usage: "Split a location history export into KML files",
		Commands: []*cli.Command{{
			Name:      "convert",
			Usage:     "Write one KML document per month or year of a location history export",
			Args:      true,
			ArgsUsage: "<Records.json | Records.json.gz | s3://bucket/key>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Value: "output",
					Usage: "directory or s3://bucket/prefix receiving the KML files",
				},
				&cli.StringFlag{
					Name:  "group-by",
					Value: "month",
					Usage: "split the output by year or month",
				},
				&cli.StringSliceFlag{
					Name:  "year",
					Usage: "only write points from this year, may be repeated",
				},
				&cli.IntFlag{
					Name:  "sample",
					Value: 0,
					Usage: "print up to this many of the written points",
				},
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
					Usage: "debug, info, warn or error",
				},
				&cli.BoolFlag{
					Name:  "metrics",
					Usage: "write conversion metrics to stderr after the run",
				},
			},
			Action: func(ctx *cli.Context) error {
				level, err := logging.ParseLevel(ctx.String("log-level"))
				if err != nil {
					return err
				}
				logging.SetLevel(level)
				slog.SetDefault(slog.New(logging.NewTextHandler(os.Stderr)))

				input := ctx.Args().First()
				if input == "" {
					return fmt.Errorf("input path is required")
				}

				result, err := convert.Run(convert.Config{
					Input:       input,
					OutputDir:   ctx.String("out"),
					GroupBy:     ctx.String("group-by"),
					AcceptYears: ctx.StringSlice("year"),
					SampleCap:   ctx.Int("sample"),
				})
				if ctx.Bool("metrics") {
					grouping.WriteMetrics(ctx.App.ErrWriter)
				}
				if err != nil {
					slog.Error("terminated with error", "error", err)
					return err
				}
				return convert.WriteReport(ctx.App.Writer, result)
			},
		}},
	}
}

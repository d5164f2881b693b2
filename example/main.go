package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	roster "github.com/rockhard07/Attendance-roster"
)

func main() {
	cmd := &cli.Command{
		Name:  "roster",
		Usage: "Extract attendance records from roster report PDFs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Input PDF file path",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path, .xlsx or .csv (default: stdout csv)",
			},
			&cli.StringFlag{
				Name:     "department",
				Aliases:  []string{"d"},
				Usage:    "Report type: stations, occ, tripchart or roster",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log processing metrics",
			},
		},
		Action: extractReport,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func extractReport(_ context.Context, cmd *cli.Command) error {
	inputPath := cmd.String("input")
	outputPath := cmd.String("output")

	hint, err := roster.ParseDepartmentHint(cmd.String("department"))
	if err != nil {
		return err
	}

	// Initialise pdfium
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	config := roster.DefaultConfig()
	config.EnableMetricsLogging = cmd.Bool("verbose")
	extractor := roster.NewExtractorWithConfig(instance, config)

	dataset, err := extractor.ExtractFile(inputPath, hint)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", inputPath, err)
	}

	fmt.Fprintf(os.Stderr, "Extracted %d record(s) over %d day(s)\n", len(dataset.Records), dataset.DayCount)
	for _, warning := range dataset.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	if outputPath == "" {
		return roster.WriteCSV(dataset, os.Stdout)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		err = roster.WriteXLSX(dataset, out)
	} else {
		err = roster.WriteCSV(dataset, out)
	}
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Records written to %s\n", outputPath)
	return nil
}

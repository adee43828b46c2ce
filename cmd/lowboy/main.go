// Command lowboy runs the demo feed application.
//
//	lowboy [-c config.yml] [-a host:port] [-d database-url] [serve]
//	lowboy config-template
//	lowboy [-c path] config-init
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/lowboy/internal/config"
	"github.com/MKhiriev/lowboy/internal/demo"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/lowboy"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "lowboy:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags, rest, err := config.ParseFlags("lowboy", args, stderr)
	if err != nil {
		return err
	}

	command := "serve"
	if len(rest) > 0 {
		command = rest[0]
	}

	switch command {
	case "config-template":
		_, err = io.WriteString(stdout, config.Template())
		return err
	case "config-init":
		path, err := config.Init(flags.FilePath)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", path)
		return nil
	case "serve":
		return serve(ctx, flags, stdout)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func serve(ctx context.Context, flags *config.StructuredConfig, stdout io.Writer) error {
	printBuildInfo(stdout)

	log := logger.NewLogger("lowboy")
	cfg, err := config.Load(flags)
	if err != nil {
		log.Err(err).Msg("error getting configs")
		return err
	}

	return lowboy.Run(ctx, demo.NewApp(log), cfg, log, lowboy.WithVersion(buildVersion))
}

func printBuildInfo(w io.Writer) {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command recordgen writes the record code for the //lowboy:record models of
// a Go file. It is meant to be run from go:generate:
//
//	//go:generate go run github.com/MKhiriev/lowboy/cmd/recordgen -in $GOFILE
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/lowboy/internal/record"
)

func main() {
	in := flag.String("in", os.Getenv("GOFILE"), "model source file")
	out := flag.String("out", "", "output file (default <in>_record.go)")
	flag.Parse()

	if err := run(*in, *out); err != nil {
		fmt.Fprintln(os.Stderr, "recordgen:", err)
		os.Exit(1)
	}
}

func run(in, out string) error {
	if in == "" {
		return fmt.Errorf("no input file: pass -in or run from go:generate")
	}
	if out == "" {
		out = strings.TrimSuffix(in, ".go") + "_record.go"
	}

	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	file, err := record.Parse(in, src)
	if err != nil {
		return err
	}

	code, err := record.Generate(file)
	if err != nil {
		return err
	}

	return os.WriteFile(out, code, 0o644)
}

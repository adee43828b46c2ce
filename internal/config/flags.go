// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the global command line flags and returns them as a
// partial configuration together with the remaining positional arguments
// (the subcommand and its own flags).
//
// Flags:
//
//	-c/-config   YAML config file path
//	-a           HTTP listen address in format [host]:[port]
//	-d           database url
func ParseFlags(name string, args []string, output io.Writer) (*StructuredConfig, []string, error) {
	var address NetAddress
	var configPath string
	var databaseURL string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Var(&address, "a", "Net address host:port")
	fs.StringVar(&configPath, "c", "", "YAML config file path")
	fs.StringVar(&configPath, "config", "", "YAML config file path (alias)")
	fs.StringVar(&databaseURL, "d", "", "Database url")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return &StructuredConfig{
		Database: Database{URL: databaseURL},
		Server:   Server{HTTPAddress: address.String()},
		FilePath: configPath,
	}, fs.Args(), nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, found := strings.Cut(s, ":")
	if !found {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

/*
NAME
  main.go

DESCRIPTION
  imgcomp is a command-line front end for the block image codec: it
  compresses a binary PPM to the COMP40-style byte stream, decompresses
  that stream back to a PPM, or round-trips a PPM through both stages in
  memory, reading from a named file or stdin and writing to stdout.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// imgcomp compresses and decompresses images using the block codec
// implemented by the imgcomp package.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/imgcomp/imgcomp"
	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logging related constants.
const (
	logPath      = "/var/log/imgcomp/imgcomp.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

func main() {
	fs := flag.NewFlagSet("imgcomp", flag.ContinueOnError)
	fs.Usage = usage
	compress := fs.Bool("c", false, "Compress a PPM image to the code-word stream. Reads stdin if no file is given.")
	decompress := fs.Bool("d", false, "Decompress a code-word stream to a PPM image. Reads stdin if no file is given.")
	roundTrip := fs.Bool("t", false, "Round-trip test: compress then decompress a PPM image internally, writing the final PPM. Reads stdin if no file is given.")
	if err := fs.Parse(os.Args[1:]); err != nil {
		// fs.Parse already printed the error and usage via fs.Usage.
		os.Exit(1)
	}

	nSet := 0
	for _, set := range []bool{*compress, *decompress, *roundTrip} {
		if set {
			nSet++
		}
	}
	if nSet != 1 {
		usage()
		os.Exit(1)
	}

	var path string
	switch fs.NArg() {
	case 0:
		path = ""
	case 1:
		path = fs.Arg(0)
	default:
		usage()
		os.Exit(1)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	var err error
	switch {
	case *compress:
		err = run(path, imgcomp.Compress, l)
	case *decompress:
		err = run(path, imgcomp.Decompress, l)
	case *roundTrip:
		err = runRoundTrip(path, l)
	}
	if err != nil {
		l.Fatal("imgcomp failed", "error", err)
	}
}

// run opens path (or stdin, if path is empty) and runs op against it,
// writing the result to stdout.
func run(path string, op func(w io.Writer, r io.Reader) error, l logging.Logger) error {
	r, err := openInput(path)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}
	l.Debug("running operation", "path", path)
	return op(os.Stdout, r)
}

// runRoundTrip opens path (or stdin), compresses the decoded PPM and
// immediately decompresses it again in memory, and writes the final PPM to
// stdout — a quick way to inspect the codec's lossy reconstruction without
// two separate invocations.
func runRoundTrip(path string, l logging.Logger) error {
	r, err := openInput(path)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	var compressed bytes.Buffer
	if err := imgcomp.Compress(&compressed, r); err != nil {
		return fmt.Errorf("compressing: %w", err)
	}
	l.Debug("round-trip: compressed", "bytes", compressed.Len())

	return imgcomp.Decompress(os.Stdout, &compressed)
}

func openInput(path string) (io.Reader, error) {
	if path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: imgcomp (-c | -d | -t) [file]")
	fmt.Fprintln(os.Stderr, "  -c  compress a PPM image to the code-word stream")
	fmt.Fprintln(os.Stderr, "  -d  decompress a code-word stream to a PPM image")
	fmt.Fprintln(os.Stderr, "  -t  round-trip test: compress then decompress, writing the final PPM")
	fmt.Fprintln(os.Stderr, "exactly one of -c, -d, -t must be given; file defaults to stdin")
}

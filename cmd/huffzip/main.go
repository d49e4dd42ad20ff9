// Command huffzip compresses or decompresses a single file with the
// huffman container format.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	huffman "github.com/leoctescossia/C-digo-Huffman"
	"github.com/leoctescossia/C-digo-Huffman/internal/logger"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type options struct {
	decompress bool
	stats      bool
	codes      bool
	verify     bool
	quiet      bool
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("huffzip", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.decompress, "d", false, "decompress INPUT instead of compressing it")
	fs.BoolVar(&opts.stats, "stats", false, "print byte counts with their binary representation")
	fs.BoolVar(&opts.codes, "codes", false, "print the code table as JSON")
	fs.BoolVar(&opts.verify, "verify", false, "check that the compressed output decompresses to INPUT")
	fs.BoolVar(&opts.quiet, "quiet", false, "only log errors")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: huffzip [flags] INPUT OUTPUT\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}
	inputPath, outputPath := fs.Arg(0), fs.Arg(1)
	logg := logger.New(stderr, opts.quiet)

	input, err := os.ReadFile(inputPath)
	if err != nil {
		logg.Errorf("%v", err)
		return err
	}

	var output []byte
	if opts.decompress {
		output, err = decompressFile(input, opts, stdout, logg)
	} else {
		output, err = compressFile(input, opts, stdout, logg)
	}
	if err != nil {
		logg.Errorf("%s: %v", inputPath, err)
		return err
	}

	if err := os.WriteFile(outputPath, output, 0o644); err != nil {
		logg.Errorf("%v", err)
		return err
	}
	logg.Infof("%s: %d bytes", inputPath, len(input))
	logg.Infof("%s: %d bytes", outputPath, len(output))
	return nil
}

func compressFile(input []byte, opts options, stdout io.Writer, logg logger.Logger) ([]byte, error) {
	ft := huffman.CountFrequencies(input)
	if opts.stats {
		if _, err := ft.Dump(stdout); err != nil {
			return nil, err
		}
	}

	table := new(huffman.CodeTable)
	if ft.Len() != 0 {
		tree, err := huffman.BuildTree(ft)
		if err != nil {
			return nil, err
		}
		table, err = tree.CodeTable()
		if err != nil {
			return nil, err
		}
	}
	if opts.codes {
		if err := writeCodes(stdout, table); err != nil {
			return nil, err
		}
	}

	output, err := huffman.NewEncoder(table).Encode(input)
	if err != nil {
		return nil, err
	}

	if opts.verify {
		back, err := huffman.Decompress(output)
		if err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
		want, got := xxhash.Sum64(input), xxhash.Sum64(back)
		if want != got || len(back) != len(input) {
			return nil, fmt.Errorf("verify: digest %016x after round trip, want %016x", got, want)
		}
		logg.Infof("verified round trip, xxhash64 %016x", want)
	}
	return output, nil
}

func decompressFile(input []byte, opts options, stdout io.Writer, logg logger.Logger) ([]byte, error) {
	c, err := huffman.ParseContainer(input)
	if err != nil {
		return nil, err
	}
	if opts.codes {
		if err := writeCodes(stdout, &c.Table); err != nil {
			return nil, err
		}
	}

	output, err := c.Decode()
	if err != nil {
		return nil, err
	}
	if opts.stats {
		if _, err := huffman.CountFrequencies(output).Dump(stdout); err != nil {
			return nil, err
		}
	}
	logg.Infof("decoded %d payload bits, xxhash64 %016x", c.BitCount, xxhash.Sum64(output))
	return output, nil
}

func writeCodes(w io.Writer, table *huffman.CodeTable) error {
	raw, err := json.Marshal(table)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", raw)
	return err
}

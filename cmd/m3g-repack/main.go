// The m3g-repack command rewrites an M3G file with freshly framed sections.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jsr184/m3gfile/errors"
	"github.com/jsr184/m3gfile/internal/config"
	"github.com/jsr184/m3gfile/internal/logger"
	"github.com/jsr184/m3gfile/m3g"
	"go.uber.org/zap"
)

const usage = `usage: m3g-repack [OPTIONS] [INPUT] [OUTPUT]

Reads an M3G file from INPUT, and writes to OUTPUT the same records in
uncompressed sections with recomputed lengths and checksums. Only sections that
pass verification are written. If a section fails, the sections before it are
still written and the command reports the error. Records are copied without
being decoded.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.

Options:
`

// repack reads the sections of input and writes them to output. If merge is
// true, all records are written to a single section. The sections read before
// an error are written regardless.
func repack(dec m3g.Decoder, output io.Writer, input io.Reader, merge bool) (warn, err error) {
	sections, warn, err := dec.Sections(input)
	if merge {
		var records []m3g.Record
		for _, s := range sections {
			records = append(records, s...)
		}
		sections = [][]m3g.Record{records}
	}
	if werr := (m3g.Encoder{}).Encode(output, sections...); err == nil {
		err = werr
	}
	return warn, err
}

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flags := config.RegisterFlags(flag.CommandLine)
	merge := flag.Bool("merge", false, "Write all records to a single section")
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("config: %w", err))
		return
	}
	if ok, err := flags.Save(cfg); ok {
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("write config: %w", err))
		}
		return
	}
	log := logger.New(cfg.LoggerOptions())
	defer log.Sync()

	args := flag.Args()
	if len(args) >= 1 && args[0] != "-" {
		in, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("open input: %w", err))
			return
		}
		input = in
		defer in.Close()
	}
	if len(args) >= 2 && args[1] != "-" {
		out, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("create output: %w", err))
			return
		}
		defer out.Close()
		defer func() {
			err := out.Sync()
			if err != nil {
				fmt.Fprintln(os.Stderr, fmt.Errorf("sync output: %w", err))
				return
			}
		}()
		output = out
	}

	warn, err := repack(cfg.DecoderOptions(), output, input, *merge)
	for _, w := range errors.List(warn) {
		log.Warn("repack warning", zap.Error(w))
	}
	if err != nil {
		log.Error("repack failed", zap.Error(err))
	}
}

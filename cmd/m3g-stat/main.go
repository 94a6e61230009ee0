// The m3g-stat command displays stats for an M3G file.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsr184/m3gfile"
	"github.com/jsr184/m3gfile/errors"
	"github.com/jsr184/m3gfile/internal/config"
	"github.com/jsr184/m3gfile/internal/logger"
	"github.com/jsr184/m3gfile/m3g"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

const usage = `usage: m3g-stat [OPTIONS] [INPUT] [OUTPUT]

Reads an M3G file from INPUT, and writes to OUTPUT statistics for the file.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.

Options:
`

// ImageGroup lists images that have identical pixel data.
type ImageGroup struct {
	Digest string
	IDs    []uint32
}

type Stats struct {
	// Binary format data.
	Format m3g.DecoderStats

	// Number of objects overall.
	ObjectCount int

	// Number of objects per type.
	TypeCount map[string]int

	// Fields of the header object.
	Header *m3gfile.Header `json:",omitempty"`

	// URIs of external references.
	ExternalReferences []string `json:",omitempty"`

	// Number of user parameters over all objects.
	UserParameterCount int

	// Number of vertices over all vertex arrays.
	VertexCount int

	// Number of triangles over all triangle strips.
	TriangleCount int

	// References that do not resolve, per referring object.
	Dangling map[uint32][]m3gfile.Reference `json:",omitempty"`

	// Images whose pixels are duplicated by other images.
	DuplicateImages []ImageGroup `json:",omitempty"`

	Warnings []string `json:",omitempty"`
	Error    string   `json:",omitempty"`
}

func (s *Stats) Fill(g *m3gfile.Graph) {
	if g == nil {
		return
	}

	s.ObjectCount = g.Len()
	s.TypeCount = map[string]int{}
	s.Header = g.Header()

	images := map[[blake2b.Size256]byte][]uint32{}
	g.Each(func(id uint32, obj m3gfile.Object) bool {
		s.TypeCount[obj.Type().String()]++
		if b, ok := obj.(m3gfile.Based); ok {
			s.UserParameterCount += len(b.Base().UserParameters)
		}
		switch obj := obj.(type) {
		case *m3gfile.ExternalReference:
			s.ExternalReferences = append(s.ExternalReferences, obj.URI)
		case *m3gfile.VertexArray:
			s.VertexCount += int(obj.VertexCount)
		case *m3gfile.TriangleStripArray:
			for _, n := range obj.StripLengths {
				if n > 2 {
					s.TriangleCount += int(n) - 2
				}
			}
		case *m3gfile.Image2D:
			if !obj.Mutable {
				sum := blake2b.Sum256(append(append([]byte{}, obj.Palette...), obj.Pixels...))
				images[sum] = append(images[sum], id)
			}
		}
		return true
	})

	if dangling := g.Dangling(); len(dangling) > 0 {
		s.Dangling = dangling
	}

	for sum, ids := range images {
		if len(ids) > 1 {
			s.DuplicateImages = append(s.DuplicateImages, ImageGroup{
				Digest: hex.EncodeToString(sum[:]),
				IDs:    ids,
			})
		}
	}
	sort.Slice(s.DuplicateImages, func(i, j int) bool {
		return s.DuplicateImages[i].IDs[0] < s.DuplicateImages[j].IDs[0]
	})
}

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flags := config.RegisterFlags(flag.CommandLine)
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

	var stats Stats
	dec := cfg.DecoderOptions()
	dec.Logger = log
	dec.Stats = &stats.Format
	g, warn, err := dec.Decode(input)
	for _, w := range errors.List(warn) {
		stats.Warnings = append(stats.Warnings, w.Error())
	}
	if err != nil {
		log.Error("decode failed", zap.Error(err))
		stats.Error = err.Error()
	}

	stats.Fill(g)

	je := json.NewEncoder(output)
	je.SetEscapeHTML(false)
	je.SetIndent("", "\t")
	if err := je.Encode(stats); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("write error: %w", err))
	}
}

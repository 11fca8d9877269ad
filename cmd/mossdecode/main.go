// Package main is the mossdecode command: a thin CLI wrapper around
// moss/stream for decoding a raw MOSS readout capture from a file and
// printing a summary.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/AliceO2Group/moss-decoder/moss/mosserr"
	"github.com/AliceO2Group/moss-decoder/moss/stream"
)

func main() {
	input := pflag.StringP("input", "i", "", "path to a raw MOSS readout capture")
	stats := pflag.Bool("stats", false, "print packet/hit counts and decode timing")
	asYAML := pflag.Bool("yaml", false, "emit the --stats summary as YAML instead of text")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --input <file> [--stats] [--yaml]\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *input == "" {
		pflag.Usage()
		os.Exit(2)
	}

	if err := run(*input, *stats, *asYAML); err != nil {
		log.Error("decode failed", "err", err)

		var protoErr *mosserr.ProtocolError
		if errAs(err, &protoErr) {
			log.Error("protocol diagnostics",
				"state", protoErr.State,
				"index", protoErr.Index,
				"expected", protoErr.Expected)
		}
		os.Exit(1)
	}
}

// errAs is a tiny stand-in for errors.As kept local to main so the package
// doesn't need a second import line for a single call site.
func errAs(err error, target **mosserr.ProtocolError) bool {
	for err != nil {
		if pe, ok := err.(*mosserr.ProtocolError); ok {
			*target = pe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// summary is the machine-readable shape behind --stats --yaml.
type summary struct {
	Packets          int    `yaml:"packets"`
	Hits             int    `yaml:"hits"`
	HitsByRegion     [4]int `yaml:"hits_by_region"`
	LastTrailerIndex int    `yaml:"last_trailer_index"`
	DecodeMillis     int64  `yaml:"decode_millis"`
}

func run(path string, printStats, asYAML bool) error {
	start := time.Now()

	sess, err := decodeSession(path)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if !printStats {
		log.Info("decoded", "packets", len(sess.Packets), "run_id", sess.ID)
		return nil
	}

	sum := summarize(sess, elapsed)

	if asYAML {
		out, err := yaml.Marshal(sum)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	fmt.Printf("packets: %d\n", sum.Packets)
	fmt.Printf("hits: %d\n", sum.Hits)
	fmt.Printf("hits by region: %v\n", sum.HitsByRegion)
	fmt.Printf("last trailer index: %d\n", sum.LastTrailerIndex)
	fmt.Printf("decode time: %s\n", elapsed)
	return nil
}

func decodeSession(path string) (stream.Session, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return stream.Session{}, err
	}
	return stream.DecodeAllSession(buf)
}

func summarize(sess stream.Session, elapsed time.Duration) summary {
	sum := summary{
		Packets:          len(sess.Packets),
		LastTrailerIndex: sess.LastTrailerIndex,
		DecodeMillis:     elapsed.Milliseconds(),
	}
	for _, p := range sess.Packets {
		sum.Hits += len(p.Hits)
		for _, h := range p.Hits {
			if h.Region < uint8(len(sum.HitsByRegion)) {
				sum.HitsByRegion[h.Region]++
			}
		}
	}
	return sum
}

// mrbdump - inspect RITE constant-pool chunks through the value boundary
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/wordijp/mrusty/manifest"
	"github.com/wordijp/mrusty/mrb"
	"github.com/wordijp/mrusty/rite"
)

func main() {
	dir := flag.String("C", ".", "Directory to search for mrusty.toml")
	verbosity := flag.Int("v", -1, "Log verbosity (overrides manifest)")
	hashes := flag.Bool("hash", false, "Print each chunk's content hash only")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mrbdump [options] [chunks...]\n\n")
		fmt.Fprintf(os.Stderr, "Loads RITE chunks into a fresh interpreter instance and dumps their values.\n")
		fmt.Fprintf(os.Stderr, "Each argument is a chunk file path or, with a store configured in\n")
		fmt.Fprintf(os.Stderr, "mrusty.toml, a content hash. With no arguments the manifest's preload\n")
		fmt.Fprintf(os.Stderr, "list is dumped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mrbdump consts.rite        # Dump one chunk file\n")
		fmt.Fprintf(os.Stderr, "  mrbdump -hash consts.rite  # Print its content hash\n")
		fmt.Fprintf(os.Stderr, "  mrbdump 3b4f...            # Dump a chunk from the configured store\n")
	}
	flag.Parse()

	m, err := manifest.FindAndLoad(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
		os.Exit(1)
	}

	level := 0
	if m != nil {
		level = m.Instance.Verbosity
	}
	if *verbosity >= 0 {
		level = *verbosity
	}
	commonlog.Configure(level, nil)

	s := mrb.New()
	defer s.Close()

	var store *rite.Store
	if m != nil {
		// Classes for declared host types exist up front, so dumped
		// chunks render against the same class table the host sees.
		for _, dt := range m.DataTypes {
			class := dt.Class
			if class == "" {
				class = dt.Name
			}
			s.DefineClass(class, nil)
		}
		if path := m.StorePath(); path != "" {
			store, err = rite.OpenStore(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening chunk store: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()
		}
	}

	args := flag.Args()
	if len(args) == 0 && m != nil {
		args = m.Chunks.Preload
	}
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	for _, arg := range args {
		c, err := resolveChunk(arg, store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", arg, err)
			os.Exit(1)
		}
		if *hashes {
			h, err := rite.HashHex(c)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error hashing %s: %v\n", arg, err)
				os.Exit(1)
			}
			fmt.Printf("%s  %s\n", h, c.Name)
			continue
		}
		dumpChunk(s, c)
	}
}

// resolveChunk treats arg as a file path first, then as a content hash
// in the store.
func resolveChunk(arg string, store *rite.Store) (*rite.Chunk, error) {
	if data, err := os.ReadFile(arg); err == nil {
		return rite.Unmarshal(data)
	}
	if store == nil {
		return nil, fmt.Errorf("no such file and no chunk store configured")
	}
	return store.Get(arg)
}

func dumpChunk(s *mrb.State, c *rite.Chunk) {
	vals, err := rite.Load(s, c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading chunk %q: %v\n", c.Name, err)
		os.Exit(1)
	}
	fmt.Printf("chunk %q (%d values)\n", c.Name, len(vals))
	for i, v := range vals {
		fmt.Printf("  [%d] %-7s %s\n", i, v.Type(), s.Inspect(v))
	}
}

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/maxfilov/shazam/internal/index"
	"github.com/maxfilov/shazam/internal/logger"
	"github.com/maxfilov/shazam/internal/matcher"
	"github.com/maxfilov/shazam/internal/wavfile"
)

var buildIndexOut string

var buildIndexCmd = &cobra.Command{
	Use:   "build-index <dir>",
	Short: "Fingerprint a directory of WAV files into a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuildIndex,
}

func init() {
	buildIndexCmd.Flags().StringVar(&buildIndexOut, "out", "./snapshot", "snapshot output directory")
}

func runBuildIndex(cmd *cobra.Command, args []string) error {
	if err := logger.Initialize(getEnvOrDefault("LOG_LEVEL", "info"), getEnvOrDefault("LOG_FILE", "build-index.log")); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()

	dir := args[0]
	files, err := listWAVFiles(dir)
	if err != nil {
		return fmt.Errorf("listing wav files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .wav files found in %s", dir)
	}

	logger.Log.Info(fmt.Sprintf("building index from %d files", len(files)))

	// Track IDs must be assigned in sorted-filename order, but fingerprinting
	// itself can run concurrently: each file's hashes are computed into its
	// own scratch index first, then merged in order once every extraction
	// has succeeded, so ingestion of a single unreadable track stays fatal
	// to the whole batch build rather than silently partial.
	type trackResult struct {
		label  string
		hashes map[uint32]uint32
	}
	results := make([]trackResult, len(files))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			hashes, err := fingerprintFile(path)
			if err != nil {
				return fmt.Errorf("fingerprinting %s: %w", path, err)
			}
			mu.Lock()
			results[i] = trackResult{label: filepath.Base(path), hashes: hashes}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	idx := index.NewIndex()
	registry := index.NewTrackRegistry()
	for _, r := range results {
		trackID := registry.Register(r.label)
		for hash, anchorFrame := range r.hashes {
			idx.Add(hash, index.Posting{AnchorFrame: anchorFrame, TrackID: trackID})
		}
	}

	if err := index.Save(buildIndexOut, idx, registry); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	logger.Log.Info(fmt.Sprintf("snapshot written to %s (%d tracks, %d distinct hashes)", buildIndexOut, registry.Len(), len(idx)))
	return nil
}

func fingerprintFile(path string) (map[uint32]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoded, err := wavfile.Decode(f)
	if err != nil {
		return nil, err
	}

	idx := index.NewIndex()
	registry := index.NewTrackRegistry()
	if err := matcher.Ingest(idx, registry, "scratch", decoded.Samples, decoded.Channels, decoded.SampleRate); err != nil {
		return nil, err
	}

	hashes := make(map[uint32]uint32, len(idx))
	for hash, postings := range idx {
		if len(postings) > 0 {
			hashes[hash] = postings[0].AnchorFrame
		}
	}
	return hashes, nil
}

func listWAVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

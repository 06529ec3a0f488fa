package main

import (
	"bufio"
	"context"
	"math/bits"
	"os"
	"slices"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	minCodeLen    = 8
	maxCodeLen    = 10
	progressEvery = 10_000_000
)

// scanner finds codes listed in at least minFiles of the given gzip files.
//
// The first pass builds one bloom filter per file. The second pass re-reads
// every file and marks a code with the file's bit when another file's filter
// reports it. A code is accepted once minFiles bits are set, so a false
// positive in one filter alone never admits a code.
type scanner struct {
	lg       *zap.Logger
	capacity uint
	fpRate   float64
	minFiles int
}

func (s *scanner) commonCodes(ctx context.Context, files []string) ([]string, error) {
	if len(files) > bits.UintSize {
		return nil, errors.Errorf("at most %d files supported, got %d", bits.UintSize, len(files))
	}
	if s.minFiles < 2 || s.minFiles > len(files) {
		return nil, errors.Errorf("min files %d must be in [2, %d]", s.minFiles, len(files))
	}

	s.lg.Info("Building bloom filters", zap.Int("files", len(files)))
	filters, err := s.buildFilters(ctx, files)
	if err != nil {
		return nil, errors.Wrap(err, "build bloom filters")
	}

	s.lg.Info("Finding candidate codes")
	masks := make([]map[string]uint, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			m, err := s.candidates(gctx, i, path, filters)
			masks[i] = m
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "find candidates")
	}

	merged := make(map[string]uint)
	for _, m := range masks {
		for code, mask := range m {
			merged[code] |= mask
		}
	}

	var codes []string
	for code, mask := range merged {
		if bits.OnesCount(mask) >= s.minFiles {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)
	return codes, nil
}

func (s *scanner) buildFilters(ctx context.Context, files []string) ([]*bloom.BloomFilter, error) {
	filters := make([]*bloom.BloomFilter, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			filter := bloom.NewWithEstimates(s.capacity, s.fpRate)
			var count uint64
			err := streamGzFile(gctx, path, func(code string) {
				if !validCode(code) {
					return
				}
				filter.AddString(code)
				count++
				if count%progressEvery == 0 {
					s.lg.Info("Filter progress", zap.String("file", path), zap.Uint64("codes", count))
				}
			})
			if err != nil {
				return errors.Wrapf(err, "build filter for %s", path)
			}
			s.lg.Info("Filter built", zap.String("file", path), zap.Uint64("codes", count))
			filters[i] = filter
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return filters, nil
}

func (s *scanner) candidates(ctx context.Context, idx int, path string, filters []*bloom.BloomFilter) (map[string]uint, error) {
	found := make(map[string]uint)
	fileBit := uint(1) << uint(idx)

	err := streamGzFile(ctx, path, func(code string) {
		if !validCode(code) {
			return
		}
		for j, f := range filters {
			if j != idx && f.TestString(code) {
				found[code] |= fileBit
				return
			}
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", path)
	}
	s.lg.Info("Candidates found", zap.String("file", path), zap.Int("candidates", len(found)))
	return found, nil
}

func validCode(code string) bool {
	return len(code) >= minCodeLen && len(code) <= maxCodeLen
}

// streamGzFile calls fn for each line of a gzip-compressed file.
func streamGzFile(ctx context.Context, path string, fn func(code string)) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	sc := bufio.NewScanner(gz)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(sc.Text())
	}
	return sc.Err()
}

package lsh

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"genosketch/internal/domain"
)

const (
	metadataFile = "metadata.yaml"

	// DefaultCacheLimit is a convenience bound for callers that never tune
	// the cache. The core never bakes it in: every index carries its own
	// explicit limit.
	DefaultCacheLimit = 256
)

// DiskIndex runs the same banding algorithm as MemoryIndex against lazily
// loaded bucket files, holding at most a configured number of buckets in
// memory through a write-back LRU cache.
//
// Mutation is single-writer by design. The mutex serializes cache
// get/put/evict operations for callers that share an index across
// goroutines; distance scoring over already-fetched candidates runs outside
// it.
type DiskIndex struct {
	mu      sync.Mutex
	params  domain.Params
	banding *Banding
	dir     string
	cache   *bucketCache
	closed  bool
}

// CreateDiskIndex initializes a fresh index directory. The metadata file is
// written eagerly, which also proves the directory is writable; bucket files
// appear lazily on first flush.
func CreateDiskIndex(width, stages, buckets, kmerSize int, dir string) (*DiskIndex, error) {
	banding, err := NewBanding(width, stages, buckets)
	if err != nil {
		return nil, err
	}
	if kmerSize < 1 {
		return nil, errInvalidKmerSize(kmerSize)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	x := &DiskIndex{
		params:  domain.Params{Width: width, Stages: stages, Buckets: buckets, KmerSize: kmerSize},
		banding: banding,
		dir:     dir,
	}
	x.cache = newBucketCache(DefaultCacheLimit, x.flushBucket)

	if err := x.writeMetadata(); err != nil {
		return nil, err
	}
	return x, nil
}

// LoadDiskIndex opens an existing index directory. Only the metadata is read
// eagerly; bucket contents load on first touch. A directory without valid
// metadata fails with ErrNoMetadata, and a stored k-mer size that disagrees
// with the caller's fails with ErrKmerSizeMismatch, never a silent default.
func LoadDiskIndex(dir string, kmerSize int) (*DiskIndex, error) {
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoMetadata, dir)
		}
		return nil, fmt.Errorf("failed to read index metadata: %w", err)
	}

	var params domain.Params
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("%w: unparsable metadata in %s: %v", ErrNoMetadata, dir, err)
	}

	banding, err := NewBanding(params.Width, params.Stages, params.Buckets)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid parameters in %s: %v", ErrNoMetadata, dir, err)
	}
	if params.KmerSize != kmerSize {
		return nil, fmt.Errorf("%w: stored %d, configured %d", ErrKmerSizeMismatch, params.KmerSize, kmerSize)
	}

	x := &DiskIndex{
		params:  params,
		banding: banding,
		dir:     dir,
	}
	x.cache = newBucketCache(DefaultCacheLimit, x.flushBucket)
	return x, nil
}

func (x *DiskIndex) Params() domain.Params {
	return x.params
}

// SetCacheLimit bounds the number of buckets held in memory at once.
// Configure it before heavy use for a predictable memory bound; lowering it
// evicts (and flushes) immediately.
func (x *DiskIndex) SetCacheLimit(n int) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return ErrClosed
	}
	return x.cache.setLimit(n)
}

// Add inserts the sketch into one bucket per stage, loading missing buckets
// through the cache and marking every touched bucket dirty.
func (x *DiskIndex) Add(sketch domain.Sketch) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return ErrClosed
	}

	for stage, idx := range x.banding.Indices(sketch.Signature) {
		key := bucketKey{stage: stage, bucket: idx}
		b, err := x.bucket(key)
		if err != nil {
			return err
		}
		b.Add(sketch)
		x.cache.markDirty(key)
	}
	return nil
}

// GetClosest runs the same candidate-set algorithm as the in-memory index.
// Query traffic loads buckets through the cache but never dirties them.
// Candidates are copied out under the lock; the scoring pass runs outside
// it.
func (x *DiskIndex) GetClosest(query domain.Signature, maxNeighbors int, maxDist float64) ([]domain.Neighbor, error) {
	if err := validateQuery(maxNeighbors, maxDist); err != nil {
		return nil, err
	}

	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		return nil, ErrClosed
	}

	seen := make(map[string]struct{})
	var candidates []domain.Sketch
	for stage, idx := range x.banding.Indices(query) {
		b, err := x.bucket(bucketKey{stage: stage, bucket: idx})
		if err != nil {
			x.mu.Unlock()
			return nil, err
		}
		for _, s := range b.Sketches() {
			if _, ok := seen[s.Label]; ok {
				continue
			}
			seen[s.Label] = struct{}{}
			candidates = append(candidates, s)
		}
	}
	x.mu.Unlock()

	neighbors := scoreCandidates(query, candidates, maxDist)
	if len(neighbors) > maxNeighbors {
		neighbors = neighbors[:maxNeighbors]
	}
	return neighbors, nil
}

// Rename relabels a sketch across every bucket that holds it, marking
// touched buckets dirty. It scans all stage slots, so it is an
// administrative operation, not a hot path.
func (x *DiskIndex) Rename(oldLabel, newLabel string) (bool, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return false, ErrClosed
	}

	found := false
	for stage := 0; stage < x.params.Stages; stage++ {
		for idx := 0; idx < x.params.Buckets; idx++ {
			key := bucketKey{stage: stage, bucket: idx}
			if !x.bucketFileExists(key) {
				if _, cached := x.cache.get(key); !cached {
					continue
				}
			}
			b, err := x.bucket(key)
			if err != nil {
				return found, err
			}
			if b.rename(oldLabel, newLabel) {
				x.cache.markDirty(key)
				found = true
			}
		}
	}
	return found, nil
}

// Save flushes every dirty cached bucket and rewrites the metadata.
// Buckets flushed before a failure stay durable; the error propagates.
func (x *DiskIndex) Save() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return nil
	}
	return x.save()
}

// Close saves whatever work completed, then releases the cache. Idempotent,
// and safe after an explicit Save. Call it on error paths too: there is no
// all-or-nothing guarantee, only durability of the flushed prefix.
func (x *DiskIndex) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return nil
	}
	if err := x.save(); err != nil {
		return err
	}
	x.cache.release()
	x.closed = true
	return nil
}

func (x *DiskIndex) save() error {
	if err := x.cache.flushAll(); err != nil {
		return err
	}
	return x.writeMetadata()
}

// bucket returns the cached bucket for key, loading it from disk (or
// creating it empty) on a miss. Caller holds the lock.
func (x *DiskIndex) bucket(key bucketKey) (*Bucket, error) {
	if b, ok := x.cache.get(key); ok {
		return b, nil
	}

	b, err := x.loadBucket(key)
	if err != nil {
		return nil, err
	}
	if err := x.cache.put(key, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (x *DiskIndex) loadBucket(key bucketKey) (*Bucket, error) {
	f, err := os.Open(x.bucketPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return NewBucket(), nil
		}
		return nil, fmt.Errorf("failed to open bucket %d/%d: %w", key.stage, key.bucket, err)
	}
	defer f.Close()

	b, err := ReadBucket(f, x.params.Width)
	if err != nil {
		return nil, fmt.Errorf("bucket %d/%d: %w", key.stage, key.bucket, err)
	}
	return b, nil
}

func (x *DiskIndex) flushBucket(key bucketKey, b *Bucket) error {
	f, err := os.Create(x.bucketPath(key))
	if err != nil {
		return fmt.Errorf("failed to create bucket %d/%d: %w", key.stage, key.bucket, err)
	}
	if err := b.WriteTo(f, x.params.Width); err != nil {
		f.Close()
		return fmt.Errorf("failed to write bucket %d/%d: %w", key.stage, key.bucket, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close bucket %d/%d: %w", key.stage, key.bucket, err)
	}
	return nil
}

func (x *DiskIndex) bucketPath(key bucketKey) string {
	return filepath.Join(x.dir, fmt.Sprintf("bucket_%03d_%05d.bkt", key.stage, key.bucket))
}

func (x *DiskIndex) bucketFileExists(key bucketKey) bool {
	_, err := os.Stat(x.bucketPath(key))
	return err == nil
}

func (x *DiskIndex) writeMetadata() error {
	data, err := yaml.Marshal(x.params)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(x.dir, metadataFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write index metadata: %w", err)
	}
	return nil
}

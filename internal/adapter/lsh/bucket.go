package lsh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"genosketch/internal/adapter/minhash"
	"genosketch/internal/domain"
)

// Bucket is an unordered collection of sketches. The banding function keeps
// buckets small, so lookups inside one bucket are plain linear scans; the
// bucket itself does no hashing.
type Bucket struct {
	sketches []domain.Sketch
}

func NewBucket() *Bucket {
	return &Bucket{}
}

// Add inserts a sketch. A sketch whose label is already present replaces the
// existing one instead of duplicating it.
func (b *Bucket) Add(sketch domain.Sketch) {
	for i := range b.sketches {
		if b.sketches[i].Label == sketch.Label {
			b.sketches[i] = sketch
			return
		}
	}
	b.sketches = append(b.sketches, sketch)
}

func (b *Bucket) Size() int {
	return len(b.sketches)
}

// Sketches returns the bucket contents. Callers must not mutate the slice.
func (b *Bucket) Sketches() []domain.Sketch {
	return b.sketches
}

// After returns the sketches past the first i, for triangular all-pairs
// scans by tuning tools. Out-of-range i yields an empty slice.
func (b *Bucket) After(i int) []domain.Sketch {
	if i < 0 {
		i = 0
	}
	if i >= len(b.sketches) {
		return nil
	}
	return b.sketches[i:]
}

// KNearest is the brute-force neighbor scan used for small corpora: every
// sketch is scored against the query and the maxNeighbors closest within
// maxDist are returned, ascending by distance, ties broken by label.
func (b *Bucket) KNearest(query domain.Signature, maxNeighbors int, maxDist float64) []domain.Neighbor {
	neighbors := make([]domain.Neighbor, 0, len(b.sketches))
	for i := range b.sketches {
		d := minhash.Distance(query, b.sketches[i].Signature)
		if d > maxDist {
			continue
		}
		neighbors = append(neighbors, domain.Neighbor{
			Label:    b.sketches[i].Label,
			Group:    b.sketches[i].Group,
			Distance: d,
		})
	}
	sortNeighbors(neighbors)
	if len(neighbors) > maxNeighbors {
		neighbors = neighbors[:maxNeighbors]
	}
	return neighbors
}

// rename relabels a sketch in place, reporting whether the label was found.
func (b *Bucket) rename(oldLabel, newLabel string) bool {
	for i := range b.sketches {
		if b.sketches[i].Label == oldLabel {
			b.sketches[i].Rename(newLabel)
			return true
		}
	}
	return false
}

// The binary bucket layout is little-endian: a uint32 signature width, then
// one record per sketch of (uint16 label length + bytes, uint16 group length
// + bytes, uint32 signature length + that many uint64 values).

// WriteTo serializes the bucket.
func (b *Bucket) WriteTo(w io.Writer, width int) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, uint32(width)); err != nil {
		return err
	}

	for i := range b.sketches {
		s := &b.sketches[i]
		if err := writeString(bw, s.Label); err != nil {
			return err
		}
		if err := writeString(bw, s.Group); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(s.Signature))); err != nil {
			return err
		}
		for _, v := range s.Signature {
			if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// ReadBucket parses a serialized bucket. The stored width must match the
// index width and no signature may exceed it; violations mean the file does
// not belong to this index or got damaged, and surface as ErrCorruptBucket.
func ReadBucket(r io.Reader, width int) (*Bucket, error) {
	br := bufio.NewReader(r)

	var storedWidth uint32
	if err := binary.Read(br, binary.LittleEndian, &storedWidth); err != nil {
		return nil, fmt.Errorf("%w: missing width header: %v", ErrCorruptBucket, err)
	}
	if int(storedWidth) != width {
		return nil, fmt.Errorf("%w: stored width %d, index width %d", ErrCorruptBucket, storedWidth, width)
	}

	b := NewBucket()
	for {
		label, err := readString(br)
		if err == io.EOF {
			return b, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: bad label: %v", ErrCorruptBucket, err)
		}

		group, err := readString(br)
		if err != nil {
			return nil, fmt.Errorf("%w: bad group: %v", ErrCorruptBucket, err)
		}

		var sigLen uint32
		if err := binary.Read(br, binary.LittleEndian, &sigLen); err != nil {
			return nil, fmt.Errorf("%w: bad signature length: %v", ErrCorruptBucket, err)
		}
		if int(sigLen) > width {
			return nil, fmt.Errorf("%w: signature length %d exceeds width %d", ErrCorruptBucket, sigLen, width)
		}

		sig := make(domain.Signature, sigLen)
		for i := range sig {
			if err := binary.Read(br, binary.LittleEndian, &sig[i]); err != nil {
				return nil, fmt.Errorf("%w: truncated signature: %v", ErrCorruptBucket, err)
			}
		}

		b.Add(domain.Sketch{Label: label, Group: group, Signature: sig})
	}
}

func writeString(w io.Writer, s string) error {
	if len(s) > int(^uint16(0)) {
		return fmt.Errorf("string too long for bucket record: %d bytes", len(s))
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func sortNeighbors(neighbors []domain.Neighbor) {
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].Label < neighbors[j].Label
	})
}

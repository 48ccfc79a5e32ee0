package bench

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// ReadFvecs parses the little-endian fvecs format: a stream of records,
// each an int32 dimension followed by that many 32-bit little-endian
// floats. A partial trailing record (fewer bytes than the header promises)
// is dropped rather than erroring.
func ReadFvecs(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bench: open %s: %w", path, err)
	}
	defer f.Close()

	return readVecs(bufio.NewReader(f), func(r io.Reader, dim int) ([]float64, error) {
		raw := make([]byte, 4*dim)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, err
		}
		vec := make([]float64, dim)
		for i := 0; i < dim; i++ {
			bits := binary.LittleEndian.Uint32(raw[i*4:])
			vec[i] = float64(math.Float32frombits(bits))
		}
		return vec, nil
	})
}

// ReadIvecs parses the little-endian ivecs format: identical framing to
// fvecs, but each component is a 32-bit little-endian signed integer. Used
// by the harness for ground-truth neighbor-id lists.
func ReadIvecs(path string) ([][]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bench: open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var out [][]int32
	for {
		var dim int32
		if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return out, nil // partial trailing header: truncate gracefully
		}

		raw := make([]byte, 4*int(dim))
		if _, err := io.ReadFull(r, raw); err != nil {
			return out, nil // partial trailing record: truncate gracefully
		}

		row := make([]int32, dim)
		for i := range row {
			row[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		out = append(out, row)
	}
}

// readVecs holds the dim-prefixed record framing used by ReadFvecs; rows are
// decoded by decodeRow into float64. ReadIvecs repeats the same framing in
// its own loop for int32 rows.
func readVecs(r *bufio.Reader, decodeRow func(io.Reader, int) ([]float64, error)) ([][]float64, error) {
	var out [][]float64
	for {
		var dim int32
		if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return out, nil
		}

		row, err := decodeRow(r, int(dim))
		if err != nil {
			return out, nil // partial trailing record: truncate gracefully
		}
		out = append(out, row)
	}
}

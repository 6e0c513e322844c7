package maxmin

import (
	"fmt"
	"math"
	"strings"

	"github.com/sbinet/npyio/npy"
	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

const (
	SimilarityKey = "similarity_matrix"
	MaskKey       = "mask_matrix"
)

type numeric interface {
	~float64 | ~float32 | ~int64 | ~int32 | ~int16 | ~int8 | ~uint64 | ~uint32 | ~uint16 | ~uint8
}

// NewInstance checks the two matrices against each other and wraps them.
// Conflict entries must be 0 or 1 and similarities finite and non-negative.
func NewInstance(similarity, conflicts *mat.Dense) (*Instance, error) {
	if similarity == nil || conflicts == nil {
		return nil, fmt.Errorf("%w: similarity and mask matrices are required", ErrInvalidInput)
	}
	n, d := similarity.Dims()
	inst := &Instance{
		NumReviewers: n,
		NumPapers:    d,
		Similarity:   similarity,
		Conflicts:    conflicts,
	}
	err := errorCoalesce(
		inst.checkShape(),
		inst.checkSimilarity(),
		inst.checkConflicts(),
	)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) checkShape() error {
	if inst.NumReviewers == 0 || inst.NumPapers == 0 {
		return fmt.Errorf("%w: empty similarity matrix", ErrInvalidInput)
	}
	r, c := inst.Conflicts.Dims()
	if r != inst.NumReviewers || c != inst.NumPapers {
		return fmt.Errorf("%w: mask matrix is %dx%d, similarity matrix is %dx%d",
			ErrInvalidInput, r, c, inst.NumReviewers, inst.NumPapers)
	}
	return nil
}

func (inst *Instance) checkSimilarity() error {
	for i := range inst.NumReviewers {
		for j := range inst.NumPapers {
			v := inst.Similarity.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: similarity[%d][%d] = %v is not a finite non-negative number",
					ErrInvalidInput, i, j, v)
			}
		}
	}
	return nil
}

func (inst *Instance) checkConflicts() error {
	r, c := inst.Conflicts.Dims()
	for i := range r {
		for j := range c {
			if v := inst.Conflicts.At(i, j); v != 0 && v != 1 {
				return fmt.Errorf("%w: mask[%d][%d] = %v is not 0 or 1", ErrInvalidInput, i, j, v)
			}
		}
	}
	return nil
}

// LoadInstance reads an .npz archive holding similarity_matrix and
// mask_matrix.
func LoadInstance(filename string) (*Instance, error) {
	archive, err := npz.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	defer archive.Close()

	keys := make(map[string]string)
	for _, key := range archive.Keys() {
		keys[strings.TrimSuffix(key, ".npy")] = key
	}

	similarity, err := readMatrix(archive, keys, SimilarityKey)
	if err != nil {
		return nil, err
	}
	conflicts, err := readMatrix(archive, keys, MaskKey)
	if err != nil {
		return nil, err
	}
	return NewInstance(similarity, conflicts)
}

func readMatrix(archive *npz.Reader, keys map[string]string, name string) (*mat.Dense, error) {
	key, ok := keys[name]
	if !ok {
		return nil, fmt.Errorf("%w: archive has no %q array", ErrInvalidInput, name)
	}
	hdr := archive.Header(key)
	if hdr == nil {
		return nil, fmt.Errorf("%w: cannot read header of %q", ErrInvalidInput, name)
	}
	if len(hdr.Descr.Shape) != 2 {
		return nil, fmt.Errorf("%w: %q has shape %v, want a 2-D array", ErrInvalidInput, name, hdr.Descr.Shape)
	}
	if hdr.Descr.Fortran {
		return nil, fmt.Errorf("%w: %q is stored in Fortran order", ErrInvalidInput, name)
	}
	rows, cols := hdr.Descr.Shape[0], hdr.Descr.Shape[1]
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrInvalidInput, name)
	}

	data, err := readData(archive, key, hdr)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %v", ErrInvalidInput, name, err)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %q holds %d values, want %d", ErrInvalidInput, name, len(data), rows*cols)
	}
	return mat.NewDense(rows, cols, data), nil
}

func readData(archive *npz.Reader, key string, hdr *npy.Header) ([]float64, error) {
	switch strings.TrimLeft(hdr.Descr.Type, "<|=") {
	case "f8":
		return readAs[float64](archive, key)
	case "f4":
		return readAs[float32](archive, key)
	case "i8":
		return readAs[int64](archive, key)
	case "i4":
		return readAs[int32](archive, key)
	case "i2":
		return readAs[int16](archive, key)
	case "i1":
		return readAs[int8](archive, key)
	case "u8":
		return readAs[uint64](archive, key)
	case "u4":
		return readAs[uint32](archive, key)
	case "u2":
		return readAs[uint16](archive, key)
	case "u1":
		return readAs[uint8](archive, key)
	case "b1":
		var raw []bool
		if err := archive.Read(key, &raw); err != nil {
			return nil, err
		}
		data := make([]float64, len(raw))
		for i, v := range raw {
			if v {
				data[i] = 1
			}
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported dtype %q", hdr.Descr.Type)
}

func readAs[T numeric](archive *npz.Reader, key string) ([]float64, error) {
	var raw []T
	if err := archive.Read(key, &raw); err != nil {
		return nil, err
	}
	data := make([]float64, len(raw))
	for i, v := range raw {
		data[i] = float64(v)
	}
	return data, nil
}

// SaveInstance writes inst in the layout LoadInstance reads. Both arrays are
// stored as float64.
func SaveInstance(filename string, inst *Instance) error {
	archive, err := npz.Create(filename)
	if err != nil {
		return err
	}
	if err := archive.Write(SimilarityKey, inst.Similarity); err != nil {
		archive.Close()
		return err
	}
	if err := archive.Write(MaskKey, inst.Conflicts); err != nil {
		archive.Close()
		return err
	}
	return archive.Close()
}

package bench

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/cpu"
)

var (
	ErrCorruptDataset = errors.New("bench: corrupt dataset file")
	ErrNonFinite      = errors.New("bench: dataset contains non-finite value")
	ErrOverflow       = errors.New("bench: sum overflows float64")
)

// Generate returns n samples drawn uniformly from [low, high).
// The same seed always yields the same samples.
func Generate(n int, seed uint64, low, high float64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	out := make([]float64, n)
	span := high - low
	for i := range out {
		out[i] = low + rng.Float64()*span
	}
	return out
}

// CheckFinite returns ErrNonFinite for the first NaN or Inf in x.
func CheckFinite(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: index %d is %v", ErrNonFinite, i, v)
		}
	}
	return nil
}

// Save writes x to path as consecutive little-endian IEEE-754 float64 values.
func Save(path string, x []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriterSize(f, 1<<16)
	var buf [8]byte
	for _, v := range x {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		if _, err := w.Write(buf[:]); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Dataset is a sample file opened by Open.
type Dataset struct {
	f       *os.File
	data    mmap.MMap
	samples []float64
}

// Open maps a file written by Save read-only. On little-endian hosts the
// samples are a view into the mapping and stay valid until Close; elsewhere
// they are decoded into memory.
func Open(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size()%8 != 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %s has %d bytes, not a multiple of 8", ErrCorruptDataset, path, info.Size())
	}
	if info.Size() == 0 {
		// mmap rejects zero-length mappings.
		return &Dataset{f: f}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	d := &Dataset{f: f, data: m}
	if !cpu.IsBigEndian {
		d.samples = unsafe.Slice((*float64)(unsafe.Pointer(&m[0])), len(m)/8)
	} else {
		d.samples = make([]float64, len(m)/8)
		for i := range d.samples {
			d.samples[i] = math.Float64frombits(binary.LittleEndian.Uint64(m[i*8:]))
		}
	}
	return d, nil
}

// Samples returns the dataset contents. Callers must not modify the slice.
func (d *Dataset) Samples() []float64 {
	return d.samples
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.samples)
}

// Close unmaps the file and closes it.
func (d *Dataset) Close() error {
	d.samples = nil
	if d.data != nil {
		if err := d.data.Unmap(); err != nil {
			return err
		}
		d.data = nil
	}
	if d.f != nil {
		err := d.f.Close()
		d.f = nil
		return err
	}
	return nil
}

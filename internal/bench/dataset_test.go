package bench

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"unsafe"

	"github.com/cwbudde/algo-mean/internal/testutil"
	"golang.org/x/sys/cpu"
)

func TestGenerateDeterministicAndInRange(t *testing.T) {
	a := Generate(10_000, 42, 20, 100)
	b := Generate(10_000, 42, 20, 100)
	if !slices.Equal(a, b) {
		t.Fatal("same seed produced different samples")
	}
	testutil.RequireFinite(t, a)
	for i, v := range a {
		if v < 20 || v >= 100 {
			t.Fatalf("index %d: %v outside [20, 100)", i, v)
		}
	}
	if c := Generate(10_000, 43, 20, 100); slices.Equal(a, c) {
		t.Fatal("different seeds produced identical samples")
	}
}

func TestCheckFinite(t *testing.T) {
	if err := CheckFinite([]float64{1, 2, 3}); err != nil {
		t.Fatalf("CheckFinite(finite) = %v", err)
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := CheckFinite([]float64{1, bad, 3}); !errors.Is(err, ErrNonFinite) {
			t.Fatalf("CheckFinite(%v) = %v, want ErrNonFinite", bad, err)
		}
	}
}

func TestSaveOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.f64")
	want := Generate(1_003, 7, -50, 50)

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(len(want)*8) {
		t.Fatalf("file size = %d, want %d", info.Size(), len(want)*8)
	}

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	if d.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", d.Len(), len(want))
	}
	if !slices.Equal(d.Samples(), want) {
		t.Fatal("mapped samples differ from saved samples")
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.f64")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if d.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", d.Len())
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.f64")
	if err := os.WriteFile(path, make([]byte, 12), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); !errors.Is(err, ErrCorruptDataset) {
		t.Fatalf("Open() error = %v, want ErrCorruptDataset", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Open() error = %v, want os.ErrNotExist", err)
	}
}

func TestCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.f64")
	if err := Save(path, []float64{1, 2}); err != nil {
		t.Fatal(err)
	}
	d, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestOpenMapsInPlaceOnLittleEndian(t *testing.T) {
	if cpu.IsBigEndian {
		t.Skip("big-endian hosts decode into a copy")
	}

	path := filepath.Join(t.TempDir(), "view.f64")
	if err := Save(path, []float64{1.5, -2.25, 3}); err != nil {
		t.Fatal(err)
	}
	d, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if got, want := unsafe.Pointer(&d.Samples()[0]), unsafe.Pointer(&d.data[0]); got != want {
		t.Fatal("samples are a copy, want a view into the mapping")
	}
	if !slices.Equal(d.Samples(), []float64{1.5, -2.25, 3}) {
		t.Fatalf("Samples() = %v", d.Samples())
	}
}

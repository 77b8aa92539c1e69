package wire

import (
	"errors"
	"testing"
)

// buildPair writes a root record holding one vector of two records, each
// with a single string field.
func buildPair(t *testing.T, a, b string) []byte {
	t.Helper()
	bld := NewBuilder()

	sa := bld.CreateString(a)
	bld.StartRecord(1)
	bld.Field(0, sa)
	ra := bld.EndRecord()

	sb := bld.CreateString(b)
	bld.StartRecord(1)
	bld.Field(0, sb)
	rb := bld.EndRecord()

	vec := bld.OffsetVector([]Offset{ra, rb})
	bld.StartRecord(1)
	bld.Field(0, vec)
	root := bld.EndRecord()
	return bld.Finish(root)
}

// readPair walks every record of a buildPair buffer under Guard, the
// way a decoder does, returning the strings it read.
func readPair(b []byte) (vals []string, err error) {
	defer Guard(&err)
	root, err := RootRecord(b)
	if err != nil {
		return nil, err
	}
	vec, err := root.RecordVectorField(0)
	if err != nil {
		return nil, err
	}
	for i := 0; i < vec.Len(); i++ {
		rec, err := vec.At(i)
		if err != nil {
			return nil, err
		}
		s, _ := rec.StringField(0)
		vals = append(vals, s)
	}
	return vals, nil
}

func TestRecordRoundtrip(t *testing.T) {
	buf := buildPair(t, "first", "second")

	root, err := RootRecord(buf)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	vec, err := root.RecordVectorField(0)
	if err != nil {
		t.Fatalf("vector: %v", err)
	}
	if vec.Len() != 2 {
		t.Fatalf("vector len = %d, want 2", vec.Len())
	}
	want := []string{"first", "second"}
	for i, w := range want {
		rec, err := vec.At(i)
		if err != nil {
			t.Fatalf("at %d: %v", i, err)
		}
		s, ok := rec.StringField(0)
		if !ok || s != w {
			t.Fatalf("element %d = %q (ok=%v), want %q", i, s, ok, w)
		}
	}
}

func TestAbsentFields(t *testing.T) {
	bld := NewBuilder()
	bld.StartRecord(2)
	root := bld.EndRecord()
	buf := bld.Finish(root)

	rec, err := RootRecord(buf)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if s, ok := rec.StringField(0); ok {
		t.Fatalf("absent string read as %q", s)
	}
	vec, err := rec.RecordVectorField(1)
	if err != nil {
		t.Fatalf("vector: %v", err)
	}
	if vec.Len() != 0 {
		t.Fatalf("absent vector len = %d, want 0", vec.Len())
	}
}

func TestRootRecordShortBuffers(t *testing.T) {
	for _, buf := range [][]byte{nil, {}, {1}, {0, 0, 0}, {4, 0, 0, 0}} {
		if _, err := RootRecord(buf); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("RootRecord(%v) err = %v, want ErrOutOfBounds", buf, err)
		}
	}
}

func TestRootRecordOffsetBeyondBuffer(t *testing.T) {
	buf := []byte{0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0}
	if _, err := RootRecord(buf); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestVectorAtRange(t *testing.T) {
	buf := buildPair(t, "a", "b")
	root, err := RootRecord(buf)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	vec, err := root.RecordVectorField(0)
	if err != nil {
		t.Fatalf("vector: %v", err)
	}
	for _, i := range []int{-1, 2, 100} {
		if _, err := vec.At(i); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("At(%d) err = %v, want ErrOutOfBounds", i, err)
		}
	}
}

func TestGuardConvertsTruncationPanics(t *testing.T) {
	buf := buildPair(t, "first", "second")

	if vals, err := readPair(buf); err != nil || len(vals) != 2 {
		t.Fatalf("intact buffer: vals = %v, err = %v", vals, err)
	}
	// Chop the tail off so string reads run past the end.
	failed := false
	for cut := len(buf) - 1; cut >= minBufferSize; cut-- {
		if _, err := readPair(buf[:cut]); err != nil {
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("cut %d: err = %v, want ErrOutOfBounds", cut, err)
			}
			failed = true
		}
	}
	if !failed {
		t.Fatalf("no truncation produced an error")
	}
}

func TestTruncationDetectedWithSpareCapacity(t *testing.T) {
	buf := buildPair(t, "first", "second")
	want := []string{"first", "second"}

	// Truncated buffers often arrive with zeroed capacity beyond len,
	// as os.ReadFile and io.ReadAll allocate. Reads past len must fail
	// rather than wander into the spare bytes: a cut either errors or
	// still reads the original values, never silently altered ones.
	failed := false
	for cut := len(buf) - 1; cut >= minBufferSize; cut-- {
		tr := make([]byte, cut, len(buf)+64)
		copy(tr, buf[:cut])
		vals, err := readPair(tr)
		if err != nil {
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("cut %d: err = %v, want ErrOutOfBounds", cut, err)
			}
			failed = true
			continue
		}
		for i, v := range vals {
			if v != want[i] {
				t.Fatalf("cut %d silently read %q, want %q or an error", cut, v, want[i])
			}
		}
	}
	if !failed {
		t.Fatalf("no truncation produced an error")
	}
}

func TestVectorLengthClaimBeyondBuffer(t *testing.T) {
	buf := buildPair(t, "a", "b")
	root, err := RootRecord(buf)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	vec, err := root.RecordVectorField(0)
	if err != nil {
		t.Fatalf("vector: %v", err)
	}
	// Smash the vector's length word with a claim no buffer this size
	// can hold.
	for i := 0; i < 4; i++ {
		buf[int(vec.pos)-4+i] = 0xff
	}
	if _, err := root.RecordVectorField(0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("hostile length err = %v, want ErrOutOfBounds", err)
	}
}

func TestGuardRethrowsForeignPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("foreign panic was swallowed")
		}
	}()
	func() (err error) {
		defer Guard(&err)
		panic("not a runtime error")
	}()
}

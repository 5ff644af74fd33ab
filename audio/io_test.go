package audio

import "testing"

func TestIOWindow(t *testing.T) {
	io := NewIO(2, 8)
	w := io.Window(2, 5)
	n := 0
	for w.Next() {
		w.AddStereo(1, 2)
		n++
	}
	if n != 3 {
		t.Fatalf("window walked %d frames, want 3", n)
	}
	for i := 0; i < 8; i++ {
		want := float32(0)
		if i >= 2 && i < 5 {
			want = 1
		}
		if io.Out(0)[i] != want || io.Out(1)[i] != 2*want {
			t.Errorf("frame %d = %v, %v", i, io.Out(0)[i], io.Out(1)[i])
		}
	}

	// the cursor rewinds so the block can be walked again
	n = 0
	for w.Next() {
		n++
	}
	if n != 3 {
		t.Errorf("second walk %d frames, want 3", n)
	}
}

func TestIOMono(t *testing.T) {
	io := NewIO(1, 2)
	for io.Next() {
		io.AddStereo(1, 3)
	}
	if io.Out(0)[0] != 2 || io.Out(0)[1] != 2 {
		t.Errorf("mono fold = %v", io.Out(0))
	}
}

func TestIOInterleave(t *testing.T) {
	io := WrapIO([][]float32{{1, 2, 3}, {4, 5, 6}})
	dst := make([]float32, 6)
	if n := io.Interleave(dst); n != 6 {
		t.Fatalf("Interleave wrote %d", n)
	}
	want := []float32{1, 4, 2, 5, 3, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("interleaved = %v, want %v", dst, want)
		}
	}
	io.Zero()
	if Buffer(io.Out(1)).Peak() != 0 {
		t.Error("Zero left samples behind")
	}
}

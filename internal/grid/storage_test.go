package grid

import "testing"

func newTestStorage(t *testing.T, nx, ny int) *Storage {
	t.Helper()
	ew, eh := EtaShape(nx, ny)
	uw, uh := UShape(nx, ny)
	vw, vh := VShape(nx, ny)
	eta := make([]float32, ew*eh)
	for i := range eta {
		eta[i] = float32(i)
	}
	s, err := NewStorage(nx, ny, make([]float32, ew*eh), eta, make([]float32, uw*uh), make([]float32, vw*vh))
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	return s
}

func TestStorageShapes(t *testing.T) {
	s := newTestStorage(t, 4, 3)
	prev, curr := s.Eta()
	if prev.Width != 6 || prev.Height != 5 || curr.Width != 6 || curr.Height != 5 {
		t.Fatalf("eta shape %dx%d, want 6x5", prev.Width, prev.Height)
	}
	hu, _ := s.HU()
	if hu.Width != 5 || hu.Height != 5 {
		t.Fatalf("hu shape %dx%d, want 5x5", hu.Width, hu.Height)
	}
	hv, _ := s.HV()
	if hv.Width != 6 || hv.Height != 4 {
		t.Fatalf("hv shape %dx%d, want 6x4", hv.Width, hv.Height)
	}
	if prev == curr {
		t.Fatalf("time levels share a buffer")
	}
	if prev.At(2, 1) != curr.At(2, 1) {
		t.Fatalf("both levels should start from the initial data")
	}
}

func TestStorageRejectsBadShape(t *testing.T) {
	ew, eh := EtaShape(4, 4)
	_, err := NewStorage(4, 4, make([]float32, ew*eh), make([]float32, ew*eh), make([]float32, 3), make([]float32, ew*5))
	if err == nil {
		t.Fatalf("expected shape error")
	}
}

func TestSwapRelabelsAllFieldsTogether(t *testing.T) {
	s := newTestStorage(t, 3, 3)
	etaPrev, etaCurr := s.Eta()
	huPrev, huCurr := s.HU()
	hvPrev, hvCurr := s.HV()

	for k := 1; k <= 5; k++ {
		s.Swap()
		ep, ec := s.Eta()
		up, uc := s.HU()
		vp, vc := s.HV()
		odd := k%2 == 1
		if odd != (ep == etaCurr && ec == etaPrev) {
			t.Fatalf("eta labels wrong after %d swaps", k)
		}
		if odd != (up == huCurr && uc == huPrev) {
			t.Fatalf("hu labels wrong after %d swaps", k)
		}
		if odd != (vp == hvCurr && vc == hvPrev) {
			t.Fatalf("hv labels wrong after %d swaps", k)
		}
		if s.Swaps() != uint64(k) {
			t.Fatalf("Swaps() = %d, want %d", s.Swaps(), k)
		}
	}
}

func TestDownloadStripsHalo(t *testing.T) {
	s := newTestStorage(t, 4, 3)
	snap := s.Download(true)
	if snap.Eta.Width != 4 || snap.Eta.Height != 3 {
		t.Fatalf("eta interior %dx%d, want 4x3", snap.Eta.Width, snap.Eta.Height)
	}
	_, curr := s.Eta()
	if snap.Eta.At(0, 0) != curr.At(1, 1) || snap.Eta.At(3, 2) != curr.At(4, 3) {
		t.Fatalf("interior crop misaligned")
	}
	if snap.HU.Width != 5 || snap.HU.Height != 3 || snap.HV.Width != 4 || snap.HV.Height != 4 {
		t.Fatalf("momentum interior shapes hu %dx%d hv %dx%d", snap.HU.Width, snap.HU.Height, snap.HV.Width, snap.HV.Height)
	}

	full := s.Download(false)
	full.Eta.Set(1, 1, -1)
	if curr.At(1, 1) == -1 {
		t.Fatalf("download must copy, not alias")
	}
}

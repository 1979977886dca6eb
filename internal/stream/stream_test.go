package stream

import (
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"ctcs/internal/grid"
)

func TestFloat16RoundTrip(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{-2, -2},
		{0.5, 0.5},
		{65504, 65504},
		{1e-9, 0},
		{float32(math.Inf(1)), float32(math.Inf(1))},
		{1e6, float32(math.Inf(1))},
	}
	for _, tc := range cases {
		bits := make([]uint16, 1)
		out := make([]float32, 1)
		EncodeFloat16(bits, []float32{tc.in})
		DecodeFloat16(out, bits)
		if out[0] != tc.want {
			t.Fatalf("round trip of %v = %v, want %v", tc.in, out[0], tc.want)
		}
	}

	bits := make([]uint16, 1)
	out := make([]float32, 1)
	EncodeFloat16(bits, []float32{float32(math.NaN())})
	DecodeFloat16(out, bits)
	if !math.IsNaN(float64(out[0])) {
		t.Fatalf("NaN did not survive encoding: %v", out[0])
	}
}

func TestFrameStripsHalo(t *testing.T) {
	nx, ny := 3, 2
	eta := grid.NewField(nx+2, ny+2)
	eta.Fill(100)
	for y := 1; y <= ny; y++ {
		for x := 1; x <= nx; x++ {
			eta.Set(x, y, float32(x))
		}
	}
	f := NewFrame(10, 3, eta, nx, ny, 2, 5)
	if len(f.Eta) != nx*ny {
		t.Fatalf("frame carries %d cells, want %d", len(f.Eta), nx*ny)
	}
	if f.Min != 1 || f.Max != 3 {
		t.Fatalf("min/max = %v/%v", f.Min, f.Max)
	}
	if f.Volume != 12*10 {
		t.Fatalf("volume = %v, want 120", f.Volume)
	}
	back := f.Field()
	if back.At(2, 1) != 3 {
		t.Fatalf("decoded (2,1) = %v", back.At(2, 1))
	}
}

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestHubBroadcastsFrames(t *testing.T) {
	h := NewHub()
	conn := dial(t, h)

	eta := grid.NewField(4, 4)
	eta.Set(1, 1, 0.25)
	if n := h.Broadcast(NewFrame(90, 1, eta, 2, 2, 1, 1)); n != 1 {
		t.Fatalf("broadcast reached %d clients, want 1", n)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Frame
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if got.Type != "frame" || got.Time != 90 || got.NX != 2 {
		t.Fatalf("unexpected frame header %+v", got)
	}
	if v := got.Field().At(0, 0); v != 0.25 {
		t.Fatalf("decoded eta = %v, want 0.25", v)
	}
}

func TestHubQueuesCommands(t *testing.T) {
	h := NewHub()
	conn := dial(t, h)

	if err := conn.WriteJSON(Command{Type: "bump", X: 3, Y: 4, Radius: 2, Amplitude: 0.5}); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case cmd := <-h.Commands():
		if cmd.Type != "bump" || cmd.X != 3 || cmd.Y != 4 || cmd.Amplitude != 0.5 {
			t.Fatalf("unexpected command %+v", cmd)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("command never arrived")
	}
}

package secretstore

import (
	"bytes"
	"encoding/base64"
	"path/filepath"
	"testing"
)

func TestParseKey(t *testing.T) {
	raw := bytes.Repeat([]byte{0xab}, 32)
	hex32 := "abababababababababababababababababababababababababababababababab"

	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr bool
	}{
		{name: "empty means no encryption", in: "", want: nil},
		{name: "hex", in: hex32, want: raw},
		{name: "hex with 0x prefix", in: "0x" + hex32, want: raw},
		{name: "base64", in: base64.StdEncoding.EncodeToString(raw), want: raw},
		{name: "hex too short", in: "abab", wantErr: true},
		{name: "base64 wrong length", in: base64.StdEncoding.EncodeToString(raw[:16]), wantErr: true},
		{name: "garbage", in: "!!not-a-key!!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("ParseKey() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKey() error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ParseKey() = %x, want %x", got, tt.want)
			}
		})
	}
}

type snapshot struct {
	PrivateKey string `json:"privateKey"`
	Address    string `json:"address"`
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(OpenOptions{Path: filepath.Join(t.TempDir(), "secrets")})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)

	var missing snapshot
	found, err := s.LoadSnapshot(&missing)
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	if found {
		t.Error("fresh store must have no snapshot")
	}

	want := snapshot{PrivateKey: "0xkey", Address: "0xaddr"}
	if err := s.SaveSnapshot(want); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}

	var got snapshot
	found, err = s.LoadSnapshot(&got)
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	if !found || got != want {
		t.Errorf("LoadSnapshot() = %+v, %v; want %+v, true", got, found, want)
	}
}

func TestDeleteSnapshot(t *testing.T) {
	s := openTestStore(t)

	// Deleting before any save is a no-op.
	if err := s.DeleteSnapshot(); err != nil {
		t.Fatalf("DeleteSnapshot() on empty store: %v", err)
	}

	if err := s.SaveSnapshot(snapshot{Address: "0xaddr"}); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}
	if err := s.DeleteSnapshot(); err != nil {
		t.Fatalf("DeleteSnapshot() error: %v", err)
	}

	var got snapshot
	found, err := s.LoadSnapshot(&got)
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	if found {
		t.Error("deleted snapshot must not load")
	}
}

func TestRequiresPath(t *testing.T) {
	if _, err := Open(OpenOptions{}); err == nil {
		t.Error("Open() without a path should fail")
	}
}

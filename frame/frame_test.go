package frame

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lzcast/lzss"
)

func testData() []byte {
	words := strings.Fields("the rays of light are refracted and reflected by bodies of every colour")
	r := rand.New(rand.NewSource(1))
	var b bytes.Buffer
	for b.Len() < 30000 {
		b.WriteString(words[r.Intn(len(words))])
		b.WriteByte(' ')
	}
	return b.Bytes()
}

func TestRoundTrip(t *testing.T) {
	data := testData()
	for _, kind := range []Kind{Classic, Slide, Project} {
		for _, z := range []bool{false, true} {
			var f bytes.Buffer
			opts := Options{Kind: kind, Zstd: z}
			if err := Compress(&f, bytes.NewReader(data), opts); err != nil {
				t.Fatalf("%s zstd=%v: %v", kind, z, err)
			}

			var out bytes.Buffer
			hdr, err := Decompress(&out, bytes.NewReader(f.Bytes()))
			if err != nil {
				t.Fatalf("%s zstd=%v: %v", kind, z, err)
			}
			if !bytes.Equal(out.Bytes(), data) {
				t.Fatalf("%s zstd=%v: decompressed output does not match", kind, z)
			}

			want := Header{
				Kind:    kind,
				Zstd:    z,
				Config:  lzss.DefaultConfig,
				Size:    uint64(len(data)),
				Payload: uint64(f.Len() - headerSize),
			}
			hdr.Checksum = 0
			if diff := cmp.Diff(want, hdr); diff != "" {
				t.Errorf("%s zstd=%v: header (-want +got):\n%s", kind, z, diff)
			}
		}
	}
}

func TestConfigCarried(t *testing.T) {
	data := testData()
	cfg := lzss.Config{OffsetBits: 9, LengthBits: 3, SlideBits: 3, Placeholder: ' '}
	var f bytes.Buffer
	if err := Compress(&f, bytes.NewReader(data), Options{Kind: Project, Codec: lzss.Codec{Config: cfg}}); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	hdr, err := Decompress(&out, &f)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.Config != cfg.WithDefaults() {
		t.Errorf("got config %+v, want %+v", hdr.Config, cfg.WithDefaults())
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatal("decompressed output does not match")
	}
}

func TestEmpty(t *testing.T) {
	var f, out bytes.Buffer
	if err := Compress(&f, strings.NewReader(""), Options{Kind: Project}); err != nil {
		t.Fatal(err)
	}
	if f.Len() != headerSize {
		t.Errorf("empty frame is %d bytes, want %d", f.Len(), headerSize)
	}
	if _, err := Decompress(&out, &f); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("got %d bytes", out.Len())
	}
}

func TestCorrupt(t *testing.T) {
	data := testData()
	var f bytes.Buffer
	if err := Compress(&f, bytes.NewReader(data), Options{}); err != nil {
		t.Fatal(err)
	}
	good := f.Bytes()

	tests := []struct {
		name   string
		modify func(b []byte) []byte
		want   error
	}{
		{"magic", func(b []byte) []byte { b[0] = 'X'; return b }, ErrBadMagic},
		{"short", func(b []byte) []byte { return b[:10] }, ErrBadMagic},
		{"version", func(b []byte) []byte { b[4] = 9; return b }, ErrVersion},
		{"kind", func(b []byte) []byte { b[5] = 7; return b }, ErrUnknownKind},
		{"config", func(b []byte) []byte { b[7] = 30; return b }, lzss.ErrInvalidArgument},
		{"buffersize", func(b []byte) []byte { copy(b[12:16], []byte{0xff, 0xff, 0xff, 0xff}); return b }, lzss.ErrInvalidArgument},
		{"checksum", func(b []byte) []byte { b[24] ^= 0xff; return b }, ErrChecksum},
		{"size", func(b []byte) []byte { b[16]++; return b }, ErrSize},
	}
	for _, tt := range tests {
		b := tt.modify(append([]byte(nil), good...))
		var out bytes.Buffer
		_, err := Decompress(&out, bytes.NewReader(b))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

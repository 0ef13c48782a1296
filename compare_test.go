package lzss

import (
	"bytes"
	"io"
	"io/ioutil"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// The benchmarks below measure the other common LZ77 formats on the same
// text, for comparison with BenchmarkEncode and BenchmarkPack.

func benchmarkWriter(b *testing.B, newWriter func(w io.Writer) io.WriteCloser) {
	b.StopTimer()
	b.ReportAllocs()
	data := sampleText(1 << 18)
	b.SetBytes(int64(len(data)))

	buf := new(bytes.Buffer)
	w := newWriter(buf)
	w.Write(data)
	w.Close()
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		w := newWriter(ioutil.Discard)
		w.Write(data)
		w.Close()
	}
}

func BenchmarkPack(b *testing.B) {
	b.StopTimer()
	b.ReportAllocs()
	data := sampleText(1 << 18)
	b.SetBytes(int64(len(data)))

	buf := new(bytes.Buffer)
	if err := Pack(buf, bytes.NewReader(data)); err != nil {
		b.Fatal(err)
	}
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		Pack(ioutil.Discard, bytes.NewReader(data))
	}
}

func BenchmarkEncodeGolangSnappy(b *testing.B) {
	benchmarkWriter(b, func(w io.Writer) io.WriteCloser {
		return snappy.NewBufferedWriter(w)
	})
}

func BenchmarkEncodeLZ4(b *testing.B) {
	benchmarkWriter(b, func(w io.Writer) io.WriteCloser {
		return lz4.NewWriter(w)
	})
}

func BenchmarkEncodeZstd(b *testing.B) {
	benchmarkWriter(b, func(w io.Writer) io.WriteCloser {
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			b.Fatal(err)
		}
		return enc
	})
}

func BenchmarkEncodeBrotli(b *testing.B) {
	benchmarkWriter(b, func(w io.Writer) io.WriteCloser {
		return brotli.NewWriterLevel(w, 1)
	})
}

// TestRatioAgainstSnappy checks that the classic stream is in the same
// range as a production LZ77 format on text.
func TestRatioAgainstSnappy(t *testing.T) {
	data := sampleText(1 << 16)
	ours := encode(t, &Codec{}, data)
	theirs := snappy.Encode(nil, data)
	if len(ours) > 2*len(theirs) {
		t.Fatalf("classic stream is %d bytes, snappy block is %d", len(ours), len(theirs))
	}

	decoded, err := snappy.Decode(nil, theirs)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, decode(t, &Codec{}, ours)) {
		t.Fatal("snappy and lzss disagree on the decoded text")
	}
}

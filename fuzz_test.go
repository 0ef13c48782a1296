package lzss

import (
	"bytes"
	"testing"
)

func FuzzPipeline(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("abcabcabc"))
	f.Add([]byte("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~"))
	f.Add(sampleText(500))
	f.Add(randomBytes(300, 7))

	c := &Codec{Config: small}
	f.Fuzz(func(t *testing.T, data []byte) {
		classic := encode(t, c, data)
		if got := decode(t, c, classic); !bytes.Equal(got, data) {
			t.Fatal("Decode did not restore the input")
		}

		var packed, unpacked bytes.Buffer
		if err := c.Pack(&packed, bytes.NewReader(data)); err != nil {
			t.Fatal(err)
		}
		if err := c.Unpack(&unpacked, &packed); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(unpacked.Bytes(), data) {
			t.Fatal("Unpack did not restore the input")
		}
	})
}

// FuzzDecode feeds arbitrary bytes to every reading stage. Malformed input
// may be rejected, but must not panic.
func FuzzDecode(f *testing.F) {
	f.Add([]byte{0x30, 0x98, 0x8c})
	f.Add(encode(f, &Codec{Config: small}, sampleText(200)))

	c := &Codec{Config: small}
	f.Fuzz(func(t *testing.T, stream []byte) {
		var out bytes.Buffer
		c.Decode(&out, bytes.NewReader(stream))
		out.Reset()
		c.AddSlide(&out, bytes.NewReader(stream))
		out.Reset()
		c.ForwardCast(&out, bytes.NewReader(stream))
		out.Reset()
		c.ReverseCast(&out, bytes.NewReader(stream))
	})
}

// Package frame stores an lzss token stream together with the parameters it
// was written with and a checksum of the uncompressed content.
//
// A frame is laid out as:
//
//	magic       "LZCF"
//	version     1 byte
//	kind        1 byte (Classic, Slide or Project)
//	flags       1 byte (bit 0: payload is wrapped in zstd)
//	OffsetBits, LengthBits, SlideBits, MaxUncoded, Placeholder   1 byte each
//	BufferSize  uint32
//	size        uint64, length of the uncompressed content
//	checksum    uint32, xxHash32 of the uncompressed content
//	payload     uint64 length, then the payload bytes
//
// All integers are little-endian.
package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/lzcast/lzss"
	"github.com/pierrec/xxHash/xxHash32"
)

const (
	magic      = "LZCF"
	version    = 1
	headerSize = 4 + 3 + 5 + 4 + 8 + 4 + 8

	flagZstd = 1 << 0
)

var (
	ErrBadMagic    = errors.New("frame: not an lzcast frame")
	ErrVersion     = errors.New("frame: unsupported version")
	ErrChecksum    = errors.New("frame: content checksum mismatch")
	ErrSize        = errors.New("frame: content size mismatch")
	ErrUnknownKind = errors.New("frame: unknown stream kind")
)

// Kind is the token alphabet of the payload.
type Kind uint8

const (
	Classic Kind = iota
	Slide
	Project
)

func (k Kind) String() string {
	switch k {
	case Classic:
		return "classic"
	case Slide:
		return "slide"
	case Project:
		return "project"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// A Header describes a frame.
type Header struct {
	Kind     Kind
	Zstd     bool
	Config   lzss.Config
	Size     uint64
	Checksum uint32
	Payload  uint64
}

func (h *Header) appendTo(dst []byte) []byte {
	dst = append(dst, magic...)
	var flags byte
	if h.Zstd {
		flags |= flagZstd
	}
	c := h.Config
	dst = append(dst, version, byte(h.Kind), flags,
		c.OffsetBits, c.LengthBits, c.SlideBits, byte(c.MaxUncoded), c.Placeholder)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(c.BufferSize))
	dst = binary.LittleEndian.AppendUint64(dst, h.Size)
	dst = binary.LittleEndian.AppendUint32(dst, h.Checksum)
	dst = binary.LittleEndian.AppendUint64(dst, h.Payload)
	return dst
}

// ReadHeader reads and checks a frame header.
func ReadHeader(r io.Reader) (Header, error) {
	var b [headerSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, fmt.Errorf("%w: short header", ErrBadMagic)
		}
		return Header{}, err
	}
	if string(b[:4]) != magic {
		return Header{}, ErrBadMagic
	}
	if b[4] != version {
		return Header{}, fmt.Errorf("%w: %d", ErrVersion, b[4])
	}
	h := Header{
		Kind: Kind(b[5]),
		Zstd: b[6]&flagZstd != 0,
		Config: lzss.Config{
			OffsetBits:  b[7],
			LengthBits:  b[8],
			SlideBits:   b[9],
			MaxUncoded:  int(b[10]),
			Placeholder: b[11],
			BufferSize:  int(binary.LittleEndian.Uint32(b[12:])),
		},
		Size:     binary.LittleEndian.Uint64(b[16:]),
		Checksum: binary.LittleEndian.Uint32(b[24:]),
		Payload:  binary.LittleEndian.Uint64(b[28:]),
	}
	if h.Kind > Project {
		return Header{}, fmt.Errorf("%w: %d", ErrUnknownKind, h.Kind)
	}
	if err := h.Config.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Options control Compress.
type Options struct {
	// Kind selects how far down the pipeline the payload goes.
	// The zero value is Classic.
	Kind Kind

	// Zstd wraps the payload in a zstd stream.
	Zstd bool

	Codec lzss.Codec
}

// Compress reads src to the end and writes it to dst as a single frame.
func Compress(dst io.Writer, src io.Reader, opts Options) error {
	if opts.Kind > Project {
		return fmt.Errorf("%w: %d", ErrUnknownKind, opts.Kind)
	}
	cfg := opts.Codec.Config.WithDefaults()
	if cfg.MaxUncoded > 0xff {
		return fmt.Errorf("%w: MaxUncoded %d does not fit a frame header", lzss.ErrInvalidArgument, cfg.MaxUncoded)
	}
	codec := opts.Codec
	codec.Config = cfg

	h := xxHash32.New(0)
	cr := &countingReader{r: io.TeeReader(src, h)}

	var classic bytes.Buffer
	if err := codec.Encode(&classic, cr); err != nil {
		return err
	}

	payload := &classic
	if opts.Kind >= Slide {
		var slid bytes.Buffer
		if err := codec.AddSlide(&slid, &classic); err != nil {
			return err
		}
		payload = &slid
	}
	if opts.Kind >= Project {
		var proj bytes.Buffer
		if err := codec.ForwardCast(&proj, payload); err != nil {
			return err
		}
		payload = &proj
	}
	if opts.Zstd {
		var z bytes.Buffer
		enc, err := zstd.NewWriter(&z)
		if err != nil {
			return err
		}
		if _, err := payload.WriteTo(enc); err != nil {
			enc.Close()
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		payload = &z
	}

	hdr := Header{
		Kind:     opts.Kind,
		Zstd:     opts.Zstd,
		Config:   cfg,
		Size:     uint64(cr.n),
		Checksum: h.Sum32(),
		Payload:  uint64(payload.Len()),
	}
	if _, err := dst.Write(hdr.appendTo(make([]byte, 0, headerSize))); err != nil {
		return err
	}
	_, err := payload.WriteTo(dst)
	return err
}

// Decompress reads one frame from src, writes the uncompressed content to
// dst and verifies its size and checksum.
func Decompress(dst io.Writer, src io.Reader) (Header, error) {
	hdr, err := ReadHeader(src)
	if err != nil {
		return hdr, err
	}

	var payload io.Reader = io.LimitReader(src, int64(hdr.Payload))
	if hdr.Zstd {
		dec, err := zstd.NewReader(payload)
		if err != nil {
			return hdr, err
		}
		defer dec.Close()
		payload = dec
	}

	codec := lzss.Codec{Config: hdr.Config}
	h := xxHash32.New(0)
	cw := &countingWriter{w: io.MultiWriter(dst, h)}

	switch hdr.Kind {
	case Classic:
		err = codec.Decode(cw, payload)
	case Slide:
		var proj bytes.Buffer
		if err = codec.ForwardCast(&proj, payload); err == nil {
			err = codec.Unpack(cw, &proj)
		}
	case Project:
		err = codec.Unpack(cw, payload)
	}
	if err != nil {
		return hdr, err
	}

	if uint64(cw.n) != hdr.Size {
		return hdr, fmt.Errorf("%w: got %d bytes, want %d", ErrSize, cw.n, hdr.Size)
	}
	if sum := h.Sum32(); sum != hdr.Checksum {
		return hdr, fmt.Errorf("%w: got %08x, want %08x", ErrChecksum, sum, hdr.Checksum)
	}
	return hdr, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

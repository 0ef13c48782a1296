package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lzcast/lzss"
	"github.com/lzcast/lzss/frame"
)

var (
	out        = flag.String("o", "", "Write output to this file instead of stdout")
	trace      = flag.Bool("trace", false, "Print every token to stderr")
	brute      = flag.Bool("brute", false, "Use brute-force match search instead of hash chains")
	useZstd    = flag.Bool("zstd", false, "pack: wrap the payload in zstd")
	kind       = flag.String("kind", "project", "pack: stream kind to store (classic, slide or project)")
	offsetBits = flag.Uint("offset-bits", uint(lzss.DefaultConfig.OffsetBits), "Width of offset fields; the window is 1<<offset-bits bytes")
	lengthBits = flag.Uint("length-bits", uint(lzss.DefaultConfig.LengthBits), "Width of length fields")
	slideBits  = flag.Uint("slide-bits", uint(lzss.DefaultConfig.SlideBits), "Width of slide fields")
	help       = flag.Bool("help", false, "Display help")
)

const usage = `Usage: lzcast [options] command [input]

Commands:
  encode     raw bytes      -> classic stream
  decode     classic stream -> raw bytes
  slide      classic stream -> slide stream
  cast       slide stream   -> project stream
  castback   project stream -> classic stream
  pack       raw bytes      -> frame (header, checksum and stream)
  unpack     frame          -> raw bytes
  diff       compare two files byte for byte: lzcast diff a b

Input defaults to stdin; use - to name it explicitly.
Raw streams carry no header, so every command that reads one must be run
with the same -offset-bits, -length-bits and -slide-bits as the command that
wrote it.

Options:`

func main() {
	log.SetFlags(0)
	log.SetPrefix("lzcast: ")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 || *help {
		fmt.Fprintln(os.Stderr, usage)
		flag.PrintDefaults()
		os.Exit(0)
	}

	cmd, args := args[0], args[1:]
	if cmd == "diff" {
		if len(args) != 2 {
			exitErr(errors.New("diff needs two files"))
		}
		same, err := diff(args[0], args[1])
		exitErr(err)
		if !same {
			fmt.Println("The files are not the same")
			os.Exit(1)
		}
		fmt.Println("The files are the same")
		return
	}

	exitErr(run(cmd, args))
}

// run executes one pipeline command. On failure a named output file is
// removed, so no partial output is left behind.
func run(cmd string, args []string) (err error) {
	codec := lzss.Codec{
		Config: lzss.Config{
			OffsetBits: uint8(*offsetBits),
			LengthBits: uint8(*lengthBits),
			SlideBits:  uint8(*slideBits),
		},
	}
	if *brute {
		codec.NewMatchFinder = func() lzss.MatchFinder { return &lzss.BruteForce{} }
	}
	if *trace {
		codec.Tracer = &lzss.TextTracer{W: os.Stderr}
		defer fmt.Fprintln(os.Stderr)
	}

	src, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()
	dst, closeOut, err := openOutput(*out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); err == nil {
			err = cerr
		}
		if err != nil && *out != "" && *out != "-" {
			os.Remove(*out)
		}
	}()

	switch cmd {
	case "encode":
		return codec.Encode(dst, src)
	case "decode":
		return codec.Decode(dst, src)
	case "slide":
		return codec.AddSlide(dst, src)
	case "cast":
		return codec.ForwardCast(dst, src)
	case "castback":
		return codec.ReverseCast(dst, src)
	case "pack":
		k, err := parseKind(*kind)
		if err != nil {
			return err
		}
		return frame.Compress(dst, src, frame.Options{Kind: k, Zstd: *useZstd, Codec: codec})
	case "unpack":
		hdr, err := frame.Decompress(dst, src)
		if err == nil && *trace {
			log.Printf("%s stream, %d bytes, window %d", hdr.Kind, hdr.Size, hdr.Config.WindowSize())
		}
		return err
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func parseKind(s string) (frame.Kind, error) {
	for _, k := range []frame.Kind{frame.Classic, frame.Slide, frame.Project} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown stream kind %q", s)
}

func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}
	if len(args) > 1 {
		return nil, nil, errors.New("only one input file is accepted")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(name string) (io.Writer, func() error, error) {
	if name == "" || name == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func diff(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()
	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()
	return lzss.Equal(fa, fb)
}

func exitErr(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

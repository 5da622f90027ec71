package syslog

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compressor turns a closed log file into a compressed artifact named
// after the original plus Extension.
type Compressor interface {
	Extension() string
	Compress(dst io.Writer, src io.Reader) error
}

// GzipCompressor writes gzip at maximum compression.
type GzipCompressor struct {
	level int
}

func NewGzipCompressor() *GzipCompressor {
	return &GzipCompressor{level: gzip.BestCompression}
}

func (g *GzipCompressor) Extension() string { return ".gz" }

func (g *GzipCompressor) Compress(dst io.Writer, src io.Reader) error {
	zw, err := gzip.NewWriterLevel(dst, g.level)
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, src); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// ZstdCompressor writes a zstd frame.
type ZstdCompressor struct{}

func NewZstdCompressor() *ZstdCompressor {
	return &ZstdCompressor{}
}

func (z *ZstdCompressor) Extension() string { return ".zst" }

func (z *ZstdCompressor) Compress(dst io.Writer, src io.Reader) error {
	zw, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedBestCompression), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return err
	}
	if _, err := zw.ReadFrom(src); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// compressorFor maps a compression_codec config value to its Compressor.
func compressorFor(codec string) (Compressor, error) {
	switch codec {
	case "", "gzip":
		return NewGzipCompressor(), nil
	case "zstd":
		return NewZstdCompressor(), nil
	default:
		return nil, fmtErrorf("invalid compression_codec: '%s' (use gzip or zstd)", codec)
	}
}

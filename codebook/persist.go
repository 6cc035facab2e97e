package codebook

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/xmatch/codec"
	"github.com/hupe1980/xmatch/internal/compress"
	"github.com/hupe1980/xmatch/internal/conv"
	"github.com/hupe1980/xmatch/internal/hash"
)

// File layout (little endian):
//
//	magic "XMCB" | version u8 | compression u8 | codec name len u8 | codec name
//	| block len u32 | crc32c(block) u32 | block
//
// block is an internal/compress block holding the codec encoding of the
// values in code order.
const (
	magic         = "XMCB"
	formatVersion = 1

	// DefaultMaxSize bounds the decoded payload size accepted by Read.
	DefaultMaxSize = 1 << 30
)

var (
	// ErrCorrupt is returned when persisted data fails validation.
	ErrCorrupt = errors.New("codebook: corrupt data")

	// ErrVersion is returned for an unsupported format version.
	ErrVersion = errors.New("codebook: unsupported format version")

	// ErrUnknownCodec is returned when the codec named in the header is not available.
	ErrUnknownCodec = errors.New("codebook: unknown codec")
)

// Compression selects the block compression of a persisted codebook.
type Compression uint8

const (
	CompressionNone Compression = Compression(compress.None)
	CompressionLZ4  Compression = Compression(compress.LZ4)
	CompressionZSTD Compression = Compression(compress.ZSTD)
)

func (c Compression) String() string { return compress.Type(c).String() }

type persistOptions struct {
	codec       codec.Codec
	compression Compression
	maxSize     uint32
}

// PersistOption configures Write and Read.
type PersistOption func(*persistOptions)

// WithCodec sets the codec used by Write. Read always uses the codec named
// in the file header; a custom codec passed here is consulted when that
// name is not a built-in one.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) PersistOption {
	return func(o *persistOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the compression used by Write.
func WithCompression(c Compression) PersistOption {
	return func(o *persistOptions) {
		o.compression = c
	}
}

// WithMaxSize bounds the decoded payload size accepted by Read.
func WithMaxSize(n uint32) PersistOption {
	return func(o *persistOptions) {
		o.maxSize = n
	}
}

func applyPersistOptions(optFns []PersistOption) persistOptions {
	o := persistOptions{
		codec:       codec.Default,
		compression: CompressionZSTD,
		maxSize:     DefaultMaxSize,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Write persists cb to w.
func Write[K comparable](w io.Writer, cb *Codebook[K], opts ...PersistOption) error {
	o := applyPersistOptions(opts)

	name := o.codec.Name()
	if len(name) == 0 || len(name) > 255 {
		return fmt.Errorf("codebook: invalid codec name %q", name)
	}

	payload, err := o.codec.Marshal(cb.values)
	if err != nil {
		return fmt.Errorf("codebook: encode values with %s: %w", name, err)
	}
	block, err := compress.Encode(payload, compress.Type(o.compression))
	if err != nil {
		return err
	}
	blockLen, err := conv.IntToUint32(len(block))
	if err != nil {
		return fmt.Errorf("codebook: %w", err)
	}

	var hdr bytes.Buffer
	hdr.WriteString(magic)
	hdr.WriteByte(formatVersion)
	hdr.WriteByte(byte(o.compression))
	hdr.WriteByte(byte(len(name)))
	hdr.WriteString(name)

	var tail [8]byte
	binary.LittleEndian.PutUint32(tail[0:], blockLen)
	binary.LittleEndian.PutUint32(tail[4:], hash.CRC32C(block))
	hdr.Write(tail[:])

	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}
	_, err = w.Write(block)
	return err
}

// Read loads a codebook written by Write. The codes of the loaded codebook
// are identical to the codes of the one written.
func Read[K comparable](r io.Reader, opts ...PersistOption) (*Codebook[K], error) {
	o := applyPersistOptions(opts)

	var fixed [7]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if string(fixed[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if fixed[4] != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, fixed[4])
	}
	comp := compress.Type(fixed[5])
	if !comp.Valid() {
		return nil, fmt.Errorf("%w: unknown compression %d", ErrCorrupt, fixed[5])
	}

	nameBuf := make([]byte, fixed[6])
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return nil, fmt.Errorf("%w: codec name: %w", ErrCorrupt, err)
	}
	c, err := resolveCodec(string(nameBuf), o.codec)
	if err != nil {
		return nil, err
	}

	var tail [8]byte
	if _, err := io.ReadFull(r, tail[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	blockLen := binary.LittleEndian.Uint32(tail[0:])
	sum := binary.LittleEndian.Uint32(tail[4:])
	// A stored block is at most 8 header bytes larger than its payload.
	if uint64(blockLen) > uint64(o.maxSize)+8 {
		return nil, fmt.Errorf("%w: block of %d bytes exceeds limit", ErrCorrupt, blockLen)
	}
	n, err := conv.Uint32ToInt(blockLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	block := make([]byte, n)
	if _, err := io.ReadFull(r, block); err != nil {
		return nil, fmt.Errorf("%w: block: %w", ErrCorrupt, err)
	}
	if hash.CRC32C(block) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	payload, err := compress.Decode(block, comp, o.maxSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	var values []K
	if err := c.Unmarshal(payload, &values); err != nil {
		return nil, fmt.Errorf("%w: decode values with %s: %w", ErrCorrupt, c.Name(), err)
	}
	cb, err := FromValues(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return cb, nil
}

func resolveCodec(name string, custom codec.Codec) (codec.Codec, error) {
	if c, ok := codec.ByName(name); ok {
		return c, nil
	}
	if custom != nil && custom.Name() == name {
		return custom, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

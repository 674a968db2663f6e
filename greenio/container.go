package greenio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jsonwc/cst/green"
)

const (
	// Magic is the container file magic number "JWCS" (JSON-WC Snapshot),
	// the greenio counterpart to the teacher's planfmt.Magic "OPAL".
	Magic = "JWCS"

	// Version is the container format version (uint16, little-endian).
	Version uint16 = 0x0001
)

// Write serializes root's canonical CBOR snapshot into w behind a fixed
// MAGIC(4) | VERSION(2) | BODY_LEN(8) | HASH(32) | BODY preamble, mirroring
// the teacher's planfmt.(*Writer).WritePlan container shape. It returns the
// same BLAKE2b-256 hash recorded in the preamble, so a caller that already
// has an in-memory tree need not re-read the file to learn its hash.
func Write(w io.Writer, root *green.Root) ([32]byte, error) {
	body, err := Marshal(CanonicalizeRoot(root))
	if err != nil {
		return [32]byte{}, fmt.Errorf("greenio: canonical encoding failed: %w", err)
	}
	digest, err := Hash(root)
	if err != nil {
		return [32]byte{}, err
	}

	var preamble bytes.Buffer
	if _, err := preamble.WriteString(Magic); err != nil {
		return [32]byte{}, err
	}
	if err := binary.Write(&preamble, binary.LittleEndian, Version); err != nil {
		return [32]byte{}, err
	}
	if err := binary.Write(&preamble, binary.LittleEndian, uint64(len(body))); err != nil {
		return [32]byte{}, err
	}
	if _, err := preamble.Write(digest[:]); err != nil {
		return [32]byte{}, err
	}

	if _, err := w.Write(preamble.Bytes()); err != nil {
		return [32]byte{}, err
	}
	if _, err := w.Write(body); err != nil {
		return [32]byte{}, err
	}
	return digest, nil
}

// Read parses a container written by Write, verifying the recorded hash
// against the body's actual BLAKE2b-256 digest before returning the
// decoded tree.
func Read(r io.Reader) (CanonicalNode, [32]byte, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return CanonicalNode{}, [32]byte{}, fmt.Errorf("greenio: reading magic: %w", err)
	}
	if string(magic[:]) != Magic {
		return CanonicalNode{}, [32]byte{}, fmt.Errorf("greenio: bad magic %q, want %q", magic, Magic)
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return CanonicalNode{}, [32]byte{}, fmt.Errorf("greenio: reading version: %w", err)
	}
	if version != Version {
		return CanonicalNode{}, [32]byte{}, fmt.Errorf("greenio: unsupported version %#x, want %#x", version, Version)
	}

	var bodyLen uint64
	if err := binary.Read(r, binary.LittleEndian, &bodyLen); err != nil {
		return CanonicalNode{}, [32]byte{}, fmt.Errorf("greenio: reading body length: %w", err)
	}

	var wantDigest [32]byte
	if _, err := io.ReadFull(r, wantDigest[:]); err != nil {
		return CanonicalNode{}, [32]byte{}, fmt.Errorf("greenio: reading hash: %w", err)
	}

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return CanonicalNode{}, [32]byte{}, fmt.Errorf("greenio: reading body: %w", err)
	}

	gotDigest, err := hashBytes(body)
	if err != nil {
		return CanonicalNode{}, [32]byte{}, err
	}
	if gotDigest != wantDigest {
		return CanonicalNode{}, [32]byte{}, fmt.Errorf("greenio: body hash mismatch, file is corrupt or was hand-edited")
	}

	node, err := Unmarshal(body)
	if err != nil {
		return CanonicalNode{}, [32]byte{}, fmt.Errorf("greenio: decoding body: %w", err)
	}
	return node, gotDigest, nil
}

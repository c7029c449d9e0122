// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pak

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4"
)

// Open opens the pak archive read from r. It will also check
// that the file actually is a pak archive, will return an error
// when the file is incorrect.
func Open(r io.ReaderAt) (*Archive, error) {
	readMagic := make([]byte, MagicLength)
	if num, err := r.ReadAt(readMagic, 0); err != nil {
		return nil, err
	} else if num < MagicLength || !bytes.Equal(readMagic, magic[:]) {
		return nil, ErrFileFormat
	}

	headerSizeBytes := make([]byte, HeaderSizeNumberLength)
	if num, err := r.ReadAt(headerSizeBytes, MagicLength); err != nil {
		return nil, err
	} else if num < HeaderSizeNumberLength {
		return nil, ErrFileFormat
	}

	headerSize, err := binaryToInt64(headerSizeBytes)
	if err != nil {
		return nil, err
	}
	if headerSize <= 0 {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, MagicLength+HeaderSizeNumberLength); err != nil {
		return nil, err
	} else if int64(num) < headerSize {
		return nil, ErrFileFormat
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}

	entries := make(map[string]IndexEntry, len(header.Index))
	for _, entry := range header.Index {
		entries[entry.Name] = entry
	}

	return &Archive{
		reader:    r,
		header:    header,
		entries:   entries,
		dataStart: MagicLength + HeaderSizeNumberLength + headerSize,
	}, nil
}

// Archive provides concurrent io for a pak file, and can provide
// an io.Reader for each file separately to perform actions on.
type Archive struct {
	reader    io.ReaderAt
	header    Header
	entries   map[string]IndexEntry
	dataStart int64
}

// Header returns a copy of the decoded archive header.
func (a *Archive) Header() Header {
	return a.header
}

// Index returns the file index of the archive.
func (a *Archive) Index() []IndexEntry {
	return a.header.Index
}

// ReadAll returns the entire contents of a file with a given name
func (a *Archive) ReadAll(name string) ([]byte, error) {
	entry, ok := a.entries[name]
	if !ok {
		return nil, ErrNotExist
	}

	reader, err := a.Open(name)
	if err != nil {
		return nil, err
	}

	contents := make([]byte, entry.Size)
	if _, err := io.ReadFull(reader, contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// Open returns a Reader for a file in the Archive
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.entries[name]
	if !ok {
		return nil, ErrNotExist
	}

	section := io.NewSectionReader(a.reader, a.dataStart+entry.Offset, entry.CompressedSize)
	return &Reader{
		entry:        entry,
		decompressor: lz4.NewReader(section),
	}, nil
}

// Reader is a reader for a single file in an Archive.
// Abstracts away the location that needs to be known.
type Reader struct {
	entry        IndexEntry
	decompressor io.Reader
}

// Read reads already decompressed data
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.decompressor.Read(p)
}

// Size returns the uncompressed size of the file
func (r *Reader) Size() int64 {
	return r.entry.Size
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pak_test

import (
	"bytes"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/verge/asset/pak"
)

var (
	testPayload1 = []byte("idunvovkjnreovmegihjbrqlkmfrjnb")
	testPayload2 = []byte("idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb")
)

func buildArchive(c *qt.C) []byte {
	builder, err := pak.NewBuilder(pak.Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	c.Assert(err, qt.IsNil)
	defer builder.Close()

	c.Assert(builder.Add("test", testPayload1), qt.IsNil)
	c.Assert(builder.Add("test2", testPayload2), qt.IsNil)

	var buf bytes.Buffer
	written, err := builder.WriteTo(&buf)
	c.Assert(err, qt.IsNil)
	c.Assert(written, qt.Equals, int64(buf.Len()))

	return buf.Bytes()
}

func TestCreateAndRead(t *testing.T) {
	c := qt.New(t)
	data := buildArchive(c)

	ar, err := pak.Open(bytes.NewReader(data))
	c.Assert(err, qt.IsNil)

	f, err := ar.Open("test")
	c.Assert(err, qt.IsNil)
	c.Assert(f.Size(), qt.Equals, int64(len(testPayload1)))

	result := make([]byte, len(testPayload1))
	_, err = f.Read(result)
	c.Assert(err, qt.IsNil)
	c.Assert(result, qt.DeepEquals, testPayload1)
}

func TestCreateAndReadAll(t *testing.T) {
	c := qt.New(t)
	data := buildArchive(c)

	ar, err := pak.Open(bytes.NewReader(data))
	c.Assert(err, qt.IsNil)

	first, err := ar.ReadAll("test")
	c.Assert(err, qt.IsNil)
	c.Assert(first, qt.DeepEquals, testPayload1)

	second, err := ar.ReadAll("test2")
	c.Assert(err, qt.IsNil)
	c.Assert(second, qt.DeepEquals, testPayload2)
}

func TestHeaderSurvives(t *testing.T) {
	c := qt.New(t)
	data := buildArchive(c)

	ar, err := pak.Open(bytes.NewReader(data))
	c.Assert(err, qt.IsNil)

	header := ar.Header()
	c.Assert(header.Author, qt.Equals, "devblok")
	c.Assert(header.Version, qt.Equals, int64(1))
	c.Assert(len(header.Index), qt.Equals, 2)
	c.Assert(header.Index[0].Name, qt.Equals, "test")
	c.Assert(header.Index[1].Name, qt.Equals, "test2")
}

func TestOpenCorruptMagic(t *testing.T) {
	c := qt.New(t)
	data := buildArchive(c)
	data[0] = 'X'

	_, err := pak.Open(bytes.NewReader(data))
	c.Assert(err, qt.Equals, pak.ErrFileFormat)
}

func TestOpenTruncated(t *testing.T) {
	c := qt.New(t)
	data := buildArchive(c)

	_, err := pak.Open(bytes.NewReader(data[:pak.MagicLength+2]))
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestReadUnknownName(t *testing.T) {
	c := qt.New(t)
	data := buildArchive(c)

	ar, err := pak.Open(bytes.NewReader(data))
	c.Assert(err, qt.IsNil)

	_, err = ar.ReadAll("does-not-exist")
	c.Assert(err, qt.Equals, pak.ErrNotExist)

	_, err = ar.Open("does-not-exist")
	c.Assert(err, qt.Equals, pak.ErrNotExist)
}

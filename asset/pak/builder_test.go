// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pak

import (
	"bytes"
	"os"
	"testing"
	"time"
)

func TestAddAndWrite(t *testing.T) {
	builder, err := NewBuilder(Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err != nil {
		t.Error(err)
	}

	builder.Add("test", []byte("idunvovkjnreovmegihjbrqlkmfrjnb"))
	builder.Add("test2", []byte("idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"))

	if len(builder.files) != 2 {
		t.Error("incorrect number of files present")
	}

	buf := bytes.NewBuffer(nil)
	num, err := builder.WriteTo(buf)
	if err != nil {
		t.Error(err)
	}
	if num != int64(buf.Len()) {
		t.Errorf("reported %d written, buffer has %d", num, buf.Len())
	}

	if len(builder.files) != 0 {
		t.Error("files not flushed after write")
	}
}

func TestWriteOffsets(t *testing.T) {
	builder, err := NewBuilder(Header{Author: "devblok", Version: 1})
	if err != nil {
		t.Error(err)
	}

	builder.Add("one", bytes.Repeat([]byte{0xAB}, 2048))
	builder.Add("two", []byte("second"))

	buf := bytes.NewBuffer(nil)
	if _, err := builder.WriteTo(buf); err != nil {
		t.Error(err)
	}

	ar, err := Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	index := ar.Index()
	if index[0].Offset != 0 {
		t.Errorf("first entry offset is %d", index[0].Offset)
	}
	if index[1].Offset != index[0].CompressedSize {
		t.Error("second entry does not start where the first one ends")
	}
}

func TestBuilderClose(t *testing.T) {
	builder, err := NewBuilder(Header{Author: "devblok", Version: 1})
	if err != nil {
		t.Error(err)
	}

	temp := builder.tempDir
	if err := builder.Close(); err != nil {
		t.Error(err)
	}

	if _, err := os.Stat(temp); !os.IsNotExist(err) {
		t.Error("temporary directory survives Close")
	}
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package asset resolves and reads engine assets by name. A Database
// searches plain directories first, then registered pak archives, then
// the box compiled into the binary, first hit wins. The engine treats
// a missing asset as fatal, so ReadAll reports exactly what was asked for.
package asset

import (
	"bytes"
	"fmt"
	"image"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	// texture decode formats
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/gobuffalo/packr"
	"golang.org/x/exp/mmap"

	"github.com/devblok/verge/asset/pak"
	"github.com/devblok/verge/core"
	"github.com/devblok/verge/model"
)

// DatabaseConfig configures the search behaviour of a Database.
type DatabaseConfig struct {

	// Dirs are searched in order before any archive
	Dirs []string

	// Archives are paths to pak files, searched after Dirs
	Archives []string
}

// NewDatabase opens all configured archives and returns a ready Database.
func NewDatabase(cfg DatabaseConfig) (*Database, error) {
	db := &Database{
		dirs: cfg.Dirs,
		box:  packr.NewBox("../assets"),
	}
	for _, name := range cfg.Archives {
		reader, err := mmap.Open(name)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("mmap.Open(%s): %s", name, err.Error())
		}
		archive, err := pak.Open(reader)
		if err != nil {
			reader.Close()
			db.Close()
			return nil, fmt.Errorf("pak.Open(%s): %s", name, err.Error())
		}
		db.archives = append(db.archives, archive)
		db.readers = append(db.readers, reader)
	}
	return db, nil
}

// Database looks up assets by name across directories, pak archives
// and the compiled-in box. Safe for concurrent reads.
type Database struct {
	dirs     []string
	archives []*pak.Archive
	readers  []*mmap.ReaderAt
	box      packr.Box
}

// ReadAll returns the contents of the first asset matching name.
func (db *Database) ReadAll(name string) ([]byte, error) {
	for _, dir := range db.dirs {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return ioutil.ReadFile(path)
	}
	for _, archive := range db.archives {
		contents, err := archive.ReadAll(name)
		if err == pak.ErrNotExist {
			continue
		}
		return contents, err
	}
	if db.box.Has(name) {
		return db.box.Find(name)
	}
	return nil, fmt.Errorf("asset not found: %s", name)
}

// Texture reads and decodes an image asset.
func (db *Database) Texture(name string) (image.Image, error) {
	contents, err := db.ReadAll(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("image.Decode(%s): %s", name, err.Error())
	}
	return img, nil
}

// Mesh reads a mesh asset and imports it as an engine object. COLLADA
// documents are recognised by their extension, anything else is
// treated as Wavefront OBJ.
func (db *Database) Mesh(name string) (model.Object, error) {
	contents, err := db.ReadAll(name)
	if err != nil {
		return nil, err
	}
	if strings.ToLower(filepath.Ext(name)) == ".dae" {
		return model.ImportColladaObject(contents)
	}
	return model.ImportObjObject(contents)
}

// Material assembles a material from a compiled shader pair named
// <name>.vert.spv and <name>.frag.spv, plus an optional texture.
// An empty textureName leaves the material untextured, the renderer
// substitutes its built-in texture then.
func (db *Database) Material(name, textureName string) (core.Material, error) {
	vert, err := db.ReadAll(name + ".vert.spv")
	if err != nil {
		return core.Material{}, err
	}
	frag, err := db.ReadAll(name + ".frag.spv")
	if err != nil {
		return core.Material{}, err
	}

	material := core.Material{
		Name:           name,
		VertexShader:   vert,
		FragmentShader: frag,
	}

	if textureName != "" {
		texture, err := db.Texture(textureName)
		if err != nil {
			return core.Material{}, err
		}
		material.Texture = texture
	}
	return material, nil
}

// Close releases the archive mappings held by the Database.
func (db *Database) Close() error {
	var firstErr error
	for _, reader := range db.readers {
		if err := reader.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	db.readers = nil
	db.archives = nil
	return firstErr
}

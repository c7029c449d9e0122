// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command vergepak creates, lists and extracts pak archives that the
// engine asset database can mount.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/mmap"

	"github.com/devblok/verge/asset/pak"
)

var (
	author   = flag.String("author", "", "Author of the archive, defaults to the current user")
	version  = flag.Int64("version", 1, "Archive version number to create it with")
	extract  = flag.String("e", "", "Extract the given archive")
	compress = flag.String("c", "", "Compress the given file/folder")
	list     = flag.String("l", "", "List the contents of the given archive")
	dstFile  = flag.String("f", "out.pak", "Destination file")
	outDir   = flag.String("o", ".", "Directory to extract into")
	silent   = flag.Bool("s", false, "Silent")
)

func main() {
	flag.Parse()

	if *silent {
		log.SetLevel(log.ErrorLevel)
	}

	var ops int
	for _, op := range []string{*extract, *compress, *list} {
		if op != "" {
			ops++
		}
	}
	if ops > 1 {
		log.Fatal("only one operation at a time")
	}

	switch {
	case *compress != "":
		if err := compressFiles(); err != nil {
			log.Fatal(err)
		}
	case *extract != "":
		if err := extractFiles(); err != nil {
			log.Fatal(err)
		}
	case *list != "":
		if err := listFiles(); err != nil {
			log.Fatal(err)
		}
	default:
		flag.PrintDefaults()
	}
}

func archiveAuthor() string {
	if *author != "" {
		return *author
	}
	if u, err := user.Current(); err == nil {
		return u.Name
	}
	return "unknown"
}

func compressFiles() error {
	if _, err := os.Stat(*dstFile); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	dst, err := os.Create(*dstFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	var filesToCompress []string
	if err := filepath.Walk(*compress, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		filesToCompress = append(filesToCompress, path)
		return nil
	}); err != nil {
		return err
	}

	builder, err := pak.NewBuilder(pak.Header{
		Author:      archiveAuthor(),
		DateCreated: time.Now().Unix(),
		Version:     *version,
	})
	if err != nil {
		return err
	}
	defer builder.Close()

	for _, path := range filesToCompress {
		contents, err := ioutil.ReadFile(path)
		if err != nil {
			return err
		}

		// Archive names are stored relative to the compressed root,
		// with forward slashes.
		name, relErr := filepath.Rel(*compress, path)
		if relErr != nil || name == "." {
			name = filepath.Base(path)
		}
		name = filepath.ToSlash(name)

		if err := builder.Add(name, contents); err != nil {
			return err
		}
		log.Infof("added %s", name)
	}

	if _, err := builder.WriteTo(dst); err != nil {
		return err
	}
	return nil
}

func extractFiles() error {
	reader, err := mmap.Open(*extract)
	if err != nil {
		return err
	}
	defer reader.Close()

	archive, err := pak.Open(reader)
	if err != nil {
		return err
	}

	cleanOut := filepath.Clean(*outDir)
	for _, entry := range archive.Index() {
		contents, err := archive.ReadAll(entry.Name)
		if err != nil {
			return err
		}

		dst := filepath.Join(cleanOut, filepath.FromSlash(entry.Name))
		if rel, err := filepath.Rel(cleanOut, dst); err != nil || strings.HasPrefix(rel, "..") {
			return fmt.Errorf("entry escapes the destination directory: %s", entry.Name)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := ioutil.WriteFile(dst, contents, 0644); err != nil {
			return err
		}
		log.Infof("extracted %s", entry.Name)
	}
	return nil
}

func listFiles() error {
	reader, err := mmap.Open(*list)
	if err != nil {
		return err
	}
	defer reader.Close()

	archive, err := pak.Open(reader)
	if err != nil {
		return err
	}

	header := archive.Header()
	fmt.Printf("%s, version %d, created %s by %s\n", *list, header.Version,
		time.Unix(header.DateCreated, 0).Format(time.RFC3339), header.Author)
	for _, entry := range archive.Index() {
		fmt.Printf("%12d %12d  %s\n", entry.Size, entry.CompressedSize, entry.Name)
	}
	return nil
}

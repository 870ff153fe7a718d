package asset

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed structures/*.yaml
var structures embed.FS

// Default returns the built-in world structure named "Default".
func Default() *Document {
	data, err := structures.ReadFile("structures/default.yaml")
	if err != nil {
		panic(err)
	}
	doc, err := Parse(data)
	if err != nil {
		panic(fmt.Errorf("built-in world structure: %w", err))
	}
	return doc
}

// LoadFS parses every .yaml document in the root of fsys and returns them by name.
func LoadFS(fsys fs.FS) (map[string]*Document, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	docs := make(map[string]*Document)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		doc, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if _, ok := docs[doc.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate world structure %q", e.Name(), doc.Name)
		}
		docs[doc.Name] = doc
	}
	return docs, nil
}

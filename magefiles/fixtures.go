//go:build mage

package main

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/spaghettifunk/anima/engine/assets/loaders"
)

type Fixtures mg.Namespace

const meshDir = "assets/meshes"

// Writes a unit cube as little endian, big endian and gzip .vao files.
func (Fixtures) Cube() error {
	if err := os.MkdirAll(meshDir, 0o755); err != nil {
		return err
	}
	mesh := cubeMesh()

	var le, be bytes.Buffer
	if err := loaders.EncodeVAO(&le, mesh, binary.LittleEndian); err != nil {
		return err
	}
	if err := loaders.EncodeVAO(&be, mesh, binary.BigEndian); err != nil {
		return err
	}
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write(le.Bytes()); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	files := map[string][]byte{
		"cube.vao":    le.Bytes(),
		"cube_be.vao": be.Bytes(),
		"cube.vao.gz": gz.Bytes(),
	}
	for name, data := range files {
		path := filepath.Join(meshDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d bytes)\n", path, len(data))
	}
	return nil
}

func cubeMesh() *loaders.VAOMesh {
	mesh := &loaders.VAOMesh{}
	for _, x := range []float32{-1, 1} {
		for _, y := range []float32{-1, 1} {
			for _, z := range []float32{-1, 1} {
				mesh.Positions = append(mesh.Positions, x, y, z)
			}
		}
	}
	// vertex i has x = i&4, y = i&2, z = i&1
	mesh.Indices = []uint16{
		0, 1, 3, 0, 3, 2, // -x
		4, 6, 7, 4, 7, 5, // +x
		0, 4, 5, 0, 5, 1, // -y
		2, 3, 7, 2, 7, 6, // +y
		0, 2, 6, 0, 6, 4, // -z
		1, 5, 7, 1, 7, 3, // +z
	}
	return mesh
}

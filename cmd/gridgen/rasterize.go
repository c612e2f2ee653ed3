package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/atomraster/gridmaker/backend/cpu"
	"github.com/atomraster/gridmaker/coordset"
	"github.com/atomraster/gridmaker/gridmaker"
	"github.com/atomraster/gridmaker/tensor"
)

// runRasterize parses an atom list and writes a raw float32 density grid.
func runRasterize(args []string) error {
	fs := flag.NewFlagSet("rasterize", flag.ExitOnError)
	atomsPath := fs.String("atoms", "", "path to an atom list (x,y,z,radius,type_index per line)")
	outPath := fs.String("out", "grid.bin", "path to write the raw float32 grid")
	resolution := fs.Float64("resolution", 0.5, "voxel spacing in Angstroms")
	dimension := fs.Float64("dimension", 23.5, "cubic grid side length in Angstroms")
	radiusScale := fs.Float64("radius-scale", 1.0, "multiplier applied to every atom radius")
	binary := fs.Bool("binary", false, "use binary occupancy instead of the smooth kernel")
	numTypes := fs.Int("types", 0, "channel count; 0 infers from the highest type index in the atom list")
	preset := fs.String("preset", "", "load geometry from a named bundled preset instead of -resolution/-dimension")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *atomsPath == "" {
		return fmt.Errorf("-atoms is required")
	}

	set, inferredTypes, err := readAtoms(*atomsPath)
	if err != nil {
		return fmt.Errorf("reading atoms: %w", err)
	}
	channels := *numTypes
	if channels <= 0 {
		channels = inferredTypes
	}
	if channels <= 0 {
		return fmt.Errorf("could not infer channel count; pass -types")
	}

	var gm *gridmaker.GridMaker
	if *preset != "" {
		gm, err = gridmaker.NewFromPreset(*preset, gridmaker.WithBinary(*binary), gridmaker.WithRadiusScale(*radiusScale))
	} else {
		gm, err = gridmaker.New(
			gridmaker.WithResolution(*resolution),
			gridmaker.WithDimension(*dimension),
			gridmaker.WithRadiusScale(*radiusScale),
			gridmaker.WithBinary(*binary),
		)
	}
	if err != nil {
		return fmt.Errorf("configuring grid maker: %w", err)
	}

	backend := cpu.New()
	batch := &coordset.Batch{Examples: []*coordset.Set{set}, NumTypes: channels}
	out, err := tensor.NewRaw(tensor.Shape{1, channels, gm.Dim(), gm.Dim(), gm.Dim()}, tensor.Float32, tensor.CPU)
	if err != nil {
		return fmt.Errorf("allocating output grid: %w", err)
	}

	ids, err := gm.BatchForward([][3]float64{{0, 0, 0}}, batch, backend, out)
	if err != nil {
		return fmt.Errorf("rasterizing: %w", err)
	}
	log.Printf("rasterize: trace=%s atoms=%d channels=%d dim=%d -> %s", ids[0], set.N(), channels, gm.Dim(), *outPath)

	return writeGrid(*outPath, out.AsFloat32())
}

// readAtoms parses a simple "x,y,z,radius,type_index" CSV, one atom per
// line; blank lines and lines starting with "#" are skipped. Returns the
// parsed set and one past the highest type index seen, for channel-count
// inference.
func readAtoms(path string) (*coordset.Set, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	set := &coordset.Set{}
	maxType := -1
	lineNum := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			return nil, 0, fmt.Errorf("line %d: want 5 comma-separated fields, got %d", lineNum, len(fields))
		}
		coord, err := parseFloat32Triple(fields[0], fields[1], fields[2])
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", lineNum, err)
		}
		radius, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 32)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: parsing radius: %w", lineNum, err)
		}
		typeIdx, err := strconv.Atoi(strings.TrimSpace(fields[4]))
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: parsing type index: %w", lineNum, err)
		}

		set.Coords = append(set.Coords, coord)
		set.Radii = append(set.Radii, float32(radius))
		set.TypeIndex = append(set.TypeIndex, float32(typeIdx))
		if typeIdx > maxType {
			maxType = typeIdx
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return set, maxType + 1, nil
}

func parseFloat32Triple(x, y, z string) ([3]float32, error) {
	var out [3]float32
	for i, s := range []string{x, y, z} {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return out, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

func writeGrid(path string, data []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	buf := make([]byte, 4)
	for _, v := range data {
		bits := math.Float32bits(v)
		buf[0] = byte(bits)
		buf[1] = byte(bits >> 8)
		buf[2] = byte(bits >> 16)
		buf[3] = byte(bits >> 24)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return w.Flush()
}

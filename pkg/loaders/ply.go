package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/material"
	"go.uber.org/zap"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYMesh holds the positions and triangle indices read from a PLY file.
// Polygons with more than three vertices are split into triangle fans.
type PLYMesh struct {
	Vertices []core.Vec3
	Faces    []int // Triangle indices (3 per triangle)
}

// LoadPLY reads a PLY file
func LoadPLY(filename string) (*PLYMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	return ReadPLY(file)
}

// AddPLY reads a PLY file and adds it to graph as a triangle mesh group
func AddPLY(filename string, graph *geometry.Graph, mat *material.Material, logger *zap.Logger) (geometry.ShapeID, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	mesh, err := LoadPLY(filename)
	if err != nil {
		return geometry.NoShape, err
	}

	id, stats, err := graph.AddTriangleMesh(mesh.Vertices, mesh.Faces, mat)
	if err != nil {
		return geometry.NoShape, fmt.Errorf("build mesh from %s: %w", filename, err)
	}
	graph.SetName(id, filename)

	logger.Info("Loaded PLY model",
		zap.String("path", filename),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", stats.Triangles),
		zap.Int("degenerate", stats.Degenerate),
		zap.Duration("elapsed", time.Since(startTime)))
	return id, nil
}

// ReadPLY parses PLY data in any of the three standard encodings
func ReadPLY(r io.Reader) (*PLYMesh, error) {
	reader := bufio.NewReaderSize(r, 1024*1024) // 1MB buffer

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var elements elementReader
	switch header.Format {
	case "binary_little_endian":
		elements = &binaryElementReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		elements = &binaryElementReader{reader: reader, order: binary.BigEndian}
	case "ascii":
		elements = &asciiElementReader{scanner: bufio.NewScanner(reader)}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	mesh, err := readPLYElements(header, elements)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return mesh, nil
}

// parsePLYHeader parses the PLY header, leaving reader at the start of the element data
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, errors.New("missing ply magic number")
	}

	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header not terminated by end_header: %w", err)
		}
		line := strings.TrimSpace(raw)
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}

			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("unsupported element %q", currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}

			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}

	if header.VertexCount > 0 {
		for _, axis := range []string{"x", "y", "z"} {
			if header.vertexPropIndex(axis) < 0 {
				return nil, fmt.Errorf("vertex element has no %q property", axis)
			}
		}
	}
	return header, nil
}

func (h *PLYHeader) vertexPropIndex(name string) int {
	for i, prop := range h.VertexProps {
		if prop.Name == name && !prop.IsList {
			return i
		}
	}
	return -1
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
	}

	if getTypeSize(prop.Type) == 0 && !prop.IsList {
		return PLYProperty{}, fmt.Errorf("unknown property type %q", prop.Type)
	}
	if prop.IsList && (getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0) {
		return PLYProperty{}, fmt.Errorf("unknown list property types %q %q", prop.ListType, prop.DataType)
	}
	return prop, nil
}

// elementReader yields scalar values of the element data section
type elementReader interface {
	// next returns the next value, read as dataType, converted to float64
	next(dataType string) (float64, error)
}

type binaryElementReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryElementReader) next(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	data := b.buf[:size]
	if _, err := io.ReadFull(b.reader, data); err != nil {
		return 0, err
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "char", "int8":
		return float64(int8(data[0])), nil
	default: // uchar, uint8
		return float64(data[0]), nil
	}
}

type asciiElementReader struct {
	scanner *bufio.Scanner
	fields  []string
}

func (a *asciiElementReader) next(string) (float64, error) {
	for len(a.fields) == 0 {
		if !a.scanner.Scan() {
			if err := a.scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		a.fields = strings.Fields(a.scanner.Text())
	}

	field := a.fields[0]
	a.fields = a.fields[1:]
	return strconv.ParseFloat(field, 64)
}

// readPLYElements reads the vertex and face elements described by header
func readPLYElements(header *PLYHeader, elements elementReader) (*PLYMesh, error) {
	mesh := &PLYMesh{
		Vertices: make([]core.Vec3, 0, header.VertexCount),
		Faces:    make([]int, 0, header.FaceCount*3), // Assuming triangular faces
	}

	xIndex := header.vertexPropIndex("x")
	yIndex := header.vertexPropIndex("y")
	zIndex := header.vertexPropIndex("z")
	values := make([]float64, len(header.VertexProps))

	for i := 0; i < header.VertexCount; i++ {
		for j, prop := range header.VertexProps {
			if prop.IsList {
				if err := skipList(elements, prop); err != nil {
					return nil, fmt.Errorf("vertex %d property %s: %w", i, prop.Name, err)
				}
				continue
			}
			v, err := elements.next(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d property %s: %w", i, prop.Name, err)
			}
			values[j] = v
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(values[xIndex], values[yIndex], values[zIndex]))
	}

	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				if err := skipProperty(elements, prop); err != nil {
					return nil, fmt.Errorf("face %d property %s: %w", i, prop.Name, err)
				}
				continue
			}

			count, err := elements.next(prop.ListType)
			if err != nil {
				return nil, fmt.Errorf("face %d vertex count: %w", i, err)
			}
			if count < 3 {
				return nil, fmt.Errorf("face %d has %v vertices", i, count)
			}

			indices := make([]int, int(count))
			for k := range indices {
				v, err := elements.next(prop.DataType)
				if err != nil {
					return nil, fmt.Errorf("face %d index %d: %w", i, k, err)
				}
				indices[k] = int(v)
			}

			// Fan triangulation keeps the polygon's winding
			for k := 1; k+1 < len(indices); k++ {
				mesh.Faces = append(mesh.Faces, indices[0], indices[k], indices[k+1])
			}
		}
	}

	return mesh, nil
}

// skipProperty skips a property in the element data
func skipProperty(elements elementReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(elements, prop)
	}
	_, err := elements.next(prop.Type)
	return err
}

func skipList(elements elementReader, prop PLYProperty) error {
	count, err := elements.next(prop.ListType)
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		if _, err := elements.next(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

package main

import (
	"fmt"

	polystrip "github.com/geynet/retopology-contours"
	"github.com/philipparndt/gostl/pkg/geometry"
	"github.com/philipparndt/gostl/pkg/stl"
)

// loadSTL reads the triangles of an STL file.
func loadSTL(path string) (polystrip.TriangleMesh, error) {
	model, err := stl.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parsing STL file %s: %w", path, err)
	}
	return meshFromModel(model), nil
}

func meshFromModel(model *stl.Model) polystrip.TriangleMesh {
	pt := func(v geometry.Vector3) polystrip.Point3 {
		return polystrip.Pt(v.X, v.Y, v.Z)
	}
	out := make(polystrip.TriangleMesh, len(model.Triangles))
	for i, t := range model.Triangles {
		out[i] = polystrip.Triangle{A: pt(t.V1), B: pt(t.V2), C: pt(t.V3)}
	}
	return out
}

package emfield

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	shp "github.com/jonas-p/go-shp"
)

// LoadRegionGeoJSON decodes a single GeoJSON polygon geometry into a
// Region. Only the outer ring is used; holes, if present, are
// ignored since the request contract (§3) has no notion of them.
func LoadRegionGeoJSON(data []byte) (Region, error) {
	g, err := geojson.Decode(data)
	if err != nil {
		return Region{}, fmt.Errorf("emfield: decoding region GeoJSON: %w", err)
	}
	poly, ok := g.(geom.Polygon)
	if !ok || len(poly) == 0 {
		return Region{}, fmt.Errorf("emfield: region GeoJSON geometry is not a polygon")
	}
	return regionFromRing(poly[0]), nil
}

// LoadRegionShapefile reads the first polygon shape of an ESRI
// shapefile (.shp) as a Region, the same shapefile-first ingestion
// habit InMAP uses for its census/mortality layers (VarGridConfig.CensusFile).
func LoadRegionShapefile(path string) (Region, error) {
	r, err := shp.Open(path)
	if err != nil {
		return Region{}, fmt.Errorf("emfield: opening shapefile %s: %w", path, err)
	}
	defer r.Close()

	if !r.Next() {
		return Region{}, fmt.Errorf("emfield: shapefile %s has no shapes", path)
	}
	_, shape := r.Shape()
	poly, ok := shape.(*shp.Polygon)
	if !ok {
		return Region{}, fmt.Errorf("emfield: shapefile %s's first shape is not a polygon", path)
	}
	if len(poly.Points) == 0 {
		return Region{}, fmt.Errorf("emfield: shapefile %s's first polygon has no points", path)
	}
	end := int(poly.NumPoints)
	if len(poly.Parts) > 1 {
		end = int(poly.Parts[1])
	}
	ring := make([]geom.Point, 0, end)
	for _, p := range poly.Points[:end] {
		ring = append(ring, geom.Point{X: p.X, Y: p.Y})
	}
	return regionFromRing(ring), nil
}

func regionFromRing(ring []geom.Point) Region {
	verts := make([]LatLon, 0, len(ring))
	for i, p := range ring {
		// Drop a closing vertex identical to the first; Region.Polygon
		// re-closes the ring itself.
		if i == len(ring)-1 && p.Equals(ring[0]) {
			continue
		}
		verts = append(verts, LatLon{Lat: p.Y, Lon: p.X})
	}
	return Region{Vertices: verts}
}

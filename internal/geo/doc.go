// Package geo holds the pure geometry kernel for wave events.
//
// # Coordinate Conventions
//
// All positions are WGS-84 latitude/longitude pairs in degrees. Polygons are
// closed rings: after kernel processing the first vertex equals the last, and
// a ring needs at least 3 distinct, non-collinear vertices to be valid.
// Degenerate rings are silently discarded by the split operation.
//
// # Longitude Splitting
//
// The wave front is approximated as a line of constant longitude, so the one
// non-trivial operation here is [SplitPolygonByLongitude]: cutting a polygon
// by a meridian into the part west of the cut ("left") and the part east of
// it ("right"). Vertices exactly on the cut line belong to both sides. A
// single straight cut through a concave or multi-lobed shape produces more
// than one ring per side; those are recovered by scanning the accumulated
// boundary points and closing off a ring whenever a point lands back on an
// already-visited internal edge. That reconstruction is a heuristic tuned
// for real-world coastline and administrative-boundary shapes, not a general
// polygon-decomposition algorithm.
//
// # Point-in-Polygon
//
// [IsPointInPolygon] is a ray-casting crossing count with one deliberate
// quirk: a point whose latitude row intersects an edge at exactly the point's
// longitude is reported as inside immediately. Callers depend on boundary
// points counting as inside, so the customary half-open edge refinement is
// intentionally absent.
//
// # Distances
//
// Great-circle distances use the haversine formula with a mean Earth radius
// of 6371 km. A degree of longitude shrinks with latitude; helpers here
// expose that so a constant wave speed in meters per second maps to a
// latitude-dependent sweep rate in degrees.
package geo

// Package formats provides parsers for elevation raster file formats.
package formats

// Note: ESRI ASCII grid (.asc) is implemented in asc.go

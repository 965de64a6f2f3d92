// Package dataset holds the fixed-dimension numeric records the clustering
// engine consumes, along with the data preparation around them: dimension
// validation, min-max normalization, and loading delimited record files
// from a blobstore.
//
// # Loading
//
//	table, err := dataset.Open(ctx, store, "Mall_Customers.csv", dataset.LoadOptions{
//	    Header:      true,
//	    SkipColumns: []string{"CustomerID"},
//	    Categories:  map[string]float64{"Male": 0, "Female": 1},
//	})
//	normalized, err := dataset.Normalize(table.Rows)
//
// Inputs whose name ends in .zst, .gz or .lz4 are decompressed on the fly.
package dataset

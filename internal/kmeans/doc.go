// Package kmeans implements the clustering engine: random initialization
// over distinct records, nearest-centroid assignment, SSE evaluation, and
// the update step that snaps every centroid to the dataset record nearest
// its cluster mean.
//
// Centroids are identified by record index throughout; a centroid is always
// a real observation, never a synthetic mean.
package kmeans

// Package buffer provides a reusable sample block and a pool of them for
// block-wise streaming through the engines. Processing APIs take raw
// []float64; Buffer only manages the backing storage.
package buffer

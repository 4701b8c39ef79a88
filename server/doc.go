// Package server provides the HTTP surface: a Gin server with h2c
// support, the standard middleware stack, health reporting, and the
// meeting upload endpoint that drives the processing pipeline.
package server

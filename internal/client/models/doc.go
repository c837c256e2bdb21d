// Package models defines the data the upload workflow moves around: the
// staged source file, the workflow state, the downloadable archive handle and
// the display hints derived from a file name.
package models

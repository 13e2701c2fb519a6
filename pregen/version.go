/*
Package pregen holds values which are pre-generated by the release process and compiled
into the ddnshook executable.
*/
package pregen

const (
	// Version is auto-generated from ChangeLog.md
	Version = "v0.9.0"
	// ReleaseDate is also auto-generated from ChangeLog.md
	ReleaseDate = "2026-08-31"
)

// Package library indexes a directory of audio files into an
// Artist → Album → Song hierarchy.
//
// Songs are owned by Library.Songs and referenced by index from albums and
// from the unknown bucket. Every index lives in exactly one place. Grouping is
// a de-duplicating insert keyed on exact names, so case variants of one artist
// stay distinct until the resolve package merges them.
package library

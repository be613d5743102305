// Package library implements the import pipeline: parsing embedded
// artwork out of audio files, persisting it as thumbnail images, and
// the idempotent directory scan that populates the track catalog.
package library

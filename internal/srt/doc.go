// Package srt renders aligned, segmented dialogue as SubRip subtitle
// files and parses them back for inspection.
package srt

// Package pipeline provides the workbook conversion pipeline for railsheet.
//
// This package implements the complete read → import → export → write
// pipeline used by the CLI and the HTTP server. By centralizing this logic,
// both entry points detect formats, log, record statistics and fire
// observability hooks the same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Read: Load a workbook (xlsx, zip of CSV files, or a CSV directory)
//  2. Import: Build a graph with [importer.Build]
//  3. Export: Rebuild workbook rows with [exporter.Export]
//  4. Write: Serialize the rows in the requested format
//
// A graph JSON document (see package io) can stand in for a workbook on
// either side, so a graph edited outside railsheet can be exported and a
// workbook can be handed to the editor as a graph.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger, importer.Options{})
//	res, err := runner.Import(ctx, "network.xlsx", pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = runner.Export(ctx, res.Graph, res.View, "out.zip", pipeline.Options{})
//
// Or in one step:
//
//	res, err := runner.Convert(ctx, "network.xlsx", "network.json", pipeline.Options{})
package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/railsheet/pkg/errors"
	"github.com/matzehuels/railsheet/pkg/exporter"
	"github.com/matzehuels/railsheet/pkg/importer"
	"github.com/matzehuels/railsheet/pkg/network"
)

// =============================================================================
// Formats
// =============================================================================

// Format constants for workbook containers and graph documents.
const (
	FormatXLSX = "xlsx" // excel workbook
	FormatZip  = "zip"  // zip archive of CSV files
	FormatCSV  = "csv"  // directory of CSV files
	FormatJSON = "json" // graph JSON document
)

// ValidFormats is the set of supported formats.
var ValidFormats = map[string]bool{
	FormatXLSX: true,
	FormatZip:  true,
	FormatCSV:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported,
			"invalid format: %q (must be one of: xlsx, zip, csv, json)", format)
	}
	return nil
}

// DetectFormat infers the format of path. Existing directories and paths
// without an extension are CSV directories; otherwise the extension decides.
func DetectFormat(path string) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return FormatCSV, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "":
		return FormatCSV, nil
	case "xlsx", "zip", "json":
		return ext, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "cannot detect format of %s: unknown extension %q", path, ext)
}

// =============================================================================
// Options and Results
// =============================================================================

// Options selects formats explicitly. Empty fields are detected from paths.
type Options struct {
	InputFormat  string `json:"input_format,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
}

func resolveFormat(explicit, path string) (string, error) {
	if explicit == "" {
		return DetectFormat(path)
	}
	explicit = strings.ToLower(explicit)
	return explicit, ValidateFormat(explicit)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the imported (or exported) network.
	Graph *network.Graph

	// View is the viewport carried alongside the graph.
	View network.ViewMeta

	// GraphHash is the content hash of the graph's JSON document.
	GraphHash string

	// Report lists conditions recovered during import. It is empty when the
	// graph came from a JSON document.
	Report importer.Report

	// Rows holds the exported tables, when the run exported.
	Rows *exporter.Rows

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Stations   int
	Edges      int
	Lines      int
	Stops      int
	ReadTime   time.Duration
	ImportTime time.Duration
	ExportTime time.Duration
	WriteTime  time.Duration
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Summary describes the result in one line.
func (r *Result) Summary() string {
	s := fmt.Sprintf("%d stations, %d edges", r.Stats.Stations, r.Stats.Edges)
	if r.Rows != nil {
		s += fmt.Sprintf(", %d lines, %d stops", r.Stats.Lines, r.Stats.Stops)
	}
	return s
}

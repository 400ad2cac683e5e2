// Package domain defines domain-level errors for the report feature.
package domain

import "errors"

// Domain errors for report generation. Each sentinel marks one pipeline stage
// failure so upper layers can map it to an appropriate HTTP status.
var (
	// ErrMissingStatement indicates that no financial statement file was uploaded.
	ErrMissingStatement = errors.New("statement file is required")

	// ErrMissingDocument indicates that no narrative report file was uploaded.
	ErrMissingDocument = errors.New("document file is required")

	// ErrUploadTooLarge indicates that an uploaded file exceeds the per-file size limit.
	ErrUploadTooLarge = errors.New("uploaded file exceeds the size limit")

	// ErrStatementFormat indicates that the statement bytes could not be opened
	// as a spreadsheet workbook.
	ErrStatementFormat = errors.New("could not read the statement workbook")

	// ErrSheetNotFound indicates that the workbook has no income statement sheet.
	ErrSheetNotFound = errors.New("income statement sheet not found")

	// ErrRowNotFound indicates that a required statement row is absent.
	// The wrapped message names the missing row label.
	ErrRowNotFound = errors.New("required statement row not found")

	// ErrInsufficientPeriods indicates that the series is too short for a
	// year-over-year comparison.
	ErrInsufficientPeriods = errors.New("not enough quarters to compare year over year")

	// ErrZeroBaseline indicates that the year-ago revenue is zero, so the
	// growth percentage is undefined.
	ErrZeroBaseline = errors.New("previous-year revenue is zero, growth is undefined")

	// ErrMissingValue indicates that one of the two compared quarters has no
	// usable revenue figure.
	ErrMissingValue = errors.New("revenue is missing for a compared quarter")

	// ErrDocumentFormat indicates that the uploaded document could not be
	// parsed as a PDF.
	ErrDocumentFormat = errors.New("could not read the report document as PDF")

	// ErrNarrativeService indicates that the external narrative service call failed.
	ErrNarrativeService = errors.New("narrative service request failed")
)

// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package diag

import (
	"errors"
	"io/fs"

	"github.com/MultiTechSystems/gs1-payload-schema/gs1"
	"github.com/MultiTechSystems/gs1-payload-schema/scan"
)

// Code is a coarse error class used as a log field.
type Code string

const (
	CodeUnknown Code = "unknown"
	CodeEmpty   Code = "empty"
	CodeFormat  Code = "format"
	CodeStrict  Code = "strict"
	CodeEncode  Code = "encode"
	CodeIO      Code = "io"
)

// Classify maps err onto a Code using sentinels and error types only.
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	if errors.Is(err, scan.ErrEmptyBarcode) {
		return CodeEmpty
	}
	// Strict failures wrap ErrInvalidFormat, so check the detail first.
	var pe *gs1.ParseError
	if errors.As(err, &pe) {
		return CodeStrict
	}
	if errors.Is(err, scan.ErrInvalidFormat) {
		return CodeFormat
	}
	var ee *gs1.EncodeError
	if errors.As(err, &ee) {
		return CodeEncode
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}

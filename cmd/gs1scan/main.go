// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// gs1scan decodes GS1-128 barcode payloads from the command line.
//
// Usage:
//
//	gs1scan decode '011234567890123410LOT1<GS>17231231'
//	scanner-tool | gs1scan decode --format json
//	gs1scan validate --strict '0112345678901234'
//	gs1scan encode --gtin 12345678901234 --expiry 31/12/2023 --lot LOT1
//	gs1scan table --format json
//	gs1scan table --schema
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gs1scan: %v\n", err)
		os.Exit(1)
	}
}

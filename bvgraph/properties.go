// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/magiconair/properties"

	"github.com/dsnet/bvgraph/internal/intcode"
)

// codecVersion is the only graphclass this package understands. An
// unknown graphclass or a missing required key is always a hard
// UnsupportedVersionError — there is no undocumented fallback default.
const codecVersion = "bvgraph.v0"

// Params holds every per-file codec parameter .properties carries, fixed
// for the life of a Graph or Builder.
type Params struct {
	Nodes             int64
	Arcs              int64
	WindowSize        int   // W
	MaxRefCount       int   // R
	MinIntervalLength int   // L_min
	ZetaK             uint  // k for ZETA_k
	Outdegree         intcode.Code
	Reference         intcode.Code
	Block             intcode.Code
	Interval          intcode.Code
	Residual          intcode.Code
}

// DefaultParams returns a commonly-used parameter set: W=7, R=3, L_min=4,
// REFERENCE=unary, OUTDEGREE=gamma, BLOCK=gamma, INTERVAL=gamma,
// RESIDUAL=zeta_3.
func DefaultParams(nodes, arcs int64) Params {
	return Params{
		Nodes:             nodes,
		Arcs:              arcs,
		WindowSize:        7,
		MaxRefCount:       3,
		MinIntervalLength: 4,
		ZetaK:             3,
		Outdegree:         intcode.Gamma,
		Reference:         intcode.Unary,
		Block:             intcode.Gamma,
		Interval:          intcode.Gamma,
		Residual:          intcode.Zeta,
	}
}

// flagsFor returns the compressionflags value stored alongside the other
// properties, derived from the concrete codes chosen for each field.
func flagsFor(p Params) string {
	var flags []string
	switch p.Outdegree {
	case intcode.Gamma:
		flags = append(flags, "OUTDEGREES_GAMMA")
	case intcode.Delta:
		flags = append(flags, "OUTDEGREES_DELTA")
	}
	switch p.Block {
	case intcode.Gamma:
		flags = append(flags, "BLOCKS_GAMMA")
	case intcode.Delta:
		flags = append(flags, "BLOCKS_DELTA")
	}
	switch p.Residual {
	case intcode.Gamma:
		flags = append(flags, "RESIDUALS_GAMMA")
	case intcode.Delta:
		flags = append(flags, "RESIDUALS_DELTA")
	case intcode.Zeta:
		flags = append(flags, "RESIDUALS_ZETA")
	}
	switch p.Reference {
	case intcode.Gamma:
		flags = append(flags, "REFERENCES_GAMMA")
	case intcode.Delta:
		flags = append(flags, "REFERENCES_DELTA")
	case intcode.Unary:
		flags = append(flags, "REFERENCES_UNARY")
	}
	switch p.Interval {
	case intcode.Gamma:
		flags = append(flags, "INTERVALS_GAMMA")
	case intcode.Delta:
		flags = append(flags, "INTERVALS_DELTA")
	}
	return strings.Join(flags, ",")
}

func codeFromFlags(flags []string, gammaFlag, deltaFlag, unaryFlag, zetaFlag string) (intcode.Code, bool) {
	for _, f := range flags {
		switch f {
		case gammaFlag:
			return intcode.Gamma, true
		case deltaFlag:
			return intcode.Delta, true
		case unaryFlag:
			return intcode.Unary, true
		case zetaFlag:
			return intcode.Zeta, true
		}
	}
	return 0, false
}

// SaveProperties writes path as a .properties file describing p, using
// github.com/magiconair/properties — a Java-style `key = value` parser —
// rather than a hand-rolled line scanner.
func SaveProperties(path string, p Params) error {
	props := properties.NewProperties()
	set := func(key, val string) {
		if _, _, err := props.Set(key, val); err != nil {
			panic(err) // only fails on malformed keys, which we never produce
		}
	}
	set("nodes", strconv.FormatInt(p.Nodes, 10))
	set("arcs", strconv.FormatInt(p.Arcs, 10))
	set("windowsize", strconv.Itoa(p.WindowSize))
	set("maxrefcount", strconv.Itoa(p.MaxRefCount))
	set("minintervallength", strconv.Itoa(p.MinIntervalLength))
	set("zetak", strconv.FormatUint(uint64(p.ZetaK), 10))
	set("compressionflags", flagsFor(p))
	set("graphclass", codecVersion)
	set("version", "0")

	f, err := createFile(path)
	if err != nil {
		return &IoError{Path: path, Err: err}
	}
	defer f.Close()
	if _, err := props.Write(f, properties.UTF8); err != nil {
		return &IoError{Path: path, Err: err}
	}
	return nil
}

// LoadProperties reads path and validates every required key is present.
// Missing keys or an unrecognized graphclass fail with
// UnsupportedVersionError; there is no fallback to an undocumented
// default.
func LoadProperties(path string) (Params, error) {
	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Params{}, &IoError{Path: path, Err: err}
	}

	class, ok := props.Get("graphclass")
	if !ok {
		return Params{}, &UnsupportedVersionError{Reason: "missing graphclass key"}
	}
	if class != codecVersion {
		return Params{}, &UnsupportedVersionError{Reason: fmt.Sprintf("unknown graphclass %q", class)}
	}
	if _, ok := props.Get("version"); !ok {
		return Params{}, &UnsupportedVersionError{Reason: "missing required key version"}
	}

	var p Params
	required := map[string]*int64{
		"nodes": &p.Nodes,
		"arcs":  &p.Arcs,
	}
	for key, dst := range required {
		raw, ok := props.Get(key)
		if !ok {
			return Params{}, &UnsupportedVersionError{Reason: "missing required key " + key}
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Params{}, &UnsupportedVersionError{Reason: "malformed " + key + ": " + err.Error()}
		}
		*dst = v
	}

	intRequired := map[string]*int{
		"windowsize":        &p.WindowSize,
		"maxrefcount":       &p.MaxRefCount,
		"minintervallength": &p.MinIntervalLength,
	}
	for key, dst := range intRequired {
		raw, ok := props.Get(key)
		if !ok {
			return Params{}, &UnsupportedVersionError{Reason: "missing required key " + key}
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, &UnsupportedVersionError{Reason: "malformed " + key + ": " + err.Error()}
		}
		*dst = v
	}

	zetaRaw, ok := props.Get("zetak")
	if !ok {
		return Params{}, &UnsupportedVersionError{Reason: "missing required key zetak"}
	}
	zetaK, err := strconv.ParseUint(zetaRaw, 10, 8)
	if err != nil || zetaK < 1 || zetaK > 7 {
		return Params{}, &UnsupportedVersionError{Reason: "zetak out of range [1,7]"}
	}
	p.ZetaK = uint(zetaK)

	flagsRaw, ok := props.Get("compressionflags")
	if !ok {
		return Params{}, &UnsupportedVersionError{Reason: "missing required key compressionflags"}
	}
	flags := strings.Split(flagsRaw, ",")
	for i := range flags {
		flags[i] = strings.TrimSpace(flags[i])
	}

	var got bool
	if p.Outdegree, got = codeFromFlags(flags, "OUTDEGREES_GAMMA", "OUTDEGREES_DELTA", "", ""); !got {
		return Params{}, &UnsupportedVersionError{Reason: "compressionflags missing an OUTDEGREES_* entry"}
	}
	if p.Block, got = codeFromFlags(flags, "BLOCKS_GAMMA", "BLOCKS_DELTA", "", ""); !got {
		return Params{}, &UnsupportedVersionError{Reason: "compressionflags missing a BLOCKS_* entry"}
	}
	if p.Residual, got = codeFromFlags(flags, "RESIDUALS_GAMMA", "RESIDUALS_DELTA", "", "RESIDUALS_ZETA"); !got {
		return Params{}, &UnsupportedVersionError{Reason: "compressionflags missing a RESIDUALS_* entry"}
	}
	if p.Reference, got = codeFromFlags(flags, "REFERENCES_GAMMA", "REFERENCES_DELTA", "REFERENCES_UNARY", ""); !got {
		return Params{}, &UnsupportedVersionError{Reason: "compressionflags missing a REFERENCES_* entry"}
	}
	if p.Interval, got = codeFromFlags(flags, "INTERVALS_GAMMA", "INTERVALS_DELTA", "", ""); !got {
		return Params{}, &UnsupportedVersionError{Reason: "compressionflags missing an INTERVALS_* entry"}
	}

	return p, nil
}

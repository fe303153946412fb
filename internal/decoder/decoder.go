// Package decoder extracts experiment metadata from benchmark result filenames
package decoder

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/su1ph3r/annobench/pkg/types"
)

// minTokens is the token count of the shortest layout (genemarkes)
const minTokens = 6

// Filenames look like
//
//	<tool>_<genus>_<epithet>_<mutrate|original>_<hint|train|abinitio>_<time>_<ram>.csv
//
// genemarkes omits the hint token; a SNAP training species may itself
// contain underscores.
const (
	tokTool = iota
	tokGenus
	tokEpithet
	tokMutRate
	tokSetting
)

// Decode parses a result filename (a bare name or a path) into run metadata.
// It never guesses: any name that does not match a known layout yields an
// *types.UnrecognizedFilenameError.
func Decode(name string) (types.RunMeta, error) {
	base := filepath.Base(name)
	stem := base
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".csv") {
		stem = strings.TrimSuffix(base, ext)
	}
	parts := strings.Split(stem, "_")

	if len(parts) < minTokens {
		return types.RunMeta{}, reject(base, "has %d tokens, need at least %d", len(parts), minTokens)
	}

	kind, ok := types.ParseToolKind(parts[tokTool])
	if !ok {
		return types.RunMeta{}, reject(base, "unknown tool %q", parts[tokTool])
	}

	meta := types.RunMeta{
		Species: parts[tokGenus] + "_" + parts[tokEpithet],
	}

	mut, err := parseMutRate(parts[tokMutRate])
	if err != nil {
		return types.RunMeta{}, reject(base, "bad mutation rate %q", parts[tokMutRate])
	}
	meta.MutRate = mut

	// runtime and memory are always the last two tokens; what lies between
	// the mutation rate and them is the tool-specific setting
	timeAt := len(parts) - 2
	setting := parts[tokSetting:timeAt]

	switch kind {
	case types.ToolGeneMarkES:
		if len(setting) != 0 {
			return types.RunMeta{}, reject(base, "genemarkes takes no setting token, got %q", strings.Join(setting, "_"))
		}
		meta.Variant = types.GeneMarkES{}
	case types.ToolSNAP:
		if len(setting) == 0 {
			return types.RunMeta{}, reject(base, "snap needs a training species")
		}
		meta.Variant = types.SNAP{TrainSpecies: strings.Join(setting, "_")}
	default:
		if len(setting) != 1 {
			return types.RunMeta{}, reject(base, "%s needs exactly one hint token, got %d", kind, len(setting))
		}
		meta.Variant = hinted(kind, types.Hint(setting[0]))
	}

	if meta.TimeSec, err = parseNonNegative(parts[timeAt]); err != nil {
		return types.RunMeta{}, reject(base, "bad runtime %q", parts[timeAt])
	}
	if meta.RAMMB, err = parseNonNegative(parts[timeAt+1]); err != nil {
		return types.RunMeta{}, reject(base, "bad memory %q", parts[timeAt+1])
	}

	return meta, nil
}

// IsResultFile reports whether name has the result file extension
func IsResultFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

func hinted(kind types.ToolKind, h types.Hint) types.Variant {
	switch kind {
	case types.ToolAugustus:
		if h == types.HintAbInitio {
			h = types.HintNone
		}
		return types.Augustus{Hint: h}
	case types.ToolGeneMarkEP:
		return types.GeneMarkEP{Hint: h}
	case types.ToolGeneMarkETP:
		return types.GeneMarkETP{Hint: h}
	}
	return types.GeMoMa{Hint: h}
}

func parseMutRate(tok string) (float64, error) {
	if tok == "original" {
		return 0.0, nil
	}
	return parseNonNegative(tok)
}

func parseNonNegative(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func reject(name, format string, args ...interface{}) error {
	return &types.UnrecognizedFilenameError{Name: name, Reason: fmt.Sprintf(format, args...)}
}

// Package benchmark evaluates gene predictions against a reference
// annotation and writes the per-run metric files read by the loader.
package benchmark

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
)

// Feature is one annotated interval. Start and End are 1-based and
// inclusive.
type Feature struct {
	SeqID  string
	Type   string
	Start  int
	End    int
	Strand byte // '+', '-' or '.'
	Score  float64
}

// ReadFeatures reads a prediction or reference file. Files ending in .txt
// use the line-oriented segment format, .gff3 files are read as GFF3 and
// anything else as GFF.
func ReadFeatures(path string) ([]Feature, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var feats []Feature
	switch ext := filepath.Ext(path); {
	case strings.EqualFold(ext, ".txt"):
		feats, err = ParseSegments(f)
	case strings.EqualFold(ext, ".gff3"):
		feats, err = ParseGFF3(f)
	default:
		feats, err = ParseGFF(f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return feats, nil
}

// gff3Header opens every GFF3 file
const gff3Header = "##gff-version 3"

// ParseGFF reads every feature of a GFF stream. Streams declaring
// "##gff-version 3" before their first feature go to ParseGFF3.
func ParseGFF(r io.Reader) ([]Feature, error) {
	br := bufio.NewReader(r)
	if isGFF3(br) {
		return ParseGFF3(br)
	}
	return parseGFF2(br)
}

// isGFF3 scans the leading comment lines of br for the GFF3 header without
// consuming input
func isGFF3(br *bufio.Reader) bool {
	head, _ := br.Peek(br.Size())
	for len(head) > 0 {
		line := head
		if i := bytes.IndexByte(head, '\n'); i >= 0 {
			line, head = head[:i], head[i+1:]
		} else {
			head = nil
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] != '#' {
			return false
		}
		if bytes.HasPrefix(line, []byte(gff3Header)) {
			return true
		}
	}
	return false
}

func parseGFF2(r io.Reader) ([]Feature, error) {
	sc := featio.NewScanner(gff.NewReader(r))
	var out []Feature
	for sc.Next() {
		g, ok := sc.Feat().(*gff.Feature)
		if !ok {
			continue
		}
		f := Feature{
			SeqID:  g.SeqName,
			Type:   g.Feature,
			Start:  g.FeatStart + 1,
			End:    g.FeatEnd,
			Strand: strandByte(g.FeatStrand),
		}
		if g.FeatScore != nil {
			f.Score = *g.FeatScore
		}
		out = append(out, f)
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseGFF3 reads the first eight columns of each GFF3 feature line.
// Attributes are not parsed. Comment and directive lines are skipped and a
// "##FASTA" directive ends the features.
func ParseGFF3(r io.Reader) ([]Feature, error) {
	var out []Feature
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "##FASTA") {
			break
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f, err := parseGFF3Line(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, f)
	}
	return out, sc.Err()
}

func parseGFF3Line(line string) (Feature, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 8 {
		return Feature{}, fmt.Errorf("gff3: %d columns, need 8", len(cols))
	}
	start, err := strconv.Atoi(cols[3])
	if err != nil {
		return Feature{}, fmt.Errorf("gff3: bad start %q", cols[3])
	}
	end, err := strconv.Atoi(cols[4])
	if err != nil {
		return Feature{}, fmt.Errorf("gff3: bad end %q", cols[4])
	}
	f := Feature{SeqID: cols[0], Type: cols[2], Start: start, End: end, Strand: '.'}
	if cols[5] != "." {
		score, err := strconv.ParseFloat(cols[5], 64)
		if err != nil {
			return Feature{}, fmt.Errorf("gff3: bad score %q", cols[5])
		}
		f.Score = score
	}
	switch cols[6] {
	case "+", "-":
		f.Strand = cols[6][0]
	}
	return f, nil
}

func strandByte(s seq.Strand) byte {
	switch s {
	case seq.Plus:
		return '+'
	case seq.Minus:
		return '-'
	}
	return '.'
}

// ParseSegments reads the segment listing written by GeAnno, one feature
// per line:
//
//	Chromosome: >chr1, Strand: forward, Label: gene, Start: 10, End: 200
//
// Start_Center and End_Center are accepted in place of Start and End.
// Lines without a label, or with a "None" coordinate, are skipped.
func ParseSegments(r io.Reader) ([]Feature, error) {
	var out []Feature
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, "Label:") {
			continue
		}
		if f, ok := parseSegment(line); ok {
			out = append(out, f)
		}
	}
	return out, sc.Err()
}

func parseSegment(line string) (Feature, bool) {
	f := Feature{Strand: '+', Start: -1, End: -1}
	tokens := strings.Fields(line)
	for i := 0; i+1 < len(tokens); i++ {
		val := strings.TrimSuffix(tokens[i+1], ",")
		switch tokens[i] {
		case "Chromosome:":
			f.SeqID = strings.TrimPrefix(val, ">")
		case "Strand:":
			if val == "reverse" {
				f.Strand = '-'
			}
		case "Label:":
			f.Type = val
		case "Start:", "Start_Center:":
			f.Start = coordinate(val)
		case "End:", "End_Center:":
			f.End = coordinate(val)
		default:
			continue
		}
		i++
	}
	ok := f.SeqID != "" && f.Type != "" && f.Start >= 0 && f.End >= 0
	return f, ok
}

func coordinate(s string) int {
	if s == "None" {
		return -1
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return v
}

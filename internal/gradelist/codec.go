package gradelist

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gradebook/internal/grade"
)

// Format selects the on-disk encoding of a grade document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatXML
)

// documentVersion is the only version Deserialize accepts.
const documentVersion = 1

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatXML:
		return "xml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat resolves a format name: json, yaml, yml or xml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xml":
		return FormatXML, nil
	default:
		return 0, fmt.Errorf("unknown format %q: must be one of json, yaml, xml", name)
	}
}

// FormatFromPath picks the format from the file extension, defaulting to
// JSON for anything unrecognised.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatJSON
	}
	return f
}

// document is the JSON and YAML shape of a persisted list.
// Pointer fields distinguish "absent" from zero.
type document struct {
	Version *int    `json:"version" yaml:"version"`
	Grades  []entry `json:"grades" yaml:"grades"`
}

type entry struct {
	Subject string   `json:"subject" yaml:"subject"`
	Score   *float64 `json:"score" yaml:"score"`
}

// xmlDocument matches the files written by the legacy desktop gradebook:
// <ArrayOfStudentGrade><StudentGrade><Course/><Grade/></StudentGrade>...
type xmlDocument struct {
	XMLName xml.Name   `xml:"ArrayOfStudentGrade"`
	Grades  []xmlEntry `xml:"StudentGrade"`
}

type xmlEntry struct {
	Course string   `xml:"Course"`
	Grade  *float64 `xml:"Grade"`
}

func newDocument(records []grade.Record) (*document, error) {
	v := documentVersion
	doc := &document{Version: &v, Grades: make([]entry, 0, len(records))}
	for i, r := range records {
		name, err := r.Subject.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		score := r.Score
		doc.Grades = append(doc.Grades, entry{Subject: string(name), Score: &score})
	}
	return doc, nil
}

// encode renders records front to back in format f.
func encode(records []grade.Record, f Format) ([]byte, error) {
	doc, err := newDocument(records)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	case FormatXML:
		xdoc := xmlDocument{Grades: make([]xmlEntry, 0, len(doc.Grades))}
		for _, e := range doc.Grades {
			xdoc.Grades = append(xdoc.Grades, xmlEntry{Course: e.Subject, Grade: e.Score})
		}
		buf.WriteString(xml.Header)
		enc := xml.NewEncoder(&buf)
		enc.Indent("", "  ")
		if err := enc.Encode(xdoc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
	default:
		return nil, fmt.Errorf("unsupported format %v", f)
	}
	return buf.Bytes(), nil
}

// decode parses a complete document in format f and returns its records
// front to back. Any problem with the content is reported as an error;
// nothing is partially returned.
func decode(data []byte, f Format) ([]grade.Record, error) {
	var (
		doc document
		raw any
	)
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err := dec.Decode(&doc)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if err == nil {
			var extra any
			if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
				return nil, errors.New("parse yaml: more than one document")
			}
		}
	case FormatXML:
		var xdoc xmlDocument
		dec := xml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&xdoc); err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		if err := expectXMLEnd(dec); err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		v := documentVersion
		doc.Version = &v
		doc.Grades = make([]entry, 0, len(xdoc.Grades))
		for _, e := range xdoc.Grades {
			doc.Grades = append(doc.Grades, entry{Subject: e.Course, Score: e.Grade})
		}
		raw = doc.generic()
	default:
		return nil, fmt.Errorf("unsupported format %v", f)
	}

	records, err := doc.records()
	if err != nil {
		return nil, err
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}
	return records, nil
}

// expectXMLEnd consumes the rest of the input after the root element.
// Only whitespace, comments and processing instructions may follow it.
func expectXMLEnd(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return fmt.Errorf("unexpected text %q after root element", string(t))
			}
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		default:
			return fmt.Errorf("unexpected %T after root element", t)
		}
	}
}

// generic converts doc to the untyped tree validateDocument expects.
// Absent scores stay absent so the schema reports them.
func (d *document) generic() map[string]any {
	grades := make([]any, 0, len(d.Grades))
	for _, e := range d.Grades {
		m := map[string]any{"subject": e.Subject}
		if e.Score != nil {
			m["score"] = *e.Score
		}
		grades = append(grades, m)
	}
	out := map[string]any{"grades": grades}
	if d.Version != nil {
		out["version"] = *d.Version
	}
	return out
}

func (d *document) records() ([]grade.Record, error) {
	if d.Version == nil {
		return nil, errors.New("missing version")
	}
	if *d.Version != documentVersion {
		return nil, fmt.Errorf("unsupported version %d", *d.Version)
	}
	if d.Grades == nil {
		return nil, errors.New("missing grades")
	}

	out := make([]grade.Record, 0, len(d.Grades))
	for i, e := range d.Grades {
		var s grade.Subject
		if err := s.UnmarshalText([]byte(e.Subject)); err != nil {
			return nil, fmt.Errorf("grade %d: %w", i, err)
		}
		if e.Score == nil {
			return nil, fmt.Errorf("grade %d: missing score", i)
		}
		if math.IsNaN(*e.Score) || math.IsInf(*e.Score, 0) {
			return nil, fmt.Errorf("grade %d: score is not finite", i)
		}
		out = append(out, grade.New(s, *e.Score))
	}
	return out, nil
}

// Package record parses raw JSON input into rows.
//
// Records are already-flattened key/value objects. Object key order is
// preserved into the row, which the column engine relies on for its
// discovery-order policies; encoding/json is therefore driven at the
// token level rather than through map decoding.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/models"
)

// Mode selects how raw input is interpreted.
type Mode string

const (
	// ModeArray parses the input as a JSON array of objects. A single
	// top-level object is accepted as a one-row array.
	ModeArray Mode = "array"
	// ModeNDJSON parses the input as newline-delimited JSON objects.
	ModeNDJSON Mode = "ndjson"
)

// ParseError reports a malformed input record stream.
type ParseError struct {
	// Line is the 1-based NDJSON line number, 0 when not line-scoped.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid JSON on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("invalid input: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts raw input bytes into rows. If mode is ModeNDJSON but the
// payload's first non-whitespace byte opens a JSON array, the input is
// reinterpreted as array mode and a note is logged.
func Parse(data []byte, mode Mode) ([]*models.Row, error) {
	if mode == ModeNDJSON && bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("[")) {
		log.Warn().Msg("input looks like a JSON array; overriding NDJSON and parsing as array")
		mode = ModeArray
	}
	if mode == ModeNDJSON {
		return parseNDJSON(data)
	}
	return parseArray(data)
}

// parseArray handles a JSON array of objects or a single top-level object.
func parseArray(data []byte) ([]*models.Row, error) {
	dec := newDecoder(data)
	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, &ParseError{Err: fmt.Errorf("expected a JSON array of objects or a single object")}
	}
	switch delim {
	case '[':
		var rows []*models.Row
		for dec.More() {
			row, err := decodeRow(dec)
			if err != nil {
				return nil, &ParseError{Err: err}
			}
			rows = append(rows, row)
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return nil, &ParseError{Err: err}
		}
		if err := expectEOF(dec); err != nil {
			return nil, &ParseError{Err: err}
		}
		return rows, nil
	case '{':
		row, err := decodeObjectBody(dec)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if err := expectEOF(dec); err != nil {
			return nil, &ParseError{Err: err}
		}
		return []*models.Row{row}, nil
	default:
		return nil, &ParseError{Err: fmt.Errorf("expected a JSON array of objects or a single object")}
	}
}

// expectEOF rejects trailing content after the top-level value.
func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected trailing data after JSON value")
	}
	return nil
}

// parseNDJSON handles one JSON object per line; blank lines are skipped.
func parseNDJSON(data []byte) ([]*models.Row, error) {
	var rows []*models.Row
	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		row, err := parseObjectLine(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseObjectLine(line []byte) (*models.Row, error) {
	dec := newDecoder(line)
	row, err := decodeRow(dec)
	if err != nil {
		return nil, err
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return row, nil
}

func newDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

// decodeRow consumes the next value, which must be an object, and returns
// it as a row.
func decodeRow(dec *json.Decoder) (*models.Row, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("each record must be a JSON object (already flattened)")
	}
	return decodeObjectBody(dec)
}

// decodeObjectBody reads key/value pairs up to and including the closing
// brace, assuming the opening brace was already consumed.
func decodeObjectBody(dec *json.Decoder) (*models.Row, error) {
	row := models.NewRow()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		row.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return row, nil
}

// decodeValue normalizes the next JSON value: scalars collapse onto the
// Value variants; nested arrays and objects are stringified to their
// compact JSON text.
func decodeValue(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return models.Null(), err
	}
	switch t := tok.(type) {
	case json.Delim:
		var buf bytes.Buffer
		if err := captureNested(dec, t, &buf); err != nil {
			return models.Null(), err
		}
		return models.Text(buf.String()), nil
	case nil:
		return models.Null(), nil
	case bool:
		return models.Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return models.Null(), err
		}
		return models.Number(f), nil
	case string:
		return models.Text(t), nil
	default:
		return models.Null(), fmt.Errorf("unexpected JSON token %v", tok)
	}
}

// captureNested re-serializes a nested array or object as compact JSON,
// preserving key order.
func captureNested(dec *json.Decoder, open json.Delim, buf *bytes.Buffer) error {
	switch open {
	case '[':
		buf.WriteByte('[')
		first := true
		for dec.More() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			if err := captureToken(dec, tok, buf); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return err
		}
		buf.WriteByte(']')
	case '{':
		buf.WriteByte('{')
		first := true
		for dec.More() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, ok := keyTok.(string)
			if !ok {
				return fmt.Errorf("unexpected object key %v", keyTok)
			}
			encoded, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(encoded)
			buf.WriteByte(':')
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			if err := captureToken(dec, tok, buf); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return err
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unexpected delimiter %v", open)
	}
	return nil
}

func captureToken(dec *json.Decoder, tok json.Token, buf *bytes.Buffer) error {
	switch t := tok.(type) {
	case json.Delim:
		return captureNested(dec, t, buf)
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case json.Number:
		buf.WriteString(t.String())
	case string:
		encoded, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	default:
		return fmt.Errorf("unexpected JSON token %v", tok)
	}
	return nil
}

// Licensed to Elasticsearch B.V. under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Elasticsearch B.V. licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package elastictransport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

// Media types understood by the default serializer registry.
const (
	MimeJSON         = "application/json"
	MimeVendorJSON   = "application/vnd.elasticsearch+json"
	MimeNDJSON       = "application/x-ndjson"
	MimeVendorNDJSON = "application/vnd.elasticsearch+x-ndjson"
	MimeMapboxTile   = "application/vnd.mapbox-vector-tile"
	MimeText         = "text/*"
)

var mimeAliases = map[string]string{
	MimeVendorJSON:   MimeJSON,
	MimeVendorNDJSON: MimeNDJSON,
}

var errNoDecodeInto = errors.New("serializer cannot decode into a value")

// jsonAPI leaves non-ASCII bytes untouched, so strings carrying WTF-8
// encoded lone surrogates are written byte-for-byte.
var jsonAPI = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

var defaultJSONSerializer Serializer = &JSONSerializer{}

// Serializer translates between values and bytes for one media type.
type Serializer interface {
	MimeType() string
	Encode(v any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// JSONSerializer encodes values with json-iterator.
//
// string, []byte, json.RawMessage and io.Reader values are treated as
// already-encoded JSON and forwarded as-is.
type JSONSerializer struct {
	// API overrides the json-iterator configuration.
	API jsoniter.API
}

func (s *JSONSerializer) api() jsoniter.API {
	if s.API != nil {
		return s.API
	}
	return jsonAPI
}

// MimeType implements Serializer.
func (s *JSONSerializer) MimeType() string { return MimeJSON }

// Encode implements Serializer.
func (s *JSONSerializer) Encode(v any) ([]byte, error) {
	if b, ok, err := rawBytes(v); ok || err != nil {
		if err != nil {
			return nil, &SerializationError{ContentType: MimeJSON, Err: err}
		}
		return b, nil
	}
	b, err := s.api().Marshal(v)
	if err != nil {
		return nil, &SerializationError{ContentType: MimeJSON, Err: err}
	}
	return b, nil
}

// Decode implements Serializer. An empty payload decodes to nil.
func (s *JSONSerializer) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var v any
	if err := s.api().Unmarshal(data, &v); err != nil {
		return nil, &SerializationError{ContentType: MimeJSON, Length: len(data), Err: err}
	}
	return v, nil
}

// DecodeInto unmarshals data into v.
func (s *JSONSerializer) DecodeInto(data []byte, v any) error {
	if err := s.api().Unmarshal(data, v); err != nil {
		return &SerializationError{ContentType: MimeJSON, Length: len(data), Err: err}
	}
	return nil
}

// NDJSONSerializer encodes a sequence of documents one per line.
type NDJSONSerializer struct {
	JSON *JSONSerializer
}

func (s *NDJSONSerializer) json() *JSONSerializer {
	if s.JSON != nil {
		return s.JSON
	}
	return defaultJSONSerializer.(*JSONSerializer)
}

// MimeType implements Serializer.
func (s *NDJSONSerializer) MimeType() string { return MimeNDJSON }

// Encode implements Serializer. v is either pre-encoded NDJSON (string,
// []byte, io.Reader) or a slice of documents; string and []byte documents
// are written verbatim.
func (s *NDJSONSerializer) Encode(v any) ([]byte, error) {
	if b, ok, err := rawBytes(v); ok || err != nil {
		if err != nil {
			return nil, &SerializationError{ContentType: MimeNDJSON, Err: err}
		}
		if len(b) > 0 && b[len(b)-1] != '\n' {
			b = append(b, '\n')
		}
		return b, nil
	}

	var docs []any
	switch vv := v.(type) {
	case []any:
		docs = vv
	case []map[string]any:
		for _, d := range vv {
			docs = append(docs, d)
		}
	case []string:
		for _, d := range vv {
			docs = append(docs, d)
		}
	case [][]byte:
		for _, d := range vv {
			docs = append(docs, d)
		}
	case []json.RawMessage:
		for _, d := range vv {
			docs = append(docs, d)
		}
	default:
		return nil, &SerializationError{ContentType: MimeNDJSON, Err: fmt.Errorf("cannot encode %T as NDJSON, expected a slice of documents", v)}
	}

	var buf bytes.Buffer
	for _, doc := range docs {
		line, err := s.json().Encode(doc)
		if err != nil {
			return nil, &SerializationError{ContentType: MimeNDJSON, Length: buf.Len(), Err: err}
		}
		buf.Write(line)
		if len(line) == 0 || line[len(line)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

// Decode implements Serializer, returning every document as []any.
func (s *NDJSONSerializer) Decode(data []byte) (any, error) {
	dec := s.Decoder(bytes.NewReader(data))
	out := []any{}
	for {
		doc, err := dec.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, &SerializationError{ContentType: MimeNDJSON, Length: len(data), Err: err}
		}
		out = append(out, doc)
	}
}

// Decoder returns a lazy line-by-line decoder over r.
func (s *NDJSONSerializer) Decoder(r io.Reader) *NDJSONDecoder {
	return &NDJSONDecoder{r: bufio.NewReader(r), json: s.json()}
}

// NDJSONDecoder yields one document per non-empty line.
type NDJSONDecoder struct {
	r    *bufio.Reader
	json *JSONSerializer
	line int
}

// Next returns the next document, or io.EOF when the input is exhausted.
func (d *NDJSONDecoder) Next() (any, error) {
	for {
		line, err := d.r.ReadBytes('\n')
		if len(line) == 0 && err != nil {
			return nil, err
		}
		d.line++
		if len(bytes.TrimSpace(line)) == 0 {
			if err != nil {
				return nil, err
			}
			continue
		}
		v, derr := d.json.Decode(line)
		if derr != nil {
			return nil, fmt.Errorf("line %d: %w", d.line, derr)
		}
		return v, nil
	}
}

// TextSerializer handles any text/* media type.
type TextSerializer struct{}

// MimeType implements Serializer.
func (TextSerializer) MimeType() string { return "text/plain" }

// Encode implements Serializer.
func (TextSerializer) Encode(v any) ([]byte, error) {
	b, ok, err := rawBytes(v)
	if err != nil || !ok {
		if err == nil {
			err = fmt.Errorf("cannot encode %T as text", v)
		}
		return nil, &SerializationError{ContentType: "text/plain", Err: err}
	}
	return b, nil
}

// Decode implements Serializer.
func (TextSerializer) Decode(data []byte) (any, error) { return string(data), nil }

// BytesSerializer handles opaque binary media types such as vector tiles.
type BytesSerializer struct {
	Mime string
}

// MimeType implements Serializer.
func (s BytesSerializer) MimeType() string { return s.Mime }

// Encode implements Serializer.
func (s BytesSerializer) Encode(v any) ([]byte, error) {
	b, ok, err := rawBytes(v)
	if err != nil || !ok {
		if err == nil {
			err = fmt.Errorf("cannot encode %T as %s", v, s.Mime)
		}
		return nil, &SerializationError{ContentType: s.Mime, Err: err}
	}
	return b, nil
}

// Decode implements Serializer.
func (s BytesSerializer) Decode(data []byte) (any, error) {
	return append([]byte(nil), data...), nil
}

func rawBytes(v any) ([]byte, bool, error) {
	switch vv := v.(type) {
	case string:
		return []byte(vv), true, nil
	case []byte:
		return vv, true, nil
	case json.RawMessage:
		return []byte(vv), true, nil
	case io.Reader:
		b, err := io.ReadAll(vv)
		return b, true, err
	}
	return nil, false, nil
}

// SerializerRegistry resolves serializers by media type. It is immutable
// once constructed.
type SerializerRegistry struct {
	serializers map[string]Serializer
}

// DefaultSerializerRegistry returns a registry with the built-in serializers.
func DefaultSerializerRegistry() *SerializerRegistry {
	r, _ := NewSerializerRegistry(nil, nil)
	return r
}

// NewSerializerRegistry builds a registry from the built-in serializers.
// defaultJSON replaces the JSON serializer; overrides replaces or adds
// serializers by media type. Passing both is a configuration error.
func NewSerializerRegistry(defaultJSON Serializer, overrides map[string]Serializer) (*SerializerRegistry, error) {
	if defaultJSON != nil && len(overrides) > 0 {
		return nil, NewConfigurationError("cannot set both a default JSON serializer and serializer overrides")
	}

	js := defaultJSONSerializer.(*JSONSerializer)
	r := &SerializerRegistry{serializers: map[string]Serializer{
		MimeJSON:       js,
		MimeNDJSON:     &NDJSONSerializer{JSON: js},
		MimeMapboxTile: BytesSerializer{Mime: MimeMapboxTile},
		MimeText:       TextSerializer{},
	}}
	if defaultJSON != nil {
		r.serializers[MimeJSON] = defaultJSON
		if custom, ok := defaultJSON.(*JSONSerializer); ok {
			r.serializers[MimeNDJSON] = &NDJSONSerializer{JSON: custom}
		}
	}
	for mime, s := range overrides {
		if s == nil {
			return nil, NewConfigurationError("nil serializer for media type %q", mime)
		}
		r.serializers[canonicalMimeType(mime)] = s
	}
	return r, nil
}

// Get resolves the serializer for a media type. Parameters are ignored,
// vendor types map onto their plain equivalents and any text/* type falls
// back to the text serializer.
func (r *SerializerRegistry) Get(mimeType string) (Serializer, error) {
	mime := canonicalMimeType(mimeType)
	if s, ok := r.serializers[mime]; ok {
		return s, nil
	}
	if strings.HasPrefix(mime, "text/") {
		if s, ok := r.serializers[MimeText]; ok {
			return s, nil
		}
	}
	return nil, NewConfigurationError("unknown mimetype, not able to serialize or deserialize: %q", mimeType)
}

// JSON returns the serializer used for application/json.
func (r *SerializerRegistry) JSON() Serializer { return r.serializers[MimeJSON] }

// Encode serializes v for the given media type.
func (r *SerializerRegistry) Encode(v any, mimeType string) ([]byte, error) {
	s, err := r.Get(mimeType)
	if err != nil {
		return nil, err
	}
	return s.Encode(v)
}

// Decode deserializes data for the given media type.
func (r *SerializerRegistry) Decode(data []byte, mimeType string) (any, error) {
	s, err := r.Get(mimeType)
	if err != nil {
		return nil, err
	}
	return s.Decode(data)
}

func normalizeMimeType(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(strings.TrimSpace(s))
}

func canonicalMimeType(s string) string {
	m := normalizeMimeType(s)
	if alias, ok := mimeAliases[m]; ok {
		return alias
	}
	return m
}

// AppendWTF8 appends UTF-16 code units to dst. Paired surrogates become
// regular UTF-8; lone surrogates are written with their three-byte
// generalized UTF-8 form instead of U+FFFD.
func AppendWTF8(dst []byte, units []uint16) []byte {
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		if utf16.IsSurrogate(u) {
			if u < 0xDC00 && i+1 < len(units) {
				if r := utf16.DecodeRune(u, rune(units[i+1])); r != utf8.RuneError {
					dst = utf8.AppendRune(dst, r)
					i++
					continue
				}
			}
			dst = append(dst, byte(0xE0|u>>12), byte(0x80|(u>>6)&0x3F), byte(0x80|u&0x3F))
			continue
		}
		dst = utf8.AppendRune(dst, u)
	}
	return dst
}

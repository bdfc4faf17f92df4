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

//go:build !integration
// +build !integration

package elastictransport

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"
)

func TestJSONSerializer(t *testing.T) {
	s := &JSONSerializer{}

	t.Run("Encode", func(t *testing.T) {
		var tests = []struct {
			name string
			in   any
			want string
		}{
			{"Map keys are sorted", map[string]any{"b": 1, "a": "x"}, `{"a":"x","b":1}`},
			{"HTML is not escaped", map[string]any{"q": "<a&b>"}, `{"q":"<a&b>"}`},
			{"Non-ASCII is kept", map[string]any{"q": "你好"}, `{"q":"你好"}`},
			{"String is forwarded", `{"raw":true}`, `{"raw":true}`},
			{"Bytes are forwarded", []byte(`{"raw":1}`), `{"raw":1}`},
			{"RawMessage is forwarded", json.RawMessage(`[1,2]`), `[1,2]`},
			{"Reader is consumed", strings.NewReader(`{"r":1}`), `{"r":1}`},
			{"Struct tags", struct {
				Name string `json:"name"`
				Skip string `json:"skip,omitempty"`
			}{Name: "n"}, `{"name":"n"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := s.Encode(tt.in)
				if err != nil {
					t.Fatalf("Unexpected error: %s", err)
				}
				if string(got) != tt.want {
					t.Errorf("Unexpected output: want=%s, got=%s", tt.want, got)
				}
			})
		}
	})

	t.Run("Encode error", func(t *testing.T) {
		_, err := s.Encode(map[string]any{"c": make(chan int)})
		var serErr *SerializationError
		if !errors.As(err, &serErr) || serErr.ContentType != MimeJSON {
			t.Errorf("Expected SerializationError, got: %v", err)
		}
	})

	t.Run("Decode", func(t *testing.T) {
		got, err := s.Decode([]byte(`{"n":12345678901234567890,"f":1.5,"s":"x","l":[true,null]}`))
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		want := map[string]any{
			"n": json.Number("12345678901234567890"),
			"f": json.Number("1.5"),
			"s": "x",
			"l": []any{true, nil},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Unexpected value (-want +got):\n%s", diff)
		}

		if v, err := s.Decode([]byte("  \n")); err != nil || v != nil {
			t.Errorf("Expected nil for an empty payload, got %v, %v", v, err)
		}
	})

	t.Run("Decode error", func(t *testing.T) {
		_, err := s.Decode([]byte(`{"a":`))
		var serErr *SerializationError
		if !errors.As(err, &serErr) || serErr.Length != 5 {
			t.Errorf("Expected SerializationError, got: %v", err)
		}
	})

	t.Run("Lone surrogates", func(t *testing.T) {
		units := append(utf16.Encode([]rune("你好")), 0xDA6A)
		value := string(AppendWTF8(nil, units))

		got, err := s.Encode(map[string]any{"text": value})
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		want := "{\"text\":\"你好\xed\xa9\xaa\"}"
		if string(got) != want {
			t.Errorf("Unexpected output: want=%q, got=%q", want, got)
		}
	})
}

func TestAppendWTF8(t *testing.T) {
	var tests = []struct {
		name  string
		units []uint16
		want  string
	}{
		{"ASCII", utf16.Encode([]rune("abc")), "abc"},
		{"BMP", utf16.Encode([]rune("é你")), "é你"},
		{"Surrogate pair", utf16.Encode([]rune("😀")), "😀"},
		{"Lone high surrogate", []uint16{'a', 0xDA6A}, "a\xed\xa9\xaa"},
		{"Lone low surrogate", []uint16{0xDC00, 'b'}, "\xed\xb0\x80b"},
		{"Reversed pair", []uint16{0xDE00, 0xD83D}, "\xed\xb8\x80\xed\xa0\xbd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(AppendWTF8(nil, tt.units)); got != tt.want {
				t.Errorf("Unexpected output: want=%q, got=%q", tt.want, got)
			}
		})
	}
}

func TestNDJSONSerializer(t *testing.T) {
	s := &NDJSONSerializer{}

	t.Run("Encode documents", func(t *testing.T) {
		got, err := s.Encode([]any{
			map[string]any{"index": map[string]any{"_index": "books", "_id": "1"}},
			map[string]any{"title": "Dune"},
			`{"delete":{"_id":"2"}}`,
			[]byte(`{"create":{}}`),
		})
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		want := "{\"index\":{\"_id\":\"1\",\"_index\":\"books\"}}\n{\"title\":\"Dune\"}\n{\"delete\":{\"_id\":\"2\"}}\n{\"create\":{}}\n"
		if string(got) != want {
			t.Errorf("Unexpected output:\nwant=%q\ngot= %q", want, got)
		}
	})

	t.Run("Encode typed slices", func(t *testing.T) {
		got, _ := s.Encode([]map[string]any{{"a": 1}, {"b": 2}})
		if string(got) != "{\"a\":1}\n{\"b\":2}\n" {
			t.Errorf("Unexpected output: %q", got)
		}
		got, _ = s.Encode([]string{`{"a":1}`, `{"b":2}`})
		if string(got) != "{\"a\":1}\n{\"b\":2}\n" {
			t.Errorf("Unexpected output: %q", got)
		}
	})

	t.Run("Pre-encoded payload gets a trailing newline", func(t *testing.T) {
		got, _ := s.Encode("{\"a\":1}\n{\"b\":2}")
		if string(got) != "{\"a\":1}\n{\"b\":2}\n" {
			t.Errorf("Unexpected output: %q", got)
		}
	})

	t.Run("Encode error", func(t *testing.T) {
		var serErr *SerializationError
		if _, err := s.Encode(42); !errors.As(err, &serErr) {
			t.Errorf("Expected SerializationError, got: %v", err)
		}
		if _, err := s.Encode([]any{map[string]any{"c": make(chan int)}}); !errors.As(err, &serErr) {
			t.Errorf("Expected SerializationError, got: %v", err)
		}
	})

	t.Run("Decode", func(t *testing.T) {
		got, err := s.Decode([]byte("{\"a\":1}\n\n{\"b\":\"x\"}"))
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		want := []any{map[string]any{"a": json.Number("1")}, map[string]any{"b": "x"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Unexpected value (-want +got):\n%s", diff)
		}

		got, _ = s.Decode(nil)
		if diff := cmp.Diff([]any{}, got); diff != "" {
			t.Errorf("Unexpected value (-want +got):\n%s", diff)
		}
	})

	t.Run("Decode error reports the line", func(t *testing.T) {
		_, err := s.Decode([]byte("{\"a\":1}\n{oops}\n"))
		if err == nil || !strings.Contains(err.Error(), "line 2") {
			t.Errorf("Expected a line 2 error, got: %v", err)
		}
	})

	t.Run("Decoder", func(t *testing.T) {
		dec := s.Decoder(strings.NewReader("{\"a\":1}\n{\"b\":2}\n"))
		var n int
		for {
			_, err := dec.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("Unexpected error: %s", err)
			}
			n++
		}
		if n != 2 {
			t.Errorf("Expected 2 documents, got %d", n)
		}
	})
}

func TestTextAndBytesSerializers(t *testing.T) {
	if got, _ := (TextSerializer{}).Decode([]byte("green")); got != "green" {
		t.Errorf("Unexpected text: %v", got)
	}
	if _, err := (TextSerializer{}).Encode(42); err == nil {
		t.Error("Expected error encoding a number as text")
	}

	s := BytesSerializer{Mime: MimeMapboxTile}
	raw := []byte{0x1a, 0x00}
	got, _ := s.Decode(raw)
	raw[0] = 0xff
	if b := got.([]byte); b[0] != 0x1a {
		t.Error("Expected decoded bytes to be copied")
	}
	if _, err := s.Encode(map[string]any{}); err == nil {
		t.Error("Expected error encoding a map as bytes")
	}
}

func TestSerializerRegistry(t *testing.T) {
	r := DefaultSerializerRegistry()

	var tests = []struct {
		mime string
		want string
	}{
		{"application/json", MimeJSON},
		{"Application/JSON; charset=utf-8", MimeJSON},
		{"application/vnd.elasticsearch+json; compatible-with=8", MimeJSON},
		{"application/x-ndjson", MimeNDJSON},
		{"application/vnd.elasticsearch+x-ndjson", MimeNDJSON},
		{"application/vnd.mapbox-vector-tile", MimeMapboxTile},
		{"text/plain", "text/plain"},
		{"text/csv; charset=utf-8", "text/plain"},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			s, err := r.Get(tt.mime)
			if err != nil {
				t.Fatalf("Unexpected error: %s", err)
			}
			if s.MimeType() != tt.want {
				t.Errorf("Unexpected serializer: want=%s, got=%s", tt.want, s.MimeType())
			}
		})
	}

	t.Run("Unknown media type", func(t *testing.T) {
		_, err := r.Get("application/cbor")
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) || !strings.Contains(err.Error(), "unknown mimetype") {
			t.Errorf("Expected ConfigurationError, got: %v", err)
		}
		if _, err := r.Encode(map[string]any{}, "application/cbor"); err == nil {
			t.Error("Expected error")
		}
	})

	t.Run("Custom default JSON serializer", func(t *testing.T) {
		custom := &JSONSerializer{}
		r, err := NewSerializerRegistry(custom, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		if r.JSON() != Serializer(custom) {
			t.Error("Expected the custom serializer")
		}
		nd, _ := r.Get(MimeNDJSON)
		if nd.(*NDJSONSerializer).JSON != custom {
			t.Error("Expected NDJSON to reuse the custom JSON serializer")
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		cbor := BytesSerializer{Mime: "application/cbor"}
		r, err := NewSerializerRegistry(nil, map[string]Serializer{"Application/CBOR": cbor})
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		s, err := r.Get("application/cbor")
		if err != nil || s != Serializer(cbor) {
			t.Errorf("Expected the override, got %v, %v", s, err)
		}
	})

	t.Run("Invalid configuration", func(t *testing.T) {
		if _, err := NewSerializerRegistry(&JSONSerializer{}, map[string]Serializer{MimeNDJSON: &NDJSONSerializer{}}); err == nil {
			t.Error("Expected error for default and overrides")
		}
		if _, err := NewSerializerRegistry(nil, map[string]Serializer{MimeJSON: nil}); err == nil {
			t.Error("Expected error for a nil serializer")
		}
	})

	t.Run("Round trip", func(t *testing.T) {
		b, err := r.Encode(map[string]any{"a": []any{1, "x"}}, MimeJSON)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		v, err := r.Decode(b, "application/vnd.elasticsearch+json")
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		want := map[string]any{"a": []any{json.Number("1"), "x"}}
		if diff := cmp.Diff(want, v); diff != "" {
			t.Errorf("Unexpected value (-want +got):\n%s", diff)
		}
	})
}

func TestObjectResponseDecode(t *testing.T) {
	res := &ObjectResponse{Raw: []byte(`{"_id":"1","found":true}`)}
	var doc struct {
		ID    string `json:"_id"`
		Found bool   `json:"found"`
	}
	if err := res.Decode(&doc); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if doc.ID != "1" || !doc.Found {
		t.Errorf("Unexpected value: %+v", doc)
	}

	res = &ObjectResponse{Raw: []byte(`{}`), serializer: TextSerializer{}}
	var serErr *SerializationError
	if err := res.Decode(&doc); !errors.As(err, &serErr) {
		t.Errorf("Expected SerializationError, got: %v", err)
	}
}

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
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"sync"
)

const defaultCompressionLevel = gzip.DefaultCompression

type gzipCompressor interface {
	// compress returns the gzip compressed form of body.
	compress(body []byte) (*bytes.Buffer, error)
	// collectBuffer hands a buffer returned by compress back for reuse.
	collectBuffer(*bytes.Buffer)
}

// simpleGzipCompressor creates a new gzip.Writer for each call.
type simpleGzipCompressor struct {
	level int
}

func newSimpleGzipCompressor(level int) gzipCompressor {
	return &simpleGzipCompressor{level: level}
}

func (sg *simpleGzipCompressor) compress(body []byte) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, sg.level)
	if err != nil {
		return nil, fmt.Errorf("failed setting up request body compression (level %d): %w", sg.level, err)
	}
	if _, err = zw.Write(body); err != nil {
		return nil, fmt.Errorf("failed to compress request body: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress request body (during close): %w", err)
	}
	return &buf, nil
}

func (sg *simpleGzipCompressor) collectBuffer(*bytes.Buffer) {}

// pooledGzipCompressor reuses writers and buffers through sync.Pool.
type pooledGzipCompressor struct {
	writers *sync.Pool
	buffers *sync.Pool
	level   int
}

type pooledWriter struct {
	writer *gzip.Writer
	err    error
}

func newPooledGzipCompressor(level int) gzipCompressor {
	return &pooledGzipCompressor{
		writers: &sync.Pool{New: func() any {
			w, err := gzip.NewWriterLevel(io.Discard, level)
			return &pooledWriter{writer: w, err: err}
		}},
		buffers: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
		level:   level,
	}
}

func (pg *pooledGzipCompressor) compress(body []byte) (*bytes.Buffer, error) {
	w := pg.writers.Get().(*pooledWriter)
	defer pg.writers.Put(w)
	if w.err != nil {
		return nil, fmt.Errorf("failed setting up request body compression (level %d): %w", pg.level, w.err)
	}

	buf := pg.buffers.Get().(*bytes.Buffer)
	buf.Reset()
	w.writer.Reset(buf)

	if _, err := w.writer.Write(body); err != nil {
		pg.buffers.Put(buf)
		return nil, fmt.Errorf("failed to compress request body: %w", err)
	}
	if err := w.writer.Close(); err != nil {
		pg.buffers.Put(buf)
		return nil, fmt.Errorf("failed to compress request body (during close): %w", err)
	}
	return buf, nil
}

func (pg *pooledGzipCompressor) collectBuffer(buf *bytes.Buffer) {
	pg.buffers.Put(buf)
}

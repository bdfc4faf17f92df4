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
	"strconv"
	"strings"
	"sync"
)

// Warning categories.
const (
	// CategoryElasticsearch marks warnings returned by the server in the
	// Warning response header.
	CategoryElasticsearch = "ElasticsearchWarning"
	// CategoryGeneralAvailability marks calls to beta or experimental APIs.
	CategoryGeneralAvailability = "GeneralAvailabilityWarning"
	// CategoryDeprecation marks calls to deprecated APIs.
	CategoryDeprecation = "DeprecationWarning"
)

// Warning is a non-fatal notice surfaced alongside a response.
type Warning struct {
	Category string
	Code     int
	Agent    string
	Text     string
	Endpoint string
}

func (w Warning) String() string {
	if w.Category == "" {
		return w.Text
	}
	return w.Category + ": " + w.Text
}

// WarningHandler receives published warnings.
type WarningHandler func(Warning)

// WarningBroker fans warnings out to subscribers. The zero value is ready
// to use and safe for concurrent use.
type WarningBroker struct {
	mu   sync.RWMutex
	next int
	subs map[int]WarningHandler
}

// DefaultWarningBroker is the process-wide broker used when a client is not
// configured with its own.
var DefaultWarningBroker = &WarningBroker{}

// Subscribe registers fn and returns a function removing it.
func (b *WarningBroker) Subscribe(fn WarningHandler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]WarningHandler)
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers w to every subscriber.
func (b *WarningBroker) Publish(w Warning) {
	b.mu.RLock()
	handlers := make([]WarningHandler, 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(w)
	}
}

// ParseWarningHeaders parses Warning header values of the form
//
//	299 Elasticsearch-8.0.0-abcdef "text" ["date"]
//
// Several entries may share one header value, separated by commas. Entries
// which do not follow the format are returned whole as the text.
func ParseWarningHeaders(values []string) []Warning {
	var out []Warning
	for _, v := range values {
		for _, entry := range splitWarningEntries(v) {
			out = append(out, parseWarningEntry(entry))
		}
	}
	return out
}

func splitWarningEntries(v string) []string {
	var (
		entries []string
		inQuote bool
		escaped bool
		start   int
	)
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inQuote:
			escaped = true
		case c == '"':
			inQuote = !inQuote
		case c == ',' && !inQuote:
			if e := strings.TrimSpace(v[start:i]); e != "" {
				entries = append(entries, e)
			}
			start = i + 1
		}
	}
	if e := strings.TrimSpace(v[start:]); e != "" {
		entries = append(entries, e)
	}
	return entries
}

func parseWarningEntry(entry string) Warning {
	w := Warning{Category: CategoryElasticsearch, Text: entry}

	codeEnd := strings.IndexByte(entry, ' ')
	if codeEnd <= 0 {
		return w
	}
	code, err := strconv.Atoi(entry[:codeEnd])
	if err != nil {
		return w
	}
	rest := strings.TrimLeft(entry[codeEnd:], " ")
	agentEnd := strings.IndexByte(rest, ' ')
	if agentEnd <= 0 {
		return w
	}
	agent := rest[:agentEnd]
	rest = strings.TrimLeft(rest[agentEnd:], " ")
	text, ok := unquoteWarningText(rest)
	if !ok {
		return w
	}
	return Warning{Category: CategoryElasticsearch, Code: code, Agent: agent, Text: text}
}

// unquoteWarningText reads the leading quoted-string of s.
func unquoteWarningText(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' {
		return "", false
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}
		case '"':
			return b.String(), true
		default:
			b.WriteByte(c)
		}
	}
	return "", false
}

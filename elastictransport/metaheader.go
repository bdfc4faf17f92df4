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
	"runtime"
	"strings"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport/version"
)

const (
	headerClientMeta     = "X-Elastic-Client-Meta"
	headerOpaqueID       = "X-Opaque-Id"
	headerProduct        = "X-Elastic-Product"
	headerUserAgent      = "User-Agent"
	headerAuthorization  = "Authorization"
	headerContentType    = "Content-Type"
	headerWarning        = "Warning"
	expectedProductValue = "Elasticsearch"
)

// reservedHeaders can only be set by the transport itself.
var reservedHeaders = []string{headerClientMeta}

// MetaVersion reduces a version string to the client-meta grammar
// [0-9.]+p? where the "p" suffix marks a pre-release.
func MetaVersion(v string) string {
	start := strings.IndexAny(v, "0123456789")
	if start < 0 {
		return "0p"
	}
	v = v[start:]
	end := 0
	for end < len(v) && (v[end] == '.' || (v[end] >= '0' && v[end] <= '9')) {
		end++
	}
	num := strings.TrimRight(v[:end], ".")
	if num == "" {
		num = "0"
	}
	if end < len(v) {
		return num + "p"
	}
	return num
}

// buildMetaHeader returns the x-elastic-client-meta value, e.g.
// "es=8.13.0,go=1.21.5,t=8.0.0,hc=1.21.5".
func buildMetaHeader(clientKey, clientVersion string, nodeKey, nodeVersion string) string {
	var parts []string
	if clientKey != "" && clientVersion != "" {
		parts = append(parts, clientKey+"="+MetaVersion(clientVersion))
	}
	parts = append(parts,
		"go="+MetaVersion(runtime.Version()),
		"t="+MetaVersion(version.Transport),
	)
	if nodeKey != "" && nodeVersion != "" {
		parts = append(parts, nodeKey+"="+MetaVersion(nodeVersion))
	}
	return strings.Join(parts, ",")
}

func defaultUserAgent() string {
	return "elastic-transport-go/" + version.Transport + " (" + runtime.GOOS + " " + runtime.GOARCH + "; Go " + strings.TrimPrefix(runtime.Version(), "go") + ")"
}

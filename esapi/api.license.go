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

package esapi

import (
	"context"
	"net/http"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
)

var licenseGetEndpoint = Endpoint{
	ID:     "license.get",
	Method: http.MethodGet,
	Paths:  []Path{{Template: "/_license"}},
	Accept: mimeJSON,
}

// Get returns the license of the project.
func (c *License) Get(ctx context.Context) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &licenseGetEndpoint, nil)
}

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
	"sync"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
)

const (
	betaWarning = "This API is in beta and is subject to change. The design and code is less mature " +
		"than official GA features and is being provided as-is with no warranties. Beta features " +
		"are not subject to the support SLA of official GA features."
	experimentalWarning = "This API is in technical preview and may be changed or removed in a future " +
		"release. Elastic will work to fix any issues, but features in technical preview are not " +
		"subject to the support SLA of official GA features."
)

// stabilityWarner publishes the stability and deprecation warning of an
// endpoint once per client.
type stabilityWarner struct {
	seen sync.Map
}

func (w *stabilityWarner) warn(broker *elastictransport.WarningBroker, e *Endpoint) {
	if broker == nil {
		return
	}
	if e.Stability != Stable {
		if _, loaded := w.seen.LoadOrStore("stability:"+e.ID, struct{}{}); !loaded {
			text := betaWarning
			if e.Stability == Experimental {
				text = experimentalWarning
			}
			broker.Publish(elastictransport.Warning{
				Category: elastictransport.CategoryGeneralAvailability,
				Text:     text,
				Endpoint: e.ID,
			})
		}
	}
	if e.Deprecated != "" {
		if _, loaded := w.seen.LoadOrStore("deprecated:"+e.ID, struct{}{}); !loaded {
			broker.Publish(elastictransport.Warning{
				Category: elastictransport.CategoryDeprecation,
				Text:     e.Deprecated,
				Endpoint: e.ID,
			})
		}
	}
}

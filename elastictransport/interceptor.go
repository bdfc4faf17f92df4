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

import "net/http"

// RoundTripFunc is the signature of a single HTTP exchange performed by
// an HTTPNode.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// InterceptorFunc wraps a RoundTripFunc. Interceptors run on every attempt,
// retries included.
type InterceptorFunc func(next RoundTripFunc) RoundTripFunc

// HeaderInterceptor sets the given headers on every outgoing request,
// replacing values computed by the client.
func HeaderInterceptor(header http.Header) InterceptorFunc {
	return func(next RoundTripFunc) RoundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			for k, vv := range header {
				req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vv...)
			}
			return next(req)
		}
	}
}

// mergeInterceptors folds interceptors into one; the first interceptor is
// the outermost.
func mergeInterceptors(interceptors []InterceptorFunc) InterceptorFunc {
	return func(next RoundTripFunc) RoundTripFunc {
		fn := next
		for i := len(interceptors) - 1; i >= 0; i-- {
			if interceptors[i] != nil {
				fn = interceptors[i](fn)
			}
		}
		return fn
	}
}

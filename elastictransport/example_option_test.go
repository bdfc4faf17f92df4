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

package elastictransport_test

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
	"github.com/elastic/elasticsearch-serverless-go/elastictransport/elastictransporttest"
)

func ExampleNewClient() {
	tp, err := elastictransport.NewClient(
		elastictransport.WithAddresses("http://localhost:9200"),
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(tp.Nodes()[0].Key())
	// Output: http://localhost:9200
}

func ExampleNewClient_apiKey() {
	_, err := elastictransport.NewClient(
		elastictransport.WithAddresses("https://my-project.es.eu-west-1.aws.elastic.cloud"),
		elastictransport.WithAPIKey("VnVhQ2ZHY0JDZGJrUW0tZTVhT3g6dWkybHAyYXhUTm1zeWFrdzl0dk5udw=="),
	)
	if err != nil {
		panic(err)
	}

	fmt.Println("client created with an API key")
	// Output: client created with an API key
}

func ExampleNewClient_multipleNodes() {
	tp, err := elastictransport.NewClient(
		elastictransport.WithAddresses("http://es01:9200", "http://es02:9200", "http://es03:9200"),
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(tp.Nodes()))
	// Output: 3
}

func ExampleNewClient_retries() {
	_, err := elastictransport.NewClient(
		elastictransport.WithAddresses("http://localhost:9200"),
		elastictransport.WithRetry(5, 429, 502, 503, 504),
		elastictransport.WithRetryBackoff(func(attempt int) time.Duration {
			return time.Duration(attempt) * 100 * time.Millisecond
		}),
	)
	if err != nil {
		panic(err)
	}

	fmt.Println("client created with custom retry config")
	// Output: client created with custom retry config
}

func ExampleNewClient_compression() {
	_, err := elastictransport.NewClient(
		elastictransport.WithAddresses("http://localhost:9200"),
		elastictransport.WithCompression(gzip.BestSpeed),
	)
	if err != nil {
		panic(err)
	}

	fmt.Println("client created with compression")
	// Output: client created with compression
}

func ExampleNewClient_interceptors() {
	loggingInterceptor := func(next elastictransport.RoundTripFunc) elastictransport.RoundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			fmt.Printf("-> %s %s\n", req.Method, req.URL.Path)
			return next(req)
		}
	}

	_, err := elastictransport.NewClient(
		elastictransport.WithAddresses("http://localhost:9200"),
		elastictransport.WithInterceptors(loggingInterceptor),
	)
	if err != nil {
		panic(err)
	}

	fmt.Println("client created with interceptors")
	// Output: client created with interceptors
}

func ExampleClient_Perform() {
	tp, err := elastictransport.NewClient(
		elastictransport.WithAddresses("http://localhost:9200"),
		elastictransport.WithNodeFactory(elastictransporttest.NodeFactory(nil,
			elastictransporttest.JSON(200, `{"cluster_name":"serverless"}`),
		)),
	)
	if err != nil {
		panic(err)
	}

	res, err := tp.Perform(context.Background(), &elastictransport.Request{Method: "GET", Path: "/"})
	if err != nil {
		panic(err)
	}

	var info struct {
		ClusterName string `json:"cluster_name"`
	}
	if err := res.(*elastictransport.ObjectResponse).Decode(&info); err != nil {
		panic(err)
	}
	fmt.Println(info.ClusterName)
	// Output: serverless
}

func ExampleApiError() {
	tp, _ := elastictransport.NewClient(
		elastictransport.WithAddresses("http://localhost:9200"),
		elastictransport.WithNodeFactory(elastictransporttest.NodeFactory(nil,
			elastictransporttest.JSON(404, `{"error":{"type":"index_not_found_exception","reason":"no such index [foo]"},"status":404}`),
		)),
	)

	_, err := tp.Perform(context.Background(), &elastictransport.Request{Method: "GET", Path: "/foo/_doc/1"})
	if errors.Is(err, elastictransport.ErrNotFound) {
		fmt.Println(err)
	}
	// Output: NotFound(404, 'index_not_found_exception', 'no such index [foo]')
}

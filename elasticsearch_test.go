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

package elasticsearch_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/elastic/elasticsearch-serverless-go"
	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
	"github.com/elastic/elasticsearch-serverless-go/elastictransport/elastictransporttest"
	"github.com/elastic/elasticsearch-serverless-go/esapi"
)

var metaHeaderRE = regexp.MustCompile(`^[a-z]+=[0-9.]+p?(,[a-z]+=[0-9.]+p?)*$`)

func newTestClient(t *testing.T, responses []elastictransporttest.Response, opts ...elastictransport.Option) (*elasticsearch.Client, *elastictransporttest.DummyNode) {
	t.Helper()
	var nodes []*elastictransporttest.DummyNode
	base := []elastictransport.Option{
		elastictransport.WithAddresses("http://localhost:9200"),
		elastictransport.WithNodeFactory(elastictransporttest.NodeFactory(&nodes, responses...)),
		elastictransport.WithWarningBroker(&elastictransport.WarningBroker{}),
	}
	es, err := elasticsearch.NewClient(append(base, opts...)...)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(nodes))
	}
	return es, nodes[0]
}

func TestClientOpaqueID(t *testing.T) {
	es, node := newTestClient(t, []elastictransporttest.Response{
		elastictransporttest.JSON(http.StatusOK, `{"tagline":"You Know, for Search"}`),
	}, elastictransport.WithOpaqueID("app-1"))

	res, err := es.Info(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	body, ok := res.Body.(map[string]any)
	if !ok || body["tagline"] != "You Know, for Search" {
		t.Errorf("Unexpected body: %#v", res.Body)
	}

	if _, err := es.Options(esapi.WithOpaqueID("request-2")).Info(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	calls := node.Calls()
	if len(calls) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(calls))
	}
	if calls[0].Method != http.MethodGet || calls[0].Target != "/" {
		t.Errorf("Unexpected request: %s %s", calls[0].Method, calls[0].Target)
	}
	if got := calls[0].Header.Get("X-Opaque-Id"); got != "app-1" {
		t.Errorf("Unexpected opaque id: %q", got)
	}
	if got := calls[1].Header.Get("X-Opaque-Id"); got != "request-2" {
		t.Errorf("Unexpected opaque id: %q", got)
	}
}

func TestClientRetryThenFailure(t *testing.T) {
	es, node := newTestClient(t,
		[]elastictransporttest.Response{{Err: elastictransporttest.ErrConnectionRefused}},
		elastictransport.WithMaxRetries(3),
	)

	_, err := es.Info(context.Background())
	var connErr *elastictransport.ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("Expected ConnectionError, got %T: %v", err, err)
	}
	if len(connErr.Errors) != 4 {
		t.Errorf("Expected 4 attempt errors, got %d", len(connErr.Errors))
	}
	if !errors.Is(err, elastictransporttest.ErrConnectionRefused) {
		t.Errorf("Expected error to wrap the node error")
	}
	if n := len(node.Calls()); n != 4 {
		t.Errorf("Expected 4 attempts, got %d", n)
	}

	statuses := es.NodeStatuses()
	if len(statuses) != 1 || !statuses[0].IsDead {
		t.Errorf("Expected node to be dead, got %v", statuses)
	}
}

func TestClientUnsupportedProduct(t *testing.T) {
	t.Run("Fails on 2xx", func(t *testing.T) {
		es, node := newTestClient(t, []elastictransporttest.Response{{
			Status: http.StatusOK,
			Header: http.Header{"X-Elastic-Product": {"BAD HEADER"}, "Content-Type": {"application/json"}},
			Body:   []byte(`{}`),
		}})

		res, err := es.Info(context.Background())
		if res != nil {
			t.Errorf("Expected no response, got %v", res)
		}
		var productErr *elastictransport.UnsupportedProductError
		if !errors.As(err, &productErr) {
			t.Fatalf("Expected UnsupportedProductError, got %T: %v", err, err)
		}
		if !strings.Contains(err.Error(), "not Elasticsearch") {
			t.Errorf("Unexpected message: %s", err)
		}
		if n := len(node.Calls()); n != 1 {
			t.Errorf("Expected 1 request, got %d", n)
		}
	})

	t.Run("Is suppressed on 500", func(t *testing.T) {
		es, _ := newTestClient(t, []elastictransporttest.Response{{
			Status: http.StatusInternalServerError,
			Header: http.Header{"X-Elastic-Product": {"BAD HEADER"}, "Content-Type": {"application/json"}},
			Body:   []byte(`{}`),
		}})

		_, err := es.Info(context.Background())
		var productErr *elastictransport.UnsupportedProductError
		if errors.As(err, &productErr) {
			t.Fatalf("Unexpected UnsupportedProductError")
		}
		var apiErr *elastictransport.ApiError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Expected ApiError, got %T: %v", err, err)
		}
		if apiErr.Kind != elastictransport.KindInternalServerError || apiErr.Status != 500 {
			t.Errorf("Unexpected error: %s", apiErr)
		}
		if !errors.Is(err, elastictransport.ErrInternalServerError) {
			t.Errorf("Expected errors.Is to match ErrInternalServerError")
		}
	})
}

func TestClientSurrogateBody(t *testing.T) {
	es, node := newTestClient(t, nil)

	units := append(utf16.Encode([]rune("你好")), 0xDA6A)
	match := string(elastictransport.AppendWTF8(nil, units))

	_, err := es.Search(context.Background(), esapi.SearchRequest{
		Body: map[string]any{"query": map[string]any{"match": match}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	want := "{\"query\":{\"match\":\"\xe4\xbd\xa0\xe5\xa5\xbd\xed\xa9\xaa\"}}"
	if got := string(node.Calls()[0].Body); got != want {
		t.Errorf("Unexpected body: %q, want: %q", got, want)
	}
}

func TestClientParameterConflict(t *testing.T) {
	es, node := newTestClient(t, nil)

	_, err := es.Indices.PutSettings(context.Background(), esapi.IndicesPutSettingsRequest{
		Settings: map[string]any{"index": map[string]any{"number_of_replicas": 1}},
		Body:     map[string]any{"index": map[string]any{"number_of_replicas": 2}},
	})
	var cfgErr *elastictransport.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "settings") || !strings.Contains(err.Error(), "body") {
		t.Errorf("Expected both parameters in message, got: %s", err)
	}
	if n := len(node.Calls()); n != 0 {
		t.Errorf("Expected no request, got %d", n)
	}
}

func TestClientMetaHeader(t *testing.T) {
	t.Run("Matches the grammar", func(t *testing.T) {
		es, node := newTestClient(t, nil)
		if _, err := es.Info(context.Background()); err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		got := node.Calls()[0].Header.Get("X-Elastic-Client-Meta")
		if !metaHeaderRE.MatchString(got) {
			t.Errorf("Unexpected meta header: %q", got)
		}
		if !strings.HasPrefix(got, "es="+elastictransport.MetaVersion(elasticsearch.Version)+",") {
			t.Errorf("Expected client version first, got: %q", got)
		}
	})

	t.Run("Is absent when disabled", func(t *testing.T) {
		es, node := newTestClient(t, nil, elastictransport.WithDisableMetaHeader())
		if _, err := es.Info(context.Background()); err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		if values := node.Calls()[0].Header.Values("X-Elastic-Client-Meta"); len(values) != 0 {
			t.Errorf("Unexpected meta header: %q", values)
		}
	})

	t.Run("Cannot be overridden by the caller", func(t *testing.T) {
		es, node := newTestClient(t, nil)
		_, err := es.Options(esapi.WithHeader(http.Header{"x-elastic-client-meta": {"custom=1"}})).Info(context.Background())
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		values := node.Calls()[0].Header.Values("X-Elastic-Client-Meta")
		if len(values) != 1 || !metaHeaderRE.MatchString(values[0]) {
			t.Errorf("Unexpected meta header: %q", values)
		}
	})
}

func TestClientHeaderPrecedence(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		es, node := newTestClient(t, nil)
		if _, err := es.Info(context.Background()); err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		ua := node.Calls()[0].Header.Values("User-Agent")
		if len(ua) != 1 || !strings.HasPrefix(ua[0], "elasticsearch-serverless-go/"+elasticsearch.Version+" (") {
			t.Errorf("Unexpected user agent: %q", ua)
		}
	})

	t.Run("Client over default", func(t *testing.T) {
		es, node := newTestClient(t, nil, elastictransport.WithHeader(http.Header{"user-agent": {"client"}}))
		if _, err := es.Info(context.Background()); err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		if ua := node.Calls()[0].Header.Values("User-Agent"); len(ua) != 1 || ua[0] != "client" {
			t.Errorf("Unexpected user agent: %q", ua)
		}
	})

	t.Run("Call over client", func(t *testing.T) {
		es, node := newTestClient(t, nil, elastictransport.WithHeader(http.Header{"User-Agent": {"client"}}))
		_, err := es.Options(esapi.WithHeader(http.Header{"user-agent": {"call"}})).Info(context.Background())
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		if ua := node.Calls()[0].Header.Values("User-Agent"); len(ua) != 1 || ua[0] != "call" {
			t.Errorf("Unexpected user agent: %q", ua)
		}
	})
}

func TestClientAuthorization(t *testing.T) {
	es, node := newTestClient(t, nil, elastictransport.WithAPIKey("c2VjcmV0"))
	if _, err := es.Info(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if got := node.Calls()[0].Header.Get("Authorization"); got != "ApiKey c2VjcmV0" {
		t.Errorf("Unexpected authorization: %q", got)
	}
}

func TestClientWarnings(t *testing.T) {
	res := elastictransporttest.JSON(http.StatusOK, `{}`)
	res.Header.Add("Warning", `299 Elasticsearch-8.14.0-abc "[index] is deprecated, use [other]"`)
	res.Header.Add("Warning", `299 Elasticsearch-8.14.0-abc "second warning"`)
	es, _ := newTestClient(t, []elastictransporttest.Response{res})

	var published []elastictransport.Warning
	es.Warnings().Subscribe(func(w elastictransport.Warning) { published = append(published, w) })

	info, err := es.Info(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if len(published) != 2 {
		t.Fatalf("Expected 2 warnings, got %d", len(published))
	}
	if published[0].Text != "[index] is deprecated, use [other]" || published[1].Text != "second warning" {
		t.Errorf("Unexpected warnings: %v", published)
	}
	if published[0].Category != elastictransport.CategoryElasticsearch || published[0].Endpoint != "info" {
		t.Errorf("Unexpected warning: %+v", published[0])
	}
	if len(info.Meta.Warnings) != 2 {
		t.Errorf("Expected warnings on the response meta, got %v", info.Meta.Warnings)
	}
}

func TestClientHead(t *testing.T) {
	es, _ := newTestClient(t, []elastictransporttest.Response{
		elastictransporttest.JSON(http.StatusOK, ""),
		elastictransporttest.JSON(http.StatusNotFound, ""),
	})

	res, err := es.Indices.Exists(context.Background(), esapi.IndicesExistsRequest{Index: []string{"books"}})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if !res.Body {
		t.Error("Expected true on 200")
	}

	res, err = es.Indices.Exists(context.Background(), esapi.IndicesExistsRequest{Index: []string{"books"}})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if res.Body {
		t.Error("Expected false on 404")
	}
}

func TestClientIgnoreStatus(t *testing.T) {
	es, _ := newTestClient(t, []elastictransporttest.Response{
		elastictransporttest.JSON(http.StatusNotFound, `{"error":{"type":"index_not_found_exception","reason":"no such index [books]"},"status":404}`),
	})

	_, err := es.Indices.Delete(context.Background(), esapi.IndicesDeleteRequest{Index: []string{"books"}})
	if !errors.Is(err, elastictransport.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "index_not_found_exception") {
		t.Errorf("Expected error type in message, got: %s", err)
	}

	res, err := es.Options(esapi.WithIgnoreStatus(404)).Indices.Delete(context.Background(), esapi.IndicesDeleteRequest{Index: []string{"books"}})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if res.Meta.Status != http.StatusNotFound {
		t.Errorf("Unexpected status: %d", res.Meta.Status)
	}
}

func TestClientCat(t *testing.T) {
	es, node := newTestClient(t, []elastictransporttest.Response{
		elastictransporttest.Text(http.StatusOK, "green open books\n"),
	})

	res, err := es.Cat.Indices(context.Background(), esapi.CatIndicesRequest{Index: []string{"books"}})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	text, ok := res.(*elastictransport.TextResponse)
	if !ok {
		t.Fatalf("Expected TextResponse, got %T", res)
	}
	if text.Body != "green open books\n" {
		t.Errorf("Unexpected body: %q", text.Body)
	}
	if got := node.Calls()[0].Target; got != "/_cat/indices/books" {
		t.Errorf("Unexpected target: %s", got)
	}
}

func TestClientRequestTimeout(t *testing.T) {
	es, node := newTestClient(t, []elastictransporttest.Response{{Err: elastictransporttest.ErrTimeout}})

	_, err := es.Options(esapi.WithRequestTimeout(50 * time.Millisecond)).Info(context.Background())
	var timeoutErr *elastictransport.ConnectionTimeout
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Expected ConnectionTimeout, got %T: %v", err, err)
	}
	calls := node.Calls()
	if len(calls) != 1 {
		t.Errorf("Expected timeouts not to be retried, got %d attempts", len(calls))
	}
	if calls[0].Timeout != 50*time.Millisecond {
		t.Errorf("Unexpected timeout: %s", calls[0].Timeout)
	}
}

func TestClientClose(t *testing.T) {
	es, node := newTestClient(t, nil)
	if err := es.Close(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if !node.Closed() {
		t.Error("Expected node to be closed")
	}
	if _, err := es.Info(context.Background()); !errors.Is(err, elastictransport.ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if err := es.Close(context.Background()); err != nil {
		t.Errorf("Expected Close to be idempotent, got %s", err)
	}
}

func TestClientRequiresAddress(t *testing.T) {
	_, err := elasticsearch.NewClient()
	var cfgErr *elastictransport.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %T: %v", err, err)
	}
}

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
	"context"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ConfigureTLS applies the node TLS settings to transport in place.
//
// With a certificate fingerprint the chain is accepted when one of the
// peer certificates has the given SHA-256 digest; CA verification is skipped
// and caCert is ignored. The fingerprint may be written with or without
// colons, in any case.
func ConfigureTLS(transport *http.Transport, caCert []byte, certificateFingerprint string) error {
	if transport == nil {
		return errors.New("transport cannot be nil")
	}

	if certificateFingerprint != "" {
		fingerprint, err := decodeFingerprint(certificateFingerprint)
		if err != nil {
			return err
		}

		transport.DialTLSContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			d := tls.Dialer{Config: &tls.Config{InsecureSkipVerify: true, MinVersion: tls.VersionTLS12}} // #nosec G402 -- verified below
			conn, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}

			tlsConn := conn.(*tls.Conn)
			for _, cert := range tlsConn.ConnectionState().PeerCertificates {
				digest := sha256.Sum256(cert.Raw)
				if bytes.Equal(digest[:], fingerprint) {
					return tlsConn, nil
				}
			}
			_ = tlsConn.Close()
			return nil, fmt.Errorf("fingerprint mismatch, provided: %s", certificateFingerprint)
		}
		return nil
	}

	if caCert != nil {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		pool := x509.NewCertPool()
		if ok := pool.AppendCertsFromPEM(caCert); !ok {
			return errors.New("unable to add CA certificate")
		}
		transport.TLSClientConfig.RootCAs = pool
	}

	return nil
}

func decodeFingerprint(s string) ([]byte, error) {
	clean := strings.ToLower(strings.ReplaceAll(s, ":", ""))
	fingerprint, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid certificate fingerprint %q: %w", s, err)
	}
	if len(fingerprint) != sha256.Size {
		return nil, fmt.Errorf("invalid certificate fingerprint %q: expected a SHA-256 digest", s)
	}
	return fingerprint, nil
}

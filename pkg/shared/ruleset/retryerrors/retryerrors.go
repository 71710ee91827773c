// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package retryerrors

import (
	"regexp"
)

var (
	// APIServerUnreachableRegexp regex to match broken connections to the API server
	APIServerUnreachableRegexp = regexp.MustCompile(`(?i)(connection refused|connection reset by peer|no such host)`)
	// EtcdTimeoutRegexp regex to match transient etcd errors surfaced by the API server
	EtcdTimeoutRegexp = regexp.MustCompile(`(?i)(etcdserver: request timed out|etcdserver: leader changed)`)
	// TLSHandshakeTimeoutRegexp regex to match timed out TLS handshakes
	TLSHandshakeTimeoutRegexp = regexp.MustCompile(`(?i)(net/http: TLS handshake timeout)`)
	// TooManyRequestsRegexp regex to match API server throttling responses
	TooManyRequestsRegexp = regexp.MustCompile(`(?i)(the server has received too many requests|too many requests, please try again later)`)
)

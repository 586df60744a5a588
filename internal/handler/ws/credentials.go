// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ws

import "net/http"

const tokenQueryParam = "token"

// credentialFromRequest returns the raw credential of an upgrade request.
// The Authorization header wins; browsers cannot set headers on a
// websocket handshake, so the "token" query parameter is accepted too.
func credentialFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		return header, nil
	}
	if token := r.URL.Query().Get(tokenQueryParam); token != "" {
		return token, nil
	}

	return "", errNoCredential
}

// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"net/http"
	"strings"
)

// ParseLinkHeader parses an RFC 8288 style Link header value into a map
// from relation name to target URL. Entries are comma separated and look
// like:
//
//	<https://api.github.com/repos/o/r/pulls?page=2>; rel="next"
//
// Entries that do not carry an angle-bracketed URL and a rel parameter
// are skipped rather than treated as errors. An empty header yields an
// empty map.
func ParseLinkHeader(header string) map[string]string {
	rels := make(map[string]string)
	for _, entry := range strings.Split(header, ",") {
		parts := strings.Split(entry, ";")
		if len(parts) < 2 {
			continue
		}

		target := strings.TrimSpace(parts[0])
		if len(target) < 2 || target[0] != '<' || target[len(target)-1] != '>' {
			continue
		}
		target = target[1 : len(target)-1]

		for _, param := range parts[1:] {
			name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || strings.TrimSpace(name) != "rel" {
				continue
			}
			rel := strings.Trim(strings.TrimSpace(value), `"`)
			if rel != "" {
				rels[rel] = target
			}
		}
	}
	return rels
}

// nextPageURL returns the URL of the next page to fetch, or an empty
// string when pagination is complete. The next link is followed only
// while a last link is advertised alongside it; the final page drops
// last, which ends the walk. A missing or unparseable header ends the
// walk the same way.
func nextPageURL(h http.Header) string {
	rels := ParseLinkHeader(h.Get("Link"))
	if rels["last"] == "" {
		return ""
	}
	return rels["next"]
}

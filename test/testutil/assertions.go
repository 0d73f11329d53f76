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

package testutil

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// AssertTextArtifact validates that {repo}_pulls.txt lists exactly the
// given commit hashes, one per line, in order.
func AssertTextArtifact(t *testing.T, dir, repo string, shas []string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, repo+"_pulls.txt"))
	if err != nil {
		t.Fatalf("Failed to read text artifact: %v", err)
	}

	want := ""
	for _, sha := range shas {
		want += sha + "\n"
	}
	if string(data) != want {
		t.Errorf("Text artifact mismatch\nGot:\n%s\nWant:\n%s", data, want)
	}
}

// AssertCSVArtifact validates that {repo}_pulls.csv contains the header
// row followed by exactly the given data rows, in order.
func AssertCSVArtifact(t *testing.T, dir, repo string, wantRows [][]string) {
	t.Helper()

	f, err := os.Open(filepath.Join(dir, repo+"_pulls.csv"))
	if err != nil {
		t.Fatalf("Failed to open CSV artifact: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV artifact: %v", err)
	}

	if len(records) == 0 {
		t.Fatal("CSV artifact is empty, expected at least a header row")
	}

	header := []string{"Pull", "Commit-SHA", "Owner", "Repo"}
	if !reflect.DeepEqual(records[0], header) {
		t.Errorf("CSV header = %v, want %v", records[0], header)
	}

	rows := records[1:]
	if len(rows) != len(wantRows) {
		t.Fatalf("CSV row count = %d, want %d\nGot rows: %v", len(rows), len(wantRows), rows)
	}
	for i, row := range rows {
		if !reflect.DeepEqual(row, wantRows[i]) {
			t.Errorf("CSV row %d = %v, want %v", i, row, wantRows[i])
		}
	}
}

// AssertJSONArtifact validates {repo}_pulls.json: the repository
// coordinates and the complete per-pull commit mapping.
func AssertJSONArtifact(t *testing.T, dir, repo, owner string, want map[string][]string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, repo+"_pulls.json"))
	if err != nil {
		t.Fatalf("Failed to read JSON artifact: %v", err)
	}

	var doc struct {
		Owner        string              `json:"owner"`
		Repo         string              `json:"repo"`
		PullRequests map[string][]string `json:"pull_requests"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Invalid JSON artifact: %v", err)
	}

	if doc.Owner != owner {
		t.Errorf("JSON artifact owner = %q, want %q", doc.Owner, owner)
	}
	if doc.Repo != repo {
		t.Errorf("JSON artifact repo = %q, want %q", doc.Repo, repo)
	}
	if !reflect.DeepEqual(doc.PullRequests, want) {
		t.Errorf("JSON artifact mapping = %v, want %v", doc.PullRequests, want)
	}
}

// AssertContainsString checks if a string contains a substring
func AssertContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected string to contain %q, got: %s", needle, haystack)
	}
}

// AssertNotContainsString checks if a string does not contain a substring
func AssertNotContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("Expected string to NOT contain %q, got: %s", needle, haystack)
	}
}

// AssertErrorContains checks if an error contains expected text
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error to contain %q, got: %v", expected, err)
	}
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertEqual compares two values and fails if they're not equal
func AssertEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	if got != want {
		t.Errorf("Got %v, want %v", got, want)
	}
}

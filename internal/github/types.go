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

// PullRequest represents a GitHub pull request as returned by the REST v3
// list endpoint. Only the fields the analysis pipeline consumes are
// decoded; the API returns far more, and encoding/json drops the rest.
type PullRequest struct {
	Number int    `json:"number"`
	State  string `json:"state"`
	Title  string `json:"title"`

	// IssueURL points at the issue record backing this pull request.
	// Every pull request is also an issue in the REST API, so this is
	// populated even when no standalone issue is linked. Labels live on
	// the issue side, which is why classification follows this URL.
	IssueURL string `json:"issue_url"`

	// CommitsURL is the fully-qualified endpoint listing the commits
	// that make up this pull request.
	CommitsURL string `json:"commits_url"`

	Head Ref `json:"head"`
	Base Ref `json:"base"`
}

// Ref identifies one side of a pull request (head or base).
type Ref struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// Label is a repository label attached to an issue.
type Label struct {
	Name string `json:"name"`
}

// Issue represents the issue record behind a pull request. The REST API
// exposes labels here rather than on the pull request itself.
type Issue struct {
	Number int     `json:"number"`
	Labels []Label `json:"labels"`
}

// LabelNames returns the names of all labels on the issue, in API order.
func (i *Issue) LabelNames() []string {
	if i == nil || len(i.Labels) == 0 {
		return nil
	}
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

// Commit is a single commit entry from a pull request's commit listing.
type Commit struct {
	SHA string `json:"sha"`
}

// CommitSHAs extracts the SHA strings from a commit listing, preserving
// API order.
func CommitSHAs(commits []Commit) []string {
	if len(commits) == 0 {
		return nil
	}
	shas := make([]string, 0, len(commits))
	for _, c := range commits {
		shas = append(shas, c.SHA)
	}
	return shas
}

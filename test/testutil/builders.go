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

import "fmt"

// RepoFixture describes the synthetic repository a GitHubServer serves.
type RepoFixture struct {
	Owner string
	Repo  string
	Pulls []PullFixture
}

// PullFixture is one synthetic pull request: its list fields plus the
// labels of its linked issue and the commit hashes it contributed.
type PullFixture struct {
	Number  int
	State   string
	Title   string
	Labels  []string
	Commits []string
}

// NewRepoFixture creates a fixture for owner/repo serving the given pulls.
func NewRepoFixture(owner, repo string, pulls ...PullFixture) RepoFixture {
	return RepoFixture{Owner: owner, Repo: repo, Pulls: pulls}
}

// PullFixtureBuilder provides a fluent API for creating test pulls
type PullFixtureBuilder struct {
	pull PullFixture
}

// NewPullFixture creates a pull builder with defaults
func NewPullFixture(number int) *PullFixtureBuilder {
	return &PullFixtureBuilder{
		pull: PullFixture{
			Number: number,
			State:  "closed",
			Title:  fmt.Sprintf("PR %d", number),
		},
	}
}

// WithState sets the pull state (open, closed)
func (b *PullFixtureBuilder) WithState(state string) *PullFixtureBuilder {
	b.pull.State = state
	return b
}

// WithTitle sets the pull title
func (b *PullFixtureBuilder) WithTitle(title string) *PullFixtureBuilder {
	b.pull.Title = title
	return b
}

// WithLabels sets the labels on the pull's linked issue
func (b *PullFixtureBuilder) WithLabels(labels ...string) *PullFixtureBuilder {
	b.pull.Labels = labels
	return b
}

// WithCommits sets the pull's commit hashes in API order
func (b *PullFixtureBuilder) WithCommits(shas ...string) *PullFixtureBuilder {
	b.pull.Commits = shas
	return b
}

// Build creates the pull fixture
func (b *PullFixtureBuilder) Build() PullFixture {
	return b.pull
}

// GeneratePullFixtures creates pulls numbered start through end, each
// unlabeled with a single synthetic commit. Tests mark individual pulls
// as defects by replacing entries with builder output.
func GeneratePullFixtures(start, end int) []PullFixture {
	pulls := make([]PullFixture, 0, end-start+1)
	for i := start; i <= end; i++ {
		pulls = append(pulls, PullFixture{
			Number:  i,
			State:   "closed",
			Title:   fmt.Sprintf("PR %d", i),
			Commits: []string{fmt.Sprintf("sha%04d", i)},
		})
	}
	return pulls
}

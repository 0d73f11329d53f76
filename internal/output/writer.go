package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/sirseerhq/sirseer-bugtrace/internal/analysis"
)

// csvHeader is the first row of every CSV artifact.
var csvHeader = []string{"Pull", "Commit-SHA", "Owner", "Repo"}

// jsonDocument is the wire shape of the JSON artifact. Pull numbers are
// stringified because JSON object keys must be strings.
type jsonDocument struct {
	Owner        string              `json:"owner"`
	Repo         string              `json:"repo"`
	PullRequests map[string][]string `json:"pull_requests"`
}

// WriteText writes one commit hash per line in flat accumulation order.
func WriteText(w io.Writer, result *analysis.Result) error {
	for _, sha := range result.SHAs {
		if _, err := io.WriteString(w, sha+"\n"); err != nil {
			return fmt.Errorf("failed to write commit hash: %w", err)
		}
	}
	return nil
}

// WriteCSV writes a header row followed by one row per (pull, commit)
// pair. Rows follow the order pulls were discovered in, then the order
// commits were returned in. Fields are quoted only when they need to
// be, and rows end with the platform line terminator.
func WriteCSV(w io.Writer, result *analysis.Result) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = runtime.GOOS == "windows"

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, pull := range result.Pulls {
		num := strconv.Itoa(pull)
		for _, sha := range result.PullCommits[pull] {
			row := []string{num, sha, result.Owner, result.Repo}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row for pull #%d: %w", pull, err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

// WriteJSON writes a single compact JSON object with the repository
// coordinates and the per-pull commit mapping.
func WriteJSON(w io.Writer, result *analysis.Result) error {
	doc := jsonDocument{
		Owner:        result.Owner,
		Repo:         result.Repo,
		PullRequests: make(map[string][]string, len(result.PullCommits)),
	}
	for pull, shas := range result.PullCommits {
		if shas == nil {
			// nil slices encode as null; the artifact wants an empty list.
			shas = []string{}
		}
		doc.PullRequests[strconv.Itoa(pull)] = shas
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode JSON document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON document: %w", err)
	}
	return nil
}

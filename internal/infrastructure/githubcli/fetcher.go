// Package githubcli fetches project-board data by shelling out to the
// GitHub CLI (gh). Authentication is gh's problem; this package only runs
// commands and validates what comes back before it reaches the domain.
package githubcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
	"github.com/xeipuuv/gojsonschema"
)

// ErrNotInstalled is returned when the gh binary cannot be found on PATH.
var ErrNotInstalled = errors.New("GitHub CLI (gh) is not installed, see https://cli.github.com/")

// itemsSchema is the contract for the gh item-list payload. Rows are
// rejected here, before enumeration parsing, so a malformed payload fails
// with a schema error rather than a confusing parse error mid-list.
const itemsSchema = `{
  "type": "object",
  "required": ["items"],
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "status": {"type": "string"},
          "priority": {"type": "string"},
          "assignees": {"type": "array", "items": {"type": "string"}},
          "estimate (Hrs)": {"type": ["number", "null"]},
          "labels": {"type": "array", "items": {"type": "string"}},
          "content": {"type": "object"}
        }
      }
    }
  }
}`

var itemsSchemaLoader = gojsonschema.NewStringLoader(itemsSchema)

// Runner executes a gh invocation and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// execRunner runs the real gh binary.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrNotInstalled
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("gh %s failed: %s", args[0], msg)
	}

	return stdout.Bytes(), nil
}

// Fetcher pulls one project's board rows through the gh CLI.
type Fetcher struct {
	owner         string
	projectNumber int
	limit         int
	runner        Runner
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRunner substitutes the command runner. Used by tests.
func WithRunner(r Runner) Option {
	return func(f *Fetcher) { f.runner = r }
}

// WithLimit caps the number of items fetched per run.
func WithLimit(limit int) Option {
	return func(f *Fetcher) { f.limit = limit }
}

func NewFetcher(owner string, projectNumber int, opts ...Option) *Fetcher {
	f := &Fetcher{
		owner:         owner,
		projectNumber: projectNumber,
		limit:         200,
		runner:        execRunner{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchProject returns the board's metadata.
func (f *Fetcher) FetchProject(ctx context.Context) (board.Project, error) {
	output, err := f.runner.Run(ctx,
		"project", "view", strconv.Itoa(f.projectNumber),
		"--owner", f.owner,
		"--format", "json",
	)
	if err != nil {
		return board.Project{}, err
	}

	var details struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(output, &details); err != nil {
		return board.Project{}, fmt.Errorf("failed to decode project details: %w", err)
	}

	return board.Project{
		Owner:  f.owner,
		Number: f.projectNumber,
		Title:  details.Title,
		URL:    details.URL,
	}, nil
}

// FetchItems returns the raw board rows after schema validation. Rows still
// carry unvalidated enumeration strings; board.ParseWorkItems is the next
// gate.
func (f *Fetcher) FetchItems(ctx context.Context) ([]board.RawItem, error) {
	output, err := f.runner.Run(ctx,
		"project", "item-list", strconv.Itoa(f.projectNumber),
		"--owner", f.owner,
		"--format", "json",
		"--limit", strconv.Itoa(f.limit),
	)
	if err != nil {
		return nil, err
	}

	if err := validateItemsPayload(output); err != nil {
		return nil, err
	}

	var payload struct {
		Items []board.RawItem `json:"items"`
	}
	if err := json.Unmarshal(output, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode item list: %w", err)
	}

	return payload.Items, nil
}

func validateItemsPayload(output []byte) error {
	result, err := gojsonschema.Validate(itemsSchemaLoader, gojsonschema.NewBytesLoader(output))
	if err != nil {
		return fmt.Errorf("failed to validate item list: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("item list payload is malformed: %s", strings.Join(details, "; "))
	}
	return nil
}

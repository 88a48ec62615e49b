package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/precisemath/internal/harness"
	"github.com/roach88/precisemath/internal/store"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
	DB     string // record each run as a session
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name      string   `json:"name"`
	Pass      bool     `json:"pass"`
	Errors    []string `json:"errors,omitempty"`
	TraceHash string   `json:"trace_hash,omitempty"`
	Session   string   `json:"session,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run scenario files",
		Long: `Run scenario files through the harness.

Scenario files (.yaml, .yml or .cue) list fraction operations with their
expected results. A scenario passes when every expectation and assertion
holds and, if <scenarios-dir>/golden/<file>.golden exists, its trace
snapshot matches the golden file byte for byte.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  precisemath test ./scenarios
  precisemath test ./scenarios --filter "div-*"
  precisemath test ./scenarios --update
  precisemath test ./scenarios --db history.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record each scenario run in this database")

	return cmd
}

func runTests(ctx context.Context, opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	// Validate directory
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	out := newFormatter(opts.RootOptions, cmd)

	// Find scenario files
	scenarioFiles, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	if len(scenarioFiles) == 0 {
		return out.Success(TestResult{Scenarios: []ScenarioResult{}}, func(w io.Writer) {
			fmt.Fprintln(w, "No scenarios found.")
		})
	}

	var st *store.Store
	if opts.DB != "" {
		st, err = openStore(opts.DB, false)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	r := &scenarioRunner{
		opts:  opts,
		store: st,
		out:   out,
	}

	// Run scenarios
	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarioFiles)),
		Total:     len(scenarioFiles),
	}

	for _, scenarioFile := range scenarioFiles {
		scenResult := r.run(ctx, scenarioFile)
		result.Scenarios = append(result.Scenarios, scenResult)

		if scenResult.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	summary := func(w io.Writer) {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
		if result.Failed == 0 {
			fmt.Fprintln(w, "✓ All scenarios passed")
		}
	}

	if result.Failed > 0 {
		return out.Failure("E_TEST_FAILED",
			fmt.Sprintf("%d scenario(s) failed", result.Failed), result, summary)
	}
	return out.Success(result, summary)
}

// findScenarioFiles finds all scenario files in a directory, skipping the
// golden directory.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != dir && info.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		if !harness.IsScenarioFile(path) {
			return nil
		}

		// Apply filter if specified
		if filter != "" {
			ext := filepath.Ext(path)
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// scenarioRunner executes scenario files for one test invocation.
type scenarioRunner struct {
	opts  *TestOptions
	store *store.Store // nil unless --db is set
	out   *OutputFormatter
}

// run executes a single scenario and returns the result.
func (r *scenarioRunner) run(ctx context.Context, scenarioFile string) ScenarioResult {
	scenario, err := harness.LoadScenario(scenarioFile)
	if err != nil {
		return r.fail(filepath.Base(scenarioFile), "Load error", fmt.Sprintf("failed to load scenario: %v", err))
	}

	result, err := harness.Run(ctx, scenario, harness.WithLogger(r.out.Logger))
	if err != nil {
		return r.fail(scenario.Name, "Execution error", fmt.Sprintf("execution failed: %v", err))
	}

	snapshot, err := harness.Snapshot(scenario, result)
	if err != nil {
		return r.fail(scenario.Name, "Snapshot error", fmt.Sprintf("snapshot failed: %v", err))
	}

	traceHash, err := harness.TraceHash(scenario, result)
	if err != nil {
		return r.fail(scenario.Name, "Snapshot error", fmt.Sprintf("trace hash failed: %v", err))
	}

	scenResult := ScenarioResult{
		Name:      scenario.Name,
		Pass:      result.Pass,
		Errors:    result.Errors,
		TraceHash: traceHash,
	}

	note := ""
	goldenPath := goldenFilePath(scenarioFile)
	if r.opts.Update {
		if err := updateGoldenFile(goldenPath, snapshot); err != nil {
			return r.fail(scenario.Name, "Golden update error", fmt.Sprintf("failed to update golden file: %v", err))
		}
		note = " (golden updated)"
	} else if match, err := compareWithGolden(goldenPath, snapshot); err != nil {
		return r.fail(scenario.Name, "Golden comparison error", fmt.Sprintf("golden comparison failed: %v", err))
	} else if !match {
		scenResult.Pass = false
		scenResult.Errors = append(scenResult.Errors, "trace does not match golden file (run with --update to regenerate)")
	}

	if r.store != nil {
		session, err := r.record(ctx, scenario, result, scenResult)
		if err != nil {
			return r.fail(scenario.Name, "Record error", fmt.Sprintf("failed to record run: %v", err))
		}
		scenResult.Session = session
	}

	if scenResult.Pass {
		r.out.Textf("✓ %s%s\n", scenario.Name, note)
	} else {
		r.out.Textf("✗ %s\n", scenario.Name)
		for _, e := range scenResult.Errors {
			r.out.Textf("  %s\n", e)
		}
	}
	return scenResult
}

// fail reports a scenario that could not be completed.
func (r *scenarioRunner) fail(name, label, msg string) ScenarioResult {
	r.out.Textf("✗ %s\n", name)
	r.out.Textf("  %s: %s\n", label, msg)
	return ScenarioResult{
		Name:   name,
		Pass:   false,
		Errors: []string{msg},
	}
}

// record stores a run as a new session holding one evaluation per step.
func (r *scenarioRunner) record(ctx context.Context, scenario *harness.Scenario, result *harness.Result, scenResult ScenarioResult) (string, error) {
	sessionID, err := ensureSession(ctx, r.store, "", scenario.Name, scenario.Scalar)
	if err != nil {
		return "", err
	}
	if err := recordEvents(ctx, r.store, sessionID, result.Trace); err != nil {
		return "", err
	}
	if err := r.store.FinishSession(ctx, sessionID, scenResult.Pass, scenResult.TraceHash); err != nil {
		return "", err
	}

	r.out.Logger.Debug("scenario recorded",
		"scenario", scenario.Name,
		"session", sessionID,
		"events", len(result.Trace),
	)
	return sessionID, nil
}

// goldenFilePath returns the path to the golden file for a scenario.
func goldenFilePath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// updateGoldenFile writes the snapshot as the golden file.
func updateGoldenFile(goldenPath string, snapshot []byte) error {
	// Ensure golden directory exists
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}

	if err := os.WriteFile(goldenPath, snapshot, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}

	return nil
}

// compareWithGolden compares the snapshot against the golden file.
// A missing golden file matches anything.
func compareWithGolden(goldenPath string, snapshot []byte) (bool, error) {
	goldenData, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}

	return bytes.Equal(goldenData, snapshot), nil
}

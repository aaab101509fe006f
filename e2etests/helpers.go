package e2etests

import (
	"encoding/json"
	"fmt"
	"testing"
)

// TestCase defines a named e2e test scenario run in a fresh sandbox.
type TestCase struct {
	Name     string
	InitArgs []string
	Fn       func(t *testing.T, r *Runner, sandbox string)
}

// testCases is the ordered registry of all e2e test cases.
var testCases = []TestCase{
	{"01_add_list", nil, caseAddList},
	{"02_edit", nil, caseEdit},
	{"03_delete", nil, caseDelete},
	{"04_validation", nil, caseValidation},
	{"05_search_where", nil, caseSearchWhere},
	{"06_inventory", []string{"--flavor", "inventory", "--prefix", "inv"}, caseInventory},
	{"07_config", nil, caseConfig},
}

// mustRun runs a command and fails the test if it exits non-zero.
func mustRun(t *testing.T, r *Runner, sandbox string, args ...string) RunResult {
	t.Helper()
	result := r.Run(sandbox, args...)
	if result.ExitCode != 0 {
		t.Fatalf("command %v failed (exit %d): %s", args, result.ExitCode, result.Stderr)
	}
	return result
}

// mustDecode runs a command with --json and decodes stdout into v.
func mustDecode(t *testing.T, r *Runner, sandbox string, v any, args ...string) {
	t.Helper()
	result := r.RunJSON(sandbox, args...)
	if result.ExitCode != 0 {
		t.Fatalf("command %v failed (exit %d): %s", args, result.ExitCode, result.Stderr)
	}
	if err := json.Unmarshal([]byte(result.Stdout), v); err != nil {
		t.Fatalf("decoding %v output %q: %v", args, result.Stdout, err)
	}
}

// item mirrors the JSON shape of a catalog item.
type item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity *int    `json:"quantity"`
	Type     string  `json:"type"`
	Image    string  `json:"image"`
}

// mustAdd adds an item and returns it as reported by mk.
func mustAdd(t *testing.T, r *Runner, sandbox string, args ...string) item {
	t.Helper()
	var it item
	mustDecode(t, r, sandbox, &it, append([]string{"add"}, args...)...)
	if it.ID == "" {
		t.Fatalf("add %v returned no id", args)
	}
	return it
}

func names(items []item) string {
	s := ""
	for i, it := range items {
		if i > 0 {
			s += ","
		}
		s += it.Name
	}
	return fmt.Sprintf("[%s]", s)
}

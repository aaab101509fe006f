package e2etests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func caseAddList(t *testing.T, r *Runner, sandbox string) {
	a := mustAdd(t, r, sandbox, "Latte", "--price", "3.5", "--type", "hot", "--image", "img://latte")
	b := mustAdd(t, r, sandbox, "Cold Brew", "--price", "4", "--type", "cold", "--image", "img://cold")

	var items []item
	mustDecode(t, r, sandbox, &items, "list")
	if len(items) != 2 || items[0].ID != a.ID || items[1].ID != b.ID {
		t.Fatalf("list = %+v", items)
	}

	out := mustRun(t, r, sandbox, "list").Stdout
	if !strings.Contains(out, "$3.50") || !strings.Contains(out, "$4.00") {
		t.Errorf("plain list = %q", out)
	}

	blob := filepath.Join(sandbox, ".menukeeper", "catalog", "menu.json")
	if _, err := os.Stat(blob); err != nil {
		t.Errorf("catalog blob missing: %v", err)
	}
}

func caseEdit(t *testing.T, r *Runner, sandbox string) {
	a := mustAdd(t, r, sandbox, "Latte", "--price", "3.5", "--type", "hot", "--image", "img://latte")
	mustAdd(t, r, sandbox, "Mocha", "--price", "4", "--image", "img://mocha")

	mustRun(t, r, sandbox, "edit", a.ID, "--price", "3.75")

	var items []item
	mustDecode(t, r, sandbox, &items, "list")
	if items[0].ID != a.ID || items[0].Price != 3.75 || items[0].Type != "hot" {
		t.Errorf("edited item = %+v", items[0])
	}

	res := r.Run(sandbox, "edit", "itm-nope", "--price", "1")
	if res.ExitCode == 0 {
		t.Error("edit of missing item should fail")
	}
}

func caseDelete(t *testing.T, r *Runner, sandbox string) {
	a := mustAdd(t, r, sandbox, "Latte", "--price", "3", "--image", "x")
	mustAdd(t, r, sandbox, "Mocha", "--price", "4", "--image", "x")

	// Piped stdin is not a terminal, so no prompt is shown.
	res := r.RunStdin(sandbox, "n\n", "delete", a.ID)
	if res.ExitCode != 0 {
		t.Fatalf("delete failed: %s", res.Stderr)
	}

	var items []item
	mustDecode(t, r, sandbox, &items, "list")
	if len(items) != 1 || items[0].Name != "Mocha" {
		t.Errorf("after delete = %s", names(items))
	}

	if res := r.Run(sandbox, "delete", "itm-missing"); res.ExitCode != 0 {
		t.Errorf("delete of missing id should succeed, exit %d: %s", res.ExitCode, res.Stderr)
	}
}

func caseValidation(t *testing.T, r *Runner, sandbox string) {
	tests := [][]string{
		{"add", "--price", "3", "--image", "x"},
		{"add", "Latte", "--price", "abc", "--image", "x"},
		{"add", "Latte", "--price", "3"},
	}
	for _, args := range tests {
		res := r.Run(sandbox, args...)
		if res.ExitCode == 0 {
			t.Errorf("%v should fail", args)
		}
		if !strings.Contains(res.Stderr, "invalid") {
			t.Errorf("%v stderr = %q", args, res.Stderr)
		}
	}

	var items []item
	mustDecode(t, r, sandbox, &items, "list")
	if len(items) != 0 {
		t.Errorf("rejected drafts were stored: %s", names(items))
	}
}

func caseSearchWhere(t *testing.T, r *Runner, sandbox string) {
	mustAdd(t, r, sandbox, "Latte", "--price", "3.5", "--type", "hot", "--image", "x")
	mustAdd(t, r, sandbox, "Iced Latte", "--price", "4.25", "--type", "cold", "--image", "x")
	mustAdd(t, r, sandbox, "Espresso", "--price", "2", "--type", "hot", "--image", "x")

	var items []item
	mustDecode(t, r, sandbox, &items, "search", "LATTE")
	if names(items) != "[Latte,Iced Latte]" {
		t.Errorf("search = %s", names(items))
	}

	mustDecode(t, r, sandbox, &items, "list", "--where", `type == "hot" && price < 3`)
	if names(items) != "[Espresso]" {
		t.Errorf("where = %s", names(items))
	}
}

func caseInventory(t *testing.T, r *Runner, sandbox string) {
	it := mustAdd(t, r, sandbox, "Beans", "--price", "12", "--quantity", "40", "--image", "ignored")
	if !strings.HasPrefix(it.ID, "inv-") {
		t.Errorf("id = %q, want inv- prefix", it.ID)
	}
	if it.Quantity == nil || *it.Quantity != 40 || it.Image != "" {
		t.Errorf("inventory item = %+v", it)
	}

	if res := r.Run(sandbox, "add", "Cups", "--price", "1"); res.ExitCode == 0 {
		t.Error("inventory add without quantity should fail")
	}
	out := mustRun(t, r, sandbox, "list").Stdout
	if !strings.Contains(out, "qty 40") {
		t.Errorf("list = %q", out)
	}
}

func caseConfig(t *testing.T, r *Runner, sandbox string) {
	mustRun(t, r, sandbox, "config", "set", "id.prefix", "cafe")
	if out := mustRun(t, r, sandbox, "config", "get", "id.prefix").Stdout; strings.TrimSpace(out) != "cafe-" {
		t.Errorf("config get = %q", out)
	}
	it := mustAdd(t, r, sandbox, "Latte", "--price", "3", "--image", "x")
	if !strings.HasPrefix(it.ID, "cafe-") {
		t.Errorf("id = %q, want cafe- prefix", it.ID)
	}

	if res := r.Run(sandbox, "config", "set", "catalog.flavor", "drinks"); res.ExitCode == 0 {
		t.Error("invalid flavor should be rejected")
	}
	mustRun(t, r, sandbox, "config", "validate")
}

package testing

import (
	"testing"

	"github.com/go-drift/orb/pkg/core"
	"github.com/go-drift/orb/pkg/testing/internal/testbed"
)

// mountFinderTree mounts a small tree with two panels and two labels:
//
//	Panel("outer")
//	└── Group
//	    ├── Label("a", "alpha")
//	    └── Panel("inner")
//	        └── Label("b", "beta")
func mountFinderTree(t *testing.T) *ComponentTester {
	t.Helper()
	tester := NewTesterWithT(t)
	tester.Mount(testbed.Panel{
		K: "outer",
		Child: core.Group{Children: []core.Widget{
			testbed.Label{K: "a", Text: "alpha"},
			testbed.Panel{
				K:     "inner",
				Child: testbed.Label{K: "b", Text: "beta"},
			},
		}},
	})
	return tester
}

func TestByType(t *testing.T) {
	tester := mountFinderTree(t)

	labels := tester.Find(ByType[testbed.Label]())
	if labels.Count() != 2 {
		t.Fatalf("expected 2 labels, got %d", labels.Count())
	}

	panels := tester.Find(ByType[testbed.Panel]())
	if panels.Count() != 2 {
		t.Errorf("expected 2 panels, got %d", panels.Count())
	}
}

func TestByKey(t *testing.T) {
	tester := mountFinderTree(t)

	result := tester.Find(ByKey("b"))
	if result.Count() != 1 {
		t.Fatalf("expected 1 match, got %d", result.Count())
	}
	label, ok := result.Widget().(testbed.Label)
	if !ok {
		t.Fatalf("expected a Label, got %T", result.Widget())
	}
	if label.Text != "beta" {
		t.Errorf("expected text %q, got %q", "beta", label.Text)
	}
}

func TestByKey_NoMatch(t *testing.T) {
	tester := mountFinderTree(t)

	result := tester.Find(ByKey("missing"))
	if result.Exists() {
		t.Errorf("expected no matches, got %d", result.Count())
	}
	if result.FirstOrNil() != nil {
		t.Error("expected FirstOrNil to return nil")
	}
}

func TestByPredicate(t *testing.T) {
	tester := mountFinderTree(t)

	result := tester.Find(ByPredicate(func(e core.Element) bool {
		label, ok := e.Widget().(testbed.Label)
		return ok && label.Text == "alpha"
	}))
	if result.Count() != 1 {
		t.Errorf("expected 1 match, got %d", result.Count())
	}
}

func TestDescendant(t *testing.T) {
	tester := mountFinderTree(t)

	result := tester.Find(Descendant(ByKey("inner"), ByType[testbed.Label]()))
	if result.Count() != 1 {
		t.Fatalf("expected 1 label under inner panel, got %d", result.Count())
	}
	if result.Widget().(testbed.Label).Text != "beta" {
		t.Errorf("expected the inner label, got %q", result.Widget().(testbed.Label).Text)
	}
}

func TestAncestor(t *testing.T) {
	tester := mountFinderTree(t)

	result := tester.Find(Ancestor(ByKey("b"), ByType[testbed.Panel]()))
	if result.Count() != 2 {
		t.Errorf("expected both panels as ancestors, got %d", result.Count())
	}
}

func TestFinderResult_At(t *testing.T) {
	tester := mountFinderTree(t)

	labels := tester.Find(ByType[testbed.Label]())
	first := labels.At(0).Widget().(testbed.Label)
	second := labels.At(1).Widget().(testbed.Label)
	if first.Text != "alpha" || second.Text != "beta" {
		t.Errorf("expected traversal order alpha, beta; got %q, %q", first.Text, second.Text)
	}
}

func TestFind_WithoutRoot(t *testing.T) {
	tester := NewTesterWithT(t)

	result := tester.Find(ByType[testbed.Label]())
	if result.Exists() {
		t.Error("expected no matches without a mounted tree")
	}
}

package lint

import (
	"testing"

	"github.com/dlovans/jconstruct/pkg/construct"
)

func TestRunCleanSchemaHasNoIssues(t *testing.T) {
	root := construct.NewRoot(construct.NewObject(
		construct.NewField("name", construct.NewString(), true),
		construct.NewField("age", construct.NewInteger(), false),
	))

	result := Run(root)
	if !result.Valid {
		t.Fatalf("expected a clean schema to be valid, got issues: %+v", result.Issues)
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected 0 issues, got %d", len(result.Issues))
	}
}

func TestRunDetectsDuplicateField(t *testing.T) {
	root := construct.NewRoot(construct.NewObject(
		construct.NewField("name", construct.NewString(), true),
		construct.NewField("name", construct.NewInteger(), false),
	))

	result := Run(root)
	var sawDup bool
	for _, issue := range result.Issues {
		if issue.Rule == "duplicate-field" {
			sawDup = true
		}
	}
	if !sawDup {
		t.Errorf("expected a duplicate-field issue, got %+v", result.Issues)
	}
}

func TestRunDetectsUnresolvedRedirect(t *testing.T) {
	reg := construct.NewRegistry()
	root := construct.NewRoot(construct.NewMixed(
		construct.NewRedirect(reg, "missing"),
		construct.NewString(),
	))

	result := Run(root)
	if result.Valid {
		t.Fatalf("expected an unresolved redirect to invalidate the lint result")
	}
	var sawRedirect bool
	for _, issue := range result.Issues {
		if issue.Rule == "unresolved-redirect" {
			sawRedirect = true
		}
	}
	if !sawRedirect {
		t.Errorf("expected an unresolved-redirect issue, got %+v", result.Issues)
	}
}

func TestRunDetectsUnresolvedRedirectAsFieldValue(t *testing.T) {
	reg := construct.NewRegistry()
	root := construct.NewRoot(construct.NewObject(
		construct.NewField("name", construct.NewString(), true),
		construct.NewField("address", construct.NewRedirect(reg, "address"), false),
	))

	result := Run(root)
	if result.Valid {
		t.Fatalf("expected an unresolved redirect reached via a field value to invalidate the lint result")
	}
	var sawRedirect bool
	for _, issue := range result.Issues {
		if issue.Rule == "unresolved-redirect" {
			sawRedirect = true
		}
	}
	if !sawRedirect {
		t.Errorf("expected an unresolved-redirect issue for the field's redirect, got %+v", result.Issues)
	}
}

func TestRunDetectsUnresolvedRedirectAsArrayElement(t *testing.T) {
	reg := construct.NewRegistry()
	root := construct.NewRoot(construct.NewArray(construct.NewRedirect(reg, "item")))

	result := Run(root)
	if result.Valid {
		t.Fatalf("expected an unresolved redirect reached via an array element template to invalidate the lint result")
	}
	var sawRedirect bool
	for _, issue := range result.Issues {
		if issue.Rule == "unresolved-redirect" {
			sawRedirect = true
		}
	}
	if !sawRedirect {
		t.Errorf("expected an unresolved-redirect issue for the array element's redirect, got %+v", result.Issues)
	}
}

func TestRunDetectsUnresolvedRedirectAsRootChild(t *testing.T) {
	reg := construct.NewRegistry()
	root := construct.NewRoot(construct.NewRedirect(reg, "document"))

	result := Run(root)
	if result.Valid {
		t.Fatalf("expected an unresolved redirect reached via the root's child to invalidate the lint result")
	}
	var sawRedirect bool
	for _, issue := range result.Issues {
		if issue.Rule == "unresolved-redirect" {
			sawRedirect = true
		}
	}
	if !sawRedirect {
		t.Errorf("expected an unresolved-redirect issue for the root's redirect, got %+v", result.Issues)
	}
}

func TestRunDetectsDeadMixedAlternative(t *testing.T) {
	root := construct.NewRoot(construct.NewMixed(
		construct.NewScalar(),
		construct.NewString(),
	))

	result := Run(root)
	var sawDead bool
	for _, issue := range result.Issues {
		if issue.Rule == "dead-alternative" {
			sawDead = true
		}
	}
	if !sawDead {
		t.Errorf("expected a dead-alternative issue since EScalar already covers EString, got %+v", result.Issues)
	}
}

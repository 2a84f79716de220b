package monitor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/undraft-sh/undraft/pkg/platform"
)

func TestValidateOpenPull(t *testing.T) {
	client := &fakeClient{
		pr: &platform.PullRequest{Title: "Add widget polish", State: platform.PullOpen, IsDraft: true},
	}
	var out bytes.Buffer

	if err := Validate(context.Background(), client, testRef, &out); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !strings.Contains(out.String(), "Add widget polish") {
		t.Errorf("output missing title:\n%s", out.String())
	}
	if strings.Contains(out.String(), "already marked ready") {
		t.Errorf("draft PR should not get the already-ready note:\n%s", out.String())
	}
}

func TestValidateNonDraftNote(t *testing.T) {
	client := &fakeClient{
		pr: &platform.PullRequest{Title: "Add widget polish", State: platform.PullOpen, IsDraft: false},
	}
	var out bytes.Buffer

	if err := Validate(context.Background(), client, testRef, &out); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !strings.Contains(out.String(), "already marked ready for review") {
		t.Errorf("output missing already-ready note:\n%s", out.String())
	}
}

func TestValidateMergedPull(t *testing.T) {
	client := &fakeClient{
		pr: &platform.PullRequest{Title: "Old work", State: platform.PullMerged},
	}
	var out bytes.Buffer

	err := Validate(context.Background(), client, testRef, &out)
	if err == nil {
		t.Fatal("Validate() should fail for a merged PR")
	}
	if got := err.Error(); got != "PR #7 is not open (current state: MERGED)" {
		t.Errorf("error = %q", got)
	}
}

func TestValidateQueryFailure(t *testing.T) {
	client := &fakeClient{prErr: errors.New("404 not found")}
	var out bytes.Buffer

	err := Validate(context.Background(), client, testRef, &out)
	if err == nil || !strings.Contains(err.Error(), "could not find PR #7 in repository octo/widgets") {
		t.Errorf("error = %v, want not-found wording", err)
	}
}

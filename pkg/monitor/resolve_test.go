package monitor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/undraft-sh/undraft/pkg/platform"
)

func TestResolveExplicitSkipsAutoDetection(t *testing.T) {
	client := &fakeClient{}
	var out bytes.Buffer

	ref, err := Resolve(context.Background(), client, "7", "octo/widgets", "", &out)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ref != (platform.Ref{Number: "7", Repo: "octo/widgets"}) {
		t.Errorf("Resolve() = %v", ref)
	}
	if len(client.ops) != 0 {
		t.Errorf("auto-detection invoked: %v", client.ops)
	}
}

func TestResolveAutoDetectsBoth(t *testing.T) {
	client := &fakeClient{number: "12", repo: "octo/widgets"}
	var out bytes.Buffer

	ref, err := Resolve(context.Background(), client, "", "", "", &out)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ref != (platform.Ref{Number: "12", Repo: "octo/widgets"}) {
		t.Errorf("Resolve() = %v", ref)
	}

	// Number resolves before repository so later errors can name the PR.
	want := []string{"CurrentPullNumber", "CurrentRepo"}
	if len(client.ops) != 2 || client.ops[0] != want[0] || client.ops[1] != want[1] {
		t.Errorf("ops = %v, want %v", client.ops, want)
	}
}

func TestResolveNoCurrentPull(t *testing.T) {
	client := &fakeClient{numberErr: platform.ErrNoCurrentPull}
	var out bytes.Buffer

	_, err := Resolve(context.Background(), client, "", "", "", &out)
	if !errors.Is(err, platform.ErrNoCurrentPull) {
		t.Errorf("Resolve() error = %v, want ErrNoCurrentPull", err)
	}
}

func TestResolveRepoDetectionFailure(t *testing.T) {
	client := &fakeClient{repoErr: errors.New("not a git repository")}
	var out bytes.Buffer

	_, err := Resolve(context.Background(), client, "7", "", "", &out)
	if err == nil || !strings.Contains(err.Error(), "could not auto-detect repository for PR #7") {
		t.Errorf("Resolve() error = %v, want repository guidance naming the PR", err)
	}
}

func TestResolveFormatCheckAppliesToAnySource(t *testing.T) {
	// Explicit argument.
	var out bytes.Buffer
	if _, err := Resolve(context.Background(), &fakeClient{}, "12a", "octo/widgets", "", &out); err == nil {
		t.Error("Resolve() accepted explicit number 12a")
	}

	// Auto-detected value.
	client := &fakeClient{number: "1.5"}
	if _, err := Resolve(context.Background(), client, "", "octo/widgets", "", &out); err == nil {
		t.Error("Resolve() accepted auto-detected number 1.5")
	}
}

func TestResolveTargetURLBindsRepo(t *testing.T) {
	client := &fakeClient{}
	var out bytes.Buffer

	ref, err := Resolve(context.Background(), client, "https://github.com/octo/widgets/pull/9", "", "", &out)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ref != (platform.Ref{Number: "9", Repo: "octo/widgets"}) {
		t.Errorf("Resolve() = %v", ref)
	}
	if len(client.ops) != 0 {
		t.Errorf("auto-detection invoked: %v", client.ops)
	}
}

func TestResolveTargetRepoWinsOverConfig(t *testing.T) {
	client := &fakeClient{}
	var out bytes.Buffer

	ref, err := Resolve(context.Background(), client, "https://github.com/other/thing/pull/9", "", "octo/widgets", &out)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ref != (platform.Ref{Number: "9", Repo: "other/thing"}) {
		t.Errorf("Resolve() = %v, want the URL's repository over the config default", ref)
	}
	if len(client.ops) != 0 {
		t.Errorf("auto-detection invoked: %v", client.ops)
	}
}

func TestResolveConfigRepoDefault(t *testing.T) {
	client := &fakeClient{}
	var out bytes.Buffer

	ref, err := Resolve(context.Background(), client, "7", "", "octo/widgets", &out)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ref != (platform.Ref{Number: "7", Repo: "octo/widgets"}) {
		t.Errorf("Resolve() = %v", ref)
	}
	if len(client.ops) != 0 {
		t.Errorf("auto-detection invoked: %v", client.ops)
	}
	if !strings.Contains(out.String(), "Using repository octo/widgets from project config") {
		t.Errorf("config default not announced:\n%s", out.String())
	}
}

func TestResolveExplicitRepoWinsOverConfig(t *testing.T) {
	var out bytes.Buffer

	ref, err := Resolve(context.Background(), &fakeClient{}, "7", "other/fork", "octo/widgets", &out)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ref.Repo != "other/fork" {
		t.Errorf("Repo = %q, want explicit argument to win", ref.Repo)
	}
}

func TestResolveExplicitRepoWinsOverTarget(t *testing.T) {
	var out bytes.Buffer

	ref, err := Resolve(context.Background(), &fakeClient{}, "octo/widgets#9", "other/fork", "", &out)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ref.Repo != "other/fork" {
		t.Errorf("Repo = %q, want explicit argument to win", ref.Repo)
	}
}

package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yaklabco/mathdown/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "mathdown" {
		t.Errorf("expected Use to be 'mathdown', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{"render", "build", "serve", "toc", "init", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	pageFlags := []string{
		"flavor", "heading-number", "toc", "title", "theme",
		"highlight", "highlight-style", "safe", "sanitize",
	}

	tests := []struct {
		command string
		flags   []string
	}{
		{"render", append([]string{"format", "output"}, pageFlags...)},
		{"build", append([]string{"out-dir", "jobs", "ignore", "include", "fragment", "incremental", "quiet"}, pageFlags...)},
		{"serve", append([]string{"addr"}, pageFlags...)},
		{"toc", []string{"format", "flavor", "heading-number"}},
		{"init", []string{"force", "full", "format", "output"}},
	}

	cmd := cli.NewRootCommand(testInfo())

	for _, tt := range tests {
		subCmd, _, err := cmd.Find([]string{tt.command})
		if err != nil {
			t.Fatalf("%s command not found: %v", tt.command, err)
		}

		for _, flagName := range tt.flags {
			if subCmd.Flags().Lookup(flagName) == nil {
				t.Errorf("expected flag %q to exist on %s command", flagName, tt.command)
			}
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedFlags := []string{"debug", "config", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"mathdown", "1.2.3", "abc123", "2024-01-01"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected version output to contain %q, got %q", want, out.String())
		}
	}
}

func TestDocumentCommandsTakeOneInput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"render", "toc", "serve"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("%s command not found: %v", name, err)
		}

		if err := subCmd.Args(subCmd, []string{"a.md"}); err != nil {
			t.Errorf("%s should accept one argument, got error: %v", name, err)
		}
		if err := subCmd.Args(subCmd, []string{"a.md", "b.md"}); err == nil {
			t.Errorf("%s should reject two arguments", name)
		}
	}
}

func TestBuildCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	buildCmd, _, err := cmd.Find([]string{"build"})
	if err != nil {
		t.Fatalf("build command not found: %v", err)
	}

	err = buildCmd.Args(buildCmd, []string{"file1.md", "file2.md", "docs/"})
	if err != nil {
		t.Errorf("build command should accept arbitrary args, got error: %v", err)
	}
}

func TestHelpListsEnvironment(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"Available Commands:", "render", "Environment:", "MATHDOWN_HEADING_NUMBER"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
}

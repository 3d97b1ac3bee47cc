package cli

import (
	"os"
	"testing"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(os.Stderr, LogError)
	root := c.RootCommand()

	want := []string{"render", "clusters", "serve", "snapshot", "history", "cache", "version", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRootCommandRejectsExtraArgs(t *testing.T) {
	c := New(os.Stderr, LogError)
	root := c.RootCommand()
	root.SetArgs([]string{"a.dot", "b.dot"})

	if err := root.Execute(); err == nil {
		t.Error("root command should reject more than one positional argument")
	}
}

func TestRenderCommandMissingFile(t *testing.T) {
	c := New(os.Stderr, LogError)
	root := c.RootCommand()
	root.SetArgs([]string{"render", "does-not-exist.dot", "--no-cache"})

	if err := root.Execute(); err == nil {
		t.Error("render should fail for a missing input file")
	}
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	c := New(os.Stderr, LogError)
	root := c.RootCommand()
	root.SetArgs([]string{"render", "graph.dot", "--format", "gif"})

	if err := root.Execute(); err == nil {
		t.Error("render should reject unknown formats")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.SetLogLevel(LogDebug)

	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("log level = %v, want debug", c.Logger.GetLevel())
	}
}

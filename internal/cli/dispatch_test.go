package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"listbot/internal/cli"
	"listbot/internal/commands"
	"listbot/internal/config"
	"listbot/internal/console"
	"listbot/internal/exitcode"
	"listbot/internal/store"
)

// run dispatches the command args[0] against the default registry with
// --config dir placed before the remaining args.
func run(t *testing.T, dir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var outBuf, errBuf bytes.Buffer
	full := append([]string{args[0], "--config", dir}, args[1:]...)
	code = dispatcher.Run(context.Background(), full, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, t.TempDir(), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.HasPrefix(stdout, "Usage:") {
		t.Error("expected help output to start with 'Usage:'")
	}
}

func TestDispatcher_CommandNameIgnoresCase(t *testing.T) {
	stdout, _, code := run(t, t.TempDir(), "VERSION")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "listbot 0.1.0\n" {
		t.Errorf("expected 'listbot 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, t.TempDir(), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"lists", "--data"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -data\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_SendPersistsAcrossInvocations(t *testing.T) {
	dir := t.TempDir()

	if _, stderr, code := run(t, dir, "send", "create list - Groceries"); code != exitcode.Success {
		t.Fatalf("create failed: %d %q", code, stderr)
	}
	if _, stderr, code := run(t, dir, "send", "groceries - Milk"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}

	stdout, _, code := run(t, dir, "lists")
	if code != exitcode.Success || stdout != "Groceries\n" {
		t.Errorf("expected 'Groceries', got %q (exit %d)", stdout, code)
	}

	stdout, _, code = run(t, dir, "show", "Groceries")
	if code != exitcode.Success || stdout != "   1  Milk\n" {
		t.Errorf("expected one item, got %q (exit %d)", stdout, code)
	}

	data, err := os.ReadFile(filepath.Join(dir, config.DataFile))
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	want := "{\n    \"Groceries\": [\n        \"Milk\"\n    ]\n}\n"
	if string(data) != want {
		t.Errorf("unexpected snapshot:\n%s", data)
	}
}

func TestDispatcher_DataFlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "data_file: from-config.json\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	if _, _, code := run(t, dir, "send", "create list - A"); code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "from-config.json")); err != nil {
		t.Errorf("expected data_file from config.yaml to be used: %v", err)
	}

	if _, _, code := run(t, dir, "send", "--data", "flag.json", "create list - B"); code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	st, err := store.Load(filepath.Join(dir, "flag.json"))
	if err != nil {
		t.Fatal(err)
	}
	if names := st.Names(); len(names) != 1 || names[0] != "B" {
		t.Errorf("expected only B in flag.json, got %v", names)
	}
}

func TestDispatcher_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("pending_ttl: soon\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, dir, "lists")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: config error:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_CorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.DataFile), []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, dir, "lists")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if !strings.HasPrefix(stderr, "error: storage error:") {
		t.Errorf("unexpected stderr %q", stderr)
	}

	// Commands without a store still work.
	if _, _, code := run(t, dir, "version"); code != exitcode.Success {
		t.Errorf("expected version to ignore the snapshot, got %d", code)
	}
}

func TestDispatcher_ExportDryRunFlag(t *testing.T) {
	dir := t.TempDir()

	// No credentials: the flag parses and the command reports the auth problem.
	_, stderr, code := run(t, dir, "export", "--dry-run", "--prefix", "bot: ")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "oauth_client.json not found") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_NoArgsRunsChat(t *testing.T) {
	registry := commands.NewRegistry()
	input := console.NewBasicLineInput(strings.NewReader("lists\n"), io.Discard)
	if err := registry.Register(&commands.ChatCmd{Input: input}); err != nil {
		t.Fatal(err)
	}

	var loadedPath string
	loader := func(path string) (*store.Store, error) {
		loadedPath = path
		st := store.New("")
		_, err := st.Create("Groceries")
		return st, err
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dispatcher := cli.NewDispatcher(registry, loader)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if filepath.Base(loadedPath) != config.DataFile {
		t.Errorf("expected default snapshot path, got %q", loadedPath)
	}
	if !strings.Contains(stdout.String(), "Groceries") {
		t.Errorf("expected lists reply, got %q", stdout.String())
	}
}

func TestDispatcher_LoaderError(t *testing.T) {
	loader := func(path string) (*store.Store, error) {
		return nil, errors.New("disk on fire")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, loader)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"lists", "--config", t.TempDir()}, &stdout, &stderr)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr.String() != "error: storage error: disk on fire\n" {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

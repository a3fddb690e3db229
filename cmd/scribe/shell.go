package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/pkg/core"
)

var shellMode string

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Start the interactive shell. Commands:

  touch - create text file
  cd    - change folder
  ls    - get file list
  cat   - get file content
  rm    - delete file
  h     - display command list
  q     - exit`,
	Args: cobra.NoArgs,
	Run:  runShellCmd,
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().StringVarP(&shellMode, "security", "s", "", "Mode for created files (default: w+)")
}

func runShellCmd(cmd *cobra.Command, args []string) {
	svc := openService()

	mode := svc.DefaultMode()
	if shellMode != "" {
		m, err := core.ParseMode(shellMode)
		if err != nil {
			fatal("Invalid security level", err)
		}
		mode = m
	}

	slog.Info("shell started", "dir", svc.Directory())
	sh := &shell{
		svc:    svc,
		in:     bufio.NewScanner(os.Stdin),
		out:    os.Stdout,
		mode:   mode,
		logger: slog.Default(),
	}
	sh.run(context.Background())
	slog.Info("shell finished")
}

const shellHelp = `Options:

touch - create text file
cd - change folder
ls - get file list
cat - get file content
rm - delete file
h - display command list
q - exit
`

// shell is the interactive loop. Errors are printed and logged; the loop
// keeps going until q or end of input.
type shell struct {
	svc    *core.Service
	in     *bufio.Scanner
	out    io.Writer
	mode   core.Mode
	logger *slog.Logger
}

func (s *shell) run(ctx context.Context) {
	fmt.Fprint(s.out, shellHelp)
	for {
		action, ok := s.prompt(s.svc.Directory() + ">")
		if !ok {
			return
		}

		var err error
		switch strings.ToLower(action) {
		case "touch":
			err = s.touch(ctx)
		case "cd":
			err = s.cd(ctx)
		case "ls":
			err = s.ls(ctx)
		case "cat":
			err = s.cat(ctx)
		case "rm":
			err = s.rm(ctx)
		case "h":
			fmt.Fprint(s.out, shellHelp)
		case "q":
			return
		case "":
		default:
			fmt.Fprintf(s.out, "Unknown command %q, type h for help\n", action)
		}

		if err != nil {
			fmt.Fprintln(s.out, err)
			s.logger.Error("shell command failed", "command", action, "error", err)
		}
	}
}

// prompt reads one line with surrounding whitespace trimmed, for commands
// and names.
func (s *shell) prompt(label string) (string, bool) {
	line, ok := s.readLine(label)
	return strings.TrimSpace(line), ok
}

// readLine prints label and reads one line without its terminator.
// It reports false at end of input.
func (s *shell) readLine(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return s.in.Text(), true
}

func (s *shell) touch(ctx context.Context) error {
	fmt.Fprintln(s.out, "File content:")
	content, _ := s.readLine("")

	rec, err := s.svc.WriteFile(ctx, content, s.mode, nil)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "File info:")
	printInfo(s.out, rec)
	fmt.Fprintf(s.out, "File content:\n\n%s\n\n", rec.Content)
	return nil
}

func (s *shell) cd(ctx context.Context) error {
	path, ok := s.prompt("path>")
	if !ok {
		return nil
	}
	return s.svc.ChangeDirectory(ctx, path)
}

func (s *shell) ls(ctx context.Context) error {
	files, err := s.svc.ListFiles(ctx, "")
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "File list:")
	printList(s.out, files)
	fmt.Fprintln(s.out)
	return nil
}

func (s *shell) cat(ctx context.Context) error {
	name, ok := s.prompt("Filename:")
	if !ok {
		return nil
	}
	rec, err := s.svc.ReadFile(ctx, name, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Content:\n%s\n\n", rec.Content)
	return nil
}

func (s *shell) rm(ctx context.Context) error {
	name, ok := s.prompt("Filename:")
	if !ok {
		return nil
	}
	removed, err := s.svc.DeleteFile(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "File %s deleted successfully\n", removed)
	return nil
}

// Command maspsx rewrites PSX-era MIPS assembly emitted by old GCC
// toolchains so it assembles cleanly under a modern GNU assembler: it
// expands the division and small-data pseudo-instructions the original
// PSX assembler used to handle implicitly, and inserts the load/mult-div
// delay-slot nops that assembler relied on the compiler never needing.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bismurphy/maspsx/config"
	"github.com/bismurphy/maspsx/rewriter"
)

var (
	// Version/Commit/Date are set via -ldflags at release build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const macroInclude = `.include "macro.inc"`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, _ := config.Load()

	fs := flag.NewFlagSet("maspsx", flag.ContinueOnError)
	showVersion := fs.Bool("version", false, "print version information and exit")
	noMacroInc := fs.Bool("no-macro-inc", cfg.Driver.NoMacroInc, "don't prepend the macro.inc include")
	forceStdin := fs.Bool("force-stdin", cfg.Driver.ForceStdin, "error instead of falling back to a file argument when stdin is empty")
	expandDiv := fs.Bool("expand-div", cfg.Driver.ExpandDiv, "accepted for compatibility; three-operand div/divu is always expanded into div+mflo")
	runAssembler := fs.Bool("run-assembler", false, "pipe the rewritten output into the real assembler")
	dontForceG0 := fs.Bool("dont-force-g0", cfg.Driver.DontForceG0, "don't force -G0 when invoking the assembler")
	gnuAS := fs.String("gnu-as", cfg.Driver.GNUASPath, "path to the real assembler binary, used with --run-assembler")
	verbose := fs.Bool("verbose", cfg.Driver.Verbose, "emit diagnostic comments into the output stream")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: maspsx [flags] [--] [-Gn] [assembler-args...] [input-file]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *showVersion {
		fmt.Printf("maspsx %s (commit %s, built %s)\n", Version, Commit, Date)
		return 0
	}

	positional := fs.Args()
	sdataLimit, passthrough := extractSdataLimit(positional, cfg.Driver.SdataLimit)
	passthrough = stripKPIC(passthrough)

	inputFile := ""
	if len(passthrough) > 0 {
		inputFile = passthrough[len(passthrough)-1]
	}

	src, err := readInput(inputFile, *forceStdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "maspsx: %v\n", err)
		return 1
	}

	lines := strings.Split(src, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if !*noMacroInc {
		lines = append([]string{macroInclude}, lines...)
	}

	proc := rewriter.NewProcessor(lines,
		rewriter.WithSdataLimit(sdataLimit),
		rewriter.WithExpandDiv(*expandDiv),
		rewriter.WithVerbose(*verbose),
	)
	out, err := proc.ProcessLines()
	if err != nil {
		fmt.Fprintf(os.Stderr, "maspsx: %v\n", err)
		return 1
	}
	for _, d := range proc.Diagnostics {
		fmt.Fprintf(os.Stderr, "maspsx: %s\n", strings.TrimPrefix(d, "# "))
	}
	output := strings.Join(out, "\n") + "\n"

	if !*runAssembler {
		fmt.Print(output)
		return 0
	}

	asArgs := append([]string{}, passthrough...)
	if !*dontForceG0 {
		asArgs = insertBeforeLast(asArgs, "-G0", "-")
	}
	asArgs = append(asArgs, "-")

	cmd := exec.Command(*gnuAS, asArgs...)
	cmd.Stdin = strings.NewReader(output)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "maspsx: assembler failed: %v\n", err)
		return 1
	}
	return 0
}

// extractSdataLimit scans args for -G<digits> passthrough flags, returning
// the value of the last one found (matching the original's simple
// loop-and-overwrite). Unlike sdataLimit itself, the -G<digits> arguments
// are left in the returned list: the original only reads the value out of
// the loop and still forwards the user's original -G<N> to the real
// assembler (see _examples/original_source/maspsx.py), subject to the
// separate forced -G0 insertion in run().
func extractSdataLimit(args []string, fallback int) (int, []string) {
	limit := fallback
	kept := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "-G") && len(a) > 2 {
			if n, err := strconv.Atoi(a[2:]); err == nil {
				limit = n
			}
		}
		kept = append(kept, a)
	}
	return limit, kept
}

// stripKPIC silently drops -KPIC: the original assembler's PIC mode, which
// a modern assembler doesn't need and shouldn't see forwarded.
func stripKPIC(args []string) []string {
	kept := make([]string, 0, len(args))
	for _, a := range args {
		if a == "-KPIC" {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// insertBeforeLast inserts value immediately before the last element of
// args if it equals before, else appends value at the end. This matches
// the original's cmd.insert(-1, "-G0"), which assumes the final argument
// is always the "-" that tells the assembler to read stdin.
func insertBeforeLast(args []string, value, before string) []string {
	if len(args) == 0 || args[len(args)-1] != before {
		return append(args, value)
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	out = append(out, value, args[len(args)-1])
	return out
}

// readInput reads stdin when it's piped (not a terminal), falling back to
// path when stdin is a TTY. forceStdin turns that fallback into an error.
func readInput(path string, forceStdin bool) (string, error) {
	stat, err := os.Stdin.Stat()
	stdinIsPipe := err == nil && (stat.Mode()&os.ModeCharDevice) == 0

	if stdinIsPipe {
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		if len(data) > 0 {
			return string(data), nil
		}
	}

	if forceStdin {
		return "", fmt.Errorf("no input on stdin and --force-stdin was given")
	}
	if path == "" {
		return "", fmt.Errorf("no input file given and stdin was not piped")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

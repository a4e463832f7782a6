// SOL25 CLI - runs SOL25 programs from parsed XML trees or compiled images.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chazu/sol25/manifest"
	"github.com/chazu/sol25/pkg/ast"
	"github.com/chazu/sol25/server"
	"github.com/chazu/sol25/vm"
)

// Driver exit codes. Runtime failures exit with their classified vm code.
const (
	exitUsage  = 10 // bad flags or flag combination
	exitInput  = 11 // cannot open or read an input file
	exitOutput = 12 // cannot create or write an output file
)

const imageSuffix = ".image"

var (
	sourcePath = flag.String("source", "", "Program file: parser XML, or a compiled "+imageSuffix+" (default: stdin)")
	inputPath  = flag.String("input", "", "File fed to String read (default: stdin)")
	buildImage = flag.String("build-image", "", "Write a compiled image to this path and exit")
	emitSource = flag.Bool("emit-source", false, "Reconstruct SOL25 source from the program and exit")
	inspect    = flag.Bool("inspect", false, "Print the class summary and exit")
	daemonMode = flag.Bool("daemon", false, "Run as a JSON daemon")
	socketPath = flag.String("socket", "", "Unix socket path for daemon mode (default: stdio)")
	historyDB  = flag.String("history", "", "SQLite database recording daemon runs")
	lspMode    = flag.Bool("lsp", false, "Run as an LSP server on stdio")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "sol: unexpected argument %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(exitUsage)
	}

	switch {
	case *lspMode:
		runLSP()
	case *daemonMode:
		runDaemon()
	default:
		runBatch()
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: sol [options]\n\n")
	fmt.Fprintf(os.Stderr, "Runs a SOL25 program from its parsed XML tree or a compiled image.\n")
	fmt.Fprintf(os.Stderr, "When -source is omitted, sol looks for a sol25.toml manifest and\n")
	fmt.Fprintf(os.Stderr, "falls back to stdin.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  sol -source prog.xml                 # Run, reading input from stdin\n")
	fmt.Fprintf(os.Stderr, "  sol -source prog.xml -input data.txt # Run with a fixed input file\n")
	fmt.Fprintf(os.Stderr, "  sol -source prog.xml -build-image prog%s\n", imageSuffix)
	fmt.Fprintf(os.Stderr, "  sol -source prog%s                 # Run a compiled image\n", imageSuffix)
	fmt.Fprintf(os.Stderr, "  sol -source prog.xml -emit-source    # Reconstruct SOL25 source\n")
	fmt.Fprintf(os.Stderr, "  sol -daemon -socket /tmp/sol.sock    # JSON daemon on a Unix socket\n")
	fmt.Fprintf(os.Stderr, "  sol -lsp                             # LSP diagnostics on stdio\n")
}

func runLSP() {
	if err := server.NewLSP().Run(); err != nil {
		fmt.Fprintf(os.Stderr, "sol: lsp: %v\n", err)
		os.Exit(1)
	}
}

func runDaemon() {
	var history *server.History
	if *historyDB != "" {
		h, err := server.OpenHistory(*historyDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sol: %v\n", err)
			os.Exit(exitInput)
		}
		defer h.Close()
		history = h
	}

	daemon := server.NewDaemon(history)
	var err error
	if *socketPath != "" {
		err = daemon.ServeSocket(*socketPath)
	} else {
		err = daemon.ServeStdio(os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "sol: daemon: %v\n", err)
		os.Exit(1)
	}
}

func runBatch() {
	source, input := *sourcePath, *inputPath

	// A manifest fills in whatever the flags left unset.
	if source == "" {
		if m, err := manifest.FindAndLoad("."); err == nil && m != nil {
			if m.Run.Source != "" {
				source = m.SourcePath()
				if *verbose {
					fmt.Fprintf(os.Stderr, "sol: using source %s from %s\n", source, manifest.FileName)
				}
			}
			if input == "" && m.Run.Input != "" {
				input = m.InputPath()
			}
		}
	}

	if source == "" && input == "" && !*emitSource && !*inspect && *buildImage == "" {
		fmt.Fprintf(os.Stderr, "sol: at least one of -source and -input must name a file\n")
		os.Exit(exitUsage)
	}

	prog := loadProgram(source)

	if *buildImage != "" {
		writeImage(prog, *buildImage)
		return
	}

	table := vm.NewClassTable()
	if err := table.LoadProgram(prog); err != nil {
		exitRuntime(err)
	}

	if *emitSource {
		fmt.Print(vm.FileOut(table))
		return
	}
	if *inspect {
		if prog.Description != "" {
			fmt.Printf("%s\n\n", prog.Description)
		}
		fmt.Print(vm.FormatSummary(vm.Summarize(table)))
		return
	}

	inputReader := openInput(input)
	if *verbose {
		fmt.Fprintf(os.Stderr, "sol: loaded %d classes\n", table.Len())
	}

	interp := vm.NewInterp(table, inputReader, os.Stdout)
	if err := interp.Run(); err != nil {
		exitRuntime(err)
	}
}

// loadProgram reads the program tree from a file or stdin, decoding a
// compiled image when the name ends in the image suffix.
func loadProgram(source string) *ast.Program {
	if strings.HasSuffix(source, imageSuffix) {
		data, err := os.ReadFile(source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sol: %v\n", err)
			os.Exit(exitInput)
		}
		prog, err := vm.DecodeImage(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sol: %v\n", err)
			os.Exit(vm.CodeInternal)
		}
		return prog
	}

	var r io.Reader = os.Stdin
	if source != "" {
		f, err := os.Open(source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sol: %v\n", err)
			os.Exit(exitInput)
		}
		defer f.Close()
		r = f
	}

	prog, err := ast.Load(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sol: %v\n", err)
		os.Exit(vm.CodeInternal)
	}
	return prog
}

func openInput(input string) io.Reader {
	if input == "" {
		return os.Stdin
	}
	f, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sol: %v\n", err)
		os.Exit(exitInput)
	}
	return f
}

func writeImage(prog *ast.Program, path string) {
	data, err := vm.EncodeImage(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sol: %v\n", err)
		os.Exit(exitOutput)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "sol: %v\n", err)
		os.Exit(exitOutput)
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "sol: wrote %s (%d bytes)\n", path, len(data))
	}
}

func exitRuntime(err error) {
	fmt.Fprintf(os.Stderr, "sol: %v\n", err)
	os.Exit(vm.ExitCode(err))
}

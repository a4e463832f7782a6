// Package server hosts the long-running surfaces of the interpreter: a JSON
// daemon for shell and editor clients and an LSP server for diagnostics.
package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tliron/commonlog"

	"github.com/chazu/sol25/pkg/ast"
	"github.com/chazu/sol25/vm"
)

// badRequestCode is the exit_code reported for requests the daemon cannot
// parse. It mirrors the CLI's usage error code.
const badRequestCode = 10

// Request is one JSON request line from a client.
type Request struct {
	Op      string `json:"op,omitempty"`      // run, inspect or ping; run is the default
	Program string `json:"program,omitempty"` // program XML text
	Input   string `json:"input,omitempty"`   // text fed to String read
}

// Response is the JSON reply. ExitCode carries the classified interpreter
// code, zero on success.
type Response struct {
	Output      string         `json:"output,omitempty"`
	ExitCode    int            `json:"exit_code"`
	Error       string         `json:"error,omitempty"`
	Classes     []vm.ClassInfo `json:"classes,omitempty"`
	Description string         `json:"description,omitempty"`
}

// Daemon executes programs for clients. Every request is independent: a
// fresh class table and interpreter per run, so one bad program cannot
// poison the next.
type Daemon struct {
	log     commonlog.Logger
	history *History // optional run log, may be nil
}

// NewDaemon creates a daemon. history may be nil to skip run recording.
func NewDaemon(history *History) *Daemon {
	return &Daemon{
		log:     commonlog.GetLogger("sol25.daemon"),
		history: history,
	}
}

// Handle executes one request.
func (d *Daemon) Handle(req Request) Response {
	switch req.Op {
	case "", "run":
		return d.runProgram(req.Program, req.Input)
	case "inspect":
		return d.inspectProgram(req.Program)
	case "ping":
		return Response{Output: "pong"}
	default:
		return Response{ExitCode: badRequestCode, Error: fmt.Sprintf("unknown op %q", req.Op)}
	}
}

func (d *Daemon) loadTable(programXML string) (*ast.Program, *vm.ClassTable, Response, bool) {
	prog, err := ast.LoadBytes([]byte(programXML))
	if err != nil {
		return nil, nil, Response{ExitCode: vm.CodeInternal, Error: err.Error()}, false
	}
	table := vm.NewClassTable()
	if err := table.LoadProgram(prog); err != nil {
		return nil, nil, Response{ExitCode: vm.ExitCode(err), Error: err.Error()}, false
	}
	return prog, table, Response{}, true
}

func (d *Daemon) runProgram(programXML, input string) Response {
	_, table, failure, ok := d.loadTable(programXML)
	if !ok {
		return failure
	}

	var out bytes.Buffer
	interp := vm.NewInterp(table, strings.NewReader(input), &out)

	start := time.Now()
	runErr := interp.Run()
	elapsed := time.Since(start)

	resp := Response{Output: out.String()}
	if runErr != nil {
		resp.ExitCode = vm.ExitCode(runErr)
		resp.Error = runErr.Error()
	}

	if d.history != nil {
		if err := d.history.Record(programXML, resp.ExitCode, len(resp.Output), elapsed); err != nil {
			d.log.Errorf("record run: %v", err)
		}
	}
	d.log.Debugf("run: exit=%d output=%dB in %s", resp.ExitCode, len(resp.Output), elapsed)
	return resp
}

func (d *Daemon) inspectProgram(programXML string) Response {
	prog, table, failure, ok := d.loadTable(programXML)
	if !ok {
		return failure
	}
	return Response{Classes: vm.Summarize(table), Description: prog.Description}
}

// ServeStdio answers newline-delimited JSON requests on r until it is
// exhausted, writing one JSON response line per request to w.
func (d *Daemon) ServeStdio(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			if err := enc.Encode(Response{ExitCode: badRequestCode, Error: "invalid JSON: " + err.Error()}); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(d.Handle(req)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ServeSocket listens on a Unix socket, one request per connection. It
// blocks until SIGINT or SIGTERM arrives, then removes the socket.
func (d *Daemon) ServeSocket(path string) error {
	os.Remove(path)

	listener, err := net.Listen("unix", path)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", path, err)
	}
	defer listener.Close()
	defer os.Remove(path)
	os.Chmod(path, 0666)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		listener.Close()
	}()

	d.log.Infof("listening on %s", path)
	for {
		conn, err := listener.Accept()
		if err != nil {
			if opErr, ok := err.(*net.OpError); ok && strings.Contains(opErr.Err.Error(), "use of closed network connection") {
				return nil
			}
			d.log.Errorf("accept: %v", err)
			continue
		}
		d.handleConnection(conn)
	}
}

// handleConnection answers a single request on a connection.
func (d *Daemon) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		d.log.Errorf("read request: %v", err)
		return
	}

	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		json.NewEncoder(conn).Encode(Response{ExitCode: badRequestCode, Error: "invalid JSON: " + err.Error()})
		return
	}
	if err := json.NewEncoder(conn).Encode(d.Handle(req)); err != nil {
		d.log.Errorf("write response: %v", err)
	}
}

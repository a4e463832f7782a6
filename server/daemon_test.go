package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

const helloProgram = `<?xml version="1.0" encoding="UTF-8"?>
<program language="SOL25" description="Prints hello">
  <class name="Main" parent="Object">
    <method selector="run">
      <block arity="0">
        <assign order="1">
          <var name="x"/>
          <expr>
            <send selector="print">
              <expr><literal class="String" value="hello"/></expr>
            </send>
          </expr>
        </assign>
      </block>
    </method>
  </class>
</program>`

const echoProgram = `<?xml version="1.0" encoding="UTF-8"?>
<program language="SOL25">
  <class name="Main" parent="Object">
    <method selector="run">
      <block arity="0">
        <assign order="1">
          <var name="x"/>
          <expr>
            <send selector="print">
              <expr>
                <send selector="read">
                  <expr><literal class="class" value="String"/></expr>
                </send>
              </expr>
            </send>
          </expr>
        </assign>
      </block>
    </method>
  </class>
</program>`

const noMainProgram = `<?xml version="1.0" encoding="UTF-8"?>
<program language="SOL25">
  <class name="Helper" parent="Object">
    <method selector="run">
      <block arity="0"/>
    </method>
  </class>
</program>`

func TestHandleRun(t *testing.T) {
	d := NewDaemon(nil)
	resp := d.Handle(Request{Op: "run", Program: helloProgram})
	if resp.ExitCode != 0 {
		t.Fatalf("exit code = %d (%s), want 0", resp.ExitCode, resp.Error)
	}
	if resp.Output != "hello" {
		t.Errorf("output = %q, want %q", resp.Output, "hello")
	}
}

func TestHandleDefaultsToRun(t *testing.T) {
	d := NewDaemon(nil)
	resp := d.Handle(Request{Program: helloProgram})
	if resp.ExitCode != 0 || resp.Output != "hello" {
		t.Errorf("response = %+v, want a successful run", resp)
	}
}

func TestHandleRunFeedsInput(t *testing.T) {
	d := NewDaemon(nil)
	resp := d.Handle(Request{Program: echoProgram, Input: "knock\n"})
	if resp.ExitCode != 0 {
		t.Fatalf("exit code = %d (%s), want 0", resp.ExitCode, resp.Error)
	}
	if resp.Output != "knock" {
		t.Errorf("output = %q, want %q", resp.Output, "knock")
	}
}

func TestHandleRunReportsRuntimeCode(t *testing.T) {
	d := NewDaemon(nil)
	resp := d.Handle(Request{Program: noMainProgram})
	if resp.ExitCode != 31 {
		t.Errorf("exit code = %d, want 31", resp.ExitCode)
	}
	if resp.Error == "" {
		t.Error("error text should name the failure")
	}
}

func TestHandleRunRejectsBadXML(t *testing.T) {
	d := NewDaemon(nil)
	resp := d.Handle(Request{Program: "<program"})
	if resp.ExitCode != 99 {
		t.Errorf("exit code = %d, want 99", resp.ExitCode)
	}
}

func TestHandleInspect(t *testing.T) {
	d := NewDaemon(nil)
	resp := d.Handle(Request{Op: "inspect", Program: helloProgram})
	if resp.ExitCode != 0 {
		t.Fatalf("exit code = %d (%s), want 0", resp.ExitCode, resp.Error)
	}
	found := false
	for _, c := range resp.Classes {
		if c.Name == "Main" && !c.Builtin {
			found = true
			if len(c.Selectors) != 1 || c.Selectors[0] != "run" {
				t.Errorf("Main selectors = %v, want [run]", c.Selectors)
			}
		}
	}
	if !found {
		t.Errorf("classes %v missing Main", resp.Classes)
	}
	if resp.Description != "Prints hello" {
		t.Errorf("description = %q, want %q", resp.Description, "Prints hello")
	}
}

func TestHandlePing(t *testing.T) {
	d := NewDaemon(nil)
	resp := d.Handle(Request{Op: "ping"})
	if resp.Output != "pong" || resp.ExitCode != 0 {
		t.Errorf("ping = %+v", resp)
	}
}

func TestHandleUnknownOp(t *testing.T) {
	d := NewDaemon(nil)
	resp := d.Handle(Request{Op: "compile"})
	if resp.ExitCode != badRequestCode {
		t.Errorf("exit code = %d, want %d", resp.ExitCode, badRequestCode)
	}
}

func TestServeStdio(t *testing.T) {
	reqs := []Request{
		{Op: "ping"},
		{Op: "run", Program: helloProgram},
		{Op: "nope"},
	}
	var in bytes.Buffer
	enc := json.NewEncoder(&in)
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	d := NewDaemon(nil)
	if err := d.ServeStdio(&in, &out); err != nil {
		t.Fatalf("ServeStdio failed: %v", err)
	}

	dec := json.NewDecoder(&out)
	var resps []Response
	for dec.More() {
		var r Response
		if err := dec.Decode(&r); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		resps = append(resps, r)
	}
	if len(resps) != 3 {
		t.Fatalf("got %d responses, want 3", len(resps))
	}
	if resps[0].Output != "pong" {
		t.Errorf("resps[0] = %+v", resps[0])
	}
	if resps[1].Output != "hello" || resps[1].ExitCode != 0 {
		t.Errorf("resps[1] = %+v", resps[1])
	}
	if resps[2].ExitCode != badRequestCode {
		t.Errorf("resps[2] = %+v", resps[2])
	}
}

func TestServeStdioSkipsBlankAndRejectsGarbage(t *testing.T) {
	in := strings.NewReader("\n\nnot json\n")
	var out bytes.Buffer
	d := NewDaemon(nil)
	if err := d.ServeStdio(in, &out); err != nil {
		t.Fatalf("ServeStdio failed: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ExitCode != badRequestCode {
		t.Errorf("exit code = %d, want %d", resp.ExitCode, badRequestCode)
	}
}

func TestHistoryRecordsRuns(t *testing.T) {
	path := t.TempDir() + "/history.db"
	h, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	defer h.Close()

	d := NewDaemon(h)
	d.Handle(Request{Program: helloProgram})
	d.Handle(Request{Program: noMainProgram})

	records, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("recorded %d runs, want 2", len(records))
	}
	// Most recent first.
	if records[0].ExitCode != 31 || records[1].ExitCode != 0 {
		t.Errorf("exit codes = %d, %d, want 31, 0", records[0].ExitCode, records[1].ExitCode)
	}
	if records[1].OutputBytes != len("hello") {
		t.Errorf("output bytes = %d, want %d", records[1].OutputBytes, len("hello"))
	}
	if records[0].ProgramHash == records[1].ProgramHash {
		t.Error("distinct programs should hash differently")
	}
	if len(records[0].ProgramHash) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(records[0].ProgramHash))
	}
}

func TestHistoryRecentLimit(t *testing.T) {
	path := t.TempDir() + "/history.db"
	h, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	defer h.Close()

	for i := 0; i < 5; i++ {
		if err := h.Record("prog", 0, 0, time.Millisecond); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	records, err := h.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Recent(3) returned %d records", len(records))
	}
}

package vm

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestImageRoundTrip(t *testing.T) {
	prog := progOf(
		classOf("Main", ClassObject,
			methodOf("run", blockOf(nil,
				set("x", sendTo(strLit(`hi\n`), "print")),
			)),
		),
		classOf("Money", ClassInteger),
	)

	data, err := EncodeImage(prog)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	back, err := DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if len(back.Classes) != 2 {
		t.Fatalf("decoded %d classes, want 2", len(back.Classes))
	}
	if back.Classes[0].Name != "Main" || back.Classes[1].Parent != ClassInteger {
		t.Errorf("decoded classes = %q < %q, %q < %q",
			back.Classes[0].Name, back.Classes[0].Parent,
			back.Classes[1].Name, back.Classes[1].Parent)
	}

	// A decoded image still runs.
	ct := NewClassTable()
	if err := ct.LoadProgram(back); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}
	if err := NewInterp(ct, nil, nil).Run(); err != nil {
		t.Errorf("Run failed: %v", err)
	}
}

func TestImageEncodingIsDeterministic(t *testing.T) {
	prog := mainProg(set("x", intLit("1")))
	a, err := EncodeImage(prog)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	b, err := EncodeImage(prog)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if string(a) != string(b) {
		t.Error("image bytes differ between runs")
	}
}

func TestDecodeImageRejectsVersionMismatch(t *testing.T) {
	data, err := imageEncMode.Marshal(&Image{Version: ImageVersion + 1, Program: mainProg()})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if _, err := DecodeImage(data); err == nil {
		t.Error("DecodeImage accepted a future version")
	}
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	if _, err := DecodeImage([]byte("not cbor")); err == nil {
		t.Error("DecodeImage accepted garbage")
	}
}

func TestEncodeImageRejectsNilProgram(t *testing.T) {
	if _, err := EncodeImage(nil); err == nil {
		t.Error("EncodeImage accepted a nil program")
	}
}

func TestDecodeImageRejectsEmptyImage(t *testing.T) {
	data, err := cbor.Marshal(&Image{Version: ImageVersion})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if _, err := DecodeImage(data); err == nil {
		t.Error("DecodeImage accepted an image without a program")
	}
}

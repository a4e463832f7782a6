package vm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/sol25/pkg/ast"
)

// ImageVersion is bumped whenever the image encoding changes shape.
const ImageVersion = 1

// Image is the compiled form of a program: the full tree, CBOR-encoded with
// canonical options so the same program always produces identical bytes.
type Image struct {
	Version int          `cbor:"1,keyasint"`
	Program *ast.Program `cbor:"2,keyasint"`
}

var imageEncMode cbor.EncMode

func init() {
	var err error
	imageEncMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor encoder options: %v", err))
	}
}

// EncodeImage serializes a program tree into image bytes.
func EncodeImage(prog *ast.Program) ([]byte, error) {
	if prog == nil {
		return nil, fmt.Errorf("encode image: no program")
	}
	data, err := imageEncMode.Marshal(&Image{Version: ImageVersion, Program: prog})
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return data, nil
}

// DecodeImage deserializes image bytes back into a program tree.
func DecodeImage(data []byte) (*ast.Program, error) {
	var img Image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Version != ImageVersion {
		return nil, fmt.Errorf("decode image: unsupported version %d", img.Version)
	}
	if img.Program == nil {
		return nil, fmt.Errorf("decode image: no program")
	}
	return img.Program, nil
}

package vm

import (
	"fmt"
	"strings"
)

// ClassInfo summarizes one class for tooling surfaces: the CLI inspector,
// the daemon's inspect operation and editor integrations.
type ClassInfo struct {
	Name      string   `json:"name"`
	Parent    string   `json:"parent,omitempty"`
	Builtin   bool     `json:"builtin,omitempty"`
	Selectors []string `json:"selectors,omitempty"`
}

// Summarize reports every class in the table, sorted by name. User method
// selectors are listed in definition order; built-in classes list their
// native selectors sorted.
func Summarize(ct *ClassTable) []ClassInfo {
	defs := ct.All()
	infos := make([]ClassInfo, 0, len(defs))
	for _, def := range defs {
		info := ClassInfo{
			Name:    def.Name,
			Parent:  def.Parent,
			Builtin: def.Builtin,
		}
		if def.Builtin {
			info.Selectors = def.NativeSelectors()
		} else {
			info.Selectors = def.Selectors()
		}
		infos = append(infos, info)
	}
	return infos
}

// FormatSummary renders class summaries as indented text for the CLI.
func FormatSummary(infos []ClassInfo) string {
	var b strings.Builder
	for _, info := range infos {
		b.WriteString(info.Name)
		if info.Parent != "" {
			b.WriteString(" : ")
			b.WriteString(info.Parent)
		}
		if info.Builtin {
			b.WriteString(" (builtin)")
		}
		b.WriteString("\n")
		for _, sel := range info.Selectors {
			b.WriteString("    ")
			b.WriteString(sel)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ObjectInfo is a structured view of one runtime object, used by tests and
// the daemon when a client asks about a value.
type ObjectInfo struct {
	Class string     `json:"class"`
	Kind  string     `json:"kind"`
	Value string     `json:"value,omitempty"`
	Attrs []AttrInfo `json:"attrs,omitempty"`
}

// AttrInfo is one attribute of an inspected object.
type AttrInfo struct {
	Name  string      `json:"name"`
	Value *ObjectInfo `json:"value"`
}

// defaultInspectDepth bounds recursion through attribute values.
const defaultInspectDepth = 3

// Inspect describes an object, following attributes up to the default
// depth. Beyond the depth limit attributes collapse to their class name.
func Inspect(o *Object) *ObjectInfo {
	return inspectDepth(o, defaultInspectDepth)
}

func inspectDepth(o *Object, depth int) *ObjectInfo {
	if o == nil {
		return nil
	}
	info := &ObjectInfo{
		Class: o.ClassName(),
		Kind:  o.Kind().String(),
	}
	switch o.Kind() {
	case KindNil:
		info.Value = "nil"
	case KindTrue:
		info.Value = "true"
	case KindFalse:
		info.Value = "false"
	case KindInteger:
		info.Value = fmt.Sprintf("%d", o.Int())
	case KindString:
		info.Value = o.Str()
	case KindBlock:
		info.Value = fmt.Sprintf("arity %d", o.Block().Node.Arity)
	}

	if depth <= 0 {
		return info
	}
	for _, n := range o.AttrNames() {
		v, _ := o.Attr(n)
		info.Attrs = append(info.Attrs, AttrInfo{Name: n, Value: inspectDepth(v, depth-1)})
	}
	return info
}

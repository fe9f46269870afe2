package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML scene description.
//
//	entities:
//	  - classname: worldspawn
//	    brushes:
//	      - faces:
//	          - material: textures/common/caulk
//	          - {material: textures/base/floor, degenerate: true}
//	  - classname: light
//	    spawnargs: {name: light_1, noshadows: "1"}
type File struct {
	Entities []EntitySpec `yaml:"entities"`
}

// EntitySpec describes one entity and its primitives.
type EntitySpec struct {
	Name      string            `yaml:"name,omitempty"`
	ClassName string            `yaml:"classname"`
	SpawnArgs map[string]string `yaml:"spawnargs,omitempty"`
	Hidden    bool              `yaml:"hidden,omitempty"`
	Brushes   []BrushSpec       `yaml:"brushes,omitempty"`
	Patches   []PatchSpec       `yaml:"patches,omitempty"`
}

// BrushSpec describes one brush.
type BrushSpec struct {
	Name   string     `yaml:"name,omitempty"`
	Hidden bool       `yaml:"hidden,omitempty"`
	Faces  []FaceSpec `yaml:"faces"`
}

// FaceSpec describes one brush face.
type FaceSpec struct {
	Material   string `yaml:"material"`
	Degenerate bool   `yaml:"degenerate,omitempty"`
}

// PatchSpec describes one patch.
type PatchSpec struct {
	Name     string `yaml:"name,omitempty"`
	Hidden   bool   `yaml:"hidden,omitempty"`
	Material string `yaml:"material"`
}

// Load reads a YAML scene from path.
func Load(path string) (*BaseNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	root, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %q: %w", path, err)
	}
	return root, nil
}

// Decode reads a YAML scene and builds its graph. Unknown fields are
// rejected.
func Decode(r io.Reader) (*BaseNode, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return Build(&file)
}

// Build creates the scene graph for file. Entities without an explicit
// name take their "name" spawnarg, or classname_N.
func Build(file *File) (*BaseNode, error) {
	root := NewRoot()
	counts := map[string]int{}
	for i, es := range file.Entities {
		if es.ClassName == "" {
			return nil, fmt.Errorf("entity %d: classname is required", i+1)
		}

		name := es.Name
		if name == "" {
			name = es.SpawnArgs["name"]
		}
		if name == "" {
			name = fmt.Sprintf("%s_%d", es.ClassName, counts[es.ClassName])
			counts[es.ClassName]++
		}

		ent := NewEntity(name, es.ClassName, es.SpawnArgs)
		ent.SetHidden(es.Hidden)

		for j, bs := range es.Brushes {
			bname := bs.Name
			if bname == "" {
				bname = fmt.Sprintf("%s/brush_%d", name, j)
			}
			faces := make([]Face, 0, len(bs.Faces))
			for _, fs := range bs.Faces {
				faces = append(faces, Face{Material: fs.Material, Degenerate: fs.Degenerate})
			}
			b := NewBrush(bname, faces...)
			b.SetHidden(bs.Hidden)
			ent.AddChild(b)
		}
		for j, ps := range es.Patches {
			pname := ps.Name
			if pname == "" {
				pname = fmt.Sprintf("%s/patch_%d", name, j)
			}
			p := NewPatch(pname, ps.Material)
			p.SetHidden(ps.Hidden)
			ent.AddChild(p)
		}
		root.AddChild(ent)
	}
	return root, nil
}

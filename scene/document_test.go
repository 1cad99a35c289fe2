package scene

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

const exportedScene = `Film "image" "integer xresolution" 640 "integer yresolution" 480
Integrator "path"
WorldBegin
AttributeBegin
    AreaLightSource "area"
        "rgb L" [ 0 0 0 ]
    NamedMaterial "Emitter"
    Shape "plymesh" "string filename" "mesh_00001.ply"
AttributeEnd
MakeNamedMaterial "Wall"
    "string type" "matte"
    "rgb Kd" [ 0.5 0.5 0.5 ]

WorldEnd
`

func TestRoundTrip(t *testing.T) {
	specs := []string{
		exportedScene,
		strings.TrimSuffix(exportedScene, "\n"),
		"",
		"\n",
		"WorldBegin",
		"\n\n",
		"AttributeBegin\r\n    Shape\r\nAttributeEnd\r\n",
		"  odd indent\n    nested\nTop\n      six\n",
		"    starts indented\n        deeper\nTop",
	}

	for specIndex, text := range specs {
		if got := Parse(text).String(); got != text {
			t.Errorf("[spec %d] expected round-trip to preserve text:\n%q\ngot:\n%q", specIndex, text, got)
		}
	}
}

func TestBlockCount(t *testing.T) {
	doc := Parse(exportedScene)

	// Film, Integrator, WorldBegin, AttributeBegin, AttributeEnd,
	// MakeNamedMaterial, blank line, WorldEnd
	expBlocks := 8
	if got := len(doc.Blocks()); got != expBlocks {
		t.Fatalf("expected %d blocks; got %d", expBlocks, got)
	}

	var level0 int
	for _, line := range strings.Split(strings.TrimSuffix(exportedScene, "\n"), "\n") {
		if LineLevel(line) == 0 {
			level0++
		}
	}
	if level0 != expBlocks {
		t.Fatalf("expected block count to match level-0 line count %d", level0)
	}

	attrBlock := doc.Blocks()[3]
	if typ, _ := attrBlock.Type(); typ != AttributeBegin {
		t.Fatalf("expected block 3 to be an %s block; got %q", AttributeBegin, typ)
	}
	if attrBlock.Len() != 5 {
		t.Fatalf("expected attribute block to absorb 5 lines; got %d", attrBlock.Len())
	}
}

func TestMalformedIndentStartsBlock(t *testing.T) {
	doc := Parse("AttributeBegin\n      six spaces\n    four spaces")
	if got := len(doc.Blocks()); got != 2 {
		t.Fatalf("expected malformed indent to be treated as level 0 and start a new block; got %d blocks", got)
	}
}

func TestLeadingIndentedLine(t *testing.T) {
	doc := Parse("    orphan\n        child\nWorldBegin")
	if got := len(doc.Blocks()); got != 2 {
		t.Fatalf("expected 2 blocks; got %d", got)
	}
	if got := doc.Blocks()[0].Len(); got != 2 {
		t.Fatalf("expected leading block to absorb 2 lines; got %d", got)
	}
}

func TestDocumentFileIO(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.pbrt")
	if err := ioutil.WriteFile(path, []byte(exportedScene), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}

	doc.Blocks()[5].Replace(1, `"rgb Kd"`, `"rgb Kd" [ 1.0 1.0 1.0 ]`)

	outPath := filepath.Join(dir, "out.pbrt")
	if err = doc.WriteFile(outPath); err != nil {
		t.Fatal(err)
	}

	data, err := ioutil.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	exp := strings.Replace(exportedScene, `"rgb Kd" [ 0.5 0.5 0.5 ]`, `"rgb Kd" [ 1.0 1.0 1.0 ]`, 1)
	if string(data) != exp {
		t.Fatalf("expected written file to be:\n%s\ngot:\n%s", exp, string(data))
	}

	var buf bytes.Buffer
	if err = doc.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != exp {
		t.Fatal("expected Write to produce the same output as WriteFile")
	}

	if _, err = ParseFile(filepath.Join(dir, "missing.pbrt")); err == nil {
		t.Fatal("expected an error when parsing a missing file")
	}
}

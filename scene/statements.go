package scene

import "strings"

// Statement keywords of the pbrt scene format that the exporter relies on.
const (
	AttributeBegin    = "AttributeBegin"
	AttributeEnd      = "AttributeEnd"
	AreaLightSource   = "AreaLightSource"
	MakeNamedMaterial = "MakeNamedMaterial"
	NamedMaterial     = "NamedMaterial"
	Texture           = "Texture"
	WorldBegin        = "WorldBegin"
	WorldEnd          = "WorldEnd"
)

// StatementArgs drops the statement keyword from a line, strips quote
// characters from the remaining tokens and joins them with single spaces.
// For `MakeNamedMaterial "Old Wood"` it returns `Old Wood`.
func StatementArgs(line string) string {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return ""
	}
	return strings.Replace(strings.Join(tokens[1:], " "), `"`, "", -1)
}

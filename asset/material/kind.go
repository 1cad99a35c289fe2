package material

// Kind represents the pbrt material types the exporter can emit.
type Kind int

const (
	// KindUnsupported marks a descriptor whose type is not known to the
	// exporter. Descriptor.RawKind holds the original name.
	KindUnsupported Kind = iota
	KindMatte
	KindPlastic
	KindMirror
	KindMix
)

// Lookup material kind by its name. Both the pbrt names ("matte") and the
// exporter UI names ("MATTE") are accepted.
func KindFromName(name string) Kind {
	switch name {
	case "matte", "MATTE":
		return KindMatte
	case "plastic", "PLASTIC":
		return KindPlastic
	case "mirror", "MIRROR":
		return KindMirror
	case "mix", "MIX":
		return KindMix
	}

	return KindUnsupported
}

// String returns the pbrt material type name.
func (k Kind) String() string {
	switch k {
	case KindMatte:
		return "matte"
	case KindPlastic:
		return "plastic"
	case KindMirror:
		return "mirror"
	case KindMix:
		return "mix"
	}

	return "unsupported"
}

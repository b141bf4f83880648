package ifs

import "github.com/san-kum/randomlogo/internal/fault"

// Kind enumerates the IFS families the generator can build.
type Kind int

const (
	SigmaFactor Kind = iota
)

func Kinds() []Kind {
	return []Kind{SigmaFactor}
}

func (k Kind) String() string {
	switch k {
	case SigmaFactor:
		return "SigmaFactorIFS"
	default:
		return "unknown"
	}
}

// ParseKind resolves a configured ifs_name.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fault.Configf("ifs", "unknown IFS: %q", name)
}

// Generate draws a system of kind k from src.
func (k Kind) Generate(src Source, opts Options) (*SigmaFactorIFS, error) {
	switch k {
	case SigmaFactor:
		return Generate(src, opts)
	default:
		return nil, fault.Configf("ifs", "unknown IFS kind %d", int(k))
	}
}

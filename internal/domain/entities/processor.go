package entities

import "fmt"

// Processor names a transformation applied to every value a source returns,
// before variable expansion.
type Processor string

const (
	ProcessorBase64Decode    Processor = "base64-decode"
	ProcessorBase64URLDecode Processor = "base64url-decode"
	ProcessorTrim            Processor = "trim"
)

// Processors returns every supported processor.
func Processors() []Processor {
	return []Processor{ProcessorBase64Decode, ProcessorBase64URLDecode, ProcessorTrim}
}

// ParseProcessors validates processor names, keeping their order.
func ParseProcessors(names []string) ([]Processor, error) {
	if len(names) == 0 {
		return nil, nil
	}
	result := make([]Processor, 0, len(names))
	for _, name := range names {
		processor, err := parseProcessor(name)
		if err != nil {
			return nil, err
		}
		result = append(result, processor)
	}
	return result, nil
}

func parseProcessor(name string) (Processor, error) {
	for _, p := range Processors() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unsupported processor %q", name)
}

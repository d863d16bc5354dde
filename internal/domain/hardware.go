package domain

import (
	"fmt"
	"strings"
)

// Hardware selects which encoder backend the external tool should use.
type Hardware string

const (
	HardwareNvidia    Hardware = "nvidia"
	HardwareQuickSync Hardware = "intel-qsv"
	HardwareCPU       Hardware = "cpu"
)

// Format is the target container of a conversion.
type Format string

const (
	FormatMP4 Format = "mp4"
)

func ParseHardware(s string) (Hardware, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nvidia", "nvenc":
		return HardwareNvidia, nil
	case "intel-qsv", "intel", "qsv", "quicksync":
		return HardwareQuickSync, nil
	case "cpu", "", "software":
		return HardwareCPU, nil
	default:
		return "", fmt.Errorf("unknown hardware %q", s)
	}
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mp4", "":
		return FormatMP4, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// Extension returns the file extension (with leading dot) for the container.
func (f Format) Extension() string {
	return "." + string(f)
}

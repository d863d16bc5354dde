package ffmpeg

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/bnema/batchenc/internal/domain"
)

var (
	speedRe     = regexp.MustCompile(`speed=\s*([0-9.]+)x`)
	outTimeUsRe = regexp.MustCompile(`out_time_us=(\S*)`)
	outTimeMsRe = regexp.MustCompile(`out_time_ms=(\S*)`)
	timeRe      = regexp.MustCompile(`time=(\d{2}):(\d{2}):(\d{2})\.(\d{2})`)
)

// ParseProgressLine extracts speed and position from a single line of ffmpeg
// output. Lines that carry neither yield an empty sample.
//
// Position is taken from the first of out_time_us, out_time_ms or
// time=HH:MM:SS.ff that is present. A present counter that does not parse
// (N/A, garbage, out of range) means no position; later keys are not
// consulted. ffmpeg writes out_time_ms in microseconds despite its name, so
// both counters are read the same way.
func ParseProgressLine(line string) domain.Sample {
	var s domain.Sample

	if m := speedRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			s.Speed = v
			s.HasSpeed = true
		}
	}

	if pos, ok := parsePosition(line); ok {
		s.Position = pos
		s.HasPosition = true
	}

	return s
}

func parsePosition(line string) (time.Duration, bool) {
	if m := outTimeUsRe.FindStringSubmatch(line); m != nil {
		return parseMicros(m[1])
	}
	if m := outTimeMsRe.FindStringSubmatch(line); m != nil {
		return parseMicros(m[1])
	}
	if m := timeRe.FindStringSubmatch(line); m != nil {
		var parts [4]int
		for i := range parts {
			parts[i], _ = strconv.Atoi(m[i+1])
		}
		return time.Duration(parts[0])*time.Hour +
			time.Duration(parts[1])*time.Minute +
			time.Duration(parts[2])*time.Second +
			time.Duration(parts[3])*10*time.Millisecond, true
	}
	return 0, false
}

const maxMicros = math.MaxInt64 / int64(time.Microsecond)

func parseMicros(raw string) (time.Duration, bool) {
	us, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || us < 0 || us > maxMicros {
		return 0, false
	}
	return time.Duration(us) * time.Microsecond, true
}

package sox

import (
	"strconv"
	"strings"
)

// Stat computes audio statistics through the DefaultRunner.
// See Runner.Stat.
func Stat(inputPath string) (map[string]*float64, error) {
	return DefaultRunner.Stat(inputPath)
}

// Stat runs sox's stat pseudo-effect over the file and returns the
// parsed report. Labels are preserved verbatim, including the internal
// padding sox uses for column alignment ("Mean    norm"); values that do
// not parse as numbers map to nil.
func (r *Runner) Stat(inputPath string) (map[string]*float64, error) {
	if err := ValidateInput(inputPath); err != nil {
		return nil, err
	}
	// The stat effect writes its report to stderr; stdout stays empty
	// because of the -n null output.
	res := r.Run([]string{inputPath, "-n", "stat"}, nil, true)
	return parseStat(res.Stderr), nil
}

// parseStat splits each report line on ":". Lines without exactly one
// colon are header or footer noise and are dropped.
func parseStat(report string) map[string]*float64 {
	report = strings.ReplaceAll(report, "\r", "")

	stats := make(map[string]*float64)
	for _, line := range strings.Split(report, "\n") {
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}
		key := parts[0]
		raw := strings.Trim(parts[1], " ")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			stats[key] = nil
			continue
		}
		val := v
		stats[key] = &val
	}
	return stats
}

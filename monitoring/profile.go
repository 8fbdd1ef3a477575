package monitoring

import (
	"bytes"
	"io"
	"runtime/pprof"

	"github.com/google/pprof/profile"
)

// A CPUProfiler collects a CPU profile in memory.
type CPUProfiler struct {
	buf *bytes.Buffer
}

// StartCPUProfile starts profiling the process. Only one profile can be
// collected at a time.
func StartCPUProfile() (*CPUProfiler, error) {
	p := &CPUProfiler{buf: bytes.NewBuffer(nil)}

	if err := pprof.StartCPUProfile(p.buf); err != nil {
		return nil, err
	}

	return p, nil
}

// Stop ends the profile and parses it.
func (p *CPUProfiler) Stop() (*profile.Profile, error) {
	pprof.StopCPUProfile()

	return profile.ParseData(p.buf.Bytes())
}

// WriteProfile writes prof in the compressed protobuf format the pprof tool
// reads.
func WriteProfile(w io.Writer, prof *profile.Profile) error {
	return prof.Write(w)
}

// TotalSamples returns the number of samples in prof.
func TotalSamples(prof *profile.Profile) int {
	return len(prof.Sample)
}

package driver

import (
	"runtime"

	"quill/internal/observ"
)

// SourceExt is the extension of quill source files.
const SourceExt = ".ql"

// Options configures a driver run.
type Options struct {
	MaxDiagnostics int          // per-file limit, 0 means unlimited
	Jobs           int          // parallel files for TokenizeDir, 0 means GOMAXPROCS
	Cache          *TokenCache  // nil disables the token cache
	Progress       ProgressSink // nil disables progress events
	Timer          *observ.Timer // nil disables phase timings
}

func (o Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

func (o Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}

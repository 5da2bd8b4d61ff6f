package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	PagesFetched      uint64            `json:"pages_fetched"`
	SyncRuns          uint64            `json:"sync_runs"`
	DonorsSynced      uint64            `json:"donors_synced"`
	ErrorsTotal       uint64            `json:"errors_total"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	pagesFetched uint64
	syncRuns     uint64
	donorsSynced uint64
	errorsTotal  uint64

	statsMu           sync.Mutex
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncPageFetched(_ string) {
	atomic.AddUint64(&pagesFetched, 1)
}

func IncSyncRun() {
	atomic.AddUint64(&syncRuns, 1)
}

func AddDonorsSynced(n int) {
	if n <= 0 {
		return
	}
	atomic.AddUint64(&donorsSynced, uint64(n))
}

func IncError(errType, component string) {
	if errType == "" {
		errType = ErrorUnknown
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	typeCopy := copyMap(errorsByType)
	componentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	return StatsSnapshot{
		PagesFetched:      atomic.LoadUint64(&pagesFetched),
		SyncRuns:          atomic.LoadUint64(&syncRuns),
		DonorsSynced:      atomic.LoadUint64(&donorsSynced),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		ErrorsByType:      typeCopy,
		ErrorsByComponent: componentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

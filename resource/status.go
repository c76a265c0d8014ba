package resource

// Status is the fetch state of a hook
type Status int

const (
	// StatusIdle means no fetch has been started
	StatusIdle Status = iota
	// StatusLoading means a fetch for the current key is pending
	StatusLoading
	// StatusSuccess means the current key resolved successfully
	StatusSuccess
	// StatusError means the last fetch for the current key failed
	StatusError
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

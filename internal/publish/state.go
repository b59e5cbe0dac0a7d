package publish

// State is a step of the publish state machine.
type State int

const (
	StateIdle State = iota
	StateCapturing
	StateUploading
	StateURLResolving
	StateRecordInserting
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:            "IDLE",
	StateCapturing:       "CAPTURING",
	StateUploading:       "UPLOADING",
	StateURLResolving:    "URL_RESOLVING",
	StateRecordInserting: "RECORD_INSERTING",
	StateDone:            "DONE",
	StateFailed:          "FAILED",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

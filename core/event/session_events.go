package event

// FinishReason indicates why an annotation session ended.
type FinishReason int

const (
	// FinishReasonExhausted indicates the last image was committed.
	FinishReasonExhausted FinishReason = iota
	// FinishReasonQuit indicates the user closed the application.
	FinishReasonQuit
)

func (r FinishReason) String() string {
	switch r {
	case FinishReasonExhausted:
		return "Exhausted"
	case FinishReasonQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// DatasetSaved is published after the dataset record was persisted (or failed to).
type DatasetSaved struct {
	Location string
	Images   int
	Error    error // nil if the write succeeded
}

func NewDatasetSaved(location string, images int, err error) *DatasetSaved {
	return &DatasetSaved{Location: location, Images: images, Error: err}
}

func (e *DatasetSaved) EventName() string {
	return "DatasetSaved"
}

// SessionFinished is published once when the session ends.
type SessionFinished struct {
	Reason FinishReason
	Error  error // nil if persisted successfully
}

func NewSessionFinished(reason FinishReason, err error) *SessionFinished {
	return &SessionFinished{Reason: reason, Error: err}
}

func (e *SessionFinished) EventName() string {
	return "SessionFinished"
}

package session

// Mode is the session's lifecycle state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeRunning
	ModePaused
	ModeFinished
	ModeViewing
)

func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "running"
	case ModePaused:
		return "paused"
	case ModeFinished:
		return "finished"
	case ModeViewing:
		return "viewing"
	default:
		return "idle"
	}
}

// Kind grades a status message for display.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindWarning
	KindError
)

// Status is the outcome of an operator action, shown in the status bar.
type Status struct {
	Message string
	Kind    Kind
}

func info(msg string) Status    { return Status{Message: msg, Kind: KindInfo} }
func success(msg string) Status { return Status{Message: msg, Kind: KindSuccess} }
func warning(msg string) Status { return Status{Message: msg, Kind: KindWarning} }
func failure(msg string) Status { return Status{Message: msg, Kind: KindError} }

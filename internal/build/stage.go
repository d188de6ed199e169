package build

// Stage is how far a build invocation progressed. Stages are reached
// strictly in order.
type Stage int

const (
	StageNone Stage = iota
	Declared
	Normalized
	Validated
	Configured
	Built
	Packaged
	MetadataExported
)

var stageNames = [...]string{
	StageNone:        "none",
	Declared:         "declared",
	Normalized:       "normalized",
	Validated:        "validated",
	Configured:       "configured",
	Built:            "built",
	Packaged:         "packaged",
	MetadataExported: "metadata-exported",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// StageError is a failure while advancing past Reached.
type StageError struct {
	Recipe  string
	Reached Stage
	Err     error
}

func (e *StageError) Error() string {
	return e.Recipe + ": after " + e.Reached.String() + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

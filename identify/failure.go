package identify

import "fmt"

// FailureKind classifies why identification of a file produced no result
type FailureKind int

const (
	// ToolNotFound means the identification executable couldn't be launched at all
	ToolNotFound FailureKind = iota + 1

	// ToolExecutionError means the tool ran but exited with a non-zero status
	ToolExecutionError

	// MalformedOutput means the tool's output isn't the expected JSON document
	MalformedOutput

	// NoMatchData means the output holds no file entry or no match for it
	NoMatchData

	// Timeout means the tool didn't finish within the configured deadline
	Timeout
)

func (k FailureKind) String() string {
	switch k {
	case ToolNotFound:
		return "tool_not_found"
	case ToolExecutionError:
		return "tool_execution_error"
	case MalformedOutput:
		return "malformed_output"
	case NoMatchData:
		return "no_match_data"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Failure describes a failed identification of one file
type Failure struct {
	Kind FailureKind
	Path string
	Err  error
}

// Message is the one-line diagnostic shown to users for this failure
func (f *Failure) Message() string {
	switch f.Kind {
	case ToolNotFound:
		return "Siegfried not installed"
	case ToolExecutionError:
		return "Error accessing file object"
	case MalformedOutput:
		return "Cannot parse SF data"
	case NoMatchData:
		return "Cannot access sf data for file: " + f.Path
	case Timeout:
		return "Siegfried timed out on file: " + f.Path
	default:
		return "Identification failed for file: " + f.Path
	}
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message()
	}
	return fmt.Sprintf("%s: %v", f.Message(), f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

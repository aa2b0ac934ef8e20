package lighting

import "ledcore-go/errcode"

// BackendIOError reports a failed backend write. The channel keeps going:
// other backends are still written and the on/off memory still updates.
type BackendIOError struct {
	Channel string
	Backend string
	Op      string
	Err     error
}

func (e *BackendIOError) Error() string {
	s := "lighting: " + e.Channel + ": " + e.Backend + " " + e.Op
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *BackendIOError) Unwrap() error      { return e.Err }
func (e *BackendIOError) Code() errcode.Code { return errcode.BackendIO }

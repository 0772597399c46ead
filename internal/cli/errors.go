package cli

// FailedError marks a triage run that failed after its inputs were accepted
type FailedError struct {
	Err error
}

func (e *FailedError) Error() string {
	return "Triage failed: " + e.Err.Error()
}

func (e *FailedError) Unwrap() error {
	return e.Err
}

func failed(err error) error {
	if err == nil {
		return nil
	}
	return &FailedError{Err: err}
}

package attendance

// Status is the punch state of a record. Transitions:
// OffDuty → Working ↔ OnBreak, Working/OnBreak → Finished.
type Status string

const (
	StatusOffDuty  Status = "off_duty"
	StatusWorking  Status = "working"
	StatusOnBreak  Status = "on_break"
	StatusFinished Status = "finished"
)

// CanClockOut reports whether a clock-out is a legal transition.
func (s Status) CanClockOut() bool {
	return s == StatusWorking || s == StatusOnBreak
}

func (s Status) Valid() bool {
	switch s {
	case StatusOffDuty, StatusWorking, StatusOnBreak, StatusFinished:
		return true
	}
	return false
}

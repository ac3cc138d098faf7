package pipeline

// Status represents the lifecycle of a render job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAssembling Status = "assembling"
	StatusAssembled  Status = "assembled"
	StatusSubtitling Status = "subtitling"
	StatusSubtitled  Status = "subtitled"
	StatusMixing     Status = "mixing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusAssembling,
	StatusAssembled,
	StatusSubtitling,
	StatusSubtitled,
	StatusMixing,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// IsValid reports whether the status is a known lifecycle value.
func (s Status) IsValid() bool {
	_, ok := statusSet[s]
	return ok
}

// IsTerminal reports whether the job has finished, successfully or not.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// resumeStatus maps an in-flight stage status back to the stable status it
// should restart from after an interrupted run.
var resumeStatus = map[Status]Status{
	StatusAssembling: StatusPending,
	StatusSubtitling: StatusAssembled,
	StatusMixing:     StatusSubtitled,
}

package entity

// JobResult pairs a finished job with the error that ended it, if any.
type JobResult struct {
	Job *VideoJob
	Err error
}

// BatchReport aggregates per-job outcomes of one batch run. Jobs are isolated
// from each other, so a failed result never implies anything about its
// siblings.
type BatchReport struct {
	Total     int
	Completed int
	Skipped   int
	Failed    int
	Results   []JobResult
}

func NewBatchReport(total int) *BatchReport {
	return &BatchReport{
		Total:   total,
		Results: make([]JobResult, 0, total),
	}
}

func (r *BatchReport) Add(res JobResult) {
	r.Results = append(r.Results, res)
	switch res.Job.Status {
	case JobStatusCompleted:
		r.Completed++
	case JobStatusSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
}

// Failures returns the results that ended in an error, for summary logging.
func (r *BatchReport) Failures() []JobResult {
	var failed []JobResult
	for _, res := range r.Results {
		if res.Job.Status == JobStatusFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

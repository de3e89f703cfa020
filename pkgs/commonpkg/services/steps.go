package services

import (
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////

// Step names one action of a smoke run, in execution order
type Step int

const (
	StepLoadToken Step = iota
	StepIdentify
	StepPost
	StepLike
	StepReply
	StepQuote
	StepSearch
	StepMentions
	StepMetrics
	StepLookup
)

// AllSteps lists every step in execution order
var AllSteps = []Step{
	StepLoadToken,
	StepIdentify,
	StepPost,
	StepLike,
	StepReply,
	StepQuote,
	StepSearch,
	StepMentions,
	StepMetrics,
	StepLookup,
}

var stepTitles = map[Step]string{
	StepLoadToken: "Token load",
	StepIdentify:  "Identify",
	StepPost:      "Post",
	StepLike:      "Like",
	StepReply:     "Reply",
	StepQuote:     "Quote",
	StepSearch:    "Search",
	StepMentions:  "Mentions",
	StepMetrics:   "Metrics",
	StepLookup:    "User lookup",
}

var stepNames = map[Step]string{
	StepLoadToken: "load_token",
	StepIdentify:  "identify",
	StepPost:      "post",
	StepLike:      "like",
	StepReply:     "reply",
	StepQuote:     "quote",
	StepSearch:    "search",
	StepMentions:  "mentions",
	StepMetrics:   "metrics",
	StepLookup:    "lookup",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Title is the human-readable name of the step
func (s Step) Title() string {
	if title, ok := stepTitles[s]; ok {
		return title
	}
	return s.String()
}

////////////////////////////////////////////////////////////////////////////////

// StepStatus is how far a step got in a run
type StepStatus int

const (
	StatusSkipped StepStatus = iota
	StatusOK
	StatusFailed
)

func (s StepStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	}
	return "skipped"
}

// StepOutcome is the result of one step
type StepOutcome struct {
	Step   Step
	Status StepStatus
	Kind   ErrorKind
	Err    error
}

// RunReport collects the outcome of every step of a run
type RunReport struct {
	RunId     string
	Outcomes  map[Step]*StepOutcome
	Aborted   bool
	Completed bool
}

func newRunReport(runId string) *RunReport {
	report := &RunReport{
		RunId:    runId,
		Outcomes: make(map[Step]*StepOutcome, len(AllSteps)),
	}
	for _, step := range AllSteps {
		report.Outcomes[step] = &StepOutcome{Step: step, Status: StatusSkipped}
	}
	return report
}

func (r *RunReport) ok(step Step) {
	r.Outcomes[step] = &StepOutcome{Step: step, Status: StatusOK}
}

func (r *RunReport) fail(step Step, err error) ErrorKind {
	kind := Classify(err)
	r.Outcomes[step] = &StepOutcome{Step: step, Status: StatusFailed, Kind: kind, Err: err}
	return kind
}

// Status returns the status of step
func (r *RunReport) Status(step Step) StepStatus {
	if outcome, ok := r.Outcomes[step]; ok {
		return outcome.Status
	}
	return StatusSkipped
}

// Failed lists the failed steps in execution order
func (r *RunReport) Failed() []Step {
	res := make([]Step, 0)
	for _, step := range AllSteps {
		if r.Status(step) == StatusFailed {
			res = append(res, step)
		}
	}
	return res
}

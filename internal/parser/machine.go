package parser

import (
	"github.com/fjglira/LogTriage/internal/domain"
)

// testIDLookback is how many lines before a step start are searched for "Run <ID>:".
const testIDLookback = 10

type state int

const (
	stateIdle state = iota
	stateStepOpen
)

// openStep accumulates the step currently being scanned.
type openStep struct {
	step        domain.TestStep
	hasCommand  bool
	hasResponse bool
	sawFail     bool
	failLine    string
}

// machine is a two-state line scanner: Idle until a step-start marker,
// StepOpen until the step is closed by its end marker, the strategy, a new
// step start, or the end of input.
type machine struct {
	patterns *Patterns
	strategy strategy
	lines    []string

	state state
	open  *openStep

	pass      []domain.TestStep
	noCommand []domain.TestStep
	fail      []domain.TestStep
}

func newMachine(patterns *Patterns, strat strategy, lines []string) *machine {
	return &machine{
		patterns: patterns,
		strategy: strat,
		lines:    lines,
		state:    stateIdle,
	}
}

// run feeds every line through the machine and returns PASS and FAIL items.
func (m *machine) run() (pass, fail []domain.TestStep) {
	for idx, line := range m.lines {
		m.feed(idx, line)
	}
	if m.state == stateStepOpen {
		m.close(len(m.lines)-1, m.strategy.atEOF(m.open))
	}

	pass = Consolidate(m.pass, m.noCommand)
	if len(m.fail) > 0 {
		m.fail[0].IsMainFail = true
	}
	if pass == nil {
		pass = []domain.TestStep{}
	}
	fail = m.fail
	if fail == nil {
		fail = []domain.TestStep{}
	}
	return pass, fail
}

func (m *machine) feed(idx int, line string) {
	if number, name, ok := m.patterns.StepStart(line); ok {
		if m.state == stateStepOpen {
			m.close(idx-1, m.strategy.atEOF(m.open))
		}
		m.begin(idx, line, number, name)
		return
	}

	if m.state != stateStepOpen {
		return
	}

	open := m.open
	open.step.FullLog = append(open.step.FullLog, line)

	// the end marker passes the step even after a kept-open fail keyword
	if m.patterns.IsStepEnd(line, open.step.StepNumber) {
		m.close(idx, verdictPass)
		return
	}

	if !open.hasCommand {
		if cmd, ok := m.patterns.Command(line); ok {
			open.step.Command = cmd
			open.hasCommand = true
		}
	}
	if !open.hasResponse {
		if resp, ok := m.patterns.Response(line); ok {
			open.step.Response = resp
			open.hasResponse = true
		}
	}

	if v := m.strategy.inspect(open, line); v != verdictNone {
		m.close(idx, v)
	}
}

func (m *machine) begin(idx int, line, number, name string) {
	m.state = stateStepOpen
	m.open = &openStep{
		step: domain.TestStep{
			StepName:   name,
			StepNumber: number,
			TestID:     m.lookupTestID(idx),
			FullLog:    []string{line},
			StartLine:  idx,
			EndLine:    idx,
		},
	}
}

// close finalizes the open step: placeholders, retry count, result, and the
// list it belongs to.
func (m *machine) close(endIdx int, v verdict) {
	open := m.open
	m.open = nil
	m.state = stateIdle

	step := open.step
	step.EndLine = endIdx
	step.RetryCount = m.patterns.EffectiveRetryCount(step.FullLog)
	if !open.hasResponse {
		step.Response = domain.NoResponsePlaceholder
	}

	if v == verdictFail {
		step.Result = domain.ResultFail
		step.ErrorReason = ExtractFailReason(open.failLine)
		if !open.hasCommand {
			step.Command = domain.NoCommandPlaceholder
		}
		m.fail = append(m.fail, step)
		return
	}

	step.Result = domain.PassResult(step.RetryCount)
	if !open.hasCommand {
		step.Command = "@" + step.StepName
		m.noCommand = append(m.noCommand, step)
		return
	}
	m.pass = append(m.pass, step)
}

// lookupTestID returns the nearest "Run <ID>:" at or above the step start.
func (m *machine) lookupTestID(idx int) string {
	start := idx - testIDLookback
	if start < 0 {
		start = 0
	}
	for i := idx; i >= start; i-- {
		if id, ok := m.patterns.TestID(m.lines[i]); ok {
			return id
		}
	}
	return ""
}

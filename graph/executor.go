package graph

// BlurStep is one iteration of a ping-pong blur.
type BlurStep struct {
	Iteration  int
	Horizontal bool       // Blur axis for this iteration
	Read       Attachment // Bright-pass on the first iteration, then the other buffer
	Write      Target
}

// BlurSchedule returns the read/write plan for a ping-pong blur.
// Iteration i blurs horizontally when startHorizontal XOR (i is odd), writes
// the buffer for its axis and reads what the previous iteration wrote.
func BlurSchedule(iterations int, startHorizontal bool, source Attachment) []BlurStep {
	if iterations <= 0 {
		return nil
	}
	steps := make([]BlurStep, iterations)
	horizontal := startHorizontal
	read := source
	for i := range steps {
		write := TargetPingVertical
		if horizontal {
			write = TargetPingHorizontal
		}
		steps[i] = BlurStep{Iteration: i, Horizontal: horizontal, Read: read, Write: write}
		read, _ = ColorOf(write)
		horizontal = !horizontal
	}
	return steps
}

// FinalBlur returns the attachment holding the blur output, or source when
// there are no iterations.
func FinalBlur(iterations int, startHorizontal bool, source Attachment) Attachment {
	steps := BlurSchedule(iterations, startHorizontal, source)
	if len(steps) == 0 {
		return source
	}
	a, _ := ColorOf(steps[len(steps)-1].Write)
	return a
}

// Report records what the executor did in one frame.
type Report struct {
	Executed   []string // Pass names in execution order
	Skipped    []string
	BlurRan    bool
	BlurResult Attachment // Valid when BlurRan
	BlurSteps  int
}

// Executor runs a graph against a backend.
type Executor struct {
	Graph   *Graph
	Backend Backend

	// OnPass is called before each pass runs. Used for per-pass timing.
	OnPass func(name string)

	report Report
	inputs []Attachment
	steps  []BlurStep
}

// NewExecutor creates an executor.
func NewExecutor(g *Graph, b Backend) *Executor {
	return &Executor{Graph: g, Backend: b}
}

// Run executes every enabled pass in order. The report's slices are reused
// by the next call.
func (e *Executor) Run(f Features) Report {
	e.report = Report{
		Executed: e.report.Executed[:0],
		Skipped:  e.report.Skipped[:0],
	}

	for i := range e.Graph.Passes {
		p := &e.Graph.Passes[i]
		enabled := p.Enabled
		if enabled == nil {
			enabled = Always
		}
		if !enabled(f) {
			e.report.Skipped = append(e.report.Skipped, p.Name)
			continue
		}

		if e.OnPass != nil {
			e.OnPass(p.Name)
		}
		if p.Blur != nil {
			e.runBlur(p, f)
		} else {
			e.runPass(p, f)
		}
		e.report.Executed = append(e.report.Executed, p.Name)
	}
	return e.report
}

func (e *Executor) runPass(p *Pass, f Features) {
	e.inputs = e.inputs[:0]
	for _, r := range p.Reads {
		if r == BlurResult {
			if !e.report.BlurRan {
				continue
			}
			r = e.report.BlurResult
		}
		e.inputs = append(e.inputs, r)
	}

	e.Backend.Bind(p.Writes)
	if p.Clear != ClearNone {
		e.Backend.Clear(p.Writes, p.Clear)
	}
	if p.Draw != nil {
		p.Draw(&Context{Pass: p, Features: f, Inputs: e.inputs, Target: p.Writes})
	}
}

func (e *Executor) runBlur(p *Pass, f Features) {
	e.steps = append(e.steps[:0], BlurSchedule(p.Blur.Iterations, p.Blur.StartHorizontal, p.Blur.Source)...)

	for i := range e.steps {
		step := &e.steps[i]
		e.Backend.Bind(step.Write)
		if p.Draw != nil {
			e.inputs = append(e.inputs[:0], step.Read)
			p.Draw(&Context{Pass: p, Features: f, Inputs: e.inputs, Target: step.Write, Step: step})
		}
	}

	e.report.BlurRan = true
	e.report.BlurSteps = len(e.steps)
	e.report.BlurResult = p.Blur.Source
	if n := len(e.steps); n > 0 {
		e.report.BlurResult, _ = ColorOf(e.steps[n-1].Write)
	}
}

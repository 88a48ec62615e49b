package harness

// TraceEvent records one evaluated step.
type TraceEvent struct {
	Seq      int64   `json:"seq"`
	Op       string  `json:"op"`
	Operands []Pair  `json:"operands,omitempty"`
	Value    string  `json:"value,omitempty"`
	Text     *string `json:"text,omitempty"`

	// Exactly one of Fraction, Equal and Count is set.
	Fraction Pair    `json:"fraction,omitempty"`
	Equal    *bool   `json:"equal,omitempty"`
	Count    *uint64 `json:"count,omitempty"`
}

// Canonical returns the event as a map accepted by canonical.Marshal.
// The op's outcome is stored under "result" whatever its kind.
func (e TraceEvent) Canonical() map[string]any {
	m := map[string]any{
		"seq": e.Seq,
		"op":  e.Op,
	}
	if len(e.Operands) > 0 {
		ops := make([]any, len(e.Operands))
		for i, p := range e.Operands {
			ops[i] = p.canonical()
		}
		m["operands"] = ops
	}
	if e.Value != "" {
		m["value"] = e.Value
	}
	if e.Text != nil {
		m["text"] = *e.Text
	}
	switch {
	case e.Fraction != nil:
		m["result"] = e.Fraction.canonical()
	case e.Equal != nil:
		m["result"] = *e.Equal
	case e.Count != nil:
		m["result"] = *e.Count
	}
	return m
}

func (p Pair) canonical() map[string]any {
	return map[string]any{
		"numerator":   p[0],
		"denominator": p[1],
	}
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(e TraceEvent) {
	r.Trace = append(r.Trace, e)
}

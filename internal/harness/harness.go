package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/precisemath/doubles"
	"github.com/roach88/precisemath/fraction"
)

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
	clock  *Clock
}

// WithLogger sets the logger for step diagnostics. Runs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

// WithClock supplies the sequence clock. By default each run gets a fresh
// clock, so sequence numbers start at 1.
func WithClock(clock *Clock) Option {
	return func(c *runConfig) { c.clock = clock }
}

// stepper evaluates steps for one scalar kind.
type stepper interface {
	evaluate(st Step) (TraceEvent, error)
	run(st Step) (TraceEvent, []string, error)
}

func stepperFor(scalar string) (stepper, error) {
	switch scalar {
	case ScalarInt, "":
		return intCodec, nil
	case ScalarFloat:
		return floatCodec, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownScalar, scalar)
	}
}

// Run evaluates every step of the scenario and then its assertions.
//
// Expectation and assertion failures are collected in Result.Errors.
// The returned error is reserved for steps that cannot be evaluated at all,
// such as operands that do not parse as the scenario's scalar kind, and for
// context cancellation.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  NewClock(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := stepperFor(scenario.Scalar)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	for i, st := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := validateStep(&st); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		event, failures, err := s.run(st)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
		event.Seq = cfg.clock.Next()
		result.AddTrace(event)

		for _, f := range failures {
			result.AddError(fmt.Sprintf("step %d (%s): %s", i, st.Op, f))
		}

		cfg.logger.Debug("step evaluated",
			"scenario", scenario.Name,
			"seq", event.Seq,
			"op", st.Op,
			"failures", len(failures),
		)
	}

	for _, msg := range EvaluateAssertions(result.Trace, scenario.Assertions) {
		result.AddError(msg)
	}

	cfg.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"pass", result.Pass,
	)

	return result, nil
}

// Evaluate validates and evaluates a single step without expectations.
// The returned event has Seq 0; callers that log events assign their own.
func Evaluate(scalar string, st Step) (TraceEvent, error) {
	if err := validateStep(&st); err != nil {
		return TraceEvent{}, err
	}
	s, err := stepperFor(scalar)
	if err != nil {
		return TraceEvent{}, err
	}
	return s.evaluate(st)
}

// codec binds a built-in number type to its text form.
type codec[N fraction.Number] struct {
	parse  func(string) (N, error)
	format func(N) string
}

type frac[N fraction.Number] = fraction.Fraction[fraction.Scalar[N]]

func (c codec[N]) scalar(s string) (N, error) {
	v, err := c.parse(s)
	if err != nil {
		return v, fmt.Errorf("%w %q", ErrBadScalar, s)
	}
	return v, nil
}

func (c codec[N]) fraction(p Pair) (frac[N], error) {
	n, err := c.scalar(p[0])
	if err != nil {
		return frac[N]{}, err
	}
	d, err := c.scalar(p[1])
	if err != nil {
		return frac[N]{}, err
	}
	return fraction.Of(n, d), nil
}

func (c codec[N]) pair(f frac[N]) Pair {
	n, d := fraction.Numbers(f)
	return Pair{c.format(n), c.format(d)}
}

func (c codec[N]) evaluate(st Step) (TraceEvent, error) {
	ev, _, err := c.apply(st)
	return ev, err
}

// apply evaluates st. The fraction result, if any, is returned alongside the
// event so expectations compare values rather than their text.
func (c codec[N]) apply(st Step) (TraceEvent, *frac[N], error) {
	ev := TraceEvent{Op: st.Op}

	switch st.Op {
	case OpDoubles:
		text := *st.Text
		count := doubles.Count(text)
		ev.Text = &text
		ev.Count = &count
		return ev, nil, nil
	case OpFrom:
		v, err := c.scalar(st.Value)
		if err != nil {
			return ev, nil, fmt.Errorf("value: %w", err)
		}
		f := fraction.FromNumber(v)
		ev.Value = c.format(v)
		ev.Fraction = c.pair(f)
		return ev, &f, nil
	}

	left, err := c.fraction(st.Left)
	if err != nil {
		return ev, nil, fmt.Errorf("left: %w", err)
	}
	ev.Operands = []Pair{c.pair(left)}

	if st.Op == OpNew {
		ev.Fraction = c.pair(left)
		return ev, &left, nil
	}

	right, err := c.fraction(st.Right)
	if err != nil {
		return ev, nil, fmt.Errorf("right: %w", err)
	}
	ev.Operands = append(ev.Operands, c.pair(right))

	var out frac[N]
	switch st.Op {
	case OpEqual:
		eq := fraction.Equal(left, right)
		ev.Equal = &eq
		return ev, nil, nil
	case OpAdd:
		out = fraction.Add(left, right)
	case OpSub:
		out = fraction.Sub(left, right)
	case OpMul:
		out = fraction.Mul(left, right)
	case OpDiv:
		out = fraction.Div(left, right)
	default:
		return ev, nil, fmt.Errorf("%w %q", ErrUnknownOp, st.Op)
	}
	ev.Fraction = c.pair(out)
	return ev, &out, nil
}

// run evaluates st and checks its expectations.
func (c codec[N]) run(st Step) (TraceEvent, []string, error) {
	ev, got, err := c.apply(st)
	if err != nil {
		return ev, nil, err
	}

	var failures []string
	if st.Expect != nil {
		want, err := c.fraction(st.Expect)
		if err != nil {
			return ev, nil, fmt.Errorf("expect: %w", err)
		}
		if !fraction.Equal(*got, want) {
			failures = append(failures, fmt.Sprintf("got %s, want a value equal to %s", ev.Fraction, c.pair(want)))
		}
	}
	if st.ExpectExact != nil {
		want, err := c.fraction(st.ExpectExact)
		if err != nil {
			return ev, nil, fmt.Errorf("expect_exact: %w", err)
		}
		gn, gd := fraction.Numbers(*got)
		wn, wd := fraction.Numbers(want)
		if gn != wn || gd != wd {
			failures = append(failures, fmt.Sprintf("got %s, want exactly %s", ev.Fraction, c.pair(want)))
		}
	}
	if st.ExpectEqual != nil && *ev.Equal != *st.ExpectEqual {
		failures = append(failures, fmt.Sprintf("got equal=%t, want %t", *ev.Equal, *st.ExpectEqual))
	}
	if st.ExpectCount != nil && *ev.Count != *st.ExpectCount {
		failures = append(failures, fmt.Sprintf("got count %d, want %d", *ev.Count, *st.ExpectCount))
	}

	return ev, failures, nil
}

// String renders a pair as n/d for diagnostics.
func (p Pair) String() string {
	if len(p) != 2 {
		return fmt.Sprintf("%v", []string(p))
	}
	return p[0] + "/" + p[1]
}

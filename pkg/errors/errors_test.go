package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestUIErrorString(t *testing.T) {
	err := &UIError{
		Op:   "retained.SetValue",
		Kind: KindBackend,
		Err:  stderrors.New("unknown handle 7"),
	}
	got := err.Error()
	want := "retained.SetValue [backend]: unknown handle 7"
	if got != want {
		t.Errorf("UIError.Error() = %q, want %q", got, want)
	}
}

func TestUIErrorUnwrap(t *testing.T) {
	inner := stderrors.New("boom")
	err := &UIError{Op: "x", Kind: KindConfig, Err: inner}
	if !stderrors.Is(err, inner) {
		t.Error("expected errors.Is to find wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindStructure, "structure"},
		{KindValidation, "validation"},
		{KindCallback, "callback"},
		{KindPanic, "panic"},
		{KindBackend, "backend"},
		{KindConfig, "config"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "immediate.VerticalLayout"
	if got, want := err.Error(), "panic in immediate.VerticalLayout: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestStructureErrorString(t *testing.T) {
	err := &StructureError{Container: "horizontal-layout"}
	if got, want := err.Error(), "horizontal-layout wasn't ended correctly. Popping."; got != want {
		t.Errorf("StructureError.Error() = %q, want %q", got, want)
	}
	err.Closing = "vertical-layout"
	if !strings.Contains(err.Error(), "before vertical-layout ended") {
		t.Errorf("StructureError.Error() = %q, should name the closing container", err.Error())
	}
	err = &StructureError{Container: "vertical-layout", Unmatched: true}
	if got, want := err.Error(), "end of vertical-layout without a matching begin"; got != want {
		t.Errorf("StructureError.Error() = %q, want %q", got, want)
	}
}

func TestCallbackErrorUnwrap(t *testing.T) {
	inner := &PanicError{Value: "bad"}
	err := &CallbackError{Container: "vertical-layout", Err: inner}
	var pe *PanicError
	if !stderrors.As(err, &pe) {
		t.Fatal("expected errors.As to find *PanicError")
	}
	if pe.Value != "bad" {
		t.Errorf("Value = %v, want %q", pe.Value, "bad")
	}
}

func TestValidationErrorString(t *testing.T) {
	err := &ValidationError{Field: "int-field", Input: "7x", Err: stderrors.New("syntax")}
	if got, want := err.Error(), `invalid int-field input "7x": syntax`; got != want {
		t.Errorf("ValidationError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *UIError
	handler := &testHandler{
		onError: func(err *UIError) {
			captured = err
		},
	}

	SetHandler(handler)
	defer SetHandler(nil)

	Report(&UIError{
		Op:   "test.op",
		Kind: KindConfig,
		Err:  stderrors.New("bad theme"),
	})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportStructure(t *testing.T) {
	var captured []*StructureError
	handler := &testHandler{
		onStructure: func(err *StructureError) {
			captured = append(captured, err)
		},
	}

	SetHandler(handler)
	defer SetHandler(nil)

	ReportStructure(&StructureError{Container: "horizontal-layout"})
	ReportStructure(nil)

	if len(captured) != 1 {
		t.Fatalf("captured %d structure errors, want 1", len(captured))
	}
	if captured[0].Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecoverInto(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{
		onPanic: func(err *PanicError) {
			captured = err
		},
	})
	defer SetHandler(nil)

	run := func() (err error) {
		defer RecoverInto("test.recover", &err)
		panic("intentional test panic")
	}
	err := run()

	var pe *PanicError
	if !stderrors.As(err, &pe) {
		t.Fatalf("error = %v, want *PanicError", err)
	}
	if pe != captured {
		t.Error("returned panic should be the reported one")
	}
	if pe.Value != "intentional test panic" || pe.Op != "test.recover" {
		t.Errorf("panic = %+v", pe)
	}
	if pe.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestRecoverIntoWithoutPanic(t *testing.T) {
	SetHandler(&testHandler{onPanic: func(*PanicError) { t.Error("unexpected panic report") }})
	defer SetHandler(nil)

	err := stderrors.New("kept")
	func() {
		defer RecoverInto("test.quiet", &err)
	}()
	if err == nil || err.Error() != "kept" {
		t.Errorf("err = %v, want kept", err)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if DefaultHandler == nil {
		t.Error("SetHandler(nil) should set default LogHandler, not nil")
	}
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}

	h.HandleStructureError(&StructureError{Container: "horizontal-layout"})
	h.HandlePanic(&PanicError{Op: "immediate.Frame", Value: "oops"})
	h.HandleError(&UIError{Op: "retained.Reparent", Kind: KindBackend, Err: stderrors.New("gone")})

	out := buf.String()
	for _, want := range []string{
		"[immediate structure] horizontal-layout wasn't ended correctly. Popping.",
		"[immediate panic] immediate.Frame: oops",
		"[immediate error] retained.Reparent: gone",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testHandler struct {
	onError     func(*UIError)
	onPanic     func(*PanicError)
	onStructure func(*StructureError)
}

func (h *testHandler) HandleError(err *UIError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *testHandler) HandleStructureError(err *StructureError) {
	if h.onStructure != nil {
		h.onStructure(err)
	}
}

package errors

import (
	"reflect"
	"testing"
)

func TestErrors_Error(t *testing.T) {
	a := New("a")
	b := New("b\nc")

	tests := []struct {
		errs Errors
		want string
	}{
		{nil, "no errors"},
		{Errors{a}, "a"},
		{Errors{a, b}, "multiple errors:\n\ta\n\tb\n\tc"},
	}
	for _, test := range tests {
		if got := test.errs.Error(); got != test.want {
			t.Errorf("expected %q, got %q", test.want, got)
		}
	}
}

func TestErrors_Return(t *testing.T) {
	if (Errors{}).Return() != nil {
		t.Error("expected nil for empty list")
	}
	if Errors(nil).Append(nil, nil).Return() != nil {
		t.Error("expected nil errors to be skipped")
	}
	if err := (Errors{New("a")}).Return(); err == nil {
		t.Error("expected non-nil error")
	}
}

func TestList(t *testing.T) {
	a := New("a")
	b := New("b")
	if List(nil) != nil {
		t.Error("expected nil list")
	}
	if got := List(a); !reflect.DeepEqual(got, Errors{a}) {
		t.Errorf("unexpected list %v", got)
	}
	if got := List(Errors{a, b}); !reflect.DeepEqual(got, Errors{a, b}) {
		t.Errorf("unexpected list %v", got)
	}
}

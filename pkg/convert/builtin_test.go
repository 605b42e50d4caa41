package convert_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/convert"
	"github.com/goliatone/go-formcheck/pkg/message"
)

func TestConvertBoolean(t *testing.T) {
	cases := []struct {
		in      string
		want    bool
		wantSet bool
	}{
		{in: "  TRUE ", want: true, wantSet: true},
		{in: "true", want: true, wantSet: true},
		{in: "", want: false, wantSet: false},
		{in: "   ", want: false, wantSet: false},
		{in: "nope", want: false, wantSet: true},
		{in: "false", want: false, wantSet: true},
	}
	for _, tc := range cases {
		got, set := convert.ConvertBoolean(tc.in)
		if got != tc.want || set != tc.wantSet {
			t.Fatalf("ConvertBoolean(%q): want (%v, %v), got (%v, %v)", tc.in, tc.want, tc.wantSet, got, set)
		}
	}
}

func TestBooleanConverter(t *testing.T) {
	ctx := context.Background()
	cc := convert.Context{ComponentID: "form:agree"}

	cases := []struct {
		name string
		in   any
		want any
	}{
		{name: "true literal", in: "  TRUE ", want: true},
		{name: "empty is unset", in: "", want: nil},
		{name: "other text", in: "nope", want: false},
		{name: "native bool", in: true, want: true},
	}
	for _, tc := range cases {
		got, err := convert.Boolean(ctx, cc, tc.in)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%s: mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestIntegerConverter(t *testing.T) {
	ctx := context.Background()
	cc := convert.Context{ComponentID: "form:age"}

	got, err := convert.Integer(ctx, cc, " -42 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != int64(-42) {
		t.Fatalf("want -42, got %#v", got)
	}

	got, err = convert.Integer(ctx, cc, "")
	if err != nil || got != nil {
		t.Fatalf("empty value: want (nil, nil), got (%v, %v)", got, err)
	}

	for _, bad := range []string{"4.2", "abc", "1e3", "--1", "99999999999999999999"} {
		_, err := convert.Integer(ctx, cc, bad)
		var convErr *convert.ConversionError
		if !errors.As(err, &convErr) {
			t.Fatalf("Integer(%q): expected ConversionError, got %v", bad, err)
		}
		if !errors.Is(err, convert.ErrConversion) {
			t.Fatalf("Integer(%q): error should match ErrConversion", bad)
		}
		want := "form:age: '" + bad + "' must be a number consisting of one or more digits."
		if convErr.Message.Detail != want {
			t.Fatalf("Integer(%q): detail want %q, got %q", bad, want, convErr.Message.Detail)
		}
	}
}

func TestNumberConverter(t *testing.T) {
	ctx := context.Background()
	cc := convert.Context{ComponentID: "form:price"}

	valid := map[string]float64{
		"12":      12,
		"-12.5":   -12.5,
		".5":      0.5,
		"1.5e3":   1500,
		"2.25e-1": 0.225,
		"7.":      7,
	}
	for in, want := range valid {
		got, err := convert.Number(ctx, cc, in)
		if err != nil {
			t.Fatalf("Number(%q): unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("Number(%q): want %v, got %#v", in, want, got)
		}
	}

	for _, bad := range []string{"abc", "1e3", "1,5", ".", "-"} {
		if _, err := convert.Number(ctx, cc, bad); !errors.Is(err, convert.ErrConversion) {
			t.Fatalf("Number(%q): expected conversion error, got %v", bad, err)
		}
	}
}

func TestConverterMessageOption(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		options convert.Options
		want    message.Message
	}{
		{
			name:    "message value",
			options: convert.Options{"message": message.Message{Summary: "bad {0}", Detail: "{1} bad {0}"}},
			want:    message.Message{Summary: "bad x", Detail: "f bad x"},
		},
		{
			name:    "decoded map",
			options: convert.Options{"message": map[string]any{"summary": "S {0}", "detail": "D {1}"}},
			want:    message.Message{Summary: "S x", Detail: "D f"},
		},
		{
			name:    "plain string",
			options: convert.Options{"message": "oops {0}"},
			want:    message.Message{Summary: "oops x", Detail: "oops x"},
		},
		{
			name:    "unusable option falls back",
			options: convert.Options{"message": 12},
			want:    message.GetMessage(convert.NumberMessage, message.Indexed("x", "f")),
		},
	}
	for _, tc := range cases {
		_, err := convert.Number(ctx, convert.Context{ComponentID: "f", Options: tc.options}, "x")
		var convErr *convert.ConversionError
		if !errors.As(err, &convErr) {
			t.Fatalf("%s: expected ConversionError, got %v", tc.name, err)
		}
		if diff := cmp.Diff(tc.want, convErr.Message); diff != "" {
			t.Fatalf("%s: message mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestConversionError_Unwrap(t *testing.T) {
	_, cause := strconv.ParseInt("99999999999999999999", 10, 64)
	err := &convert.ConversionError{Message: message.Text("too big"), Err: cause}
	if !errors.Is(err, strconv.ErrRange) {
		t.Fatalf("expected wrapped strconv.ErrRange")
	}
	if got := err.Error(); got != "convert: too big" {
		t.Fatalf("unexpected error text %q", got)
	}
	if got := convert.ConversionErrorf("bad %d", 1).Message; got != message.Text("bad 1") {
		t.Fatalf("unexpected message %+v", got)
	}
}

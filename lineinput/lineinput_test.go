package lineinput

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestWait(t *testing.T) {
	s := New(strings.NewReader("step\nregs\n\nquit\n"), 10)
	ctx := context.Background()

	want := []string{"step", "regs", "", "quit"}
	for i, w := range want {
		got, err := s.Wait(ctx)
		if err != nil || got != w {
			t.Errorf("%d: Got %q, %v, want %q, nil", i, got, err, w)
		}
	}
	if _, err := s.Wait(ctx); err != io.EOF {
		t.Errorf("Got %v after the last line, want %v", err, io.EOF)
	}
	if got := s.History(); !reflect.DeepEqual(got, want) {
		t.Errorf("Got history %q, want %q", got, want)
	}
}

func TestNextDoesNotBlock(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := New(r, 0)

	if line, ok := s.Next(); ok {
		t.Errorf("Got %q from an idle reader", line)
	}

	go w.Write([]byte("hello\n"))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if got, err := s.Wait(ctx); err != nil || got != "hello" {
		t.Errorf("Got %q, %v, want \"hello\", nil", got, err)
	}
}

func TestWaitCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := New(r, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Got %v, want %v", err, context.Canceled)
	}
}

func TestHistoryBounded(t *testing.T) {
	cases := []struct {
		limit int
		input string
		want  []string
	}{
		{2, "a\nb\nc\n", []string{"b", "c"}},
		{5, "a\nb\n", []string{"a", "b"}},
		{1, "a\nb\nc\nd\n", []string{"d"}},
	}

	for i, tc := range cases {
		s := New(strings.NewReader(tc.input), tc.limit)
		for {
			if _, err := s.Wait(context.Background()); err != nil {
				break
			}
		}
		if got := s.History(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%d: Got %q, want %q", i, got, tc.want)
		}
	}
}

func TestClose(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := New(r, 0)
	s.Close()

	if _, err := s.Wait(context.Background()); err != io.EOF {
		t.Errorf("Got %v after Close, want %v", err, io.EOF)
	}
}

package stream

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"
)

func divideByTwo(n int) int {
	return n / 2
}

func isNonZero(n int) bool {
	return n != 0
}

func TestStream(t *testing.T) {
	data := []int{0, 2, 4, 6, 8}
	ctx := context.Background()
	result := Collect(ctx,
		Transform(ctx, divideByTwo,
			Filter(ctx, isNonZero,
				Slice(ctx, data))))

	if !slices.Equal([]int{1, 2, 3, 4}, result) {
		t.Errorf("Expected [1, 2, 3, 4], got %v", result)
	}
}

func TestStreamCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := Collect(ctx, Slice(ctx, []int{1, 2, 3}))
	if len(result) > 1 {
		t.Errorf("expected at most one element after cancel, got %v", result)
	}
}

type point struct {
	K int `json:"k"`
}

func TestWriteNDJSON(t *testing.T) {
	ctx := context.Background()
	buf := new(bytes.Buffer)
	n, err := WriteNDJSON(buf, Slice(ctx, []point{{1}, {2}}))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || buf.String() != "{\"k\":1}\n{\"k\":2}\n" {
		t.Errorf("n=%d, wrote %q", n, buf.String())
	}
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestWriteNDJSONDrainsOnError(t *testing.T) {
	ctx := context.Background()
	n, err := WriteNDJSON(failWriter{}, Slice(ctx, []point{{1}, {2}, {3}}))
	if !errors.Is(err, errWrite) {
		t.Errorf("got %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d", n)
	}
}

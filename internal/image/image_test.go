package image_test

import (
	"testing"

	"github.com/oriya-dev/asm14/internal/image"
)

func TestAppendAdvancesCounterFromOrigin(t *testing.T) {
	img := image.New(100)

	addr := img.Append(image.Word{Value: 0x1234})
	if addr != 100 {
		t.Fatalf("first Append address = %d, want 100", addr)
	}

	addr = img.Append(image.Word{Value: 0x5678})
	if addr != 101 {
		t.Fatalf("second Append address = %d, want 101", addr)
	}

	if img.Counter != 102 {
		t.Fatalf("Counter = %d, want 102", img.Counter)
	}

	if img.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", img.Size())
	}
}

func TestResetRewindsCounterKeepsWords(t *testing.T) {
	img := image.New(100)
	img.Append(image.Word{Value: 1})
	img.Append(image.Word{Value: 2})

	img.Reset()

	if img.Counter != img.Origin {
		t.Fatalf("Counter after Reset = %d, want %d", img.Counter, img.Origin)
	}

	if img.Size() != 2 {
		t.Fatalf("Size() after Reset = %d, want 2 (words must survive)", img.Size())
	}
}

func TestPatchOverwritesInPlace(t *testing.T) {
	img := image.New(0)
	img.Append(image.Word{Value: 0})

	img.Patch(0, image.Word{Value: 0x2A})

	w, ok := img.At(0)
	if !ok || w.Value != 0x2A {
		t.Fatalf("At(0) after Patch = %+v, %v, want Value 0x2A", w, ok)
	}
}

func TestAtOutOfRange(t *testing.T) {
	img := image.New(0)

	if _, ok := img.At(0); ok {
		t.Fatal("At(0) on empty image = true, want false")
	}

	if _, ok := img.At(-1); ok {
		t.Fatal("At(-1) = true, want false")
	}
}

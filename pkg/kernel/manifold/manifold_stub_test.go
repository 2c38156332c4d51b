//go:build !manifold

package manifold

import (
	"errors"
	"strings"
	"testing"
)

func TestNewWithoutLibrary(t *testing.T) {
	k, err := New()
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("New() error = %v, want ErrUnavailable", err)
	}
	if k != nil {
		t.Fatal("New() returned a kernel without the manifold tag")
	}
	if !strings.Contains(err.Error(), "--kernel bsp") {
		t.Errorf("error %q does not point at the built-in kernel", err)
	}
}

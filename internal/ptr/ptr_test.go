package ptr_test

import (
	"testing"

	"github.com/okorolev/fitcoach/internal/ptr"
)

func TestRef(t *testing.T) {
	t.Run("float64", func(t *testing.T) {
		f := 77.5
		p := ptr.Ref(f)

		if p == nil {
			t.Fatal("Expected pointer to be non-nil")
		}

		if *p != f {
			t.Errorf("Expected %v, got %v", f, *p)
		}

		// Verify that modifying the original value doesn't affect the pointer
		f = 80.0
		if *p == f {
			t.Errorf("Pointer value should not change when original value is modified")
		}
	})

	t.Run("string", func(t *testing.T) {
		s := "chest_press"
		p := ptr.Ref(s)

		if p == nil {
			t.Fatal("Expected pointer to be non-nil")
		}

		if *p != s {
			t.Errorf("Expected %q, got %q", s, *p)
		}
	})
}

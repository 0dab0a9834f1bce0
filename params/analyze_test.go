package params

import (
	"errors"
	"testing"
	"time"
)

func TestSectionConfigValidate(t *testing.T) {
	if err := DefaultSectionConfig().Validate(); err != nil {
		t.Errorf("default: %v", err)
	}
	for _, d := range []time.Duration{0, 500 * time.Millisecond, -time.Minute} {
		c := &SectionConfig{TargetDuration: d}
		if err := c.Validate(); !errors.Is(err, ErrSectionDuration) {
			t.Errorf("%s: got %v, want ErrSectionDuration", d, err)
		}
	}
}

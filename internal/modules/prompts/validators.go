package prompts

import (
	"fmt"
	"strings"
)

type Validator func(Input) error

func RequireNonEmpty(field string, get func(Input) string) Validator {
	return func(in Input) error {
		if strings.TrimSpace(get(in)) == "" {
			return fmt.Errorf("missing %s", field)
		}
		return nil
	}
}

func RequireMonthInRange(in Input) error {
	total := in.TotalMonths
	if total <= 0 {
		total = 12
	}
	if in.CurrentMonth < 1 || in.CurrentMonth > total {
		return fmt.Errorf("month %d out of range 1..%d", in.CurrentMonth, total)
	}
	return nil
}

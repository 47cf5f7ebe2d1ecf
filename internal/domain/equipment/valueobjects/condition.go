package valueobjects

import (
	"fmt"
	"strings"
)

// Condition is the wear classification of a unit.
type Condition string

const (
	ConditionNew  Condition = "novo"
	ConditionUsed Condition = "usado"
)

func NewCondition(value string) (Condition, error) {
	c := Condition(strings.ToLower(strings.TrimSpace(value)))
	switch c {
	case ConditionNew, ConditionUsed:
		return c, nil
	default:
		return "", fmt.Errorf("invalid condition: %s (expected novo or usado)", value)
	}
}

func (c Condition) String() string {
	return string(c)
}

func (c Condition) IsValid() bool {
	return c == ConditionNew || c == ConditionUsed
}

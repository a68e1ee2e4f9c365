package errreport

import (
	"fmt"
	"strings"
)

// Kind tags a Cause.
type Kind string

const (
	KindKnown   Kind = "known"
	KindUnknown Kind = "unknown"
)

// Cause is the classified form of a reported value: Known or Unknown.
type Cause interface {
	Kind() Kind
	// Detail is a best-effort textual form for logs.
	Detail() string
}

// Known is a failure carrying a usable message.
type Known struct {
	Message string
	Err     error // nil when the value was a plain string
}

func (Known) Kind() Kind { return KindKnown }

func (k Known) Detail() string { return k.Message }

// Unknown is any value without a usable message.
type Unknown struct {
	Value any
}

func (Unknown) Kind() Kind { return KindUnknown }

func (u Unknown) Detail() string {
	if u.Value == nil {
		return "<nil>"
	}
	return safeSprint(u.Value)
}

// Classify resolves v into a Cause. Non-nil errors and strings with a
// non-blank message are Known; everything else is Unknown.
func Classify(v any) Cause {
	switch val := v.(type) {
	case Cause:
		return val
	case error:
		if msg, ok := safeErrorMessage(val); ok && strings.TrimSpace(msg) != "" {
			return Known{Message: msg, Err: val}
		}
	case string:
		if strings.TrimSpace(val) != "" {
			return Known{Message: val}
		}
	}
	return Unknown{Value: v}
}

// safeErrorMessage guards against Error methods that panic, such as those
// with nil pointer receivers.
func safeErrorMessage(err error) (msg string, ok bool) {
	defer func() {
		if recover() != nil {
			msg, ok = "", false
		}
	}()
	return err.Error(), true
}

func safeSprint(v any) (s string) {
	defer func() {
		if recover() != nil {
			s = fmt.Sprintf("<%T>", v)
		}
	}()
	return fmt.Sprintf("%+v", v)
}

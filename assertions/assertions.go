package assertions

import (
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"
	"testing"
)

// AssertEquals asserts whether actual value is equal to expected value
func AssertEquals[T comparable](t *testing.T, expected, actual T) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected=%+v (type %v)  actual=%+v (type %v)",
			expected, reflect.TypeOf(expected), actual, reflect.TypeOf(actual))
		printCallerContext()
	}
}

// AssertTrue asserts whether actual value is true
func AssertTrue(t *testing.T, actual bool) {
	t.Helper()
	if !actual {
		t.Error("result was expected to be true")
		printCallerContext()
	}
}

func printCallerContext() {
	stackTraceText := string(debug.Stack())
	stackTraceLines := strings.Split(stackTraceText, "\n")
	if len(stackTraceLines) < 9 {
		return
	}
	fmt.Println(strings.Join(stackTraceLines[7:9], "\n"))
}

package orion

import "fmt"

// Handle panics if err is not nil. Use it for failures that leave
// nothing to recover, like a missing gpu.
func Handle(err error, desc string, args ...any) {
	if err != nil {
		text := fmt.Sprintf(desc, args...)
		panic(text + ": " + err.Error())
	}
}

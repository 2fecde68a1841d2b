// Package ibmiutil layers a handful of high-level user-management
// conveniences over the core ibmi package's CallProgram/
// CallServiceProgram surface. None of these wrappers do any protocol
// work of their own: each is a format name, a receiver buffer, and a
// slice of fixed-offset fields out of the platform's own API layout.
package ibmiutil

import (
	"fmt"

	ibmi "github.com/ibmigo/ibmiconnector"
)

func padRight(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	b := make([]byte, n)
	copy(b, s)
	for i := len(s); i < n; i++ {
		b[i] = ' '
	}
	return string(b)
}

// errorCodeParameter builds the all-zero "error code structure"
// parameter most QSY*/QGY* system APIs take as their last argument: a
// bytes-provided/bytes-available header with no exception data, which
// tells the API to return failures as a CPF escape message on the call
// rather than filling this structure.
func errorCodeParameter() ibmi.ProgramCallParameter {
	return ibmi.NewProgramCallParameter(ibmi.ParameterInputOutput, make([]byte, 8), 8)
}

// callError turns a non-zero CallProgram result code into an error,
// preferring the server's own first diagnostic message when present.
func callError(resultCode uint16, messages ibmi.CallMessages) error {
	if len(messages) > 0 {
		m := messages[0]
		return fmt.Errorf("ibmiutil: %s: %s", m.ID, m.MessageText)
	}
	return fmt.Errorf("ibmiutil: call failed with result code 0x%04X", resultCode)
}

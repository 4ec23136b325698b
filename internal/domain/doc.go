// Package domain contains the core entities of the quiz application:
// extracted questions, the quiz session state machine, and graded
// certificates. The package is free of I/O; persistence and AI extraction
// live behind interfaces in other packages.
package domain

// Callisto runs programs written in Callisto, a small indentation-delimited
// imperative language.
//
// A program is a set of functions; running it calls the entry-point
// function, start by default:
//
//	define start()
//	variables n : integer
//		for i from 1 to 10
//			n := n + i
//		writeLine("sum", n)
//
// Usage:
//
//	# Run a program
//	callisto run hello.cal
//
//	# Re-run whenever the file is saved
//	callisto run hello.cal --watch
//
//	# Check programs for lexical and syntax errors without running them
//	callisto check examples/
//
//	# Inspect the token stream or the syntax tree
//	callisto tokens hello.cal --format json
//	callisto ast hello.cal
//
//	# Run every five minutes until interrupted
//	callisto schedule report.cal --cron "*/5 * * * *"
package main

func main() {
	Execute()
}

//go:build dev

package main

// Dev builds expose `echo` and report a -dev version suffix.
const debugCommands = true

//go:build !dev

package main

// Release builds leave the debug commands out of the dispatch table.
const debugCommands = false

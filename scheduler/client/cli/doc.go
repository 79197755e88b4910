/*
Package cli provides the command line client of the task scheduler.
Commands run against an in-process scheduler created from the
selected configuration (scheduler/config), the replay command feeds
it a script of operations and prints the return code of each one.
*/
package cli

/*
Package commands implements the custodyd subcommands. Each command parses
its own flags and runs against the state kept in the home directory.
*/
package commands

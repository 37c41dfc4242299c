/*
Package app contains the host of the custody programs: the router that
dispatches instructions by program id and the executor that runs
transactions.

The executor gives every transaction a local transaction: handlers run on a
cache-wrap of the state that is written only if every instruction
succeeds. Handlers never undo their own writes.
*/
package app

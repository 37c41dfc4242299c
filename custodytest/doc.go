/*
Package custodytest provides helpers for testing the custody state machine
and its programs: deterministic keys, addresses and an authenticator mock.
*/
package custodytest
